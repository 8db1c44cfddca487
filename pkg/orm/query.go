// Package orm is a thin chainable layer over GORM.
//
// Repositories build queries fluently and never touch *gorm.DB directly:
//
//	var cars []models.Vehicle
//	err := orm.New(db).Model(&models.Vehicle{}).
//	    Where("brand = ?", "BMW").
//	    Get(&cars)
//
// Read-through caching uses pkg/cache:
//
//	err := orm.New(db).Model(&models.Vehicle{}).Cache("fleet:all", time.Minute, &cars)
package orm

import (
	"math"
	"time"

	"github.com/shashiranjanraj/luxewheels/pkg/cache"
	"github.com/shashiranjanraj/luxewheels/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

// New wraps an explicit *gorm.DB handle. Prefer this in repositories so the
// store can be injected (and swapped for an in-memory one in tests).
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

// DB wraps the process-wide connection opened by database.Connect.
func DB() *Query {
	return &Query{db: database.DB}
}

// Gorm exposes the underlying handle for the rare operation the chain does
// not cover (migrations, raw SQL).
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Not(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Not(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

// ── Read ─────────────────────────────────────────────────────────────────────

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Pluck collects a single column's distinct values, e.g. every brand name.
func (q *Query) Pluck(column string, dest interface{}) error {
	return q.db.Distinct(column).Order(column).Pluck(column, dest).Error
}

// ── Write ────────────────────────────────────────────────────────────────────

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

// Updates applies a partial column map to the rows the chain selects.
func (q *Query) Updates(values map[string]interface{}) error {
	return q.db.Updates(values).Error
}

// Transaction runs fn inside a single database transaction; fn receives a
// Query bound to the transaction handle.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}

// ── Pagination ───────────────────────────────────────────────────────────────

// Pagination is the page metadata returned alongside a paginated result set.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"` // ceil(Total/PerPage); 0 when Total is 0
}

// GetWithPagination fills dest with one page of results and returns the page
// metadata. page is 1-indexed.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := q.Count()
	if err != nil {
		return Pagination{}, err
	}

	p := Pagination{Page: page, PerPage: limit, Total: total}
	if total > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	err = q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error
	return p, err
}

// ── Cache ────────────────────────────────────────────────────────────────────

// Cache is a read-through query: on a cache hit dest is filled from Redis,
// otherwise the query runs and the result is stored under key for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}
