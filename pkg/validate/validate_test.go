package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/luxewheels/pkg/validate"
)

type bookingInput struct {
	VehicleID     uint   `json:"vehicle_id"     validate:"required"`
	Name          string `json:"name"           validate:"required,min=2,max=100"`
	Phone         string `json:"phone"          validate:"required,min=7,max=20"`
	Email         string `json:"email"          validate:"required,email"`
	NationalID    string `json:"national_id"    validate:"required"`
	PostalCode    string `json:"postal_code"    validate:"nullable,max=20"`
	PaymentMethod string `json:"payment_method" validate:"required,in=Card,Cash,Transfer"`
	StartDate     string `json:"start_date"     validate:"required,date"`
	EndDate       string `json:"end_date"       validate:"required,date"`
}

func validBooking() bookingInput {
	return bookingInput{
		VehicleID:     7,
		Name:          "Maria Silva",
		Phone:         "912345678",
		Email:         "maria@example.com",
		NationalID:    "12345678",
		PostalCode:    "4000-123",
		PaymentMethod: "Card",
		StartDate:     "2026-06-01",
		EndDate:       "2026-06-05",
	}
}

func TestValidBooking(t *testing.T) {
	errs := validate.Struct(validBooking())
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(bookingInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["vehicle_id"]; !ok {
		t.Error("expected vehicle_id to be required")
	}
}

func TestEmailRule(t *testing.T) {
	in := validBooking()
	in.Email = "not-an-email"
	if errs := validate.Struct(in); errs["email"] == "" {
		t.Error("expected email validation error")
	}
}

func TestDateRule(t *testing.T) {
	in := validBooking()
	in.StartDate = "first of june"
	if errs := validate.Struct(in); errs["start_date"] == "" {
		t.Error("expected start_date validation error")
	}

	in = validBooking()
	in.StartDate = "2026-06-01"
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("expected ISO date to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	in := validBooking()
	in.PaymentMethod = "Bitcoin"
	if errs := validate.Struct(in); errs["payment_method"] == "" {
		t.Error("expected invalid payment method to fail")
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	in := validBooking()
	in.PostalCode = ""
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable postal_code to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Days int `json:"days" validate:"required,gte=1,lte=60"`
	}
	if errs := validate.Struct(in{Days: 90}); !validate.HasErrors(errs) {
		t.Error("expected days > 60 to fail")
	}
	if errs := validate.Struct(in{Days: 5}); validate.HasErrors(errs) {
		t.Errorf("expected 5 days to pass, got: %v", errs)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := validate.ParseDate("2026-06-01"); err != nil {
		t.Errorf("expected ISO date to parse: %v", err)
	}
	if _, err := validate.ParseDate("garbage"); err == nil {
		t.Error("expected garbage to fail")
	}
}
