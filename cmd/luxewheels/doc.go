// Package main provides the LuxeWheels CLI.
//
//	luxewheels migrate           # run pending migrations
//	luxewheels migrate:rollback  # rollback last batch
//	luxewheels migrate:status    # show migration status
//	luxewheels seed              # seed demo users + fleet
//	luxewheels fleet:refresh     # one availability refresh pass
//	luxewheels fleet:list        # print the catalogue for a tier
//	luxewheels schedule:run      # nightly refresh worker + /metrics
package main
