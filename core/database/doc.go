// Package database handles database connections and dialect helpers.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// the embedded sqlite store used at a station, or a mysql connection for
// multi-station deployments.
//
// # Connect
//
// The generic Connect function establishes a connection to the database and
// verifies it with a ping. Schema migration is owned by the feature models
// (see feature/baggage/models).
//
// # Dialect Helpers
//
// WeekExpr and MonthExpr return the dialect-specific SQL fragments the
// statistics queries need to bucket reports by week and month, since sqlite
// (strftime) and mysql (DATE_FORMAT) disagree on date formatting.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
