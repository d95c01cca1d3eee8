package database

import "gorm.io/gorm"

// WeekExpr returns the database-specific SQL fragment that formats a datetime
// column as an ISO year-week bucket (e.g. "2026-35"). Used by the statistics
// aggregation, which groups manifest reports per week.
func WeekExpr(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return "strftime('%Y-%W', " + column + ")"
	case "mysql":
		return "DATE_FORMAT(" + column + ", '%Y-%u')"
	default:
		return ""
	}
}

// MonthExpr returns the database-specific SQL fragment that formats a datetime
// column as a year-month bucket (e.g. "2026-08").
func MonthExpr(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return "strftime('%Y-%m', " + column + ")"
	case "mysql":
		return "DATE_FORMAT(" + column + ", '%Y-%m')"
	default:
		return ""
	}
}
