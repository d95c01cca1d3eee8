// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the station airport code and the supported manifest families.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, the IATA code of the airport
// this instance runs at, and the default airline manifest family (Ethiopian,
// ASKY, Air Cote d'Ivoire, Generic) used when auto-detection is inconclusive.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the manifest parsers to validate family names.
package server
