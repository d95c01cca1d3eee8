// Package utils provides common utility functions for the baggage-manager application.
// It includes helper functions for type conversion used by the store facade
// (boolean-as-integer columns) and the manifest parsers (loose numeric coercion).
package utils
