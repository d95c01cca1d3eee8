package parsers

import (
	"fmt"

	"baggage-manager/feature/manifest/models"
)

// minBagIDLength is the shortest tag value worth persisting; anything below
// is a parsing artifact, not a bag tag.
const minBagIDLength = 5

// Validate checks a parsed manifest before persistence. All problems are
// collected in one pass so the station agent sees the full list at once.
func Validate(parsed *models.ParsedManifest) models.ValidationResult {
	var errs []string

	if parsed.FlightNumber == "" || parsed.FlightNumber == UnknownValue {
		errs = append(errs, "flight number is missing")
	}
	if parsed.FlightDate == "" {
		errs = append(errs, "flight date is missing")
	}
	if len(parsed.Items) == 0 {
		errs = append(errs, "no baggage found in manifest")
	}

	for i, item := range parsed.Items {
		if len(item.BagID) < minBagIDLength {
			errs = append(errs, fmt.Sprintf("item %d: bag id %q is too short", i+1, item.BagID))
		}
		if item.PassengerName == "" {
			errs = append(errs, fmt.Sprintf("item %d: passenger name is missing", i+1))
		}
	}

	return models.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
