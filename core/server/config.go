package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Airport is the IATA code of the station this instance serves (e.g. ABJ, LFW).
	Airport string `mapstructure:"airport" default:"ABJ"`
	// DefaultFamily is the airline manifest family tried when auto-detection
	// finds no match (ethiopian, asky, aircote, generic).
	DefaultFamily string `mapstructure:"default_family" default:"generic"`
}

const (
	FamilyEthiopian = "ethiopian"
	FamilyAsky      = "asky"
	FamilyAircote   = "aircote"
	FamilyGeneric   = "generic"
)

// IsValidFamily checks if the configured default manifest family is valid.
func (c Config) IsValidFamily() bool {
	switch c.DefaultFamily {
	case FamilyEthiopian, FamilyAsky, FamilyAircote, FamilyGeneric:
		return true
	default:
		return false
	}
}

// IsValidAirport checks that the station code looks like an IATA airport code.
func (c Config) IsValidAirport() bool {
	if len(c.Airport) != 3 {
		return false
	}
	for _, r := range c.Airport {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
