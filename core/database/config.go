package database

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	// The embedded sqlite store is the default for station deployments.
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the sqlite database file path. Only used when Driver is sqlite.
	Path string `mapstructure:"path" default:"baggage.db"`
	// Host is the database host. Only used when Driver is mysql.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"baggage"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
