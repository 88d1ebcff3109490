package generator

// Config drives the synthetic user generator.
type Config struct {
	NumUsers int
	Seed     int64
}

// DefaultConfig returns baseline settings matching the dashboard's expected
// fallback dataset.
func DefaultConfig() Config {
	return Config{
		NumUsers: 500,
		Seed:     42,
	}
}
