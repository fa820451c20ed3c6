package gog

// Config represents the configuration for the GOG client
type Config struct {
	// CatalogURL is the catalog search endpoint
	CatalogURL string

	// GamePageURL is the base URL of the public game pages used for
	// description and rating enrichment
	GamePageURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CatalogURL == "" {
		return ErrInvalidConfig
	}
	if c.GamePageURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
