package config

// APIConfig defines settings for the board's HTTP read side.
type APIConfig struct {
	// ListenAddr is the address the board server binds to.
	ListenAddr string `json:"listen_addr"`
	// Token, when non-empty, is required as a bearer token on board routes.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
}
