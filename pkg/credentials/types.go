package credentials

// Credentials represents the stored API tokens in credentials.toml, keyed
// by endpoint host (e.g. "api.example.com" or "localhost:8080").
type Credentials struct {
	Version int                       `toml:"version"`
	Hosts   map[string]HostCredential `toml:"hosts"`
}

// HostCredential holds the bearer token for a single host.
type HostCredential struct {
	Token string `toml:"token"`
}
