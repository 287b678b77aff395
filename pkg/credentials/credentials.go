// Package credentials stores bearer tokens outside config.toml, in a
// private credentials.toml next to it.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/vidgen/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0
)

// Manager manages reading and writing credentials.toml in the .vidgen/ directory.
type Manager struct {
	targetPath string
}

// NewManager creates a new credentials Manager. If override is non-empty it is
// used as the .vidgen/ directory; otherwise the standard dotdir resolution
// applies. When no .vidgen/ directory is found, one is created at ~/.vidgen/.
func NewManager(override string) (*Manager, error) {
	target, err := dotdir.NewManager().Create(override)
	if err != nil {
		return nil, err
	}

	return &Manager{targetPath: filepath.Join(target, credentialsFile)}, nil
}

// Load reads credentials.toml from the target directory.
// Returns an empty Credentials if the file does not exist.
func (m *Manager) Load() (*Credentials, error) {
	data, err := os.ReadFile(m.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{
				Version: currentVersion,
				Hosts:   make(map[string]HostCredential),
			}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds := &Credentials{}
	if err := toml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	if creds.Hosts == nil {
		creds.Hosts = make(map[string]HostCredential)
	}

	return creds, nil
}

// Save writes credentials to credentials.toml with 0600 permissions.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(m.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}

// SetToken stores a token for host.
func (m *Manager) SetToken(host, token string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Hosts[host] = HostCredential{Token: token}

	return m.Save(creds)
}

// Token returns the stored token for host, or "" if none is stored.
func (m *Manager) Token(host string) (string, error) {
	creds, err := m.Load()
	if err != nil {
		return "", err
	}

	return creds.Hosts[host].Token, nil
}

// RemoveToken deletes the stored token for host.
func (m *Manager) RemoveToken(host string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	delete(creds.Hosts, host)

	return m.Save(creds)
}

// ListHosts returns the sorted hosts that have stored tokens.
func (m *Manager) ListHosts() ([]string, error) {
	creds, err := m.Load()
	if err != nil {
		return nil, err
	}

	hosts := make([]string, 0, len(creds.Hosts))
	for h := range creds.Hosts {
		hosts = append(hosts, h)
	}
	slices.Sort(hosts)

	return hosts, nil
}

// GetTarget returns the resolved path to the credentials file.
func (m *Manager) GetTarget() string {
	return m.targetPath
}

// HostOf returns the lowercased host[:port] of an endpoint URL. A bare host
// is returned as given.
func HostOf(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", errors.New("endpoint is empty")
	}
	if !strings.Contains(endpoint, "://") {
		return strings.ToLower(strings.TrimSuffix(endpoint, "/")), nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q: no host", endpoint)
	}
	return strings.ToLower(u.Host), nil
}

// Lookup returns the token stored for endpoint's host without creating any
// directory. It returns "" when no .vidgen/ directory or token exists.
func Lookup(override, endpoint string) (string, error) {
	target, err := dotdir.NewManager().Target(override)
	if err != nil || target == "" {
		return "", err
	}

	host, err := HostOf(endpoint)
	if err != nil {
		return "", err
	}

	m := &Manager{targetPath: filepath.Join(target, credentialsFile)}
	return m.Token(host)
}
