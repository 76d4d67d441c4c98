package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/subosito/gotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables read into [SpotifyConfig].
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvRedirectURI  = "SPOTIFY_REDIRECT_URI"
	EnvAuthCode     = "SPOTIFY_AUTH_CODE"
	EnvPlaylistID   = "SPOTIFY_PLAYLIST_ID"
)

// Config represents the application configuration loaded from a TOML file and overlaid with the environment.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Import      ImportConfig      `toml:"import"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials and endpoints.
//
// AuthCode is single use and is only ever read from the environment.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	AuthCode     string `toml:"-"`
	PlaylistID   string `toml:"playlist_id"`
	AuthURL      string `toml:"auth_url"`
	TokenURL     string `toml:"token_url"`
	APIURL       string `toml:"api_url"`
}

// ImportConfig contains file locations and failure handling for the import run.
type ImportConfig struct {
	Input           string `toml:"input"`
	Output          string `toml:"output"`
	ValidateAppend  bool   `toml:"validate_append"`
	ContinueOnError bool   `toml:"continue_on_error"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys absent from the file keep their [DefaultConfig] values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, os.ErrExist)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process environment.
//
// Variables that are already set are left alone. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays non-empty environment values onto the Spotify credentials.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	s := &c.Credentials.Spotify
	for key, field := range map[string]*string{
		EnvClientID:     &s.ClientID,
		EnvClientSecret: &s.ClientSecret,
		EnvRedirectURI:  &s.RedirectURI,
		EnvAuthCode:     &s.AuthCode,
		EnvPlaylistID:   &s.PlaylistID,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}
}

// ResolveConfig builds the run's configuration snapshot: defaults, then the TOML file at configPath
// (if it exists), then the dotenv file, then the process environment.
func ResolveConfig(configPath, envFile string) (*Config, error) {
	config := DefaultConfig()
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			loaded, err := LoadConfig(configPath)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrConfig, err)
			}
			config = loaded
		}
	}

	if err := LoadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	config.ApplyEnv(os.LookupEnv)
	return config, nil
}

// RequireExchange checks the four values needed for the authorization code exchange.
func (s SpotifyConfig) RequireExchange() error {
	return require(map[string]string{
		EnvClientID:     s.ClientID,
		EnvClientSecret: s.ClientSecret,
		EnvRedirectURI:  s.RedirectURI,
		EnvAuthCode:     s.AuthCode,
	}, EnvClientID, EnvClientSecret, EnvRedirectURI, EnvAuthCode)
}

// RequireClient checks the values needed to build an authorize URL.
func (s SpotifyConfig) RequireClient() error {
	return require(map[string]string{
		EnvClientID:    s.ClientID,
		EnvRedirectURI: s.RedirectURI,
	}, EnvClientID, EnvRedirectURI)
}

// RequirePlaylist checks that a destination playlist is configured.
func (s SpotifyConfig) RequirePlaylist() error {
	return require(map[string]string{EnvPlaylistID: s.PlaylistID}, EnvPlaylistID)
}

func require(values map[string]string, order ...string) error {
	var missing []string
	for _, key := range order {
		if values[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s not set", ErrConfig, strings.Join(missing, ", "))
	}
	return nil
}
