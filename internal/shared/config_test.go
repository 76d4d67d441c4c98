package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Import.Input != "tracks.json" {
			t.Errorf("expected input tracks.json, got %s", config.Import.Input)
		}
		if config.Import.Output != "not_found_tracks.json" {
			t.Errorf("expected output not_found_tracks.json, got %s", config.Import.Output)
		}
		if config.Credentials.Spotify.TokenURL != "https://accounts.spotify.com/api/token" {
			t.Errorf("unexpected token URL %s", config.Credentials.Spotify.TokenURL)
		}
		if config.Credentials.Spotify.APIURL != "https://api.spotify.com/v1" {
			t.Errorf("unexpected api URL %s", config.Credentials.Spotify.APIURL)
		}
		if config.Credentials.Spotify.ClientID != "" {
			t.Errorf("expected empty client_id by default, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Import.ValidateAppend || config.Import.ContinueOnError {
			t.Error("expected failure handling options to default to false")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Import.Output != DefaultConfig().Import.Output {
			t.Errorf("created config output doesn't match default")
		}

		if err := CreateConfigFile(configPath); !errors.Is(err, os.ErrExist) {
			t.Errorf("creating config file again should fail with ErrExist, got %v", err)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://127.0.0.1:8888/callback"
playlist_id = "pl123"

[import]
output = "missing.json"
validate_append = true
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Import.Output != "missing.json" {
			t.Errorf("expected output missing.json, got %s", config.Import.Output)
		}
		if config.Import.Input != "tracks.json" {
			t.Errorf("expected unset input to keep default, got %s", config.Import.Input)
		}
		if !config.Import.ValidateAppend {
			t.Error("expected validate_append to be true")
		}
		if config.Credentials.Spotify.APIURL != "https://api.spotify.com/v1" {
			t.Errorf("expected unset api_url to keep default, got %s", config.Credentials.Spotify.APIURL)
		}
	})

	t.Run("LoadConfig invalid", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[import\ninput = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "from_file"
		config.Credentials.Spotify.PlaylistID = "file_playlist"

		config.ApplyEnv(lookupFrom(map[string]string{
			EnvClientID:     "from_env",
			EnvClientSecret: "secret",
			EnvAuthCode:     "code",
			EnvPlaylistID:   "",
		}))

		s := config.Credentials.Spotify
		if s.ClientID != "from_env" {
			t.Errorf("expected env to override client_id, got %s", s.ClientID)
		}
		if s.ClientSecret != "secret" {
			t.Errorf("expected client_secret from env, got %s", s.ClientSecret)
		}
		if s.AuthCode != "code" {
			t.Errorf("expected auth code from env, got %s", s.AuthCode)
		}
		if s.PlaylistID != "file_playlist" {
			t.Errorf("expected empty env value to keep file playlist_id, got %s", s.PlaylistID)
		}
	})
}

func TestResolveConfig(t *testing.T) {
	t.Run("env file fills unset variables", func(t *testing.T) {
		dir := t.TempDir()
		envFile := filepath.Join(dir, ".env")
		content := "SPOTIFY_CLIENT_ID=dotenv_id\nSPOTIFY_AUTH_CODE=dotenv_code\n"
		if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		t.Setenv(EnvClientID, "")
		os.Unsetenv(EnvClientID)
		t.Setenv(EnvAuthCode, "shell_code")

		config, err := ResolveConfig(filepath.Join(dir, "absent.toml"), envFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "dotenv_id" {
			t.Errorf("expected client_id from .env, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.AuthCode != "shell_code" {
			t.Errorf("expected shell variable to win over .env, got %s", config.Credentials.Spotify.AuthCode)
		}
	})

	t.Run("invalid config file is a config error", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("not = [valid"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := ResolveConfig(configPath, "")
		if !errors.Is(err, ErrConfig) {
			t.Errorf("expected ErrConfig, got %v", err)
		}
	})
}

func TestRequire(t *testing.T) {
	tt := []struct {
		name    string
		config  SpotifyConfig
		check   func(SpotifyConfig) error
		missing []string
	}{
		{
			name:    "exchange with everything set",
			config:  SpotifyConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "uri", AuthCode: "code"},
			check:   SpotifyConfig.RequireExchange,
			missing: nil,
		},
		{
			name:    "exchange missing secret and code",
			config:  SpotifyConfig{ClientID: "id", RedirectURI: "uri"},
			check:   SpotifyConfig.RequireExchange,
			missing: []string{EnvClientSecret, EnvAuthCode},
		},
		{
			name:    "client missing redirect",
			config:  SpotifyConfig{ClientID: "id"},
			check:   SpotifyConfig.RequireClient,
			missing: []string{EnvRedirectURI},
		},
		{
			name:    "playlist missing",
			config:  SpotifyConfig{},
			check:   SpotifyConfig.RequirePlaylist,
			missing: []string{EnvPlaylistID},
		},
		{
			name:    "playlist set",
			config:  SpotifyConfig{PlaylistID: "pl"},
			check:   SpotifyConfig.RequirePlaylist,
			missing: nil,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check(tc.config)
			if len(tc.missing) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
			for _, key := range tc.missing {
				if !strings.Contains(err.Error(), key) {
					t.Errorf("expected error to name %s, got %v", key, err)
				}
			}
		})
	}
}
