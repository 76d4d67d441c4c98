package shared

import (
	"strings"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	const url = "https://accounts.spotify.com/authorize?client_id=x&state=y"

	tc := []struct {
		goos string
		want string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasSuffix(cmd.Args[0], tt.want) {
				t.Errorf("expected %s, got %v", tt.want, cmd.Args)
			}
			if cmd.Args[len(cmd.Args)-1] != url {
				t.Errorf("expected url passed unmodified as last argument, got %v", cmd.Args)
			}
		})
	}

	t.Run("unsupported platform", func(t *testing.T) {
		original := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = original }()

		if err := OpenBrowser(url); err == nil || !strings.Contains(err.Error(), "unsupported platform: plan9") {
			t.Errorf("expected unsupported platform error, got %v", err)
		}
	})
}
