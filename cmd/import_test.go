package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/trackimport/internal/shared"
	tu "github.com/desertthunder/trackimport/internal/testing"
)

type importFixture struct {
	srv    *tu.SpotifyServer
	runner *Runner
	output *bytes.Buffer
	input  string
	out    string
}

func (f *importFixture) stdout() string { return f.output.String() }

func newImportFixture(t *testing.T, tracks string) *importFixture {
	t.Helper()
	srv := tu.NewSpotifyServer(t)
	dir := t.TempDir()

	f := &importFixture{
		srv:   srv,
		input: filepath.Join(dir, "tracks.json"),
		out:   filepath.Join(dir, "not_found_tracks.json"),
	}
	tu.MustWriteFile(t, f.input, tracks)

	f.runner, f.output = newTestRunner(testConfig(srv))
	return f
}

func (f *importFixture) run(args ...string) error {
	return run(f.runner, append([]string{"import", "--input", f.input, "--output", f.out}, args...)...)
}

func TestImport(t *testing.T) {
	t.Run("one added, one not found", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"},{"artist":"B","title":"T2"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}

		if err := f.run(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := "Track added successfully: A - T1\n" +
			"Track not found: B - T2\n" +
			"Not found tracks written to " + f.out + "\n"
		if f.stdout() != want {
			t.Errorf("unexpected output:\n%q\nwant:\n%q", f.stdout(), want)
		}

		wantFile := "[\n  {\n    \"artist\": \"B\",\n    \"title\": \"T2\"\n  }\n]"
		if content := tu.MustReadFile(t, f.out); content != wantFile {
			t.Errorf("unexpected not-found file %q", content)
		}

		if f.srv.TokenCalls != 1 {
			t.Errorf("expected one token exchange, got %d", f.srv.TokenCalls)
		}
		if len(f.srv.AppendedURIs) != 1 || f.srv.AppendedURIs[0] != "spotify:track:111" {
			t.Errorf("unexpected appended uris %v", f.srv.AppendedURIs)
		}
	})

	t.Run("runs as root default action", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}

		if err := run(f.runner, "--input", f.input, "--output", f.out); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f.stdout() != "Track added successfully: A - T1\n" {
			t.Errorf("unexpected output %q", f.stdout())
		}
	})

	t.Run("only the first search hit is used", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:first", "spotify:track:second"}

		if err := f.run(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.srv.AppendedURIs) != 1 || f.srv.AppendedURIs[0] != "spotify:track:first" {
			t.Errorf("unexpected appended uris %v", f.srv.AppendedURIs)
		}
	})

	t.Run("all matched leaves stale output untouched", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}
		tu.MustWriteFile(t, f.out, "stale")

		if err := f.run(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if content := tu.MustReadFile(t, f.out); content != "stale" {
			t.Errorf("expected stale file untouched, got %q", content)
		}
		if strings.Contains(f.stdout(), "Not found tracks written") {
			t.Errorf("unexpected write notice in %q", f.stdout())
		}
	})

	t.Run("empty input exchanges but searches nothing", func(t *testing.T) {
		f := newImportFixture(t, `[]`)

		if err := f.run(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f.srv.TokenCalls != 1 || f.srv.SearchCalls != 0 {
			t.Errorf("expected 1 token call and 0 searches, got %d and %d", f.srv.TokenCalls, f.srv.SearchCalls)
		}
		tu.AssertFileNotExists(t, f.out)
		if f.stdout() != "" {
			t.Errorf("expected no output, got %q", f.stdout())
		}
	})

	t.Run("token endpoint rejection", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.srv.TokenStatus = 400

		err := f.run()
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
		if f.srv.SearchCalls != 0 {
			t.Errorf("expected no searches, got %d", f.srv.SearchCalls)
		}
		tu.AssertFileNotExists(t, f.out)
	})

	t.Run("missing auth code fails before any request", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.runner.config.Credentials.Spotify.AuthCode = ""

		err := f.run()
		if !errors.Is(err, shared.ErrConfig) || !strings.Contains(err.Error(), shared.EnvAuthCode) {
			t.Fatalf("expected ErrConfig naming %s, got %v", shared.EnvAuthCode, err)
		}
		if f.srv.TokenCalls != 0 {
			t.Errorf("expected no token call, got %d", f.srv.TokenCalls)
		}
	})

	t.Run("invalid input fails before exchange", func(t *testing.T) {
		f := newImportFixture(t, `{"artist":"A","title":"T1"}`)

		if err := f.run(); !errors.Is(err, shared.ErrLoad) {
			t.Fatalf("expected ErrLoad, got %v", err)
		}
		if f.srv.TokenCalls != 0 {
			t.Errorf("expected no token call, got %d", f.srv.TokenCalls)
		}
	})

	t.Run("missing playlist id fails at first match", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"B","title":"T2"},{"artist":"A","title":"T1"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}
		f.runner.config.Credentials.Spotify.PlaylistID = ""

		err := f.run()
		if !errors.Is(err, shared.ErrConfig) || !strings.Contains(err.Error(), shared.EnvPlaylistID) {
			t.Fatalf("expected ErrConfig naming %s, got %v", shared.EnvPlaylistID, err)
		}
		if f.stdout() != "Track not found: B - T2\n" {
			t.Errorf("unexpected output %q", f.stdout())
		}
		tu.AssertFileNotExists(t, f.out)
	})

	t.Run("rejected append is ignored by default", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}
		f.srv.AppendStatus = 403

		if err := f.run(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f.stdout() != "Track added successfully: A - T1\n" {
			t.Errorf("unexpected output %q", f.stdout())
		}
	})

	t.Run("rejected append aborts with validation", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"},{"artist":"B","title":"T2"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}
		f.srv.AppendStatus = 403

		if err := f.run("--validate-append"); !errors.Is(err, shared.ErrAppend) {
			t.Fatalf("expected ErrAppend, got %v", err)
		}
		if f.srv.SearchCalls != 1 {
			t.Errorf("expected run to stop after first track, got %d searches", f.srv.SearchCalls)
		}
		tu.AssertFileNotExists(t, f.out)
	})

	t.Run("continue on error writes not found and reports partial failure", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"},{"artist":"B","title":"T2"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}
		f.srv.AppendStatus = 403

		err := f.run("--validate-append", "--continue-on-error")
		if !errors.Is(err, shared.ErrPartialFailure) {
			t.Fatalf("expected ErrPartialFailure, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(f.stdout()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %q", f.stdout())
		}
		if !strings.HasPrefix(lines[0], "Track failed: A - T1: playlist append failed") {
			t.Errorf("unexpected failure line %q", lines[0])
		}
		if lines[1] != "Track not found: B - T2" {
			t.Errorf("unexpected not found line %q", lines[1])
		}

		if content := tu.MustReadFile(t, f.out); strings.Contains(content, `"A"`) || !strings.Contains(content, `"B"`) {
			t.Errorf("not-found file should hold only unmatched tracks, got %q", content)
		}
	})

	t.Run("summary", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"},{"artist":"B","title":"T2"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}

		if err := f.run("--summary"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, want := range []string{"Import Complete", "Added:     1", "Not found: 1", f.out} {
			if !strings.Contains(f.stdout(), want) {
				t.Errorf("summary missing %q in %q", want, f.stdout())
			}
		}
	})

	t.Run("config defaults for paths", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"B","title":"T2"}]`)
		f.runner.config.Import.Input = f.input
		f.runner.config.Import.Output = f.out

		if err := run(f.runner, "import"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, f.out)
	})

	t.Run("no input path", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.runner.config.Import.Input = ""

		err := run(f.runner, "import", "--output", f.out)
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Fatalf("expected ErrMissingArgument, got %v", err)
		}
		if f.srv.TokenCalls != 0 {
			t.Errorf("expected no token call, got %d", f.srv.TokenCalls)
		}
	})

	t.Run("no output path", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.runner.config.Import.Output = ""

		err := run(f.runner, "import", "--input", f.input)
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Fatalf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("failed result write is logged", func(t *testing.T) {
		f := newImportFixture(t, `[{"artist":"A","title":"T1"}]`)
		f.srv.Matches[tu.Key("A", "T1")] = []string{"spotify:track:111"}

		var logs bytes.Buffer
		f.runner = NewRunner(RunnerOpts{
			Config: testConfig(f.srv),
			Logger: shared.NewLogger(&logs),
			Output: &tu.FWriter{},
		})

		if err := f.run(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(logs.String(), "failed to write track result") {
			t.Errorf("expected write warning in log, got %q", logs.String())
		}
		if len(f.srv.AppendedURIs) != 1 {
			t.Errorf("expected the track to be appended, got %v", f.srv.AppendedURIs)
		}
	})
}
