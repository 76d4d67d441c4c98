// package formatter renders track lists as CSV, Markdown or plain text, and renders the run summary
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/trackimport/internal/models"
	"github.com/desertthunder/trackimport/internal/shared"
)

// Format names a report output format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "text"
)

// ParseFormat resolves a user-supplied format name, accepting common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "text", "txt", "":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (must be csv, markdown or text)", shared.ErrInvalidArgument, name)
	}
}

// ExportToCSV converts tracks to CSV with columns: Artist, Title
func ExportToCSV(tracks []models.TrackRequest) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Artist", "Title"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		if err := writer.Write([]string{track.Artist, track.Title}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts tracks to a Markdown document headed by title
func ExportToMarkdown(title string, tracks []models.TrackRequest) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	buf.WriteString("| # | Artist | Title |\n")
	buf.WriteString("|---|--------|-------|\n")
	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s |\n", i+1, escapeCell(track.Artist), escapeCell(track.Title)))
	}

	return buf.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ExportToText converts tracks to plain text format
func ExportToText(title string, tracks []models.TrackRequest) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, track))
	}

	return buf.Bytes(), nil
}

// Render converts tracks to the given format.
func Render(format Format, title string, tracks []models.TrackRequest) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(tracks)
	case Markdown:
		return ExportToMarkdown(title, tracks)
	case Text:
		return ExportToText(title, tracks)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteReport renders tracks and writes them to path.
func WriteReport(format Format, title string, tracks []models.TrackRequest, path string) error {
	data, err := Render(format, title, tracks)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWrite, err)
	}
	return nil
}

// Summary holds the counts shown after an import run.
type Summary struct {
	Total    int
	Added    int
	NotFound int
	Failed   int
	Output   string // Path of the not-found file, empty if none was written
}

// RenderSummary renders s as a bordered block for the terminal.
func RenderSummary(s Summary) string {
	lines := []string{
		styles.title.Render("Import Complete"),
		fmt.Sprintf("Tracks:    %d", s.Total),
		styles.ok.Render(fmt.Sprintf("Added:     %d", s.Added)),
		styles.warn.Render(fmt.Sprintf("Not found: %d", s.NotFound)),
	}
	if s.Failed > 0 {
		lines = append(lines, styles.err.Render(fmt.Sprintf("Failed:    %d", s.Failed)))
	}
	if s.Output != "" {
		lines = append(lines, styles.muted.Render(fmt.Sprintf("Written:   %s", s.Output)))
	}

	return styles.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
