// Package render prints intent results for a terminal.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"kuroma-gateway/internal/domain/entity"

	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#8B5CF6", "#C4B5FD", "#71717A", "#F87171", "#34D399")

// Palette is the stylesheet used for intent output.
type Palette struct {
	title  lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
	ok     lipgloss.Style
}

func NewPalette(title, accent, muted, errColor, ok string) *Palette {
	return &Palette{
		title:  NewStyle(title).Bold(true),
		accent: NewStyle(accent),
		muted:  NewStyle(muted),
		err:    NewStyle(errColor).Bold(true),
		ok:     NewStyle(ok).Bold(true),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

// Intent writes the intent summary followed by the canonical playlist, or a
// hint when the intent produced none.
func Intent(w io.Writer, resp *entity.IntentResponse) {
	header := "Intent: " + styles.accent.Render(resp.Intent)
	if resp.Confidence != nil {
		header += styles.muted.Render(fmt.Sprintf(" · confidence %.0f%%", *resp.Confidence*100))
	}
	fmt.Fprintln(w, header)
	if slots := entities(resp); slots != "" {
		fmt.Fprintln(w, styles.muted.Render(slots))
	}

	playlist := resp.CanonicalPlaylist()
	if playlist == nil || len(playlist.Tracks) == 0 {
		if msg := resp.Message(); msg != "" {
			fmt.Fprintln(w, msg)
		}
		fmt.Fprintf(w, "%s %s. %s\n",
			styles.muted.Render("No playlist produced for this intent, but the assistant intent is"),
			styles.accent.Render(resp.Intent),
			styles.muted.Render(`Try a playlist-style prompt like "create a sad lofi playlist" or "jazz for studying".`),
		)
		return
	}

	Playlist(w, playlist)
}

var entitySlots = []string{"artist", "track", "genre", "mood", "activity"}

func entities(resp *entity.IntentResponse) string {
	var parts []string
	for _, slot := range entitySlots {
		if v := resp.Entity(slot); v != "" {
			parts = append(parts, slot+": "+v)
		}
	}
	return strings.Join(parts, " · ")
}

// Playlist writes a numbered track listing.
func Playlist(w io.Writer, p *entity.CanonicalPlaylist) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.title.Render(p.Title))
	if p.Description != "" {
		fmt.Fprintln(w, styles.muted.Render(p.Description))
	}
	fmt.Fprintln(w)

	for i, t := range p.Tracks {
		fmt.Fprintf(w, "%2d. %s %s\n", i+1, t.Title, styles.muted.Render("– "+t.Artist))
		var details []string
		if t.Album != "" {
			details = append(details, t.Album)
		}
		if t.PreviewURL != "" {
			details = append(details, "preview "+t.PreviewURL)
		}
		if t.SpotifyURL != "" {
			details = append(details, "spotify "+t.SpotifyURL)
		}
		if len(details) > 0 {
			fmt.Fprintf(w, "    %s\n", styles.muted.Render(strings.Join(details, " · ")))
		}
	}
}

// Raw pretty-prints a JSON document.
func Raw(w io.Writer, data []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return err
	}
	fmt.Fprintln(w, styles.title.Render("Raw response"))
	_, err := fmt.Fprintln(w, out.String())
	return err
}

// Error writes a user-facing failure line.
func Error(w io.Writer, msg string) {
	fmt.Fprintln(w, styles.err.Render(msg))
}

// Success writes a user-facing confirmation line.
func Success(w io.Writer, msg string) {
	fmt.Fprintln(w, styles.ok.Render(msg))
}
