package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tejashwikalptaru/termtune/internal/navigation"
)

// Colors
var (
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Border    = lipgloss.Color("#4B5563") // Light gray
	Text      = lipgloss.Color("#F9FAFB") // White
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
)

// Text styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	crumbStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	itemStyle = lipgloss.NewStyle().
			Foreground(Text)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	noticeStyle = lipgloss.NewStyle().
			Foreground(Accent)

	errorStyle = lipgloss.NewStyle().
			Foreground(Error)

	playingStyle = lipgloss.NewStyle().
			Foreground(Success)

	barFillStyle = lipgloss.NewStyle().
			Foreground(Primary)

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(Border)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)

// Symbols
const (
	homeIcon     = "☯"
	menuIcon     = "➤ "
	dirIcon      = "ᗕ "
	trackIcon    = "♬ "
	playlistIcon = "✎ "
	bucketIcon   = "≡ "
	fillChar     = "█"
	emptyChar    = "▒"
	ellipsis     = "…"
)

// Fixed strings
const (
	appTitle   = "termtune"
	emptyStr   = "empty"
	noLoadStr  = "..."
	noTimeStr  = "-:--"
	timeSepStr = " of "
	byStr      = " by "
)

// icon returns the prefix drawn before an entry.
func icon(kind navigation.EntryKind) string {
	switch kind {
	case navigation.EntryMenu, navigation.EntryOption, navigation.EntryCommand:
		return menuIcon
	case navigation.EntryDirectory:
		return dirIcon
	case navigation.EntryTrack:
		return trackIcon
	case navigation.EntryPlaylist:
		return playlistIcon
	case navigation.EntryBucket:
		return bucketIcon
	default:
		return "  "
	}
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// padRight pads s with spaces to width terminal cells, truncating if needed.
func padRight(s string, width int) string {
	s = truncate(s, width)
	return s + strings.Repeat(" ", max(0, width-runewidth.StringWidth(s)))
}
