package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tejashwikalptaru/termtune/internal/domain"
)

// formatTime renders d as m:ss, with hours and days in front when needed.
func formatTime(d time.Duration) string {
	if d < 0 {
		return noTimeStr
	}

	total := int64(d / time.Second)
	days, rem := total/86400, total%86400
	hours, rem := rem/3600, rem%3600
	minutes, seconds := rem/60, rem%60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd, ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%dh, ", hours)
	}
	fmt.Fprintf(&b, "%d:%02d", minutes, seconds)
	return b.String()
}

// timeLine renders "m:ss of m:ss (NN%)", or "..." when nothing has a length.
func timeLine(meta domain.DisplayMetadata, ok bool) string {
	if !ok || meta.Total <= 0 {
		return noLoadStr
	}
	return fmt.Sprintf("%s%s%s (%d%%)", formatTime(meta.Current), timeSepStr, formatTime(meta.Total), meta.Percent())
}

// progressBar renders a width-cell bar filled to the playback percentage.
func progressBar(meta domain.DisplayMetadata, ok bool, width int) string {
	if !ok || meta.Total <= 0 || width <= 0 {
		return noLoadStr
	}
	filled := min(width, int(int64(width)*int64(meta.Current)/int64(meta.Total)))
	filled = max(0, filled)
	return barFillStyle.Render(strings.Repeat(fillChar, filled)) +
		barEmptyStyle.Render(strings.Repeat(emptyChar, width-filled))
}

// trackLine renders "title by artist", falling back to the file name.
func trackLine(meta domain.DisplayMetadata) string {
	title := meta.Title
	if title == "" {
		title = filepath.Base(meta.Path)
	}
	if meta.Artist == "" {
		return title
	}
	return title + byStr + meta.Artist
}
