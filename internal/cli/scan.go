package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/tejashwikalptaru/termtune/internal/app"
	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/service"
)

var scanIndex string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the music library and print a summary",
	Long: `Scan the configured music and playlist directories and print what was found.

With --index, list the values of one index (album, artist, genre or year)
and how many tracks each holds.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanIndex, "index", "i", "", "list the values of one index")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	var key domain.TagKey
	if scanIndex != "" {
		key = domain.TagKey(strings.ToLower(scanIndex))
		if !lo.Contains(domain.IndexKeys, key) {
			return fmt.Errorf("unknown index %q (valid: %s)", scanIndex, indexNames())
		}
	}

	application, err := newApplication(app.Config{
		UseMockAudio: true,
		LogOutput:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer application.Shutdown()

	var summary domain.LibraryScannedEvent
	application.EventBus().Subscribe(domain.EventLibraryScanned, func(e domain.Event) {
		summary = e.(domain.LibraryScannedEvent)
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := application.Scan(ctx); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	out := cmd.OutOrStdout()
	writeSummary(out, summary, application.Library().PlaylistDir())
	if key != "" {
		writeIndexValues(out, application.Library().Index(key))
		return nil
	}
	writeIndexTable(out, summary)
	return nil
}

func indexNames() string {
	return strings.Join(lo.Map(domain.IndexKeys, func(k domain.TagKey, _ int) string {
		return string(k)
	}), ", ")
}

func writeSummary(w io.Writer, ev domain.LibraryScannedEvent, playlistDir string) {
	fmt.Fprintf(w, "%s %s\n", text.Bold.Sprint("music:"), ev.MusicDir)
	fmt.Fprintf(w, "%s %s\n", text.Bold.Sprint("playlists:"), playlistDir)
	fmt.Fprintf(w, "%s tracks, %s playlists in %s\n",
		text.FgGreen.Sprint(ev.Tracks), text.FgGreen.Sprint(ev.Playlists), ev.Elapsed.Round(time.Millisecond))
}

func writeIndexTable(w io.Writer, ev domain.LibraryScannedEvent) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Index", "Entries"})
	for _, key := range domain.IndexKeys {
		t.AppendRow(table.Row{string(key), ev.IndexSizes[key]})
	}
	t.Render()
}

func writeIndexValues(w io.Writer, idx *service.MetadataIndex) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{string(idx.Key()), "Tracks"})
	for _, value := range idx.Values() {
		t.AppendRow(table.Row{value, len(idx.Tracks(value))})
	}
	t.AppendFooter(table.Row{"total", idx.Len()})
	t.Render()
}
