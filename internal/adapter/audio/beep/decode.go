// Package beep implements ports.AudioEngine on top of gopxl/beep.
//
// Decoding is pure Go and always available. Output needs the speaker,
// which needs cgo on Linux; builds without it get an engine whose
// Initialize reports domain.ErrAudioUnavailable.
package beep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/tejashwikalptaru/termtune/internal/domain"
)

// DefaultSampleRate is the speaker rate every track is resampled to.
const DefaultSampleRate = 44100

// SupportedFormats lists the extensions the decoder understands.
var SupportedFormats = []string{".mp3", ".flac", ".wav", ".ogg"}

// decoded is an open file and its decoder.
type decoded struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// Close releases the decoder and the file.
func (d *decoded) Close() {
	if d.streamer != nil {
		_ = d.streamer.Close()
	}
	if d.file != nil {
		_ = d.file.Close()
	}
}

// Duration returns the decoded length, or -1 when the decoder cannot tell.
func (d *decoded) Duration() time.Duration {
	n := d.streamer.Len()
	if n <= 0 {
		return -1
	}
	return d.format.SampleRate.D(n)
}

// decode opens path and picks a decoder by extension.
func decode(path string) (*decoded, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var decoder func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext {
	case ".mp3":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	case ".wav":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".ogg":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) }
	default:
		return nil, domain.NewAudioEngineError("load", path, fmt.Sprintf("no decoder for %q", ext), domain.ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewAudioEngineError("load", path, "open failed", err)
	}

	streamer, format, err := decoder(f)
	if err != nil {
		_ = f.Close()
		return nil, domain.NewAudioEngineError("load", path, "decode failed", err)
	}

	return &decoded{file: f, streamer: streamer, format: format}, nil
}
