// Package audio plays an optional looping soundtrack and reports its loudness.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/solar-system/internal/errs"
)

const (
	tapSize         = 8192
	levelWindow     = 2048
	smoothingFactor = 0.6
)

// ErrUnsupported is returned for files that are not WAV, MP3 or FLAC.
var ErrUnsupported = errors.New("unsupported audio format")

// Soundtrack owns the speaker. It is driven from the render loop; the speaker
// goroutine only touches the Tap and Ctrl under speaker.Lock.
type Soundtrack struct {
	log *slog.Logger

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap

	level    float64
	paused   bool
	initDone bool
}

func NewSoundtrack(log *slog.Logger) *Soundtrack {
	return &Soundtrack{log: log}
}

// Playing reports whether a track is loaded.
func (s *Soundtrack) Playing() bool { return s.ctrl != nil }

func (s *Soundtrack) Paused() bool { return s.paused }

// Decode opens path with the decoder matching its extension.
func Decode(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	var decode func(*os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	default:
		return nil, nil, beep.Format{}, &errs.ResourceLoadError{Path: path, Err: ErrUnsupported}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, &errs.ResourceLoadError{Path: path, Err: err}
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, beep.Format{}, &errs.ResourceLoadError{Path: path, Err: err}
	}
	return f, streamer, format, nil
}

// Play replaces the current track with path, looping forever.
func (s *Soundtrack) Play(path string) error {
	f, streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	tap := NewTap(beep.Loop(-1, streamer), tapSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !s.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		s.initDone = true
	case s.format.SampleRate != format.SampleRate:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
	default:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	s.closeCurrent()

	s.file = f
	s.streamer = streamer
	s.format = format
	s.ctrl = ctrl
	s.tap = tap
	s.paused = false
	s.level = 0

	speaker.Play(ctrl)
	s.log.Info("soundtrack playing", "path", path, "rate", int(format.SampleRate))
	return nil
}

// TogglePause pauses or resumes playback.
func (s *Soundtrack) TogglePause() {
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.paused = !s.paused
	s.ctrl.Paused = s.paused
	speaker.Unlock()
}

// Update refreshes the loudness level; call once per frame.
func (s *Soundtrack) Update() {
	if s.tap == nil {
		return
	}
	target := 0.0
	if !s.paused {
		// compress for a livelier glow
		target = math.Pow(RMS(s.tap.Snapshot(levelWindow)), 0.3)
	}
	s.level = smoothingFactor*s.level + (1-smoothingFactor)*target
}

// Level is the smoothed loudness in [0, 1].
func (s *Soundtrack) Level() float64 {
	return math.Max(0, math.Min(1, s.level))
}

// Close stops playback and releases the file.
func (s *Soundtrack) Close() {
	if s.initDone {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	s.closeCurrent()
	s.ctrl = nil
	s.tap = nil
}

func (s *Soundtrack) closeCurrent() {
	if s.streamer != nil {
		_ = s.streamer.Close()
		s.streamer = nil
	}
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
}
