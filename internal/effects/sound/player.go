package sound

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ErrUnknownCue is returned for a cue without a tone sequence.
var ErrUnknownCue = errors.New("unknown sound cue")

// OtoPlayer plays cues through the default audio device. oto allows one
// context per process, so it is created lazily and reused.
type OtoPlayer struct {
	logger *slog.Logger
	volume float64

	once    sync.Once
	context *oto.Context
	initErr error
}

// NewOtoPlayer creates a player with volume in 0..100.
func NewOtoPlayer(volume int, logger *slog.Logger) *OtoPlayer {
	if logger == nil {
		logger = slog.Default()
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return &OtoPlayer{
		logger: logger,
		volume: float64(volume) / 100,
	}
}

// Play renders the cue and blocks until it has finished or ctx is done.
func (player *OtoPlayer) Play(ctx context.Context, cue Cue) error {
	tones := Sequence(cue)
	if tones == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCue, cue)
	}
	if err := player.open(); err != nil {
		return err
	}

	stream := player.context.NewPlayer(bytes.NewReader(Render(tones)))
	stream.SetVolume(player.volume)
	stream.Play()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for stream.IsPlaying() {
		select {
		case <-ctx.Done():
			stream.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("play %s cue: %w", cue, err)
	}
	return nil
}

func (player *OtoPlayer) open() error {
	player.once.Do(func() {
		otoContext, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: ChannelCount,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			player.initErr = fmt.Errorf("create oto context: %w", err)
			return
		}
		<-ready
		player.context = otoContext
		player.logger.Debug("audio output initialized", slog.Int("sample_rate", SampleRate), slog.Int("channels", ChannelCount))
	})
	return player.initErr
}

// Silent is a Player that plays nothing.
type Silent struct{}

// Play returns immediately.
func (Silent) Play(context.Context, Cue) error {
	return nil
}
