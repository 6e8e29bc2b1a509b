// Package effects turns round timer transitions into notifications and tone
// cues on a worker goroutine, so the polling loop never waits on them.
package effects

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"tomato/internal/core/roundtimer"
	"tomato/internal/effects/sound"
)

// Notifier surfaces a user-visible notification.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Player plays a tone cue and returns once it has finished.
type Player interface {
	Play(ctx context.Context, cue sound.Cue) error
}

// Options configures a Dispatcher.
type Options struct {
	QueueSize            int
	NotificationsEnabled bool
	SoundEnabled         bool
}

// Effect is what a transition asks the user to see and hear. An empty Title
// means no notification.
type Effect struct {
	Title string
	Body  string
	Cue   sound.Cue
}

// EffectFor maps a transition to its notification and tone.
func EffectFor(transition roundtimer.Transition) Effect {
	switch transition.Kind {
	case roundtimer.TransitionRoundStarted:
		return Effect{Cue: sound.CueStart}
	case roundtimer.TransitionRoundFinished:
		body := "Take a break"
		if transition.To == roundtimer.StateStopped {
			body = "Round complete"
		}
		return Effect{Title: "Time is up!", Body: body, Cue: sound.CueFinish}
	case roundtimer.TransitionBreakFinished:
		return Effect{Title: "Back to work!", Body: "Start focusing again :)", Cue: sound.CueStart}
	default:
		return Effect{}
	}
}

type job struct {
	id         uuid.UUID
	transition roundtimer.Transition
}

// Dispatcher queues transitions and delivers their effects from Run. It
// also fans transitions out to subscribers.
type Dispatcher struct {
	notifier Notifier
	player   Player
	logger   *slog.Logger
	queue    chan job

	notificationsEnabled atomic.Bool
	soundEnabled         atomic.Bool

	mu          sync.Mutex
	subscribers []chan roundtimer.Transition
	closed      bool
}

// New creates a Dispatcher. A nil notifier or player disables that effect.
func New(options Options, notifier Notifier, player Player, logger *slog.Logger) *Dispatcher {
	if options.QueueSize <= 0 {
		options.QueueSize = 8
	}
	if logger == nil {
		logger = slog.Default()
	}
	dispatcher := &Dispatcher{
		notifier: notifier,
		player:   player,
		logger:   logger,
		queue:    make(chan job, options.QueueSize),
	}
	dispatcher.notificationsEnabled.Store(options.NotificationsEnabled)
	dispatcher.soundEnabled.Store(options.SoundEnabled)
	return dispatcher
}

// SetNotificationsEnabled switches notifications for jobs delivered from now
// on.
func (dispatcher *Dispatcher) SetNotificationsEnabled(enabled bool) {
	dispatcher.notificationsEnabled.Store(enabled)
}

// SetSoundEnabled switches tone cues for jobs delivered from now on.
func (dispatcher *Dispatcher) SetSoundEnabled(enabled bool) {
	dispatcher.soundEnabled.Store(enabled)
}

// Emit enqueues a transition without blocking. When the queue is full the
// transition's effects are dropped.
func (dispatcher *Dispatcher) Emit(transition roundtimer.Transition) {
	dispatcher.publish(transition)

	entry := job{id: uuid.New(), transition: transition}
	select {
	case dispatcher.queue <- entry:
	default:
		dispatcher.logger.Warn("effect queue full, dropping transition",
			slog.String("job_id", entry.id.String()),
			slog.String("kind", string(transition.Kind)))
	}
}

// Subscribe registers an observer channel. It is closed when Run returns.
func (dispatcher *Dispatcher) Subscribe(buffer int) <-chan roundtimer.Transition {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan roundtimer.Transition, buffer)
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if dispatcher.closed {
		close(ch)
		return ch
	}
	dispatcher.subscribers = append(dispatcher.subscribers, ch)
	return ch
}

// Run delivers queued effects until ctx is cancelled.
func (dispatcher *Dispatcher) Run(ctx context.Context) error {
	defer dispatcher.closeSubscribers()

	for {
		select {
		case <-ctx.Done():
			return nil
		case entry := <-dispatcher.queue:
			dispatcher.deliver(ctx, entry)
		}
	}
}

func (dispatcher *Dispatcher) deliver(ctx context.Context, entry job) {
	effect := EffectFor(entry.transition)
	logger := dispatcher.logger.With(
		slog.String("job_id", entry.id.String()),
		slog.String("kind", string(entry.transition.Kind)),
	)
	logger.Debug("delivering transition effects",
		slog.String("from", string(entry.transition.From)),
		slog.String("to", string(entry.transition.To)),
		slog.Int("completed_rounds", entry.transition.CompletedRounds))

	if effect.Title != "" && dispatcher.notificationsEnabled.Load() && dispatcher.notifier != nil {
		if err := dispatcher.notifier.Notify(ctx, effect.Title, effect.Body); err != nil {
			logger.Warn("notification failed", slog.Any("error", err))
		}
	}
	if effect.Cue != "" && dispatcher.soundEnabled.Load() && dispatcher.player != nil {
		if err := dispatcher.player.Play(ctx, effect.Cue); err != nil {
			logger.Warn("sound cue failed", slog.String("cue", string(effect.Cue)), slog.Any("error", err))
		}
	}
}

func (dispatcher *Dispatcher) publish(transition roundtimer.Transition) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	for _, ch := range dispatcher.subscribers {
		select {
		case ch <- transition:
		default:
		}
	}
}

func (dispatcher *Dispatcher) closeSubscribers() {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if dispatcher.closed {
		return
	}
	dispatcher.closed = true
	for _, ch := range dispatcher.subscribers {
		close(ch)
	}
	dispatcher.subscribers = nil
}

var _ roundtimer.EffectSink = (*Dispatcher)(nil)
