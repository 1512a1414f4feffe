// Package engine implements the typing-test session: a timed exercise that
// validates keystrokes against a target text and derives accuracy and WPM.
//
// A Session moves Idle -> Running -> Finished and back to Idle on Reset.
// Keystrokes are compared against the head of the remaining text; a correct
// key consumes one character, an incorrect one only bumps the error count.
// There is no backspace. The countdown, error hook and subscribers are all
// supplied through Options so hosts and tests control every side effect.
package engine

import (
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/verte-zerg/speedtype/internal/countdown"
	"github.com/verte-zerg/speedtype/internal/generator"
	"github.com/verte-zerg/speedtype/internal/metrics"
	"github.com/verte-zerg/speedtype/internal/wordlist"
)

const (
	// DefaultDuration is the session length in seconds.
	DefaultDuration = 60
	// DefaultErrorCeiling is the number of incorrect keystrokes that ends a session.
	DefaultErrorCeiling = 50
	// DefaultPlaceholder is shown as the target text while Idle.
	DefaultPlaceholder = "Welcome, press enter to begin the one-minute typing speed test"
)

// Timer drives time-based termination. Start must not invoke its callbacks
// synchronously, and Cancel must be safe to call at any time.
type Timer interface {
	Start(seconds int, onTick func(secondsLeft int), onExpire func())
	Cancel()
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	// Duration is the countdown length in seconds.
	Duration int
	// ErrorCeiling ends the session once this many incorrect keys were typed.
	ErrorCeiling int
	// Placeholder is the Idle target text.
	Placeholder string
	// Generate supplies the target text on Start. It must not call back
	// into the Session.
	Generate func() string
	// Timer defaults to a one-second countdown.
	Timer Timer
	// OnError is invoked once per incorrect keystroke, after the state
	// update and before subscribers are notified.
	OnError func()
	Now     func() time.Time
	NewID   func() string
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Session is a single typing test. It is safe for concurrent use; the
// countdown goroutine and the input handler may call into it at once.
type Session struct {
	opts Options

	mu    sync.Mutex
	epoch uint64

	id               string
	state            State
	reason           FinishReason
	target           []rune
	progress         int
	correct          int
	errors           int
	accuracy         int
	wpm              int
	remainingSeconds int
	lastWasError     bool
	startedAt        time.Time
	endedAt          time.Time

	subs    []subscriber
	nextSub int
}

// New constructs an Idle session.
func New(opts Options) *Session {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.ErrorCeiling <= 0 {
		opts.ErrorCeiling = DefaultErrorCeiling
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.Generate == nil {
		opts.Generate = defaultGenerate()
	}
	if opts.Timer == nil {
		opts.Timer = countdown.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	s := &Session{opts: opts}
	s.resetLocked()
	return s
}

func defaultGenerate() func() string {
	gen, err := generator.New(wordlist.Default(), generator.Options{})
	if err != nil {
		// The built-in corpus is never empty.
		panic(err)
	}
	return gen.Generate
}

// Start generates a new target text and begins the countdown. It is a no-op
// while a session is already running or when the generator returns no text.
func (s *Session) Start() {
	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return
	}
	text := []rune(s.opts.Generate())
	if len(text) == 0 {
		s.mu.Unlock()
		return
	}

	s.opts.Timer.Cancel()
	s.epoch++
	epoch := s.epoch

	s.id = s.opts.NewID()
	s.state = StateRunning
	s.reason = FinishNone
	s.target = text
	s.progress = 0
	s.correct = 0
	s.errors = 0
	s.accuracy = 0
	s.wpm = 0
	s.remainingSeconds = s.opts.Duration
	s.lastWasError = false
	s.startedAt = s.opts.Now()
	s.endedAt = time.Time{}

	s.opts.Timer.Start(s.opts.Duration,
		func(left int) { s.tick(epoch, left) },
		func() { s.expire(epoch) },
	)
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
}

// SubmitKey delivers one physical-keyboard keystroke.
func (s *Session) SubmitKey(key string) {
	s.submit(key)
}

// SubmitVirtualChar delivers one on-screen keyboard character. It follows the
// same rules as SubmitKey, including the error ceiling.
func (s *Session) SubmitVirtualChar(char string) {
	s.submit(char)
}

func (s *Session) submit(key string) {
	r, ok := keyRune(key)
	if !ok {
		return
	}

	s.mu.Lock()
	if s.state != StateRunning || s.remainingSeconds <= 0 || s.progress >= len(s.target) {
		s.mu.Unlock()
		return
	}

	incorrect := r != s.target[s.progress]
	if incorrect {
		s.errors++
		s.lastWasError = true
	} else {
		s.progress++
		s.correct++
		s.lastWasError = false
	}
	s.accuracy = metrics.Accuracy(s.progress, s.errors)
	s.wpm = metrics.WPM(s.correct)

	switch {
	case s.progress == len(s.target):
		s.finishLocked(FinishCompleted)
	case s.errors >= s.opts.ErrorCeiling:
		s.finishLocked(FinishErrorCeiling)
	}

	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	if incorrect && s.opts.OnError != nil {
		s.opts.OnError()
	}
	notify(subs, snap)
}

// Expire ends a running session as if its countdown reached zero.
func (s *Session) Expire() {
	s.endByTime(0, false)
}

// Reset cancels any countdown and returns every field to its Idle default.
func (s *Session) Reset() {
	s.mu.Lock()
	s.opts.Timer.Cancel()
	s.epoch++
	s.resetLocked()
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
}

// Snapshot returns a copy of the current session fields.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every mutation. The
// returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// tick and expire carry the epoch of the Start that armed the timer, so a
// countdown outliving its session cannot touch a newer one.
func (s *Session) tick(epoch uint64, left int) {
	s.mu.Lock()
	if epoch != s.epoch || s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	if left < 0 {
		left = 0
	}
	if left == s.remainingSeconds {
		s.mu.Unlock()
		return
	}
	s.remainingSeconds = left
	if left == 0 {
		s.finishLocked(FinishTimeUp)
	}
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
}

func (s *Session) expire(epoch uint64) {
	s.endByTime(epoch, true)
}

func (s *Session) endByTime(epoch uint64, checkEpoch bool) {
	s.mu.Lock()
	if s.state != StateRunning || (checkEpoch && epoch != s.epoch) {
		s.mu.Unlock()
		return
	}
	s.remainingSeconds = 0
	s.finishLocked(FinishTimeUp)
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
}

func (s *Session) finishLocked(reason FinishReason) {
	s.opts.Timer.Cancel()
	s.epoch++
	s.state = StateFinished
	s.reason = reason
	s.endedAt = s.opts.Now()
}

func (s *Session) resetLocked() {
	s.id = ""
	s.state = StateIdle
	s.reason = FinishNone
	s.target = []rune(s.opts.Placeholder)
	s.progress = 0
	s.correct = 0
	s.errors = 0
	s.accuracy = 0
	s.wpm = 0
	s.remainingSeconds = s.opts.Duration
	s.lastWasError = false
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:                    s.id,
		State:                 s.state,
		Reason:                s.reason,
		TargetText:            string(s.target),
		CompletedText:         string(s.target[:s.progress]),
		RemainingText:         string(s.target[s.progress:]),
		ProgressIndex:         s.progress,
		CorrectCount:          s.correct,
		ErrorCount:            s.errors,
		Accuracy:              s.accuracy,
		WPM:                   s.wpm,
		RemainingSeconds:      s.remainingSeconds,
		Duration:              s.opts.Duration,
		ErrorCeiling:          s.opts.ErrorCeiling,
		LastKeystrokeWasError: s.lastWasError,
		StartedAt:             s.startedAt,
		EndedAt:               s.endedAt,
	}
}

func (s *Session) subscribersLocked() []subscriber {
	if len(s.subs) == 0 {
		return nil
	}
	out := make([]subscriber, len(s.subs))
	copy(out, s.subs)
	return out
}

func notify(subs []subscriber, snap Snapshot) {
	for _, sub := range subs {
		sub.fn(snap)
	}
}

// Allowed reports whether key is a single typeable character: a letter,
// digit, space, punctuation mark or symbol.
func Allowed(key string) bool {
	_, ok := keyRune(key)
	return ok
}

func keyRune(key string) (rune, bool) {
	if key == "Shift" || utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return 0, false
	}
	if r == ' ' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return r, true
	}
	return 0, false
}
