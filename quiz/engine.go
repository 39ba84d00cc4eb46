package quiz

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"note-quiz/debug"
)

// DefaultAdvanceDelay is how long a correct answer stays on screen before the
// next note is drawn
const DefaultAdvanceDelay = 1000 * time.Millisecond

// Phase is the engine's round state
type Phase int

const (
	AwaitingGuess Phase = iota // a note is active
	Transitioning              // answered correctly, next round pending
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "awaiting"
}

// FeedbackKind classifies the feedback line
type FeedbackKind int

const (
	FeedbackPrompt FeedbackKind = iota
	FeedbackCorrect
	FeedbackIncorrect
)

func (k FeedbackKind) String() string {
	switch k {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	default:
		return "prompt"
	}
}

// Render is what the presentation layer draws at the start of every round
type Render struct {
	Note       NoteDefinition
	Position   int // percent of staff height from the top
	LedgerLine bool
	Prompt     string
}

// Result is the outcome of one guess
type Result struct {
	Kind     FeedbackKind
	Text     string
	Guess    string
	Score    int
	Attempts int
}

// Presenter receives everything the engine wants displayed. Methods are
// called with the engine lock held and must not call back into the Engine.
type Presenter interface {
	Round(r Render)
	Guess(r Result)
}

// Rand is the random source used to draw notes. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Options configure an Engine. The zero value is usable.
type Options struct {
	Rand         Rand
	Seed         uint64 // used when Rand is nil; 0 seeds from the time
	Clock        Clock
	AdvanceDelay time.Duration
	Locale       Locale
	Presenter    Presenter

	// NoAutoStart leaves the engine without a current note until the first
	// StartRound call
	NoAutoStart bool
}

// State is a snapshot of the round state
type State struct {
	Current  *NoteDefinition
	Score    int
	Attempts int
	Phase    Phase
	Feedback FeedbackKind
	Text     string
	Guess    string // last guess this round
}

// Engine owns the round state of a single quiz session
type Engine struct {
	mu sync.Mutex

	notes     []NoteDefinition
	rng       Rand
	clock     Clock
	delay     time.Duration
	msgs      messages
	presenter Presenter

	current  *NoteDefinition
	score    int
	attempts int
	phase    Phase
	feedback FeedbackKind
	text     string
	guess    string

	pending Timer  // advance scheduled after a correct guess
	round   uint64 // bumped every round start; stale callbacks compare against it
}

// New creates an engine over the fixed note table and starts the first round
func New(opts Options) *Engine {
	e := &Engine{
		notes:     Notes[:],
		rng:       opts.Rand,
		clock:     opts.Clock,
		delay:     opts.AdvanceDelay,
		msgs:      messagesFor(opts.Locale),
		presenter: opts.Presenter,
	}
	if e.rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		e.rng = rand.New(rand.NewPCG(seed, seed>>32|1))
	}
	if e.clock == nil {
		e.clock = RealClock
	}
	if e.delay <= 0 {
		e.delay = DefaultAdvanceDelay
	}
	e.text = e.msgs.prompt

	if !opts.NoAutoStart {
		e.StartRound()
	}
	return e
}

// StartRound draws a new note uniformly from the table and makes it current.
// Any pending advance is cancelled.
func (e *Engine) StartRound() Render {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startRoundLocked()
}

// ForceNewRound discards the current note, answered or not, and starts a new
// round immediately. It is valid in either phase.
func (e *Engine) ForceNewRound() Render {
	e.mu.Lock()
	defer e.mu.Unlock()
	debug.Log("quiz", "forced new round (phase=%s)", e.phase)
	return e.startRoundLocked()
}

func (e *Engine) startRoundLocked() Render {
	e.cancelPendingLocked()
	e.round++

	n := e.notes[e.rng.IntN(len(e.notes))]
	e.current = &n
	e.phase = AwaitingGuess
	e.feedback = FeedbackPrompt
	e.text = e.msgs.prompt
	e.guess = ""

	r := Render{
		Note:       n,
		Position:   n.Position(),
		LedgerLine: n.NeedsLedgerLine(),
		Prompt:     e.text,
	}
	debug.Log("quiz", "round %d: %s pos=%d%% ledger=%v", e.round, n, r.Position, r.LedgerLine)
	if e.presenter != nil {
		e.presenter.Round(r)
	}
	return r
}

// SubmitGuess checks pitch against the current note. It returns false and
// changes nothing when no round is active. A correct guess schedules the
// next round after the advance delay; an incorrect one leaves the note in
// place.
func (e *Engine) SubmitGuess(pitch string) (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return Result{}, false
	}

	e.attempts++
	res := Result{Guess: pitch}
	if pitch == e.current.Pitch {
		e.score++
		res.Kind = FeedbackCorrect
		res.Text = fmt.Sprintf(e.msgs.correct, e.current.Pitch)
		// the note stays answerable while the advance is pending, but only
		// one advance is ever scheduled per round
		if e.pending == nil {
			e.scheduleAdvanceLocked()
		}
	} else {
		res.Kind = FeedbackIncorrect
		res.Text = fmt.Sprintf(e.msgs.incorrect, pitch)
	}
	res.Score = e.score
	res.Attempts = e.attempts
	e.feedback = res.Kind
	e.text = res.Text
	e.guess = pitch

	debug.Log("quiz", "guess %q for %s: %s (%d/%d)", pitch, e.current, res.Kind, e.score, e.attempts)
	if e.presenter != nil {
		e.presenter.Guess(res)
	}
	return res, true
}

func (e *Engine) scheduleAdvanceLocked() {
	e.phase = Transitioning
	round := e.round
	e.pending = e.clock.AfterFunc(e.delay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.round != round {
			// a forced round got here first
			return
		}
		e.pending = nil
		e.startRoundLocked()
	})
}

func (e *Engine) cancelPendingLocked() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

// Close cancels any pending advance. The engine stays usable.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPendingLocked()
	e.round++
}

// State returns a snapshot of the round state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := State{
		Score:    e.score,
		Attempts: e.attempts,
		Phase:    e.phase,
		Feedback: e.feedback,
		Text:     e.text,
		Guess:    e.guess,
	}
	if e.current != nil {
		n := *e.current
		s.Current = &n
	}
	return s
}

// Current returns the active note, if any
func (e *Engine) Current() (NoteDefinition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return NoteDefinition{}, false
	}
	return *e.current, true
}
