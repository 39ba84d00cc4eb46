package tui

import (
	"note-quiz/debug"
	"note-quiz/quiz"
)

// Notifier is the engine's presenter. It only wakes the TUI up; the model
// reads everything it draws from the engine state, so a coalesced wakeup
// never loses an update.
type Notifier struct {
	UpdateChan chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{UpdateChan: make(chan struct{}, 1)}
}

func (n *Notifier) Round(r quiz.Render) {
	debug.Log("tui", "round %s at %d%% ledger=%v", r.Note, r.Position, r.LedgerLine)
	n.notify()
}

func (n *Notifier) Guess(r quiz.Result) {
	debug.Log("tui", "guess %q %s score=%d/%d", r.Guess, r.Kind, r.Score, r.Attempts)
	n.notify()
}

func (n *Notifier) notify() {
	select {
	case n.UpdateChan <- struct{}{}:
	default:
	}
}
