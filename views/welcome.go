package views

import (
	"fmt"
	"io"
	"time"
)

// welcomeDelay matches the splash screen's auto-advance.
const welcomeDelay = 3500 * time.Millisecond

// WelcomeView is the entry splash. It advances to login on its own after a
// short delay, or immediately when the user acts.
type WelcomeView struct{}

func (v *WelcomeView) Render(w io.Writer) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Syncode")
	fmt.Fprintln(w, "Code. Share. Shine.")
	fmt.Fprintln(w, "========================================")
}

// StartAutoAdvance fires onNext after the splash delay. Stop the returned
// timer if the user moves on first.
func (v *WelcomeView) StartAutoAdvance(onNext func()) *time.Timer {
	return time.AfterFunc(welcomeDelay, onNext)
}
