package formatter

import (
	"fmt"
	"sync"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var brailleFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animated progress indicator while a generation run is in
// flight. It owns the current terminal line until Stop clears it.
type Spinner struct {
	message  string
	stopOnce sync.Once
	quit     chan struct{}
	finished chan struct{}
}

func NewSpinner(message string) *Spinner {
	return &Spinner{
		message:  message,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start launches the animation goroutine.
func (s *Spinner) Start() {
	go s.animate()
}

func (s *Spinner) animate() {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-s.quit:
			fmt.Print("\r\033[K")
			return
		case <-ticker.C:
			glyph := brailleFrames[frame%len(brailleFrames)]
			fmt.Printf("\r  %s %s", StylePurple.Render(glyph), Dim(s.message))
			frame++
		}
	}
}

// Stop halts the animation and erases the line. Safe to call repeatedly.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	<-s.finished
}
