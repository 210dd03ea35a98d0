package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mitchellh/go-ps"
)

// Spinner displays an animated status indicator during long operations.
// An instance animates once: Start (or WatchProcess) followed by Stop.
type Spinner struct {
	frames           []string
	interval         time.Duration
	livenessInterval time.Duration
	writer           io.Writer
	stopChan         chan struct{}
	wg               sync.WaitGroup
	running          bool
	mu               sync.Mutex
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{
		frames:           []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval:         80 * time.Millisecond,
		livenessInterval: 250 * time.Millisecond,
		writer:           w,
		stopChan:         make(chan struct{}),
	}
}

// Start begins the animation with an optional label after the frame.
func (s *Spinner) Start(label string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()

		return
	}

	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		idx := 0

		for {
			select {
			case <-s.stopChan:
				// Clear the spinner line.
				fmt.Fprintf(s.writer, "\r\033[K")

				return
			default:
				fmt.Fprintf(s.writer, "\r%s %s", s.frames[idx%len(s.frames)], label)
				idx++
				time.Sleep(s.interval)
			}
		}
	}()
}

// WatchProcess animates until the process with the given pid disappears
// from the process table or Stop is called. The polling is purely
// cosmetic; the caller still waits for the child itself.
func (s *Spinner) WatchProcess(pid int, label string) {
	s.Start(label)

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		for {
			select {
			case <-s.stopChan:
				return
			case <-time.After(s.livenessInterval):
				process, err := ps.FindProcess(pid)
				if err != nil || process == nil {
					s.Stop()

					return
				}
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()

		return
	}

	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
}

// Running reports whether the animation is still going.
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Wait blocks until the animation goroutines have finished.
func (s *Spinner) Wait() {
	s.wg.Wait()
}
