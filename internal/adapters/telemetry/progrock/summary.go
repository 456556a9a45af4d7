package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Summary)(nil)

type vertexStatus int

const (
	statusRunning vertexStatus = iota
	statusCompleted
	statusCached
	statusFailed
)

type vertexState struct {
	name   string
	status vertexStatus
	err    string
}

// Summary is a progrock.Writer that folds status updates into one line per
// vertex and prints them when the tape is closed.
type Summary struct {
	out io.Writer

	mu       sync.Mutex
	order    []string
	vertices map[string]*vertexState
}

// NewSummary creates a Summary printing to out.
func NewSummary(out io.Writer) *Summary {
	return &Summary{
		out:      out,
		vertices: make(map[string]*vertexState),
	}
}

// WriteStatus records the vertex changes carried by update.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		state, ok := s.vertices[v.Id]
		if !ok {
			state = &vertexState{name: v.Name}
			s.vertices[v.Id] = state
			s.order = append(s.order, v.Id)
		}
		switch {
		case v.Error != nil:
			state.status = statusFailed
			state.err = *v.Error
		case v.Cached:
			state.status = statusCached
		case v.Completed != nil:
			state.status = statusCompleted
		}
	}
	return nil
}

// Close prints the summary.
func (s *Summary) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		v := s.vertices[id]
		var line string
		switch v.status {
		case statusCompleted:
			line = "✓ " + v.name
		case statusCached:
			line = "= " + v.name + " (up to date)"
		case statusFailed:
			line = "✗ " + v.name + ": " + v.err
		default:
			line = "… " + v.name
		}
		if _, err := fmt.Fprintln(s.out, line); err != nil {
			return err
		}
	}
	return nil
}
