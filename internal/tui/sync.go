package tui

import (
	"log"

	"github.com/feastkit/basil/internal/nav"
	"github.com/feastkit/basil/internal/pantry"
)

// locationRecorder mirrors navigation into the persisted UI state, the
// terminal stand-in for the browser address bar. The next launch resumes
// at the recorded location.
type locationRecorder struct {
	stateDir string
	logger   *log.Logger
}

func newLocationRecorder(stateDir string, logger *log.Logger) *locationRecorder {
	return &locationRecorder{stateDir: stateDir, logger: logger}
}

func (s *locationRecorder) record(location string) {
	if location == "" {
		return
	}
	if err := pantry.SaveUIState(s.stateDir, pantry.UIState{LastLocation: location}); err != nil {
		s.logger.Printf("tui: record location %s: %v", location, err)
	}
}

func (s *locationRecorder) Pushed(_ nav.Entry, location string)   { s.record(location) }
func (s *locationRecorder) Replaced(_ nav.Entry, location string) { s.record(location) }
func (s *locationRecorder) Popped(_ nav.Entry, location string)   { s.record(location) }
func (s *locationRecorder) Reset(_ nav.Entry, location string)    { s.record(location) }
