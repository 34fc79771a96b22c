package pantry

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
)

const uiStateFileName = "ui_state.json"

// UIState is the small cross-session UI record. LastLocation holds the deep
// link of the screen the user left on, so the next launch can restore it.
type UIState struct {
	Version      int    `json:"version"`
	LastLocation string `json:"lastLocation,omitempty"`
}

// UIStatePath returns the state file location under dir.
func UIStatePath(dir string) string {
	return filepath.Join(dir, uiStateFileName)
}

// LoadUIState reads the UI state under dir. Missing or unreadable state is
// not an error; the zero state is returned instead.
func LoadUIState(dir string, logger *log.Logger) UIState {
	if logger == nil {
		logger = log.Default()
	}
	state := UIState{Version: 1}

	raw, err := os.ReadFile(UIStatePath(dir))
	if errors.Is(err, os.ErrNotExist) {
		return state
	}
	if err != nil {
		logger.Printf("pantry: read ui state: %v", err)
		return state
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.Printf("pantry: corrupt ui state, using defaults: %v", err)
		return UIState{Version: 1}
	}
	if state.Version == 0 {
		state.Version = 1
	}
	return state
}

// SaveUIState writes the UI state atomically, creating dir when needed.
func SaveUIState(dir string, state UIState) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}
	if state.Version == 0 {
		state.Version = 1
	}
	return writeJSONFile(UIStatePath(dir), state)
}
