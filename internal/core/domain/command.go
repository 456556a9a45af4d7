package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Mode selects what an invocation does with each of its targets.
type Mode int

const (
	// ModeRedo rebuilds every target unconditionally.
	ModeRedo Mode = iota
	// ModeIfChange rebuilds targets that are outdated and records them as
	// dependencies of the calling recipe.
	ModeIfChange
	// ModeIfCreate records that the calling recipe depends on a file not existing.
	ModeIfCreate
)

const (
	// CommandRedo is the program name for ModeRedo.
	CommandRedo = "redo"
	// CommandIfChange is the program name for ModeIfChange.
	CommandIfChange = "redo-ifchange"
	// CommandIfCreate is the program name for ModeIfCreate.
	CommandIfCreate = "redo-ifcreate"
)

// String returns the program name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRedo:
		return CommandRedo
	case ModeIfChange:
		return CommandIfChange
	case ModeIfCreate:
		return CommandIfCreate
	default:
		return "unknown"
	}
}

// ParseCommand maps the name the program was invoked as to its mode.
func ParseCommand(program string) (Mode, error) {
	name := strings.TrimSuffix(filepath.Base(program), ".exe")
	switch name {
	case CommandRedo:
		return ModeRedo, nil
	case CommandIfChange:
		return ModeIfChange, nil
	case CommandIfCreate:
		return ModeIfCreate, nil
	default:
		return ModeRedo, zerr.With(zerr.Wrap(ErrUnknownCommand, "cannot dispatch "+name), "program", program)
	}
}
