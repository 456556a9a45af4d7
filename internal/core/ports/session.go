package ports

import "go.trai.ch/redo/internal/core/domain"

// SessionManager opens and closes the session of one invocation.
//
//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks
type SessionManager interface {
	// Open returns the session inherited from a parent recipe, or starts a
	// new top-level session with a fresh scratch directory.
	Open() (domain.Session, error)

	// Close removes the session's scratch directory if the session is top-level.
	Close(s domain.Session) error
}
