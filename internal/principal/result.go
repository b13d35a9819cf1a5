package principal

import (
	"fmt"

	"github.com/desertthunder/tunevault/internal/shared"
)

// Operation names an artifact operation.
type Operation int

const (
	OpAdd Operation = iota
	OpUpdate
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// Status is the reported outcome of an operation.
type Status int

const (
	StatusOK Status = iota
	StatusAuthFailed
	StatusNotFound
	StatusPrivilegeDenied
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAuthFailed:
		return "authentication failed"
	case StatusNotFound:
		return "not found"
	case StatusPrivilegeDenied:
		return "privilege denied"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes what an operation did. ArtifactID is the new id for an add.
type Result struct {
	Operation  Operation
	Status     Status
	ArtifactID int64
	Message    string
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Err maps a rejected result to its sentinel error, or nil on success.
func (r Result) Err() error {
	var sentinel error
	switch r.Status {
	case StatusOK:
		return nil
	case StatusAuthFailed:
		sentinel = shared.ErrAuthFailed
	case StatusNotFound:
		sentinel = shared.ErrArtifactNotFound
	case StatusPrivilegeDenied:
		sentinel = shared.ErrPrivilegeDenied
	default:
		return fmt.Errorf("unknown status %d", int(r.Status))
	}
	return fmt.Errorf("%w: %s artifact %d", sentinel, r.Operation, r.ArtifactID)
}

func (r Result) String() string {
	return r.Message
}
