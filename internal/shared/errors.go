package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog outcomes. These are reported to the user, never fatal.
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrArtifactNotFound = fmt.Errorf("artifact does not exist")
	ErrPrivilegeDenied  = fmt.Errorf("only administrators can perform this operation")

	// Storage errors
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
	ErrChecksumMismatch   = fmt.Errorf("checksum mismatch")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
