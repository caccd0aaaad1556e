package sync

import "errors"

var (
	// ErrMissingIdentifier means the relational record has no usable natural
	// key, so no node can be addressed for it.
	ErrMissingIdentifier = errors.New("record missing natural key")

	// ErrUnknownEntity means the requested entity type has no registered
	// descriptor.
	ErrUnknownEntity = errors.New("unknown entity type")

	// ErrTimeout marks a per-item deadline hit. The item counts as failed;
	// the batch keeps going.
	ErrTimeout = errors.New("sync item timed out")
)
