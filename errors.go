package asidecache

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is matched by every error Fetch returns for a failed producer.
	ErrSourceUnavailable = errors.New("asidecache: source unavailable")

	ErrEmptyKey    = errors.New("asidecache: empty key")
	ErrNilProducer = errors.New("asidecache: nil producer")
)

// SourceError is returned by Fetch when the producer fails.
// errors.Is(err, ErrSourceUnavailable) is true; Unwrap yields the producer's error.
type SourceError struct {
	Key string
	Err error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %q: source unavailable", e.Key)
	}
	return fmt.Sprintf("fetch %q: source unavailable: %v", e.Key, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool { return target == ErrSourceUnavailable }
