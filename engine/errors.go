package engine

import "errors"

var (
	// ErrInvalid indicates a configuration value was out of range or an
	// unrecognized token.
	ErrInvalid = errors.New("engine: invalid configuration value")

	// ErrBufferTooSmall indicates the consumer supplied a buffer smaller
	// than the sample record size.
	ErrBufferTooSmall = errors.New("engine: buffer smaller than record size")

	// ErrTransport indicates delivery of a sample to the consumer failed
	// mid-copy.
	ErrTransport = errors.New("engine: transport failed")

	// ErrInterrupted indicates a blocking read was cancelled before a new
	// sample arrived.
	ErrInterrupted = errors.New("engine: read interrupted")

	// ErrShutdown indicates the engine was stopped while the caller was
	// waiting on a read.
	ErrShutdown = errors.New("engine: engine stopped")

	// ErrNoMemory indicates session state could not be allocated.
	ErrNoMemory = errors.New("engine: session allocation failed")
)

// errorCode maps a sentinel error to the signed integer code reported by
// stats' last_error field. 0 means no error.
func errorCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalid):
		return -1
	case errors.Is(err, ErrBufferTooSmall):
		return -2
	case errors.Is(err, ErrTransport):
		return -3
	case errors.Is(err, ErrInterrupted):
		return -4
	case errors.Is(err, ErrShutdown):
		return -5
	case errors.Is(err, ErrNoMemory):
		return -6
	default:
		return -1
	}
}
