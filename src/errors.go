package mambo

import "errors"

var (
	// ErrClusterOverflow is returned when a slave registers after every
	// expected node has already joined.
	ErrClusterOverflow = errors.New("cluster overflow: all expected nodes already registered")

	// ErrAlreadyRunning is returned when an async run is started while a
	// previous one is still active.
	ErrAlreadyRunning = errors.New("an async computation is already running")

	// ErrUnsupportedOnSync is returned when a gradient update reaches a
	// master running the synchronous strategy.
	ErrUnsupportedOnSync = errors.New("gradient updates are not supported on a synchronous master")

	// ErrNaNVector is returned by NewVec on NaN components.
	ErrNaNVector = errors.New("vector contains NaN components")
)
