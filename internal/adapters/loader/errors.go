package loader

import "errors"

// Sentinel kinds for dataset load failures. They are logged and counted,
// never returned to section renderers.
var (
	ErrFetch  = errors.New("dataset fetch failed")
	ErrStatus = errors.New("dataset fetch returned non-success status")
	ErrDecode = errors.New("dataset decode failed")
)
