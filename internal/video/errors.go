package video

import (
	"fmt"

	"github.com/tuxgo/tuxgo/internal/config"
)

// CreationError reports that the native layer refused to create the window.
// It is fatal to startup.
type CreationError struct {
	Size config.Size
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("couldn't set video mode %dx%d: %v", e.Size.Width, e.Size.Height, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// ResizeEvent is emitted when the native layer reports that the user resized
// the window.
type ResizeEvent struct {
	Width  int
	Height int
}
