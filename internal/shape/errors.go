package shape

import "errors"

// ErrInvalidShape is returned by Parse when the shape text is structurally
// invalid (wrong characters, empty, or no voxels).
var ErrInvalidShape = errors.New("shape: invalid shape text")
