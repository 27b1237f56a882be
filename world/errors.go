package world

import "errors"

// Boundary errors returned by the inspector entry points.
var (
	ErrNoEntity    = errors.New("no such entity")
	ErrNoComponent = errors.New("entity has no such component")
)
