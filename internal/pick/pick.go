// Package pick defines the seam to the scene's picking service. The core
// never ray-casts; the hosting application injects a Picker and the manager
// consults it for bindings that request hit enrichment.
package pick

import "github.com/dshills/sceneinput/internal/raw"

// Point is a position in scene space.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Result is the outcome of a pick query at a screen position.
type Result struct {
	// Hit is true if the query intersected scene geometry.
	Hit bool

	// Point is the intersection in scene space, valid when Hit is true.
	Point Point

	// Target identifies the picked object, when the scene assigns one.
	Target string
}

// Picker resolves screen coordinates against the 3D scene. Implementations
// must not block; they run inline on the dispatch path.
type Picker interface {
	Pick(pos raw.Position) Result
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(pos raw.Position) Result

// Pick implements Picker.
func (f PickerFunc) Pick(pos raw.Position) Result {
	return f(pos)
}
