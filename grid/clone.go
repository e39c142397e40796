package grid

import "github.com/mitchellh/copystructure"

// CloneFunc deep-copies one row payload. The engine applies it to every
// inserted row when cloning is on, so the caller's retained source slice
// can never alias stored rows.
type CloneFunc[T any] func(T) T

// DeepClone structurally copies v, including nested maps, slices, and
// pointers. Values copystructure cannot walk (channels, funcs) pass through
// as the plain value copy.
func DeepClone[T any](v T) T {
	c, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	out, ok := c.(T)
	if !ok {
		return v
	}
	return out
}
