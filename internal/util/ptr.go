package util

// Ptr returns a pointer to v. Used for optional values that must
// distinguish unset from zero, like confidence bounds.
func Ptr[T any](v T) *T {
	return &v
}
