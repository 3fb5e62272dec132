package converting

// Unwrap returns the zero value for nil pointers.
func Unwrap[T any](x *T) (r T) {
	if x != nil {
		r = *x
	}

	return
}

func PointerToValue[T any](v T) *T {
	return &v
}

// PointerIfSet returns nil when set is false, used for optional flags.
func PointerIfSet[T any](v T, set bool) *T {
	if !set {
		return nil
	}
	return &v
}
