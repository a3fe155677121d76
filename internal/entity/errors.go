package entity

import "errors"

var (
	// ErrNotFound: the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProductInUse: the product is referenced by at least one order line
	// and must be preserved for historical order rendering.
	ErrProductInUse = errors.New("product in use")

	// ErrInvalidInput: the request is well-formed JSON but violates a
	// domain rule. Wrap with fmt.Errorf("%w: ...") for detail.
	ErrInvalidInput = errors.New("invalid input")
)
