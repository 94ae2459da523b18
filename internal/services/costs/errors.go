package costs

import "errors"

// Cost-related errors
var (
	ErrUnknownCategory = errors.New("unknown expense category")
)
