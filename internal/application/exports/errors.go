package exports

import "errors"

var (
	ErrLeaseNotFound    = errors.New("lease not found")
	ErrPropertyNotFound = errors.New("property not found")
)
