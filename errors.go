package fdw

import "errors"

// Error kinds. Every error returned by the adapter wraps exactly one of these (a
// timestamp that fails to parse wraps both ErrMaterialize and ErrParse), so hosts can
// classify failures with errors.Is and still show the full message to users.
var (
	ErrConfig      = errors.New("config error")
	ErrFetch       = errors.New("fetch error")
	ErrParse       = errors.New("parse error")
	ErrMaterialize = errors.New("materialize error")
	ErrUnsupported = errors.New("unsupported operation")
	ErrSession     = errors.New("session error")
)
