package common

import (
	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
	"github.com/deminearchiver/postgres-wasm-fdw/converters"
	"time"
)

// SourceToCellTimestampConverter converts a decoded JSON string holding an RFC 3339
// timestamp to a null.Time cell value. Non-string sources are NULL; a string that does
// not parse is an error.
func SourceToCellTimestampConverter(src any) (any, error) {
	const op errors.Op = "converters.common.SourceToCellTimestampConverter"
	if _, ok := src.(string); !ok {
		return null.Time{}, nil
	}
	ts, err := converters.ParseTimestamp(src)
	if err != nil {
		return null.Time{}, errors.New(op).Err(err).Msg(err.Error())
	}
	return null.TimeFrom(ts), nil
}

// CellToTypeTimeConverter converts a null.Time cell value to a time.Time.
func CellToTypeTimeConverter(src any) (any, error) {
	const op errors.Op = "converters.common.CellToTypeTimeConverter"

	if nullTime, ok := src.(null.Time); ok {
		if !nullTime.Valid {
			return time.Time{}, nil
		}
		return nullTime.Time, nil
	}

	if s, ok := src.(time.Time); ok {
		return s, nil
	}

	return time.Time{}, errors.New(op).Errorf("Given parameter not a time.Time or null.Time, got %T", src)
}
