package postgres

import (
	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
	"github.com/deminearchiver/postgres-wasm-fdw/converters"
	"math"
	"time"
)

// Bounds of a time.Time that still fits in int64 microseconds since the Unix epoch.
var (
	minMicrosTime = time.UnixMicro(math.MinInt64)
	maxMicrosTime = time.UnixMicro(math.MaxInt64)
)

// CellToMicrosConverter converts a timestamp cell value (null.Time or time.Time) into
// microseconds since the Unix epoch, the form the host stores timestamps in.
// A NULL cell converts to nil.
func CellToMicrosConverter(src any) (any, error) {
	const op errors.Op = "converters.postgres.CellToMicrosConverter"

	if nullTime, ok := src.(null.Time); ok {
		if !nullTime.Valid {
			return nil, nil
		}
		src = nullTime.Time
	}

	srcVal, err := converters.CheckTime(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(err.Error())
	}
	if srcVal.Before(minMicrosTime) || srcVal.After(maxMicrosTime) {
		return nil, errors.New(op).Msg(converters.ErrMsgTimestampOutOfRange)
	}

	return srcVal.UnixMicro(), nil
}

// MicrosToCellConverter converts microseconds since the Unix epoch into a UTC null.Time.
func MicrosToCellConverter(src any) (any, error) {
	const op errors.Op = "converters.postgres.MicrosToCellConverter"
	srcVal, err := converters.CheckInt64(op, src)
	if err != nil {
		return null.Time{}, errors.New(op).Err(err).Msg(err.Error())
	}
	return null.TimeFrom(time.UnixMicro(srcVal).UTC()), nil
}
