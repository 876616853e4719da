package common

import (
	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
	"github.com/deminearchiver/postgres-wasm-fdw/converters"
)

// SourceToCellDateConverter converts a decoded JSON string in YYYYMMDD or YYYY-MM-DD
// format to a null.Time at midnight UTC. Non-string sources are NULL.
//
// It is not installed by default; register it for date columns with
// fdw.WithConverter(fdw.TypeDate, common.SourceToCellDateConverter).
func SourceToCellDateConverter(src any) (any, error) {
	const op errors.Op = "converters.common.SourceToCellDateConverter"
	if _, ok := src.(string); !ok {
		return null.Time{}, nil
	}
	date, err := converters.ParseDate(src)
	if err != nil {
		return null.Time{}, errors.New(op).Err(err).Msg(err.Error())
	}
	return null.TimeFrom(date), nil
}
