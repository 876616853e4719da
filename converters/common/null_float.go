package common

import (
	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
	"github.com/deminearchiver/postgres-wasm-fdw/converters"
	"github.com/goccy/go-json"
)

// SourceToCellFloat64Converter converts a decoded JSON number to a null.Float64 cell
// value. Anything other than a number is NULL. Opt-in, like SourceToCellDateConverter.
func SourceToCellFloat64Converter(src any) (any, error) {
	const op errors.Op = "converters.common.SourceToCellFloat64Converter"
	switch src.(type) {
	case json.Number, float64:
	default:
		return null.Float64{}, nil
	}
	f, err := converters.ParseFloat(src)
	if err != nil {
		return null.Float64{}, errors.New(op).Err(err).Msg(err.Error())
	}
	return null.Float64From(f), nil
}

// CellToTypeFloat64Converter converts a null.Float64 cell value to a float64.
func CellToTypeFloat64Converter(src any) (any, error) {
	const op errors.Op = "converters.common.CellToTypeFloat64Converter"

	if nullFloat, ok := src.(null.Float64); ok {
		if !nullFloat.Valid {
			return float64(0), nil
		}
		return nullFloat.Float64, nil
	}

	srcVal, err := converters.CheckFloat64(op, src)
	if err != nil {
		return float64(0), errors.New(op).Err(err).Msg(err.Error())
	}
	return srcVal, nil
}
