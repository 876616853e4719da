package common

import (
	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
	"github.com/deminearchiver/postgres-wasm-fdw/converters"
)

// SourceToCellJSONConverter re-serializes a decoded JSON object into a null.JSON cell
// value. Arrays and scalars are NULL.
func SourceToCellJSONConverter(src any) (any, error) {
	const op errors.Op = "converters.common.SourceToCellJSONConverter"
	if _, ok := src.(map[string]any); !ok {
		return null.JSON{}, nil
	}
	data, err := converters.MarshalCanonical(src)
	if err != nil {
		return null.JSON{}, errors.New(op).Err(err).Msg(err.Error())
	}
	return null.JSONFrom(data), nil
}

// CellToTypeJSONConverter converts a null.JSON cell value to its raw bytes. NULL is nil.
func CellToTypeJSONConverter(src any) (any, error) {
	const op errors.Op = "converters.common.CellToTypeJSONConverter"

	if nullJSON, ok := src.(null.JSON); ok {
		if !nullJSON.Valid {
			return []byte(nil), nil
		}
		return nullJSON.JSON, nil
	}

	if b, ok := src.([]byte); ok {
		return b, nil
	}

	return []byte(nil), errors.New(op).Errorf("Given parameter not a []byte or null.JSON, got %T", src)
}
