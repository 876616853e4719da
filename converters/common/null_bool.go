package common

import (
	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
)

// SourceToCellBoolConverter converts a decoded JSON value to a null.Bool cell value.
// Anything other than a JSON boolean yields an invalid (NULL) null.Bool.
func SourceToCellBoolConverter(src any) (any, error) {
	srcVal, ok := src.(bool)
	if !ok {
		return null.Bool{}, nil
	}
	return null.BoolFrom(srcVal), nil
}

// CellToTypeBoolConverter converts a null.Bool cell value to a bool.
func CellToTypeBoolConverter(src any) (any, error) {
	const op errors.Op = "converters.common.CellToTypeBoolConverter"

	if nullBool, ok := src.(null.Bool); ok {
		if !nullBool.Valid {
			return false, nil
		}
		return nullBool.Bool, nil
	}

	if b, ok := src.(bool); ok {
		return b, nil
	}

	return false, errors.New(op).Errorf("Given parameter not a bool or null.Bool, got %T", src)
}
