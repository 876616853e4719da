package common

import (
	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
)

// SourceToCellStringConverter converts a decoded JSON value to a null.String cell value.
// The empty string is a valid value; only non-string sources are NULL.
func SourceToCellStringConverter(src any) (any, error) {
	srcVal, ok := src.(string)
	if !ok {
		return null.String{}, nil
	}
	return null.StringFrom(srcVal), nil
}

// CellToTypeStringConverter converts a null.String cell value to a string.
func CellToTypeStringConverter(src any) (any, error) {
	const op errors.Op = "converters.common.CellToTypeStringConverter"

	if nullStr, ok := src.(null.String); ok {
		if !nullStr.Valid {
			return "", nil
		}
		return nullStr.String, nil
	}

	// Handle plain string directly (including empty string)
	if s, ok := src.(string); ok {
		return s, nil
	}

	return "", errors.New(op).Errorf("Given parameter not a string or null.String, got %T", src)
}
