package converters

import (
	"github.com/Station-Manager/errors"
	"time"
)

// CheckString asserts that src is a non-empty string.
func CheckString(op errors.Op, src any) (string, error) {
	srcVal, ok := src.(string)
	if !ok {
		return "", errors.New(op).Errorf("Given parameter not a string, got %T", src)
	}
	if srcVal == "" {
		return "", errors.New(op).Msg(ErrMsgEmptyParam)
	}
	return srcVal, nil
}

// CheckObject asserts that src is a decoded JSON object.
func CheckObject(op errors.Op, src any) (map[string]any, error) {
	srcVal, ok := src.(map[string]any)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a JSON object, got %T", src)
	}
	return srcVal, nil
}

func CheckTime(op errors.Op, src any) (time.Time, error) {
	srcVal, ok := src.(time.Time)
	if !ok {
		return time.Time{}, errors.New(op).Errorf("Given parameter not a time.Time, got %T", src)
	}
	return srcVal, nil
}

func CheckInt64(op errors.Op, src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	}
	return -1, errors.New(op).Errorf("Given parameter not a int64, got %T", src)
}

func CheckFloat64(op errors.Op, src any) (float64, error) {
	srcVal, ok := src.(float64)
	if !ok {
		return 0, errors.New(op).Errorf("Given parameter not a float64, got %T", src)
	}
	return srcVal, nil
}
