package converters

import (
	"fmt"
	"github.com/Station-Manager/errors"
	"github.com/goccy/go-json"
	"strconv"
)

// ParseFloat converts a decoded JSON number to a float64. Numbers decoded with
// UseNumber arrive as json.Number; plain float64 values are passed through.
func ParseFloat(src any) (float64, error) {
	const op errors.Op = "converters.ParseFloat"
	switch v := src.(type) {
	case float64:
		return v, nil
	case json.Number:
		retVal, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, errors.New(op).Err(err).Msg(fmt.Sprintf("%s, got %q", ErrMsgBadNumber, v.String()))
		}
		return retVal, nil
	}
	return 0, errors.New(op).Errorf("Given parameter not a JSON number, got %T", src)
}
