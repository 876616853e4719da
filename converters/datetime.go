package converters

import (
	"fmt"
	"github.com/Station-Manager/errors"
	"time"
)

// ParseTimestamp parses an RFC 3339 string, keeping the offset it was written with.
// Fractional seconds are accepted, as are a lower-case "t" or a space as the date/time
// separator, a lower-case "z", and a leap second (":60"), which lands on the following
// second.
func ParseTimestamp(src any) (time.Time, error) {
	const op errors.Op = "converters.ParseTimestamp"
	srcVal, err := CheckString(op, src)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(ErrMsgBadTimestampFormat + ": " + err.Error())
	}
	norm, leap := normalizeRFC3339(srcVal)
	retVal, err := time.Parse(time.RFC3339, norm)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(fmt.Sprintf("%s, got %q", ErrMsgBadTimestampFormat, srcVal))
	}
	if leap {
		retVal = retVal.Add(time.Second)
	}
	return retVal, nil
}

// normalizeRFC3339 rewrites the variants RFC 3339 allows but time.RFC3339 does not
// parse. Seconds of 60 become 59 and leap reports it.
func normalizeRFC3339(s string) (norm string, leap bool) {
	// YYYY-MM-DD?hh:mm:ss is the fixed 19-byte prefix; an offset must follow.
	if len(s) < 20 {
		return s, false
	}
	b := []byte(s)
	if b[10] == 't' || b[10] == ' ' {
		b[10] = 'T'
	}
	if last := len(b) - 1; b[last] == 'z' {
		b[last] = 'Z'
	}
	if b[16] == ':' && b[17] == '6' && b[18] == '0' {
		b[17], b[18] = '5', '9'
		leap = true
	}
	return string(b), leap
}

// ParseDate parses a date in YYYYMMDD or YYYY-MM-DD format as midnight UTC.
func ParseDate(src any) (time.Time, error) {
	const op errors.Op = "converters.ParseDate"
	srcVal, err := CheckString(op, src)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(err.Error())
	}

	badFormat := fmt.Sprintf("%s, got %q", ErrMsgBadDateFormat, srcVal)
	var retVal time.Time
	switch len(srcVal) {
	case 8:
		retVal, err = time.Parse("20060102", srcVal)
	case 10:
		if srcVal[4] != '-' || srcVal[7] != '-' {
			return time.Time{}, errors.New(op).Msg(badFormat)
		}
		retVal, err = time.Parse("2006-01-02", srcVal)
	default:
		return time.Time{}, errors.New(op).Msg(badFormat)
	}
	if err != nil {
		return time.Time{}, errors.New(op).Err(err).Msg(badFormat)
	}
	return retVal, nil
}
