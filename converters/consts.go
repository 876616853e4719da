package converters

const (
	ErrMsgEmptyParam          = "Parameter cannot be empty."
	ErrMsgBadDateFormat       = "Bad date format, expected YYYYMMDD or YYYY-MM-DD"
	ErrMsgBadTimestampFormat  = "Bad timestamp format, expected RFC 3339 (e.g. 2006-01-02T15:04:05Z07:00)"
	ErrMsgBadNumber           = "Bad number, expected a JSON number"
	ErrMsgNotSerializable     = "Value cannot be serialized as JSON"
	ErrMsgTimestampOutOfRange = "Timestamp out of range for microsecond precision"
)
