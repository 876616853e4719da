package converters

import (
	"github.com/Station-Manager/errors"
	"github.com/goccy/go-json"
)

// MarshalCanonical encodes a decoded JSON value in compact form with object keys sorted
// and without HTML escaping, so the same document always yields the same bytes.
func MarshalCanonical(src any) ([]byte, error) {
	const op errors.Op = "converters.MarshalCanonical"
	data, err := json.MarshalWithOption(src, json.DisableHTMLEscape())
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(ErrMsgNotSerializable)
	}
	return data, nil
}
