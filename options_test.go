package fdw

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerOptions_Require(t *testing.T) {
	opts := ServerOptions{OptionDatabaseURL: "u", OptionAuthToken: ""}

	v, err := opts.Require(OptionDatabaseURL)
	require.NoError(t, err)
	assert.Equal(t, "u", v)

	v, err = opts.Require(OptionAuthToken)
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = opts.Require("missing")
	require.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), `required option "missing" is missing`)

	_, err = ServerOptions(nil).Require(OptionAuthToken)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.IsType(t, &http.Client{}, o.HTTPClient)
	assert.Equal(t, DefaultUserAgent, o.UserAgent)
	assert.Equal(t, DefaultEndpointPath, o.EndpointPath)
	assert.Equal(t, zerolog.Disabled, o.Logger.GetLevel())
	assert.Nil(t, o.Converters)
}

func TestWithConverter_PerAdapterMaps(t *testing.T) {
	opt := WithConverter(TypeUUID, func(src any) (any, error) { return src, nil })

	var a, b Options
	opt(&a)
	opt(&b)
	delete(a.Converters, TypeUUID)
	assert.Contains(t, b.Converters, TypeUUID)
}
