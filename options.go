package fdw

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Server option keys read at Init.
const (
	OptionDatabaseURL = "database_url"
	OptionAuthToken   = "auth_token"
)

// ServerOptions are the key/value options the host resolved for the foreign server.
type ServerOptions map[string]string

// Require returns the value stored under key, or an ErrConfig naming the key.
func (o ServerOptions) Require(key string) (string, error) {
	v, ok := o[key]
	if !ok {
		return "", fmt.Errorf("%w: required option %q is missing", ErrConfig, key)
	}
	return v, nil
}

// Get returns the value stored under key and whether it was present.
func (o ServerOptions) Get(key string) (string, bool) {
	v, ok := o[key]
	return v, ok
}

// Doer sends an HTTP request. *http.Client satisfies it; any timeout or retry policy
// belongs to the Doer.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ConverterFunc converts a source value into a destination value.
type ConverterFunc func(src any) (any, error)

// ValidatorFunc validates a field value after it has been assigned.
type ValidatorFunc func(value any) error

// Options configures an Adapter beyond what the host's server options carry.
type Options struct {
	HTTPClient   Doer                      // transport for the scan request
	Logger       zerolog.Logger            // diagnostics sink
	UserAgent    string                    // sent as User-Agent
	EndpointPath string                    // resolved against database_url
	Converters   map[TypeOID]ConverterFunc // per-type overrides and additions
}

type Option func(*Options)

func WithHTTPClient(c Doer) Option { return func(o *Options) { o.HTTPClient = c } }
func WithLogger(l zerolog.Logger) Option { return func(o *Options) { o.Logger = l } }
func WithUserAgent(ua string) Option { return func(o *Options) { o.UserAgent = ua } }
func WithEndpointPath(p string) Option { return func(o *Options) { o.EndpointPath = p } }
func WithConverter(t TypeOID, fn ConverterFunc) Option {
	return func(o *Options) {
		if o.Converters == nil {
			o.Converters = make(map[TypeOID]ConverterFunc)
		}
		o.Converters[t] = fn
	}
}

func defaultOptions() Options {
	return Options{
		HTTPClient:   &http.Client{},
		Logger:       zerolog.Nop(),
		UserAgent:    DefaultUserAgent,
		EndpointPath: DefaultEndpointPath,
	}
}
