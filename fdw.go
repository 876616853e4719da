package fdw

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

const (
	// HostVersionRequirement is the semver range of host runtimes this adapter supports.
	HostVersionRequirement = "^0.1.0"

	DefaultUserAgent    = "Turso FDW"
	DefaultEndpointPath = "/v2/pipeline"

	databaseURLShape = "https://[databaseName]-[organizationName].turso.io"
)

// Capabilities lists the host operations an adapter supports.
type Capabilities struct {
	Scan   bool
	ReScan bool
	Modify bool
}

// Adapter holds the state of one foreign-server session: where to fetch from, the
// records of the scan in progress, and the cursor into them.
//
// An Adapter must be driven sequentially: Init, then BeginScan, IterScan until it
// reports no row, EndScan. Overlapping calls panic.
type Adapter struct {
	log   zerolog.Logger
	guard callGuard
	fetch *fetcher
	mat   *materializer

	endpoint *url.URL
	token    string
	rows     []any
	cursor   int
}

// New creates an Adapter. It must be initialised with Init before scanning.
func New(opts ...Option) *Adapter {
	o := defaultOptions()
	for _, f := range opts {
		f(&o)
	}
	return &Adapter{
		log:   o.Logger,
		fetch: &fetcher{client: o.HTTPClient, userAgent: o.UserAgent, path: o.EndpointPath},
		mat:   newMaterializer(o.Converters),
	}
}

// Init reads database_url and auth_token from opts. On success any previous endpoint,
// token and buffered rows are replaced; on failure the adapter is left unchanged.
func (a *Adapter) Init(opts ServerOptions) error {
	defer a.guard.enter("Init")()
	rawURL, err := opts.Require(OptionDatabaseURL)
	if err != nil {
		return err
	}
	endpoint, err := parseDatabaseURL(rawURL)
	if err != nil {
		return err
	}
	token, err := opts.Require(OptionAuthToken)
	if err != nil {
		return err
	}

	a.reset()
	a.endpoint, a.token = endpoint, token
	a.log.Debug().Str("host", endpoint.Host).Msg("adapter initialised")
	return nil
}

func parseDatabaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err == nil && (!u.IsAbs() || u.Host == "") {
		err = fmt.Errorf("%q is not an absolute URL", raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w\n\n%s must be of the form: %s", ErrConfig, OptionDatabaseURL, err, OptionDatabaseURL, databaseURLShape)
	}
	return u, nil
}

// Initialized reports whether Init has succeeded and Close has not been called since.
func (a *Adapter) Initialized() bool { return a.endpoint != nil }

// Endpoint returns the configured base URL, or nil before Init.
func (a *Adapter) Endpoint() *url.URL { return a.endpoint }

// Token returns the configured auth token.
func (a *Adapter) Token() string { return a.token }

// Cursor returns the index of the next unread buffered record.
func (a *Adapter) Cursor() int { return a.cursor }

// Buffered returns the number of records held for the current scan.
func (a *Adapter) Buffered() int { return len(a.rows) }

// Capabilities reports which host operations are supported.
func (a *Adapter) Capabilities() Capabilities {
	return Capabilities{Scan: true}
}

// BeginScan fetches the whole record array for a new scan and rewinds the cursor.
func (a *Adapter) BeginScan(ctx context.Context) error {
	defer a.guard.enter("BeginScan")()
	if a.endpoint == nil {
		return fmt.Errorf("%w: adapter is not initialised", ErrSession)
	}

	rows, err := a.fetch.fetch(ctx, a.endpoint, a.token)
	if err != nil {
		return err
	}
	a.rows, a.cursor = rows, 0

	a.log.Info().
		Str("url", a.fetch.requestURL(a.endpoint).String()).
		Int("rows", len(rows)).
		Msg("fetched source rows")
	return nil
}

// IterScan appends the next record to row as one cell per column in cols and reports
// whether a row was produced. false with a nil error means the scan is exhausted.
// On error the cursor does not move and row is left as it was.
func (a *Adapter) IterScan(cols []Column, row *Row) (bool, error) {
	defer a.guard.enter("IterScan")()
	if a.cursor >= len(a.rows) {
		return false, nil
	}

	cells, err := a.mat.materialize(a.rows[a.cursor], cols)
	if err != nil {
		return false, err
	}
	for _, c := range cells {
		row.Push(c)
	}
	a.cursor++
	return true, nil
}

// ReScan always fails and leaves the scan as it was.
func (a *Adapter) ReScan() error {
	defer a.guard.enter("ReScan")()
	return fmt.Errorf("%w: re_scan on foreign table is not supported", ErrUnsupported)
}

// EndScan releases the buffered records. It is safe to call at any time.
func (a *Adapter) EndScan() error {
	defer a.guard.enter("EndScan")()
	a.reset()
	a.log.Debug().Msg("scan ended")
	return nil
}

// Close releases everything the adapter holds. The adapter must be initialised again
// before the next scan.
func (a *Adapter) Close() error {
	defer a.guard.enter("Close")()
	a.reset()
	a.endpoint, a.token = nil, ""
	return nil
}

func (a *Adapter) reset() {
	a.rows = nil
	a.cursor = 0
}
