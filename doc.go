// Package fdw is a foreign-data source adapter that reads a JSON array of records from
// a remote HTTP endpoint and hands them to a host query engine as typed rows.
//
// An Adapter serves one foreign-server session. The host drives it sequentially:
// Init once, then per scan BeginScan, IterScan until it reports no row, and EndScan.
//
// Basic Usage
//
//	a := fdw.New(fdw.WithLogger(logger))
//	err := a.Init(fdw.ServerOptions{
//	    fdw.OptionDatabaseURL: "https://mydb-myorg.turso.io",
//	    fdw.OptionAuthToken:   token,
//	})
//	err = a.BeginScan(ctx)
//	for {
//	    var row fdw.Row
//	    ok, err := a.IterScan(cols, &row)
//	    if err != nil || !ok {
//	        break
//	    }
//	    // use row.Cells()
//	}
//	_ = a.EndScan()
//
// # Fetching
//
// BeginScan issues one GET to the database URL with its path replaced by /v2/pipeline,
// sending the auth token as a bearer token. The whole response body must be a single
// JSON array; it is buffered until EndScan.
//
// # Column Types
//
// Each requested column is looked up by exact key in the current record and coerced:
//   - bool: JSON true/false, anything else is NULL
//   - text: JSON string, anything else is NULL
//   - timestamp: RFC 3339 string; a string that does not parse is an error
//   - jsonb: JSON object, re-serialised compactly with sorted keys; anything else is NULL
//
// Other column types fail with ErrMaterialize. WithConverter adds or replaces the
// conversion for a type.
//
// # Errors
//
// Every error wraps one of ErrConfig, ErrFetch, ErrParse, ErrMaterialize, ErrUnsupported
// or ErrSession and can be tested with errors.Is.
//
// # Sessions
//
// Routines dispatches host calls to adapters kept in a Registry, keyed by the session
// id carried in the host Context. Shutdown releases a session.
//
// # Decoding Into Structs
//
// Go hosts can map rows onto structs with a Decoder:
//
//	type Event struct {
//	    Name           string
//	    At             time.Time `json:"created_at"`
//	    Secret         string    `adapter:"ignore"`
//	    AdditionalData null.JSON
//	}
//	events, err := fdw.Collect[Event](ctx, a, fdw.NewDecoder(), cols)
//
// Columns with no matching field are marshaled into AdditionalData (null.JSON or
// sqlboiler types.JSON) when the struct has one.
//
// # Thread Safety
//
// An Adapter is not safe for concurrent use; overlapping calls panic. Registry, Routines
// and Decoder are safe for concurrent use.
package fdw
