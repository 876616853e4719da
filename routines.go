package fdw

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context is the per-call handle the host passes to every routine.
type Context interface {
	// Session identifies the adapter instance the call belongs to.
	Session() uuid.UUID
	// ServerOptions returns the options of the foreign server.
	ServerOptions() ServerOptions
	// Columns returns the columns the current scan asks for, in output order.
	Columns() []Column
}

// HostContext is a plain Context value.
type HostContext struct {
	ID      uuid.UUID
	Options ServerOptions
	Cols    []Column
}

// NewHostContext returns a HostContext for a fresh session.
func NewHostContext(opts ServerOptions, cols []Column) HostContext {
	return HostContext{ID: uuid.New(), Options: opts, Cols: cols}
}

func (c HostContext) Session() uuid.UUID           { return c.ID }
func (c HostContext) ServerOptions() ServerOptions { return c.Options }
func (c HostContext) Columns() []Column            { return c.Cols }

// Routines implements the host protocol on top of a Registry. Each call resolves the
// session's Adapter from the Context and forwards to it.
type Routines struct {
	sessions *Registry
	opts     []Option
	log      zerolog.Logger
}

// NewRoutines creates Routines whose adapters are built with opts.
func NewRoutines(opts ...Option) *Routines {
	o := defaultOptions()
	for _, f := range opts {
		f(&o)
	}
	return &Routines{sessions: NewRegistry(), opts: opts, log: o.Logger}
}

// Sessions exposes the underlying registry.
func (r *Routines) Sessions() *Registry { return r.sessions }

// HostVersionRequirement returns the semver range of supported host runtimes.
func (r *Routines) HostVersionRequirement() string { return HostVersionRequirement }

// Init creates and initialises the session's adapter, replacing any previous one.
func (r *Routines) Init(hctx Context) error {
	id := hctx.Session()
	opts := append(append([]Option(nil), r.opts...), WithLogger(r.log.With().Str("session", id.String()).Logger()))
	a := New(opts...)
	if err := a.Init(hctx.ServerOptions()); err != nil {
		return err
	}
	if prev := r.sessions.Put(id, a); prev != nil {
		_ = prev.Close()
		r.log.Debug().Str("session", id.String()).Msg("session re-initialised")
	}
	return nil
}

func (r *Routines) BeginScan(ctx context.Context, hctx Context) error {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return err
	}
	return a.BeginScan(ctx)
}

func (r *Routines) IterScan(hctx Context, row *Row) (bool, error) {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return false, err
	}
	return a.IterScan(hctx.Columns(), row)
}

func (r *Routines) ReScan(hctx Context) error {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return err
	}
	return a.ReScan()
}

// EndScan succeeds for unknown sessions too, so it stays idempotent across Shutdown.
func (r *Routines) EndScan(hctx Context) error {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return nil
	}
	return a.EndScan()
}

func (r *Routines) BeginModify(hctx Context) error {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return err
	}
	return a.BeginModify()
}

// Insert, Update, Delete and EndModify never fail, whatever state the session is in.

func (r *Routines) Insert(hctx Context, row *Row) error {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return nil
	}
	return a.Insert(row)
}

func (r *Routines) Update(hctx Context, rowID Cell, row *Row) error {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return nil
	}
	return a.Update(rowID, row)
}

func (r *Routines) Delete(hctx Context, rowID Cell) error {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return nil
	}
	return a.Delete(rowID)
}

func (r *Routines) EndModify(hctx Context) error {
	a, err := r.sessions.Get(hctx.Session())
	if err != nil {
		return nil
	}
	return a.EndModify()
}

// Shutdown closes the session's adapter and forgets it. Unknown sessions are ignored.
func (r *Routines) Shutdown(hctx Context) error {
	a := r.sessions.Remove(hctx.Session())
	if a == nil {
		return nil
	}
	return a.Close()
}
