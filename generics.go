package fdw

import (
	"context"
	"fmt"
)

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// DecodeTo decodes the cells of row into a new T.
func DecodeTo[T any](d *Decoder, cols []Column, row *Row) (*T, error) {
	var v T
	if err := d.Decode(cols, row.Cells(), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Collect runs one full scan on a and decodes every row into a T. The scan is always
// ended, also when a row fails to materialise or decode.
func Collect[T any](ctx context.Context, a *Adapter, d *Decoder, cols []Column) ([]T, error) {
	if err := a.BeginScan(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = a.EndScan() }()

	var (
		out []T
		row Row
	)
	for {
		row.Reset()
		ok, err := a.IterScan(cols, &row)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		var v T
		if err := d.Decode(cols, row.Cells(), &v); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(out), err)
		}
		out = append(out, v)
	}
}
