package fdw

import (
	"fmt"

	"github.com/deminearchiver/postgres-wasm-fdw/converters/common"
)

// defaultConverters maps the supported column types to their source-to-cell converters.
// A type missing from the map is unsupported.
func defaultConverters() map[TypeOID]ConverterFunc {
	return map[TypeOID]ConverterFunc{
		TypeBool:      common.SourceToCellBoolConverter,
		TypeString:    common.SourceToCellStringConverter,
		TypeTimestamp: common.SourceToCellTimestampConverter,
		TypeJSON:      common.SourceToCellJSONConverter,
	}
}

// materializer turns one buffered record into typed cells.
type materializer struct {
	converters map[TypeOID]ConverterFunc
	scratch    []Cell
}

func newMaterializer(overrides map[TypeOID]ConverterFunc) *materializer {
	conv := defaultConverters()
	for t, fn := range overrides {
		if fn == nil {
			delete(conv, t)
			continue
		}
		conv[t] = fn
	}
	return &materializer{converters: conv}
}

// materialize converts record into one cell per requested column, in column order.
// The returned slice is reused by the next call.
func (m *materializer) materialize(record any, cols []Column) ([]Cell, error) {
	obj, _ := record.(map[string]any)
	cells := m.scratch[:0]
	for _, col := range cols {
		src, ok := obj[col.Name]
		if !ok {
			return nil, fmt.Errorf("%w: source column '%s' not found", ErrMaterialize, col.Name)
		}
		fn, ok := m.converters[col.Type]
		if !ok {
			return nil, fmt.Errorf("%w: column %s data type %s is not supported", ErrMaterialize, col.Name, col.Type)
		}
		v, err := fn(src)
		if err != nil {
			return nil, fmt.Errorf("%w (%w): column %s: %w", ErrMaterialize, ErrParse, col.Name, err)
		}
		cells = append(cells, Cell{Type: col.Type, Value: v})
	}
	m.scratch = cells
	return cells, nil
}
