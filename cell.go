package fdw

import (
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/deminearchiver/postgres-wasm-fdw/converters/postgres"
)

// TypeOID is the declared type of a host column.
type TypeOID int

const (
	TypeBool TypeOID = iota
	TypeChar
	TypeInt16
	TypeFloat32
	TypeInt32
	TypeFloat64
	TypeInt64
	TypeNumeric
	TypeString
	TypeDate
	TypeTimestamp
	TypeTimestamptz
	TypeJSON
	TypeUUID
)

var typeNames = [...]string{
	TypeBool:        "bool",
	TypeChar:        "char",
	TypeInt16:       "int2",
	TypeFloat32:     "float4",
	TypeInt32:       "int4",
	TypeFloat64:     "float8",
	TypeInt64:       "int8",
	TypeNumeric:     "numeric",
	TypeString:      "text",
	TypeDate:        "date",
	TypeTimestamp:   "timestamp",
	TypeTimestamptz: "timestamptz",
	TypeJSON:        "jsonb",
	TypeUUID:        "uuid",
}

func (t TypeOID) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("TypeOID(%d)", int(t))
}

// Column describes one column the host asks for. The name is matched against source
// record keys exactly.
type Column struct {
	Name string
	Type TypeOID
}

// Cell is one typed value. Value holds null.Bool, null.String, null.Time or null.JSON
// for the built-in types, or whatever a registered converter returns; an invalid null
// value is SQL NULL.
type Cell struct {
	Type  TypeOID
	Value any
}

// IsNull reports whether the cell carries no value.
func (c Cell) IsNull() bool {
	switch v := c.Value.(type) {
	case nil:
		return true
	case null.Bool:
		return !v.Valid
	case null.String:
		return !v.Valid
	case null.Time:
		return !v.Valid
	case null.JSON:
		return !v.Valid
	case null.Float64:
		return !v.Valid
	}
	return false
}

// Micros returns a timestamp cell as microseconds since the Unix epoch.
// ok is false for NULL cells and for values that are not timestamps.
func (c Cell) Micros() (micros int64, ok bool) {
	v, err := postgres.CellToMicrosConverter(c.Value)
	if err != nil || v == nil {
		return 0, false
	}
	return v.(int64), true
}

// Row is the host-owned buffer one IterScan call appends cells to.
type Row struct {
	cells []Cell
}

// Push appends a cell.
func (r *Row) Push(c Cell) { r.cells = append(r.cells, c) }

// Cells returns the cells in column order.
func (r *Row) Cells() []Cell { return r.cells }

// Len returns the number of cells.
func (r *Row) Len() int { return len(r.cells) }

// Reset empties the row so it can be reused for the next IterScan call.
func (r *Row) Reset() { r.cells = r.cells[:0] }
