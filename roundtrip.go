package fdw

import (
	"fmt"
	"github.com/goccy/go-json"

	"github.com/aarondl/null/v8"
)

// roundTrip serializes the input to JSON and deserializes it into the target output.
// This is a lossy mapping if source and destination do not have compatible JSON structures.
func roundTrip[Output any](input any, output *Output) error {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("fdw: marshal failed: %w", err)
	}
	if err = json.Unmarshal(data, output); err != nil {
		return fmt.Errorf("fdw: unmarshal failed: %w", err)
	}
	return nil
}

// RecordTo converts one raw buffered record into T through a JSON round-trip, using
// T's json tags. It bypasses column typing entirely.
func RecordTo[T any](record any) (*T, error) {
	var result T
	if err := roundTrip(record, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// JSONCellTo unmarshals the document held by a jsonb cell into T. It returns nil and
// no error for a NULL cell.
func JSONCellTo[T any](c Cell) (*T, error) {
	j, ok := c.Value.(null.JSON)
	if !ok {
		return nil, fmt.Errorf("%w: cell of type %s does not hold a JSON document", ErrMaterialize, c.Type)
	}
	if !j.Valid {
		return nil, nil
	}
	var result T
	if err := json.Unmarshal(j.JSON, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &result, nil
}
