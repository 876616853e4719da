package fdw

import "github.com/aarondl/null/v8"

// ComposeConverters chains converters left-to-right and stops at the first error.
// A nil or NULL cell output ends the chain and is returned as is.
func ComposeConverters(fns ...ConverterFunc) ConverterFunc {
	return func(src any) (any, error) {
		cur := src
		for _, fn := range fns {
			out, err := fn(cur)
			if err != nil {
				return nil, err
			}
			if (Cell{Value: out}).IsNull() {
				return out, nil
			}
			cur = out
		}
		return cur, nil
	}
}

// MapString applies f to text: a raw JSON string or a valid null.String cell value,
// which stays a null.String. Anything else, NULL included, is returned unchanged.
func MapString(f func(string) string) ConverterFunc {
	return func(src any) (any, error) {
		switch v := src.(type) {
		case string:
			return f(v), nil
		case null.String:
			if v.Valid {
				return null.StringFrom(f(v.String)), nil
			}
		}
		return src, nil
	}
}
