package fdw

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 1024

// fetcher issues the single GET a scan is built on.
type fetcher struct {
	client    Doer
	userAgent string
	path      string
}

// requestURL resolves the endpoint path against base. An absolute path replaces
// whatever path base carries.
func (f *fetcher) requestURL(base *url.URL) *url.URL {
	return base.ResolveReference(&url.URL{Path: f.path})
}

// fetch downloads and decodes the record array.
func (f *fetcher) fetch(ctx context.Context, base *url.URL, token string) ([]any, error) {
	apiURL := f.requestURL(base).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request for %s: %w", ErrFetch, apiURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrFetch, apiURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: GET %s: http %d: %s", ErrFetch, apiURL, resp.StatusCode, bytes.TrimSpace(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body from %s: %w", ErrFetch, apiURL, err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, fmt.Errorf("response from %s: %w", apiURL, err)
	}
	return rows, nil
}

// decodeRows parses a response body that must hold exactly one JSON array. Numbers are
// kept as json.Number so integers survive re-serialization unchanged.
func decodeRows(data []byte) ([]any, error) {
	// The decoder would otherwise swap bad bytes for U+FFFD without reporting it.
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: parse json: response body is not valid UTF-8", ErrParse)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: parse json: %w", ErrParse, err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%w: parse json: unexpected data after top-level value", ErrParse)
	}

	rows, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: response should be a JSON array, got %s", ErrParse, jsonKind(raw))
	}
	return rows, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
