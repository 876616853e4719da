package fdw

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type concRecord struct {
	Name           string
	Note           string
	AdditionalData null.JSON
}

var (
	concCols = []Column{
		{Name: "Name", Type: TypeString},
		{Name: "Note", Type: TypeString},
		{Name: "alias", Type: TypeString},
	}
	concCells = []Cell{
		{Type: TypeString, Value: null.StringFrom("john")},
		{Type: TypeString, Value: null.StringFrom("n1")},
		{Type: TypeString, Value: null.StringFrom("nick")},
	}
)

func upperName(v any) (any, error) {
	if s, ok := v.(null.String); ok {
		return strings.ToUpper(s.String), nil
	}
	return v, nil
}

func TestDecoder_RegisterConverter_ConcurrentReadWrite(t *testing.T) {
	t.Parallel()
	d := NewDecoder()
	d.RegisterConverter("Name", upperName)

	var start sync.WaitGroup
	start.Add(1)

	var done atomic.Int32
	readers := runtime.GOMAXPROCS(0) * 3
	var wg sync.WaitGroup
	wg.Add(readers + 1)

	errs := make(chan string, readers*4)

	// Writer goroutine: keeps swapping registries while readers decode
	go func() {
		defer wg.Done()
		start.Wait()
		for i := 0; i < 500; i++ {
			d.RegisterConverter("Note", func(v any) (any, error) { return v, nil })
			d.RegisterValidator("Note", func(any) error { return nil })
			if done.Load() == 1 {
				return
			}
		}
	}()

	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			start.Wait()
			for i := 0; i < 200; i++ {
				var rec concRecord
				if err := d.Decode(concCols, concCells, &rec); err != nil {
					errs <- fmt.Sprintf("decode error: %v", err)
					return
				}
				if rec.Name != "JOHN" {
					errs <- fmt.Sprintf("name not uppercased: got %q", rec.Name)
					return
				}
				if rec.Note != "n1" {
					errs <- fmt.Sprintf("note mismatch: got %q", rec.Note)
					return
				}
				if string(rec.AdditionalData.JSON) != `{"alias":"nick"}` {
					errs <- fmt.Sprintf("additional data mismatch: got %s", rec.AdditionalData.JSON)
					return
				}
			}
		}()
	}

	start.Done()
	wg.Wait()
	done.Store(1)
	close(errs)
	for msg := range errs {
		t.Fatalf("concurrent decode failed: %s", msg)
	}

	var rec concRecord
	require.NoError(t, d.Decode(concCols, concCells, &rec))
	assert.Equal(t, "JOHN", rec.Name)
}

func TestDecoder_MetadataCache_Concurrent(t *testing.T) {
	t.Parallel()
	d := NewDecoder()

	workers := 15
	iters := 150

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan string, workers)

	for k := 0; k < workers; k++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				var rec concRecord
				if err := d.Decode(concCols, concCells, &rec); err != nil {
					errCh <- fmt.Sprintf("decode error: %v", err)
					return
				}
				if rec.Name != "john" || rec.Note != "n1" {
					errCh <- fmt.Sprintf("unexpected decode result: %#v", rec)
					return
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		close(errCh)
		for msg := range errCh {
			t.Errorf("concurrent metadata/decode error: %s", msg)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for concurrent metadata cache test")
	}
}
