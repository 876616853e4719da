package fdw

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	id := uuid.New()

	_, err := r.Get(id)
	require.ErrorIs(t, err, ErrSession)
	assert.Contains(t, err.Error(), id.String())

	a, b := New(), New()
	assert.Nil(t, r.Put(id, a))
	assert.Same(t, a, r.Put(id, b))
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, b, got)

	assert.Same(t, b, r.Remove(id))
	assert.Nil(t, r.Remove(id))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.New()
			r.Put(id, New())
			_, err := r.Get(id)
			assert.NoError(t, err)
			r.Remove(id)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, r.Len())
}
