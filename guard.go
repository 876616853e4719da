package fdw

import (
	"fmt"
	"sync/atomic"
)

// callGuard asserts that an adapter is driven by one caller at a time. The host
// protocol is strictly sequential, so overlapping calls are a host bug and panic.
type callGuard struct {
	busy atomic.Bool
}

// enter marks the adapter busy for op and returns the func that releases it.
//
//	defer a.guard.enter("BeginScan")()
func (g *callGuard) enter(op string) func() {
	if !g.busy.CompareAndSwap(false, true) {
		panic(fmt.Sprintf("fdw: %s called while another call on the same adapter is in flight", op))
	}
	return func() { g.busy.Store(false) }
}
