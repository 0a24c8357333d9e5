package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestForEachVisitsAll(t *testing.T) {
	for _, limit := range []int{-1, 0, 1, 3, 64} {
		var seen = make([]int32, 100)
		ForEach(len(seen), limit, func(i int) {
			atomic.AddInt32(&seen[i], 1)
		})
		for i, v := range seen {
			assert.EqualValues(t, 1, v, "limit %d index %d", limit, i)
		}
	}
}

func TestForEachLimit(t *testing.T) {
	var running, peak atomic.Int32
	ForEach(50, 4, func(i int) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
	})
	assert.LessOrEqual(t, peak.Load(), int32(4))
}

func TestSetThreads(t *testing.T) {
	old := Threads()
	defer SetThreads(old)

	SetThreads(2)
	assert.Equal(t, 2, Threads())
	SetThreads(0)
	assert.GreaterOrEqual(t, Threads(), 1)
}
