package threadlock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameThreadSerializes(t *testing.T) {
	l := New()
	var active int32
	var maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("thread-1")
			defer l.Unlock("thread-1")

			n := atomic.AddInt32(&active, 1)
			if n > atomic.LoadInt32(&maxActive) {
				atomic.StoreInt32(&maxActive, n)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
}

func TestDistinctThreadsDoNotBlockEachOther(t *testing.T) {
	l := New()
	l.Lock("thread-a")
	defer l.Unlock("thread-a")

	done := make(chan struct{})
	go func() {
		l.Lock("thread-b")
		defer l.Unlock("thread-b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on thread-b should not block on thread-a's lock")
	}
}
