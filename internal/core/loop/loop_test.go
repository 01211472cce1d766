package loop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsInOrder(t *testing.T) {
	l := New()
	defer l.Close()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 100; i++ {
		i := i
		l.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	require.NoError(t, l.Do(func() {}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

// TestLoop_PostFromTaskRunsAfterCurrentTurn 任务内 Post 的任务在当前任务之后运行
func TestLoop_PostFromTaskRunsAfterCurrentTurn(t *testing.T) {
	l := New()
	defer l.Close()

	var order []string
	require.NoError(t, l.Do(func() {
		l.Post(func() { order = append(order, "posted") })
		order = append(order, "same-turn")
	}))
	require.NoError(t, l.Do(func() {}))

	assert.Equal(t, []string{"same-turn", "posted"}, order)
}

func TestLoop_PanicDoesNotStopLoop(t *testing.T) {
	l := New()
	defer l.Close()

	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.Do(func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_Close(t *testing.T) {
	l := New()
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	assert.ErrorIs(t, l.Do(func() {}), ErrClosed)

	done := make(chan struct{})
	go func() {
		l.Post(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("关闭后 Post 不应阻塞")
	}
}
