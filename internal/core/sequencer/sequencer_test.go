package sequencer

import (
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/dep2p/go-srvconn/internal/core/listener"
	"github.com/dep2p/go-srvconn/internal/core/loop"
	"github.com/dep2p/go-srvconn/internal/core/socket"
	"github.com/dep2p/go-srvconn/internal/mocks"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// ============================================================================
//                              fakeSocket
// ============================================================================

// outcome 候选的预设结果
type outcome struct {
	event string // connect / error / timeout，空表示挂起
	err   error
}

// fakeSocket 按预设结果异步发出事件
type fakeSocket struct {
	*listener.Table
	loop *loop.Loop

	outcomes map[string]outcome
	dialed   []string
	timeouts []time.Duration
	destroys int
}

func newFakeSocket(l *loop.Loop) *fakeSocket {
	return &fakeSocket{
		Table:    listener.NewTable(),
		loop:     l,
		outcomes: make(map[string]outcome),
	}
}

func (f *fakeSocket) Post(fn func()) { f.loop.Post(fn) }

func (f *fakeSocket) Connect(port uint16, host string) {
	addr := types.Candidate{Address: host, Port: port}.HostPort()
	f.dialed = append(f.dialed, addr)

	o := f.outcomes[addr]
	if o.event == "" {
		return
	}
	f.loop.Post(func() {
		if o.event == types.EventError {
			f.Emit(types.EventError, o.err)
			return
		}
		f.Emit(o.event, nil)
	})
}

func (f *fakeSocket) SetTimeout(d time.Duration) { f.timeouts = append(f.timeouts, d) }

func (f *fakeSocket) Destroy() { f.destroys++ }

// ============================================================================
//                              辅助
// ============================================================================

var (
	candA = types.Candidate{Address: "192.0.2.1", Port: 5222}
	candB = types.Candidate{Address: "192.0.2.2", Port: 5222}
	candC = types.Candidate{Address: "2001:db8::3", Port: 5223}
)

type harness struct {
	t    *testing.T
	loop *loop.Loop
	sock *fakeSocket
	done chan error

	mu        sync.Mutex
	connected int
	failed    []any
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	l := loop.New()
	t.Cleanup(func() { _ = l.Close() })

	h := &harness{t: t, loop: l, sock: newFakeSocket(l), done: make(chan error, 1)}
	h.sock.On(types.EventConnected, func(any) {
		h.mu.Lock()
		h.connected++
		h.mu.Unlock()
	})
	h.sock.On(types.EventConnectionFailed, func(p any) {
		h.mu.Lock()
		h.failed = append(h.failed, p)
		h.mu.Unlock()
	})
	return h
}

func (h *harness) start(cands []types.Candidate, timeout time.Duration, opts ...Option) *Sequencer {
	h.t.Helper()
	opts = append(opts, WithDone(func(err error) { h.done <- err }))
	seq := New(h.sock, types.NewCandidateQueue(cands), timeout, opts...)
	require.NoError(h.t, h.loop.Do(seq.Start))
	return seq
}

func (h *harness) wait() error {
	h.t.Helper()
	select {
	case err := <-h.done:
		return err
	case <-time.After(5 * time.Second):
		h.t.Fatal("sequencer did not finish")
		return nil
	}
}

// sync 在调度器上执行，读取状态时使用
func (h *harness) sync(fn func()) {
	h.t.Helper()
	require.NoError(h.t, h.loop.Do(fn))
}

// ============================================================================
//                              测试
// ============================================================================

// TestSequencer_ThirdCandidateSucceeds 测试前两个失败第三个成功
func TestSequencer_ThirdCandidateSucceeds(t *testing.T) {
	h := newHarness(t)
	h.sock.outcomes[candA.HostPort()] = outcome{event: types.EventError, err: errors.New("refused A")}
	h.sock.outcomes[candB.HostPort()] = outcome{event: types.EventError, err: errors.New("refused B")}
	h.sock.outcomes[candC.HostPort()] = outcome{event: types.EventConnect}

	seq := h.start([]types.Candidate{candA, candB, candC}, time.Second)
	require.NoError(t, h.wait())

	h.sync(func() {
		assert.Equal(t, []string{candA.HostPort(), candB.HostPort(), candC.HostPort()}, h.sock.dialed)
		assert.Equal(t, StateConnected, seq.State())
		assert.Equal(t, 3, seq.Attempts())
		assert.Equal(t, candC, seq.Current())
		assert.Len(t, multierr.Errors(seq.History()), 2)
		assert.Equal(t, 1, h.connected)
		assert.Empty(t, h.failed)
	})
}

// TestSequencer_AllFail 测试候选耗尽时以最后一个错误结束
func TestSequencer_AllFail(t *testing.T) {
	h := newHarness(t)
	errA := errors.New("refused A")
	errB := errors.New("refused B")
	h.sock.outcomes[candA.HostPort()] = outcome{event: types.EventError, err: errA}
	h.sock.outcomes[candB.HostPort()] = outcome{event: types.EventError, err: errB}

	seq := h.start([]types.Candidate{candA, candB}, time.Second)
	err := h.wait()
	assert.Equal(t, errB, err)

	h.sync(func() {
		assert.Equal(t, StateExhausted, seq.State())
		assert.Equal(t, 0, h.connected)
		assert.Equal(t, []any{errB}, h.failed)
		assert.Equal(t, []time.Duration{time.Second, time.Second, 0}, h.sock.timeouts)
	})

	var attemptErr *AttemptError
	history := multierr.Errors(seq.History())
	require.Len(t, history, 2)
	require.True(t, errors.As(history[0], &attemptErr))
	assert.Equal(t, candA, attemptErr.Candidate)
	assert.ErrorIs(t, history[1], errB)
}

// TestSequencer_EmptyQueue 测试没有候选
func TestSequencer_EmptyQueue(t *testing.T) {
	h := newHarness(t)
	seq := h.start(nil, time.Second)

	err := h.wait()
	assert.ErrorIs(t, err, types.ErrNoCandidates)
	h.sync(func() {
		assert.Equal(t, StateExhausted, seq.State())
		assert.Equal(t, 0, seq.Attempts())
		assert.Len(t, h.failed, 1)
		assert.Empty(t, h.sock.dialed)
	})
}

// TestSequencer_Timeout 测试超时后销毁并尝试下一个
func TestSequencer_Timeout(t *testing.T) {
	h := newHarness(t)
	h.sock.outcomes[candA.HostPort()] = outcome{event: types.EventTimeout}
	h.sock.outcomes[candB.HostPort()] = outcome{event: types.EventConnect}

	seq := h.start([]types.Candidate{candA, candB}, 3*time.Second)
	require.NoError(t, h.wait())

	h.sync(func() {
		assert.Equal(t, 1, h.sock.destroys)
		assert.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second, 0}, h.sock.timeouts)
		assert.ErrorIs(t, seq.History(), types.ErrConnectTimeout)
	})
}

// TestSequencer_TimeoutLast 测试最后一个候选超时
func TestSequencer_TimeoutLast(t *testing.T) {
	h := newHarness(t)
	h.sock.outcomes[candA.HostPort()] = outcome{event: types.EventTimeout}

	h.start([]types.Candidate{candA}, time.Second)
	err := h.wait()
	assert.ErrorIs(t, err, types.ErrConnectTimeout)
	assert.Equal(t, "connection timed out", err.Error())
	h.sync(func() {
		assert.Equal(t, []time.Duration{time.Second, 0}, h.sock.timeouts)
	})
}

// TestSequencer_RestoresListeners 测试原有监听器按身份恢复
func TestSequencer_RestoresListeners(t *testing.T) {
	for _, succeed := range []bool{true, false} {
		h := newHarness(t)
		userConnect := h.sock.On(types.EventConnect, func(any) {})
		userError := h.sock.On(types.EventError, func(any) {})

		if succeed {
			h.sock.outcomes[candA.HostPort()] = outcome{event: types.EventConnect}
		} else {
			h.sock.outcomes[candA.HostPort()] = outcome{event: types.EventError, err: errors.New("refused")}
		}

		h.start([]types.Candidate{candA}, time.Second)
		_ = h.wait()

		h.sync(func() {
			assert.Equal(t, []*types.Listener{userConnect}, h.sock.Listeners(types.EventConnect))
			assert.Equal(t, []*types.Listener{userError}, h.sock.Listeners(types.EventError))
			assert.Empty(t, h.sock.Listeners(types.EventTimeout))
		})
	}
}

// TestSequencer_RestorePolicies 测试成功与失败使用不同的恢复策略
func TestSequencer_RestorePolicies(t *testing.T) {
	assert.Equal(t, listener.DiscardExisting, SuccessRestore)
	assert.Equal(t, listener.KeepExisting, FailureRestore)

	// 候选挂起期间外部挂上一个新的 error 监听器，随后手动触发结果
	run := func(t *testing.T, event string, payload any) (original, added *types.Listener, after []*types.Listener) {
		h := newHarness(t)
		original = h.sock.On(types.EventError, func(any) {})

		seq := h.start([]types.Candidate{candA}, time.Second)
		h.sync(func() {
			assert.Equal(t, StateAttempting, seq.State())
			assert.NotContains(t, h.sock.Listeners(types.EventError), original)

			added = h.sock.On(types.EventError, func(any) {})
			h.sock.Emit(event, payload)
		})
		_ = h.wait()

		h.sync(func() {
			after = h.sock.Listeners(types.EventError)
		})
		return original, added, after
	}

	t.Run("Success", func(t *testing.T) {
		original, added, after := run(t, types.EventConnect, nil)
		assert.Equal(t, []*types.Listener{original}, after)
		assert.NotContains(t, after, added)
	})

	t.Run("Failure", func(t *testing.T) {
		original, added, after := run(t, types.EventError, errors.New("refused"))
		assert.Equal(t, []*types.Listener{added, original}, after)
	})
}

// TestSequencer_LateEventsIgnored 测试终态之后的事件不影响结果
func TestSequencer_LateEventsIgnored(t *testing.T) {
	h := newHarness(t)
	h.sock.outcomes[candA.HostPort()] = outcome{event: types.EventConnect}

	seq := h.start([]types.Candidate{candA, candB}, time.Second)
	require.NoError(t, h.wait())

	h.sync(func() {
		seq.onError(errors.New("late"))
		seq.onTimeout(nil)
		seq.onConnect(nil)
		seq.Abort(errors.New("late abort"))

		assert.Equal(t, StateConnected, seq.State())
		assert.Equal(t, 1, h.connected)
		assert.Empty(t, h.failed)
		assert.Equal(t, []string{candA.HostPort()}, h.sock.dialed)
	})
}

// TestSequencer_Abort 测试中止
func TestSequencer_Abort(t *testing.T) {
	h := newHarness(t)
	seq := h.start([]types.Candidate{candA}, time.Second)

	abortErr := errors.New("canceled")
	h.sync(func() { seq.Abort(abortErr) })

	assert.Equal(t, abortErr, h.wait())
	h.sync(func() {
		assert.Equal(t, StateExhausted, seq.State())
		assert.Equal(t, 1, h.sock.destroys)
		assert.Equal(t, []any{abortErr}, h.failed)
		assert.Equal(t, []time.Duration{time.Second, 0}, h.sock.timeouts)
	})
}

// TestSequencer_StartOnce 测试重复 Start 无效
func TestSequencer_StartOnce(t *testing.T) {
	h := newHarness(t)
	seq := h.start([]types.Candidate{candA}, time.Second)

	h.sync(seq.Start)
	h.sync(func() {
		assert.Equal(t, []string{candA.HostPort()}, h.sock.dialed)
		assert.Len(t, h.sock.Listeners(types.EventConnect), 1)
	})
}

// TestSequencer_NonErrorPayload 测试非 error 负载
func TestSequencer_NonErrorPayload(t *testing.T) {
	h := newHarness(t)
	seq := h.start([]types.Candidate{candA}, time.Second)
	h.sync(func() { h.sock.Emit(types.EventError, "boom") })

	assert.ErrorIs(t, h.wait(), errUnknownSocketError)
	assert.Equal(t, StateExhausted, seq.State())
}

// TestState_String 测试状态名
func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "attempting", StateAttempting.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "exhausted", StateExhausted.String())
	assert.Equal(t, "State(9)", State(9).String())
	assert.False(t, StateAttempting.Terminal())
}

// TestSequencer_Observer 测试观察者收到每次尝试与终态
func TestSequencer_Observer(t *testing.T) {
	h := newHarness(t)
	h.sock.outcomes[candA.HostPort()] = outcome{event: types.EventTimeout}
	h.sock.outcomes[candB.HostPort()] = outcome{event: types.EventConnect}

	obs := &mocks.MockObserver{}
	clk := clock.NewMock()
	h.start([]types.Candidate{candA, candB}, time.Second, WithObserver(obs), WithClock(clk), WithID("3f2a9c1e-test"))
	require.NoError(t, h.wait())

	attempts := obs.AttemptCalls()
	require.Len(t, attempts, 2)
	assert.Equal(t, candA.HostPort(), attempts[0].Addr)
	assert.ErrorIs(t, attempts[0].Err, types.ErrConnectTimeout)
	assert.Equal(t, candB.HostPort(), attempts[1].Addr)
	assert.NoError(t, attempts[1].Err)
	assert.Zero(t, attempts[1].Duration)

	assert.Equal(t, []mocks.OutcomeCall{{Connected: true, Attempts: 2}}, obs.OutcomeCalls())
}

// ============================================================================
//                              终态之后套接字保持安静
// ============================================================================

// eventCounter 统计调用方在套接字上收到的事件
type eventCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func watchEvents(sock *socket.TCPSocket, events ...string) *eventCounter {
	c := &eventCounter{counts: make(map[string]int)}
	for _, event := range events {
		event := event
		sock.On(event, func(any) {
			c.mu.Lock()
			c.counts[event]++
			c.mu.Unlock()
		})
	}
	return c
}

func (c *eventCounter) get(event string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[event]
}

// closedPort 返回一个当前无人监听的本地端口
func closedPort(t *testing.T) uint16 {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	require.NoError(t, ln.Close())
	return port
}

// newClockSocket 创建使用模拟时钟的真实 TCPSocket
func newClockSocket(t *testing.T) (*loop.Loop, *socket.TCPSocket, *clock.Mock) {
	t.Helper()
	l := loop.New()
	mock := clock.NewMock()
	sock := socket.New(l, socket.WithClock(mock))
	t.Cleanup(func() {
		_ = l.Do(sock.Destroy)
		_ = l.Close()
	})
	return l, sock, mock
}

// TestSequencer_NoTimeoutAfterExhausted 测试候选耗尽后超时定时器已撤销
func TestSequencer_NoTimeoutAfterExhausted(t *testing.T) {
	l, sock, mock := newClockSocket(t)
	var counter *eventCounter
	require.NoError(t, l.Do(func() {
		counter = watchEvents(sock, types.EventTimeout, types.EventError, types.EventConnectionFailed)
	}))

	done := make(chan error, 1)
	cand := types.Candidate{Address: "127.0.0.1", Port: closedPort(t)}
	seq := New(sock, types.NewCandidateQueue([]types.Candidate{cand}), 10*time.Second,
		WithDone(func(err error) { done <- err }))
	require.NoError(t, l.Do(seq.Start))

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sequencer did not finish")
	}

	mock.Add(11 * time.Second)
	// 定时器回调投递到调度器，执行两轮确保其已处理
	require.NoError(t, l.Do(func() {}))
	require.NoError(t, l.Do(func() {}))

	assert.Equal(t, 1, counter.get(types.EventConnectionFailed))
	assert.Zero(t, counter.get(types.EventTimeout), "timeout emitted after connection failed")
	assert.Zero(t, counter.get(types.EventError))
}

// TestSequencer_NoEventsAfterAbort 测试中止后拨号结果与超时都不再到达调用方
func TestSequencer_NoEventsAfterAbort(t *testing.T) {
	l, sock, mock := newClockSocket(t)
	var counter *eventCounter
	require.NoError(t, l.Do(func() {
		counter = watchEvents(sock, types.EventTimeout, types.EventError, types.EventConnect, types.EventConnectionFailed)
	}))

	done := make(chan error, 1)
	cand := types.Candidate{Address: "127.0.0.1", Port: closedPort(t)}
	seq := New(sock, types.NewCandidateQueue([]types.Candidate{cand}), 10*time.Second,
		WithDone(func(err error) { done <- err }))

	abortErr := errors.New("canceled")
	require.NoError(t, l.Do(func() {
		seq.Start()
		seq.Abort(abortErr)
	}))
	assert.Equal(t, abortErr, <-done)

	mock.Add(11 * time.Second)
	// 等待被放弃的拨号结果投递回调度器
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, l.Do(func() {}))
	require.NoError(t, l.Do(func() {}))

	assert.Equal(t, 1, counter.get(types.EventConnectionFailed))
	assert.Zero(t, counter.get(types.EventTimeout))
	assert.Zero(t, counter.get(types.EventError))
	assert.Zero(t, counter.get(types.EventConnect))
}
