package srvconn

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dep2p/go-srvconn/pkg/types"
)

// Handle 单次 Connect 的结果句柄
//
// 与套接字上的终态事件同时完成，只完成一次。
type Handle struct {
	id   string
	done chan struct{}

	mu      sync.Mutex
	outcome types.Outcome
	err     error
}

func newHandle() *Handle {
	return &Handle{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
}

// ID 返回本次 Connect 的关联 ID，与日志中的 id 字段一致
func (h *Handle) ID() string {
	return h.id
}

// Done 在终态时关闭
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err 返回失败原因，连接成功或尚未结束时为 nil
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Outcome 返回当前终态
func (h *Handle) Outcome() types.Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome
}

// Wait 等待终态或 ctx 结束
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve 记录终态，重复调用无效
func (h *Handle) resolve(err error) {
	h.mu.Lock()
	if h.outcome != types.OutcomePending {
		h.mu.Unlock()
		return
	}
	if err == nil {
		h.outcome = types.OutcomeConnected
	} else {
		h.outcome = types.OutcomeFailed
		h.err = err
	}
	h.mu.Unlock()
	close(h.done)
}
