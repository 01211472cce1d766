package srvconn

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-srvconn/config"
	"github.com/dep2p/go-srvconn/internal/core/resolver"
	"github.com/dep2p/go-srvconn/internal/core/sequencer"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/lib/log"
	"github.com/dep2p/go-srvconn/pkg/types"
)

var logger = log.Logger("srvconn")

// Connector 基于 SRV 记录的连接器
//
// 一个 Connector 可被多个套接字并发使用；每次 Connect 只独占传入的套接字。
type Connector struct {
	cfg *config.Config
	app *fx.App

	// 由 Fx 注入
	resolver *resolver.ServiceResolver
	observer pkgif.ConnectObserver
	backend  pkgif.DNSBackend

	mu     sync.Mutex
	closed bool
}

// New 创建并启动 Connector
//
// 示例：
//
//	c, err := srvconn.New(ctx,
//	    srvconn.WithTimeout(5*time.Second),
//	    srvconn.WithDNSServers("10.0.0.53"),
//	)
func New(ctx context.Context, opts ...Option) (*Connector, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	c := &Connector{cfg: o.config}

	app, err := buildFxApp(o, c)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return nil, fmt.Errorf("start fx app: %w", err)
	}
	c.app = app
	return c, nil
}

// Close 停止 Connector，之后的 Connect 立即以 ErrConnectorClosed 失败
//
// 已在进行的 Connect 不受影响。
func (c *Connector) Close(ctx context.Context) error {
	if c.isClosed() {
		return nil
	}
	return c.app.Stop(ctx)
}

// Config 返回 Connector 使用的配置副本
func (c *Connector) Config() *config.Config {
	return config.CloneConfig(c.cfg)
}

// Timeout 返回单个候选的默认超时
func (c *Connector) Timeout() time.Duration {
	return c.cfg.Connect.EffectiveTimeout()
}

func (c *Connector) markClosed() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	if cached, ok := c.backend.(*resolver.CachedBackend); ok {
		cached.Purge()
	}
}

func (c *Connector) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ════════════════════════════════════════════════════════════════════════════
//                              Connect
// ════════════════════════════════════════════════════════════════════════════

// Connect 解析 services/domain 并在 sock 上逐个尝试候选
//
// 立即返回；解析在 sock 调度器的下一个轮次才开始，终态通过 sock 的
// "connected" / "connection failed" 事件以及返回的 Handle 报告。
//
// "调用轮次内不发出通知" 只对在 sock 调度器上调用 Connect 的情况成立。
// 从其他 goroutine 调用时，调度器可能在 Connect 返回前就执行了第一步，
// Connector 已关闭或 ctx 已结束时 "connection failed" 会立即发出；
// 此时必须在调用 Connect 之前挂好监听器，或改用返回的 Handle。
// timeout 为单个候选的超时，0 表示使用 Connector 的默认值。
// ctx 结束会中止尚未完成的 Connect。
func (c *Connector) Connect(ctx context.Context, sock Socket, services []string, domain string, defaultPort uint16, timeout time.Duration) *Handle {
	h := newHandle()
	if timeout <= 0 {
		timeout = c.Timeout()
	}
	services = slices.Clone(services)

	sock.Post(func() {
		c.begin(ctx, sock, h, services, domain, defaultPort, timeout)
	})
	return h
}

// begin 在调度器上启动解析
func (c *Connector) begin(ctx context.Context, sock Socket, h *Handle, services []string, domain string, defaultPort uint16, timeout time.Duration) {
	if c.isClosed() {
		c.fail(sock, h, ErrConnectorClosed)
		return
	}
	if err := ctx.Err(); err != nil {
		c.fail(sock, h, err)
		return
	}

	logger.Debug("开始解析服务",
		"id", log.TruncateID(h.ID(), 8),
		"domain", domain,
		"services", services)

	go func() {
		queue, err := c.resolver.Resolve(ctx, services, domain, defaultPort)
		sock.Post(func() {
			if err != nil {
				c.fail(sock, h, err)
				return
			}
			c.attempt(ctx, sock, h, queue, timeout)
		})
	}()
}

// attempt 在调度器上驱动 Sequencer
func (c *Connector) attempt(ctx context.Context, sock Socket, h *Handle, queue *types.CandidateQueue, timeout time.Duration) {
	if err := ctx.Err(); err != nil {
		c.fail(sock, h, err)
		return
	}

	var stop func() bool
	seq := sequencer.New(sock, queue, timeout,
		sequencer.WithObserver(c.observer),
		sequencer.WithID(h.ID()),
		sequencer.WithDone(func(err error) {
			if stop != nil {
				stop()
			}
			h.resolve(err)
		}),
	)
	seq.Start()
	if seq.State().Terminal() {
		return
	}

	stop = context.AfterFunc(ctx, func() {
		sock.Post(func() {
			seq.Abort(ctx.Err())
		})
	})
}

// fail 在进入 Sequencer 之前失败
func (c *Connector) fail(sock Socket, h *Handle, err error) {
	if c.observer != nil {
		c.observer.ObserveOutcome(false, 0)
	}
	logger.Debug("连接失败",
		"id", log.TruncateID(h.ID(), 8),
		"err", err)
	sock.Emit(types.EventConnectionFailed, err)
	h.resolve(err)
}

// ════════════════════════════════════════════════════════════════════════════
//                              默认 Connector
// ════════════════════════════════════════════════════════════════════════════

var defaultConnector = sync.OnceValues(func() (*Connector, error) {
	return New(context.Background())
})

// Default 返回包级函数使用的默认 Connector
func Default() (*Connector, error) {
	return defaultConnector()
}

// Connect 使用默认 Connector，参见 (*Connector).Connect
func Connect(ctx context.Context, sock Socket, services []string, domain string, defaultPort uint16, timeout time.Duration) *Handle {
	c, err := defaultConnector()
	if err != nil {
		h := newHandle()
		sock.Post(func() {
			sock.Emit(types.EventConnectionFailed, err)
			h.resolve(err)
		})
		return h
	}
	return c.Connect(ctx, sock, services, domain, defaultPort, timeout)
}
