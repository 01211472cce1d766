package srvconn

import (
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-srvconn/internal/core/loop"
	"github.com/dep2p/go-srvconn/internal/core/socket"
)

// testZone 进程内 DNS 服务器的记录，按 RR 文本书写
type testZone []string

func (z testZone) handler(w dns.ResponseWriter, r *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(r)
	q := r.Question[0]

	known := false
	for _, s := range z {
		rr, err := dns.NewRR(s)
		if err != nil || !strings.EqualFold(rr.Header().Name, q.Name) {
			continue
		}
		known = true
		if rr.Header().Rrtype == q.Qtype {
			m.Answer = append(m.Answer, rr)
		}
	}
	if !known {
		m.Rcode = dns.RcodeNameError
	}
	_ = w.WriteMsg(m)
}

// startDNS 启动进程内 UDP DNS 服务器
func startDNS(t *testing.T, zone testZone) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	server := &dns.Server{
		PacketConn:        pc,
		Handler:           dns.HandlerFunc(zone.handler),
		NotifyStartedFunc: func() { close(started) },
	}
	go func() {
		_ = server.ActivateAndServe()
	}()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("DNS server did not start")
	}
	t.Cleanup(func() { _ = server.Shutdown() })
	return pc.LocalAddr().String()
}

// startTCP 启动接受连接的本地 TCP 服务，返回端口
func startTCP(t *testing.T) (uint16, <-chan net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	accepted := make(chan net.Conn, 8)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			accepted <- conn
		}
	}()
	return uint16(ln.Addr().(*net.TCPAddr).Port), accepted
}

// closedPort 返回一个当前无人监听的端口
func closedPort(t *testing.T) uint16 {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	require.NoError(t, ln.Close())
	return port
}

// newTestConnector 使用指定 DNS 服务器、关闭缓存的 Connector
func newTestConnector(t *testing.T, dnsAddr string, opts ...Option) *Connector {
	t.Helper()
	opts = append([]Option{
		WithDNSServers(dnsAddr),
		WithResolverCache(0, 0),
		WithTimeout(2 * time.Second),
	}, opts...)

	c, err := New(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

// recorder 记录套接字上的终态事件
type recorder struct {
	mu        sync.Mutex
	connected int
	failed    []any
}

func (r *recorder) attach(sock Socket) {
	sock.On(EventConnected, func(any) {
		r.mu.Lock()
		r.connected++
		r.mu.Unlock()
	})
	sock.On(EventConnectionFailed, func(p any) {
		r.mu.Lock()
		r.failed = append(r.failed, p)
		r.mu.Unlock()
	})
}

func (r *recorder) snapshot() (int, []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected, append([]any(nil), r.failed...)
}

// newSocket 创建由独立调度器驱动的 TCPSocket
func newSocket(t *testing.T) (*loop.Loop, *socket.TCPSocket) {
	t.Helper()
	lp := loop.New()
	sock := socket.New(lp)
	t.Cleanup(func() {
		_ = lp.Do(sock.Destroy)
		_ = lp.Close()
	})
	return lp, sock
}

func waitHandle(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("connect did not finish")
	}
}
