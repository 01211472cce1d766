package srvconn

import (
	"context"
	"net"
)

// Dial 阻塞式连接，返回第一个成功候选的 TCP 连接
//
// 内部使用独立的调度器与 TCPSocket；ctx 结束会中止解析或连接尝试。
func (c *Connector) Dial(ctx context.Context, services []string, domain string, defaultPort uint16) (net.Conn, error) {
	lp := NewLoop()
	defer func() { _ = lp.Close() }()

	sock := c.NewSocket(lp)

	h := c.Connect(ctx, sock, services, domain, defaultPort, 0)
	<-h.Done()
	if err := h.Err(); err != nil {
		return nil, err
	}
	return sock.Conn()
}

// Dial 使用默认 Connector，参见 (*Connector).Dial
func Dial(ctx context.Context, services []string, domain string, defaultPort uint16) (net.Conn, error) {
	c, err := defaultConnector()
	if err != nil {
		return nil, err
	}
	return c.Dial(ctx, services, domain, defaultPort)
}
