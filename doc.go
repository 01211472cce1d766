// Package srvconn 通过 DNS SRV 记录把一个套接字连接到服务
//
// 给定一组服务前缀（如 "_xmpp-client._tcp"）和域名，Connector 依次查询
// 每个前缀的 SRV 记录，按 RFC 2782 的优先级与权重排序目标，把每个目标
// 解析为 IPv4/IPv6 地址，然后在调用方提供的同一个套接字上逐个尝试，
// 直到某个候选连接成功。所有前缀都没有结果时直接解析域名并使用默认端口。
//
// # 快速开始
//
//	c, err := srvconn.New(ctx)
//	lp := srvconn.NewLoop()
//	sock := c.NewSocket(lp)
//
//	h := c.Connect(ctx, sock, []string{"_xmpp-client._tcp"}, "example.com", 5222, 0)
//	sock.On(srvconn.EventConnected, func(any) { ... })
//	sock.On(srvconn.EventConnectionFailed, func(p any) { ... })
//
//	<-h.Done()
//
// 阻塞式用法：
//
//	conn, err := srvconn.Dial(ctx, []string{"_xmpp-client._tcp"}, "example.com", 5222)
//
// # 通知
//
// 终态通过套接字自身的事件发出：
//
//   - "connected":         某个候选连接成功，无负载
//   - "connection failed": 全部路径失败，负载为最后一个错误
//
// Connect 不会在调用所在的调度轮次内发出任何事件，因此调用之后立刻
// 挂上的监听器一定能收到通知。连接尝试期间，套接字上 connect/error/timeout
// 的原有监听器被暂时摘下，终态通知发出之前挂回。
//
// # 文件组织
//
//   - connector.go: Connector 与 Connect 流程
//   - handle.go:    单次 Connect 的结果句柄
//   - dial.go:      阻塞式 Dial
//   - socket.go:    调度器与 TCPSocket 构造
//   - options.go:   构造选项
//   - fx.go:        Fx 应用装配
//   - types.go:     公共类型别名
//   - errors.go:    公共错误
package srvconn
