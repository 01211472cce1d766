// Package interfaces 定义 go-srvconn 的公共接口
//
// 一个接口文件对应一个实现目录：
//   - dns.go       - DNSBackend，对应 internal/core/resolver
//   - emitter.go   - Emitter 监听器注册表，对应 internal/core/listener
//   - scheduler.go - Scheduler 协作式调度器，对应 internal/core/loop
//   - socket.go    - Socket 套接字能力，对应 internal/core/socket
//   - metrics.go   - ConnectObserver 指标观察者，对应 internal/core/metrics
package interfaces
