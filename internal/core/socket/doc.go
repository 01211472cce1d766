// Package socket 提供基于 TCP 的可重定向套接字
//
// TCPSocket 把阻塞式的 net.Dialer 包装成事件驱动的套接字：
// 拨号在独立协程中进行，结果作为 "connect" / "error" 事件投递回
// 调度器；SetTimeout 设置的空闲超时到期后投递 "timeout" 事件。
//
// 每次 Connect 或 Destroy 都会推进内部代数，上一代拨号与定时器的
// 迟到结果在调度器上被丢弃，因此被放弃的尝试不会产生任何事件。
package socket
