// Package types 定义 go-srvconn 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - srv.go       - ServiceName, SrvRecord
//   - candidate.go - Candidate, CandidateQueue
//   - events.go    - 套接字事件名与终态通知
//   - enums.go     - Outcome
//   - errors.go    - 公共错误定义
//   - listener.go  - Listener 回调句柄
package types
