// Package metrics 以 Prometheus 指标记录连接过程
//
// Collector 实现 interfaces.ConnectObserver，统计 SRV 查询、
// 单个候选的连接尝试以及每次 Connect 的终态。
package metrics
