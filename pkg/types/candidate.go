package types

import (
	"net"
	"strconv"
)

// ============================================================================
//                              Candidate
// ============================================================================

// Candidate 一个可尝试连接的 (地址, 端口) 对
type Candidate struct {
	// Address IP 字面量
	Address string

	// Port 端口
	Port uint16
}

// NewCandidate 创建候选地址
func NewCandidate(ip net.IP, port uint16) Candidate {
	return Candidate{Address: ip.String(), Port: port}
}

// HostPort 返回可直接拨号的 "host:port"
func (c Candidate) HostPort() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(int(c.Port)))
}

// String 实现 fmt.Stringer
func (c Candidate) String() string {
	return c.HostPort()
}

// ============================================================================
//                              CandidateQueue
// ============================================================================

// CandidateQueue 有序候选队列，只能从头部消费
//
// 队列在一次连接过程中由唯一的 Sequencer 独占，不允许并发访问。
type CandidateQueue struct {
	items []Candidate
}

// NewCandidateQueue 基于切片创建队列（会复制输入）
func NewCandidateQueue(items []Candidate) *CandidateQueue {
	cp := make([]Candidate, len(items))
	copy(cp, items)
	return &CandidateQueue{items: cp}
}

// Pop 弹出队首候选，队列为空时返回 false
func (q *CandidateQueue) Pop() (Candidate, bool) {
	if q == nil || len(q.items) == 0 {
		return Candidate{}, false
	}
	c := q.items[0]
	q.items = q.items[1:]
	return c, true
}

// Len 返回剩余候选数量
func (q *CandidateQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Items 返回剩余候选的副本
func (q *CandidateQueue) Items() []Candidate {
	if q == nil {
		return nil
	}
	cp := make([]Candidate, len(q.items))
	copy(cp, q.items)
	return cp
}
