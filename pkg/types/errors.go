package types

import "errors"

var (
	// ErrConnectTimeout 单个候选在超时前未建立连接
	ErrConnectTimeout = errors.New("connection timed out")

	// ErrNoCandidates 没有任何候选可尝试
	ErrNoCandidates = errors.New("no addresses to connect to")
)
