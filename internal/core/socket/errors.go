package socket

import "errors"

var (
	// ErrNotConnected 套接字当前没有已建立的连接
	ErrNotConnected = errors.New("socket: not connected")
)
