package listener

import "errors"

var (
	// ErrInvalidEventNames eventNames 既不是 nil，也不是单个或一组事件名
	ErrInvalidEventNames = errors.New("listener: event names must be nil, a string or a []string")
)
