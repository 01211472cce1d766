package sequencer

import (
	"fmt"

	"github.com/dep2p/go-srvconn/pkg/types"
)

// AttemptError 单个候选的失败
type AttemptError struct {
	Candidate types.Candidate
	Err       error
}

// Error 实现 error
func (e *AttemptError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Candidate, e.Err)
}

// Unwrap 返回底层错误
func (e *AttemptError) Unwrap() error {
	return e.Err
}
