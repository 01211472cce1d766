package listener

import (
	"fmt"
	"slices"
	"sync"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// ============================================================================
//                              处置策略
// ============================================================================

// Disposition 恢复快照时如何处理当前挂着的监听器
type Disposition int

const (
	// DiscardExisting 移除当前监听器后挂回快照
	DiscardExisting Disposition = iota
	// KeepExisting 保留当前监听器，快照追加在其后
	KeepExisting
)

// String 返回策略名称
func (d Disposition) String() string {
	switch d {
	case DiscardExisting:
		return "discard-existing"
	case KeepExisting:
		return "keep-existing"
	default:
		return fmt.Sprintf("Disposition(%d)", int(d))
	}
}

// ============================================================================
//                              Snapshot
// ============================================================================

// Snapshot 一组事件监听器的时点副本
type Snapshot struct {
	target pkgif.Emitter
	scoped bool
	names  []string
	saved  map[string][]*types.Listener

	mu       sync.Mutex
	restored bool
}

// Capture 复制并摘下 target 上指定事件的监听器
//
// 不传事件名时捕获 target 当前的全部事件。
func Capture(target pkgif.Emitter, names ...string) *Snapshot {
	s := &Snapshot{
		target: target,
		scoped: len(names) > 0,
		saved:  make(map[string][]*types.Listener),
	}
	if !s.scoped {
		names = target.EventNames()
	}

	for _, name := range names {
		if _, dup := s.saved[name]; dup {
			continue
		}
		s.names = append(s.names, name)
		s.saved[name] = target.Listeners(name)
		target.RemoveAllListeners(name)
	}
	return s
}

// Names 返回快照覆盖的事件名
func (s *Snapshot) Names() []string {
	return slices.Clone(s.names)
}

// Saved 返回快照中某事件的监听器副本
func (s *Snapshot) Saved(name string) []*types.Listener {
	return slices.Clone(s.saved[name])
}

// Restore 按策略挂回快照，只生效一次
//
// 返回 false 表示快照此前已恢复。
func (s *Snapshot) Restore(d Disposition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restored {
		return false
	}
	s.restored = true

	for _, name := range s.affected() {
		if d == DiscardExisting {
			s.target.RemoveAllListeners(name)
		}
		for _, l := range s.saved[name] {
			s.target.AddListener(name, l)
		}
	}
	return true
}

// Restored 快照是否已恢复
func (s *Snapshot) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}

// affected 快照事件 ∪ 捕获后新出现监听器的事件
//
// 指定了事件名的捕获不触碰范围之外的事件。
func (s *Snapshot) affected() []string {
	names := slices.Clone(s.names)
	if s.scoped {
		return names
	}
	for _, name := range s.target.EventNames() {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// ============================================================================
//                              RemoveListeners
// ============================================================================

// RestoreFunc 恢复被摘下的监听器
type RestoreFunc func(d Disposition)

// RemoveListeners 摘下 target 上的监听器并返回恢复函数
//
// eventNames 可以是：
//   - nil:      全部事件
//   - string:   单个事件
//   - []string: 一组事件
//
// 其他类型是编程错误，立即返回 ErrInvalidEventNames。
func RemoveListeners(target pkgif.Emitter, eventNames any) (RestoreFunc, error) {
	var names []string
	switch v := eventNames.(type) {
	case nil:
	case string:
		names = []string{v}
	case []string:
		if len(v) == 0 {
			return func(Disposition) {}, nil
		}
		names = v
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidEventNames, eventNames)
	}

	snap := Capture(target, names...)
	return func(d Disposition) { snap.Restore(d) }, nil
}
