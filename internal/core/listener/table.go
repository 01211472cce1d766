package listener

import (
	"slices"
	"sync"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// 确保实现接口
var _ pkgif.Emitter = (*Table)(nil)

// Table 监听器注册表
//
// 零值可用。所有方法并发安全；Emit 在持锁外调用回调。
type Table struct {
	mu     sync.RWMutex
	events map[string][]*types.Listener
	order  []string // 事件名首次出现的顺序，保证 EventNames 稳定
}

// NewTable 创建监听器表
func NewTable() *Table {
	return &Table{}
}

// On 注册回调并返回其句柄
func (t *Table) On(event string, fn types.HandlerFunc) *types.Listener {
	l := types.NewListener(fn)
	t.AddListener(event, l)
	return l
}

// Once 注册只触发一次的回调
func (t *Table) Once(event string, fn types.HandlerFunc) *types.Listener {
	var l *types.Listener
	l = types.NewListener(func(payload any) {
		t.RemoveListener(event, l)
		fn(payload)
	})
	t.AddListener(event, l)
	return l
}

// AddListener 把已有句柄追加到事件末尾
func (t *Table) AddListener(event string, l *types.Listener) {
	if l == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.events == nil {
		t.events = make(map[string][]*types.Listener)
	}
	if _, ok := t.events[event]; !ok {
		t.order = append(t.order, event)
	}
	t.events[event] = append(t.events[event], l)
}

// RemoveListener 移除句柄的最后一次注册（不存在时忽略）
func (t *Table) RemoveListener(event string, l *types.Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()

	list := t.events[event]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == l {
			t.setLocked(event, slices.Delete(slices.Clone(list), i, i+1))
			return
		}
	}
}

// RemoveAllListeners 移除事件的全部监听器
func (t *Table) RemoveAllListeners(event string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setLocked(event, nil)
}

// Listeners 返回事件当前监听器的副本
func (t *Table) Listeners(event string) []*types.Listener {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.events[event])
}

// ListenerCount 返回事件的监听器数量
func (t *Table) ListenerCount(event string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.events[event])
}

// EventNames 返回当前至少有一个监听器的事件名
func (t *Table) EventNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.order)
}

// Emit 同步触发事件
func (t *Table) Emit(event string, payload any) {
	for _, l := range t.Listeners(event) {
		l.Call(payload)
	}
}

// setLocked 替换事件的监听器列表，空列表时删除事件名
func (t *Table) setLocked(event string, list []*types.Listener) {
	if len(list) > 0 {
		if t.events == nil {
			t.events = make(map[string][]*types.Listener)
		}
		if _, ok := t.events[event]; !ok {
			t.order = append(t.order, event)
		}
		t.events[event] = list
		return
	}
	if _, ok := t.events[event]; !ok {
		return
	}
	delete(t.events, event)
	if i := slices.Index(t.order, event); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
}
