package srv

import (
	"math/rand/v2"
	"slices"

	"github.com/dep2p/go-srvconn/pkg/types"
)

// Rand 抽签所需的随机源，*rand.Rand 满足此接口
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand 使用 math/rand/v2 全局随机源
var DefaultRand Rand = globalRand{}

// PriorityGroups 按优先级升序分组，组内保持输入顺序
func PriorityGroups(records []types.SrvRecord) [][]types.SrvRecord {
	byPriority := make(map[uint16][]types.SrvRecord)
	priorities := make([]uint16, 0)
	for _, r := range records {
		if _, ok := byPriority[r.Priority]; !ok {
			priorities = append(priorities, r.Priority)
		}
		byPriority[r.Priority] = append(byPriority[r.Priority], r)
	}
	slices.Sort(priorities)

	groups := make([][]types.SrvRecord, 0, len(priorities))
	for _, p := range priorities {
		groups = append(groups, byPriority[p])
	}
	return groups
}

// Order 返回跨所有优先级的完整候选顺序
//
// rng 为 nil 时使用 DefaultRand。输入切片不会被修改。
func Order(records []types.SrvRecord, rng Rand) []types.SrvRecord {
	if rng == nil {
		rng = DefaultRand
	}

	result := make([]types.SrvRecord, 0, len(records))
	for _, group := range PriorityGroups(records) {
		result = appendWeighted(result, group, rng)
	}
	return result
}

// appendWeighted 对单个优先级组做加权抽签，把结果追加到 out
func appendWeighted(out, group []types.SrvRecord, rng Rand) []types.SrvRecord {
	remaining := slices.Clone(group)

	for len(remaining) > 0 {
		total := 0
		for _, r := range remaining {
			total += int(r.Weight)
		}

		// 剩余权重和为 0：按输入顺序输出，避免除零和死循环
		if total == 0 {
			return append(out, remaining...)
		}

		draw := rng.IntN(total)
		idx := pick(remaining, draw)
		out = append(out, remaining[idx])
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	return out
}

// pick 返回累计权重首次超过 draw 的下标
func pick(group []types.SrvRecord, draw int) int {
	running := 0
	for i, r := range group {
		running += int(r.Weight)
		if running > draw {
			return i
		}
	}
	// draw < total 时不可达
	return len(group) - 1
}
