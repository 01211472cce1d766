// Package srv 实现 RFC 2782 风格的 SRV 记录排序
//
// # 算法
//
// 1. 按 Priority 分组，组按数值升序处理
// 2. 组内循环：
//   - 计算剩余记录的权重和 total
//   - 在 [0, total) 内均匀抽取 r
//   - 顺序累加权重，第一个使累计值 > r 的记录被选中并移出组
//
// 3. 组为空时进入下一优先级
//
// # 零权重
//
// 当剩余权重和为 0 时不再抽签，剩余记录按输入顺序依次输出。
// 因此：
//   - 全零权重组的输出与输入顺序完全一致
//   - 混合组中零权重记录总是排在所有正权重记录之后
//
// 输出始终是输入的一个排列：不重复、不遗漏。
package srv
