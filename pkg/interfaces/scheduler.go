package interfaces

// Scheduler 协作式调度器
//
// 所有提交的任务在同一个执行序列中依次运行，任务之间没有并行。
// Post 永远不会在调用方当前的执行轮次内运行 fn。这一保证只针对
// 运行在调度器上的调用方；其他 goroutine 调用 Post 后 fn 可能随时开始执行。
type Scheduler interface {
	Post(fn func())
}
