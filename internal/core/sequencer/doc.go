// Package sequencer 按顺序在同一个套接字上尝试候选地址
//
// Sequencer 在开始时摘下套接字上 connect/error/timeout 的原有监听器，
// 换上自己的处理器；第一个成功的候选结束流程，候选耗尽则以最后一次
// 失败结束。无论哪种终态，原有监听器都会在终态通知发出之前挂回。
//
// Sequencer 的全部方法必须在套接字的调度器上调用。
package sequencer
