// Package mocks 提供测试用的接口模拟实现
//
// 每个 Mock 记录调用并允许通过 XxxFunc 字段覆盖行为。
package mocks
