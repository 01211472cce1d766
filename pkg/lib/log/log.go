// Package log 提供 go-srvconn 统一日志接口
//
// 基于 Go 标准库 log/slog 封装。每个组件通过 Logger(component) 获取
// 一个懒加载的日志器，日志调用时才读取当前的 slog.Default()，
// 因此可以在运行时切换输出目标和级别。
//
// 支持通过环境变量配置：
//   - SRVCONN_LOG_LEVEL: debug / info / warn / error
//   - SRVCONN_LOG_FORMAT: text 或 json
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	levelVar   = new(slog.LevelVar)
	outputMu   sync.Mutex
	jsonFormat bool
)

// SetOutput 设置日志输出目标，保留当前级别与格式
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	install(w)
}

// SetLevel 动态设置日志级别
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// Discard 丢弃所有日志（用于测试）
func Discard() {
	SetOutput(io.Discard)
}

func install(w io.Writer) {
	opts := &slog.HandlerOptions{Level: levelVar}
	var h slog.Handler
	if jsonFormat {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 使用方式：
//
//	var logger = log.Logger("core/sequencer")
//	logger.Debug("开始连接尝试", "addr", addr)
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

func (l *LazyLogger) base() *slog.Logger {
	return slog.Default().With("component", l.component)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) { l.base().Debug(msg, args...) }

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) { l.base().Info(msg, args...) }

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) { l.base().Warn(msg, args...) }

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) { l.base().Error(msg, args...) }

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.base().DebugContext(ctx, msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return l.base().With(args...)
}

// Enabled 判断指定级别是否会输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return slog.Default().Enabled(context.Background(), level)
}

// TruncateID 安全截取 ID 用于日志显示
func TruncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}

// ============================================================================
//                              初始化
// ============================================================================

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func init() {
	levelVar.Set(slog.LevelInfo)
	if lvl, ok := parseLevel(os.Getenv("SRVCONN_LOG_LEVEL")); ok {
		levelVar.Set(lvl)
	}
	jsonFormat = strings.EqualFold(os.Getenv("SRVCONN_LOG_FORMAT"), "json")
	install(os.Stderr)
}
