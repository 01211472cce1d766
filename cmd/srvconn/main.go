// Package main 提供 srvconn 命令行入口
//
// 通过 SRV 记录解析服务地址，按 RFC 2782 顺序依次尝试 TCP 连接，
// 打印第一个成功的远端地址。可选地在连接建立后转发 stdin/stdout。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dep2p/go-srvconn"
	"github.com/dep2p/go-srvconn/config"
	"github.com/dep2p/go-srvconn/pkg/lib/log"
)

var logger = log.Logger("srvconn/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：这次连接的目标与运行时覆盖
//   JSON 配置文件：解析器、缓存、指标等持久化配置
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	// ─────────────────────────────────────────────────────────────────────
	// 连接目标
	// ─────────────────────────────────────────────────────────────────────
	domain   = flag.String("domain", "", "目标域名（必需）")
	services = flag.String("services", "", "服务前缀，逗号分隔，如 _xmpp-client._tcp")
	port     = flag.Uint("port", 0, "SRV 均不可用时回退使用的端口")

	// ─────────────────────────────────────────────────────────────────────
	// 运行时覆盖
	// ─────────────────────────────────────────────────────────────────────
	timeout    = flag.Duration("timeout", 0, "单个候选的连接超时（0 = 默认值）")
	dnsServers = flag.String("dns", "", "DNS 服务器，逗号分隔（为空使用系统解析器）")
	configFile = flag.String("config", "", "配置文件路径")
	pipe       = flag.Bool("pipe", false, "连接后转发 stdin/stdout")
	verbose    = flag.Bool("v", false, "输出调试日志")

	// ─────────────────────────────────────────────────────────────────────
	// 信息显示
	// ─────────────────────────────────────────────────────────────────────
	showVersion = flag.Bool("version", false, "显示版本信息")
	showHelp    = flag.Bool("help", false, "显示帮助信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		printVersion()
		return nil
	}
	if *showHelp {
		printHelp()
		return nil
	}
	if *verbose {
		log.SetLevel(log.LevelDebug)
	}
	if *domain == "" {
		return errors.New("必须指定 -domain")
	}
	if *port > 65535 {
		return fmt.Errorf("端口超出范围: %d", *port)
	}

	opts, err := buildOptions()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Debug("启动 srvconn", "version", srvconn.Version, "commit", srvconn.GitCommit)

	c, err := srvconn.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("初始化失败: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = c.Close(closeCtx)
	}()

	svcs := splitAndTrim(*services, ",")
	start := time.Now()
	conn, err := c.Dial(ctx, svcs, *domain, uint16(*port))
	if err != nil {
		return fmt.Errorf("连接 %s 失败: %w", *domain, err)
	}
	defer func() { _ = conn.Close() }()

	fmt.Fprintf(os.Stderr, "已连接 %s (%s)\n", conn.RemoteAddr(), time.Since(start).Round(time.Millisecond))
	logger.Info("连接成功", "domain", *domain, "remote", conn.RemoteAddr().String())

	if !*pipe {
		return nil
	}
	return pipeConn(ctx, conn)
}

// pipeConn 在连接与标准输入输出之间双向复制，任一方向结束即返回
func pipeConn(ctx context.Context, conn io.ReadWriteCloser) error {
	errCh := make(chan error, 2)
	go func() {
		_, err := io.Copy(conn, os.Stdin)
		errCh <- err
	}()
	go func() {
		_, err := io.Copy(os.Stdout, conn)
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// buildOptions 构建选项
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（SRVCONN_* 前缀）
//  3. 配置文件
//  4. 内置默认值
func buildOptions() ([]srvconn.Option, error) {
	var cfg *config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
	} else {
		cfg = config.NewConfig()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	opts := []srvconn.Option{srvconn.WithConfig(cfg)}

	if isFlagSet("timeout") {
		opts = append(opts, srvconn.WithTimeout(*timeout))
	}
	if isFlagSet("dns") {
		if servers := splitAndTrim(*dnsServers, ","); len(servers) > 0 {
			opts = append(opts, srvconn.WithDNSServers(servers...))
		}
	}
	return opts, nil
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("srvconn %s\n", srvconn.Version)
	if srvconn.GitCommit != "" {
		fmt.Printf("  commit: %s\n", srvconn.GitCommit)
	}
	if srvconn.BuildDate != "" {
		fmt.Printf("  built:  %s\n", srvconn.BuildDate)
	}
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("srvconn - 基于 SRV 记录的服务连接工具")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  srvconn -domain <域名> [-services <前缀,...>] [-port <端口>] [选项]")
	fmt.Println()
	fmt.Println("选项:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("环境变量:")
	fmt.Println("  SRVCONN_DNS_SERVERS   DNS 服务器（逗号分隔）")
	fmt.Println("  SRVCONN_TIMEOUT       单个候选的连接超时（如 3s）")
	fmt.Println("  SRVCONN_LOG_LEVEL     日志级别 (debug/info/warn/error)")
	fmt.Println("  SRVCONN_LOG_FORMAT    日志格式 (text/json)")
	fmt.Println()
	fmt.Println("使用示例:")
	fmt.Println("  srvconn -domain example.com -services _xmpp-client._tcp,_jabber._tcp -port 5222")
	fmt.Println("  srvconn -domain example.com -services _imap._tcp -port 143 -pipe")
}
