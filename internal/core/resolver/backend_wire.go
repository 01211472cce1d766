package resolver

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// 确保实现接口
var _ pkgif.DNSBackend = (*WireBackend)(nil)

// WireBackend 直接向指定 DNS 服务器发送查询的 DNSBackend
//
// 服务器按配置顺序依次尝试，返回最后一个服务器的错误。
// UDP 响应被截断时自动改用 TCP 重试。
type WireBackend struct {
	servers []string
	network string
	timeout time.Duration
}

// NewWireBackend 创建 WireBackend
func NewWireBackend(servers []string, network string, timeout time.Duration) (*WireBackend, error) {
	if len(servers) == 0 {
		return nil, ErrNoServers
	}
	if network == "" {
		network = "udp"
	}
	normalized := make([]string, 0, len(servers))
	for _, s := range servers {
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(s, "53")
		}
		normalized = append(normalized, s)
	}
	return &WireBackend{servers: normalized, network: network, timeout: timeout}, nil
}

// LookupSRV 查询 SRV 记录
func (b *WireBackend) LookupSRV(ctx context.Context, name string) ([]types.SrvRecord, error) {
	resp, err := b.exchange(ctx, name, dns.TypeSRV)
	if err != nil {
		return nil, err
	}

	var records []types.SrvRecord
	for _, rr := range resp.Answer {
		if srv, ok := rr.(*dns.SRV); ok {
			records = append(records, types.SrvRecord{
				Target:   strings.TrimSuffix(srv.Target, "."),
				Port:     srv.Port,
				Priority: srv.Priority,
				Weight:   srv.Weight,
			})
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: SRV %s", ErrNoRecordsFound, name)
	}
	return records, nil
}

// LookupIP 查询 A 或 AAAA 记录
func (b *WireBackend) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	var qtype uint16
	switch network {
	case "ip4":
		qtype = dns.TypeA
	case "ip6":
		qtype = dns.TypeAAAA
	default:
		return nil, ErrUnsupportedNetwork
	}

	resp, err := b.exchange(ctx, host, qtype)
	if err != nil {
		return nil, err
	}

	var ips []net.IP
	for _, rr := range resp.Answer {
		switch v := rr.(type) {
		case *dns.A:
			ips = append(ips, v.A)
		case *dns.AAAA:
			ips = append(ips, v.AAAA)
		}
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNoRecordsFound, dns.TypeToString[qtype], host)
	}
	return ips, nil
}

// exchange 依次向每个服务器发送查询
func (b *WireBackend) exchange(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range b.servers {
		resp, err := b.exchangeOne(ctx, m, server)
		if err != nil {
			lastErr = err
			logger.Debug("DNS 服务器查询失败，尝试下一个",
				"server", server,
				"name", name,
				"err", err)
			continue
		}

		switch resp.Rcode {
		case dns.RcodeSuccess:
			return resp, nil
		case dns.RcodeNameError:
			// 权威的否定回答，无需再问其他服务器
			return nil, fmt.Errorf("%w: %w", ErrNoRecordsFound, &net.DNSError{
				Err:        dns.RcodeToString[resp.Rcode],
				Name:       name,
				Server:     server,
				IsNotFound: true,
			})
		default:
			lastErr = &net.DNSError{
				Err:    dns.RcodeToString[resp.Rcode],
				Name:   name,
				Server: server,
			}
		}
	}
	return nil, lastErr
}

func (b *WireBackend) exchangeOne(ctx context.Context, m *dns.Msg, server string) (*dns.Msg, error) {
	client := &dns.Client{Net: b.network, Timeout: b.timeout}
	resp, _, err := client.ExchangeContext(ctx, m, server)
	if err != nil {
		return nil, err
	}
	if resp.Truncated && b.network == "udp" {
		tcp := &dns.Client{Net: "tcp", Timeout: b.timeout}
		resp, _, err = tcp.ExchangeContext(ctx, m, server)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}
