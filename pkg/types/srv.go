package types

import (
	"fmt"
	"net"
	"strings"
)

// ============================================================================
//                              ServiceName
// ============================================================================

// ServiceName 服务前缀列表，按优先顺序排列
//
// 例如 {"_xmpp-client._tcp", "_jabber._tcp"}，依次尝试。
type ServiceName []string

// Names 返回每个前缀与 domain 拼接后的查询名
func (s ServiceName) Names(domain string) []string {
	domain = strings.TrimSuffix(domain, ".")
	out := make([]string, 0, len(s))
	for _, prefix := range s {
		prefix = strings.Trim(prefix, ".")
		if prefix == "" {
			continue
		}
		out = append(out, prefix+"."+domain)
	}
	return out
}

// ============================================================================
//                              SrvRecord
// ============================================================================

// SrvRecord 一条 SRV 查询结果
//
// 值类型，创建后不可变。
type SrvRecord struct {
	// Target 目标主机名（已去除尾随点）
	Target string

	// Port 服务端口
	Port uint16

	// Priority 优先级，数值越小越优先
	Priority uint16

	// Weight 同优先级内的相对权重
	Weight uint16
}

// SrvRecordFromNet 从 net.SRV 转换
func SrvRecordFromNet(srv *net.SRV) SrvRecord {
	return SrvRecord{
		Target:   strings.TrimSuffix(srv.Target, "."),
		Port:     srv.Port,
		Priority: srv.Priority,
		Weight:   srv.Weight,
	}
}

// String 返回 "target:port [p=.. w=..]" 形式
func (r SrvRecord) String() string {
	return fmt.Sprintf("%s:%d [p=%d w=%d]", r.Target, r.Port, r.Priority, r.Weight)
}
