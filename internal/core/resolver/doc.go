// Package resolver 把逻辑服务名解析为有序候选地址
//
// # 模块概述
//
// 解析分为两层：
//
//	┌─────────────────────────────────────────┐
//	│  ServiceResolver                        │
//	│  按前缀依次查询 SRV，失败回退到直接解析域名 │
//	├─────────────────────────────────────────┤
//	│  AddressResolver                        │
//	│  ip4 / ip6 并发查询，至少一个成功即可    │
//	└─────────────────────────────────────────┘
//	              ↓
//	┌─────────────────────────────────────────┐
//	│  DNSBackend                             │
//	│  SystemBackend (net.Resolver)           │
//	│  WireBackend   (miekg/dns，自定义服务器) │
//	│  CachedBackend (expirable LRU 装饰器)    │
//	└─────────────────────────────────────────┘
//
// # 错误传播
//
// 中间步骤（单个前缀、单个地址族、单个 SRV 目标）的失败被吞掉，
// 由下一个备选项取代；只有最终路径的失败会返回给调用方。
//
// # 配置参数
//
//   - Timeout: 5s - 单次 DNS 查询超时
//   - Servers: [] - 自定义 DNS 服务器（为空时使用系统解析器）
//   - Network: udp - 自定义服务器使用的传输
//   - CacheSize: 256 - 缓存条目数，0 关闭缓存
//   - CacheTTL: 1min - 缓存 TTL
//   - MaxConcurrentLookups: 16 - 并发解析 SRV 目标的上限
package resolver
