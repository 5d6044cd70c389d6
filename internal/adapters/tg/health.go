package tg

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/larriantoniy/tg_support_watcher/internal/ports"
)

const (
	probeTimeout      = 3 * time.Second
	proxyProbeTimeout = 5 * time.Second
)

type dialFunc func(network, addr string, timeout time.Duration) (net.Conn, error)

// probe — одна проверка сети перед стартом TDLib, результат только в лог
type probe struct {
	name    string
	network string
	addr    string
	timeout time.Duration
}

// networkProbes: IPv4, IPv6 и прокси сессии. Для hostname-прокси
// проверяем оба семейства, IPv6 первым.
func networkProbes(proxy *ports.ProxyConfig) []probe {
	probes := []probe{
		{name: "ipv4", network: "tcp4", addr: "8.8.8.8:53", timeout: probeTimeout},
		{name: "ipv6", network: "tcp6", addr: "[2606:4700:4700::1111]:53", timeout: probeTimeout},
	}
	if proxy == nil || !proxy.Enabled {
		return probes
	}

	addr := net.JoinHostPort(proxy.Server, strconv.Itoa(int(proxy.Port)))
	ip := net.ParseIP(proxy.Server)
	switch {
	case ip != nil && ip.To4() != nil:
		probes = append(probes, probe{name: "proxy", network: "tcp4", addr: addr, timeout: proxyProbeTimeout})
	case ip != nil:
		probes = append(probes, probe{name: "proxy", network: "tcp6", addr: addr, timeout: proxyProbeTimeout})
	default:
		probes = append(probes,
			probe{name: "proxy", network: "tcp6", addr: addr, timeout: proxyProbeTimeout},
			probe{name: "proxy", network: "tcp4", addr: addr, timeout: proxyProbeTimeout},
		)
	}
	return probes
}

// checkNetwork ничего не блокирует: сессия стартует в любом случае.
func checkNetwork(logger *slog.Logger, proxy *ports.ProxyConfig, dial dialFunc) map[string]bool {
	if dial == nil {
		dial = net.DialTimeout
	}
	if proxy == nil || !proxy.Enabled {
		logger.Info("proxy disabled, skipping check")
	}

	reachable := make(map[string]bool)
	for _, p := range networkProbes(proxy) {
		if reachable[p.name] {
			continue
		}
		conn, err := dial(p.network, p.addr, p.timeout)
		if err != nil {
			logger.Warn(fmt.Sprintf("%s unreachable", p.name), "network", p.network, "addr", p.addr, "error", err)
			continue
		}
		_ = conn.Close()
		reachable[p.name] = true
		logger.Info(fmt.Sprintf("%s OK", p.name), "network", p.network, "addr", p.addr)
	}
	return reachable
}
