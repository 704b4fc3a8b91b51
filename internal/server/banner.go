package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
)

// IPPlaceholder is printed when no LAN address can be discovered
const IPPlaceholder = "[TU_IP]"

// PrintStartupInfo logs how to reach the API
func (s *Server) PrintStartupInfo() {
	ip, err := LocalIP()
	if err != nil {
		log.Debug().Err(err).Msg("Could not discover local IP")
	}
	for _, line := range BannerLines(s.cfg.Server.Port, ip, s.endpoints) {
		log.Info().Msg(line)
	}
}

// BannerLines builds the startup banner. An empty ip prints IPPlaceholder.
func BannerLines(port int, ip string, endpoints map[string]string) []string {
	if ip == "" {
		ip = IPPlaceholder
	}
	base := fmt.Sprintf("http://localhost:%d", port)

	paths := make([]string, 0, len(endpoints))
	for path := range endpoints {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	lines := []string{
		"============================================================",
		"🚀 DISK MONITOR API",
		"============================================================",
		"📍 API Base URL:",
		"   " + base,
		"📚 Documentación:",
		"   " + base + "/openapi.json",
		"🔌 Endpoints principales:",
	}
	for _, path := range paths {
		lines = append(lines, fmt.Sprintf("   GET %-24s - %s", path, endpoints[path]))
	}
	lines = append(lines,
		"🌐 Para acceso desde la red, usa:",
		fmt.Sprintf("   http://%s:%d", ip, port),
		"⚠️  CORS habilitado para desarrollo",
		"============================================================",
	)
	return lines
}

// LocalIP returns a best-effort non-loopback IPv4 address of this host.
// It tries the hostname first, then the interface addresses.
func LocalIP() (string, error) {
	if hostname, err := os.Hostname(); err == nil {
		if addrs, err := net.LookupHost(hostname); err == nil {
			if ip := firstUsableIPv4(addrs); ip != "" {
				return ip, nil
			}
		}
	}

	ifaceAddrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("list interface addresses: %w", err)
	}
	addrs := make([]string, 0, len(ifaceAddrs))
	for _, addr := range ifaceAddrs {
		if ipNet, ok := addr.(*net.IPNet); ok {
			addrs = append(addrs, ipNet.IP.String())
		}
	}
	if ip := firstUsableIPv4(addrs); ip != "" {
		return ip, nil
	}
	return "", errors.New("no non-loopback IPv4 address found")
}

func firstUsableIPv4(addrs []string) string {
	for _, addr := range addrs {
		ip := net.ParseIP(addr)
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}
