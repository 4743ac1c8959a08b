// Package clientip extracts real client IP addresses from HTTP requests.
//
// Proxy headers are checked in priority order (X-Forwarded-For, X-Real-IP)
// before falling back to the connection's remote address, so sessions record
// the actual client rather than the load balancer in front of it.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Get returns the client IP address for the request.
// The first address in X-Forwarded-For wins; otherwise X-Real-IP, then the
// host part of RemoteAddr.
func Get(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); isValid(ip) {
			return ip
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); isValid(real) {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, e.g. in tests
		if isValid(r.RemoteAddr) {
			return r.RemoteAddr
		}
		return ""
	}
	return host
}

func isValid(ip string) bool {
	return net.ParseIP(ip) != nil
}
