package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// PingService checks if a service is reachable at the given URL
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()

	// Default ports if not specified
	if port == "" {
		switch parsedURL.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			port = "80"
		}
	}

	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingZotero checks if the reference API endpoint is reachable
func PingZotero(apiURL string) error {
	return PingService(apiURL, 1500*time.Millisecond)
}

// PingStorage checks if the object storage endpoint is reachable. The endpoint
// arrives host:port without a scheme.
func PingStorage(endpoint string, useSSL bool) error {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return PingService(scheme+"://"+endpoint, 1500*time.Millisecond)
}
