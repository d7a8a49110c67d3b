// Package discovery advertises the server on the local network over
// mDNS so board clients can find it without configuration.
package discovery

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_boardsync._tcp"

// Advertise publishes the server's websocket port as a boardsync
// service. Shut the returned server down when the process exits.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"", // default .local domain
		"", // OS hostname
		port,
		nil, // auto-detect IPs
		[]string{"boardsync"},
	)
	if err != nil {
		return nil, fmt.Errorf("create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mDNS server: %w", err)
	}
	return server, nil
}
