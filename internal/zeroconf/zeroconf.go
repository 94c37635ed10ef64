// Package zeroconf advertises the asset API over mDNS/DNS-SD so game clients
// on the LAN can find it without configuration.
package zeroconf

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grandcat/zeroconf"
)

const serviceType = "_assetd._tcp"

// Service manages mDNS service registration.
type Service struct {
	name    string
	port    int
	version string
}

// New creates a Service that will advertise name on the given port.
func New(name string, port int, version string) *Service {
	return &Service{
		name:    name,
		port:    port,
		version: version,
	}
}

// TXT returns the TXT records published with the service.
func (s *Service) TXT() []string {
	return []string{"version=" + s.version, "path=/api"}
}

// Start registers the mDNS service and blocks until ctx is cancelled, at which
// point it shuts down the server cleanly.
func (s *Service) Start(ctx context.Context) error {
	txt := s.TXT()
	server, err := zeroconf.Register(s.name, serviceType, "local.", s.port, txt, nil)
	if err != nil {
		return fmt.Errorf("zeroconf register: %w", err)
	}
	slog.Info("zeroconf: registered mDNS service",
		"name", s.name,
		"port", s.port,
		"txt", txt,
	)

	<-ctx.Done()

	server.Shutdown()
	slog.Info("zeroconf: mDNS service unregistered")
	return nil
}
