//go:build windows

package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/winservices"
)

// WindowsServices lists services through the Windows service control manager
type WindowsServices struct{}

// Supported always reports true
func (WindowsServices) Supported() bool { return true }

// ServiceNames lists every registered service, whatever its state
func (WindowsServices) ServiceNames(ctx context.Context) ([]string, error) {
	services, err := winservices.ListServices()
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return names, nil
}

// DetectServiceLister returns the service lister for this host
func DetectServiceLister() ServiceLister {
	return WindowsServices{}
}
