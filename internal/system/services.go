package system

import "context"

// ServiceLister enumerates service names on hosts that expose a service manager
type ServiceLister interface {
	// Supported reports whether the host has a service-management API
	Supported() bool
	ServiceNames(ctx context.Context) ([]string, error)
}

// UnsupportedServices is selected on hosts without a service-management API
type UnsupportedServices struct{}

// Supported always reports false
func (UnsupportedServices) Supported() bool { return false }

// ServiceNames returns the single unsupported sentinel
func (UnsupportedServices) ServiceNames(context.Context) ([]string, error) {
	return []string{SentinelUnsupported}, nil
}
