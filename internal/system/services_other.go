//go:build !windows

package system

// DetectServiceLister returns the service lister for this host
func DetectServiceLister() ServiceLister {
	return UnsupportedServices{}
}
