//go:build !linux && !darwin && !windows

package platform

// Show is a no-op on platforms without a notification center integration.
func Show(n Notification) error {
	return nil
}
