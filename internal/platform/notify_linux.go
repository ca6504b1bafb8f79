//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications.Notify"
)

// Show delivers the notification over the Freedesktop.org notification bus.
func Show(n Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	call := conn.Object(notifyService, notifyPath).Call(notifyInterface, 0,
		n.AppName,
		uint32(0), // replaces_id: always a fresh notification
		n.Icon,
		n.Title,
		n.Body,
		[]string{}, // no actions
		hints,
		n.expiryMillis(),
	)
	return call.Err
}
