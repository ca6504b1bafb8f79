//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Show posts to Notification Center via osascript. macOS controls the
// lifetime and attribution itself, so AppName, Icon and Expiry are ignored.
func Show(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q", n.Body, n.Title)
	return exec.Command("osascript", "-e", script).Run()
}
