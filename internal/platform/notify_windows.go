//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript assembles the PowerShell fragment that builds and shows a
// WinRT toast. Expiry is left to the notification center.
func toastScript(n Notification) string {
	var b strings.Builder
	b.WriteString(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `)
	template := "ToastText02"
	if strings.TrimSpace(n.Icon) != "" {
		template = "ToastImageAndText02"
	}
	fmt.Fprintf(&b, `$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); `, template)
	b.WriteString(`$texts = $template.GetElementsByTagName("text"); `)
	fmt.Fprintf(&b, `$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null; `, psQuote(n.Title))
	fmt.Fprintf(&b, `$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null; `, psQuote(n.Body))
	if template == "ToastImageAndText02" {
		fmt.Fprintf(&b, `$template.GetElementsByTagName("image").Item(0).SetAttribute("src", %s); `, psQuote(strings.TrimSpace(n.Icon)))
	}
	b.WriteString(`$toast = [Windows.UI.Notifications.ToastNotification]::new($template); `)
	fmt.Fprintf(&b, `$notifier = [Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s); `, psQuote(n.AppName))
	b.WriteString(`$notifier.Show($toast);`)
	return b.String()
}

// Show displays a toast through the Windows notification center.
func Show(n Notification) error {
	return exec.Command("powershell.exe", "-NoProfile", "-Command", toastScript(n)).Run()
}
