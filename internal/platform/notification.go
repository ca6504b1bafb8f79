package platform

import "time"

// DefaultExpiry is used when a notification does not set its own lifetime.
const DefaultExpiry = 5 * time.Second

// Notification carries everything a host notification center needs.
type Notification struct {
	// AppName identifies the sending application to the notification center.
	AppName string
	Title   string
	Body    string
	// Icon, when non-empty, points to an image file the notification center
	// should display alongside the message if the platform supports it.
	Icon string
	// Expiry bounds how long the notification stays visible. Zero selects
	// DefaultExpiry; platforms without timeout control ignore it.
	Expiry time.Duration
}

func (n Notification) expiryMillis() int32 {
	d := n.Expiry
	if d <= 0 {
		d = DefaultExpiry
	}
	return int32(d / time.Millisecond)
}
