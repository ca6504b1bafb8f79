// Package notify formats and delivers desktop notifications for drawing
// events, delegating the OS integration to internal/platform.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/inkcalc/internal/platform"
)

// appName identifies the application to the host notification center.
const appName = "InkCalc"

// Event identifies a notification trigger.
type Event string

const (
	// EventResult fires when a recognition result surfaces on the canvas.
	EventResult Event = "result"
	// EventSave fires when the drawing is persisted to disk.
	EventSave Event = "save"
	// EventCopy fires when the drawing is copied to the clipboard.
	EventCopy Event = "copy"
)

// EventPreference describes formatting for a notification event. Template is
// a Printf format with a single %s slot for the event detail.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: appName,
		Events: map[Event]EventPreference{
			EventResult: {Template: "Recognized %s"},
			EventSave:   {Template: "Saved %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences reads notification settings from environment variables,
// falling back to the defaults for anything unset.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("INKCALC_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range map[Event]string{
		EventResult: "INKCALC_NOTIFY_RESULT_TEXT",
		EventSave:   "INKCALC_NOTIFY_SAVE_TEXT",
		EventCopy:   "INKCALC_NOTIFY_COPY_TEXT",
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// Notifier sends OS-level notifications based on the configured preferences.
// The zero value and nil are both inert.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Result sends a recognition notification with an optional drawing preview.
func (n *Notifier) Result(detail string, img image.Image) {
	if !n.enabledFor(EventResult) {
		return
	}
	icon := ""
	if img != nil {
		if path, cleanup, err := writePreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			icon = path
		}
	}
	n.post(EventResult, detail, icon)
}

// Save sends a save notification, showing the written file as the icon when
// it is readable.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	icon := ""
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			icon = abs
		}
	}
	n.post(EventSave, detail, icon)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	n.post(EventCopy, detail, "")
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) post(event Event, detail, icon string) {
	body, ok := n.message(event, detail)
	if !ok {
		return
	}
	err := platform.Show(platform.Notification{
		AppName: appName,
		Title:   n.prefs.Title,
		Body:    body,
		Icon:    icon,
	})
	if err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// message renders the event template against the detail text. ok is false
// when the event has no usable template or the rendered body is empty.
func (n *Notifier) message(event Event, detail string) (string, bool) {
	pref, found := n.prefs.Events[event]
	template := strings.TrimSpace(pref.Template)
	if !found || template == "" {
		return "", false
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	return body, body != ""
}

// writePreview encodes the drawing to a temp PNG for use as a notification
// icon. The caller must invoke cleanup once the notification has been posted.
func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "inkcalc-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
