package notify

import (
	"testing"
)

func TestLoadPreferencesEnvOverride(t *testing.T) {
	t.Setenv("INKCALC_NOTIFY_TITLE", "My Board")
	t.Setenv("INKCALC_NOTIFY_RESULT_TEXT", "Solved: %s")

	prefs := LoadPreferences()
	if prefs.Title != "My Board" {
		t.Errorf("expected overridden title, got %q", prefs.Title)
	}
	if prefs.Events[EventResult].Template != "Solved: %s" {
		t.Errorf("expected overridden template, got %q", prefs.Events[EventResult].Template)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Errorf("untouched templates should keep defaults, got %q", prefs.Events[EventSave].Template)
	}
}

func TestMessageFormatting(t *testing.T) {
	n := New(DefaultPreferences())
	body, ok := n.message(EventResult, "  2+2 = 4  ")
	if !ok || body != "Recognized 2+2 = 4" {
		t.Errorf("unexpected body %q (ok=%v)", body, ok)
	}
	if _, ok := n.message(Event("bogus"), "x"); ok {
		t.Error("unknown events must not produce a message")
	}

	blank := New(Preferences{Events: map[Event]EventPreference{EventCopy: {Template: "   "}}})
	if _, ok := blank.message(EventCopy, "x"); ok {
		t.Error("blank templates must not produce a message")
	}
}

func TestDisabledEventsStaySilent(t *testing.T) {
	n := New(DefaultPreferences())
	// Nothing enabled: these must all be no-ops rather than touching the bus.
	n.Result("2+2 = 4", nil)
	n.Save("/tmp/x.png")
	n.Copy("drawing")

	var nilNotifier *Notifier
	nilNotifier.Enable(EventSave, true)
	nilNotifier.Save("/tmp/x.png")
}
