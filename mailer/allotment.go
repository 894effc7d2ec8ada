// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"fmt"
	"strings"
)

// Event names the conference in outgoing mail.
type Event struct {
	Name string
	Year string
}

// EventFromEnv reads EVENT_NAME and EVENT_YEAR.
func EventFromEnv(getenv func(string) string) Event {
	ev := Event{Name: "GLCE MUN", Year: "2026"}
	if v := strings.TrimSpace(getenv("EVENT_NAME")); v != "" {
		ev.Name = v
	}
	if v := strings.TrimSpace(getenv("EVENT_YEAR")); v != "" {
		ev.Year = v
	}
	return ev
}

// Allotment is what a delegate is told about their seat.
type Allotment struct {
	Name      string
	Email     string
	Round     string
	Committee string
	Portfolio string
}

// AllotmentMessage builds the plain-text allotment confirmation.
func AllotmentMessage(ev Event, a Allotment) Message {
	name := a.Name
	if strings.TrimSpace(name) == "" {
		name = "Delegate"
	}
	round := a.Round
	if strings.TrimSpace(round) == "" {
		round = "Priority"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Your %s allotment for %s %s is confirmed.\n\n", round, ev.Name, ev.Year)
	fmt.Fprintf(&b, "Committee: %s\n", a.Committee)
	fmt.Fprintf(&b, "Portfolio: %s\n\n", a.Portfolio)
	fmt.Fprintf(&b, "Regards,\n%s Secretariat\n", ev.Name)

	return Message{
		To:      a.Email,
		Subject: fmt.Sprintf("%s %s - %s Allotment: %s (%s)", ev.Name, ev.Year, round, a.Committee, a.Portfolio),
		Text:    b.String(),
	}
}
