package email

import (
	"fmt"
	"html"
	"time"
)

const dateLayout = "Mon Jan 2 2006, 3:04 PM MST"

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

func greeting(name string) string {
	if name == "" {
		return "Hello"
	}
	return "Hello " + name
}

// ReminderDue is sent by the reminder sweep when an event is about to start.
func ReminderDue(name, eventName string, eventDate time.Time) Message {
	when := eventDate.UTC().Format(dateLayout)
	return Message{
		Subject: fmt.Sprintf("Reminder: %s is coming up!", eventName),
		Text: fmt.Sprintf("%s, your event %s starts on %s. Don't miss it!",
			greeting(name), eventName, when),
		HTML: fmt.Sprintf("<p>%s,</p><p>Your event <strong>%s</strong> starts on %s.</p><p>Don't miss it!</p>",
			html.EscapeString(greeting(name)), html.EscapeString(eventName), when),
	}
}

// ReminderSet confirms that a reminder was registered.
func ReminderSet(name, eventName string, eventDate, reminderTime time.Time) Message {
	when := eventDate.UTC().Format(dateLayout)
	at := reminderTime.UTC().Format(dateLayout)
	return Message{
		Subject: fmt.Sprintf("Reminder set for %s", eventName),
		Text: fmt.Sprintf("%s, we'll remind you about %s (%s) on %s.",
			greeting(name), eventName, when, at),
		HTML: fmt.Sprintf("<p>%s,</p><p>We'll remind you about <strong>%s</strong> (%s) on %s.</p>",
			html.EscapeString(greeting(name)), html.EscapeString(eventName), when, at),
	}
}
