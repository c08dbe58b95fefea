package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EventID identifies an externally defined event. Clients send it either as a
// JSON number or a string; it is stored as a string.
type EventID string

func (id *EventID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EventID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("eventId must be a string or number: %w", err)
	}
	*id = EventID(canonicalNumber(n))
	return nil
}

// canonicalNumber renders whole numbers without fraction or exponent so that
// 42, 42.0 and 4.2e1 name the same event.
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return n.String()
	}
	return strconv.FormatInt(int64(f), 10)
}

func (id EventID) String() string { return string(id) }

// Reminder is a per-user request to be notified about an event.
// EventName and EventDate are copies taken when the reminder was set.
type Reminder struct {
	ID           string    `bson:"id" json:"id"`
	EventID      EventID   `bson:"eventId" json:"eventId"`
	EventName    string    `bson:"eventName" json:"eventName"`
	EventDate    time.Time `bson:"eventDate" json:"eventDate"`
	ReminderTime time.Time `bson:"reminderTime" json:"reminderTime"`
	IsNotified   bool      `bson:"isNotified" json:"isNotified"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReminderRequest is the body of POST /api/users/reminders.
// ReminderTime is optional and defaults to EventDate.
type ReminderRequest struct {
	EventID      EventID    `json:"eventId"`
	EventName    string     `json:"eventName"`
	EventDate    time.Time  `json:"eventDate"`
	ReminderTime *time.Time `json:"reminderTime,omitempty"`
}

// DueReminder pairs a due reminder with the delivery details of its owner.
type DueReminder struct {
	UserID   string   `bson:"userId"`
	Email    string   `bson:"email"`
	Name     string   `bson:"name"`
	Reminder Reminder `bson:"reminder"`
}
