package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminderDueTemplate(t *testing.T) {
	date := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	msg := ReminderDue("Ada", "HackMIT <2026>", date)

	assert.Equal(t, "Reminder: HackMIT <2026> is coming up!", msg.Subject)
	assert.Contains(t, msg.Text, "Hello Ada")
	assert.Contains(t, msg.Text, "Sat Mar 14 2026, 3:00 PM UTC")
	assert.Contains(t, msg.HTML, "HackMIT &lt;2026&gt;")
	assert.NotContains(t, msg.HTML, "<2026>")
}

func TestReminderSetTemplate(t *testing.T) {
	date := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	msg := ReminderSet("", "ICPC", date, date.Add(-time.Hour))

	assert.Equal(t, "Reminder set for ICPC", msg.Subject)
	assert.Contains(t, msg.Text, "Hello, we'll remind you about ICPC")
	assert.Contains(t, msg.Text, "2:00 PM UTC")
}

func TestNoopSender(t *testing.T) {
	assert.NoError(t, NoopSender{}.Send(context.Background(), "a@b.dev", "s", "t", "h"))
}
