package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventIDUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want EventID
	}{
		{name: "number", in: `{"eventId": 42}`, want: "42"},
		{name: "whole float", in: `{"eventId": 42.0}`, want: "42"},
		{name: "exponent", in: `{"eventId": 4.2e1}`, want: "42"},
		{name: "negative zero fraction", in: `{"eventId": -7.00}`, want: "-7"},
		{name: "fraction kept", in: `{"eventId": 4.5}`, want: "4.5"},
		{name: "large integer", in: `{"eventId": 9007199254740993}`, want: "9007199254740993"},
		{name: "string", in: `{"eventId": "abc-1"}`, want: "abc-1"},
		{name: "padded string", in: `{"eventId": " 7 "}`, want: "7"},
		{name: "null", in: `{"eventId": null}`, want: ""},
		{name: "missing", in: `{}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ReminderRequest
			require.NoError(t, json.Unmarshal([]byte(tt.in), &req))
			assert.Equal(t, tt.want, req.EventID)
		})
	}
}

func TestEventIDRejectsObjects(t *testing.T) {
	var req ReminderRequest
	assert.Error(t, json.Unmarshal([]byte(`{"eventId": {"x": 1}}`), &req))
}

func TestNotificationTypeValid(t *testing.T) {
	assert.True(t, NotificationReminder.Valid())
	assert.True(t, NotificationEvent.Valid())
	assert.True(t, NotificationSystem.Valid())
	assert.False(t, NotificationType("promo").Valid())
}
