package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SessionID)
		return errors.New("first failed")
	})
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SessionID)
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventLoginSucceeded, "s1", LoginPayload{Email: "a@b.co"}))
	assert.EqualError(t, err, "first failed")
	assert.Equal(t, []string{"first:s1", "second:s1"}, got)

	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventLoginFailed, "s1", nil)))
}

func TestEventTypeParts(t *testing.T) {
	assert.Equal(t, "registration", EventRegistrationFailed.Flow())
	assert.Equal(t, "failed", EventRegistrationFailed.Outcome())
	assert.Equal(t, "plain", EventType("plain").Flow())
	assert.Equal(t, "", EventType("plain").Outcome())
}

func TestNewEventStampsID(t *testing.T) {
	e := NewEvent(EventVerificationSucceeded, "", VerificationPayload{TokenPresent: true})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
}
