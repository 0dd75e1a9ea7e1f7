package notify

import (
	"HospitalAdmin/cache"
	"HospitalAdmin/config"
	"HospitalAdmin/models"
	"HospitalAdmin/session"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func newTestCenter(t *testing.T) *Center {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c, err := cache.NewCache(client)
	require.NoError(t, err)
	return NewCenter(c, time.Minute)
}

func TestCenter_QueuesPerRecipient(t *testing.T) {
	center := newTestCenter(t)
	alice := session.WithSession(context.Background(), &session.Session{UserID: "alice"})

	center.Notify(alice, Success("Ward created successfully"))
	center.Notify(alice, Failure("Failed to delete ward"))
	center.Notify(context.Background(), Success("anonymous toast"))

	got, err := center.Drain(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, LevelSuccess, got[0].Level)
	assert.Equal(t, "Ward created successfully", got[0].Description)
	assert.Equal(t, LevelError, got[1].Level)
	assert.Equal(t, "Error", got[1].Title)
	assert.False(t, got[0].CreatedAt.IsZero())

	again, err := center.Drain(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, again)

	anon, err := center.Drain(context.Background(), "anonymous")
	require.NoError(t, err)
	assert.Len(t, anon, 1)
}

func TestCenter_WithoutCache(t *testing.T) {
	center := NewCenter(nil, time.Minute)
	center.Notify(context.Background(), Success("logged only"))

	got, err := center.Drain(context.Background(), "anonymous")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMailer_DisabledWithoutHost(t *testing.T) {
	m := NewMailer(config.SMTPConfig{})
	assert.False(t, m.Enabled())
	// must not panic
	m.SendAppointmentConfirmation(context.Background(), models.Patient{}, models.Appointment{})
}

func TestMailer_SendsConfirmation(t *testing.T) {
	email := "ada@example.test"
	doctor := "Dr. Grey"
	patient := models.Patient{FirstName: "Ada", LastName: "Lovelace", Email: &email}
	appointment := models.Appointment{
		AppointmentDate: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		DoctorName:      &doctor,
		Purpose:         "Checkup",
	}

	sent := make(chan *gomail.Message, 1)
	m := NewMailer(config.SMTPConfig{Host: "smtp.test", Port: 2525, User: "clinic@example.test"})
	m.send = func(msg *gomail.Message) error {
		sent <- msg
		return nil
	}

	m.SendAppointmentConfirmation(context.Background(), patient, appointment)

	select {
	case msg := <-sent:
		assert.Equal(t, []string{email}, msg.GetHeader("To"))
		assert.Equal(t, []string{"Appointment Confirmation"}, msg.GetHeader("Subject"))
		var buf bytes.Buffer
		_, err := msg.WriteTo(&buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Dr. Grey")
	case <-time.After(time.Second):
		t.Fatal("confirmation was not sent")
	}
}
