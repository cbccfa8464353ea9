package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/Domenick1991/skyseats/internal/kafka"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	msg := Render(kafka.BookingEvent{
		BookingID:  "b-1",
		FlightID:   "FL001",
		Seats:      []string{"1A", "1B"},
		Email:      "ann@example.com",
		Status:     "CONFIRMED",
		TotalCents: 31050,
		PaymentID:  "PAY-1",
	})

	assert.Equal(t, "ann@example.com", msg.To)
	assert.Equal(t, "Booking b-1: CONFIRMED", msg.Subject)
	assert.Contains(t, msg.Body, "Seats: 1A, 1B")
	assert.Contains(t, msg.Body, "Total: 310.50")
}

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	s := NewSender(logger)
	require.NoError(t, s.Send(context.Background(), kafka.BookingEvent{BookingID: "b-1", Email: "ann@example.com"}))
	assert.Contains(t, buf.String(), "notification sent")

	buf.Reset()
	require.NoError(t, s.Send(context.Background(), kafka.BookingEvent{BookingID: "b-2"}))
	assert.NotContains(t, buf.String(), "notification sent")
}
