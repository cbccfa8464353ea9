package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/skyseats/internal/kafka"
	"github.com/Domenick1991/skyseats/internal/pricing"
	"github.com/sirupsen/logrus"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender renders booking notifications and hands them to the log. There is
// no SMTP relay in the deployment yet.
type Sender struct {
	logger *logrus.Logger
}

func NewSender(logger *logrus.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		s.logger.WithField("booking_id", event.BookingID).Debug("no recipient, notification dropped")
		return nil
	}
	msg := Render(event)
	s.logger.WithFields(logrus.Fields{
		"to":         msg.To,
		"subject":    msg.Subject,
		"booking_id": event.BookingID,
	}).Info("notification sent")
	return nil
}

func Render(event kafka.BookingEvent) Message {
	seats := "none selected"
	if len(event.Seats) > 0 {
		seats = strings.Join(event.Seats, ", ")
	}
	return Message{
		To:      event.Email,
		Subject: fmt.Sprintf("Booking %s: %s", event.BookingID, event.Status),
		Body: fmt.Sprintf("Flight %s\nSeats: %s\nTotal: %.2f\nPayment: %s\n",
			event.FlightID, seats, pricing.ToAmount(event.TotalCents), event.PaymentID),
	}
}
