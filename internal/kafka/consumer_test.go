package kafka

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBookingEvent(t *testing.T) {
	event, err := DecodeBookingEvent([]byte(`{"type":"booking_created","booking_id":"b-1","flight_id":"FL001","seats":["1A"],"email":"a@b.c","total_cents":31000}`))
	require.NoError(t, err)
	assert.Equal(t, "booking_created", event.Type)
	assert.Equal(t, []string{"1A"}, event.Seats)
	assert.Equal(t, int64(31000), event.TotalCents)

	_, err = DecodeBookingEvent([]byte(`{"type":"booking_created"}`))
	assert.Error(t, err)

	_, err = DecodeBookingEvent([]byte(`not json`))
	assert.Error(t, err)
}

func TestConsumer_dispatch(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c := &Consumer{logger: logger}

	var got []BookingEvent
	handler := func(_ context.Context, e BookingEvent) error {
		got = append(got, e)
		return nil
	}

	require.NoError(t, c.dispatch(context.Background(), kafka.Message{Value: []byte(`garbage`)}, handler))
	require.NoError(t, c.dispatch(context.Background(), kafka.Message{Value: []byte(`{"booking_id":"b-1"}`)}, handler))
	assert.Len(t, got, 1)

	boom := errors.New("smtp down")
	err := c.dispatch(context.Background(), kafka.Message{Value: []byte(`{"booking_id":"b-2"}`)},
		func(context.Context, BookingEvent) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
