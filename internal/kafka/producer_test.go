package kafka

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewProducer(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	p := NewProducer([]string{"localhost:9092"}, logger)
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())
}

func TestProducer_PublishRejectsUnencodablePayload(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	p := NewProducer([]string{"localhost:9092"}, logger)
	defer p.Close()

	err := p.Publish(context.Background(), "topic", "key", make(chan int))
	assert.ErrorContains(t, err, "marshal")
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := NewProducer(nil, logrus.New())
	assert.Error(t, p.CheckConnection(context.Background()))
}

func TestProducerFile_ConsumerCloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
