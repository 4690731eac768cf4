package broker

import "context"

type Producer interface {
	SendMessage(ctx context.Context, key, value []byte) error
}

// NoopProducer drops every message. Used when no brokers are configured.
type NoopProducer struct{}

func (NoopProducer) SendMessage(context.Context, []byte, []byte) error {
	return nil
}
