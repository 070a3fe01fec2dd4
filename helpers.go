package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/skillscan/internal/config"
	"github.com/muhammadolammi/skillscan/internal/queue"
)

func NewTransport(ctx context.Context, conf *config.Configuration) (*Transport, error) {
	switch conf.Queue.Backend {
	case queue.BackendRabbitMQ:
		publisher, err := queue.DialRabbitPublisher(conf.Queue.RabbitMQURL, conf.Queue.UpdatesExchange)
		if err != nil {
			return nil, err
		}
		return &Transport{
			Publisher: publisher,
			NewConsumer: func() (queue.Consumer, error) {
				return queue.DialRabbitConsumer(conf.Queue.RabbitMQURL, conf.Queue.SessionsQueue)
			},
			closers: []func(){func() { publisher.Close() }},
		}, nil

	case queue.BackendValkey:
		v, err := queue.NewValkey(ctx, conf.Queue.ValkeyAddr, conf.Queue.ValkeyPassword, conf.Queue.SessionsQueue)
		if err != nil {
			return nil, err
		}
		return &Transport{
			Publisher: v,
			NewConsumer: func() (queue.Consumer, error) {
				return v, nil
			},
			closers: []func(){v.CloseClient},
		}, nil

	default:
		return nil, errors.Errorf("unknown queue backend %q", conf.Queue.Backend)
	}
}
