package queue

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/valkey-io/valkey-go"
)

// Valkey is a list-backed session queue that also publishes session
// updates on pub/sub channels. It is safe for concurrent use, so every
// worker shares one client.
type Valkey struct {
	Client valkey.Client
	queue  string
}

func NewValkey(ctx context.Context, address, password, queueName string) (*Valkey, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create Valkey client")
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "unable to ping Valkey")
	}

	return &Valkey{Client: client, queue: queueName}, nil
}

// Enqueue pushes a session message for the workers.
func (v *Valkey) Enqueue(ctx context.Context, body []byte) error {
	cmd := v.Client.B().Lpush().
		Key(v.queue).
		Element(string(body)).
		Build()

	if err := v.Client.Do(ctx, cmd).Error(); err != nil {
		return errors.Wrapf(err, "unable to add session to queue %s", v.queue)
	}
	return nil
}

func (v *Valkey) Next(ctx context.Context) ([]byte, error) {
	cmd := v.Client.B().Brpop().
		Key(v.queue).
		Timeout(0).
		Build()

	arr, err := v.Client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse blocking right pop response")
	}
	if len(arr) != 2 {
		return nil, errors.Errorf("unexpected blocking right pop response of %d elements", len(arr))
	}
	return []byte(arr[1]), nil
}

func (v *Valkey) PublishUpdate(ctx context.Context, update SessionUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session update")
	}
	cmd := v.Client.B().Publish().
		Channel(routingKey(update.SessionID)).
		Message(string(body)).
		Build()
	return v.Client.Do(ctx, cmd).Error()
}

// Close is a no-op so the shared client can be handed to every worker as
// its Consumer; CloseClient releases it.
func (v *Valkey) Close() error {
	return nil
}

func (v *Valkey) CloseClient() {
	v.Client.Close()
}
