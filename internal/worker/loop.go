package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/skillscan/internal/queue"
)

var consumeBackoff = 5 * time.Second

// Consume feeds messages from c to the processor until ctx is done or the
// consumer is closed. One message is handled at a time.
func (p *Processor) Consume(ctx context.Context, workerID int, c queue.Consumer) error {
	log := p.log.WithField("worker_id", workerID)
	log.Info("worker started")
	for {
		body, err := c.Next(ctx)
		switch {
		case ctx.Err() != nil:
			log.Info("worker stopped")
			return nil
		case errors.Is(err, queue.ErrClosed):
			return err
		case err != nil:
			log.WithError(err).Error("error consuming session from queue")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(consumeBackoff):
			}
			continue
		}

		_ = p.Process(ctx, body)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Run keeps a consumer open for the worker until ctx is done. A consumer
// that cannot be opened or that closes is replaced after the backoff.
func (p *Processor) Run(ctx context.Context, workerID int, dial func() (queue.Consumer, error)) {
	log := p.log.WithField("worker_id", workerID)
	for {
		c, err := dial()
		if err != nil {
			log.WithError(err).Error("error creating consumer")
		} else {
			err = p.Consume(ctx, workerID, c)
			if cerr := c.Close(); cerr != nil {
				log.WithError(cerr).Warn("error closing consumer")
			}
			if err == nil {
				return
			}
			log.WithError(err).Warn("consumer closed, reconnecting")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(consumeBackoff):
		}
	}
}
