package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/skillscan/internal/queue"
)

type scriptedConsumer struct {
	bodies [][]byte
	errs   []error
	cancel context.CancelFunc
	closed int
}

func (c *scriptedConsumer) Next(ctx context.Context) ([]byte, error) {
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		return nil, err
	}
	if len(c.bodies) == 0 {
		if c.cancel != nil {
			c.cancel()
			return nil, ctx.Err()
		}
		return nil, queue.ErrClosed
	}
	body := c.bodies[0]
	c.bodies = c.bodies[1:]
	return body, nil
}

func (c *scriptedConsumer) Close() error {
	c.closed++
	return nil
}

func TestConsume(t *testing.T) {
	t.Run(`a failing session does not stop the loop`, func(t *testing.T) {
		f := newFixture()
		first := Session{ID: uuid.New(), JobDescription: "JD", Actions: []string{"evaluation"}}
		second := Session{ID: uuid.New(), JobDescription: "JD", Actions: []string{"evaluation"}}

		f.db.On("UpdateSessionStatus", mock.Anything, mock.Anything).Return(nil)
		f.updates.On("PublishUpdate", mock.Anything, mock.Anything).Return(nil)
		f.db.On("GetResumeBySession", mock.Anything, first.ID).Return(nil, errors.New("db timeout")).Once()
		f.db.On("GetResumeBySession", mock.Anything, second.ID).Return(nil, errors.New("db timeout")).Once()

		c := &scriptedConsumer{bodies: [][]byte{[]byte("garbage"), message(t, first), message(t, second)}}
		err := f.processor.Consume(context.Background(), 1, c)
		require.ErrorIs(t, err, queue.ErrClosed)
		f.db.AssertExpectations(t)
	})

	t.Run(`consume errors wait and retry the queue`, func(t *testing.T) {
		f := newFixture()
		old := consumeBackoff
		consumeBackoff = time.Millisecond
		defer func() { consumeBackoff = old }()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		c := &scriptedConsumer{errs: []error{errors.New("broker unavailable"), errors.New("broker unavailable")}, cancel: cancel}

		require.NoError(t, f.processor.Consume(ctx, 2, c))
		require.Empty(t, c.errs)
	})

	t.Run(`cancelled context stops the loop`, func(t *testing.T) {
		f := newFixture()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, f.processor.Consume(ctx, 3, &scriptedConsumer{}))
	})
}

func TestRun(t *testing.T) {
	t.Run(`closed and failed consumers are replaced`, func(t *testing.T) {
		f := newFixture()
		old := consumeBackoff
		consumeBackoff = time.Millisecond
		defer func() { consumeBackoff = old }()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		closing := &scriptedConsumer{}
		last := &scriptedConsumer{cancel: cancel}
		dials := 0
		dial := func() (queue.Consumer, error) {
			dials++
			switch dials {
			case 1:
				return nil, errors.New("connection refused")
			case 2:
				return closing, nil
			default:
				return last, nil
			}
		}

		f.processor.Run(ctx, 4, dial)
		require.Equal(t, 3, dials)
		require.Equal(t, 1, closing.closed)
		require.Equal(t, 1, last.closed)
	})

	t.Run(`cancelled context stops redialing`, func(t *testing.T) {
		f := newFixture()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		dials := 0
		f.processor.Run(ctx, 5, func() (queue.Consumer, error) {
			dials++
			return nil, errors.New("connection refused")
		})
		require.Equal(t, 1, dials)
	})
}
