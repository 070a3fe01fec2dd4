package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/muhammadolammi/skillscan/internal/queue"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishUpdate(ctx context.Context, update queue.SessionUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}
