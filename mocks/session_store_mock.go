package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/muhammadolammi/skillscan/internal/database"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) GetResumeBySession(ctx context.Context, sessionID uuid.UUID) (database.Resume, error) {
	args := m.Called(ctx, sessionID)

	if args.Get(0) == nil {
		return database.Resume{}, args.Error(1)
	}

	return args.Get(0).(database.Resume), args.Error(1)
}

func (m *MockSessionStore) UpdateSessionStatus(ctx context.Context, arg database.UpdateSessionStatusParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *MockSessionStore) CreateOrUpdateAnalysesResults(ctx context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
