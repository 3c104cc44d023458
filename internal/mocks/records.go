package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

type MockVitalsService struct {
	mock.Mock
}

var _ service.IVitalsService = (*MockVitalsService)(nil)

func (m *MockVitalsService) Add(ctx context.Context, userID uuid.UUID, req types.VitalsRequest) (*models.VitalsEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VitalsEntry), args.Error(1)
}

func (m *MockVitalsService) List(ctx context.Context, userID uuid.UUID, from, to string) ([]models.VitalsEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VitalsEntry), args.Error(1)
}

type MockMealService struct {
	mock.Mock
}

var _ service.IMealService = (*MockMealService)(nil)

func (m *MockMealService) List(ctx context.Context, userID uuid.UUID, date string) ([]models.Meal, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealService) AddManual(ctx context.Context, userID uuid.UUID, req types.ManualMealRequest) (*models.Meal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

type MockActivityService struct {
	mock.Mock
}

var _ service.IActivityService = (*MockActivityService)(nil)

func (m *MockActivityService) List(ctx context.Context, userID uuid.UUID, date string) ([]models.Activity, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Activity), args.Error(1)
}

func (m *MockActivityService) Add(ctx context.Context, userID uuid.UUID, req types.ActivityRequest) (*models.Activity, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockActivityService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
