package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockSummaryService is a mock implementation of the ISummaryService interface
type MockSummaryService struct {
	mock.Mock
}

var _ service.ISummaryService = (*MockSummaryService)(nil)

func (m *MockSummaryService) Daily(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DailySummary), args.Error(1)
}

func (m *MockSummaryService) Weekly(ctx context.Context, userID uuid.UUID, endDate string) (*types.WeeklySummary, error) {
	args := m.Called(ctx, userID, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WeeklySummary), args.Error(1)
}

func (m *MockSummaryService) Monthly(ctx context.Context, userID uuid.UUID, year, month int) (map[int]types.CalendarDay, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]types.CalendarDay), args.Error(1)
}

// MockAnalysisService is a mock implementation of the IAnalysisService interface
type MockAnalysisService struct {
	mock.Mock
}

var _ service.IAnalysisService = (*MockAnalysisService)(nil)

func (m *MockAnalysisService) ValidateUpload(filename string, size int64) error {
	args := m.Called(filename, size)
	return args.Error(0)
}

func (m *MockAnalysisService) MaxUploadBytes() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockAnalysisService) Analyze(ctx context.Context, in service.AnalyzeInput) (*types.MealAnalysis, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MealAnalysis), args.Error(1)
}
