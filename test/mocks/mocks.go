package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hyper-a11/cyber-gst-info/internal/models"
)

// MockFetcher is a mock implementation of upstream.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, gstin string) (models.RawRecord, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.RawRecord), args.Error(1)
}

// MockLimiter is a mock implementation of cache.Limiter
type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockLimiter) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}
