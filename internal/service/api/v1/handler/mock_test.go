package handler

import (
	"context"

	"github.com/darkkaiser/hoplink/internal/service/lookup"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/stretchr/testify/mock"
)

type mockLookupService struct {
	mock.Mock
}

func (m *mockLookupService) Lookup(ctx context.Context, req lookup.Request) (*lookup.Result, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*lookup.Result)
	return res, args.Error(1)
}

func (m *mockLookupService) Batch(ctx context.Context, reqs []lookup.Request) ([]lookup.BatchItem, error) {
	args := m.Called(ctx, reqs)
	items, _ := args.Get(0).([]lookup.BatchItem)
	return items, args.Error(1)
}

func (m *mockLookupService) BatchMatch(ctx context.Context, sources []*product.Record, mode string) ([]lookup.MatchOutcome, error) {
	args := m.Called(ctx, sources, mode)
	outcomes, _ := args.Get(0).([]lookup.MatchOutcome)
	return outcomes, args.Error(1)
}

func (m *mockLookupService) PurgeCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
