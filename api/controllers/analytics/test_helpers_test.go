package analytics

import (
	"context"

	"github.com/angelmondragon/commerce-dashboard/internal/analytics/types"
)

type testAnalyticsService struct {
	last     types.DashboardQueryRequest
	calls    int
	response *types.DashboardQueryResponse
	err      error
}

func (s *testAnalyticsService) Query(ctx context.Context, req types.DashboardQueryRequest) (*types.DashboardQueryResponse, error) {
	s.last = req
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.response == nil {
		s.response = &types.DashboardQueryResponse{}
	}
	return s.response, nil
}

func (s *testAnalyticsService) called() bool {
	return s.calls > 0
}
