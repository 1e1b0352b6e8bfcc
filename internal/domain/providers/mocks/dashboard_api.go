// Package mocks holds testify mocks of the provider interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
)

// DashboardAPI is a mock of providers.DashboardAPI
type DashboardAPI struct {
	mock.Mock
}

var _ providers.DashboardAPI = (*DashboardAPI)(nil)

func (m *DashboardAPI) ListFacilities(ctx context.Context, opts providers.ListOptions) ([]entities.Facility, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Facility), args.Error(1)
}

func (m *DashboardAPI) GetFacility(ctx context.Context, id string) (*entities.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Facility), args.Error(1)
}

func (m *DashboardAPI) CreateFacility(ctx context.Context, input entities.FacilityInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *DashboardAPI) UpdateFacility(ctx context.Context, id string, input entities.FacilityInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *DashboardAPI) DeleteFacility(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DashboardAPI) ListCritical(ctx context.Context) ([]entities.Facility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Facility), args.Error(1)
}

func (m *DashboardAPI) MunicipalityReport(ctx context.Context) ([]entities.MunicipalityReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.MunicipalityReport), args.Error(1)
}

func (m *DashboardAPI) MunicipalityReportPDF(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *DashboardAPI) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *DashboardAPI) Login(ctx context.Context, email, password string) (*entities.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthResult), args.Error(1)
}

func (m *DashboardAPI) Register(ctx context.Context, creds entities.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *DashboardAPI) Profile(ctx context.Context) (*entities.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}
