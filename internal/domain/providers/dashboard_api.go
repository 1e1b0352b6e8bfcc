package providers

import (
	"context"

	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
)

// TokenSource yields the bearer token for protected upstream calls
type TokenSource interface {
	// Get returns the stored token; ok is false when there is none
	Get(ctx context.Context) (token string, ok bool)
}

// ListOptions are the server-side list parameters
type ListOptions struct {
	Sort entities.SortMode
}

// FacilityAPI is the facility service as seen by the dashboard
type FacilityAPI interface {
	ListFacilities(ctx context.Context, opts ListOptions) ([]entities.Facility, error)
	GetFacility(ctx context.Context, id string) (*entities.Facility, error)
	CreateFacility(ctx context.Context, input entities.FacilityInput) error
	UpdateFacility(ctx context.Context, id string, input entities.FacilityInput) error
	DeleteFacility(ctx context.Context, id string) error
	ListCritical(ctx context.Context) ([]entities.Facility, error)
	MunicipalityReport(ctx context.Context) ([]entities.MunicipalityReport, error)
	MunicipalityReportPDF(ctx context.Context) ([]byte, error)
	Ping(ctx context.Context) error
}

// AuthAPI is the auth service as seen by the dashboard
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*entities.AuthResult, error)
	Register(ctx context.Context, creds entities.Credentials) error
	Profile(ctx context.Context) (*entities.Profile, error)
}

// DashboardAPI is the full upstream surface bound to one token source
type DashboardAPI interface {
	FacilityAPI
	AuthAPI
}

// DashboardAPIFactory binds the upstream client to a browser session's tokens
type DashboardAPIFactory interface {
	ForSession(tokens TokenSource) DashboardAPI
}
