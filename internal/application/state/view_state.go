package state

import (
	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
)

// Connectivity is the facility service indicator
type Connectivity string

const (
	ConnectivityUnknown Connectivity = ""
	ConnectivityOnline  Connectivity = "online"
	ConnectivityOffline Connectivity = "offline"
)

// Status messages shown in the form and login regions
const (
	StatusSaved       = "Sacuvano."
	StatusSaveFailed  = "Greska pri upisu."
	StatusDeleted     = "Obrisano."
	StatusLoginFailed = "Neuspesna prijava."
	StatusLoggedIn    = "Prijavljeni ste."
	StatusLoggedOut   = "Odjavljeni ste."
	StatusRegistered  = "Nalog je kreiran. Prijavite se."
	StatusNoToken     = "Prijavite se da biste menjali podatke."
)

// DefaultProjectionYears is the horizon of the enrollment projection on page load
const DefaultProjectionYears = 1

// ViewState is the per-session snapshot rendered by the dashboard. Values are
// replaced, never edited in place: every update function returns a new state.
type ViewState struct {
	Facilities []entities.Facility
	Critical   []entities.Facility
	Reports    []entities.MunicipalityReport
	Profile    *entities.Profile

	Query services.FacilityQuery

	// EditingID is empty while Idle
	EditingID       string
	Form            FormValues
	PendingDeleteID string

	ProjectionYears int

	Connectivity  Connectivity
	ListFailed    bool
	FormStatus    string
	LoginStatus   string
	ReportStatus  string
	ProfileStatus string
}

// New returns the state of a freshly loaded page
func New() ViewState {
	return ViewState{
		Query:           services.FacilityQuery{Sort: entities.SortByName},
		ProjectionYears: DefaultProjectionYears,
	}
}

// WithFilters replaces the filter and search selections, keeping the sort mode
func WithFilters(s ViewState, typ entities.FacilityType, city, municipality, search string) ViewState {
	s.Query.Type = typ
	s.Query.City = city
	s.Query.Municipality = municipality
	s.Query.Search = search
	return s
}

// WithFiltersReset clears type, city, municipality and search
func WithFiltersReset(s ViewState) ViewState {
	return WithFilters(s, "", "", "", "")
}

// WithSort sets the sort mode
func WithSort(s ViewState, mode entities.SortMode) ViewState {
	s.Query.Sort = mode
	return s
}

// FacilitiesLoaded replaces the facility list and marks the service online
func FacilitiesLoaded(s ViewState, list []entities.Facility) ViewState {
	s.Facilities = cloneFacilities(list)
	s.Connectivity = ConnectivityOnline
	s.ListFailed = false
	return s
}

// FacilitiesFailed marks the service offline; the previous list is kept but not shown
func FacilitiesFailed(s ViewState) ViewState {
	s.Connectivity = ConnectivityOffline
	s.ListFailed = true
	return s
}

// ConnectivityChecked records the result of a probe
func ConnectivityChecked(s ViewState, reachable bool) ViewState {
	if reachable {
		s.Connectivity = ConnectivityOnline
	} else {
		s.Connectivity = ConnectivityOffline
	}
	return s
}

// CriticalLoaded replaces the critical facility list
func CriticalLoaded(s ViewState, list []entities.Facility) ViewState {
	s.Critical = cloneFacilities(list)
	return s
}

// ReportsLoaded replaces the municipality report
func ReportsLoaded(s ViewState, rows []entities.MunicipalityReport) ViewState {
	s.Reports = append([]entities.MunicipalityReport(nil), rows...)
	s.ReportStatus = ""
	return s
}

// ReportsFailed sets the report region message
func ReportsFailed(s ViewState, msg string) ViewState {
	s.ReportStatus = msg
	return s
}

// WithProjectionYears sets the projection horizon
func WithProjectionYears(s ViewState, years int) ViewState {
	s.ProjectionYears = years
	return s
}

// ProfileLoaded stores the fetched profile
func ProfileLoaded(s ViewState, p *entities.Profile) ViewState {
	if p != nil {
		cp := *p
		s.Profile = &cp
	}
	s.ProfileStatus = ""
	return s
}

// ProfileUnavailable drops the profile and records why
func ProfileUnavailable(s ViewState, msg string) ViewState {
	s.Profile = nil
	s.ProfileStatus = msg
	return s
}

// WithFormStatus sets the form region message
func WithFormStatus(s ViewState, msg string) ViewState {
	s.FormStatus = msg
	return s
}

// WithLoginStatus sets the login region message
func WithLoginStatus(s ViewState, msg string) ViewState {
	s.LoginStatus = msg
	return s
}

// LoggedOut clears everything derived from the previous account
func LoggedOut(s ViewState) ViewState {
	s.Profile = nil
	s.ProfileStatus = ""
	s.LoginStatus = StatusLoggedOut
	return s
}

func cloneFacilities(list []entities.Facility) []entities.Facility {
	if list == nil {
		return []entities.Facility{}
	}
	return append([]entities.Facility(nil), list...)
}

// FindFacility returns the facility with id from the loaded list
func FindFacility(s ViewState, id string) (entities.Facility, bool) {
	for _, f := range s.Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return entities.Facility{}, false
}
