package views

import (
	"fmt"
	"time"

	"github.com/euprava/vrtic-dashboard/internal/application/bootstrap"
	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/application/state"
	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
)

// NavItem is one navigation link
type NavItem struct {
	Path   string
	Title  string
	Active bool
}

// FormView is the facility create/edit form
type FormView struct {
	Editing   bool
	EditingID string
	Values    state.FormValues
	Types     []Option
	Status    string
}

// AccountView is the login region
type AccountView struct {
	LoggedIn  bool
	Email     string
	Role      string
	ExpiresAt string
	CreatedAt string
	Status    string
	Roles     []Option
}

// Session carries what the page shows about the current login
type Session struct {
	LoggedIn bool
	Claims   services.TokenClaims
}

// Page is everything a template needs to draw one page variant
type Page struct {
	Title       string
	Prefix      string
	Nav         []NavItem
	FacilityURL string

	Connectivity      string
	ConnectivityClass string

	ShowStats        bool
	ShowFilters      bool
	ShowCards        bool
	ShowForm         bool
	ShowCritical     bool
	ShowReport       bool
	ShowRanking      bool
	ShowProjection   bool
	ShowAccount      bool
	ShowProfile      bool
	ShowConnectivity bool

	Stats   Stats
	Filters Filters
	Cards   CardList
	Form    FormView

	Critical        []CriticalCard
	Report          []ReportRow
	Ranking         []ReportRow
	Projection      []ReportRow
	ProjectionYears int
	ReportStatus    string

	Account AccountView
}

// Builder turns session state into page view models
type Builder struct {
	engine      *services.FacilityViewService
	facilityURL string
}

// NewBuilder creates a page builder
func NewBuilder(engine *services.FacilityViewService, facilityURL string) *Builder {
	return &Builder{engine: engine, facilityURL: facilityURL}
}

// Build projects s onto the regions cfg declares. It never modifies s.
func (b *Builder) Build(cfg bootstrap.PageConfig, s state.ViewState, sess Session) Page {
	p := Page{
		Title:            cfg.Title,
		Prefix:           cfg.Prefix(),
		FacilityURL:      b.facilityURL,
		ShowStats:        cfg.Has(bootstrap.RegionStats),
		ShowFilters:      cfg.Has(bootstrap.RegionFilters),
		ShowCards:        cfg.Has(bootstrap.RegionCards),
		ShowForm:         cfg.Has(bootstrap.RegionForm),
		ShowCritical:     cfg.Has(bootstrap.RegionCritical),
		ShowReport:       cfg.Has(bootstrap.RegionReport),
		ShowRanking:      cfg.Has(bootstrap.RegionRanking),
		ShowProjection:   cfg.Has(bootstrap.RegionProjection),
		ShowAccount:      cfg.Has(bootstrap.RegionLogin),
		ShowProfile:      cfg.Has(bootstrap.RegionProfile),
		ShowConnectivity: cfg.Has(bootstrap.RegionConnectivity),
		ProjectionYears:  s.ProjectionYears,
		ReportStatus:     s.ReportStatus,
	}

	for _, other := range bootstrap.Pages() {
		p.Nav = append(p.Nav, NavItem{Path: other.Path, Title: other.Title, Active: other.Page == cfg.Page})
	}

	switch s.Connectivity {
	case state.ConnectivityOnline:
		p.Connectivity, p.ConnectivityClass = "Online", "online"
	case state.ConnectivityOffline:
		p.Connectivity, p.ConnectivityClass = "Offline", "offline"
	default:
		p.Connectivity, p.ConnectivityClass = "Nepoznato", "unknown"
	}

	manage := cfg.Has(bootstrap.RegionForm)
	if p.ShowStats {
		p.Stats = BuildStats(s.Facilities)
	}
	if p.ShowFilters {
		p.Filters = BuildFilters(
			b.engine.UniqueValues(s.Facilities, services.FieldCity),
			b.engine.UniqueValues(s.Facilities, services.FieldMunicipality),
			s.Query,
		)
	}
	if p.ShowCards {
		if s.ListFailed {
			p.Cards = OfflineCards(manage)
		} else {
			p.Cards = BuildCards(b.engine.Apply(s.Facilities, s.Query), CardOptions{
				Sort:            s.Query.Sort,
				Manage:          manage,
				EditingID:       s.EditingID,
				PendingDeleteID: s.PendingDeleteID,
			})
		}
	}
	if p.ShowForm {
		p.Form = buildForm(s)
	}
	if p.ShowCritical {
		p.Critical = BuildCritical(s.Critical)
	}
	if p.ShowReport {
		p.Report = BuildReportRows(s.Reports)
	}
	if p.ShowRanking {
		p.Ranking = BuildRanking(s.Reports)
	}
	if p.ShowProjection {
		p.Projection = BuildProjection(s.Reports, s.ProjectionYears)
	}
	if p.ShowAccount || p.ShowProfile || manage {
		p.Account = buildAccount(s, sess)
	}
	return p
}

func buildForm(s state.ViewState) FormView {
	types := make([]Option, 0, len(entities.FacilityTypes))
	for _, t := range entities.FacilityTypes {
		types = append(types, Option{Value: string(t), Label: string(t), Selected: string(t) == s.Form.Type})
	}
	return FormView{
		Editing:   s.Mode() == state.Editing,
		EditingID: s.EditingID,
		Values:    s.Form,
		Types:     types,
		Status:    s.FormStatus,
	}
}

func buildAccount(s state.ViewState, sess Session) AccountView {
	acc := AccountView{
		LoggedIn: sess.LoggedIn,
		Status:   s.LoginStatus,
	}
	if s.ProfileStatus != "" && acc.Status == "" {
		acc.Status = s.ProfileStatus
	}
	if sess.LoggedIn {
		acc.Email = sess.Claims.Subject
		acc.Role = sess.Claims.Role
		if !sess.Claims.ExpiresAt.IsZero() {
			acc.ExpiresAt = sess.Claims.ExpiresAt.Format(time.DateTime)
		}
	}
	if s.Profile != nil {
		acc.Email = s.Profile.Email
		acc.Role = string(s.Profile.Role)
		if !s.Profile.CreatedAt.IsZero() {
			acc.CreatedAt = s.Profile.CreatedAt.Format(time.DateOnly)
		}
	}
	for _, r := range entities.Roles {
		acc.Roles = append(acc.Roles, Option{Value: string(r), Label: string(r), Selected: r == entities.RoleUser})
	}
	return acc
}

// Percent formats an integer percentage for display
func Percent(v int) string {
	return fmt.Sprintf("%d%%", v)
}
