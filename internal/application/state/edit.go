package state

import (
	"strconv"
	"strings"

	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

// EditMode is the state of the facility form
type EditMode int

const (
	// Idle means the form creates a new facility
	Idle EditMode = iota
	// Editing means the form updates EditingID
	Editing
)

func (m EditMode) String() string {
	if m == Editing {
		return "editing"
	}
	return "idle"
}

// FormValues are the raw facility form fields as submitted or pre-populated
type FormValues struct {
	Name            string
	Type            string
	City            string
	Municipality    string
	MaxCapacity     string
	CurrentEnrolled string
}

// FormFromFacility pre-populates the form with f
func FormFromFacility(f entities.Facility) FormValues {
	return FormValues{
		Name:            f.Name,
		Type:            string(f.Type),
		City:            f.City,
		Municipality:    f.Municipality,
		MaxCapacity:     strconv.Itoa(f.MaxCapacity),
		CurrentEnrolled: strconv.Itoa(f.CurrentEnrolled),
	}
}

// Input converts the form to a request payload. Numbers must be non-negative
// integers; an empty number field reads as 0.
func (v FormValues) Input() (entities.FacilityInput, error) {
	capacity, err := parseCount(v.MaxCapacity, "max_kapacitet")
	if err != nil {
		return entities.FacilityInput{}, err
	}
	enrolled, err := parseCount(v.CurrentEnrolled, "trenutno_upisano")
	if err != nil {
		return entities.FacilityInput{}, err
	}
	return entities.FacilityInput{
		Name:            strings.TrimSpace(v.Name),
		Type:            entities.FacilityType(strings.TrimSpace(v.Type)),
		City:            strings.TrimSpace(v.City),
		Municipality:    strings.TrimSpace(v.Municipality),
		MaxCapacity:     capacity,
		CurrentEnrolled: enrolled,
	}, nil
}

func parseCount(raw, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError(field + " mora biti nenegativan ceo broj.")
	}
	return n, nil
}

// Mode reports whether the form creates or updates
func (s ViewState) Mode() EditMode {
	if s.EditingID == "" {
		return Idle
	}
	return Editing
}

// BeginEdit moves to Editing(f.ID) with the form pre-populated from f
func BeginEdit(s ViewState, f entities.Facility) ViewState {
	s.EditingID = f.ID
	s.Form = FormFromFacility(f)
	s.FormStatus = ""
	s.PendingDeleteID = ""
	return s
}

// CancelEdit returns to Idle with an empty form
func CancelEdit(s ViewState) ViewState {
	s.EditingID = ""
	s.Form = FormValues{}
	s.FormStatus = ""
	return s
}

// SaveSucceeded returns to Idle after a create or update
func SaveSucceeded(s ViewState) ViewState {
	s = CancelEdit(s)
	s.FormStatus = StatusSaved
	return s
}

// SaveFailed keeps the submitted values and the current mode
func SaveFailed(s ViewState, submitted FormValues, msg string) ViewState {
	s.Form = submitted
	s.FormStatus = msg
	return s
}

// RequestDelete asks for confirmation before deleting id
func RequestDelete(s ViewState, id string) ViewState {
	s.PendingDeleteID = id
	return s
}

// DeclineDelete drops the pending confirmation
func DeclineDelete(s ViewState) ViewState {
	s.PendingDeleteID = ""
	return s
}

// Deleted records a successful delete. Deleting the record being edited
// returns the form to Idle.
func Deleted(s ViewState, id string) ViewState {
	if s.EditingID == id {
		s = CancelEdit(s)
	}
	s.PendingDeleteID = ""
	s.FormStatus = StatusDeleted
	return s
}

// DeleteFailed drops the confirmation and shows msg
func DeleteFailed(s ViewState, msg string) ViewState {
	s.PendingDeleteID = ""
	s.FormStatus = msg
	return s
}
