package services

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
)

// FacilityQuery holds the active filter, search and sort selections.
// Zero values match everything.
type FacilityQuery struct {
	Type         entities.FacilityType
	City         string
	Municipality string
	Search       string
	Sort         entities.SortMode
}

// FacilityField names a facility attribute offered as a filter option list
type FacilityField string

const (
	FieldCity         FacilityField = "grad"
	FieldMunicipality FacilityField = "opstina"
)

// FacilityViewService derives the displayed facility list
type FacilityViewService struct {
	locale language.Tag
}

// NewFacilityViewService creates the service; an unparseable locale falls back to Serbian Latin
func NewFacilityViewService(locale string) *FacilityViewService {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("sr-Latn")
	}
	return &FacilityViewService{locale: tag}
}

// Apply filters and sorts facilities. The input slice is never modified.
func (s *FacilityViewService) Apply(facilities []entities.Facility, q FacilityQuery) []entities.Facility {
	out := s.Filter(facilities, q)
	s.sort(out, q.Sort)
	return out
}

// Filter keeps the facilities that match every active selection, preserving order
func (s *FacilityViewService) Filter(facilities []entities.Facility, q FacilityQuery) []entities.Facility {
	fold := cases.Fold()
	search := fold.String(q.Search)

	out := make([]entities.Facility, 0, len(facilities))
	for _, f := range facilities {
		if q.Type != "" && f.Type != q.Type {
			continue
		}
		if q.City != "" && f.City != q.City {
			continue
		}
		if q.Municipality != "" && f.Municipality != q.Municipality {
			continue
		}
		if search != "" && !strings.Contains(fold.String(f.Name), search) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// UniqueValues returns the distinct non-empty values of field in collation order
func (s *FacilityViewService) UniqueValues(facilities []entities.Facility, field FacilityField) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, f := range facilities {
		var v string
		switch field {
		case FieldCity:
			v = f.City
		case FieldMunicipality:
			v = f.Municipality
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	// collators keep internal buffers and are not safe for concurrent use
	c := collate.New(s.locale)
	sort.SliceStable(values, func(i, j int) bool {
		return c.CompareString(values[i], values[j]) < 0
	})
	return values
}

func (s *FacilityViewService) sort(facilities []entities.Facility, mode entities.SortMode) {
	switch mode {
	case entities.SortByFreePlaces:
		sort.SliceStable(facilities, func(i, j int) bool {
			return facilities[i].FreePlaces() > facilities[j].FreePlaces()
		})
	default:
		c := collate.New(s.locale)
		sort.SliceStable(facilities, func(i, j int) bool {
			return c.CompareString(facilities[i].Name, facilities[j].Name) < 0
		})
	}
}
