package views

import (
	"math"

	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
)

// Placeholder texts for the card region
const (
	PlaceholderEmpty   = "Nema rezultata za izabrane filtere."
	PlaceholderOffline = "Ne mogu da se povezem na servis."
)

const (
	missingName = "Bez naziva"
	missingType = "n/a"
	allLabel    = "Sve"
)

// Stats is the summary strip above the cards
type Stats struct {
	Total        int
	Public       int
	Private      int
	AvgOccupancy int
}

// BuildStats aggregates over every loaded facility. Occupancy is recomputed
// from capacity and enrollment; a facility with capacity 0 counts as 0%.
func BuildStats(facilities []entities.Facility) Stats {
	st := Stats{Total: len(facilities)}
	sum := 0.0
	for _, f := range facilities {
		switch f.Type {
		case entities.FacilityTypePublic:
			st.Public++
		case entities.FacilityTypePrivate:
			st.Private++
		}
		sum += f.OccupancyRatio()
	}
	if st.Total > 0 {
		st.AvgOccupancy = percent(sum / float64(st.Total))
	}
	return st
}

// Card is one facility card
type Card struct {
	ID           string
	Name         string
	Type         string
	City         string
	Municipality string
	Enrolled     int
	Capacity     int
	FreePlaces   int
	BarWidth     int
	// Rank is the 1-based position, 0 when not shown
	Rank          int
	Critical      bool
	Editing       bool
	ConfirmDelete bool
}

// CardList is the card region: either cards or a single placeholder
type CardList struct {
	Cards       []Card
	Placeholder string
	Manage      bool
}

// CardOptions carry the selections that affect card rendering
type CardOptions struct {
	Sort            entities.SortMode
	Manage          bool
	EditingID       string
	PendingDeleteID string
}

// BuildCards projects the displayed, already sorted facilities into cards
func BuildCards(displayed []entities.Facility, opts CardOptions) CardList {
	list := CardList{Manage: opts.Manage}
	if len(displayed) == 0 {
		list.Placeholder = PlaceholderEmpty
		return list
	}

	list.Cards = make([]Card, 0, len(displayed))
	for i, f := range displayed {
		card := Card{
			ID:           f.ID,
			Name:         orDefault(f.Name, missingName),
			Type:         orDefault(string(f.Type), missingType),
			City:         f.City,
			Municipality: f.Municipality,
			Enrolled:     f.CurrentEnrolled,
			Capacity:     f.MaxCapacity,
			FreePlaces:   f.FreePlaces(),
			BarWidth:     BarWidth(f),
			Critical:     f.Critical(),
		}
		if opts.Sort == entities.SortByFreePlaces {
			card.Rank = i + 1
		}
		if opts.Manage {
			card.Editing = f.ID != "" && f.ID == opts.EditingID
			card.ConfirmDelete = f.ID != "" && f.ID == opts.PendingDeleteID
		}
		list.Cards = append(list.Cards, card)
	}
	return list
}

// OfflineCards is the card region while the facility service is unreachable
func OfflineCards(manage bool) CardList {
	return CardList{Placeholder: PlaceholderOffline, Manage: manage}
}

// BarWidth is the occupancy bar width in percent, capped at 100
func BarWidth(f entities.Facility) int {
	if f.MaxCapacity <= 0 {
		return 0
	}
	return min(100, percent(f.OccupancyRatio()))
}

// Option is one select option
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Filters is the filter bar
type Filters struct {
	Types          []Option
	Cities         []Option
	Municipalities []Option
	Search         string
	Sorts          []Option
}

// BuildFilters builds the option lists. Cities and municipalities come from
// the loaded facilities; a selection missing from them is still offered.
func BuildFilters(cities, municipalities []string, q services.FacilityQuery) Filters {
	typeValues := make([]string, 0, len(entities.FacilityTypes))
	for _, t := range entities.FacilityTypes {
		typeValues = append(typeValues, string(t))
	}
	return Filters{
		Types:          options(typeValues, string(q.Type)),
		Cities:         options(cities, q.City),
		Municipalities: options(municipalities, q.Municipality),
		Search:         q.Search,
		Sorts: []Option{
			{Value: string(entities.SortByName), Label: "Po nazivu", Selected: q.Sort != entities.SortByFreePlaces},
			{Value: string(entities.SortByFreePlaces), Label: "Po slobodnim mestima", Selected: q.Sort == entities.SortByFreePlaces},
		},
	}
}

func options(values []string, selected string) []Option {
	out := []Option{{Value: "", Label: allLabel, Selected: selected == ""}}
	found := selected == ""
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v, Selected: v == selected})
		if v == selected {
			found = true
		}
	}
	if !found {
		out = append(out, Option{Value: selected, Label: selected, Selected: true})
	}
	return out
}

// CriticalCard is one entry of the critical capacity list
type CriticalCard struct {
	Name         string
	City         string
	Municipality string
	Enrolled     int
	Capacity     int
	Occupancy    int
}

// BuildCritical uses the occupancy the facility service computed; records
// without it show 0%.
func BuildCritical(list []entities.Facility) []CriticalCard {
	out := make([]CriticalCard, 0, len(list))
	for _, f := range list {
		occ := 0
		if f.Occupancy != nil {
			occ = percent(*f.Occupancy)
		}
		out = append(out, CriticalCard{
			Name:         orDefault(f.Name, missingName),
			City:         f.City,
			Municipality: f.Municipality,
			Enrolled:     f.CurrentEnrolled,
			Capacity:     f.MaxCapacity,
			Occupancy:    occ,
		})
	}
	return out
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
