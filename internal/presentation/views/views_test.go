package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euprava/vrtic-dashboard/internal/application/bootstrap"
	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/application/state"
	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildStats(t *testing.T) {
	tests := []struct {
		name string
		list []entities.Facility
		want Stats
	}{
		{"empty", nil, Stats{}},
		{"half full", []entities.Facility{{Type: entities.FacilityTypePublic, MaxCapacity: 100, CurrentEnrolled: 50}}, Stats{Total: 1, Public: 1, AvgOccupancy: 50}},
		{"zero capacity", []entities.Facility{{Name: "A", Type: entities.FacilityTypePublic}}, Stats{Total: 1, Public: 1, AvgOccupancy: 0}},
		{
			"mixed",
			[]entities.Facility{
				{Type: entities.FacilityTypePublic, MaxCapacity: 100, CurrentEnrolled: 100},
				{Type: entities.FacilityTypePrivate, MaxCapacity: 3, CurrentEnrolled: 1},
				{Type: "", MaxCapacity: 0, CurrentEnrolled: 5},
			},
			// (1 + 0.333 + 0) / 3 = 44.4%
			Stats{Total: 3, Public: 1, Private: 1, AvgOccupancy: 44},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildStats(tt.list))
		})
	}
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 0, BarWidth(entities.Facility{}))
	assert.Equal(t, 50, BarWidth(entities.Facility{MaxCapacity: 100, CurrentEnrolled: 50}))
	assert.Equal(t, 67, BarWidth(entities.Facility{MaxCapacity: 3, CurrentEnrolled: 2}))
	assert.Equal(t, 100, BarWidth(entities.Facility{MaxCapacity: 10, CurrentEnrolled: 14}), "overfull is capped")
}

func TestBuildCards(t *testing.T) {
	list := []entities.Facility{
		{ID: "1", Name: "", Type: "", MaxCapacity: 10, CurrentEnrolled: 1},
		{ID: "2", Name: "Lane", Type: entities.FacilityTypePrivate, MaxCapacity: 10, CurrentEnrolled: 9},
	}

	t.Run("defaults and no rank when sorted by name", func(t *testing.T) {
		cards := BuildCards(list, CardOptions{Sort: entities.SortByName})
		require.Len(t, cards.Cards, 2)
		assert.Equal(t, "Bez naziva", cards.Cards[0].Name)
		assert.Equal(t, "n/a", cards.Cards[0].Type)
		assert.Zero(t, cards.Cards[0].Rank)
		assert.Zero(t, cards.Cards[1].Rank)
		assert.True(t, cards.Cards[1].Critical)
		assert.Empty(t, cards.Placeholder)
	})

	t.Run("rank follows position when sorted by free places", func(t *testing.T) {
		cards := BuildCards(list, CardOptions{Sort: entities.SortByFreePlaces})
		assert.Equal(t, 1, cards.Cards[0].Rank)
		assert.Equal(t, 2, cards.Cards[1].Rank)
	})

	t.Run("browse cards carry no management state", func(t *testing.T) {
		cards := BuildCards(list, CardOptions{EditingID: "2", PendingDeleteID: "2"})
		assert.False(t, cards.Manage)
		assert.False(t, cards.Cards[1].Editing)
		assert.False(t, cards.Cards[1].ConfirmDelete)
	})

	t.Run("manage cards", func(t *testing.T) {
		cards := BuildCards(list, CardOptions{Manage: true, EditingID: "2", PendingDeleteID: "1"})
		assert.True(t, cards.Manage)
		assert.True(t, cards.Cards[1].Editing)
		assert.True(t, cards.Cards[0].ConfirmDelete)
	})

	t.Run("empty list renders placeholder", func(t *testing.T) {
		cards := BuildCards(nil, CardOptions{})
		assert.Empty(t, cards.Cards)
		assert.Equal(t, PlaceholderEmpty, cards.Placeholder)
	})
}

func TestBuildFilters(t *testing.T) {
	f := BuildFilters([]string{"Beograd", "Nis"}, []string{"Vracar"}, services.FacilityQuery{City: "Nis", Search: "la"})

	require.Len(t, f.Types, 3)
	assert.Equal(t, Option{Value: "", Label: "Sve", Selected: true}, f.Types[0])
	assert.Equal(t, "drzavni", f.Types[1].Value)

	assert.Equal(t, []Option{
		{Value: "", Label: "Sve"},
		{Value: "Beograd", Label: "Beograd"},
		{Value: "Nis", Label: "Nis", Selected: true},
	}, f.Cities)
	assert.Equal(t, "la", f.Search)
	assert.True(t, f.Sorts[0].Selected)
}

func TestBuildFilters_KeepsStaleSelection(t *testing.T) {
	f := BuildFilters(nil, nil, services.FacilityQuery{Municipality: "Zemun"})
	assert.Equal(t, Option{Value: "Zemun", Label: "Zemun", Selected: true}, f.Municipalities[len(f.Municipalities)-1])
}

func TestBuildCritical_UsesPrecomputedOccupancy(t *testing.T) {
	cards := BuildCritical([]entities.Facility{
		{Name: "Zvoncica", MaxCapacity: 100, CurrentEnrolled: 50, Occupancy: floatPtr(0.956)},
		{Name: "Bez podatka", MaxCapacity: 10, CurrentEnrolled: 10},
	})
	require.Len(t, cards, 2)
	assert.Equal(t, 96, cards[0].Occupancy)
	assert.Equal(t, 0, cards[1].Occupancy)
}

func TestReportViews(t *testing.T) {
	rows := []entities.MunicipalityReport{
		{Municipality: "Liman", FacilityCount: 1, TotalCapacity: 50, TotalEnrolled: 10, Occupancy: 0.2},
		{Municipality: "", FacilityCount: 1, TotalCapacity: 200, TotalEnrolled: 100, Occupancy: 0.5},
	}

	report := BuildReportRows(rows)
	assert.Equal(t, "Liman", report[0].Municipality)
	assert.Equal(t, entities.UnknownMunicipality, report[1].Municipality)
	assert.Equal(t, 20, report[0].Occupancy)

	ranking := BuildRanking(rows)
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, 50, ranking[0].Occupancy)

	projection := BuildProjection(rows, 1)
	assert.Equal(t, 105, projection[1].Enrolled)
	assert.Equal(t, 53, projection[1].Occupancy)
}

func TestBuilder_BrowsePage(t *testing.T) {
	b := NewBuilder(services.NewFacilityViewService("sr-Latn"), "http://localhost:8081")
	s := state.FacilitiesLoaded(state.New(), []entities.Facility{
		{ID: "1", Name: "A", Type: entities.FacilityTypePublic, MaxCapacity: 0, CurrentEnrolled: 0},
	})

	p := b.Build(bootstrap.MustLookup(bootstrap.PageBrowse), s, Session{})

	assert.True(t, p.ShowCards)
	assert.False(t, p.ShowForm)
	assert.Equal(t, "Online", p.Connectivity)
	assert.Equal(t, 0, p.Stats.AvgOccupancy)
	require.Len(t, p.Cards.Cards, 1)
	assert.Equal(t, 0, p.Cards.Cards[0].BarWidth)
	assert.False(t, p.Cards.Manage)
	require.Len(t, p.Nav, 4)
	assert.True(t, p.Nav[0].Active)
}

func TestBuilder_OfflinePlaceholder(t *testing.T) {
	b := NewBuilder(services.NewFacilityViewService("sr-Latn"), "")
	s := state.FacilitiesFailed(state.New())

	p := b.Build(bootstrap.MustLookup(bootstrap.PageManage), s, Session{})

	assert.Equal(t, "Offline", p.Connectivity)
	assert.Equal(t, PlaceholderOffline, p.Cards.Placeholder)
	assert.Empty(t, p.Cards.Cards)
}

func TestBuilder_ManageFormFollowsEditState(t *testing.T) {
	b := NewBuilder(services.NewFacilityViewService("sr-Latn"), "")
	lane := entities.Facility{ID: "7", Name: "Lane", Type: entities.FacilityTypePrivate, MaxCapacity: 60, CurrentEnrolled: 20}
	s := state.BeginEdit(state.FacilitiesLoaded(state.New(), []entities.Facility{lane}), lane)

	p := b.Build(bootstrap.MustLookup(bootstrap.PageManage), s, Session{})
	assert.True(t, p.Form.Editing)
	assert.Equal(t, "Lane", p.Form.Values.Name)
	assert.True(t, p.Form.Types[1].Selected)
	assert.True(t, p.Cards.Cards[0].Editing)

	p = b.Build(bootstrap.MustLookup(bootstrap.PageManage), state.CancelEdit(s), Session{})
	assert.False(t, p.Form.Editing)
	assert.Empty(t, p.Form.Values.Name)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "44%", Percent(44))
}
