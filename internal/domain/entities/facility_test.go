package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestFacility_OccupancyRatio(t *testing.T) {
	assert.Equal(t, 0.5, Facility{MaxCapacity: 100, CurrentEnrolled: 50}.OccupancyRatio())
	assert.Equal(t, 0.0, Facility{MaxCapacity: 0, CurrentEnrolled: 10}.OccupancyRatio())
}

func TestFacility_FreePlaces(t *testing.T) {
	assert.Equal(t, 25, Facility{MaxCapacity: 120, CurrentEnrolled: 95}.FreePlaces())
	assert.Equal(t, 7, Facility{MaxCapacity: 120, CurrentEnrolled: 95, FreeSpots: intPtr(7)}.FreePlaces(),
		"precomputed value wins")
}

func TestFacility_Critical(t *testing.T) {
	assert.True(t, Facility{MaxCapacity: 60, CurrentEnrolled: 58}.Critical())
	assert.False(t, Facility{MaxCapacity: 120, CurrentEnrolled: 95}.Critical())

	flag := false
	assert.False(t, Facility{MaxCapacity: 10, CurrentEnrolled: 10, IsCritical: &flag}.Critical())
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortByFreePlaces, ParseSortMode("slobodna_mesta"))
	assert.Equal(t, SortByName, ParseSortMode("naziv"))
	assert.Equal(t, SortByName, ParseSortMode("anything"))
}

func TestNormalizeRole(t *testing.T) {
	r, ok := NormalizeRole("  Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = NormalizeRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = NormalizeRole("root")
	assert.False(t, ok)
}
