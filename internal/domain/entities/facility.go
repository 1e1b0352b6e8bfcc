package entities

// FacilityType is the ownership kind of a kindergarten
type FacilityType string

const (
	FacilityTypePublic  FacilityType = "drzavni"
	FacilityTypePrivate FacilityType = "privatni"
)

// FacilityTypes lists the selectable types in display order
var FacilityTypes = []FacilityType{FacilityTypePublic, FacilityTypePrivate}

// CriticalOccupancy is the ratio at or above which a facility is flagged critical
const CriticalOccupancy = 0.9

// Facility represents a kindergarten as returned by the facility service
type Facility struct {
	ID              string       `json:"id"`
	Name            string       `json:"naziv"`
	Type            FacilityType `json:"tip"`
	City            string       `json:"grad"`
	Municipality    string       `json:"opstina"`
	MaxCapacity     int          `json:"max_kapacitet"`
	CurrentEnrolled int          `json:"trenutno_upisano"`

	// Server-derived fields; nil when the payload did not carry them.
	Occupancy  *float64 `json:"popunjenost,omitempty"`
	FreeSpots  *int     `json:"slobodna_mesta,omitempty"`
	IsCritical *bool    `json:"kriticno,omitempty"`
}

// OccupancyRatio returns enrollment over capacity, 0 when capacity is 0
func (f Facility) OccupancyRatio() float64 {
	if f.MaxCapacity <= 0 {
		return 0
	}
	return float64(f.CurrentEnrolled) / float64(f.MaxCapacity)
}

// FreePlaces returns the precomputed free places when present, otherwise
// capacity minus enrollment.
func (f Facility) FreePlaces() int {
	if f.FreeSpots != nil {
		return *f.FreeSpots
	}
	return f.MaxCapacity - f.CurrentEnrolled
}

// Critical returns the server flag when present, otherwise compares the ratio
// against CriticalOccupancy.
func (f Facility) Critical() bool {
	if f.IsCritical != nil {
		return *f.IsCritical
	}
	return f.OccupancyRatio() >= CriticalOccupancy
}

// Input returns the writable fields of the facility
func (f Facility) Input() FacilityInput {
	return FacilityInput{
		Name:            f.Name,
		Type:            f.Type,
		City:            f.City,
		Municipality:    f.Municipality,
		MaxCapacity:     f.MaxCapacity,
		CurrentEnrolled: f.CurrentEnrolled,
	}
}

// FacilityInput is the payload for create and update requests
type FacilityInput struct {
	Name            string       `json:"naziv"`
	Type            FacilityType `json:"tip"`
	City            string       `json:"grad"`
	Municipality    string       `json:"opstina"`
	MaxCapacity     int          `json:"max_kapacitet"`
	CurrentEnrolled int          `json:"trenutno_upisano"`
}

// SortMode selects the ordering of the displayed facility list
type SortMode string

const (
	SortByName       SortMode = "naziv"
	SortByFreePlaces SortMode = "slobodna_mesta"
)

// ParseSortMode maps a form or query value to a SortMode, defaulting to SortByName
func ParseSortMode(s string) SortMode {
	if SortMode(s) == SortByFreePlaces {
		return SortByFreePlaces
	}
	return SortByName
}
