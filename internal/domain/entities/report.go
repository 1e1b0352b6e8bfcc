package entities

// UnknownMunicipality is the bucket the facility service uses for empty municipalities
const UnknownMunicipality = "Nepoznata"

// MunicipalityReport aggregates facilities of one municipality
type MunicipalityReport struct {
	Municipality  string  `json:"opstina"`
	FacilityCount int     `json:"broj_vrtica"`
	TotalCapacity int     `json:"ukupan_kapacitet"`
	TotalEnrolled int     `json:"ukupno_upisano"`
	Occupancy     float64 `json:"popunjenost"`
}
