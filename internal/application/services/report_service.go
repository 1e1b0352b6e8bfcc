package services

import (
	"sort"

	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
)

// YearlyEnrollmentGrowth is the growth rate assumed by ProjectEnrollment
const YearlyEnrollmentGrowth = 0.05

// MaxProjectionYears bounds the projection horizon
const MaxProjectionYears = 30

// RankByOccupancy returns a copy of rows ordered by occupancy, highest first.
// Equal occupancies keep report order.
func RankByOccupancy(rows []entities.MunicipalityReport) []entities.MunicipalityReport {
	out := append([]entities.MunicipalityReport(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Occupancy > out[j].Occupancy
	})
	return out
}

// ProjectEnrollment grows enrollment by YearlyEnrollmentGrowth per year,
// truncating to whole children after every year, and recomputes occupancy.
func ProjectEnrollment(rows []entities.MunicipalityReport, years int) []entities.MunicipalityReport {
	out := make([]entities.MunicipalityReport, len(rows))
	for i, r := range rows {
		for y := 0; y < years; y++ {
			r.TotalEnrolled = int(float64(r.TotalEnrolled) * (1 + YearlyEnrollmentGrowth))
		}
		r.Occupancy = 0
		if r.TotalCapacity > 0 {
			r.Occupancy = float64(r.TotalEnrolled) / float64(r.TotalCapacity)
		}
		out[i] = r
	}
	return out
}
