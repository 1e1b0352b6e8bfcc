package views

import (
	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
)

// ReportRow is one municipality line of a report table
type ReportRow struct {
	Rank          int
	Municipality  string
	FacilityCount int
	Capacity      int
	Enrolled      int
	Occupancy     int
}

// BuildReportRows keeps report order
func BuildReportRows(rows []entities.MunicipalityReport) []ReportRow {
	out := make([]ReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, reportRow(r))
	}
	return out
}

// BuildRanking orders rows by occupancy, highest first, numbering them
func BuildRanking(rows []entities.MunicipalityReport) []ReportRow {
	ranked := services.RankByOccupancy(rows)
	out := make([]ReportRow, 0, len(ranked))
	for i, r := range ranked {
		row := reportRow(r)
		row.Rank = i + 1
		out = append(out, row)
	}
	return out
}

// BuildProjection shows enrollment and occupancy after years of growth
func BuildProjection(rows []entities.MunicipalityReport, years int) []ReportRow {
	return BuildReportRows(services.ProjectEnrollment(rows, years))
}

func reportRow(r entities.MunicipalityReport) ReportRow {
	return ReportRow{
		Municipality:  orDefault(r.Municipality, entities.UnknownMunicipality),
		FacilityCount: r.FacilityCount,
		Capacity:      r.TotalCapacity,
		Enrolled:      r.TotalEnrolled,
		Occupancy:     percent(r.Occupancy),
	}
}
