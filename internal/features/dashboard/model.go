package dashboard

import "github.com/crimewatch/crimewatch-api/internal/features/reports"

// StatusCounts breaks reports down by lifecycle status.
type StatusCounts struct {
	Pending       int64 `json:"pending"`
	Investigating int64 `json:"investigating"`
	Resolved      int64 `json:"resolved"`
	Dismissed     int64 `json:"dismissed"`
}

// AdminStats is the admin dashboard payload.
type AdminStats struct {
	TotalReports     int64                 `json:"totalReports"`
	ReportsByStatus  StatusCounts          `json:"reportsByStatus"`
	TotalDepartments int64                 `json:"totalDepartments"`
	TotalOfficers    int64                 `json:"totalOfficers"`
	TotalCitizens    int64                 `json:"totalCitizens"`
	RecentReports    []reports.CrimeReport `json:"recentReports"`
}

// OfficerStats is the officer board payload, scoped to the officer's
// department.
type OfficerStats struct {
	TotalReports        int64                 `json:"totalReports"`
	ReportsByStatus     StatusCounts          `json:"reportsByStatus"`
	UnreadNotifications int64                 `json:"unreadNotifications"`
	RecentReports       []reports.CrimeReport `json:"recentReports"`
}

// CitizenStats is the citizen board payload, covering only the
// citizen's own reports.
type CitizenStats struct {
	TotalReports        int64                 `json:"totalReports"`
	ReportsByStatus     StatusCounts          `json:"reportsByStatus"`
	UnreadNotifications int64                 `json:"unreadNotifications"`
	RecentReports       []reports.CrimeReport `json:"recentReports"`
}

func statusCountsFrom(m map[string]int64) StatusCounts {
	return StatusCounts{
		Pending:       m[reports.StatusPending],
		Investigating: m[reports.StatusInvestigating],
		Resolved:      m[reports.StatusResolved],
		Dismissed:     m[reports.StatusDismissed],
	}
}

func totalOf(c StatusCounts) int64 {
	return c.Pending + c.Investigating + c.Resolved + c.Dismissed
}
