package reporting

import "time"

// PlanLine is a snapshot of one plan inside a daily report.
type PlanLine struct {
	PlanID        string
	Number        string
	CustomerName  string
	SiteName      string
	PlannedVolume float64
	TransportMode string
	Status        string
	SubmittedAt   time.Time
}

// DailyPlanReport freezes the plans submitted on a given date. Report
// lines do not follow later plan mutations.
type DailyPlanReport struct {
	ID          string
	ReportDate  string
	GeneratedAt time.Time
	GeneratedBy string
	Plans       []PlanLine
}

// Clone returns a detached copy of the report.
func (r DailyPlanReport) Clone() DailyPlanReport {
	clone := r
	clone.Plans = append([]PlanLine(nil), r.Plans...)
	return clone
}
