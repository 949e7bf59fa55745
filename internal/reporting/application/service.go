// Package application generates operational reports over the domain state.
package application

import (
	"errors"

	"lngtrade-cloud/internal/numbering"
	reporting "lngtrade-cloud/internal/reporting/domain"
	"lngtrade-cloud/internal/state"
)

// Service generates reports.
type Service struct {
	store *state.Store
	gen   *numbering.Generator
	clock state.Clock
}

// NewService constructs a reporting service.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock) (*Service, error) {
	if store == nil {
		return nil, errors.New("reporting service: nil store")
	}
	if gen == nil {
		return nil, errors.New("reporting service: nil generator")
	}
	if clock == nil {
		clock = state.SystemClock{}
	}
	return &Service{store: store, gen: gen, clock: clock}, nil
}

// GenerateDailyPlanReport freezes every plan submitted on reportDate
// (YYYY-MM-DD) into a new report and returns its id.
func (s *Service) GenerateDailyPlanReport(reportDate, generatedBy string) (string, error) {
	var id string
	err := s.store.Update(func(st *state.State) error {
		var lines []reporting.PlanLine
		for _, plan := range st.Plans {
			if plan.SubmittedAt.Format("2006-01-02") != reportDate {
				continue
			}
			lines = append(lines, reporting.PlanLine{
				PlanID:        plan.ID,
				Number:        plan.Number,
				CustomerName:  plan.CustomerName,
				SiteName:      plan.SiteName,
				PlannedVolume: plan.PlannedVolume,
				TransportMode: plan.TransportMode,
				Status:        plan.Status,
				SubmittedAt:   plan.SubmittedAt,
			})
		}

		report := reporting.DailyPlanReport{
			ID:          s.gen.NextID("dpr"),
			ReportDate:  reportDate,
			GeneratedAt: s.clock.Now(),
			GeneratedBy: generatedBy,
			Plans:       lines,
		}
		st.DailyPlanReports = append([]reporting.DailyPlanReport{report}, st.DailyPlanReports...)
		id = report.ID
		return nil
	})
	return id, err
}
