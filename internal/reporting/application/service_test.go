package application

import (
	"testing"
	"time"

	"lngtrade-cloud/internal/numbering"
	plans "lngtrade-cloud/internal/plans/domain"
	"lngtrade-cloud/internal/state"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestGenerateDailyPlanReport(t *testing.T) {
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(950))
	clock := &fakeClock{now: time.Date(2026, 2, 9, 21, 30, 0, 0, time.UTC)}
	svc, err := NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	id, err := svc.GenerateDailyPlanReport("2026-02-09", "市场部-系统任务")
	if err != nil {
		t.Fatalf("GenerateDailyPlanReport: %v", err)
	}

	snap := store.Snapshot()
	report := snap.DailyPlanReports[0]
	if report.ID != id || report.ReportDate != "2026-02-09" {
		t.Fatalf("report = %+v", report)
	}
	// Only plan-1001 was submitted on 2026-02-09.
	if len(report.Plans) != 1 || report.Plans[0].Number != "PL-20260209-001" {
		t.Fatalf("lines = %+v", report.Plans)
	}

	// Report lines freeze; later plan mutations do not leak in.
	err = store.Update(func(st *state.State) error {
		st.FindPlan("plan-1001").Status = plans.StatusCancelled
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := store.Snapshot().DailyPlanReports[0].Plans[0].Status; got != plans.StatusSubmitted {
		t.Fatalf("frozen line mutated: %s", got)
	}
}

func TestGenerateEmptyReport(t *testing.T) {
	store := state.NewStore(state.Seed())
	svc, err := NewService(store, numbering.NewGenerator(numbering.NewAtomicCounter(960)), nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	id, err := svc.GenerateDailyPlanReport("2026-02-20", "市场部-系统任务")
	if err != nil {
		t.Fatalf("GenerateDailyPlanReport: %v", err)
	}
	report := store.Snapshot().DailyPlanReports[0]
	if report.ID != id || len(report.Plans) != 0 {
		t.Fatalf("report = %+v", report)
	}
}
