// Package application implements exception case intake and processing.
// Approved cases apply a type-specific side effect to the target plan or
// order, resolved through the business-number indexes.
package application

import (
	"errors"
	"fmt"

	exceptions "lngtrade-cloud/internal/exceptions/domain"
	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/observability/metrics"
	orders "lngtrade-cloud/internal/orders/domain"
	plans "lngtrade-cloud/internal/plans/domain"
	"lngtrade-cloud/internal/state"
)

// Process actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Service drives exception cases.
type Service struct {
	store *state.Store
	gen   *numbering.Generator
	clock state.Clock
}

// NewService constructs an exception service.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock) (*Service, error) {
	if store == nil {
		return nil, errors.New("exception service: nil store")
	}
	if gen == nil {
		return nil, errors.New("exception service: nil generator")
	}
	if clock == nil {
		clock = state.SystemClock{}
	}
	return &Service{store: store, gen: gen, clock: clock}, nil
}

// CreateInput describes a new correction request.
type CreateInput struct {
	Type                string
	TargetNo            string
	Reason              string
	ResponsibilityParty string
	Amount              float64
}

// Create files a pending exception case. Creation always succeeds; the
// target number is not validated until approval.
func (s *Service) Create(input CreateInput) (string, error) {
	var id string
	err := s.store.Update(func(st *state.State) error {
		now := s.clock.Now()
		record := exceptions.Case{
			ID:                  s.gen.NextID("exception"),
			Number:              s.gen.NextNo("EX", now),
			Type:                input.Type,
			TargetNo:            input.TargetNo,
			Reason:              input.Reason,
			ResponsibilityParty: input.ResponsibilityParty,
			Amount:              input.Amount,
			Status:              exceptions.StatusPending,
			CreatedAt:           now,
		}
		st.Exceptions = append([]exceptions.Case{record}, st.Exceptions...)
		s.emit(st, notify.CategorySystem, "新增异常单待处理",
			fmt.Sprintf("%s 已创建，目标单据 %s", record.Number, record.TargetNo))
		id = record.ID
		return nil
	})
	return id, err
}

// ProcessInput is a decision on a pending exception case.
type ProcessInput struct {
	ExceptionID string
	Action      string
	Reviewer    string
	Note        string
}

// Process approves or rejects a pending case. Approval additionally applies
// the type-specific side effect to the target entity; a dangling target
// number leaves the case approved with no entity touched.
func (s *Service) Process(input ProcessInput) error {
	return s.store.Update(func(st *state.State) error {
		record := st.FindException(input.ExceptionID)
		if record == nil {
			return exceptions.ErrNotFound
		}
		if record.Status != exceptions.StatusPending {
			return exceptions.ErrNotPending
		}

		record.Reviewer = input.Reviewer
		record.ReviewedAt = s.clock.Now()
		record.Note = input.Note

		title := "异常单已驳回"
		if input.Action == ActionApprove {
			record.Status = exceptions.StatusApproved
			title = "异常单已审批通过"
			s.applySideEffect(st, record, input.Note)
		} else {
			record.Status = exceptions.StatusRejected
		}

		s.emit(st, notify.CategorySystem, title,
			fmt.Sprintf("%s 已由 %s 处理。", record.Number, input.Reviewer))
		return nil
	})
}

func (s *Service) applySideEffect(st *state.State, record *exceptions.Case, note string) {
	fallback := note
	if fallback == "" {
		fallback = record.Reason
	}

	switch record.Type {
	case exceptions.TypePlanTerminate:
		if plan := st.FindPlanByNumber(record.TargetNo); plan != nil {
			plan.Status = plans.StatusCancelled
			plan.RejectReason = fallback
		}
	case exceptions.TypePlanChange:
		// A change keeps the operator's note verbatim, even when empty.
		if plan := st.FindPlanByNumber(record.TargetNo); plan != nil {
			plan.Status = plans.StatusChanged
			plan.RejectReason = note
		}
	case exceptions.TypeOrderTerminate, exceptions.TypeOrderChange, exceptions.TypeDeltaAdjustment:
		if order := st.FindOrderByNumber(record.TargetNo); order != nil {
			order.Status = orders.StatusSettling
			order.ExceptionNote = fallback
		}
	}
}

func (s *Service) emit(st *state.State, category, title, content string) {
	st.PushNotification(notify.New(s.gen.NextID("msg"), category, title, content, s.clock.Now()))
	metrics.IncNotification(category)
}
