// Package application implements order fulfillment: supplement intake,
// load/unload confirmation with weigh-difference detection, acceptance and
// the archive flow.
package application

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"lngtrade-cloud/internal/money"
	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/observability/metrics"
	orders "lngtrade-cloud/internal/orders/domain"
	plans "lngtrade-cloud/internal/plans/domain"
	"lngtrade-cloud/internal/state"
)

// Supplement review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Service drives the order fulfillment chain.
type Service struct {
	store *state.Store
	gen   *numbering.Generator
	clock state.Clock
}

// NewService constructs an order service.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock) (*Service, error) {
	if store == nil {
		return nil, errors.New("order service: nil store")
	}
	if gen == nil {
		return nil, errors.New("order service: nil generator")
	}
	if clock == nil {
		clock = state.SystemClock{}
	}
	return &Service{store: store, gen: gen, clock: clock}, nil
}

// SupplementInput carries the upstream order details filled in after the
// fact for upstream-delivery orders.
type SupplementInput struct {
	OrderID           string
	UpstreamOrderNo   string
	LoadSiteName      string
	EstimatedLoadAt   string
	SupplementDocName string
}

// SubmitSupplement records supplement details and parks the order in
// pending-supplement until dispatch reviews it.
func (s *Service) SubmitSupplement(input SupplementInput) error {
	return s.track("supplement_submit", func(st *state.State) error {
		order := st.FindOrder(input.OrderID)
		if order == nil {
			return orders.ErrNotFound
		}

		order.UpstreamOrderNo = strings.TrimSpace(input.UpstreamOrderNo)
		order.LoadSiteName = strings.TrimSpace(input.LoadSiteName)
		order.EstimatedLoadAt = strings.TrimSpace(input.EstimatedLoadAt)
		order.SupplementDocName = strings.TrimSpace(input.SupplementDocName)
		order.SupplementStatus = orders.SupplementPending
		order.SupplementReviewer = ""
		order.SupplementNote = ""
		order.Status = orders.StatusPendingSupplement

		s.emit(st, notify.CategoryApproval, "订单补录待审核",
			fmt.Sprintf("%s 已提交补录信息，待调度审核。", order.Number))
		return nil
	})
}

// SupplementReviewInput is a dispatch decision on a pending supplement.
type SupplementReviewInput struct {
	OrderID  string
	Action   string
	Reviewer string
	Reason   string
}

// ReviewSupplement approves a pending supplement into stocking, or rejects
// it back to pending-supplement for another round.
func (s *Service) ReviewSupplement(input SupplementReviewInput) error {
	return s.track("supplement_review", func(st *state.State) error {
		order := st.FindOrder(input.OrderID)
		if order == nil {
			return orders.ErrNotFound
		}
		if order.SupplementStatus != orders.SupplementPending {
			return orders.ErrSupplementNotPending
		}

		approved := input.Action == ActionApprove
		order.SupplementReviewer = input.Reviewer
		order.SupplementNote = input.Reason
		if approved {
			order.SupplementStatus = orders.SupplementApproved
			order.Status = orders.StatusStocking
		} else {
			order.SupplementStatus = orders.SupplementRejected
			order.Status = orders.StatusPendingSupplement
		}

		title := "订单补录已通过"
		verdict := "通过，进入备货"
		if !approved {
			title = "订单补录已驳回"
			verdict = "驳回，待修改后重提"
		}
		s.emit(st, notify.CategoryApproval, title,
			fmt.Sprintf("%s 补录审核结果：%s", order.Number, verdict))
		return nil
	})
}

// ConfirmLoad records the loading weight and moves the order to loaded.
func (s *Service) ConfirmLoad(orderID string, weight float64) error {
	return s.track("confirm_load", func(st *state.State) error {
		order := st.FindOrder(orderID)
		if order == nil {
			return orders.ErrNotFound
		}
		order.LoadWeight = orders.Float(weight)
		order.Status = orders.StatusLoaded
		return nil
	})
}

// ConfirmUnload records the unloading weight, derives the settlement weight
// from the weigh-difference rule and routes the order into either the
// acceptance or the settling branch depending on the threshold.
func (s *Service) ConfirmUnload(orderID string, weight float64) error {
	return s.track("confirm_unload", func(st *state.State) error {
		order := st.FindOrder(orderID)
		if order == nil {
			return orders.ErrNotFound
		}

		loadWeight := weight
		if order.LoadWeight != nil {
			loadWeight = *order.LoadWeight
		}
		diff := math.Abs(loadWeight - weight)
		abnormal := diff > order.Threshold

		order.UnloadWeight = orders.Float(weight)
		order.DiffAbnormal = abnormal
		if abnormal {
			order.Status = orders.StatusSettling
		} else {
			order.Status = orders.StatusPendingAcceptance
		}

		switch order.WeighDiffRule {
		case plans.WeighRuleLoad:
			order.SettlementWeight = orders.Float(loadWeight)
		case plans.WeighRuleUnload:
			order.SettlementWeight = orders.Float(weight)
		default:
			order.SettlementWeight = orders.Float(money.Round2((loadWeight + weight) / 2))
		}

		if abnormal {
			s.emit(st, notify.CategoryFulfillment, "磅差异常提醒",
				fmt.Sprintf("%s 检测到磅差异常，请调度处理结算量。", order.Number))
		}
		return nil
	})
}

// ResolveDiffException overrides the settlement weight after a weigh
// difference. The transition is deliberately permissive about the source
// status; acceptance rejection loops orders back here through settling.
func (s *Service) ResolveDiffException(orderID string, settlementWeight float64, note string) error {
	return s.track("resolve_diff", func(st *state.State) error {
		order := st.FindOrder(orderID)
		if order == nil {
			return orders.ErrNotFound
		}
		order.SettlementWeight = orders.Float(settlementWeight)
		order.ExceptionNote = note
		order.DiffAbnormal = false
		order.Status = orders.StatusPendingAcceptance
		return nil
	})
}

// Accept finalizes acceptance. Rejection sends the order back to settling
// for another settlement-weight round.
func (s *Service) Accept(orderID string, accepted bool, settlementWeight float64) error {
	return s.track("accept", func(st *state.State) error {
		order := st.FindOrder(orderID)
		if order == nil {
			return orders.ErrNotFound
		}

		order.SettlementWeight = orders.Float(settlementWeight)
		if accepted {
			order.Status = orders.StatusAccepted
			s.emit(st, notify.CategoryFulfillment, "订单已验收", fmt.Sprintf("%s 已完成验收", order.Number))
		} else {
			order.Status = orders.StatusSettling
			s.emit(st, notify.CategoryFulfillment, "验收未通过", fmt.Sprintf("%s 验收不通过，待处理", order.Number))
		}
		return nil
	})
}

// ArchiveResult reports the outcome of an archive or unarchive attempt.
type ArchiveResult struct {
	Success bool
	Error   string
}

// Archive freezes an accepted or settled order read-only.
func (s *Service) Archive(orderID, operator string) ArchiveResult {
	var result ArchiveResult
	s.track("archive", func(st *state.State) error {
		order := st.FindOrder(orderID)
		if order == nil {
			result = ArchiveResult{Success: false, Error: orders.MsgOrderMissing}
			return orders.ErrNotFound
		}
		if !order.Archivable() {
			result = ArchiveResult{Success: false, Error: orders.MsgArchiveGuard}
			return orders.ErrInvalidStatus
		}

		order.Status = orders.StatusArchived
		s.emit(st, notify.CategorySystem, "订单已归档",
			fmt.Sprintf("%s 已由 %s 归档，核心字段转为只读。", order.Number, operator))
		result = ArchiveResult{Success: true}
		return nil
	})
	return result
}

// Unarchive returns an archived order to settled. The pre-archive status is
// not restored.
func (s *Service) Unarchive(orderID, operator string) ArchiveResult {
	var result ArchiveResult
	s.track("unarchive", func(st *state.State) error {
		order := st.FindOrder(orderID)
		if order == nil {
			result = ArchiveResult{Success: false, Error: orders.MsgOrderMissing}
			return orders.ErrNotFound
		}
		if order.Status != orders.StatusArchived {
			result = ArchiveResult{Success: false, Error: orders.MsgUnarchiveGuard}
			return orders.ErrInvalidStatus
		}

		order.Status = orders.StatusSettled
		s.emit(st, notify.CategorySystem, "订单取消归档",
			fmt.Sprintf("%s 已由 %s 取消归档。", order.Number, operator))
		result = ArchiveResult{Success: true}
		return nil
	})
	return result
}

func (s *Service) track(op string, fn func(*state.State) error) error {
	err := s.store.Update(fn)
	if err != nil {
		metrics.IncOrderOp(op, metrics.ResultError)
	} else {
		metrics.IncOrderOp(op, metrics.ResultSuccess)
	}
	return err
}

func (s *Service) emit(st *state.State, category, title, content string) {
	st.PushNotification(notify.New(s.gen.NextID("msg"), category, title, content, s.clock.Now()))
	metrics.IncNotification(category)
}
