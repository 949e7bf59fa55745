// Package application implements the plan lifecycle: declaration with fund
// occupation, market review, and cancellation. Every operation commits
// through the single-writer store, all-or-nothing.
package application

import (
	"errors"
	"fmt"
	"time"

	funds "lngtrade-cloud/internal/funds/domain"
	masterdata "lngtrade-cloud/internal/masterdata/domain"
	"lngtrade-cloud/internal/money"
	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/observability/metrics"
	orders "lngtrade-cloud/internal/orders/domain"
	plans "lngtrade-cloud/internal/plans/domain"
	"lngtrade-cloud/internal/state"
)

// Review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Service drives the plan lifecycle.
type Service struct {
	store         *state.Store
	gen           *numbering.Generator
	clock         state.Clock
	lowBalance    float64
	diffThreshold float64
	outbound      notify.Outbound
}

// Option configures the service.
type Option func(*Service)

// WithLowBalanceThreshold enables a finance warning notification when the
// available balance drops below the threshold after an occupy.
func WithLowBalanceThreshold(threshold float64) Option {
	return func(s *Service) {
		s.lowBalance = threshold
	}
}

// WithDiffThreshold overrides the weigh diff threshold stamped on spawned
// orders.
func WithDiffThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.diffThreshold = threshold
		}
	}
}

// WithOutbound forwards finance notifications outbound after commit.
func WithOutbound(out notify.Outbound) Option {
	return func(s *Service) {
		s.outbound = out
	}
}

// NewService constructs a plan service.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("plan service: nil store")
	}
	if gen == nil {
		return nil, errors.New("plan service: nil generator")
	}
	if clock == nil {
		clock = state.SystemClock{}
	}
	svc := &Service{store: store, gen: gen, clock: clock}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateInput is the plan declaration form.
type CreateInput struct {
	SiteID           string
	PriceID          string
	PlannedVolume    float64
	FreightFee       float64
	TransportMode    string
	PaymentMethod    string
	WeighDiffRule    string
	AgreementChecked bool
	CarrierID        string
	VehicleID        string
	DriverID         string
	EscortID         string
}

// CreateResult reports either the new plan id or every validation failure.
type CreateResult struct {
	Success bool
	Errors  []string
	PlanID  string
}

// Create validates the declaration, accumulating all applicable errors.
// On success it submits the plan, occupies the total amount and writes an
// occupy ledger entry in the same commit.
func (s *Service) Create(input CreateInput) CreateResult {
	start := s.clock.Now()
	outcome := metrics.ResultSuccess
	defer func() {
		metrics.ObservePlanCreate(outcome, time.Since(start))
	}()

	var result CreateResult
	var emitted []notify.Item
	err := s.store.Update(func(st *state.State) error {
		errs := validateCreate(st, input)

		site := st.FindSite(input.SiteID)
		price := st.FindGasPrice(input.PriceID)

		unitPrice := 0.0
		if price != nil {
			unitPrice = price.Price
		}
		estimated := money.Mul(unitPrice, input.PlannedVolume)
		total := money.Add(estimated, input.FreightFee)

		if st.Account.Available < total {
			errs = append(errs, fmt.Sprintf("可用余额不足：需要 ¥%.2f，当前可用 ¥%.2f", total, st.Account.Available))
		}

		if len(errs) > 0 || site == nil || price == nil {
			result = CreateResult{Success: false, Errors: errs}
			return errValidation
		}

		now := s.clock.Now()
		plan := plans.Plan{
			ID:               s.gen.NextID("plan"),
			Number:           s.gen.NextNo("PL", now),
			CustomerID:       st.ActiveCustomerID,
			CustomerName:     st.ActiveCustomerName,
			SiteID:           site.ID,
			SiteName:         site.Name,
			PriceID:          price.ID,
			PlannedVolume:    input.PlannedVolume,
			UnitPrice:        unitPrice,
			EstimatedAmount:  estimated,
			FreightFee:       input.FreightFee,
			TotalAmount:      total,
			TransportMode:    input.TransportMode,
			PaymentMethod:    input.PaymentMethod,
			WeighDiffRule:    input.WeighDiffRule,
			AgreementChecked: input.AgreementChecked,
			CarrierID:        input.CarrierID,
			VehicleID:        input.VehicleID,
			DriverID:         input.DriverID,
			EscortID:         input.EscortID,
			Status:           plans.StatusSubmitted,
			SubmittedAt:      now,
		}

		st.Plans = append([]plans.Plan{plan}, st.Plans...)
		st.PlanNoIndex[plan.Number] = plan.ID
		st.Account = st.Account.Occupy(total)
		st.PushLedger(funds.LedgerRecord{
			ID:        s.gen.NextID("ldg"),
			Type:      funds.LedgerTypeOccupy,
			Amount:    total,
			RelatedNo: plan.Number,
			Note:      "计划提交占用资金",
			CreatedAt: now,
		})
		s.emit(st, notify.CategoryApproval, "新计划待审批", fmt.Sprintf("%s 已提交，待市场部审批。", plan.Number))

		if s.lowBalance > 0 && st.Account.Available < s.lowBalance {
			emitted = append(emitted, s.emit(st, notify.CategoryFinance, "余额预警",
				fmt.Sprintf("%s 可用余额已低于 ¥%.2f，请及时预存。", st.ActiveCustomerName, s.lowBalance)))
		}

		result = CreateResult{Success: true, Errors: []string{}, PlanID: plan.ID}
		return nil
	})
	if err != nil {
		outcome = metrics.ResultError
		return result
	}
	notify.ForwardAll(s.outbound, emitted)
	return result
}

func validateCreate(st *state.State, input CreateInput) []string {
	var errs []string

	site := st.FindSite(input.SiteID)
	if site == nil {
		errs = append(errs, "请选择有效站点")
	} else {
		if site.Status == masterdata.SiteStatusMaintenance && site.MaintenancePolicy == masterdata.MaintenancePolicyBlock {
			window := site.MaintenanceWindow
			if window == "" {
				window = "维护中"
			}
			errs = append(errs, fmt.Sprintf("站点 [%s] 当前处于维护中（%s）", site.Name, window))
		}
		if site.Status == masterdata.SiteStatusDisabled {
			errs = append(errs, fmt.Sprintf("站点 [%s] 已停用", site.Name))
		}
	}

	if st.FindGasPrice(input.PriceID) == nil {
		errs = append(errs, "请选择有效气价")
	}

	if input.PlannedVolume <= 0 {
		errs = append(errs, "计划量必须大于 0")
	}

	if !input.AgreementChecked {
		errs = append(errs, "请先勾选费用确认条款")
	}

	if input.TransportMode != plans.TransportUpstream {
		vehicle := st.FindVehicle(input.VehicleID)
		driver := st.FindPerson(input.DriverID)
		escort := st.FindPerson(input.EscortID)

		if input.VehicleID == "" || vehicle == nil {
			errs = append(errs, "自提/承运模式必须选择车辆")
		} else if !vehicle.Valid {
			errs = append(errs, fmt.Sprintf("车辆 [%s] 运输资质已过期（%s）", vehicle.PlateNo, vehicle.CertExpiry))
		}

		if input.DriverID == "" || driver == nil {
			errs = append(errs, "请选择司机")
		} else if !driver.Valid {
			errs = append(errs, fmt.Sprintf("司机 [%s] 资质已过期（%s）", driver.Name, driver.CertExpiry))
		}

		if input.EscortID == "" || escort == nil {
			errs = append(errs, "请选择押运员")
		} else if !escort.Valid {
			errs = append(errs, fmt.Sprintf("押运员 [%s] 资质已过期（%s）", escort.Name, escort.CertExpiry))
		}
	}

	return errs
}

// errValidation aborts the store transaction after a validation failure.
// The detailed errors travel in the result, not in this sentinel.
var errValidation = errors.New("plan service: validation failed")

// ReviewInput is a market review decision.
type ReviewInput struct {
	PlanID   string
	Action   string
	Reviewer string
	Reason   string
}

// Review approves or rejects a submitted/returned plan. Approval freezes
// the occupied amount and spawns exactly one order; rejection releases the
// occupied amount back to available.
func (s *Service) Review(input ReviewInput) error {
	defer metrics.IncPlanReview(input.Action)

	return s.store.Update(func(st *state.State) error {
		plan := st.FindPlan(input.PlanID)
		if plan == nil {
			return plans.ErrNotFound
		}
		if !plan.Reviewable() {
			return plans.ErrInvalidStatus
		}

		now := s.clock.Now()
		if input.Action == ActionReject {
			reason := input.Reason
			if reason == "" {
				reason = "信息需补充"
			}
			plan.Status = plans.StatusReturned
			plan.Reviewer = input.Reviewer
			plan.RejectReason = reason

			st.Account = st.Account.Release(plan.TotalAmount)
			st.PushLedger(funds.LedgerRecord{
				ID:        s.gen.NextID("ldg"),
				Type:      funds.LedgerTypeRelease,
				Amount:    plan.TotalAmount,
				RelatedNo: plan.Number,
				Note:      "计划退回释放占用资金",
				CreatedAt: now,
			})
			s.emit(st, notify.CategoryApproval, "计划已退回", fmt.Sprintf("%s 已退回，原因：%s", plan.Number, reason))
			return nil
		}

		plan.Status = plans.StatusApproved
		plan.Reviewer = input.Reviewer
		plan.RejectReason = ""

		threshold := s.diffThreshold
		if threshold <= 0 {
			threshold = orders.DefaultDiffThreshold
		}
		order := orders.Order{
			ID:               s.gen.NextID("order"),
			Number:           s.gen.NextNo("OD", now),
			PlanID:           plan.ID,
			CustomerName:     plan.CustomerName,
			SiteName:         plan.SiteName,
			TransportMode:    plan.TransportMode,
			WeighDiffRule:    plan.WeighDiffRule,
			Status:           orders.StatusOrdered,
			Threshold:        threshold,
			SettlementWeight: orders.Float(plan.PlannedVolume),
		}
		st.Orders = append([]orders.Order{order}, st.Orders...)
		st.OrderNoIndex[order.Number] = order.ID

		st.Account = st.Account.Freeze(plan.TotalAmount)
		st.PushLedger(funds.LedgerRecord{
			ID:        s.gen.NextID("ldg"),
			Type:      funds.LedgerTypeFreeze,
			Amount:    plan.TotalAmount,
			RelatedNo: order.Number,
			Note:      "审批通过转冻结",
			CreatedAt: now,
		})
		s.emit(st, notify.CategoryApproval, "计划已审批通过",
			fmt.Sprintf("%s 已通过审批并生成订单 %s", plan.Number, order.Number))
		return nil
	})
}

// Cancel cancels a plan and releases its reservation when one exists.
// Approved and already-cancelled plans are rejected.
func (s *Service) Cancel(planID, reason string) error {
	return s.store.Update(func(st *state.State) error {
		plan := st.FindPlan(planID)
		if plan == nil {
			return plans.ErrNotFound
		}
		if plan.Status == plans.StatusApproved || plan.Status == plans.StatusCancelled {
			return plans.ErrInvalidStatus
		}

		release := plan.HoldsFunds()
		plan.Status = plans.StatusCancelled
		plan.RejectReason = reason

		if release {
			st.Account = st.Account.Release(plan.TotalAmount)
			st.PushLedger(funds.LedgerRecord{
				ID:        s.gen.NextID("ldg"),
				Type:      funds.LedgerTypeRelease,
				Amount:    plan.TotalAmount,
				RelatedNo: plan.Number,
				Note:      "计划取消释放占用",
				CreatedAt: s.clock.Now(),
			})
		}
		return nil
	})
}

func (s *Service) emit(st *state.State, category, title, content string) notify.Item {
	item := notify.New(s.gen.NextID("msg"), category, title, content, s.clock.Now())
	st.PushNotification(item)
	metrics.IncNotification(category)
	return item
}
