package state

import (
	"time"

	exceptions "lngtrade-cloud/internal/exceptions/domain"
	funds "lngtrade-cloud/internal/funds/domain"
	identity "lngtrade-cloud/internal/identity/domain"
	invoicing "lngtrade-cloud/internal/invoicing/domain"
	masterdata "lngtrade-cloud/internal/masterdata/domain"
	"lngtrade-cloud/internal/notify"
	onboarding "lngtrade-cloud/internal/onboarding/domain"
	orders "lngtrade-cloud/internal/orders/domain"
	plans "lngtrade-cloud/internal/plans/domain"
	reporting "lngtrade-cloud/internal/reporting/domain"
	settlement "lngtrade-cloud/internal/settlement/domain"
)

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("state: bad seed timestamp " + value)
	}
	return t
}

// Seed returns the demo fixture the platform boots with. The numbers here
// back the worked examples in the acceptance tests; change them with care.
func Seed() State {
	return State{
		Authenticated: false,
		Users: []identity.User{
			{ID: "auth-terminal-01", Phone: "13800138000", Password: "123456", ContactName: "张三", OrganizationName: "华东能源科技有限公司", Role: identity.RoleTerminal, CustomerID: "customer-a"},
			{ID: "auth-market-01", Phone: "13800138001", Password: "123456", ContactName: "周婷", OrganizationName: "气源发展-市场部", Role: identity.RoleMarket},
			{ID: "auth-dispatch-01", Phone: "13800138002", Password: "123456", ContactName: "刘工", OrganizationName: "气源发展-调度中心", Role: identity.RoleDispatch},
			{ID: "auth-finance-01", Phone: "13800138003", Password: "123456", ContactName: "陈会计", OrganizationName: "气源发展-财务部", Role: identity.RoleFinance},
			{ID: "auth-carrier-01", Phone: "13800138004", Password: "123456", ContactName: "刘主管", OrganizationName: "华东承运物流有限公司", Role: identity.RoleCarrier},
			{ID: "auth-driver-01", Phone: "13800138005", Password: "123456", ContactName: "赵强", OrganizationName: "华东承运物流有限公司", Role: identity.RoleDriver},
		},
		CurrentRole:        identity.RoleTerminal,
		ActiveCustomerID:   "customer-a",
		ActiveCustomerName: "华东能源科技有限公司",
		Account: funds.Account{
			Total:     520000,
			Available: 160000,
			Occupied:  40000,
			Frozen:    320000,
		},
		Sites: []masterdata.Site{
			{ID: "site-01", Name: "苏州工业园卸气站", Type: masterdata.SiteTypeUnload, Status: masterdata.SiteStatusEnabled},
			{ID: "site-02", Name: "常州西港卸气站", Type: masterdata.SiteTypeUnload, Status: masterdata.SiteStatusMaintenance, MaintenancePolicy: masterdata.MaintenancePolicyBlock, MaintenanceWindow: "2026-02-08 ~ 2026-02-12"},
			{ID: "site-03", Name: "无锡北站用气点", Type: masterdata.SiteTypeUse, Status: masterdata.SiteStatusEnabled},
		},
		Vehicles: []masterdata.Vehicle{
			{ID: "vehicle-01", PlateNo: "苏A·LNG88", Capacity: 35, Valid: true, CertExpiry: "2026-12-31"},
			{ID: "vehicle-02", PlateNo: "苏B·LNG12", Capacity: 25, Valid: false, CertExpiry: "2026-01-15"},
		},
		Personnel: []masterdata.Person{
			{ID: "person-01", Name: "赵强", Role: masterdata.PersonRoleDriver, Valid: true, CertExpiry: "2026-08-31"},
			{ID: "person-02", Name: "王敏", Role: masterdata.PersonRoleEscort, Valid: true, CertExpiry: "2026-09-30"},
			{ID: "person-03", Name: "李凯", Role: masterdata.PersonRoleDriver, Valid: false, CertExpiry: "2025-12-31"},
		},
		GasPrices: []masterdata.GasPrice{
			{ID: "price-public-1", SourceCompany: "中海气源公司", SourceSite: "宁波接收站", Scope: masterdata.PriceScopePublic, Price: 3950, ValidFrom: "2026-02-01", ValidTo: "2026-02-15", TaxIncluded: true, Note: "公共挂牌价", Status: masterdata.PriceStatusPublished},
			{ID: "price-exclusive-a", SourceCompany: "中海气源公司", SourceSite: "宁波接收站", Scope: masterdata.PriceScopeExclusive, CustomerID: "customer-a", Price: 4200, ValidFrom: "2026-02-01", ValidTo: "2026-02-15", TaxIncluded: true, Note: "一户一价，覆盖公共价", Status: masterdata.PriceStatusPublished},
			{ID: "price-public-2", SourceCompany: "华北气源公司", SourceSite: "天津港站", Scope: masterdata.PriceScopePublic, Price: 3880, ValidFrom: "2026-02-01", ValidTo: "2026-02-20", TaxIncluded: false, Note: "公共价，税外", Status: masterdata.PriceStatusPublished},
		},
		Plans: []plans.Plan{
			{
				ID: "plan-1001", Number: "PL-20260209-001", CustomerID: "customer-a", CustomerName: "华东能源科技有限公司",
				SiteID: "site-01", SiteName: "苏州工业园卸气站", PriceID: "price-exclusive-a",
				PlannedVolume: 22, UnitPrice: 4200, EstimatedAmount: 92400, FreightFee: 3200, TotalAmount: 95600,
				TransportMode: plans.TransportCarrier, PaymentMethod: plans.PaymentPrepaid, WeighDiffRule: plans.WeighRuleDelta,
				AgreementChecked: true, CarrierID: "carrier-01", VehicleID: "vehicle-01", DriverID: "person-01", EscortID: "person-02",
				Status: plans.StatusSubmitted, SubmittedAt: at("2026-02-09T08:30:00Z"),
			},
			{
				ID: "plan-1002", Number: "PL-20260209-002", CustomerID: "customer-a", CustomerName: "华东能源科技有限公司",
				SiteID: "site-03", SiteName: "无锡北站用气点", PriceID: "price-public-1",
				PlannedVolume: 18, UnitPrice: 3950, EstimatedAmount: 71100, FreightFee: 2000, TotalAmount: 73100,
				TransportMode: plans.TransportUpstream, PaymentMethod: plans.PaymentPostpaid, WeighDiffRule: plans.WeighRuleUnload,
				AgreementChecked: true, Status: plans.StatusApproved, SubmittedAt: at("2026-02-08T08:30:00Z"), Reviewer: "市场部-周婷",
			},
		},
		Orders: []orders.Order{
			{
				ID: "order-2001", Number: "OD-20260209-001", PlanID: "plan-1002", CustomerName: "华东能源科技有限公司",
				SiteName: "无锡北站用气点", TransportMode: plans.TransportUpstream, WeighDiffRule: plans.WeighRuleUnload,
				Status: orders.StatusTransporting, Threshold: orders.DefaultDiffThreshold,
				LoadWeight: orders.Float(18), UnloadWeight: orders.Float(17.8), SettlementWeight: orders.Float(17.8),
			},
		},
		Ledgers: []funds.LedgerRecord{
			{ID: "ldg-init-1", Type: funds.LedgerTypeFreeze, Amount: 320000, RelatedNo: "OD-20260208-001", Note: "历史订单冻结", CreatedAt: at("2026-02-08T11:00:00Z")},
			{ID: "ldg-init-2", Type: funds.LedgerTypeOccupy, Amount: 40000, RelatedNo: "PL-20260209-001", Note: "计划提交占用", CreatedAt: at("2026-02-09T08:30:00Z")},
		},
		Deposits: []funds.DepositRecord{
			{ID: "dep-1", CustomerName: "华东能源科技有限公司", Amount: 50000, PaidAt: "2026-02-09", ReceiptName: "回单-0209.pdf", Status: funds.DepositStatusPending},
		},
		Notifications: []notify.Item{
			{ID: "msg-init-1", Category: notify.CategoryApproval, Title: "计划待审批", Content: "PL-20260209-001 已提交，请市场部处理。", CreatedAt: at("2026-02-09T08:31:00Z")},
		},
		Statements: []settlement.Statement{
			{
				ID: "rc-202602-001", Number: "RC-202602-001", CustomerName: "华东能源科技有限公司",
				Period: "2026-02-01 ~ 2026-02-15", Status: settlement.StatusDraft, TotalAmount: 168700,
				OrderNumbers: []string{"OD-20260209-001"},
			},
			{
				ID: "rc-202601-003", Number: "RC-202601-003", CustomerName: "华东能源科技有限公司",
				Period: "2026-01-01 ~ 2026-01-31", Status: settlement.StatusDoubleConfirmed, TotalAmount: 120000,
				OrderNumbers: []string{"OD-20260131-008"},
				StampLogs: []settlement.StampLog{
					{ActorType: settlement.ActorPlatform, Actor: "市场部-王经理", StampedAt: at("2026-02-01T09:30:00Z")},
					{ActorType: settlement.ActorCustomer, Actor: "终端用户-张三", StampedAt: at("2026-02-01T10:10:00Z")},
				},
			},
		},
		Invoices: []invoicing.Invoice{
			{ID: "inv-1", Number: "INV-20260208-001", CustomerName: "华东能源科技有限公司", Amount: 120000, IssueDate: "2026-02-08", StatementNo: "RC-202601-003", Status: invoicing.InvoiceIssued},
			{ID: "inv-2", Number: "INV-20260209-002", CustomerName: "华东能源科技有限公司", Amount: 48700, IssueDate: "2026-02-09", StatementNo: "RC-202602-001", Status: invoicing.InvoicePending},
		},
		UpstreamArchives: []settlement.UpstreamArchive{
			{ID: "upa-001", UpstreamCompany: "中海气源公司", Period: "2026-01", FileName: "upstream-reconciliation-202601.pdf", ArchivedBy: "市场部-周婷", ArchivedAt: at("2026-02-02T10:40:00Z"), Note: "线下对账签字版", Status: settlement.ArchiveStatusArchived},
		},
		InvoiceApplications: []invoicing.Application{
			{
				ID: "iap-001", Number: "IA-20260209-001", StatementID: "rc-202601-003", StatementNo: "RC-202601-003",
				CustomerName: "华东能源科技有限公司", OrderNumbers: []string{"OD-20260131-008"}, OriginalAmount: 120000,
				RequestedAmount: 120000, InvoiceTitle: "华东能源科技有限公司", TaxNo: "91320000MA1234567X",
				Applicant: "市场部-王经理", AppliedAt: at("2026-02-09T09:30:00Z"), Status: invoicing.ApplicationPendingReview,
			},
		},
		OnboardingApplications: []onboarding.Application{
			{ID: "onb-001", OrganizationName: "江苏中海清洁能源有限公司", OrganizationType: onboarding.OrgTerminal, ContactName: "张经理", ContactPhone: "13800138000", SubmittedAt: at("2026-02-09T02:30:00Z"), Status: onboarding.StatusPending},
			{ID: "onb-002", OrganizationName: "华东承运物流有限公司", OrganizationType: onboarding.OrgCarrier, ContactName: "刘主管", ContactPhone: "13900139000", SubmittedAt: at("2026-02-08T05:20:00Z"), Status: onboarding.StatusRejected, RejectReason: "运输资质附件不完整", Reviewer: "市场部-周婷"},
		},
		Exceptions: []exceptions.Case{
			{ID: "ex-001", Number: "EX-20260209-001", Type: exceptions.TypeDeltaAdjustment, TargetNo: "OD-20260209-001", Reason: "装卸磅差超阈值，需多退少补", ResponsibilityParty: "承运商", Amount: 3200, Status: exceptions.StatusPending, CreatedAt: at("2026-02-09T09:20:00Z")},
		},
		DailyPlanReports: []reporting.DailyPlanReport{
			{
				ID: "dpr-20260209", ReportDate: "2026-02-09", GeneratedAt: at("2026-02-09T21:30:00Z"), GeneratedBy: "市场部-系统任务",
				Plans: []reporting.PlanLine{
					{PlanID: "plan-1001", Number: "PL-20260209-001", CustomerName: "华东能源科技有限公司", SiteName: "苏州工业园卸气站", PlannedVolume: 22, TransportMode: plans.TransportCarrier, Status: plans.StatusSubmitted, SubmittedAt: at("2026-02-09T08:30:00Z")},
				},
			},
		},
		PlanNoIndex: map[string]string{
			"PL-20260209-001": "plan-1001",
			"PL-20260209-002": "plan-1002",
		},
		OrderNoIndex: map[string]string{
			"OD-20260209-001": "order-2001",
		},
	}
}
