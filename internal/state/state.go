// Package state holds the whole domain state as one value and serializes
// every mutation through a single-writer store. Operations read a working
// copy, mutate it, and commit it wholesale; a failed operation leaves the
// previous state untouched.
package state

import (
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

// State is the complete domain state. All entities are value records;
// cross-references are by id or business number only.
type State struct {
	Authenticated      bool
	CurrentUser        *identity.User
	Users              []identity.User
	CurrentRole        string
	ActiveCustomerID   string
	ActiveCustomerName string

	Account funds.Account

	Sites     []masterdata.Site
	Vehicles  []masterdata.Vehicle
	Personnel []masterdata.Person
	GasPrices []masterdata.GasPrice

	Plans  []plans.Plan
	Orders []orders.Order

	Ledgers  []funds.LedgerRecord
	Deposits []funds.DepositRecord

	Notifications []notify.Item

	Statements       []settlement.Statement
	UpstreamArchives []settlement.UpstreamArchive

	Invoices            []invoicing.Invoice
	InvoiceApplications []invoicing.Application

	OnboardingApplications []onboarding.Application
	Exceptions             []exceptions.Case

	DailyPlanReports []reporting.DailyPlanReport

	// Secondary indexes from business number to record id, maintained by
	// the services that create plans and orders.
	PlanNoIndex  map[string]string
	OrderNoIndex map[string]string
}

// Clone returns a deep copy. Slices of plain value records are copied;
// records carrying nested slices or pointers clone element-wise.
func (s State) Clone() State {
	clone := s

	if s.CurrentUser != nil {
		user := *s.CurrentUser
		clone.CurrentUser = &user
	}

	clone.Users = append([]identity.User(nil), s.Users...)
	clone.Sites = append([]masterdata.Site(nil), s.Sites...)
	clone.Vehicles = append([]masterdata.Vehicle(nil), s.Vehicles...)
	clone.Personnel = append([]masterdata.Person(nil), s.Personnel...)
	clone.GasPrices = append([]masterdata.GasPrice(nil), s.GasPrices...)
	clone.Plans = append([]plans.Plan(nil), s.Plans...)
	clone.Ledgers = append([]funds.LedgerRecord(nil), s.Ledgers...)
	clone.Deposits = append([]funds.DepositRecord(nil), s.Deposits...)
	clone.Notifications = append([]notify.Item(nil), s.Notifications...)
	clone.UpstreamArchives = append([]settlement.UpstreamArchive(nil), s.UpstreamArchives...)
	clone.Invoices = append([]invoicing.Invoice(nil), s.Invoices...)
	clone.OnboardingApplications = append([]onboarding.Application(nil), s.OnboardingApplications...)
	clone.Exceptions = append([]exceptions.Case(nil), s.Exceptions...)

	clone.Orders = make([]orders.Order, len(s.Orders))
	for i, order := range s.Orders {
		clone.Orders[i] = order.Clone()
	}
	clone.Statements = make([]settlement.Statement, len(s.Statements))
	for i, stmt := range s.Statements {
		clone.Statements[i] = stmt.Clone()
	}
	clone.InvoiceApplications = make([]invoicing.Application, len(s.InvoiceApplications))
	for i, app := range s.InvoiceApplications {
		clone.InvoiceApplications[i] = app.Clone()
	}
	clone.DailyPlanReports = make([]reporting.DailyPlanReport, len(s.DailyPlanReports))
	for i, report := range s.DailyPlanReports {
		clone.DailyPlanReports[i] = report.Clone()
	}

	clone.PlanNoIndex = make(map[string]string, len(s.PlanNoIndex))
	for no, id := range s.PlanNoIndex {
		clone.PlanNoIndex[no] = id
	}
	clone.OrderNoIndex = make(map[string]string, len(s.OrderNoIndex))
	for no, id := range s.OrderNoIndex {
		clone.OrderNoIndex[no] = id
	}
	return clone
}

// FindPlan returns a pointer into the state for the given plan id.
func (s *State) FindPlan(id string) *plans.Plan {
	for i := range s.Plans {
		if s.Plans[i].ID == id {
			return &s.Plans[i]
		}
	}
	return nil
}

// FindPlanByNumber resolves a plan through the business-number index.
func (s *State) FindPlanByNumber(no string) *plans.Plan {
	if id, ok := s.PlanNoIndex[no]; ok {
		return s.FindPlan(id)
	}
	return nil
}

// FindOrder returns a pointer into the state for the given order id.
func (s *State) FindOrder(id string) *orders.Order {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return &s.Orders[i]
		}
	}
	return nil
}

// FindOrderByNumber resolves an order through the business-number index.
func (s *State) FindOrderByNumber(no string) *orders.Order {
	if id, ok := s.OrderNoIndex[no]; ok {
		return s.FindOrder(id)
	}
	return nil
}

// FindSite returns the site with the given id.
func (s *State) FindSite(id string) *masterdata.Site {
	for i := range s.Sites {
		if s.Sites[i].ID == id {
			return &s.Sites[i]
		}
	}
	return nil
}

// FindVehicle returns the vehicle with the given id.
func (s *State) FindVehicle(id string) *masterdata.Vehicle {
	for i := range s.Vehicles {
		if s.Vehicles[i].ID == id {
			return &s.Vehicles[i]
		}
	}
	return nil
}

// FindPerson returns the person with the given id.
func (s *State) FindPerson(id string) *masterdata.Person {
	for i := range s.Personnel {
		if s.Personnel[i].ID == id {
			return &s.Personnel[i]
		}
	}
	return nil
}

// FindGasPrice returns the gas price with the given id.
func (s *State) FindGasPrice(id string) *masterdata.GasPrice {
	for i := range s.GasPrices {
		if s.GasPrices[i].ID == id {
			return &s.GasPrices[i]
		}
	}
	return nil
}

// FindStatement returns the statement with the given id.
func (s *State) FindStatement(id string) *settlement.Statement {
	for i := range s.Statements {
		if s.Statements[i].ID == id {
			return &s.Statements[i]
		}
	}
	return nil
}

// FindDeposit returns the deposit with the given id.
func (s *State) FindDeposit(id string) *funds.DepositRecord {
	for i := range s.Deposits {
		if s.Deposits[i].ID == id {
			return &s.Deposits[i]
		}
	}
	return nil
}

// FindInvoice returns the invoice with the given id.
func (s *State) FindInvoice(id string) *invoicing.Invoice {
	for i := range s.Invoices {
		if s.Invoices[i].ID == id {
			return &s.Invoices[i]
		}
	}
	return nil
}

// FindInvoiceApplication returns the invoice application with the given id.
func (s *State) FindInvoiceApplication(id string) *invoicing.Application {
	for i := range s.InvoiceApplications {
		if s.InvoiceApplications[i].ID == id {
			return &s.InvoiceApplications[i]
		}
	}
	return nil
}

// FindOnboarding returns the onboarding application with the given id.
func (s *State) FindOnboarding(id string) *onboarding.Application {
	for i := range s.OnboardingApplications {
		if s.OnboardingApplications[i].ID == id {
			return &s.OnboardingApplications[i]
		}
	}
	return nil
}

// FindException returns the exception case with the given id.
func (s *State) FindException(id string) *exceptions.Case {
	for i := range s.Exceptions {
		if s.Exceptions[i].ID == id {
			return &s.Exceptions[i]
		}
	}
	return nil
}

// FindUserByPhone returns the identity user with the given phone.
func (s *State) FindUserByPhone(phone string) *identity.User {
	for i := range s.Users {
		if s.Users[i].Phone == phone {
			return &s.Users[i]
		}
	}
	return nil
}

// PushNotification prepends a notification, newest first.
func (s *State) PushNotification(item notify.Item) {
	s.Notifications = append([]notify.Item{item}, s.Notifications...)
}

// PushLedger prepends a ledger record, newest first.
func (s *State) PushLedger(record funds.LedgerRecord) {
	s.Ledgers = append([]funds.LedgerRecord{record}, s.Ledgers...)
}
