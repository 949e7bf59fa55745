package apihttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lngtrade-cloud/internal/auth"
	fundsapp "lngtrade-cloud/internal/funds/application"
	"lngtrade-cloud/internal/numbering"
	ordersapp "lngtrade-cloud/internal/orders/application"
	plansapp "lngtrade-cloud/internal/plans/application"
	"lngtrade-cloud/internal/state"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newFixture(t *testing.T) (*state.Store, *numbering.Generator, state.Clock) {
	t.Helper()
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(500))
	clock := &fakeClock{now: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)}
	return store, gen, clock
}

func TestPlanCreateInsufficientBalance(t *testing.T) {
	store, gen, clock := newFixture(t)
	svc, err := plansapp.NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	handler, err := NewPlansHandler(svc, store, nil)
	if err != nil {
		t.Fatalf("NewPlansHandler: %v", err)
	}

	body := `{"site_id":"site-01","price_id":"price-exclusive-a","planned_volume":120,"freight_fee":3000,"transport_mode":"upstream","agreement_checked":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "余额不足") {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestPlanCancelCustomerScope(t *testing.T) {
	store, gen, clock := newFixture(t)
	svc, err := plansapp.NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	handler, err := NewPlansHandler(svc, store, nil)
	if err != nil {
		t.Fatalf("NewPlansHandler: %v", err)
	}

	// plan-1001 belongs to customer-a; a terminal user bound to another
	// customer cannot cancel it.
	ctx := auth.WithIdentity(context.Background(), "auth-other", auth.RoleTerminal, "customer-b")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans/plan-1001/cancel",
		strings.NewReader(`{"reason":"行程变更"}`)).WithContext(ctx)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	snapshot1 := store.Snapshot()
	if got := snapshot1.FindPlan("plan-1001").Status; got != "submitted" {
		t.Fatalf("foreign cancel mutated plan: %s", got)
	}

	// The owning customer may cancel.
	ctx = auth.WithIdentity(context.Background(), "auth-terminal-01", auth.RoleTerminal, "customer-a")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/plans/plan-1001/cancel",
		strings.NewReader(`{"reason":"行程变更"}`)).WithContext(ctx)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
}

func TestDepositRegisterAndReview(t *testing.T) {
	store, gen, clock := newFixture(t)
	svc, err := fundsapp.NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	handler, err := NewFundsHandler(svc, store, nil)
	if err != nil {
		t.Fatalf("NewFundsHandler: %v", err)
	}

	body := `{"customer_name":"华东燃气贸易有限公司","amount":50000,"paid_at":"2026-02-10","receipt_name":"回单.pdf"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", resp.Code, resp.Body.String())
	}

	snap := store.Snapshot()
	depositID := snap.Deposits[len(snap.Deposits)-1].ID

	req = httptest.NewRequest(http.MethodPost, "/api/v1/deposits/"+depositID+"/review",
		strings.NewReader(`{"action":"confirm","reviewer":"财务-王静"}`))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("review status = %d, body %s", resp.Code, resp.Body.String())
	}
	if got := store.Snapshot().Account.Available; got != 210000 {
		t.Fatalf("available = %.2f", got)
	}

	// Second confirm conflicts.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/deposits/"+depositID+"/review",
		strings.NewReader(`{"action":"confirm","reviewer":"财务-王静"}`))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("second review status = %d", resp.Code)
	}
}

func TestOrderArchiveGuard(t *testing.T) {
	store, gen, clock := newFixture(t)
	svc, err := ordersapp.NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	handler, err := NewOrdersHandler(svc, store, nil)
	if err != nil {
		t.Fatalf("NewOrdersHandler: %v", err)
	}

	orderID := store.Snapshot().Orders[0].ID
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/archive", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "仅已验收/已结算订单可归档") {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestOrdersListServesSnapshot(t *testing.T) {
	store, gen, clock := newFixture(t)
	svc, err := ordersapp.NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	handler, err := NewOrdersHandler(svc, store, nil)
	if err != nil {
		t.Fatalf("NewOrdersHandler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if !strings.Contains(resp.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("content type = %s", resp.Header().Get("Content-Type"))
	}
}
