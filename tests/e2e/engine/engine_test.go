//go:build e2e

package engine_test

import (
	"net/http"
	"testing"
	"time"

	resdto "chatcart/internal/handler/dto/response"
	"chatcart/tests/common/dbtest"
	"chatcart/tests/common/httptest"
	"chatcart/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL   = "/api/auth/login"
	intentsURL = "/api/intents"
	stockURL   = "/api/admin/stock"
	adjustURL  = "/api/admin/stock/adjust"
)

type engineSuite struct {
	e2e.SharedSuite
}

func TestEngineSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(engineSuite))
}

func (s *engineSuite) login() string {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
		map[string]string{"pin": e2e.TestAdminPIN}, "")

	var response resdto.LoginResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Require().NotEmpty(response.AccessToken)
	return response.AccessToken
}

func (s *engineSuite) sendIntent(customerID, intentType, sku string, qty int, key string) *resdto.OrderSnapshotResponse {
	body := map[string]any{
		"customer_id":     customerID,
		"type":            intentType,
		"idempotency_key": key,
	}
	if sku != "" {
		body["sku"] = sku
	}
	if qty > 0 {
		body["qty"] = qty
	}

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, intentsURL, body, "")

	var response resdto.OrderSnapshotResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	return &response
}

func (s *engineSuite) TestCheckoutFlow() {
	s.Run("add, checkout and archive the bill", func() {
		customer := "cust-" + uuid.NewString()

		snap := s.sendIntent(customer, "add_item", "SKU-RICE", 2, uuid.NewString())
		s.Equal("reserved", snap.Status)
		s.Require().Len(snap.Lines, 1)
		s.Equal(2, snap.Lines[0].Reserved)
		s.Equal("100.00", snap.Lines[0].UnitPrice)

		checkoutKey := uuid.NewString()
		bill := s.sendIntent(customer, "request_checkout", "", 0, checkoutKey)
		s.Equal("billed", bill.Status)
		s.True(bill.FinalBill)
		s.Equal("200.00", bill.Subtotal)
		s.Equal("25.00", bill.DiscountTotal)
		s.Equal("175.00", bill.GrandTotal)

		ruleIDs := make([]string, 0, len(bill.Offers))
		for _, offer := range bill.Offers {
			ruleIDs = append(ruleIDs, offer.RuleID)
		}
		s.ElementsMatch([]string{"R1", "R2"}, ruleIDs)

		// The archive write is asynchronous.
		s.Require().Eventually(func() bool {
			return dbtest.CountBilledOrders(s.T(), s.DB, bill.OrderID) == 1
		}, 3*time.Second, 50*time.Millisecond, "billed order never reached the archive")

		redelivered := s.sendIntent(customer, "request_checkout", "", 0, checkoutKey)
		s.True(redelivered.Replayed)
		s.Equal(bill.GrandTotal, redelivered.GrandTotal)
		s.Equal(1, dbtest.CountBilledOrders(s.T(), s.DB, bill.OrderID))
	})

	s.Run("billed order stays readable until the next add", func() {
		customer := "cust-" + uuid.NewString()

		s.sendIntent(customer, "add_item", "SKU-SOAP", 1, uuid.NewString())
		bill := s.sendIntent(customer, "request_checkout", "", 0, uuid.NewString())
		s.Equal("billed", bill.Status)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/"+customer, nil, "")
		var current resdto.OrderSnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &current)
		s.Equal(bill.OrderID, current.OrderID)
		s.Equal("billed", current.Status)
	})
}

func (s *engineSuite) TestAdminSurface() {
	s.Run("stock endpoints are gated by the admin token", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, stockURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("adjust raises on-hand and the levels reflect it", func() {
		token := s.login()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, adjustURL,
			map[string]any{"sku": "SKU-OIL", "qty": 5, "reason": "delivery"}, token)

		var level resdto.StockLevelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &level)
		s.Equal("SKU-OIL", level.SKU)
		s.Equal(15, level.OnHand)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, stockURL, nil, token)
		var levels []resdto.StockLevelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &levels)

		bySKU := make(map[string]resdto.StockLevelResponse, len(levels))
		for _, lv := range levels {
			bySKU[lv.SKU] = lv
		}
		s.Equal(15, bySKU["SKU-OIL"].OnHand)
		s.Equal("Sunflower Oil 1L", bySKU["SKU-OIL"].Name)
	})
}
