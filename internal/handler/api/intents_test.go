//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"chatcart/internal/domain/order"
	"chatcart/internal/handler/api"
	resdto "chatcart/internal/handler/dto/response"
	"chatcart/internal/inventory"
	"chatcart/internal/pkg/errs"
	"chatcart/internal/usecase/commands"
	"chatcart/tests/common/builder"
	"chatcart/tests/common/httptest"
	"chatcart/tests/common/testutil"
	commandsmock "chatcart/tests/mock/commands"
	queriesmock "chatcart/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type IntentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockIntentCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.IntentHandler
}

func (s *IntentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockIntentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewIntentHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/intents", s.handler.Handle)
	s.router.GET("/api/orders/:customerId", s.handler.GetActiveOrder)
}

func (s *IntentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestIntentHandlerSuite(t *testing.T) {
	suite.Run(t, new(IntentHandlerTestSuite))
}

func sampleSnapshot() order.Snapshot {
	return order.Snapshot{
		OrderID:   uuid.New(),
		SessionID: "cust-1",
		Status:    order.StatusReserved,
		Lines: []order.LineView{
			{SKU: "SKU-A", Name: "Basmati Rice 1kg", Requested: 2, Reserved: 2, UnitPriceCents: 10000, TotalCents: 20000},
		},
		SubtotalCents:   20000,
		GrandTotalCents: 20000,
		CreatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *IntentHandlerTestSuite) TestHandle() {
	url := "/api/intents"
	reqBody := builder.NewIntentBuilder().WithSKU("SKU-A").WithQty(2).BuildDTO()

	s.Run("success: 200 with the order snapshot", func() {
		snap := sampleSnapshot()
		s.mockCommands.EXPECT().Handle(gomock.Any(), "cust-1", gomock.Any()).
			Return(&commands.HandleResult{Snapshot: snap}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.OrderSnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(snap.OrderID, response.OrderID)
		s.Equal("reserved", response.Status)
		s.Equal("200.00", response.Subtotal)
		s.False(response.Replayed)
	})

	s.Run("success: replayed redelivery is flagged", func() {
		snap := sampleSnapshot()
		s.mockCommands.EXPECT().Handle(gomock.Any(), "cust-1", gomock.Any()).
			Return(&commands.HandleResult{Snapshot: snap, Replayed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.OrderSnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Replayed)
	})

	s.Run("error: 400 on validation failures", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing customer_id", mutate: testutil.Field("customer_id", nil)},
			{name: "missing type", mutate: testutil.Field("type", nil)},
			{name: "missing idempotency_key", mutate: testutil.Field("idempotency_key", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: domain errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "insufficient stock", err: &inventory.InsufficientStockError{SKU: "SKU-A", Requested: 7, Available: 5}, expectCode: http.StatusConflict},
			{name: "empty cart checkout", err: errs.ErrEmptyCartCheckout, expectCode: http.StatusUnprocessableEntity},
			{name: "terminal order", err: errs.ErrTerminalOrder, expectCode: http.StatusConflict},
			{name: "invalid transition", err: errs.ErrInvalidTransition, expectCode: http.StatusConflict},
			{name: "no active order", err: errs.ErrNoActiveOrder, expectCode: http.StatusNotFound},
			{name: "unknown session", err: errs.Mark(errs.New("empty customer id"), errs.ErrUnknownSession), expectCode: http.StatusNotFound},
			{name: "unknown product", err: errs.Mark(errs.Newf("sku %q", "SKU-X"), errs.ErrUnknownProduct), expectCode: http.StatusNotFound},
			{name: "unknown sku", err: errs.Mark(errs.Newf("reserve %q", "SKU-X"), errs.ErrUnknownSKU), expectCode: http.StatusNotFound},
			{name: "line not found", err: errs.Mark(errs.Newf("sku %q", "SKU-X"), errs.ErrLineNotFound), expectCode: http.StatusNotFound},
			{name: "idempotency key required", err: errs.ErrIdempotencyKeyRequired, expectCode: http.StatusBadRequest},
			{name: "domain validation", err: errs.Mark(errs.New("intent requires a sku"), errs.ErrDomainValidation), expectCode: http.StatusBadRequest},
			{name: "unexpected", err: errs.New("boom"), expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Handle(gomock.Any(), "cust-1", gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: stock shortfall carries the line detail", func() {
		s.mockCommands.EXPECT().Handle(gomock.Any(), "cust-1", gomock.Any()).
			Return(nil, &inventory.InsufficientStockError{SKU: "SKU-A", Requested: 7, Available: 5}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body struct {
			Error  string `json:"error"`
			Detail struct {
				SKU       string `json:"sku"`
				Requested int    `json:"requested"`
				Available int    `json:"available"`
			} `json:"detail"`
		}
		s.Equal(http.StatusConflict, rec.Code)
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Equal("SKU-A", body.Detail.SKU)
		s.Equal(7, body.Detail.Requested)
		s.Equal(5, body.Detail.Available)
	})
}

func (s *IntentHandlerTestSuite) TestGetActiveOrder() {
	s.Run("success: 200 with the current snapshot", func() {
		snap := sampleSnapshot()
		s.mockQueries.EXPECT().GetActive(gomock.Any(), "cust-1").
			Return(&snap, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/cust-1", nil, "")

		var response resdto.OrderSnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cust-1", response.CustomerID)
	})

	s.Run("error: 404 when the customer has no order", func() {
		s.mockQueries.EXPECT().GetActive(gomock.Any(), "cust-2").
			Return(nil, errs.ErrNoActiveOrder).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/cust-2", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
