//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"chatcart/internal/handler/api"
	resdto "chatcart/internal/handler/dto/response"
	"chatcart/internal/pkg/errs"
	"chatcart/internal/usecase/commands"
	"chatcart/tests/common/httptest"
	"chatcart/tests/common/testutil"
	commandsmock "chatcart/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands)

	s.router.POST("/api/auth/login", s.handler.Login)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/api/auth/login"
	reqBody := map[string]any{"pin": "4321"}

	s.Run("success: 200 with an access token", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "4321").
			Return("admin-token", nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("admin-token", response.AccessToken)
	})

	s.Run("error: 401 on a wrong pin", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "4321").
			Return("", errs.Mark(errs.New("pin mismatch"), commands.ErrInvalidPIN)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid PIN")
	})

	s.Run("error: 400 on validation failures", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing pin", mutate: testutil.Field("pin", nil)},
			{name: "empty pin", mutate: testutil.Field("pin", "")},
			{name: "pin below minimum length", mutate: testutil.Field("pin", "123")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}
