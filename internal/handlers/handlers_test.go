package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/trading_wallet_app/internal/dto"
	"github.com/SscSPs/trading_wallet_app/internal/handlers"
	"github.com/SscSPs/trading_wallet_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock Orchestrator ---
type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) Deposit(ctx context.Context, cmd domain.DepositCommand) (*domain.WalletBalance, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletBalance), args.Error(1)
}
func (m *MockOrchestrator) Withdraw(ctx context.Context, cmd domain.WithdrawCommand) (*domain.WalletBalance, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletBalance), args.Error(1)
}
func (m *MockOrchestrator) Buy(ctx context.Context, cmd domain.TradeCommand) (*domain.Trade, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}
func (m *MockOrchestrator) Sell(ctx context.Context, cmd domain.TradeCommand) (*domain.Trade, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}
func (m *MockOrchestrator) Exchange(ctx context.Context, cmd domain.ExchangeCommand) (*domain.ExchangeResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeResult), args.Error(1)
}
func (m *MockOrchestrator) GetTrade(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	args := m.Called(ctx, userID, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

var _ portssvc.OrchestratorSvc = (*MockOrchestrator)(nil)

// --- Mock WalletLedger ---
type MockWalletLedger struct {
	mock.Mock
}

func (m *MockWalletLedger) GetBalance(ctx context.Context, userID, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockWalletLedger) ListBalances(ctx context.Context, userID string) ([]domain.WalletBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletBalance), args.Error(1)
}
func (m *MockWalletLedger) Debit(ctx context.Context, userID, currency string, amount decimal.Decimal) (*domain.WalletBalance, error) {
	args := m.Called(ctx, userID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletBalance), args.Error(1)
}
func (m *MockWalletLedger) Credit(ctx context.Context, userID, currency string, amount decimal.Decimal) (*domain.WalletBalance, error) {
	args := m.Called(ctx, userID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletBalance), args.Error(1)
}

var _ portssvc.WalletLedgerSvc = (*MockWalletLedger)(nil)

// --- Mock Portfolio ---
type MockPortfolio struct {
	mock.Mock
}

func (m *MockPortfolio) GetHolding(ctx context.Context, userID, symbol string) (*domain.Holding, error) {
	args := m.Called(ctx, userID, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}
func (m *MockPortfolio) GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Portfolio), args.Error(1)
}
func (m *MockPortfolio) ApplyBuy(ctx context.Context, userID, symbol, currency string, quantity, price decimal.Decimal) (*domain.Holding, error) {
	args := m.Called(ctx, userID, symbol, currency, quantity, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}
func (m *MockPortfolio) ApplySell(ctx context.Context, userID, symbol string, quantity decimal.Decimal) (*domain.Holding, error) {
	args := m.Called(ctx, userID, symbol, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}
func (m *MockPortfolio) ReverseBuy(ctx context.Context, userID, symbol string, quantity, price decimal.Decimal) (*domain.Holding, error) {
	args := m.Called(ctx, userID, symbol, quantity, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

var _ portssvc.PortfolioSvc = (*MockPortfolio)(nil)

// --- Mock TransactionJournal ---
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Append(ctx context.Context, txn domain.Transaction) (string, error) {
	args := m.Called(ctx, txn)
	return args.String(0), args.Error(1)
}
func (m *MockJournal) Query(ctx context.Context, userID string, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionPage), args.Error(1)
}

var _ portssvc.TransactionJournalSvc = (*MockJournal)(nil)

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router       *gin.Engine
	orchestrator *MockOrchestrator
	wallet       *MockWalletLedger
	portfolio    *MockPortfolio
	journal      *MockJournal
	jwtSecret    string
}

func (suite *HandlersTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "twa-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.orchestrator = new(MockOrchestrator)
	suite.wallet = new(MockWalletLedger)
	suite.portfolio = new(MockPortfolio)
	suite.journal = new(MockJournal)

	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}, &portssvc.ServiceContainer{
		Wallet:       suite.wallet,
		Portfolio:    suite.portfolio,
		Journal:      suite.journal,
		Orchestrator: suite.orchestrator,
	})
	suite.Require().NoError(err)
}

func (suite *HandlersTestSuite) do(method, url, userID string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Test Cases ---
func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestDeposit_Success() {
	suite.orchestrator.On("Deposit", mock.Anything, mock.MatchedBy(func(cmd domain.DepositCommand) bool {
		return cmd.OperationID == "op-1" && cmd.UserID == "u1" && cmd.Currency == "USD" && cmd.Amount.Equal(decimal.RequireFromString("100"))
	})).Return(&domain.WalletBalance{UserID: "u1", Currency: "USD", Balance: decimal.RequireFromString("100")}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/wallets/u1/deposit", "u1",
		map[string]string{"currency": "USD", "amount": "100.00"},
		map[string]string{handlers.IdempotencyKeyHeader: "op-1"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WalletBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("100.00", resp.Balance)
	suite.Equal("USD", resp.Currency)
	suite.orchestrator.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestDeposit_GeneratesOperationIDWithoutHeader() {
	suite.orchestrator.On("Deposit", mock.Anything, mock.MatchedBy(func(cmd domain.DepositCommand) bool {
		return cmd.OperationID != ""
	})).Return(&domain.WalletBalance{UserID: "u1", Currency: "USD", Balance: decimal.RequireFromString("5")}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/wallets/u1/deposit", "u1", map[string]any{"currency": "USD", "amount": 5}, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.orchestrator.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestDeposit_RejectsOversizedKey() {
	w := suite.do(http.MethodPost, "/api/v1/wallets/u1/deposit", "u1",
		map[string]string{"currency": "USD", "amount": "1"},
		map[string]string{handlers.IdempotencyKeyHeader: strings.Repeat("k", 256)})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", suite.decodeError(w).Code)
	suite.orchestrator.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestAuth() {
	w := suite.do(http.MethodGet, "/api/v1/wallets/u1/balances", "", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/wallets/u1/balances", "u2", nil, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/wallets/u1/balances", "", nil, map[string]string{"Authorization": "Bearer not-a-jwt"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.wallet.AssertNotCalled(suite.T(), "ListBalances", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestBindErrors() {
	tests := []struct {
		name string
		url  string
		body any
	}{
		{"missing currency", "/api/v1/wallets/u1/deposit", map[string]string{"amount": "1"}},
		{"bad currency", "/api/v1/wallets/u1/withdraw", map[string]string{"currency": "DOLLAR", "amount": "1"}},
		{"same currency exchange", "/api/v1/wallets/u1/exchange", map[string]string{"fromCurrency": "USD", "toCurrency": "USD", "amount": "1"}},
		{"unknown order type", "/api/v1/trades/u1/buy", map[string]string{"symbol": "AAPL", "currency": "USD", "orderType": "MARKET", "amount": "1"}},
		{"missing symbol", "/api/v1/trades/u1/sell", map[string]string{"currency": "USD", "orderType": "BY_QUANTITY", "quantity": "1"}},
		{"missing trade currency", "/api/v1/trades/u1/buy", map[string]string{"symbol": "AAPL", "orderType": "BY_AMOUNT", "amount": "1"}},
	}
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			w := suite.do(http.MethodPost, tc.url, "u1", tc.body, nil)
			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Equal("VALIDATION_ERROR", suite.decodeError(w).Code)
		})
	}
	suite.orchestrator.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything)
	suite.orchestrator.AssertNotCalled(suite.T(), "Buy", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"insufficient funds", fmt.Errorf("%w: balance 0.00", apperrors.ErrInsufficientFunds), http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
		{"insufficient holdings", apperrors.ErrInsufficientHoldings, http.StatusUnprocessableEntity, "INSUFFICIENT_HOLDINGS"},
		{"unknown symbol", apperrors.ErrUnknownSymbol, http.StatusNotFound, "UNKNOWN_SYMBOL"},
		{"invalid amount", apperrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"stale quote", apperrors.ErrStaleQuote, http.StatusServiceUnavailable, "STALE_QUOTE"},
		{"quote timeout", apperrors.ErrQuoteTimeout, http.StatusServiceUnavailable, "QUOTE_TIMEOUT"},
		{"in progress", apperrors.ErrOperationInProgress, http.StatusConflict, "OPERATION_IN_PROGRESS"},
		{"key reused", apperrors.ErrIdempotencyConflict, http.StatusConflict, "IDEMPOTENCY_CONFLICT"},
		{"compensation failure", fmt.Errorf("%w: refund buy debit", apperrors.ErrCompensationFailure), http.StatusInternalServerError, "COMPENSATION_FAILURE"},
		{"storage", apperrors.NewStorageError("failed to debit wallet", fmt.Errorf("conn reset")), http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.orchestrator.On("Buy", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/trades/u1/buy", "u1",
				map[string]string{"symbol": "AAPL", "currency": "USD", "orderType": "BY_AMOUNT", "amount": "50"}, nil)

			suite.Equal(tc.wantStatus, w.Code)
			resp := suite.decodeError(w)
			suite.Equal(tc.wantCode, resp.Code)
			if tc.wantCode == "INTERNAL" {
				suite.Equal("Failed to buy", resp.Error)
			}
		})
	}
}

func (suite *HandlersTestSuite) TestBuy_Success() {
	completed := time.Now().UTC()
	trade := &domain.Trade{
		TradeID:      "t1",
		UserID:       "u1",
		Symbol:       "AAPL",
		TradeType:    domain.TradeBuy,
		OrderType:    domain.OrderByAmount,
		Quantity:     decimal.RequireFromString("4.95"),
		PricePerUnit: decimal.RequireFromString("10.123456"),
		Currency:     "USD",
		TotalAmount:  decimal.RequireFromString("50"),
		Fees:         decimal.RequireFromString("0.5"),
		Status:       domain.TradeCompleted,
		CompletedAt:  &completed,
	}
	suite.orchestrator.On("Buy", mock.Anything, mock.MatchedBy(func(cmd domain.TradeCommand) bool {
		return cmd.Symbol == "aapl" && cmd.Currency == "USD" && cmd.OrderType == domain.OrderByAmount && cmd.Amount.Equal(decimal.RequireFromString("50"))
	})).Return(trade, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/trades/u1/buy", "u1",
		map[string]string{"symbol": "aapl", "currency": "USD", "orderType": "BY_AMOUNT", "amount": "50"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TradeResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("t1", resp.TradeID)
	suite.Equal("4.95", resp.Quantity)
	suite.Equal("10.123456", resp.PricePerUnit)
	suite.Equal("50.00", resp.TotalAmount)
	suite.Equal("0.50", resp.Fees)
	suite.Equal(domain.TradeCompleted, resp.Status)
	suite.orchestrator.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestGetTrade() {
	suite.orchestrator.On("GetTrade", mock.Anything, "u1", "missing").Return(nil, apperrors.ErrNotFound).Once()
	w := suite.do(http.MethodGet, "/api/v1/trades/u1/missing", "u1", nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.orchestrator.On("GetTrade", mock.Anything, "u1", "t1").Return(&domain.Trade{TradeID: "t1", Status: domain.TradeFailed, FailureReason: "insufficient balance"}, nil).Once()
	w = suite.do(http.MethodGet, "/api/v1/trades/u1/t1", "u1", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TradeResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.TradeFailed, resp.Status)
	suite.Equal("insufficient balance", resp.FailureReason)
}

func (suite *HandlersTestSuite) TestExchange_Success() {
	suite.orchestrator.On("Exchange", mock.Anything, mock.MatchedBy(func(cmd domain.ExchangeCommand) bool {
		return cmd.FromCurrency == "USD" && cmd.ToCurrency == "EUR"
	})).Return(&domain.ExchangeResult{
		FromBalance:     domain.WalletBalance{UserID: "u1", Currency: "USD"},
		ToBalance:       domain.WalletBalance{UserID: "u1", Currency: "EUR", Balance: decimal.RequireFromString("91.54")},
		DebitedAmount:   decimal.RequireFromString("100"),
		ConvertedAmount: decimal.RequireFromString("92"),
		CreditedAmount:  decimal.RequireFromString("91.54"),
		ExchangeRate:    decimal.RequireFromString("0.92"),
		Fee:             decimal.RequireFromString("0.46"),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/wallets/u1/exchange", "u1",
		map[string]string{"fromCurrency": "USD", "toCurrency": "EUR", "amount": "100"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("0.920000", resp.ExchangeRate)
	suite.Equal("91.54", resp.CreditedAmount)
	suite.Equal("91.54", resp.ToBalance.Balance)
}

func (suite *HandlersTestSuite) TestListBalances() {
	suite.wallet.On("ListBalances", mock.Anything, "u1").Return([]domain.WalletBalance{
		{UserID: "u1", Currency: "EUR", Balance: decimal.RequireFromString("3.5")},
		{UserID: "u1", Currency: "USD", Balance: decimal.RequireFromString("10")},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/wallets/u1/balances", "u1", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListBalancesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Balances, 2)
	suite.Equal("3.50", resp.Balances[0].Balance)
}

func (suite *HandlersTestSuite) TestGetPortfolio() {
	p := domain.NewPortfolio("u1", []domain.Holding{
		{UserID: "u1", Symbol: "AAPL", Quantity: decimal.RequireFromString("4.95"), AveragePrice: decimal.RequireFromString("10"), Currency: "USD"},
	})
	suite.portfolio.On("GetPortfolio", mock.Anything, "u1").Return(&p, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/portfolios/u1", "u1", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PortfolioResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Holdings, 1)
	suite.Equal("49.50", resp.Holdings[0].Value)
	suite.Equal("10.000000", resp.Holdings[0].AveragePrice)
	suite.Equal("49.50", resp.Totals["USD"])
}

func (suite *HandlersTestSuite) TestListTransactions() {
	next := "cursor"
	suite.journal.On("Query", mock.Anything, "u1", mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Limit == 10 && f.Type != nil && *f.Type == domain.TransactionBuy && f.NextToken != nil && *f.NextToken == "abc"
	})).Return(&domain.TransactionPage{
		Transactions: []domain.Transaction{{TransactionID: "x1", Type: domain.TransactionBuy, Currency: "USD", Amount: decimal.RequireFromString("50"), Fees: decimal.RequireFromString("0.5")}},
		NextToken:    &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/u1?type=BUY&limit=10&nextToken=abc", "u1", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("50.00", resp.Transactions[0].Amount)
	suite.Equal("0.50", resp.Transactions[0].Fees)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("cursor", *resp.NextToken)
	suite.journal.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestListTransactions_BadQuery() {
	w := suite.do(http.MethodGet, "/api/v1/transactions/u1?limit=500", "u1", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/transactions/u1?type=REFUND", "u1", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.journal.On("Query", mock.Anything, "u1", mock.Anything).Return(nil, apperrors.NewValidationError("invalid pagination token")).Once()
	w = suite.do(http.MethodGet, "/api/v1/transactions/u1?nextToken=garbage", "u1", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
