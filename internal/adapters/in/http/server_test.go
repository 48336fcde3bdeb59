package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apihttp "github.com/alanbulan/EcoLoop/internal/adapters/in/http"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/memory"
	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/account"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/material"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "dispatch-42"
)

type accountUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a accountUoWFactory) Create() commands.AccountUoW { return a.f.Create() }

type orderUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a orderUoWFactory) Create() commands.OrderUoW { return a.f.Create() }

type scheduleUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a scheduleUoWFactory) Create() commands.ScheduleUoW { return a.f.Create() }

type settlementUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a settlementUoWFactory) Create() commands.SettlementUoW { return a.f.Create() }

type withdrawalUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a withdrawalUoWFactory) Create() commands.WithdrawalUoW { return a.f.Create() }

type testEnv struct {
	e       *echo.Echo
	store   *memory.Store
	factory *memory.UnitOfWorkFactory
	tokens  apihttp.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	tokens := apihttp.NewTokenIssuer("test-secret", time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	handlers := apihttp.Handlers{
		SignIn:            commands.NewSignInCommandHandler(accountUoWFactory{factory}),
		CreateOrder:       commands.NewCreateOrderCommandHandler(orderUoWFactory{factory}),
		AssignOrder:       commands.NewAssignOrderCommandHandler(scheduleUoWFactory{factory}),
		ClaimOrder:        commands.NewClaimOrderCommandHandler(scheduleUoWFactory{factory}),
		CompleteOrder:     commands.NewCompleteOrderCommandHandler(settlementUoWFactory{factory}),
		CancelOrder:       commands.NewCancelOrderCommandHandler(orderUoWFactory{factory}),
		RequestWithdrawal: commands.NewRequestWithdrawalCommandHandler(withdrawalUoWFactory{factory}),
		ReviewWithdrawal:  commands.NewReviewWithdrawalCommandHandler(withdrawalUoWFactory{factory}),
	}
	readers := apihttp.Readers{
		Orders:           memory.NewOrdersQueryHandler(store),
		OrderTimeline:    memory.NewOrderTimelineQueryHandler(store),
		Withdrawals:      memory.NewWithdrawalsQueryHandler(store),
		Materials:        memory.NewMaterialsQueryHandler(store),
		Notifications:    memory.NewNotificationsQueryHandler(store),
		Stats:            memory.NewStatsQueryHandler(store),
		AuditLog:         memory.NewAuditLogQueryHandler(store),
		CollectorProfile: memory.NewCollectorProfileQueryHandler(store),
		Config:           memory.NewConfigQueryHandler(store),
	}

	server := apihttp.NewServer(handlers, readers, tokens, apihttp.AdminCredentials{
		Username:     testAdminUser,
		PasswordHash: string(hash),
	})

	e := echo.New()
	server.RegisterRoutes(e)

	return &testEnv{e: e, store: store, factory: factory, tokens: tokens}
}

func (env *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedMaterial(t *testing.T) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	m, err := material.NewMaterial(id, "Aluminium cans", "Metal", 4.20, 4.50)
	require.NoError(t, err)

	ctx := context.Background()
	uow := env.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.MaterialRepository().Add(ctx, m))
	require.NoError(t, uow.Commit(ctx))
	return id
}

// seedCollector registers an account with a collector profile and returns a
// token carrying the collector claim.
func (env *testEnv) seedCollector(t *testing.T, name string) (kernel.UUID, string) {
	t.Helper()

	ctx := context.Background()
	accountID := kernel.NewUUID()
	acc, err := account.NewAccount(accountID, "oid-"+name, name)
	require.NoError(t, err)

	collectorID := kernel.NewUUID()
	col, err := collector.NewCollector(collectorID, name, "555-0100", &accountID)
	require.NoError(t, err)

	uow := env.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.AccountRepository().Add(ctx, acc))
	require.NoError(t, uow.CollectorRepository().Add(ctx, col))
	require.NoError(t, uow.Commit(ctx))

	token, err := env.tokens.Issue(accountID, apihttp.RoleUser, &collectorID)
	require.NoError(t, err)
	return collectorID, token
}

func (env *testEnv) loginUser(t *testing.T, code string) (string, string) {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/auth/login", "", map[string]string{"code": code})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token     string `json:"token"`
		AccountID string `json:"account_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.AccountID
}

func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/admin/login", "", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (env *testEnv) createOrder(t *testing.T, token string, materialID kernel.UUID) string {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/api/v1/orders", token, map[string]string{
		"material_id":   materialID.String(),
		"address":       "7 Harbor Way",
		"contact_phone": "555-0123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestLogin_SameCodeResolvesToSameAccount(t *testing.T) {
	env := newTestEnv(t)

	_, first := env.loginUser(t, "wx-code-1")
	_, again := env.loginUser(t, "wx-code-1")
	_, other := env.loginUser(t, "wx-code-2")

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/admin/login", "", map[string]string{
		"username": testAdminUser,
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrders_RequireBearerToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/orders", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_ShowsUpInOwnList(t *testing.T) {
	env := newTestEnv(t)
	materialID := env.seedMaterial(t)
	token, accountID := env.loginUser(t, "booking-user")

	orderID := env.createOrder(t, token, materialID)

	rec := env.request(t, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Equal(t, accountID, orders[0].UserID)
	assert.Equal(t, "pending", orders[0].Status)
}

func TestClaimOrder_SecondClaimerGetsAlreadyClaimed(t *testing.T) {
	env := newTestEnv(t)
	materialID := env.seedMaterial(t)
	userToken, _ := env.loginUser(t, "booking-user")
	orderID := env.createOrder(t, userToken, materialID)

	_, tokenA := env.seedCollector(t, "collector-a")
	_, tokenB := env.seedCollector(t, "collector-b")

	rec := env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/claim", tokenA, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/claim", tokenB, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "already claimed", resp.Message)

	// The loser's refetched open pool no longer offers the order.
	rec = env.request(t, http.MethodGet, "/api/v1/orders?view=open", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pool []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pool))
	assert.Empty(t, pool)
}

func TestClaimOrder_WithoutCollectorProfile(t *testing.T) {
	env := newTestEnv(t)
	materialID := env.seedMaterial(t)
	token, _ := env.loginUser(t, "plain-user")
	orderID := env.createOrder(t, token, materialID)

	rec := env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/claim", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAssignOrder_RequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)
	materialID := env.seedMaterial(t)
	userToken, _ := env.loginUser(t, "booking-user")
	orderID := env.createOrder(t, userToken, materialID)

	collectorID, _ := env.seedCollector(t, "collector-a")

	rec := env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/assign", userToken,
		map[string]string{"collector_id": collectorID.String()})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/assign", env.adminToken(t),
		map[string]string{"collector_id": collectorID.String()})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCancelOrder_OnlyOwner(t *testing.T) {
	env := newTestEnv(t)
	materialID := env.seedMaterial(t)
	ownerToken, _ := env.loginUser(t, "owner")
	strangerToken, _ := env.loginUser(t, "stranger")
	orderID := env.createOrder(t, ownerToken, materialID)

	rec := env.request(t, http.MethodDelete, "/api/v1/orders/"+orderID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodDelete, "/api/v1/orders/"+orderID, ownerToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCompleteOrder_SettlesAndFillsTimeline(t *testing.T) {
	env := newTestEnv(t)
	materialID := env.seedMaterial(t)
	userToken, _ := env.loginUser(t, "booking-user")
	orderID := env.createOrder(t, userToken, materialID)

	_, collectorToken := env.seedCollector(t, "collector-a")

	rec := env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/claim", collectorToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/complete", collectorToken,
		map[string]float64{"actual_weight": 10, "impurity_percent": 0})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID+"/timeline", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var steps []struct {
		Label string `json:"label"`
		Done  bool   `json:"done"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &steps))
	require.Len(t, steps, 3)
	for _, step := range steps {
		assert.True(t, step.Done, step.Label)
	}
}

func TestWithdrawalFlow_RequestRejectRefunds(t *testing.T) {
	env := newTestEnv(t)
	materialID := env.seedMaterial(t)
	userToken, _ := env.loginUser(t, "booking-user")
	orderID := env.createOrder(t, userToken, materialID)

	_, collectorToken := env.seedCollector(t, "collector-a")
	rec := env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/claim", collectorToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.request(t, http.MethodPut, "/api/v1/orders/"+orderID+"/complete", collectorToken,
		map[string]float64{"actual_weight": 10, "impurity_percent": 0})
	require.Equal(t, http.StatusNoContent, rec.Code)

	// 10kg at 4.20 settles 42.00 to the user's balance.
	rec = env.request(t, http.MethodPost, "/api/v1/withdrawals", userToken, map[string]any{
		"amount":  20.0,
		"channel": "wechat",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	adminToken := env.adminToken(t)
	rec = env.request(t, http.MethodPost, "/api/v1/withdrawals/"+created.ID+"/reject", adminToken,
		map[string]string{"reason": "account details mismatch"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/withdrawals", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var withdrawals []struct {
		Status       string  `json:"status"`
		Amount       float64 `json:"amount"`
		RejectReason string  `json:"reject_reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &withdrawals))
	require.Len(t, withdrawals, 1)
	assert.Equal(t, "rejected", withdrawals[0].Status)
	assert.Equal(t, "account details mismatch", withdrawals[0].RejectReason)

	// Refund restores the debited balance, so the login snapshot shows 42.
	rec = env.request(t, http.MethodPost, "/auth/login", "", map[string]string{"code": "booking-user"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.InDelta(t, 42.0, login.Balance, 0.001)
}

func TestAdminStats_RequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	userToken, _ := env.loginUser(t, "plain-user")

	rec := env.request(t, http.MethodGet, "/api/v1/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/admin/stats", env.adminToken(t), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_CollectorProfileYieldsCollectorID(t *testing.T) {
	env := newTestEnv(t)

	// First login registers the account; the collector profile is linked
	// afterwards, so the second login picks it up.
	_, accountIDRaw := env.loginUser(t, "rider")
	accountID, err := kernel.UUIDFromString(accountIDRaw)
	require.NoError(t, err)

	ctx := context.Background()
	collectorID := kernel.NewUUID()
	col, err := collector.NewCollector(collectorID, "Rider", "555-0100", &accountID)
	require.NoError(t, err)

	uow := env.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.CollectorRepository().Add(ctx, col))
	require.NoError(t, uow.Commit(ctx))

	rec := env.request(t, http.MethodPost, "/auth/login", "", map[string]string{"code": "rider"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CollectorID *string `json:"collector_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.CollectorID)
	assert.Equal(t, collectorID.String(), *resp.CollectorID)
}

func TestConfig_ServedWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/config/about_page", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var about struct {
		AppName string `json:"app_name"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &about))
	assert.Equal(t, "EcoLoop", about.AppName)
	assert.NotEmpty(t, about.Version)
}

func TestConfig_StoredOverrideReplacesDefault(t *testing.T) {
	env := newTestEnv(t)
	env.store.SetConfig("about_page",
		`{"version":"2.0.0","app_name":"EcoLoop","copyright":"Copyright","links":[],"theme":"dark"}`)

	rec := env.request(t, http.MethodGet, "/api/v1/config/about_page", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var about struct {
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &about))
	assert.Equal(t, "2.0.0", about.Version)
}

func TestConfig_UnknownNamespaceIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/config/checkout_page", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfig_CombinedEndpointCoversEverySurface(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/config", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	for _, namespace := range []string{"home_page", "profile_page", "collector_home", "about_page"} {
		assert.Contains(t, all, namespace)
	}
}
