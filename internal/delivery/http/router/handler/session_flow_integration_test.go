package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fieldops/config"
	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/router"
	"fieldops/internal/delivery/http/router/handler"
	"fieldops/internal/delivery/http/validator"
	"fieldops/internal/domain/service"
	"fieldops/internal/infra/auth"
	"fieldops/internal/infra/catalog"
	"fieldops/internal/infra/identity/local"
	"fieldops/internal/infra/persistence/memory"
	"fieldops/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPublisher struct{}

func (nopPublisher) PublishFieldEvent(_ context.Context, _ *service.FieldEvent) error { return nil }

func (nopPublisher) Close() error { return nil }

// newTestServer wires the full HTTP stack on in-memory stores and the local
// identity provider, and returns a signed-in field officer credential.
func newTestServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	cfg := &config.Config{}
	cfg.SecretKey.Access = "integration-test-secret"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(6)
	identity := local.NewProvider(hasher)
	_, err = identity.SignUp("asha@example.com", "Asha Patel", "s3cret", "")
	require.NoError(t, err)
	credential, err := identity.SignIn("asha@example.com", "s3cret")
	require.NoError(t, err)

	profileStore := memory.NewProfileRepository()
	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    memory.NewTransactionManager(profileStore),
		ProfileRepo:  profileStore,
		Identity:     identity,
		TokenService: tokenService,
		Config:       cfg,
		Logger:       logger,
	})

	meetingRepo := memory.NewMeetingRepository()
	sampleRepo := memory.NewSampleRepository()
	saleRepo := memory.NewSaleRepository()
	dailyLogRepo := memory.NewDailyLogRepository()
	activityUsecase := impl.NewActivityService(impl.ActivityServiceParams{
		MeetingRepo:  meetingRepo,
		SampleRepo:   sampleRepo,
		SaleRepo:     saleRepo,
		DailyLogRepo: dailyLogRepo,
		Publisher:    nopPublisher{},
		Logger:       logger,
	})

	products := catalog.New(cfg)
	analyticsUsecase := impl.NewAnalyticsService(impl.AnalyticsServiceParams{
		ProfileRepo:  profileStore,
		MeetingRepo:  meetingRepo,
		SampleRepo:   sampleRepo,
		SaleRepo:     saleRepo,
		DailyLogRepo: dailyLogRepo,
		Catalog:      products,
		Logger:       logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	router.NewRouter(router.RouterParams{
		AuthHandler:       handler.NewAuthHandler(authUsecase, logger),
		CredentialHandler: handler.NewCredentialHandler(identity, logger),
		ActivityHandler:   handler.NewActivityHandler(activityUsecase, logger),
		AnalyticsHandler:  handler.NewAnalyticsHandler(analyticsUsecase, products, logger),
		AuthMiddleware:    middleware.NewAuthMiddleware(tokenService, authUsecase),
	}).RegisterRoutes(e)

	return e, credential
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestSessionFlow_Integration(t *testing.T) {
	e, credential := newTestServer(t)

	// Signup as a field officer.
	rec := doJSON(e, http.MethodPost, "/auth/signup", "",
		`{"credential":"`+credential+`","name":"Asha Patel","role":"field_officer","state":"Maharashtra","district":"Pune"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var signup struct {
		Data struct {
			AccessToken string `json:"accessToken"`
			LandingPath string `json:"landingPath"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))
	assert.Equal(t, "/field", signup.Data.LandingPath)
	require.NotEmpty(t, signup.Data.AccessToken)
	token := signup.Data.AccessToken

	// The resolved session carries the stored profile.
	rec = doJSON(e, http.MethodGet, "/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maharashtra")

	// Field routes are reachable with the minted token.
	rec = doJSON(e, http.MethodPost, "/field/meetings", token,
		`{"type":"group","group":{"villageName":"Wagholi","attendeeCount":12,"format":"demo day"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/field/meetings", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wagholi")

	// Admin routes reject the field officer and advise their landing area.
	rec = doJSON(e, http.MethodGet, "/admin/overview", token, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/field"`)

	// Missing token is unauthenticated, not forbidden.
	rec = doJSON(e, http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// registerAndSignup provisions an account through the credential endpoints
// and signs it up under the given role, returning the app token.
func registerAndSignup(t *testing.T, e *echo.Echo, email, name, role string) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/auth/register", "",
		`{"email":"`+email+`","name":"`+name+`","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var register struct {
		Data struct {
			Credential string `json:"credential"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &register))
	require.NotEmpty(t, register.Data.Credential)

	rec = doJSON(e, http.MethodPost, "/auth/signup", "",
		`{"credential":"`+register.Data.Credential+`","name":"`+name+`","role":"`+role+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var signup struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))
	require.NotEmpty(t, signup.Data.AccessToken)

	return signup.Data.AccessToken
}

func TestSessionFlow_CredentialEndpoints(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", "",
		`{"email":"ravi@example.com","name":"Ravi Kumar","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Duplicate registration conflicts.
	rec = doJSON(e, http.MethodPost, "/auth/register", "",
		`{"email":"ravi@example.com","name":"Ravi Kumar","password":"s3cret"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A wrong password does not issue a credential.
	rec = doJSON(e, http.MethodPost, "/auth/credentials", "",
		`{"email":"ravi@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A fresh credential feeds the regular signup flow.
	rec = doJSON(e, http.MethodPost, "/auth/credentials", "",
		`{"email":"ravi@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var issued struct {
		Data struct {
			Credential string `json:"credential"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	rec = doJSON(e, http.MethodPost, "/auth/signup", "",
		`{"credential":"`+issued.Data.Credential+`","name":"Ravi Kumar","role":"field_officer"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestSessionFlow_WriteRoutesAreRoleScoped(t *testing.T) {
	e, _ := newTestServer(t)

	adminToken := registerAndSignup(t, e, "admin@example.com", "Meera Nair", "admin")

	// The admin area is read-only; field writes belong to field officers.
	rec := doJSON(e, http.MethodPost, "/field/meetings", adminToken,
		`{"type":"group","group":{"villageName":"Wagholi","attendeeCount":5,"format":"demo day"}}`)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/field/days", adminToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodPost, "/distributor/sales", adminToken,
		`{"type":"B2C","productSku":"bio-npk","quantity":1,"mode":"direct","amount":"450"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin reads still work.
	rec = doJSON(e, http.MethodGet, "/admin/overview", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSessionFlow_DistributorSamples(t *testing.T) {
	e, _ := newTestServer(t)

	token := registerAndSignup(t, e, "dinesh@example.com", "Dinesh Rao", "distributor")

	rec := doJSON(e, http.MethodPost, "/distributor/samples", token,
		`{"productSku":"bio-npk","quantity":2.5,"recipientName":"Kisan Agro","recipientType":"retailer","purpose":"trial"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/distributor/samples", token,
		`{"productSku":"bio-npk","quantity":1.5,"recipientName":"Patil Traders","recipientType":"retailer","purpose":"demo"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/distributor/samples", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kisan Agro")

	// The inventory rollup sums quantities per product.
	rec = doJSON(e, http.MethodGet, "/distributor/stats/samples", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"sku":"bio-npk"`)
	assert.Contains(t, rec.Body.String(), `"quantity":4`)
	assert.Contains(t, rec.Body.String(), `"handouts":2`)
}

func TestSessionFlow_ZeroCoordinatesAccepted(t *testing.T) {
	e, _ := newTestServer(t)

	token := registerAndSignup(t, e, "null@example.com", "Null Island", "field_officer")

	// 0°N 0°E is a valid position and must not be rejected as missing.
	rec := doJSON(e, http.MethodPost, "/field/meetings", token,
		`{"type":"group","location":{"lat":0,"lng":0},"group":{"villageName":"Null Island","attendeeCount":1,"format":"demo day"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Out-of-range coordinates still fail.
	rec = doJSON(e, http.MethodPost, "/field/meetings", token,
		`{"type":"group","location":{"lat":91,"lng":0},"group":{"villageName":"Nowhere","attendeeCount":1,"format":"demo day"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestSessionFlow_LoginRoleMismatch(t *testing.T) {
	e, credential := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/signup", "",
		`{"credential":"`+credential+`","name":"Asha Patel","role":"field_officer"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Logging in under another role fails and revokes the credential.
	rec = doJSON(e, http.MethodPost, "/auth/login", "",
		`{"credential":"`+credential+`","role":"admin"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "ROLE_MISMATCH")

	rec = doJSON(e, http.MethodPost, "/auth/login", "", `{"credential":"`+credential+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}
