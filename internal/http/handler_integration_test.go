//go:build integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quantity-service/internal/circuitbreaker"
	"github.com/guttosm/quantity-service/internal/domain/dto"
	"github.com/guttosm/quantity-service/internal/domain/model"
	"github.com/guttosm/quantity-service/internal/repository"
	"github.com/guttosm/quantity-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupIntegrationRouter() *gin.Engine {
	registry := service.NewRegistryService(nil, nil)
	handler := NewHandler(registry)
	healthHandler := NewHealthHandler()

	cfg := RouterConfig{
		RateLimit:  100,
		RateWindow: time.Second,
		EnableAuth: false,
	}

	return NewRouter(handler, healthHandler, cfg)
}

func integrationCreateLine(t *testing.T, router *gin.Engine, body string) model.SelectorSnapshot {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/selectors", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	dataBytes, _ := json.Marshal(response.Data)
	var snap model.SelectorSnapshot
	require.NoError(t, json.Unmarshal(dataBytes, &snap))
	return snap
}

func TestIntegration_SelectorLifecycle_AllScenarios(t *testing.T) {
	router := setupIntegrationRouter()

	testCases := []struct {
		name          string
		createBody    string
		operations    []struct{ method, path, body string }
		expectedValue int
	}{
		{
			name:          "step up from initial",
			createBody:    `{"min": 1, "max": 10, "step": 1, "initial_value": 1}`,
			operations:    []struct{ method, path, body string }{{http.MethodPost, "/step", `{"direction": 1}`}},
			expectedValue: 2,
		},
		{
			name:       "step clamps at max",
			createBody: `{"min": 1, "max": 3, "step": 1, "initial_value": 3}`,
			operations: []struct{ method, path, body string }{
				{http.MethodPost, "/step", `{"direction": 1}`},
			},
			expectedValue: 3,
		},
		{
			name:       "manual entry aligned to step",
			createBody: `{"min": 2, "max": 20, "step": 2, "initial_value": 2}`,
			operations: []struct{ method, path, body string }{
				{http.MethodPut, "/value", `{"value": "8"}`},
			},
			expectedValue: 8,
		},
		{
			name:       "garbage entry clamps to min",
			createBody: `{"min": 3, "max": 30, "step": 3, "initial_value": 6}`,
			operations: []struct{ method, path, body string }{
				{http.MethodPut, "/value", `{"value": "abc"}`},
			},
			expectedValue: 3,
		},
		{
			name:       "case stepper moves whole packs",
			createBody: `{"min": 0, "max": 60, "step": 1, "pack_size": 6, "initial_value": 6}`,
			operations: []struct{ method, path, body string }{
				{http.MethodPost, "/step", `{"direction": 1, "unit": "case"}`},
			},
			expectedValue: 12,
		},
		{
			name:       "constraint change re-clamps value",
			createBody: `{"min": 1, "max": 100, "step": 1, "initial_value": 50}`,
			operations: []struct{ method, path, body string }{
				{http.MethodPost, "/constraints", `{"min": 1, "max": 10, "step": 1}`},
			},
			expectedValue: 10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snap := integrationCreateLine(t, router, tc.createBody)

			var last *httptest.ResponseRecorder
			for _, op := range tc.operations {
				req := httptest.NewRequest(op.method, "/api/selectors/"+snap.LineID+op.path, bytes.NewBufferString(op.body))
				req.Header.Set("Content-Type", "application/json")
				last = httptest.NewRecorder()
				router.ServeHTTP(last, req)
				require.Equal(t, http.StatusOK, last.Code, last.Body.String())
			}

			var response dto.SuccessResponse
			require.NoError(t, json.Unmarshal(last.Body.Bytes(), &response))
			dataBytes, _ := json.Marshal(response.Data)
			var result model.SelectorSnapshot
			require.NoError(t, json.Unmarshal(dataBytes, &result))

			assert.Equal(t, tc.expectedValue, result.Value)
			assert.Equal(t, result.Value, result.InputValue)
			assert.GreaterOrEqual(t, result.Value, result.Constraints.Min)
		})
	}
}

func TestIntegration_RateLimiting(t *testing.T) {
	registry := service.NewRegistryService(nil, nil)
	handler := NewHandler(registry)
	healthHandler := NewHealthHandler()

	cfg := RouterConfig{
		RateLimit:  5,
		RateWindow: time.Second,
	}

	router := NewRouter(handler, healthHandler, cfg)

	body := []byte(`{"min": 1, "max": 10, "step": 1, "initial_value": 1}`)

	// Make requests up to rate limit
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/selectors", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code, "Request %d", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/selectors", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestIntegration_APIKeyAuth(t *testing.T) {
	registry := service.NewRegistryService(nil, nil)
	handler := NewHandler(registry)
	healthHandler := NewHealthHandler()

	cfg := RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
		EnableAuth: true,
		APIKeys:    map[string]bool{"valid-key": true},
	}

	router := NewRouter(handler, healthHandler, cfg)

	body := []byte(`{"min": 1, "max": 10, "step": 1, "initial_value": 1}`)

	t.Run("missing API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/selectors", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/selectors", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", "invalid-key")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid API key in header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/selectors", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", "valid-key")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("valid API key in query param", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/selectors?api_key=valid-key", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("health endpoints bypass auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func setupSelectorWithMongoDBIntegrationRouter(dbName string) (*gin.Engine, *repository.MongoDB) {
	gin.SetMode(gin.TestMode)

	uri := getSharedContainerURI()
	db, err := repository.NewMongoDB(uri, dbName)
	if err != nil {
		panic(err)
	}

	logsRepo := repository.NewLogsRepository(db)
	logsCB := circuitbreaker.New(circuitbreaker.DefaultConfig())
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	profilesRepo := repository.NewProfilesRepository(db)
	profilesCB := circuitbreaker.New(circuitbreaker.DefaultConfig())
	profilesRepoWithCB := repository.NewProfilesRepositoryWithCircuitBreaker(profilesRepo, profilesCB)
	profileCache := service.NewShardedCache(100, 5*time.Minute, 4)
	profilesService := service.NewProfilesService(profilesRepoWithCB, profileCache)

	cartRepo := repository.NewCartRepository(db)
	cartCB := circuitbreaker.New(circuitbreaker.DefaultConfig())
	cartRepoWithCB := repository.NewCartRepositoryWithCircuitBreaker(cartRepo, cartCB)

	registry := service.NewRegistryService(profilesService, cartRepoWithCB)
	handler := NewHandler(registry)
	healthHandler := NewHealthHandler()

	cfg := RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		EnableAuth:     false,
		LoggingService: loggingService,
	}

	return NewRouter(handler, healthHandler, cfg), db
}

func TestHandler_Selectors_WithMongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	// Use shared container with unique database name
	dbName := sanitizeDBNameForHTTP(t.Name())
	router, db := setupSelectorWithMongoDBIntegrationRouter(dbName)
	defer func() {
		_ = db.Close(ctx)
	}()

	t.Run("create with constraint profile from MongoDB", func(t *testing.T) {
		repo := repository.NewProfilesRepository(db)
		_, upsertErr := repo.Upsert(ctx, repository.ConstraintProfile{
			ProductID: "sku-beer-sixpack",
			Min:       2,
			Max:       12,
			Step:      2,
			PackSize:  6,
		})
		require.NoError(t, upsertErr)

		snap := integrationCreateLine(t, router, `{"product_id": "sku-beer-sixpack"}`)

		assert.Equal(t, "sku-beer-sixpack", snap.ProductID)
		assert.Equal(t, 2, snap.Constraints.Min)
		assert.Equal(t, 12, snap.Constraints.Max)
		assert.Equal(t, 2, snap.Constraints.Step)
		// No initial value given: engine clamps up to the profile min.
		assert.Equal(t, 2, snap.Value)
	})

	t.Run("inline constraints when no profile exists", func(t *testing.T) {
		snap := integrationCreateLine(t, router, `{"product_id": "sku-unprofiled", "min": 1, "max": 5, "step": 1, "initial_value": 3}`)

		assert.Equal(t, 1, snap.Constraints.Min)
		assert.Equal(t, 5, snap.Constraints.Max)
		assert.Equal(t, 3, snap.Value)
	})

	t.Run("cart sync persists committed quantity", func(t *testing.T) {
		snap := integrationCreateLine(t, router, `{"product_id": "sku-cart", "min": 1, "max": 20, "step": 1, "initial_value": 10}`)

		body := []byte(`{"quantity": 4}`)
		req := httptest.NewRequest(http.MethodPut, "/api/cart/sku-cart", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Quantity is stored in MongoDB
		cartRepo := repository.NewCartRepository(db)
		stored, err := cartRepo.Get(ctx, "sku-cart")
		require.NoError(t, err)
		assert.Equal(t, 4, stored)

		// Committed shows up in the line snapshot
		getReq := httptest.NewRequest(http.MethodGet, "/api/selectors/"+snap.LineID, nil)
		getW := httptest.NewRecorder()
		router.ServeHTTP(getW, getReq)
		require.Equal(t, http.StatusOK, getW.Code)

		var response dto.SuccessResponse
		require.NoError(t, json.Unmarshal(getW.Body.Bytes(), &response))
		dataBytes, _ := json.Marshal(response.Data)
		var after model.SelectorSnapshot
		require.NoError(t, json.Unmarshal(dataBytes, &after))
		assert.Equal(t, 4, after.Committed)
	})

	t.Run("new line seeds committed from cart store", func(t *testing.T) {
		cartRepo := repository.NewCartRepository(db)
		require.NoError(t, cartRepo.Set(ctx, "sku-seeded", 3))

		snap := integrationCreateLine(t, router, `{"product_id": "sku-seeded", "min": 1, "max": 10, "step": 1, "initial_value": 1}`)

		assert.Equal(t, 3, snap.Committed)
	})
}

func TestHandler_Selectors_WithLogging_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database name
	dbName := sanitizeDBNameForHTTP(t.Name())
	router, db := setupSelectorWithMongoDBIntegrationRouter(dbName)
	defer func() {
		_ = db.Close(ctx)
	}()

	t.Run("request creates log entry", func(t *testing.T) {
		body := []byte(`{"min": 1, "max": 10, "step": 1, "initial_value": 1}`)
		req := httptest.NewRequest(http.MethodPost, "/api/selectors", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		time.Sleep(100 * time.Millisecond)

		logsRepo := repository.NewLogsRepository(db)
		opts := repository.LogQueryOptions{
			Path: "/api/selectors",
		}
		logs, err := logsRepo.Query(ctx, opts)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(logs), 1)
	})
}
