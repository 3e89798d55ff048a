package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/auth"
	"github.com/mamadbah2/agripoulet/internal/domain/models"
	filerepo "github.com/mamadbah2/agripoulet/internal/repository/file"
	"github.com/mamadbah2/agripoulet/internal/server/handlers"
	productionsvc "github.com/mamadbah2/agripoulet/internal/service/production"
	reportingsvc "github.com/mamadbah2/agripoulet/internal/service/reporting"
	salessvc "github.com/mamadbah2/agripoulet/internal/service/sales"
	securitysvc "github.com/mamadbah2/agripoulet/internal/service/security"
	stocksvc "github.com/mamadbah2/agripoulet/internal/service/stock"
	"github.com/mamadbah2/agripoulet/internal/store"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	repo, err := filerepo.New(filepath.Join(t.TempDir(), "doc.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("file repository: %v", err)
	}
	st, err := store.Open(context.Background(), repo, 0, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(st.Close)

	tokens := auth.NewJWTManager("test-secret", time.Hour, "agripoulet")

	return New(Handlers{
		Auth:       handlers.NewAuthHandler(securitysvc.NewService(st, tokens, zap.NewNop()), zap.NewNop()),
		Production: handlers.NewProductionHandler(productionsvc.NewService(st, zap.NewNop()), zap.NewNop()),
		Stock:      handlers.NewStockHandler(stocksvc.NewService(st, zap.NewNop()), zap.NewNop()),
		Sales:      handlers.NewSalesHandler(salessvc.NewService(st, zap.NewNop()), zap.NewNop()),
		Reports:    handlers.NewReportsHandler(reportingsvc.NewService(st, nil, zap.NewNop()), zap.NewNop()),
	}, tokens, zap.NewNop())
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, engine *gin.Engine, role, code string) string {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{"role": role, "code": code})
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s: status %d body %s", role, rec.Code, rec.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func TestHealthz(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLoginStatuses(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"employee", gin.H{"role": "employee"}, http.StatusOK},
		{"admin with default code", gin.H{"role": "admin", "code": models.DefaultAdminSecret}, http.StatusOK},
		{"admin with wrong code", gin.H{"role": "admin", "code": "0000"}, http.StatusForbidden},
		{"unknown role", gin.H{"role": "owner"}, http.StatusBadRequest},
		{"missing role", gin.H{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/production/batches", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/production/batches", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status with bad token = %d, want 401", rec.Code)
	}
}

func TestEmployeeCanRecordButNotClose(t *testing.T) {
	engine := newTestEngine(t)
	token := login(t, engine, "employee", "")

	rec := doJSON(t, engine, http.MethodPost, "/api/production/batches", token, gin.H{
		"nom":               "Bande A",
		"dateMisePlace":     "2025-01-01",
		"nbPoussinsInitial": 100,
		"prixAchatPoussin":  500,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body %s", rec.Code, rec.Body)
	}
	var batch models.ProductionBatch
	if err := json.Unmarshal(rec.Body.Bytes(), &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/production/batches/"+batch.ID+"/days", token, gin.H{
		"date": "2025-01-05",
		"mort": 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("record day status = %d body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/production/batches/"+batch.ID+"/close", token, gin.H{"prixKg": 2500})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("employee close status = %d, want 403", rec.Code)
	}
}

func TestAdminCanCloseBatch(t *testing.T) {
	engine := newTestEngine(t)
	employee := login(t, engine, "employee", "")
	admin := login(t, engine, "admin", models.DefaultAdminSecret)

	rec := doJSON(t, engine, http.MethodPost, "/api/production/batches", employee, gin.H{
		"nom":               "Bande A",
		"dateMisePlace":     "2025-01-01",
		"nbPoussinsInitial": 100,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body %s", rec.Code, rec.Body)
	}
	var batch models.ProductionBatch
	if err := json.Unmarshal(rec.Body.Bytes(), &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/production/batches/"+batch.ID+"/close", admin, gin.H{"prixKg": 2500})
	if rec.Code != http.StatusOK {
		t.Fatalf("close status = %d body %s", rec.Code, rec.Body)
	}
	var resp struct {
		ProductionBatch models.ProductionBatch `json:"productionBatch"`
		StockBatch      models.StockBatch      `json:"stockBatch"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode close response: %v", err)
	}
	if resp.ProductionBatch.Status != models.BatchClosed {
		t.Fatalf("status = %s, want closed", resp.ProductionBatch.Status)
	}
	if resp.StockBatch.Letter != "B" {
		t.Fatalf("stock letter = %q", resp.StockBatch.Letter)
	}

	// Closing again must surface the precondition as a conflict.
	rec = doJSON(t, engine, http.MethodPost, "/api/production/batches/"+batch.ID+"/close", admin, gin.H{"prixKg": 2500})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second close status = %d, want 409", rec.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	engine := newTestEngine(t)
	token := login(t, engine, "employee", "")

	rec := doJSON(t, engine, http.MethodGet, "/api/production/batches/missing", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing batch status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/production/batches", token, gin.H{"nom": "Bande A"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("incomplete payload status = %d, want 400", rec.Code)
	}
}
