package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/tecnimaq/maintenance-api/internal/http/handler"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"github.com/tecnimaq/maintenance-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func setupCompanyRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCompanyService(repository.NewCompanyRepository(db), zap.NewNop())
	h := handler.NewCompanyHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/empresas", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r, db
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestCompanyHandler_Create(t *testing.T) {
	router, _ := setupCompanyRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/empresas", map[string]interface{}{
		"nombre":    "Constructora del Norte S.A.",
		"nit":       "900123456-1",
		"direccion": "Calle 10 # 5-23",
		"telefono":  "6045551234",
		"correo":    "contacto@delnorte.com",
		"ciudad":    "Medellín",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Status)

	var data struct {
		ID    uint   `json:"id"`
		Name  string `json:"nombre"`
		TaxID string `json:"nit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotZero(t, data.ID)
	assert.Equal(t, "Constructora del Norte S.A.", data.Name)
	assert.Equal(t, "900123456-1", data.TaxID)
}

func TestCompanyHandler_Create_ValidationErrors(t *testing.T) {
	router, _ := setupCompanyRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/empresas", map[string]interface{}{
		"nombre": "Sin datos de contacto",
		"correo": "no-es-un-correo",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "Datos de entrada inválidos", env.Message)
	assert.Contains(t, env.Errors, "nit")
	assert.Contains(t, env.Errors, "direccion")
	assert.Contains(t, env.Errors, "correo")
}

func TestCompanyHandler_Create_InvalidBody(t *testing.T) {
	router, _ := setupCompanyRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/empresas", bytes.NewBufferString("{no-json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cuerpo de la solicitud inválido")
}

func TestCompanyHandler_Get_NotFound(t *testing.T) {
	router, _ := setupCompanyRouter(t)

	rec, env := doJSON(t, router, http.MethodGet, "/api/empresas/9999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "Empresa no encontrada", env.Message)
}

func TestCompanyHandler_Get_InvalidID(t *testing.T) {
	router, _ := setupCompanyRouter(t)

	rec, env := doJSON(t, router, http.MethodGet, "/api/empresas/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Identificador inválido", env.Message)
}

func TestCompanyHandler_UpdateAndDelete(t *testing.T) {
	router, db := setupCompanyRouter(t)
	company := testutil.CreateCompany(t, db, "Transporte Andino")

	rec, env := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/empresas/%d", company.ID), map[string]interface{}{
		"ciudad": "Bogotá",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Status)

	var data struct {
		City string `json:"ciudad"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Bogotá", data.City)

	rec, env = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/empresas/%d", company.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Empresa eliminada", env.Message)

	rec, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/empresas/%d", company.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
