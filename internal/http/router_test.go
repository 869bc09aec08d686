package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	pocketHttp "github.com/MrJamesThe3rd/pocket/internal/http"
	"github.com/MrJamesThe3rd/pocket/internal/http/budget"
	"github.com/MrJamesThe3rd/pocket/internal/http/category"
	"github.com/MrJamesThe3rd/pocket/internal/http/export"
	"github.com/MrJamesThe3rd/pocket/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pocket/internal/http/report"
	"github.com/MrJamesThe3rd/pocket/internal/http/transaction"
)

func newRouter() http.Handler {
	return pocketHttp.New(pocketHttp.Handlers{
		Categories:   category.NewHandler(nil),
		Transactions: transaction.NewHandler(nil, nil),
		Reports:      report.NewHandler(nil, nil),
		Budgets:      budget.NewHandler(nil),
		Import:       importcsv.NewHandler(nil, nil, 0),
		Export:       export.NewHandler(nil, nil),
	}, []string{"https://pocket.example"})
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/transactions", nil)
	req.Header.Set("Origin", "https://pocket.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "https://pocket.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RejectsNonJSONBodies(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader("name=Coffee"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matching", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
