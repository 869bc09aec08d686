package category_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	categoryHandler "github.com/MrJamesThe3rd/pocket/internal/http/category"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

func newRouter(t *testing.T) (http.Handler, *category.MockRepository) {
	t.Helper()

	repo := category.NewMockRepository(gomock.NewController(t))
	h := categoryHandler.NewHandler(category.NewService(repo, watch.NewHub()))

	r := chi.NewRouter()
	r.Route("/categories", h.Routes)

	return r, repo
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name      string
		body      string
		setupMock func(m *category.MockRepository)
		wantCode  int
		wantBody  string
	}

	tests := []testCase{
		{
			name: "Created",
			body: `{"name":"Coffee","icon":"restaurant","color":"#FF795548","type":"expense"}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategories(gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ context.Context, cs []*category.Category) error {
						cs[0].ID = uuid.MustParse("0190a000-0000-7000-8000-000000000001")
						return nil
					})
			},
			wantCode: http.StatusCreated,
			wantBody: `"color":"#FF795548"`,
		},
		{
			name:     "Invalid",
			body:     `{"name":"","icon":"restaurant","type":"expense"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "Malformed",
			body:     `{`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := do(router, http.MethodPost, "/categories", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Get(t *testing.T) {
	id := uuid.MustParse("0190a000-0000-7000-8000-000000000001")

	router, repo := newRouter(t)
	repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, Name: "Food", Type: category.TypeExpense}, nil)
	repo.EXPECT().GetCategory(gomock.Any(), gomock.Any()).Return(nil, category.ErrNotFound)

	rec := do(router, http.MethodGet, "/categories/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Food"`)

	rec = do(router, http.MethodGet, "/categories/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/categories/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_List(t *testing.T) {
	router, repo := newRouter(t)

	repo.EXPECT().
		ListCategories(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f category.ListFilter) ([]*category.Category, error) {
			require.NotNil(t, f.Type)
			assert.Equal(t, category.TypeIncome, *f.Type)

			return []*category.Category{{Name: "Salary", Type: category.TypeIncome}}, nil
		})

	rec := do(router, http.MethodGet, "/categories?type=income", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Salary"`)

	rec = do(router, http.MethodGet, "/categories?type=transfer", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_DeleteInUse(t *testing.T) {
	id := uuid.New()

	router, repo := newRouter(t)
	repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id}, nil)
	repo.EXPECT().CountTransactions(gomock.Any(), id).Return(3, nil)

	rec := do(router, http.MethodDelete, "/categories/"+id.String(), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_Icons(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, http.MethodGet, "/categories/icons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"restaurant"`)
}
