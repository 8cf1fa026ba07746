package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_portal/pkg/authclient"
	"github.com/Skotchmaster/job_portal/pkg/events"
	middleware "github.com/Skotchmaster/job_portal/pkg/middleware/auth"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
	pkgtransport "github.com/Skotchmaster/job_portal/pkg/transport"
	"github.com/Skotchmaster/job_portal/services/company/internal/models"
	"github.com/Skotchmaster/job_portal/services/company/internal/repo"
	"github.com/Skotchmaster/job_portal/services/company/internal/service"
	"github.com/Skotchmaster/job_portal/services/company/internal/transport"
)

const (
	adminAuth = "Bearer admin-token"
	userAuth  = "Bearer user-token"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Company{}))
	return db
}

func fakeAuthority(_ context.Context, header string) (pkgtransport.ValidationResponse, error) {
	switch header {
	case adminAuth:
		return pkgtransport.ValidationResponse{Valid: true, Role: tokens.RoleAdmin}, nil
	case userAuth:
		return pkgtransport.ValidationResponse{Valid: true, Role: tokens.RoleUser}, nil
	default:
		return pkgtransport.ValidationResponse{Valid: false}, nil
	}
}

func newTestServer(t *testing.T, v middleware.Validator) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db := InitTestDB(t)
	svc := &service.CompanyService{Repo: &repo.GormRepo{DB: db}, Events: events.Nop{}}

	e := echo.New()
	e.HTTPErrorHandler = pkgtransport.ErrorHandler
	Register(e, &Deps{
		CompanyHandler: &CompanyHTTP{Svc: svc},
		Auth:           middleware.NewInterceptor(v, 0),
	})
	return e, db
}

func call(t *testing.T, e *echo.Echo, method, path string, body any, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seed(t *testing.T, db *gorm.DB, c models.Company) {
	t.Helper()
	require.NoError(t, db.Create(&c).Error)
}

func TestCompanyRoutes_AuthorizationContract(t *testing.T) {
	t.Parallel()

	e, db := newTestServer(t, middleware.ValidatorFunc(fakeAuthority))
	seed(t, db, models.Company{ID: "c1", Name: "Acme"})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		auth   string
		code   int
	}{
		{name: "list anonymous", method: http.MethodGet, path: "/companies", code: http.StatusUnauthorized},
		{name: "list invalid token", method: http.MethodGet, path: "/companies", auth: "Bearer forged", code: http.StatusUnauthorized},
		{name: "list basic auth", method: http.MethodGet, path: "/companies", auth: "Basic xyz", code: http.StatusUnauthorized},
		{name: "list user", method: http.MethodGet, path: "/companies", auth: userAuth, code: http.StatusOK},
		{name: "get user", method: http.MethodGet, path: "/companies/c1", auth: userAuth, code: http.StatusOK},
		{name: "get missing", method: http.MethodGet, path: "/companies/nope", auth: userAuth, code: http.StatusNotFound},
		{name: "create user", method: http.MethodPost, path: "/companies", body: []transport.CreateCompanyRequest{{Name: "X"}}, auth: userAuth, code: http.StatusForbidden},
		{name: "create anonymous", method: http.MethodPost, path: "/companies", body: []transport.CreateCompanyRequest{{Name: "X"}}, code: http.StatusUnauthorized},
		{name: "update user", method: http.MethodPut, path: "/companies/c1", body: map[string]string{"name": "Y"}, auth: userAuth, code: http.StatusForbidden},
		{name: "delete user", method: http.MethodDelete, path: "/companies/c1", auth: userAuth, code: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, e, tt.method, tt.path, tt.body, tt.auth)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}

	var n int64
	require.NoError(t, db.Model(&models.Company{}).Count(&n).Error)
	assert.EqualValues(t, 1, n, "rejected writes must not reach the store")
}

func TestCompanyRoutes_AdminCRUD(t *testing.T) {
	t.Parallel()

	e, db := newTestServer(t, middleware.ValidatorFunc(fakeAuthority))

	rec := call(t, e, http.MethodPost, "/companies", []transport.CreateCompanyRequest{
		{Name: "Acme", Description: "anvils"},
		{ID: "globex", Name: "Globex"},
	}, adminAuth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Company Created Successfully","success":true}`, rec.Body.String())

	rec = call(t, e, http.MethodGet, "/companies", nil, userAuth)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.NotEmpty(t, list[0].ID)

	rec = call(t, e, http.MethodPut, "/companies/globex", map[string]string{"description": "everything"}, adminAuth)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Globex", updated.Name)
	assert.Equal(t, "everything", updated.Description)

	rec = call(t, e, http.MethodDelete, "/companies/globex", nil, adminAuth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Company with Name Globex is deleted successfully","success":true}`, rec.Body.String())

	rec = call(t, e, http.MethodDelete, "/companies/globex", nil, adminAuth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Company not found with id: globex","success":false}`, rec.Body.String())

	var n int64
	require.NoError(t, db.Model(&models.Company{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestCompanyRoutes_CreateValidation(t *testing.T) {
	t.Parallel()

	e, _ := newTestServer(t, middleware.ValidatorFunc(fakeAuthority))

	rec := call(t, e, http.MethodPost, "/companies", []transport.CreateCompanyRequest{}, adminAuth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, e, http.MethodPost, "/companies", []transport.CreateCompanyRequest{{Name: "ok"}, {Name: " "}}, adminAuth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, e, http.MethodPost, "/companies", map[string]string{"name": "not a list"}, adminAuth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// The interceptor talks to a real validation endpoint over HTTP.
func TestCompanyRoutes_RemoteAuthority(t *testing.T) {
	t.Parallel()

	authority := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, authclient.ValidatePath, r.URL.Path)
		res, _ := fakeAuthority(r.Context(), r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(res)
	}))
	t.Cleanup(authority.Close)

	e, db := newTestServer(t, authclient.NewClient(authority.URL))
	seed(t, db, models.Company{ID: "c1", Name: "Acme"})

	assert.Equal(t, http.StatusOK, call(t, e, http.MethodGet, "/companies/c1", nil, userAuth).Code)
	assert.Equal(t, http.StatusForbidden, call(t, e, http.MethodDelete, "/companies/c1", nil, userAuth).Code)
	assert.Equal(t, http.StatusUnauthorized, call(t, e, http.MethodGet, "/companies/c1", nil, "Bearer forged").Code)
	assert.Equal(t, http.StatusOK, call(t, e, http.MethodDelete, "/companies/c1", nil, adminAuth).Code)
}

func TestCompanyRoutes_AuthorityDownFailsClosed(t *testing.T) {
	t.Parallel()

	authority := httptest.NewServer(http.NotFoundHandler())
	url := authority.URL
	authority.Close()

	e, db := newTestServer(t, authclient.NewClient(url, authclient.WithRetries(0)))
	seed(t, db, models.Company{ID: "c1", Name: "Acme"})

	rec := call(t, e, http.MethodDelete, "/companies/c1", nil, adminAuth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var n int64
	require.NoError(t, db.Model(&models.Company{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
