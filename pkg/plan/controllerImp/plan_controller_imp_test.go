package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yearplan/database"
	healthCtrlImp "yearplan/pkg/health/controllerImp"
	planRepoImp "yearplan/pkg/plan/repositoryImp"
	"yearplan/router"
)

func newServer(t *testing.T, store *database.Store) *echo.Echo {
	t.Helper()
	e := echo.New()
	return router.New(e, New(planRepoImp.New(store)), healthCtrlImp.NewHealthCtrl(store))
}

func onlineServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.EnsureTable(db))
	return newServer(t, database.NewStore(db))
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestStatus_Online(t *testing.T) {
	e := onlineServer(t)

	rec := do(e, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode(t, rec)
	assert.Equal(t, "ok", m["status"])
	assert.Equal(t, true, m["dbConnected"])
}

func TestStatus_Offline(t *testing.T) {
	e := newServer(t, database.Offline())

	rec := do(e, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode(t, rec)
	assert.Equal(t, "ok", m["status"])
	assert.Equal(t, false, m["dbConnected"])
}

func TestGetPlan_NotFound(t *testing.T) {
	e := onlineServer(t)

	rec := do(e, http.MethodGet, "/api/plan/2025", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPlan_BadYear(t *testing.T) {
	e := onlineServer(t)

	rec := do(e, http.MethodGet, "/api/plan/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveThenGet_RoundTrip(t *testing.T) {
	e := onlineServer(t)

	rec := do(e, http.MethodPost, "/api/plan/2025", `{"yearData":{},"monthData":{},"theme":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = do(e, http.MethodGet, "/api/plan/2025", "")
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode(t, rec)
	assert.EqualValues(t, 2025, m["year"])
	assert.Equal(t, "dark", m["theme"])
	assert.Equal(t, map[string]any{}, m["yearData"])
	assert.Equal(t, map[string]any{}, m["monthData"])
	assert.Nil(t, m["backgroundImages"])
}

func TestSavePlan_MissingMonthData(t *testing.T) {
	e := onlineServer(t)

	rec := do(e, http.MethodPost, "/api/plan/2025", `{"yearData":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/plan/2025", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSavePlan_BadJSON(t *testing.T) {
	e := onlineServer(t)

	rec := do(e, http.MethodPost, "/api/plan/2025", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRestore_NonArrayBody(t *testing.T) {
	e := onlineServer(t)

	rec := do(e, http.MethodPost, "/api/db/restore", `{"year":2025}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackup_AttachmentHeader(t *testing.T) {
	e := onlineServer(t)

	require.Equal(t, http.StatusOK,
		do(e, http.MethodPost, "/api/plan/2025", `{"yearData":{"a":1},"monthData":{}}`).Code)

	rec := do(e, http.MethodGet, "/api/db/backup", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".json")

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
}

func TestBackup_EmptyTableIsArray(t *testing.T) {
	e := onlineServer(t)

	rec := do(e, http.MethodGet, "/api/db/backup", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestBackupRestore_EndToEnd(t *testing.T) {
	e := onlineServer(t)

	require.Equal(t, http.StatusOK,
		do(e, http.MethodPost, "/api/plan/2024", `{"yearData":{"k":"a"},"monthData":{},"theme":"light"}`).Code)
	require.Equal(t, http.StatusOK,
		do(e, http.MethodPost, "/api/plan/2025", `{"yearData":{"k":"b"},"monthData":{},"theme":"dark"}`).Code)

	backup := do(e, http.MethodGet, "/api/db/backup", "")
	require.Equal(t, http.StatusOK, backup.Code)

	require.Equal(t, http.StatusOK,
		do(e, http.MethodDelete, "/api/test/clear-data", "").Code)
	require.Equal(t, http.StatusNotFound,
		do(e, http.MethodGet, "/api/plan/2025", "").Code)

	rec := do(e, http.MethodPost, "/api/db/restore", backup.Body.String())
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode(t, rec)
	assert.Equal(t, true, m["success"])
	assert.EqualValues(t, 2, m["restored"])

	rec = do(e, http.MethodGet, "/api/plan/2025", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "dark", got["theme"])
	assert.Equal(t, map[string]any{"k": "b"}, got["yearData"])
}

func TestClearData(t *testing.T) {
	e := onlineServer(t)

	require.Equal(t, http.StatusOK,
		do(e, http.MethodPost, "/api/plan/2025", `{"yearData":{},"monthData":{}}`).Code)

	rec := do(e, http.MethodDelete, "/api/test/clear-data", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/plan/2025", "").Code)
}

func TestOffline_DataEndpointsReturn503(t *testing.T) {
	e := newServer(t, database.Offline())

	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/plan/2025", ""},
		{http.MethodPost, "/api/plan/2025", `{"yearData":{},"monthData":{}}`},
		{http.MethodGet, "/api/db/backup", ""},
		{http.MethodPost, "/api/db/restore", `[]`},
		{http.MethodDelete, "/api/test/clear-data", ""},
	}
	for _, tc := range cases {
		rec := do(e, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", tc.method, tc.path)
	}
}
