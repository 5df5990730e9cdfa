package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	"github.com/BruksfildServices01/clinic-ledger/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-ledger/internal/db"
)

type api struct {
	t      *testing.T
	engine *gin.Engine
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clinic.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newAPI(t *testing.T, db *gorm.DB, deps Deps) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		LoginRatePerMinute: 1000,
		ReportMaxDays:      1100,
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg, deps)
	return &api{t: t, engine: r}
}

func (a *api) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (a *api) raw(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func id(m map[string]any) uint {
	return uint(m["id"].(float64))
}

type clinic struct {
	admin, ana, bruno   string
	anaID, brunoID      uint
	serviceID, clientID uint
}

// seed bootstraps an admin, two employees, one client and one service.
func seed(a *api) clinic {
	var c clinic

	status, body := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"fullName": "Owner", "email": "owner@clinic.test", "password": "secret1",
	})
	require.Equal(a.t, http.StatusCreated, status)
	c.admin = body["token"].(string)

	for _, name := range []string{"ana", "bruno"} {
		status, body = a.do(http.MethodPost, "/api/users", c.admin, map[string]any{
			"fullName": name, "email": name + "@clinic.test", "password": "secret1", "role": "employee",
		})
		require.Equal(a.t, http.StatusCreated, status)
		userID := id(body)

		status, body = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{
			"email": name + "@clinic.test", "password": "secret1",
		})
		require.Equal(a.t, http.StatusOK, status)
		token := body["token"].(string)

		if name == "ana" {
			c.ana, c.anaID = token, userID
		} else {
			c.bruno, c.brunoID = token, userID
		}
	}

	status, body = a.do(http.MethodPost, "/api/services", c.admin, map[string]any{
		"name": "Consultation", "price": 100,
	})
	require.Equal(a.t, http.StatusCreated, status)
	c.serviceID = id(body)

	status, body = a.do(http.MethodPost, "/api/clients", c.admin, map[string]any{
		"name": "Maria", "phone": "555-0101",
	})
	require.Equal(a.t, http.StatusCreated, status)
	c.clientID = id(body)

	return c
}

func (a *api) createRecord(c clinic, token string, patients int) uint {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/records", token, map[string]any{
		"clientId": c.clientID, "serviceId": c.serviceID,
		"date": "2024-03-10", "time": "10:00", "reminder": true, "patientCount": patients,
	})
	require.Equal(a.t, http.StatusCreated, status, body)
	assert.Nil(a.t, body["employeeId"])
	assert.Equal(a.t, "pending", body["status"])
	return id(body)
}

// ======================================================
// AUTH
// ======================================================

func TestAuth_RegisterOnlyOnce(t *testing.T) {
	a := newAPI(t, newDB(t), Deps{})
	seed(a)

	status, body := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"fullName": "Intruder", "email": "x@clinic.test", "password": "secret1",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "registration_closed", body["error_code"])

	status, body = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "owner@clinic.test", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_credentials", body["error_code"])

	status, _ = a.do(http.MethodGet, "/api/records?start=2024-03-01&end=2024-03-31", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_RegisterConcurrentBootstrap(t *testing.T) {
	a := newAPI(t, newDB(t), Deps{})

	const attempts = 6
	codes := make([]int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]any{
				"fullName": "Owner", "email": fmt.Sprintf("owner%d@clinic.test", i), "password": "secret1",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			a.engine.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusForbidden, code)
		}
	}
	assert.Equal(t, 1, created)
}

func TestAuth_RoleChangeAppliesToIssuedTokens(t *testing.T) {
	a := newAPI(t, newDB(t), Deps{})
	c := seed(a)
	recordID := a.createRecord(c, c.ana, 1)
	rolePath := fmt.Sprintf("/api/users/%d/role", c.anaID)

	status, _ := a.do(http.MethodPatch, rolePath, c.admin, map[string]any{"role": "manager"})
	require.Equal(t, http.StatusOK, status)

	status, body := a.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@clinic.test", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
	managerToken := body["token"].(string)

	status, _ = a.do(http.MethodGet, "/api/analytics/month?start=2024-03-01&end=2024-03-31", managerToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = a.do(http.MethodPatch, rolePath, c.admin, map[string]any{"role": "employee"})
	require.Equal(t, http.StatusOK, status)

	status, body = a.do(http.MethodDelete, fmt.Sprintf("/api/records/%d", recordID), managerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", body["error_code"])

	status, _ = a.do(http.MethodGet, fmt.Sprintf("/api/records/%d", recordID), managerToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

// ======================================================
// TEAM COMPLETION SCENARIO
// ======================================================

func TestRecords_TeamCompletion(t *testing.T) {
	a := newAPI(t, newDB(t), Deps{})
	c := seed(a)

	recordID := a.createRecord(c, c.ana, 4)
	base := fmt.Sprintf("/api/records/%d", recordID)

	status, body := a.do(http.MethodPost, base+"/complete", c.ana, map[string]any{"patientCount": 3})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, float64(c.anaID), body["employeeId"])
	assert.Equal(t, "ana", body["employee"].(map[string]any)["fullName"])

	status, _ = a.do(http.MethodPost, base+"/complete", c.bruno, map[string]any{"patientCount": 1})
	require.Equal(t, http.StatusCreated, status)

	status, body = a.do(http.MethodPost, base+"/complete", c.bruno, map[string]any{"patientCount": 5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "patient_count_exceeds_record", body["error_code"])

	status, body = a.do(http.MethodGet, base+"/completions", c.ana, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total"])

	status, body = a.do(http.MethodGet, base, c.ana, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "done", body["status"])

	// one income, sized by the booked patients
	status, body = a.do(http.MethodGet, "/api/incomes?start=2024-03-01&end=2024-03-31", c.admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["total"])
	income := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(400), income["amount"])
	assert.Equal(t, float64(recordID), income["recordId"])

	status, body = a.do(http.MethodDelete, fmt.Sprintf("/api/incomes/%d", id(income)), c.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "income_linked_to_record", body["error_code"])

	// analytics: one completion each, revenue counted once
	status, _ = a.do(http.MethodGet, "/api/analytics/month?start=2024-03-01&end=2024-03-31", c.ana, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = a.do(http.MethodGet, "/api/analytics/month?start=2024-03-01&end=2024-03-31", c.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(400), body["totalIncome"])
	assert.Equal(t, float64(1), body["uniqueClients"])

	stats := body["employeeStats"].([]any)
	require.Len(t, stats, 2)
	var revenue float64
	for _, s := range stats {
		stat := s.(map[string]any)
		assert.Equal(t, float64(1), stat["completedServices"])
		revenue += stat["revenue"].(float64)
	}
	assert.Equal(t, float64(400), revenue)

	// employees may read their own workload only
	status, body = a.do(http.MethodGet, fmt.Sprintf("/api/analytics/employees/%d", c.anaID), c.ana, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["totalPatients"])

	status, _ = a.do(http.MethodGet, fmt.Sprintf("/api/analytics/employees/%d", c.brunoID), c.ana, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

// ======================================================
// LIFECYCLE
// ======================================================

func TestRecords_StatusRules(t *testing.T) {
	a := newAPI(t, newDB(t), Deps{})
	c := seed(a)

	recordID := a.createRecord(c, c.ana, 2)
	path := fmt.Sprintf("/api/records/%d", recordID)

	status, _ := a.do(http.MethodPatch, path, c.ana, map[string]any{"status": "done"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := a.do(http.MethodPatch, path, c.admin, map[string]any{"status": "done"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "done", body["status"])

	status, body = a.do(http.MethodPatch, path, c.admin, map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_status_transition", body["error_code"])

	status, body = a.do(http.MethodPatch, path, c.admin, map[string]any{"clientId": nil})
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["clientId"])

	status, body = a.do(http.MethodPost, "/api/records", c.ana, map[string]any{
		"serviceId": c.serviceID, "date": "10/03/2024",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "date", body["field"])

	status, body = a.do(http.MethodPost, "/api/records", c.ana, map[string]any{
		"date": "2024-03-10",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "service_required", body["error_code"])

	status, _ = a.do(http.MethodDelete, path, c.admin, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = a.do(http.MethodGet, "/api/incomes?start=2024-03-01&end=2024-03-31", c.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])

	status, body = a.do(http.MethodGet, path, c.admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "record_not_found", body["error_code"])
}

// ======================================================
// CATALOG
// ======================================================

func TestCatalog_DeleteWithRecords(t *testing.T) {
	a := newAPI(t, newDB(t), Deps{})
	c := seed(a)
	a.createRecord(c, c.ana, 1)

	status, body := a.do(http.MethodDelete, fmt.Sprintf("/api/services/%d", c.serviceID), c.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "service_has_records", body["error_code"])
	assert.Equal(t, true, body["has_records"])

	status, _ = a.do(http.MethodDelete, fmt.Sprintf("/api/clients/%d", c.clientID), c.ana, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = a.do(http.MethodDelete, fmt.Sprintf("/api/clients/%d?cascade=true", c.clientID), c.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["recordsDeleted"])
}

// ======================================================
// REPORTS
// ======================================================

func TestReports_Download(t *testing.T) {
	a := newAPI(t, newDB(t), Deps{})
	c := seed(a)
	recordID := a.createRecord(c, c.ana, 2)
	a.do(http.MethodPost, fmt.Sprintf("/api/records/%d/complete", recordID), c.ana, map[string]any{"patientCount": 2})

	w := a.raw("/api/reports/excel?start=2024-03-01&end=2024-03-31&period=day", c.admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())

	w = a.raw("/api/reports/word?start=2024-03-01&end=2024-03-31", c.admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".docx")

	w = a.raw("/api/reports/excel?start=2024-03-01&end=2024-03-31&period=week", c.admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_period")

	w = a.raw("/api/reports/excel?start=2024-03-01&end=2024-03-31", c.ana)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ======================================================
// AUDIT
// ======================================================

func TestAuditLogs(t *testing.T) {
	db := newDB(t)
	dispatcher := audit.NewDispatcher(audit.New(db))
	a := newAPI(t, db, Deps{Audit: dispatcher})

	c := seed(a)
	a.createRecord(c, c.ana, 1)
	dispatcher.Close()

	status, body := a.do(http.MethodGet, "/api/audit-logs?action=record_created", c.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	status, _ = a.do(http.MethodGet, "/api/audit-logs", c.ana, nil)
	assert.Equal(t, http.StatusForbidden, status)
}
