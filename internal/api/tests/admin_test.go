package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/billableapp/billable-server/internal/api/testutils"
	"github.com/billableapp/billable-server/internal/models"
)

func TestFirmEntriesAndFilters(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	days := []time.Time{
		time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 19, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC),
	}

	// One submitted entry per day, 13 min each -> 0.3 billable
	for _, day := range days {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodPost,
			"/api/entries",
			manualEntry(testCtx.ClientID, nil, day, 13, "daily work"),
			testutils.AuthHeaders(testCtx.LawyerJWT),
		)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/entries/submit",
		nil,
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Plus an unsubmitted draft that must stay invisible to the firm view
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/entries",
		manualEntry(testCtx.ClientID, nil, days[2].Add(2*time.Hour), 30, "not yet submitted"),
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/admin/entries",
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var all models.FirmEntriesResponse
	err := json.Unmarshal(w.Body.Bytes(), &all)
	assert.NoError(t, err)
	assert.Equal(t, 3, all.Count)
	assert.InDelta(t, 0.9, all.TotalBillable, 1e-9)
	assert.InDelta(t, 39.0, all.TotalMinutes, 1e-9)

	// Date bounds are inclusive on both ends
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/admin/entries?dateFrom=2026-02-19&dateTo=2026-02-19",
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var day models.FirmEntriesResponse
	err = json.Unmarshal(w.Body.Bytes(), &day)
	assert.NoError(t, err)
	assert.Equal(t, 1, day.Count)
	assert.Equal(t, "Lana Lawyer", day.Entries[0].UserFullName)

	// Filtering by lawyer keeps everything here, a stranger id keeps nothing
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/admin/entries?lawyerId="+testCtx.LawyerID,
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var byLawyer models.FirmEntriesResponse
	err = json.Unmarshal(w.Body.Bytes(), &byLawyer)
	assert.NoError(t, err)
	assert.Equal(t, 3, byLawyer.Count)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/admin/entries?lawyerId="+testCtx.AdminID,
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var none models.FirmEntriesResponse
	err = json.Unmarshal(w.Body.Bytes(), &none)
	assert.NoError(t, err)
	assert.Equal(t, 0, none.Count)

	// The firm view is admin only
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/admin/entries",
		nil,
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateBillingIncrement(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	start := time.Date(2026, 2, 19, 9, 0, 0, 0, time.UTC)

	// Booked under the firm's 0.1 default
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/entries",
		manualEntry(testCtx.ClientID, nil, start, 13, "before the change"),
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var before models.EntryResponse
	err := json.Unmarshal(w.Body.Bytes(), &before)
	assert.NoError(t, err)
	assert.Equal(t, 0.3, *before.Entry.BillableDuration)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPatch,
		"/api/admin/firm",
		models.UpdateFirmRequest{BillingIncrement: 0.25},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var firm models.FirmResponse
	err = json.Unmarshal(w.Body.Bytes(), &firm)
	assert.NoError(t, err)
	assert.Equal(t, 0.25, firm.Firm.BillingIncrement)

	// Only future roundings use the new increment
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/entries",
		manualEntry(testCtx.ClientID, nil, start.Add(2*time.Hour), 13, "after the change"),
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var after models.EntryResponse
	err = json.Unmarshal(w.Body.Bytes(), &after)
	assert.NoError(t, err)
	assert.Equal(t, 0.25, *after.Entry.BillableDuration)

	list := lawyerEntry(t, testCtx, before.Entry.ID)
	assert.NotNil(t, list)
	assert.Equal(t, 0.3, *list.BillableDuration, "existing entries keep their billed amount")

	// Only the known increments are allowed
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPatch,
		"/api/admin/firm",
		models.UpdateFirmRequest{BillingIncrement: 0.3},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPatch,
		"/api/admin/firm",
		models.UpdateFirmRequest{BillingIncrement: 0.5},
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestClientManagement(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/admin/clients",
		models.CreateClientRequest{Name: "Birch Holdings"},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.ClientResponse
	err := json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.True(t, created.Client.IsActive)

	// Deactivate it
	inactive := false
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPatch,
		"/api/admin/clients/"+created.Client.ID,
		models.UpdateClientRequest{IsActive: &inactive},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	// Lawyers only see active clients
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/clients",
		nil,
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var visible models.ClientsResponse
	err = json.Unmarshal(w.Body.Bytes(), &visible)
	assert.NoError(t, err)
	assert.Len(t, visible.Clients, 1)
	assert.Equal(t, "Acme Corp", visible.Clients[0].Name)

	// The admin list keeps the inactive one for reactivation
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/admin/clients",
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var all models.ClientsResponse
	err = json.Unmarshal(w.Body.Bytes(), &all)
	assert.NoError(t, err)
	assert.Len(t, all.Clients, 2)

	// Deactivated clients cannot start timers
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/timer/start",
		models.StartTimerRequest{ClientID: created.Client.ID},
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Lawyers cannot manage clients
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/admin/clients",
		models.CreateClientRequest{Name: "Cedar LLC"},
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskTypeManagement(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// The shared defaults show up alongside the firm's own
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/task-types",
		nil,
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var listed models.TaskTypesResponse
	err := json.Unmarshal(w.Body.Bytes(), &listed)
	assert.NoError(t, err)

	names := make(map[string]bool, len(listed.TaskTypes))
	for _, tt := range listed.TaskTypes {
		names[tt.Name] = true
	}
	assert.True(t, names["Research"])
	assert.True(t, names["Court Appearance"])
	assert.True(t, names["Deposition Prep"])

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/admin/task-types",
		models.CreateTaskTypeRequest{Name: "Mediation"},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.TaskTypeResponse
	err = json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.NotNil(t, created.TaskType.FirmID)

	inactive := false
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPatch,
		"/api/admin/task-types/"+created.TaskType.ID,
		models.UpdateTaskTypeRequest{IsActive: &inactive},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/task-types",
		nil,
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var afterDeactivate models.TaskTypesResponse
	err = json.Unmarshal(w.Body.Bytes(), &afterDeactivate)
	assert.NoError(t, err)
	for _, tt := range afterDeactivate.TaskTypes {
		assert.NotEqual(t, "Mediation", tt.Name)
	}
}

func TestAddLawyer(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	req := models.AddLawyerRequest{
		Email:    "new.lawyer@example.com",
		Password: "anothersecret",
		FullName: "Noor Lawyer",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/admin/lawyers",
		req,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleLawyer, created.Role)
	assert.Equal(t, testCtx.FirmID, created.FirmID)

	// The new account can log in right away
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Email: req.Email, Password: req.Password},
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	// Emails stay unique across the whole system
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/admin/lawyers",
		req,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusConflict, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/admin/lawyers",
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var lawyers models.LawyersResponse
	err = json.Unmarshal(w.Body.Bytes(), &lawyers)
	assert.NoError(t, err)
	assert.Len(t, lawyers.Lawyers, 2)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/admin/lawyers",
		models.AddLawyerRequest{Email: "x@example.com", Password: "longenough", FullName: "X"},
		testutils.AuthHeaders(testCtx.LawyerJWT),
	)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
