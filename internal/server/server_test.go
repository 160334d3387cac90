package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/registry"
	seed "mergington-activities/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html></html>"), 0o644))

	reg, err := registry.New(seed.Builtin(), logger.NewTestLogger(t))
	require.NoError(t, err)

	srv := httptest.NewServer(New(reg, nil, nil, staticDir, logger.NewTestLogger(t)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// noRedirectClient returns the first response instead of following redirects.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func doRequest(t *testing.T, method, url string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func listActivities(t *testing.T, srv *httptest.Server) map[string]registry.Activity {
	t.Helper()

	resp, err := http.Get(srv.URL + "/activities")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var activities map[string]registry.Activity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&activities))
	return activities
}

// ==========================
// Root & Static
// ==========================

func TestRoot_RedirectsToIndex(t *testing.T) {
	srv := newTestServer(t)

	resp, err := noRedirectClient().Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/static/index.html", resp.Header.Get("Location"))
}

func TestStatic_ServesIndex(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/static/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

// ==========================
// GET /activities
// ==========================

func TestGetActivities_ReturnsAllActivities(t *testing.T) {
	srv := newTestServer(t)

	activities := listActivities(t, srv)
	assert.NotEmpty(t, activities)
	assert.Contains(t, activities, "Soccer Team")
	assert.Contains(t, activities, "Programming Class")
}

func TestGetActivities_Structure(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/activities")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))

	for name, details := range raw {
		assert.Contains(t, details, "description", "activity %s", name)
		assert.Contains(t, details, "schedule", "activity %s", name)
		assert.Contains(t, details, "max_participants", "activity %s", name)
		assert.Contains(t, details, "participants", "activity %s", name)
		assert.IsType(t, []interface{}{}, details["participants"])
		assert.IsType(t, float64(0), details["max_participants"])
	}
}

// ==========================
// POST /activities/{name}/signup
// ==========================

func TestSignup_Success(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost,
		srv.URL+"/activities/Chess%20Club/signup?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	message, ok := body["message"].(string)
	require.True(t, ok)
	assert.Contains(t, message, "newstudent@mergington.edu")
	assert.Contains(t, message, "Chess Club")

	activities := listActivities(t, srv)
	assert.Contains(t, activities["Chess Club"].Participants, "newstudent@mergington.edu")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/activities/Chess%20Club/signup?email=duplicate@mergington.edu"

	resp1, _ := doRequest(t, http.MethodPost, url)
	require.Equal(t, http.StatusOK, resp1.StatusCode)

	resp2, body := doRequest(t, http.MethodPost, url)
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	assert.Contains(t, body["detail"], "already signed up")
}

func TestSignup_NonexistentActivity(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost,
		srv.URL+"/activities/Nonexistent%20Club/signup?email=student@mergington.edu")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["detail"], "not found")
}

func TestSignup_RequiresEmail(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/activities/Chess%20Club/signup")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

// ==========================
// DELETE /activities/{name}/unregister
// ==========================

func TestUnregister_Success(t *testing.T) {
	srv := newTestServer(t)
	email := "todelete@mergington.edu"

	resp, _ := doRequest(t, http.MethodPost,
		srv.URL+"/activities/Drama%20Club/signup?email="+email)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, http.MethodDelete,
		srv.URL+"/activities/Drama%20Club/unregister?email="+email)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	message, ok := body["message"].(string)
	require.True(t, ok)
	assert.Contains(t, message, email)
	assert.Contains(t, message, "Drama Club")

	activities := listActivities(t, srv)
	assert.NotContains(t, activities["Drama Club"].Participants, email)
}

func TestUnregister_NotRegistered(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodDelete,
		srv.URL+"/activities/Drama%20Club/unregister?email=notregistered@mergington.edu")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["detail"], "not registered")
}

func TestUnregister_NonexistentActivity(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodDelete,
		srv.URL+"/activities/Nonexistent%20Club/unregister?email=student@mergington.edu")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["detail"], "not found")
}

func TestUnregister_RequiresEmail(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodDelete, srv.URL+"/activities/Drama%20Club/unregister")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUnregister_SeededParticipant(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodDelete,
		srv.URL+"/activities/Soccer%20Team/unregister?email=alex@mergington.edu")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	activities := listActivities(t, srv)
	assert.NotContains(t, activities["Soccer Team"].Participants, "alex@mergington.edu")
}

// ==========================
// Integration Scenarios
// ==========================

func TestFullLifecycle(t *testing.T) {
	srv := newTestServer(t)
	email := "lifecycle@mergington.edu"

	initial := len(listActivities(t, srv)["Science Club"].Participants)

	resp, _ := doRequest(t, http.MethodPost,
		srv.URL+"/activities/Science%20Club/signup?email="+email)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	afterSignup := listActivities(t, srv)["Science Club"].Participants
	assert.Len(t, afterSignup, initial+1)
	assert.Contains(t, afterSignup, email)

	resp, _ = doRequest(t, http.MethodDelete,
		srv.URL+"/activities/Science%20Club/unregister?email="+email)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	afterUnregister := listActivities(t, srv)["Science Club"].Participants
	assert.Len(t, afterUnregister, initial)
	assert.NotContains(t, afterUnregister, email)
}

func TestMultipleActivitiesSameStudent(t *testing.T) {
	srv := newTestServer(t)
	email := "multitasker@mergington.edu"

	for _, activity := range []string{"Chess%20Club", "Science%20Club", "Art%20Studio"} {
		resp, _ := doRequest(t, http.MethodPost,
			fmt.Sprintf("%s/activities/%s/signup?email=%s", srv.URL, activity, email))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	activities := listActivities(t, srv)
	for _, name := range []string{"Chess Club", "Science Club", "Art Studio"} {
		assert.Contains(t, activities[name].Participants, email)
	}
}
