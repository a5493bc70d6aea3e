package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo-flow-api/internal/workflow/port"
)

const technicalAuditJSON = `{"audit_results":[{"category_name":"Meta","checks":[{"check_name":"Title","status":"PASS","description":"ok","recommendation":"none"}]}]}`

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		ErrorCode string `json:"error_code"`
	} `json:"error"`
}

func do(t *testing.T, env *testEnv, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	var out envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestProjectHandler_ListOnlyOwnProjects(t *testing.T) {
	env := newTestEnv(ownerID)
	env.seedProject(ownerID, "https://a.example")
	env.seedProject(strangerID, "https://b.example")
	newest := env.seedProject(ownerID, "https://c.example")

	w, out := do(t, env, http.MethodGet, "/v1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Projects []struct {
			ID string `json:"id"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.Len(t, data.Projects, 2)
	assert.Equal(t, newest.ID, data.Projects[0].ID)
}

func TestProjectHandler_Create(t *testing.T) {
	env := newTestEnv(ownerID)

	w, out := do(t, env, http.MethodPost, "/v1/projects", map[string]string{
		"name":     " Acme ",
		"site_url": "https://acme.example",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, env.projects.projects, 1)
	assert.Equal(t, ownerID, env.projects.projects[0].UserID)
	assert.Equal(t, "Acme", env.projects.projects[0].Name)
	assert.Contains(t, string(out.Data), env.projects.projects[0].ID)
}

func TestProjectHandler_CreateRejectsInvalidURL(t *testing.T) {
	env := newTestEnv(ownerID)

	w, _ := do(t, env, http.MethodPost, "/v1/projects", map[string]string{
		"name":     "Acme",
		"site_url": "not a url",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.projects.projects)
}

func TestProjectHandler_OtherUsersProjectIsNotFound(t *testing.T) {
	env := newTestEnv(ownerID)
	foreign := env.seedProject(strangerID, "https://b.example")

	w, out := do(t, env, http.MethodGet, "/v1/projects/"+foreign.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "3001", out.Error.ErrorCode)
}

func TestProjectHandler_UpdateFolder(t *testing.T) {
	env := newTestEnv(ownerID)
	project := env.seedProject(ownerID, "https://a.example")

	t.Run("unknown folder", func(t *testing.T) {
		w, _ := do(t, env, http.MethodPut, "/v1/projects/"+project.ID+"/folders/folder_secrets", map[string]string{"content": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("known folder", func(t *testing.T) {
		w, out := do(t, env, http.MethodPut, "/v1/projects/"+project.ID+"/folders/folder_fixes_logs", map[string]string{"content": "fixed robots.txt"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(out.Data), "fixed robots.txt")
		assert.Equal(t, "fixed robots.txt", env.projects.projects[0].FolderFixesLogs)
	})

	t.Run("empty content clears the folder", func(t *testing.T) {
		w, _ := do(t, env, http.MethodPut, "/v1/projects/"+project.ID+"/folders/folder_fixes_logs", map[string]string{"content": ""})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, env.projects.projects[0].FolderFixesLogs)
	})
}

func TestReportHandler_RunTechnicalAuditPersists(t *testing.T) {
	env := newTestEnv(ownerID)
	env.gen.text = technicalAuditJSON
	project := env.seedProject(ownerID, "https://a.example")

	w, out := do(t, env, http.MethodPost, "/v1/projects/"+project.ID+"/audits", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		State    string `json:"state"`
		RecordID string `json:"record_id"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	assert.Equal(t, "persisted", data.State)
	require.Len(t, env.audits.audits, 1)
	assert.Equal(t, env.audits.audits[0].ID, data.RecordID)
	assert.Equal(t, project.ID, env.audits.audits[0].ProjectID)

	w, out = do(t, env, http.MethodGet, "/v1/projects/"+project.ID+"/audits", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(out.Data), data.RecordID)
}

func TestReportHandler_PipelineErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		err    error
		status int
		code   string
	}{
		{name: "not configured", err: fmt.Errorf("%w: gemini", port.ErrProviderNotConfigured), status: http.StatusServiceUnavailable, code: "4007"},
		{name: "transport", err: fmt.Errorf("429 quota exceeded"), status: http.StatusBadGateway, code: "5005"},
		{name: "invalid response", text: `{"audit_results":"nope"}`, status: http.StatusBadGateway, code: "4002"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(ownerID)
			env.gen.text = tc.text
			env.gen.err = tc.err
			project := env.seedProject(ownerID, "https://a.example")

			w, out := do(t, env, http.MethodPost, "/v1/projects/"+project.ID+"/audits", nil)
			assert.Equal(t, tc.status, w.Code)
			require.NotNil(t, out.Error)
			assert.Equal(t, tc.code, out.Error.ErrorCode)
			assert.Empty(t, env.audits.audits)
		})
	}
}

func TestReportHandler_ForeignProjectSkipsGeneration(t *testing.T) {
	env := newTestEnv(ownerID)
	env.gen.text = technicalAuditJSON
	foreign := env.seedProject(strangerID, "https://b.example")

	w, _ := do(t, env, http.MethodPost, "/v1/projects/"+foreign.ID+"/audits", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, env.gen.calls)
}

func TestProspectHandler_UpdateStatus(t *testing.T) {
	env := newTestEnv(ownerID)
	project := env.seedProject(ownerID, "https://a.example")
	prospect := env.seedProspect(project)

	t.Run("rejects unknown status", func(t *testing.T) {
		w, _ := do(t, env, http.MethodPatch, "/v1/prospects/"+prospect.ID+"/status", map[string]string{"status": "Ghosted"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("contacted records the contact time", func(t *testing.T) {
		w, out := do(t, env, http.MethodPatch, "/v1/prospects/"+prospect.ID+"/status", map[string]string{"status": "Contacted"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(out.Data), `"status":"Contacted"`)
		assert.NotNil(t, env.prospects.prospects[0].LastContacted)
	})
}

func TestProspectHandler_ForeignProspectIsNotFound(t *testing.T) {
	env := newTestEnv(strangerID)
	project := env.seedProject(ownerID, "https://a.example")
	prospect := env.seedProspect(project)

	w, out := do(t, env, http.MethodPatch, "/v1/prospects/"+prospect.ID+"/status", map[string]string{"status": "Replied"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "3002", out.Error.ErrorCode)
	assert.Equal(t, "Identified", string(env.prospects.prospects[0].Status))
}

func TestProspectHandler_DraftEmail(t *testing.T) {
	env := newTestEnv(ownerID)
	env.gen.text = "  Hi Jane,\n\nLoved your post.  "
	project := env.seedProject(ownerID, "https://a.example")
	prospect := env.seedProspect(project)

	w, out := do(t, env, http.MethodPost, "/v1/prospects/"+prospect.ID+"/email", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Result   string `json:"result"`
		State    string `json:"state"`
		RecordID string `json:"record_id"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	assert.Equal(t, "Hi Jane,\n\nLoved your post.", data.Result)
	assert.Equal(t, "valid", data.State)
	assert.Empty(t, data.RecordID)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	env := newTestEnv(ownerID)

	w, out := do(t, env, http.MethodGet, "/v1/projects/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "3001", out.Error.ErrorCode)

	w, out = do(t, env, http.MethodPost, "/v1/projects/bogus/audits", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "3001", out.Error.ErrorCode)
	assert.Zero(t, env.gen.calls)

	w, out = do(t, env, http.MethodPatch, "/v1/prospects/42/status", map[string]string{"status": "Contacted"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "3002", out.Error.ErrorCode)

	assert.Empty(t, env.userCtx.users)
}
