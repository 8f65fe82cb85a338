package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starford/wunjo/internal/testutil"
	"github.com/starford/wunjo/internal/tracker"
)

// testEnv builds a router over a temp JSON store.
// authToken != "" enables Bearer auth.
func testEnv(t *testing.T, authToken string) http.Handler {
	t.Helper()
	store, _ := testutil.TestJSONStore(t)
	svc := tracker.NewService(store, store)
	return NewRouter(svc, authToken != "", authToken)
}

// sqliteEnv builds a router over the topics-only relational backend.
func sqliteEnv(t *testing.T) http.Handler {
	t.Helper()
	svc := tracker.NewService(testutil.TestSQLiteStore(t), nil)
	return NewRouter(svc, false, "")
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetTopic(t *testing.T) {
	router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Go", "description": "Basics"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/topics/Go", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var topic TopicDetailResponse
	_ = json.Unmarshal(w.Body.Bytes(), &topic)
	if topic.Title != "Go" || topic.Description != "Basics" {
		t.Errorf("topic = %q/%q", topic.Title, topic.Description)
	}
	if len(topic.Resources)+len(topic.Notes)+len(topic.Progress) != 0 {
		t.Errorf("expected empty children, got %+v", topic)
	}
}

func TestGetTopicCaseInsensitive(t *testing.T) {
	router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Python"})

	w := doJSON(t, router, http.MethodGet, "/topics/PYTHON", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestCreateTopicDuplicate(t *testing.T) {
	router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Go"})

	w := doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "GO"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", w.Code)
	}
}

func TestCreateTopicMissingTitle(t *testing.T) {
	router := testEnv(t, "")
	w := doJSON(t, router, http.MethodPost, "/topics", map[string]string{"description": "no title"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestGetTopicNotFound(t *testing.T) {
	router := testEnv(t, "")
	w := doJSON(t, router, http.MethodGet, "/topics/Rust", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListTopics(t *testing.T) {
	router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Go"})
	doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Python"})

	w := doJSON(t, router, http.MethodGet, "/topics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var items []TopicResponse
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0].Title != "Go" || items[1].Title != "Python" {
		t.Errorf("items = %+v", items)
	}
}

func TestAddResource(t *testing.T) {
	router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Go"})

	// Malformed URL content is rejected before any entity is created.
	w := doJSON(t, router, http.MethodPost, "/topics/Go/resources",
		map[string]string{"res_type": "link", "content": "not a url"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad url status = %d, want 422", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/topics/Go/resources",
		map[string]string{"res_type": "link", "content": "https://example.com"})
	if w.Code != http.StatusCreated {
		t.Fatalf("valid url status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/topics/Go", nil)
	var topic TopicDetailResponse
	_ = json.Unmarshal(w.Body.Bytes(), &topic)
	if len(topic.Resources) != 1 || topic.Resources[0].Content != "https://example.com" {
		t.Errorf("resources = %+v", topic.Resources)
	}
}

func TestAddResourceUnknownType(t *testing.T) {
	router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Go"})

	w := doJSON(t, router, http.MethodPost, "/topics/Go/resources",
		map[string]string{"res_type": "video", "content": "x"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestAddNoteToMissingTopic(t *testing.T) {
	router := testEnv(t, "")
	w := doJSON(t, router, http.MethodPost, "/topics/Rust/notes", map[string]string{"text": "hi"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAddProgress(t *testing.T) {
	router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Go"})

	w := doJSON(t, router, http.MethodPost, "/topics/Go/progress", map[string]int{"percent": 150})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("percent 150 status = %d, want 422", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/topics/Go/progress", map[string]int{"percent": 100})
	if w.Code != http.StatusCreated {
		t.Fatalf("percent 100 status = %d", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := testEnv(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/topics", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("with token status = %d, want 200", w.Code)
	}
}

func TestSQLiteBackendChildRoutes(t *testing.T) {
	router := sqliteEnv(t)
	doJSON(t, router, http.MethodPost, "/topics", map[string]string{"title": "Go"})

	// Topics work on the relational slice...
	w := doJSON(t, router, http.MethodGet, "/topics/Go", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// ...child entities are not migrated yet.
	w = doJSON(t, router, http.MethodPost, "/topics/Go/notes", map[string]string{"text": "hi"})
	if w.Code != http.StatusNotImplemented {
		t.Errorf("note status = %d, want 501", w.Code)
	}
}
