package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/controller"
	"tasklist/internal/service"
	"tasklist/internal/testutil"
	"tasklist/internal/view"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T, store *testutil.FakeStore, opts ...Option) (*Server, *controller.Controller) {
	t.Helper()
	ctrl := controller.New(view.NewList(), controller.WithLogger(quiet))
	require.NoError(t, ctrl.Init(t.Context(), store.Opener()))
	t.Cleanup(func() { _ = ctrl.Close() })

	style, err := view.LookupStyle(view.DefaultStyle)
	require.NoError(t, err)
	opts = append([]Option{WithLogger(quiet)}, opts...)
	return NewServer(ctrl, style, opts...), ctrl
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPage(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore().Seed(service.NewTask("buy milk", "high")))

	w := get(t, s, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Buy Milk")
	assert.Contains(t, body, `value="add"`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDPassthrough(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestSubmitCreate(t *testing.T) {
	store := testutil.NewFakeStore()
	s, ctrl := newTestServer(t, store)

	w := postForm(t, s, "/tasks", url.Values{"task": {"Write Report"}, "priority": {"high"}, "action": {"add"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	assert.Equal(t, []service.Task{{Title: "write report", Priority: "high"}}, store.Tasks())
	assert.Equal(t, 1, ctrl.List().Len())
}

func TestSubmitDuplicate(t *testing.T) {
	s, ctrl := newTestServer(t, testutil.NewFakeStore().Seed(service.NewTask("a", "low")))

	w := postForm(t, s, "/tasks", url.Values{"task": {"a"}, "priority": {"high"}, "action": {"add"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.Equal(t, "a", ctrl.Form().Title)
}

func TestSubmitInvalid(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore())

	w := postForm(t, s, "/tasks", url.Values{"task": {"  "}, "priority": {"high"}, "action": {"add"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Title required")

	w = postForm(t, s, "/tasks", url.Values{"task": {"a"}, "priority": {"high"}, "action": {"bogus"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitStoreFailure(t *testing.T) {
	store := testutil.NewFakeStore()
	s, _ := newTestServer(t, store)
	store.AddErr = errors.New("disk full")

	w := postForm(t, s, "/tasks", url.Values{"task": {"a"}, "priority": {"high"}, "action": {"add"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Could not save task")
}

func TestActionEditThenUpdate(t *testing.T) {
	store := testutil.NewFakeStore().Seed(service.NewTask("a", "low"))
	s, ctrl := newTestServer(t, store)

	w := postForm(t, s, "/tasks/actions", url.Values{"type": {"update"}, "key": {"a"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "a", ctrl.Editing())

	page := get(t, s, "/").Body.String()
	assert.Contains(t, page, `data-action="update"`)
	assert.Contains(t, page, " disabled")

	w = postForm(t, s, "/tasks", url.Values{"task": {"a"}, "priority": {"high"}, "action": {"update"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []service.Task{{Title: "a", Priority: "high"}}, store.Tasks())
	assert.Equal(t, "", ctrl.Editing())
}

func TestActionDelete(t *testing.T) {
	store := testutil.NewFakeStore().Seed(service.NewTask("a", "low"), service.NewTask("b", "low"))
	s, ctrl := newTestServer(t, store)

	w := postForm(t, s, "/tasks/actions", url.Values{"type": {"delete"}, "key": {"a"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []service.Task{{Title: "b", Priority: "low"}}, store.Tasks())
	assert.Equal(t, 1, ctrl.List().Len())
}

func TestActionEditMissing(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore())

	w := postForm(t, s, "/tasks/actions", url.Values{"type": {"update"}, "key": {"nope"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFragment(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore())

	w := get(t, s, "/tasks")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<div id=\"tasks\">\n</div>\n", w.Body.String())
}

func TestJSON(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore().Seed(service.NewTask("b", "low"), service.NewTask("a", "high")))

	w := get(t, s, "/tasks.json")
	require.Equal(t, http.StatusOK, w.Code)

	var got []service.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, []service.Task{{Title: "a", Priority: "high"}, {Title: "b", Priority: "low"}}, got)
}

func TestHealth(t *testing.T) {
	s, ctrl := newTestServer(t, testutil.NewFakeStore())

	assert.Equal(t, http.StatusOK, get(t, s, "/healthz").Code)

	require.NoError(t, ctrl.Close())
	assert.Equal(t, http.StatusServiceUnavailable, get(t, s, "/healthz").Code)
}

func TestMetricsMount(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore())
	assert.Equal(t, http.StatusNotFound, get(t, s, "/metrics").Code)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("m")) })
	s, _ = newTestServer(t, testutil.NewFakeStore(), WithMetrics(h))
	w := get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "m", w.Body.String())
}

func TestServeShutdown(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNoticeClearedAfterDelete(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewFakeStore().Seed(service.NewTask("a", "low"), service.NewTask("b", "low")))

	w := postForm(t, s, "/tasks", url.Values{"task": {"a"}, "priority": {"high"}, "action": {"add"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(t, s, "/tasks/actions", url.Values{"type": {"delete"}, "key": {"b"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, get(t, s, "/").Body.String(), "already exists")
}
