package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longevitylab/gerograph/internal/assistant"
	"github.com/longevitylab/gerograph/internal/config"
	"github.com/longevitylab/gerograph/internal/dataset"
	"github.com/longevitylab/gerograph/internal/gaps"
	"github.com/longevitylab/gerograph/internal/graph"
	"github.com/longevitylab/gerograph/internal/logger"
)

// faultySource fails every load the way a broken backend would.
type faultySource struct {
	dataset.Source
}

func (faultySource) LoadGraph(ctx context.Context) ([]graph.Node, []graph.Edge, error) {
	return nil, nil, &dataset.LoadError{What: "graph", Err: errors.New("backend down")}
}

func (faultySource) LoadGaps(ctx context.Context) ([]gaps.HypothesisGap, error) {
	return nil, &dataset.LoadError{What: "gaps", Err: errors.New("backend down")}
}

func (faultySource) LoadTrends(ctx context.Context) ([]dataset.Trend, error) {
	return nil, &dataset.LoadError{What: "trends", Err: errors.New("backend down")}
}

func newTestServer(t *testing.T, replyDelay time.Duration) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	data, err := dataset.NewStaticProvider()
	require.NoError(t, err)

	cfg := config.Default()
	srv := New(cfg, logger.NewNop(), data, assistant.NewMockAssistant(replyDelay))
	return srv, srv.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
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
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := decode(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestGetGraph_FullAndFiltered(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodGet, "/api/v1/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["nodes"], 8)
	assert.Len(t, body["edges"], 6)

	w = doJSON(t, r, http.MethodGet, "/api/v1/graph?type=gene", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Len(t, body["nodes"], 2)
	assert.Empty(t, body["edges"], "gene-only view keeps no edge with both endpoints visible")
}

func TestGetGraph_RejectsUnknownEnums(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodGet, "/api/v1/graph?type=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/graph?priority=urgent", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGraphView_RendersSVG(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodGet, "/api/v1/graph/view.svg?q=sirt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
	assert.Contains(t, w.Body.String(), "SIRT1")
}

func TestSearchGraph(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodGet, "/api/v1/graph/search?query=mtor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	results := body["results"].([]any)
	require.Len(t, results, 2, "mTOR signaling and the crosstalk hypothesis match")

	w = doJSON(t, r, http.MethodGet, "/api/v1/graph/search?query=mtor&node_type=pathway", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["results"], 1)
}

func TestListGaps_ReturnsCards(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodGet, "/api/v1/gaps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cards := decode(t, w)["gaps"].([]any)
	require.Len(t, cards, 3)

	first := cards[0].(map[string]any)
	assert.Equal(t, "gap-sirt1-klotho", first["id"])
	assert.Equal(t, float64(85), first["confidence_pct"])
}

func TestGetGap(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodGet, "/api/v1/gaps/gap-circadian-axis", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	conns := body["missing_connections"].([]any)
	require.Len(t, conns, 1)
	assert.Equal(t, "circadian + metabolic + aging", conns[0].(map[string]any)["pattern"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/gaps/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStats(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(8), body["total_nodes"])
	assert.Equal(t, float64(6), body["total_connections"])
	assert.Equal(t, float64(2), body["high_priority_gaps"])
	assert.Equal(t, float64(79), body["avg_confidence_pct"])
}

func TestGetTrends(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodGet, "/api/v1/trends", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["trends"], 3)
}

func TestDataEndpoints_UnavailableBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(config.Default(), logger.NewNop(), faultySource{}, assistant.NewMockAssistant(0))
	r := srv.SetupRouter()

	for _, path := range []string{
		"/api/v1/graph",
		"/api/v1/graph/view.svg",
		"/api/v1/graph/search?query=sirt",
		"/api/v1/gaps",
		"/api/v1/stats",
		"/api/v1/trends",
	} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "path %s", path)
		assert.Contains(t, decode(t, w)["error"], "unavailable")
	}
}

func TestSessionLifecycle(t *testing.T) {
	_, r := newTestServer(t, 0)
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "graph", decode(t, w)["active_tab"])

	w = doJSON(t, r, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetFilter(t *testing.T) {
	_, r := newTestServer(t, 0)
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/filter",
		map[string]string{"search": "sirt", "type": "gene"})
	require.Equal(t, http.StatusOK, w.Code)
	f := decode(t, w)["filter"].(map[string]any)
	assert.Equal(t, "sirt", f["search"])
	assert.Equal(t, "gene", f["type"])
	assert.Equal(t, "all", f["priority"])

	w = doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/filter",
		map[string]string{"type": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetSelection_FlowAndMutualExclusion(t *testing.T) {
	_, r := newTestServer(t, 0)
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/selection",
		map[string]string{"node_id": "sirt1"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "sirt1", body["selected_node_id"])
	assert.Equal(t, "chat", body["active_tab"])

	w = doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/selection",
		map[string]string{"gap_id": "gap-sirt1-klotho"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Nil(t, body["selected_node_id"], "selecting a gap clears the node")
	assert.Equal(t, "gap-sirt1-klotho", body["selected_gap_id"])

	w = doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/selection", map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Nil(t, body["selected_node_id"])
	assert.Nil(t, body["selected_gap_id"])
}

func TestSetSelection_Errors(t *testing.T) {
	_, r := newTestServer(t, 0)
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/selection",
		map[string]string{"node_id": "sirt1", "gap_id": "gap-sirt1-klotho"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/selection",
		map[string]string{"node_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/selection",
		map[string]string{"gap_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostMessage_AcceptedAndReplied(t *testing.T) {
	srv, r := newTestServer(t, 0)
	id := createSession(t, r)

	doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/selection",
		map[string]string{"node_id": "sirt1"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		map[string]string{"text": "tell me about this node"})
	require.Equal(t, http.StatusAccepted, w.Code)

	sess, err := srv.Sessions.Get(id)
	require.NoError(t, err)
	sess.Thread.Wait()

	w = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	reply := msgs[1].(map[string]any)
	assert.Equal(t, "assistant", reply["role"])
	assert.Contains(t, reply["text"], "SIRT1")
	assert.Equal(t, false, body["pending"])
}

func TestPostMessage_EmptyAndBusy(t *testing.T) {
	srv, r := newTestServer(t, 100*time.Millisecond)
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		map[string]string{"text": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		map[string]string{"text": "first"})
	require.Equal(t, http.StatusAccepted, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		map[string]string{"text": "second"})
	assert.Equal(t, http.StatusConflict, w.Code)

	sess, err := srv.Sessions.Get(id)
	require.NoError(t, err)
	sess.Thread.Wait()
}

func TestSessionEndpoints_UnknownSession(t *testing.T) {
	_, r := newTestServer(t, 0)

	w := doJSON(t, r, http.MethodPut, "/api/v1/sessions/ghost/filter", map[string]string{})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions/ghost/messages", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/v1/sessions/ghost/messages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/v1/sessions/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
