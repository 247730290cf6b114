package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/longevitylab/gerograph/internal/assistant"
	"github.com/longevitylab/gerograph/internal/chat"
	"github.com/longevitylab/gerograph/internal/gaps"
	"github.com/longevitylab/gerograph/internal/graph"
	"github.com/longevitylab/gerograph/internal/render"
	"github.com/longevitylab/gerograph/internal/session"
	"github.com/longevitylab/gerograph/internal/stats"
)

func filterFromQuery(c *gin.Context) (graph.Filter, error) {
	f := graph.Filter{
		Search:   c.Query("q"),
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
	}.Normalize()

	if f.Type != graph.FilterAll {
		if _, err := graph.ParseNodeType(f.Type); err != nil {
			return f, err
		}
	}
	if f.Priority != graph.FilterAll {
		if _, err := graph.ParsePriority(f.Priority); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (s *Server) GetGraph(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nodes, edges, err := s.Data.LoadGraph(c.Request.Context())
	if err != nil {
		s.Log.Error("graph load failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph data unavailable"})
		return
	}

	visibleNodes, visibleEdges := graph.Apply(nodes, edges, f)
	c.JSON(http.StatusOK, gin.H{"nodes": visibleNodes, "edges": visibleEdges})
}

func (s *Server) GetGraphView(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selected := c.Query("selected")
	if sid := c.Query("session"); sid != "" {
		sess, err := s.Sessions.Get(sid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		state := sess.State()
		f = state.Filter
		selected = state.SelectedNodeID
	}

	nodes, edges, err := s.Data.LoadGraph(c.Request.Context())
	if err != nil {
		s.Log.Error("graph load failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph data unavailable"})
		return
	}

	visibleNodes, visibleEdges := graph.Apply(nodes, edges, f)
	c.Header("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	render.Graph(c.Writer, visibleNodes, visibleEdges, render.Options{
		Width:          s.Cfg.Render.Width,
		Height:         s.Cfg.Render.Height,
		SelectedNodeID: selected,
	})
}

func (s *Server) SearchGraph(c *gin.Context) {
	f := graph.Filter{
		Search: c.Query("query"),
		Type:   c.Query("node_type"),
	}.Normalize()
	if f.Type != graph.FilterAll {
		if _, err := graph.ParseNodeType(f.Type); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	nodes, _, err := s.Data.LoadGraph(c.Request.Context())
	if err != nil {
		s.Log.Error("graph load failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph data unavailable"})
		return
	}

	results := make([]graph.Node, 0)
	for _, n := range nodes {
		if f.Matches(n) {
			results = append(results, n)
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "query": f.Search})
}

func (s *Server) ListGaps(c *gin.Context) {
	gapList, err := s.Data.LoadGaps(c.Request.Context())
	if err != nil {
		s.Log.Error("gaps load failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "gap data unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gaps": gaps.BuildCards(gapList)})
}

func (s *Server) GetGap(c *gin.Context) {
	g, ok := s.Data.GapByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "gap not found"})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) GetStats(c *gin.Context) {
	nodes, edges, err := s.Data.LoadGraph(c.Request.Context())
	if err != nil {
		s.Log.Error("graph load failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph data unavailable"})
		return
	}
	gapList, err := s.Data.LoadGaps(c.Request.Context())
	if err != nil {
		s.Log.Error("gaps load failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "gap data unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats.Compute(nodes, edges, gapList))
}

func (s *Server) GetTrends(c *gin.Context) {
	trends, err := s.Data.LoadTrends(c.Request.Context())
	if err != nil {
		s.Log.Error("trends load failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "trend data unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": trends})
}

func (s *Server) CreateSession(c *gin.Context) {
	sess := s.Sessions.Create()
	c.JSON(http.StatusCreated, sess.State())
}

func (s *Server) GetSession(c *gin.Context) {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess.State())
}

func (s *Server) DeleteSession(c *gin.Context) {
	if err := s.Sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

type FilterRequest struct {
	Search   string `json:"search"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

func (s *Server) SetFilter(c *gin.Context) {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	f := graph.Filter{Search: req.Search, Type: req.Type, Priority: req.Priority}.Normalize()
	if f.Type != graph.FilterAll {
		if _, err := graph.ParseNodeType(f.Type); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if f.Priority != graph.FilterAll {
		if _, err := graph.ParsePriority(f.Priority); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sess.SetFilter(f)
	c.JSON(http.StatusOK, sess.State())
}

type SelectionRequest struct {
	NodeID string `json:"node_id"`
	GapID  string `json:"gap_id"`
}

// SetSelection selects a node or a gap (mutually exclusive), or clears the
// selection when both ids are empty. Any selection switches the tab to chat.
func (s *Server) SetSelection(c *gin.Context) {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	switch {
	case req.NodeID != "" && req.GapID != "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "select a node or a gap, not both"})
		return
	case req.NodeID != "":
		if _, ok := s.Data.NodeByID(req.NodeID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "node not found"})
			return
		}
		sess.SelectNode(req.NodeID)
	case req.GapID != "":
		if _, ok := s.Data.GapByID(req.GapID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "gap not found"})
			return
		}
		sess.SelectGap(req.GapID)
	default:
		sess.ClearSelection()
	}

	c.JSON(http.StatusOK, sess.State())
}

func (s *Server) ListMessages(c *gin.Context) {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages": sess.Thread.Messages(),
		"pending":  sess.Thread.Pending(),
	})
}

type MessageRequest struct {
	Text string `json:"text"`
}

func (s *Server) PostMessage(c *gin.Context) {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	qc := s.queryContext(sess, req.Text)
	if err := sess.Thread.Submit(qc); err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "message is empty"})
		case errors.Is(err, chat.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "a reply is already pending"})
		default:
			s.Log.Error("message submit failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit message"})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// queryContext resolves the session's selection against the dataset so the
// assistant sees the actual records, not just ids.
func (s *Server) queryContext(sess *session.Session, text string) assistant.QueryContext {
	state := sess.State()
	qc := assistant.QueryContext{Text: text}
	if state.SelectedNodeID != "" {
		if n, ok := s.Data.NodeByID(state.SelectedNodeID); ok {
			qc.SelectedNode = &n
		}
	} else if state.SelectedGapID != "" {
		if g, ok := s.Data.GapByID(state.SelectedGapID); ok {
			qc.SelectedGap = &g
		}
	}
	return qc
}
