package server

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mikeboe/guia-procesos/pkg/archive"
	"github.com/mikeboe/guia-procesos/pkg/presentation"
	"github.com/mikeboe/guia-procesos/pkg/search"
)

// SessionCookie carries the browser session id.
const SessionCookie = "guia_session"

const controllerKey = "controller"

type Handler struct {
	Service *Service
	MCP     http.Handler
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s, MCP: NewMCPHandler(s)}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Any("/mcp", gin.WrapH(h.MCP))

	web := r.Group("/", h.withSession)
	web.GET("/", h.index)
	web.GET("/search", h.searchForm)
	web.POST("/search", h.searchForm)

	api := r.Group("/api", h.withSession)
	{
		api.POST("/search", h.runSearch)
		api.GET("/state", h.getState)
		api.GET("/history", h.getHistory)
		api.POST("/history/:index", h.rerunHistory)
		api.GET("/export", h.exportResult)

		api.GET("/searches", h.listSearches)
		api.GET("/searches/:id", h.getSearch)
	}
}

// withSession resolves the caller's controller from the session cookie,
// issuing a new cookie when it is missing or malformed.
func (h *Handler) withSession(c *gin.Context) {
	id, err := c.Cookie(SessionCookie)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.New().String()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	}
	c.Set(controllerKey, h.Service.Session(id))
	c.Next()
}

func controller(c *gin.Context) *search.Controller {
	return c.MustGet(controllerKey).(*search.Controller)
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, presentation.PageTemplate, presentation.BuildPage(controller(c).Snapshot()))
}

// searchForm serves the HTML form and the history links, then returns
// to the page. Rejected submissions simply show the current state.
func (h *Handler) searchForm(c *gin.Context) {
	query := c.Query("q")
	if c.Request.Method == http.MethodPost {
		query = c.PostForm("q")
	}
	if _, err := controller(c).RunSearch(c.Request.Context(), query); err != nil {
		h.Service.Logger.Warn("Search not started", "query", query, "error", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type SearchRequest struct {
	Query string `json:"query"`
}

func (h *Handler) runSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := controller(c).RunSearch(c.Request.Context(), req.Query)
	h.respondState(c, st, err)
}

func (h *Handler) rerunHistory(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	st, err := controller(c).RerunHistory(c.Request.Context(), index)
	h.respondState(c, st, err)
}

func (h *Handler) respondState(c *gin.Context, st search.State, err error) {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, search.ErrUnknownHistoryEntry):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, search.ErrSearchInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, newStateResponse(st))
	}
}

// StateResponse is the JSON form of the screen state.
type StateResponse struct {
	search.State
	Loading bool                     `json:"loading"`
	View    *presentation.ResultView `json:"view,omitempty"`
}

func newStateResponse(st search.State) StateResponse {
	resp := StateResponse{State: st, Loading: st.Loading()}
	if view, ok := presentation.BuildResult(st); ok {
		resp.View = &view
	}
	if resp.History == nil {
		resp.History = []string{}
	}
	return resp
}

func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(controller(c).Snapshot()))
}

func (h *Handler) getHistory(c *gin.Context) {
	history := controller(c).Snapshot().History
	if history == nil {
		history = []string{}
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) exportResult(c *gin.Context) {
	filename, data, err := h.Service.ExportCurrent(controller(c))
	switch {
	case errors.Is(err, ErrNothingToExport):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrExportUnavailable):
		c.Status(http.StatusNoContent)
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) listSearches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	searches, err := h.Service.RecentSearches(c.Request.Context(), limit)
	if errors.Is(err, ErrArchiveDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if searches == nil {
		searches = []archive.Search{}
	}
	c.JSON(http.StatusOK, searches)
}

func (h *Handler) getSearch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid"})
		return
	}

	rec, err := h.Service.GetSearch(c.Request.Context(), id)
	if errors.Is(err, ErrArchiveDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "search not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
