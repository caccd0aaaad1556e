package sync

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/examgraph/exam-graph-backend/internal/source"
)

type Handler struct {
	coord *Coordinator
}

func Register(rg *gin.RouterGroup, coord *Coordinator) {
	h := &Handler{coord: coord}

	rg.GET("/entities", h.entities)
	rg.GET("/status", h.latestStatus)
	rg.GET("/status/:run_id", h.runStatus)

	rg.POST("/bulk", h.bulk)
	rg.POST("/ontology", h.ontology)
	rg.POST("/associations", h.associations)

	rg.POST("/:entity/nodes", h.syncNodes)
	rg.POST("/:entity/nodes/:id", h.syncNode)
	rg.POST("/:entity/relationships", h.syncAllRelationships)
	rg.POST("/:entity/relationships/:id", h.syncRelationships)
}

func (h *Handler) entities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "entities": EntityTypes()})
}

func (h *Handler) latestStatus(c *gin.Context) {
	status, err := h.coord.status.Latest(c.Request.Context())
	if errors.Is(err, ErrNoRuns) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no sync runs recorded"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "run": status})
}

func (h *Handler) runStatus(c *gin.Context) {
	status, err := h.coord.status.Get(c.Request.Context(), c.Param("run_id"))
	if errors.Is(err, ErrNoRuns) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "run": status})
}

func (h *Handler) bulk(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	report, err := h.coord.BulkSyncAll(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "report": report})
}

func (h *Handler) ontology(c *gin.Context) {
	report, err := h.coord.SyncOntologyBackbone(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "backbone": report})
}

func (h *Handler) associations(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	counts, err := h.coord.SyncAssociations(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "associations": counts})
}

func (h *Handler) syncNodes(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	res, err := h.coord.SyncNodes(c.Request.Context(), c.Param("entity"), limit)
	if err != nil {
		respondSyncError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "nodes": res})
}

func (h *Handler) syncNode(c *gin.Context) {
	err := h.coord.SyncNode(c.Request.Context(), c.Param("entity"), c.Param("id"))
	if err != nil {
		respondSyncError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) syncAllRelationships(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	counts, err := h.coord.SyncAllRelationships(c.Request.Context(), c.Param("entity"), limit)
	if err != nil {
		respondSyncError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "relationships": counts})
}

func (h *Handler) syncRelationships(c *gin.Context) {
	counts, err := h.coord.SyncRelationships(c.Request.Context(), c.Param("entity"), c.Param("id"))
	if err != nil {
		respondSyncError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "relationships": counts})
}

// limitParam parses the optional ?limit= query. Zero means unbounded.
func limitParam(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid limit"})
		return 0, false
	}
	return limit, true
}

func respondSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownEntity):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, source.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
