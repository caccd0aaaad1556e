package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Graph     string    `json:"graph,omitempty"`
	Redis     string    `json:"redis,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          *pgxpool.Pool
	graph       neo4j.DriverWithContext
	rdb         *redis.Client
}

func NewHealthHandler(serviceName, version string, db *pgxpool.Pool, graph neo4j.DriverWithContext, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		graph:       graph,
		rdb:         rdb,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        "disabled",
		Graph:     "disabled",
		Redis:     "disabled",
	}

	if h.db != nil {
		resp.DB = "up"
		if err := h.db.Ping(pingCtx); err != nil {
			resp.DB = "down"
		}
	}
	if h.graph != nil {
		resp.Graph = "up"
		if err := h.graph.VerifyConnectivity(pingCtx); err != nil {
			resp.Graph = "down"
		}
	}
	if h.rdb != nil {
		resp.Redis = "up"
		if err := h.rdb.Ping(pingCtx).Err(); err != nil {
			resp.Redis = "down"
		}
	}

	if resp.DB == "down" || resp.Graph == "down" {
		resp.Status = "degraded"
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
