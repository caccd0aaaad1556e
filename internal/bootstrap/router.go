package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/examgraph/exam-graph-backend/internal/api/http"
	"github.com/examgraph/exam-graph-backend/internal/api/http/routes"
	"github.com/examgraph/exam-graph-backend/internal/sync"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Environment string
	DB          *pgxpool.Pool
	Graph       neo4j.DriverWithContext
	Redis       *redis.Client
	Coordinator *sync.Coordinator
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Graph, dep.Redis)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Coordinator: dep.Coordinator,
	})

	return r
}
