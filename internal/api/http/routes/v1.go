package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/examgraph/exam-graph-backend/internal/sync"
)

type V1Deps struct {
	Coordinator *sync.Coordinator
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	syncGroup := api.Group("/sync")
	sync.Register(syncGroup, dep.Coordinator)
}
