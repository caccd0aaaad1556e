package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/examgraph/exam-graph-backend/config"
	"github.com/examgraph/exam-graph-backend/internal/bootstrap"
	"github.com/examgraph/exam-graph-backend/internal/graph"
	"github.com/examgraph/exam-graph-backend/internal/observability"
	"github.com/examgraph/exam-graph-backend/internal/ontology"
	"github.com/examgraph/exam-graph-backend/internal/source"
	"github.com/examgraph/exam-graph-backend/internal/sync"
)

const serviceName = "exam-graph-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	observability.InitializeLogger(cfg.App.LogLevel, cfg.App.Environment)
	defer observability.Sync()
	logger := observability.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer pool.Close()

	driver, err := bootstrap.OpenNeo4j(ctx, bootstrap.Neo4jOptions{
		URI:      cfg.Neo4j.URI,
		User:     cfg.Neo4j.User,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		logger.Fatal("open graph store", zap.Error(err))
	}
	defer driver.Close(context.Background())

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("open redis", zap.Error(err))
	}
	defer rdb.Close()

	reg := ontology.Default()
	exec := graph.NewNeo4jExecutor(driver, cfg.Neo4j.Database)

	if err := graph.InitializeOntology(ctx, exec, reg, logger); err != nil {
		logger.Fatal("initialize ontology", zap.Error(err))
	}

	src := source.NewSQLSource(bootstrap.StdDB(pool))
	writer := graph.NewWriter(exec)
	linker := graph.NewLinker(exec)
	syncer := sync.NewSyncer(src, writer, linker, reg, logger, cfg.Sync.Workers, cfg.Sync.ItemTimeout)
	status := sync.NewStatusTracker(rdb, logger)
	coord := sync.NewCoordinator(syncer, exec, reg, status, logger)

	if cfg.Sync.Schedule != "" {
		sched := sync.NewScheduler(coord, logger)
		if err := sched.Start(cfg.Sync.Schedule); err != nil {
			logger.Fatal("start sync scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		DB:          pool,
		Graph:       driver,
		Redis:       rdb,
		Coordinator: coord,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
