package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhyrak/exam-scheduler/internal/metrics"
	"github.com/rhyrak/exam-scheduler/internal/scheduler"
	"github.com/rhyrak/exam-scheduler/internal/store"
	"github.com/rhyrak/exam-scheduler/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "configuration file")
	flag.Parse()

	cfg, err := scheduler.LoadConfiguration(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl, err := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	recorder, err := metrics.NewRecorder(nil)
	if err != nil {
		zl.Fatal("init metrics", zap.Error(err))
	}
	if cfg.Env == logger.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newRouter(newServer(cfg, store.New(), recorder, zl)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Error("server shutdown", zap.Error(err))
		}
	}()

	zl.Info("server_listening", zap.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(s.logger), cors)

	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	schedules := r.Group("/schedules")
	schedules.POST("", s.handlePostSchedule)
	schedules.GET("", s.handleGetSchedules)
	schedules.GET("/:id", s.handleGetSchedule)
	schedules.DELETE("/:id", s.handleDeleteSchedule)
	schedules.POST("/:id/regenerate", s.handleRegenerate)
	schedules.GET("/:id/validation", s.handleGetValidation)
	schedules.GET("/:id/export.csv", s.handleExportCSV)
	schedules.GET("/:id/export.pdf", s.handleExportPDF)
	return r
}

func cors(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
