package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saarthi/saarthi/agents/core"
	"saarthi/saarthi/config"
	"saarthi/saarthi/controllers"
	"saarthi/saarthi/routes"
	"saarthi/saarthi/services/intent"
	"saarthi/saarthi/services/llm"
	"saarthi/saarthi/services/maps"
	"saarthi/saarthi/services/prompt"
	"saarthi/saarthi/services/session"
	"saarthi/saarthi/services/traffic"
	"saarthi/saarthi/services/voicelog"
	"saarthi/saarthi/services/wake"
	"saarthi/saarthi/sources/psql"
	"saarthi/saarthi/sources/psql/dao"
	"saarthi/saarthi/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		panic(err)
	}
	defer logging.Sync()

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		logging.ErrorLogger.Error("profile load error", zap.Error(err))
		os.Exit(1)
	}
	systemPrompt := profile.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = prompt.DefaultSystemPrompt
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := session.NewStore(session.WithTTL(cfg.SessionTTL), session.WithDefaultPrompt(systemPrompt))
	mapsClient := maps.NewClient(cfg.GoogleMapsAPIKey)
	reporter := traffic.NewReporter(mapsClient)
	classifier := intent.NewClassifier(mapsClient, reporter)
	generator := llm.NewGenerator(ctx, cfg)
	if generator == nil {
		logging.AppLogger.Info("no generation backend configured, answering with rules only",
			zap.String("provider", cfg.LLMProvider))
	}

	opts := []core.Option{
		core.WithDirections(mapsClient),
		core.WithPersistFallbacks(profile.PersistFallbacks),
	}
	var transcripts *dao.TranscriptDAO
	if cfg.ArchiveEnabled() {
		db, err := psql.NewDatabase(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("database connection error", zap.Error(err))
			os.Exit(1)
		}
		defer db.Close()
		transcripts = dao.NewTranscriptDAO(db.DB)
		opts = append(opts, core.WithArchiver(transcripts))
	}
	orch := core.NewOrchestrator(store, generator, classifier, opts...)

	voice := voicelog.NewRing(voicelog.DefaultCapacity)
	handler := routes.NewRouter(cfg, routes.Controllers{
		Health:     controllers.NewHealthController(store),
		Chat:       controllers.NewChatController(orch, voice),
		Navigation: controllers.NewNavigationController(orch, mapsClient, reporter),
		Wake:       controllers.NewWakeController(wake.NewDetector(profile.WakePhrases, profile.WakeVariants), voice),
		Sessions:   controllers.NewSessionsController(store, transcripts),
		Debug:      controllers.NewDebugController(voice),
	})

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	if cfg.SessionSweepInterval > 0 {
		go store.RunJanitor(runCtx, cfg.SessionSweepInterval)
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			stop()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-runCtx.Done():
	}
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
