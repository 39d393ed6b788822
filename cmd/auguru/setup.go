package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/Reon1917/AU-GURU/internal/config"
	"github.com/Reon1917/AU-GURU/internal/core"
	"github.com/Reon1917/AU-GURU/internal/knowledge"
	"github.com/Reon1917/AU-GURU/internal/prompt"
	"github.com/Reon1917/AU-GURU/internal/providers/llm"
	"github.com/Reon1917/AU-GURU/internal/service/chat"
	"github.com/Reon1917/AU-GURU/internal/session"
	"github.com/Reon1917/AU-GURU/internal/storage/sqlite"
	httptransport "github.com/Reon1917/AU-GURU/internal/transport/http"
	"github.com/Reon1917/AU-GURU/internal/transport/telegram"
	"github.com/Reon1917/AU-GURU/pkg/log"
	"github.com/Reon1917/AU-GURU/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	if err := initEnv(ctx, appCfg.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	llmCfg := config.NewLLMConfig(ctx)

	// 2. Knowledge base, loaded once and read-only afterwards
	kb := knowledge.Load(ctx)
	logger.Info().Msg(kb.String())

	// 3. Transcript journal
	var transcripts core.TranscriptRepo
	if appCfg.EnableTranscripts {
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize storage")
		}
		services = append(services, srv.NewCleanup(db.Close))
		transcripts = sqlite.NewTranscriptsRepo(db)
	}

	// 4. AI provider
	aiProvider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 5. Session registry with background sweep
	registry := session.NewRegistry(session.Config{
		MaxExchanges:  appCfg.MaxExchanges,
		IdleTimeout:   appCfg.SessionTimeout,
		SweepInterval: appCfg.SweepInterval,
	})
	services = append(services, registry)

	// 6. Chat service
	service := chat.NewService(aiProvider, registry, prompt.New(kb), transcripts)

	// 7. Transports
	services = append(services, httptransport.NewServer(ctx, appCfg.HTTPAddr, service, transcripts))

	if appCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, service)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
