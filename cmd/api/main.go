package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qa-triage-assistant/config"
	_ "qa-triage-assistant/docs" // Swagger docs
	"qa-triage-assistant/internal/bugfiler"
	"qa-triage-assistant/internal/httpserver"
	"qa-triage-assistant/internal/interact"
	"qa-triage-assistant/internal/notify"
	"qa-triage-assistant/internal/prd"
	"qa-triage-assistant/internal/summarize"
	"qa-triage-assistant/internal/triage"
	"qa-triage-assistant/internal/webhook"
	"qa-triage-assistant/pkg/confluence"
	"qa-triage-assistant/pkg/jira"
	"qa-triage-assistant/pkg/llmprovider"
	"qa-triage-assistant/pkg/log"
	"qa-triage-assistant/pkg/slack"
)

// @title       QA Triage Assistant API
// @description Webhook-driven CI failure triage: LLM summaries, confidence scoring, Slack notifications, and Jira bug filing.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting QA Triage Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)
	logger.Infof(ctx, "LLM chain ready with %d provider(s)", len(providers))

	// 4. Slack client
	slackClient := slack.NewClient(cfg.Slack.BotToken)

	// 5. Jira filing
	jiraClient, err := jira.NewClient(jira.Config{
		BaseURL: cfg.Jira.URL,
		User:    cfg.Jira.User,
		Token:   cfg.Jira.Token,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize Jira client: ", err)
		return
	}
	filer := bugfiler.New(jiraClient, cfg.Jira, logger)

	// 6. Triage pipeline
	summarizer := summarize.New(llmManager, logger)
	notifier := notify.New(slackClient, cfg.Slack.Channel, logger)
	triageUC := triage.New(logger, triage.Policy{
		AutoFileThreshold:   cfg.Triage.AutoFileThreshold,
		DefaultAssignee:     cfg.Triage.DefaultAssignee,
		DefaultTeamCategory: cfg.Triage.DefaultTeamCategory,
	}, summarizer, notifier, filer)

	failureHandler := webhook.NewHandler(triageUC, webhook.SecurityConfig{
		Enabled:         cfg.Webhook.Enabled,
		Secret:          cfg.Webhook.Secret,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	}, logger)

	// 7. Slack interactivity
	interactHandler := interact.NewHandler(slackClient, filer, cfg.Slack.Assignees, logger)

	// 8. PRD parsing (optional, needs Confluence credentials)
	var prdHandler *prd.Handler
	if cfg.Confluence.BaseURL != "" {
		confluenceClient, cErr := confluence.NewClient(confluence.Config{
			BaseURL: cfg.Confluence.BaseURL,
			Email:   cfg.Confluence.Email,
			Token:   cfg.Confluence.Token,
		})
		if cErr != nil {
			logger.Warnf(ctx, "Confluence not available (optional): %v", cErr)
		} else {
			prdHandler = prd.NewHandler(prd.New(confluenceClient, llmManager, logger), logger)
			logger.Info(ctx, "PRD parsing initialized")
		}
	} else {
		logger.Warn(ctx, "PRD parsing skipped: confluence.base_url is missing")
	}

	// 9. HTTP Server
	serverCfg := httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		FailureHandler:  failureHandler,
		InteractHandler: interactHandler,
	}
	if prdHandler != nil {
		serverCfg.PRDHandler = prdHandler
	}

	httpServer, err := httpserver.New(logger, serverCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
