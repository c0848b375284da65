package fixjob

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/config"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/db"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/generate"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/legaltext"
	"github.com/complyo-io/complyo-engine/pkg/internal/httpserver"
	"github.com/complyo-io/complyo-engine/pkg/internal/jobqueue"
	"github.com/complyo-io/complyo-engine/pkg/internal/postgres"
)

type ServiceConfig struct {
	Postgres config.Postgres   `koanf:"postgres"`
	Http     config.HttpServer `koanf:"http"`
	NATS     config.NATS       `koanf:"nats"`
	OpenAI   config.OpenAI     `koanf:"openai"`
	Quota    config.FixQuota   `koanf:"quota"`
	Auth     config.Auth       `koanf:"auth"`
	Company  config.Company    `koanf:"company"`
}

func ServiceCommand() *cobra.Command {
	return &cobra.Command{
		Use: "fixjob-service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startService(cmd.Context())
		},
	}
}

func startService(ctx context.Context) error {
	cfg := config.Provide("fixjob", ServiceConfig{
		Http:  config.HttpServer{Address: ":8000"},
		NATS:  config.NATS{URL: "nats://localhost:4222"},
		Quota: config.FixQuota{FreeFixesPerDomain: 1},
	})

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	logger = logger.Named("fixjob")

	postgresCfg := postgres.Config{
		Host:    cfg.Postgres.Host,
		Port:    cfg.Postgres.Port,
		User:    cfg.Postgres.Username,
		Passwd:  cfg.Postgres.Password,
		DB:      cfg.Postgres.DB,
		SSLMode: cfg.Postgres.SSLMode,
	}
	orm, err := postgres.NewClient(&postgresCfg, logger)
	if err != nil {
		return fmt.Errorf("new postgres client: %w", err)
	}

	database := db.Database{Orm: orm}
	if err := database.Initialize(); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	jq, err := jobqueue.New(cfg.NATS.URL, logger)
	if err != nil {
		logger.Error("failed to create job queue", zap.Error(err))
		return err
	}
	if err := jq.Stream(ctx, StreamName, "fix job queue", []string{JobsQueueName}, 1000); err != nil {
		return fmt.Errorf("setup stream: %w", err)
	}

	playbooks, err := generate.DefaultPlaybooks()
	if err != nil {
		return err
	}
	var syncGenerator generate.Generator = generate.NewPlaybookGenerator(playbooks)
	if cfg.OpenAI.APIKey != "" {
		syncGenerator = generate.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model,
			generate.NewPlaybookGenerator(playbooks))
	}

	legal := legaltext.NewGenerator(legaltext.Company{
		Name:          cfg.Company.Name,
		Owner:         cfg.Company.Owner,
		Street:        cfg.Company.Street,
		City:          cfg.Company.City,
		Email:         cfg.Company.Email,
		Phone:         cfg.Company.Phone,
		VATID:         cfg.Company.VATID,
		RegisterCourt: cfg.Company.RegisterCourt,
	})

	handler := NewHttpHandler(logger, database, jq, legal, syncGenerator,
		cfg.Quota.FreeFixesPerDomain, cfg.Auth.JWTSecret)

	return fmt.Errorf("http server: %w", httpserver.RegisterAndStart(logger, cfg.Http.Address, handler))
}
