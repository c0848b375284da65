package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/config"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/db"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/generate"
	"github.com/complyo-io/complyo-engine/pkg/internal/postgres"
)

type WorkerConfig struct {
	Postgres              config.Postgres `koanf:"postgres"`
	NATS                  config.NATS     `koanf:"nats"`
	OpenAI                config.OpenAI   `koanf:"openai"`
	PlaybooksPath         string          `koanf:"playbooks_path"`
	PrometheusPushAddress string          `koanf:"prometheus_push_address"`
}

func Command() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use: "fixjob-worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(cmd.Context(), id)
		},
	}
	cmd.Flags().StringVar(&id, "id", os.Getenv("WORKER_ID"), "worker id")
	return cmd
}

func start(ctx context.Context, id string) error {
	cfg := config.Provide("fixworker", WorkerConfig{
		NATS: config.NATS{URL: "nats://localhost:4222"},
	})

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	logger = logger.Named("fix-worker")

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

	playbooks, err := generate.LoadPlaybooks(cfg.PlaybooksPath)
	if err != nil {
		return fmt.Errorf("load playbooks: %w", err)
	}

	var generator generate.Generator = generate.NewPlaybookGenerator(playbooks)
	if cfg.OpenAI.APIKey != "" {
		generator = generate.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model,
			generate.NewPlaybookGenerator(playbooks))
	}

	w, err := NewWorker(id, cfg.NATS.URL, database, logger, generator, cfg.PrometheusPushAddress, ctx)
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Run(ctx)
}
