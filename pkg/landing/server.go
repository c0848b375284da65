package landing

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/config"
)

type Config struct {
	Http config.HttpServer `koanf:"http"`
	Root string            `koanf:"root"`
}

func Command() *cobra.Command {
	return &cobra.Command{
		Use: "landing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return start()
		},
	}
}

// start serves the marketing landing page. Nothing but static files.
func start() error {
	cfg := config.Provide("landing", Config{
		Http: config.HttpServer{Address: ":3000"},
		Root: "./public",
	})

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Static("/", cfg.Root)

	logger.Info("serving landing page", zap.String("address", cfg.Http.Address), zap.String("root", cfg.Root))
	return e.Start(cfg.Http.Address)
}
