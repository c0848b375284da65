package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/config"
	"github.com/complyo-io/complyo-engine/pkg/erecht24"
	"github.com/complyo-io/complyo-engine/pkg/fix"
	"github.com/complyo-io/complyo-engine/pkg/fix/render"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/client"
	"github.com/complyo-io/complyo-engine/pkg/internal/httpclient"
	"github.com/complyo-io/complyo-engine/pkg/session"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

type cliConfig struct {
	Service config.ComplyoService `koanf:"service"`
	Polling config.FixPolling     `koanf:"polling"`
}

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complyo",
		Short: "Complyo compliance fix client",
	}
	cmd.AddCommand(loginCommand())
	cmd.AddCommand(fixCommand())
	cmd.AddCommand(issuesCommand())
	cmd.AddCommand(locksCommand())
	cmd.AddCommand(logoutCommand())
	return cmd
}

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".complyo-session.json"
	}
	return filepath.Join(home, ".complyo", "session.json")
}

func loginCommand() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the access token used for authenticated requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(sessionPath(), token); err != nil {
				return err
			}
			fmt.Println("Zugangstoken gespeichert.")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token issued by the Complyo dashboard")
	cmd.MarkFlagRequired("token")
	return cmd
}

func login(path, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token must not be empty")
	}
	store, err := session.New(path)
	if err != nil {
		return err
	}
	return store.SetAccessToken(token)
}

func issuesCommand() *cobra.Command {
	var (
		issuesFile  string
		minSeverity string
	)

	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Summarize scan findings by compliance pillar",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(issuesFile)
			if err != nil {
				return fmt.Errorf("read issues file: %w", err)
			}
			var issues []types.ComplianceIssue
			if err := json.Unmarshal(data, &issues); err != nil {
				return fmt.Errorf("parse issues file: %w", err)
			}

			issues, err = filterBySeverity(issues, minSeverity)
			if err != nil {
				return err
			}

			fmt.Println(render.PillarSummary(issues))
			return nil
		},
	}
	cmd.Flags().StringVar(&issuesFile, "issues-file", "", "path to the scan findings JSON")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "", "only count issues at or above this severity (info, warning, critical)")
	cmd.MarkFlagRequired("issues-file")
	return cmd
}

func filterBySeverity(issues []types.ComplianceIssue, minSeverity string) ([]types.ComplianceIssue, error) {
	if minSeverity == "" {
		return issues, nil
	}
	threshold := types.ParseIssueSeverity(minSeverity)
	if threshold == "" {
		return nil, fmt.Errorf("unknown severity %q", minSeverity)
	}

	filtered := make([]types.ComplianceIssue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity.Level() >= threshold.Level() {
			filtered = append(filtered, issue)
		}
	}
	return filtered, nil
}

func fixCommand() *cobra.Command {
	var (
		issueFile        string
		scanID           string
		acceptDisclaimer bool
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Request an automated fix for a compliance issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Provide("complyo", cliConfig{
				Service: config.ComplyoService{BaseURL: "http://localhost:8000"},
				Polling: config.FixPolling{
					Interval: fix.DefaultPollInterval,
					Deadline: fix.DefaultPollDeadline,
				},
			})

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(issueFile)
			if err != nil {
				return fmt.Errorf("read issue file: %w", err)
			}
			var issue types.ComplianceIssue
			if err := json.Unmarshal(data, &issue); err != nil {
				return fmt.Errorf("parse issue file: %w", err)
			}

			store, err := session.New(sessionPath())
			if err != nil {
				return err
			}

			jobs := client.NewFixJobServiceClient(cfg.Service.BaseURL)
			legal := erecht24.NewClient(cfg.Service.BaseURL, store.AccessToken())
			presenter := fix.NewPresenter(logger)

			initiator := fix.NewInitiator(logger, jobs, legal, store)

			conf, err := initiator.Prepare(types.SingleTarget(issue))
			if err != nil {
				var validation *fix.ValidationError
				if errors.As(err, &validation) {
					fmt.Println(render.Presentation(presenter.PresentError(validation)))
					return nil
				}
				return err
			}

			if conf.RequiresDisclaimer && !acceptDisclaimer {
				fmt.Println("Erster Fix: Bitte bestätigen Sie den Haftungshinweis mit --accept-disclaimer.")
				fmt.Println("Complyo erstellt Vorschläge ohne Gewähr; die rechtliche Prüfung bleibt beim Betreiber.")
				return nil
			}

			submission, err := initiator.Submit(cmd.Context(), conf, scanID, acceptDisclaimer)
			if err != nil {
				fmt.Println(render.Presentation(presenter.PresentError(err)))
				return nil
			}

			switch {
			case submission.LegalTextFile != "":
				fmt.Printf("Rechtstext gespeichert: %s\n", submission.LegalTextFile)
				return nil

			case submission.Result != nil:
				raw, _ := json.Marshal(submission.Result)
				fmt.Println(render.Presentation(presenter.Present(&api.JobStatusResponse{
					Status: types.FixJobCompleted,
					Result: raw,
				})))
				return nil

			default:
				poller := fix.NewPoller(logger, jobs, cfg.Polling.Interval, cfg.Polling.Deadline)
				httpCtx := &httpclient.Context{Ctx: cmd.Context(), BearerToken: store.AccessToken()}

				resp, err := poller.Poll(cmd.Context(), httpCtx, submission.JobID, func(snap fix.Snapshot) {
					fmt.Printf("\r%s", render.Progress(snap))
				})
				fmt.Println()
				if err != nil {
					fmt.Println(render.Presentation(presenter.PresentError(err)))
					return nil
				}

				if err := store.RemoveActiveJob(submission.JobID); err != nil {
					logger.Warn("failed to clear active job", zap.Error(err))
				}
				fmt.Println(render.Presentation(presenter.Present(resp)))
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&issueFile, "issue-file", "", "path to the issue JSON")
	cmd.Flags().StringVar(&scanID, "scan-id", "", "scan the issue belongs to")
	cmd.Flags().BoolVar(&acceptDisclaimer, "accept-disclaimer", false, "acknowledge the liability disclaimer")
	cmd.MarkFlagRequired("issue-file")
	return cmd
}

func locksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locks",
		Short: "Show per-domain fix quotas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Provide("complyo", cliConfig{
				Service: config.ComplyoService{BaseURL: "http://localhost:8000"},
			})

			store, err := session.New(sessionPath())
			if err != nil {
				return err
			}

			jobs := client.NewFixJobServiceClient(cfg.Service.BaseURL)
			locks, err := jobs.ListDomainLocks(&httpclient.Context{Ctx: cmd.Context(), BearerToken: store.AccessToken()})
			if err != nil {
				return err
			}

			for _, lock := range locks {
				state := fmt.Sprintf("%d/%d Fixes", lock.FixesUsed, lock.FixesLimit)
				if lock.IsUnlocked {
					state = "unbegrenzt"
				}
				fmt.Printf("%-40s %s\n", lock.Domain, state)
			}
			return nil
		},
	}
}

func logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.New(sessionPath())
			if err != nil {
				return err
			}
			return store.Reset()
		},
	}
}
