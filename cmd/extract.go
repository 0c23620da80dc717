package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ohmyshower/order-cli/internal/extract"
	"github.com/ohmyshower/order-cli/internal/oracle"
	"github.com/ohmyshower/order-cli/internal/resilience"
	"github.com/ohmyshower/order-cli/pkg/anthropic"
)

var (
	extractInput  string
	extractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract order lines from a mailbox dump",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("extract"); err != nil {
			return err
		}

		emails, err := extract.LoadEmails(extractInput)
		if err != nil {
			return err
		}

		reg, err := initRegistry(ctx)
		if err != nil {
			return err
		}
		defer reg.Close()

		retry := resilience.DefaultPolicy()
		if cfg.Anthropic.MaxRetries > 0 {
			retry.MaxAttempts = cfg.Anthropic.MaxRetries
		}
		claude := oracle.NewClaude(anthropic.NewClient(cfg.Anthropic.Key), oracle.Config{
			DefaultModel:      cfg.Anthropic.HaikuModel,
			ComplexModel:      cfg.Anthropic.SonnetModel,
			MaxTokens:         int64(cfg.Anthropic.MaxTokens),
			Retry:             retry,
			RequestsPerSecond: cfg.Anthropic.RequestsPerSecond,
		})

		p := extract.New(claude, reg, cfg.Match.CustomerThreshold, cfg.Match.AttributeThreshold)

		result, err := p.Run(ctx, emails)
		if err != nil {
			return eris.Wrap(err, "extract run")
		}
		if err := p.Persist(ctx, result); err != nil {
			return err
		}

		if extractOutput != "" {
			valid, rejected := extract.SplitValid(result.Lines)
			if len(rejected) > 0 {
				zap.L().Warn("extract: lines rejected from export", zap.Int("rejected", len(rejected)))
			}
			f, err := os.Create(extractOutput)
			if err != nil {
				return eris.Wrapf(err, "create %s", extractOutput)
			}
			defer f.Close()
			if err := extract.WriteCSV(f, valid); err != nil {
				return err
			}
			zap.L().Info("extract: csv written", zap.String("path", extractOutput), zap.Int("rows", len(valid)))
		}

		zap.L().Info("extract: complete",
			zap.String("job_id", result.JobID),
			zap.Int("emails", len(emails)),
			zap.Int("lines", len(result.Lines)),
			zap.Int("failures", len(result.Failures)))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractInput, "input", "", "path to the mailbox JSON dump (required)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write valid lines to a CSV file")
	_ = extractCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(extractCmd)
}
