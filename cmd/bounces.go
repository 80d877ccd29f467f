package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/delivery"
)

var (
	bouncesJobID    string
	bouncesLookback int
	bouncesWait     bool
)

var bouncesCmd = &cobra.Command{
	Use:   "bounces",
	Short: "Reconcile bounce notifications into contact state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		job, err := st.GetJob(ctx, bouncesJobID)
		if err != nil {
			return err
		}
		contacts, err := st.ListContacts(ctx, job.ID)
		if err != nil {
			return err
		}

		if bouncesWait {
			if err := waitForBounces(ctx, time.Duration(cfg.Send.WaitSecs)*time.Second); err != nil {
				return err
			}
		}

		mailbox, err := buildMailbox(ctx)
		if err != nil {
			return err
		}

		lookback := time.Duration(bouncesLookback) * time.Minute
		if bouncesLookback <= 0 {
			lookback = time.Duration(cfg.Send.LookbackMinutes) * time.Minute
		}

		detector := delivery.NewDetector(mailbox)
		updated, hard, err := detector.CheckBounces(ctx, contacts, lookback)
		if err != nil {
			return err
		}

		if err := st.ReplaceContacts(ctx, job.ID, updated); err != nil {
			return err
		}

		zap.L().Info("bounce check complete",
			zap.String("job", job.ID),
			zap.Int("hard_bounces", hard),
			zap.Duration("lookback", lookback),
		)
		return nil
	},
}

// waitForBounces sleeps so freshly-sent mail has time to bounce, logging
// the remaining wait every 15 seconds.
func waitForBounces(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}
	zap.L().Info("waiting for bounce notifications", zap.Duration("wait", wait))

	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return eris.Wrap(ctx.Err(), "bounce wait interrupted")
		case <-ticker.C:
			zap.L().Info("still waiting", zap.Duration("remaining", time.Until(deadline).Round(time.Second)))
		case <-timer.C:
			return nil
		}
	}
}

func init() {
	bouncesCmd.Flags().StringVar(&bouncesJobID, "job", "", "job ID (required)")
	bouncesCmd.Flags().IntVar(&bouncesLookback, "lookback", 0, "bounce lookback window in minutes (default from config)")
	bouncesCmd.Flags().BoolVar(&bouncesWait, "wait", false, "wait before checking so fresh sends can bounce")
	_ = bouncesCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(bouncesCmd)
}
