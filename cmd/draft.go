package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/draft"
	anthropicpkg "github.com/sells-group/outreach-cli/pkg/anthropic"
)

var draftJobID string

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate the outreach email draft for a job posting",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is required (OUTREACH_ANTHROPIC_KEY)")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		job, err := st.GetJob(ctx, draftJobID)
		if err != nil {
			return err
		}

		drafter := draft.NewDrafter(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		subject, body, err := drafter.Draft(ctx, *job)
		if err != nil {
			return err
		}

		job.EmailSubject = subject
		job.EmailBody = body
		if err := st.UpdateJob(ctx, *job); err != nil {
			return err
		}

		zap.L().Info("draft saved",
			zap.String("job", job.ID),
			zap.String("subject", subject),
		)
		fmt.Printf("Subject: %s\n\n%s\n", subject, body)
		return nil
	},
}

func init() {
	draftCmd.Flags().StringVar(&draftJobID, "job", "", "job ID (required)")
	_ = draftCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(draftCmd)
}
