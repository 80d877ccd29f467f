package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var findJobID string

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find recruiter contacts for a saved job posting",
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

		job, err := st.GetJob(ctx, findJobID)
		if err != nil {
			return err
		}

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		cascade := buildCascade(reg)
		contacts, err := cascade.Run(ctx, *job, cfg.Search.MaxResults)
		if err != nil {
			return eris.Wrap(err, "recruiter search")
		}

		if err := st.ReplaceContacts(ctx, job.ID, contacts); err != nil {
			return err
		}

		zap.L().Info("recruiter search complete",
			zap.String("job", job.ID),
			zap.String("company", job.Company),
			zap.Int("contacts", len(contacts)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(contacts)
	},
}

func init() {
	findCmd.Flags().StringVar(&findJobID, "job", "", "job ID (required)")
	_ = findCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(findCmd)
}
