package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var emailsJobID string

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Resolve email candidates for a job's discovered contacts",
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

		job, err := st.GetJob(ctx, emailsJobID)
		if err != nil {
			return err
		}
		contacts, err := st.ListContacts(ctx, job.ID)
		if err != nil {
			return err
		}
		if len(contacts) == 0 {
			return eris.Errorf("job %s has no contacts; run find first", job.ID)
		}

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		resolver := buildResolver(reg)
		enriched := resolver.FindEmails(ctx, job.Company, contacts)

		if err := st.ReplaceContacts(ctx, job.ID, enriched); err != nil {
			return err
		}

		withEmail := 0
		for _, c := range enriched {
			if c.Email != "" {
				withEmail++
			}
		}
		zap.L().Info("email resolution complete",
			zap.String("job", job.ID),
			zap.Int("contacts", len(enriched)),
			zap.Int("with_email", withEmail),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(enriched)
	},
}

func init() {
	emailsCmd.Flags().StringVar(&emailsJobID, "job", "", "job ID (required)")
	_ = emailsCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(emailsCmd)
}
