package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sendJobID  string
	sendMax    int
	sendDryRun bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send the outreach draft to eligible contacts",
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

		job, err := st.GetJob(ctx, sendJobID)
		if err != nil {
			return err
		}
		contacts, err := st.ListContacts(ctx, job.ID)
		if err != nil {
			return err
		}

		mailbox, err := buildMailbox(ctx)
		if err != nil {
			return err
		}

		maxSend := sendMax
		if maxSend <= 0 {
			maxSend = cfg.Send.MaxSend
		}

		sender := buildSender(mailbox, st).WithDryRun(sendDryRun)
		updated, err := sender.SendBatch(ctx, job.ID, *job, contacts, maxSend)
		if err != nil {
			return err
		}

		sent := 0
		for i := range updated {
			if updated[i].SentAt != nil && (contacts[i].SentAt == nil || !updated[i].SentAt.Equal(*contacts[i].SentAt)) {
				sent++
			}
		}
		zap.L().Info("send batch complete",
			zap.String("job", job.ID),
			zap.Int("sent", sent),
			zap.Bool("dry_run", sendDryRun),
		)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendJobID, "job", "", "job ID (required)")
	sendCmd.Flags().IntVar(&sendMax, "max", 0, "max sends this batch (default from config)")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "log instead of sending")
	_ = sendCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(sendCmd)
}
