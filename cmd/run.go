package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

var (
	runFile   string
	runJobID  string
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full outreach pipeline for one job posting",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if (runFile == "") == (runJobID == "") {
			return eris.New("exactly one of --file or --job is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		var job *model.JobPosting
		if runFile != "" {
			posting, err := loadJobFile(runFile)
			if err != nil {
				return err
			}
			job, err = st.SaveJob(ctx, *posting)
			if err != nil {
				return err
			}
			zap.L().Info("job saved", zap.String("id", job.ID), zap.String("company", job.Company))
		} else {
			job, err = st.GetJob(ctx, runJobID)
			if err != nil {
				return err
			}
		}

		return runPipeline(ctx, st, job, runDryRun)
	},
}

func init() {
	runCmd.Flags().StringVar(&runFile, "file", "", "job posting JSON file")
	runCmd.Flags().StringVar(&runJobID, "job", "", "saved job ID")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "log sends instead of sending")
	rootCmd.AddCommand(runCmd)
}
