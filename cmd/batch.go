package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/outreach-cli/internal/model"
)

var (
	batchFile        string
	batchConcurrency int
	batchDryRun      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the pipeline for multiple job postings",
	Long:  "Reads a JSON array of job postings and runs the full pipeline for each. Jobs run concurrently; the search cascade stays sequential within each job.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(batchFile)
		if err != nil {
			return eris.Wrapf(err, "read batch file %s", batchFile)
		}
		var postings []model.JobPosting
		if err := json.Unmarshal(data, &postings); err != nil {
			return eris.Wrapf(err, "parse batch file %s", batchFile)
		}
		if len(postings) == 0 {
			return eris.New("batch file has no postings")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchConcurrency)

		for i := range postings {
			posting := postings[i]
			g.Go(func() error {
				if posting.JobFamily == "" {
					posting.JobFamily = model.FamilyOther
				}
				job, err := st.SaveJob(gctx, posting)
				if err != nil {
					return err
				}
				if err := runPipeline(gctx, st, job, batchDryRun); err != nil {
					zap.L().Error("pipeline failed",
						zap.String("job", job.ID),
						zap.String("company", job.Company),
						zap.Error(err),
					)
					return err
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch run")
		}
		zap.L().Info("batch complete", zap.Int("jobs", len(postings)))
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "JSON file with an array of job postings (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 2, "jobs processed in parallel")
	batchCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "log sends instead of sending")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}
