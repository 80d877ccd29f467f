package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List saved job postings",
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

		jobs, err := st.ListJobs(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCOMPANY\tTITLE\tFAMILY\tCONTACTS\tDRAFT")
		for _, job := range jobs {
			contacts, err := st.ListContacts(ctx, job.ID)
			if err != nil {
				return err
			}
			draft := "no"
			if job.EmailSubject != "" {
				draft = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				job.ID, job.Company, job.JobTitle, job.JobFamily, len(contacts), draft)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
