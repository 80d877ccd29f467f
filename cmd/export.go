package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

var (
	exportJobID string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export contacts to an XLSX workbook",
	Long:  "Writes one sheet per job with every contact's discovery and delivery state. With --job only that job is exported.",
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

		var jobs []model.JobPosting
		if exportJobID != "" {
			job, err := st.GetJob(ctx, exportJobID)
			if err != nil {
				return err
			}
			jobs = []model.JobPosting{*job}
		} else {
			jobs, err = st.ListJobs(ctx)
			if err != nil {
				return err
			}
		}
		if len(jobs) == 0 {
			return eris.New("no jobs to export")
		}

		file := xlsx.NewFile()
		for _, job := range jobs {
			contacts, err := st.ListContacts(ctx, job.ID)
			if err != nil {
				return err
			}
			if err := addJobSheet(file, job, contacts); err != nil {
				return err
			}
		}

		if err := file.Save(exportOut); err != nil {
			return eris.Wrapf(err, "save workbook %s", exportOut)
		}
		zap.L().Info("export complete",
			zap.String("path", exportOut),
			zap.Int("jobs", len(jobs)),
		)
		return nil
	},
}

func addJobSheet(file *xlsx.File, job model.JobPosting, contacts []model.Contact) error {
	sheet, err := file.AddSheet(sheetName(job))
	if err != nil {
		return eris.Wrapf(err, "add sheet for job %s", job.ID)
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Name", "Title", "Profile URL", "Email Candidates", "Source",
		"Found At", "Sent To", "Sent At", "Attempts", "Status",
	} {
		header.AddCell().Value = h
	}

	for _, c := range contacts {
		row := sheet.AddRow()
		row.AddCell().Value = c.Name
		row.AddCell().Value = c.Title
		row.AddCell().Value = c.ProfileURL
		row.AddCell().Value = c.Email
		row.AddCell().Value = c.Source
		row.AddCell().Value = c.FoundAt.Format(time.RFC3339)
		row.AddCell().Value = c.SentTo
		if c.SentAt != nil {
			row.AddCell().Value = c.SentAt.Format(time.RFC3339)
		} else {
			row.AddCell().Value = ""
		}
		row.AddCell().Value = strconv.Itoa(len(c.Tried))
		row.AddCell().Value = c.Bounced.String()
	}
	return nil
}

// sheetName builds a sheet title under Excel's 31-character limit.
func sheetName(job model.JobPosting) string {
	name := job.Company
	if name == "" {
		name = job.ID
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '?', '*', '[', ']', ':':
			return '-'
		}
		return r
	}, name)
	suffix := job.ID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	full := name + " " + suffix
	if len(full) > 31 {
		full = full[:31]
	}
	return full
}

func init() {
	exportCmd.Flags().StringVar(&exportJobID, "job", "", "export a single job")
	exportCmd.Flags().StringVar(&exportOut, "out", "contacts.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
