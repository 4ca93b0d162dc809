package cmd

import (
	"fmt"
	"os"
	"time"

	"corkcount/internal/clix"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	jobsListLimit  int
	jobsListOffset int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect background auto-tag jobs",
}

// jobsListCmd represents the list command for jobs
var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		pagination, err := clix.ParsePagination(cmd.Flags(), 20)
		if err != nil {
			return err
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		jobs, err := appInstance.JobService.ListJobs(cmd.Context(), pagination.Limit, pagination.Offset)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		if len(jobs) == 0 {
			fmt.Println("No jobs found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Job ID", "Status", "Task Type", "Queue", "Requested By", "Created At", "Updated At"})
		table.SetBorder(true)
		table.SetRowLine(true)

		for _, job := range jobs {
			table.Append([]string{
				job.JobID.String(),
				job.Status,
				job.TaskType,
				job.Queue,
				job.RequestedBy,
				job.CreatedAt.Format(time.RFC3339),
				job.UpdatedAt.Format(time.RFC3339),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd)

	jobsListCmd.Flags().IntVarP(&jobsListLimit, "limit", "n", 20, "Maximum number of jobs to list")
	jobsListCmd.Flags().IntVarP(&jobsListOffset, "offset", "o", 0, "Number of jobs to skip")
}
