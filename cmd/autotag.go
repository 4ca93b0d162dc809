package cmd

import (
	"fmt"
	"io"
	"strings"

	"corkcount/internal/services"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	previewChangedOnly bool
	runAsync           bool
	runConcurrency     int
)

var autotagCmd = &cobra.Command{
	Use:   "autotag",
	Short: "Reconcile stored wine tags with the tagging engine",
}

var autotagPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the tags a reconciliation would write, without writing",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		preview := appInstance.AutoTagService.PreviewAutoTags(cmd.Context())
		if !preview.Success {
			return fmt.Errorf("preview failed: %s", preview.Error)
		}
		if len(preview.Previews) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), services.NoWinesMessage)
			return nil
		}
		changed := renderPreview(cmd.OutOrStdout(), preview.Previews, previewChangedOnly)
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d wines would change.\n", changed, len(preview.Previews))
		return nil
	},
}

// renderPreview writes the preview table and returns the number of changed
// wines.
func renderPreview(out io.Writer, entries []services.AutoTagPreviewEntry, changedOnly bool) int {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Wine ID", "Name", "Current Tags", "Suggested Tags", "Changed"})
	table.SetAutoWrapText(false)
	table.SetBorder(true)
	table.SetRowLine(true)

	changed := 0
	for _, e := range entries {
		mark := "no"
		if e.Changed {
			changed++
			mark = color.YellowString("yes")
		} else if changedOnly {
			continue
		}
		table.Append([]string{
			e.ID,
			e.Name,
			strings.Join(e.CurrentTags, ", "),
			strings.Join(e.SuggestedTags, ", "),
			mark,
		})
	}
	table.Render()
	return changed
}

var autotagRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Recompute and store tags for every wine",
	Long: `Recomputes the tags of every wine and writes back those that differ.
With --async the run is queued for 'corkcount worker' instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if runAsync {
			jobID, err := appInstance.JobService.EnqueueAutoTag(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Queued auto-tag job %s\n", jobID)
			return nil
		}

		svc := appInstance.AutoTagService
		if cmd.Flags().Changed("concurrency") {
			svc = services.NewAutoTagService(appInstance.Store, services.AutoTagOptions{Concurrency: runConcurrency})
		}
		res := svc.BatchAutoTagInventory(cmd.Context())
		printRunSummary(out, res)
		if res.FetchFailed() {
			return fmt.Errorf("auto-tag run aborted")
		}
		return nil
	},
}

func printRunSummary(out io.Writer, res *services.BatchAutoTagResult) {
	status := color.GreenString("OK")
	if !res.Success {
		status = color.RedString("ERRORS")
	}
	fmt.Fprintf(out, "Auto-tag %s: %d processed, %d failed\n", status, res.Processed, res.Failed)
	for _, e := range res.Errors {
		fmt.Fprintf(out, "  - %s\n", e)
	}
}

func init() {
	rootCmd.AddCommand(autotagCmd)
	autotagCmd.AddCommand(autotagPreviewCmd)
	autotagCmd.AddCommand(autotagRunCmd)

	autotagPreviewCmd.Flags().BoolVar(&previewChangedOnly, "changed-only", false, "Only list wines whose tags would change")
	autotagRunCmd.Flags().BoolVar(&runAsync, "async", false, "Queue the run for the background worker")
	autotagRunCmd.Flags().IntVarP(&runConcurrency, "concurrency", "c", 1, "Number of wines reconciled in parallel")
}
