package cmd

import (
	"fmt"
	"strings"

	"corkcount/pkg/autotag"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag <wine_id> <tag...>",
	Short: "Replace the tags of a wine",
	Long: `Replaces the tags of the wine identified by its ID. Tags are lowercased,
trimmed, deduplicated and sorted before they are stored.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wineID := args[0]
		tags := args[1:]

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		log.Debugf("Tagging wine %s with %v", wineID, tags)
		stored, err := appInstance.InventoryService.SetTags(cmd.Context(), wineID, tags)
		if err != nil {
			return fmt.Errorf("failed to apply tags to wine %s: %w", wineID, err)
		}
		if len(stored) == 0 {
			fmt.Printf("Cleared tags of wine %s (no valid tags given)\n", wineID)
			return nil
		}

		fmt.Printf("Wine %s is now tagged: %s\n", wineID, strings.Join(autotag.FormatTagsForDisplay(stored), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
}
