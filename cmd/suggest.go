package cmd

import (
	"fmt"
	"io"
	"strings"

	"corkcount/pkg/autotag"

	"github.com/spf13/cobra"
)

var (
	suggestName        string
	suggestType        string
	suggestNotes       string
	suggestDescription string
	suggestDisplay     bool
	suggestVocabulary  bool
)

// suggestCmd runs the tagging engine on ad-hoc text. It needs no database.
var suggestCmd = &cobra.Command{
	Use:         "suggest",
	Short:       "Suggest tags for a wine description",
	Annotations: map[string]string{skipAppAnnotation: "true"},
	Example: `  corkcount suggest --name "Estate Cabernet" --type "Red Wine" --notes "blackberry and cedar"
  corkcount suggest --vocabulary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if suggestVocabulary {
			printVocabulary(out)
			return nil
		}

		if suggestName == "" && suggestType == "" && suggestNotes == "" && suggestDescription == "" {
			return fmt.Errorf("provide at least one of --name, --type, --notes or --description")
		}
		tags := autotag.SanitizeTags(autotag.AutoTagWine(autotag.WineTextInput{
			Name:        suggestName,
			Type:        suggestType,
			FlavorNotes: suggestNotes,
			Description: suggestDescription,
		}))
		if len(tags) == 0 {
			fmt.Fprintln(out, "No tags matched.")
			return nil
		}
		if suggestDisplay {
			tags = autotag.FormatTagsForDisplay(tags)
		}
		fmt.Fprintln(out, strings.Join(tags, ", "))
		return nil
	},
}

func printVocabulary(out io.Writer) {
	fmt.Fprintf(out, "Flavor tags:  %s\n", strings.Join(autotag.FormatTagsForDisplay(autotag.SuggestedTags()), ", "))
	fmt.Fprintf(out, "Context tags: %s\n", strings.Join(autotag.FormatTagsForDisplay(autotag.ContextualTags()), ", "))
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVar(&suggestName, "name", "", "Wine name")
	suggestCmd.Flags().StringVar(&suggestType, "type", "", "Wine type, e.g. \"Red Wine\"")
	suggestCmd.Flags().StringVar(&suggestNotes, "notes", "", "Flavor notes")
	suggestCmd.Flags().StringVar(&suggestDescription, "description", "", "Free-text description")
	suggestCmd.Flags().BoolVar(&suggestDisplay, "display", false, "Capitalize tags for display")
	suggestCmd.Flags().BoolVar(&suggestVocabulary, "vocabulary", false, "List the tag vocabulary instead")
}
