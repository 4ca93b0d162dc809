package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"corkcount/internal/clix"
	"corkcount/internal/fileingest"
	"corkcount/internal/models"
	"corkcount/internal/services"
	"corkcount/internal/util"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	listLimit  int
	listOffset int
	listType   string
	listTags   string
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List and import wines",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wines in the inventory",
	Long: `Displays wines stored in the database. Supports pagination and filtering
by type and tags (every given tag must be present).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pagination, err := clix.ParsePagination(cmd.Flags(), 50)
		if err != nil {
			return err
		}
		filterTags, err := clix.ParseTags(cmd.Flags())
		if err != nil {
			return err
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}

		wines, err := appInstance.InventoryService.ListWines(cmd.Context(), services.ListWinesParams{
			Limit:      pagination.Limit,
			Offset:     pagination.Offset,
			Type:       listType,
			FilterTags: filterTags,
		})
		if err != nil {
			return fmt.Errorf("failed to list wines: %w", err)
		}
		if len(wines) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No wines found.")
			return nil
		}
		renderWines(cmd.OutOrStdout(), wines)
		return nil
	},
}

func renderWines(out io.Writer, wines []*models.Wine) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Name", "Vintage", "Type", "Price", "Qty", "Tags"})
	table.SetAutoWrapText(false)
	table.SetBorder(true)

	for _, w := range wines {
		vintage := "NV"
		if w.Vintage != nil {
			vintage = strconv.Itoa(*w.Vintage)
		}
		table.Append([]string{
			w.ID,
			w.Name,
			vintage,
			w.Type,
			strconv.FormatFloat(w.Price, 'f', 2, 64),
			strconv.Itoa(w.Quantity),
			strings.Join(w.Tags, ", "),
		})
	}
	table.Render()
}

var inventoryImportCmd = &cobra.Command{
	Use:   "import <file|dir>",
	Short: "Bulk-create wines from JSON or YAML files",
	Long: `Reads lists of wines from a JSON or YAML file, or from every .json,
.yaml and .yml file under a directory, and creates each one. Wines without
tags are tagged automatically when autotag.apply_on_create is set. Wines that
already exist (same name and vintage) are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := fileingest.DiscoverImportFiles(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to find import files: %w", err)
		}
		var items []services.CreateWineParams
		for _, f := range files {
			fileItems, err := loadImportFile(f.Path)
			if err != nil {
				return err
			}
			log.Debugf("Read %d wines from %s", len(fileItems), f.Path)
			items = append(items, fileItems...)
		}
		if len(items) == 0 {
			return fmt.Errorf("no wines found in %s", args[0])
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		log.Infof("Importing %d wines from %d file(s)", len(items), len(files))
		res := appInstance.InventoryService.ImportWines(cmd.Context(), items)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d, %s %d, %s %d\n",
			color.GreenString("Created"), res.Created,
			color.YellowString("Skipped"), res.Skipped,
			color.RedString("Failed"), res.Failed)
		for _, e := range res.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
		return nil
	},
}

// importFile is the document form of an import; a bare list is accepted too.
type importFile struct {
	Wines []services.CreateWineParams `json:"wines" yaml:"wines"`
}

// loadImportFile reads wines from path. The format follows the extension;
// .json is decoded as JSON and anything else as YAML.
func loadImportFile(path string) ([]services.CreateWineParams, error) {
	content, err := util.ReadTextFile(path)
	if err != nil {
		return nil, err
	}
	return parseImport([]byte(content), strings.ToLower(filepath.Ext(path)) == ".json")
}

func parseImport(data []byte, isJSON bool) ([]services.CreateWineParams, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	var list []services.CreateWineParams
	if isJSON {
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal(data, &list); err != nil {
				return nil, fmt.Errorf("decode JSON import: %w", err)
			}
			return list, nil
		}
		var doc importFile
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode JSON import: %w", err)
		}
		return doc.Wines, nil
	}

	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var doc importFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode YAML import: %w", err)
	}
	return doc.Wines, nil
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryImportCmd)

	inventoryListCmd.Flags().IntVarP(&listLimit, "limit", "l", 50, "Number of wines to display")
	inventoryListCmd.Flags().IntVarP(&listOffset, "offset", "o", 0, "Number of wines to skip (for pagination)")
	inventoryListCmd.Flags().StringVar(&listType, "type", "", "Only list wines of this type")
	inventoryListCmd.Flags().StringVarP(&listTags, "tags", "T", "", "Comma-separated list of tags to filter by (match all)")
}
