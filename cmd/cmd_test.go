package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"corkcount/internal/services"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImport(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		isJSON bool
		want   []string
	}{
		{"json list", `[{"name":"Estate Cabernet","type":"Red Wine","vintage":2019},{"name":"Brut"}]`, true, []string{"Estate Cabernet", "Brut"}},
		{"json document", `{"wines":[{"name":"Hillside Chardonnay","flavor_notes":"buttery"}]}`, true, []string{"Hillside Chardonnay"}},
		{"yaml list", "- name: Valley Rosé\n  type: Rosé\n  tags: [berry]\n", false, []string{"Valley Rosé"}},
		{"yaml document", "wines:\n  - name: Late Harvest\n    price: 30.5\n", false, []string{"Late Harvest"}},
		{"empty", "  \n", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseImport([]byte(tt.data), tt.isJSON)
			require.NoError(t, err)
			var names []string
			for _, it := range items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestParseImport_Fields(t *testing.T) {
	items, err := parseImport([]byte("- name: Estate Cabernet\n  vintage: 2019\n  flavor_notes: blackberry\n  quantity: 6\n"), false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Vintage)
	assert.Equal(t, 2019, *items[0].Vintage)
	assert.Equal(t, "blackberry", items[0].FlavorNotes)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestParseImport_Invalid(t *testing.T) {
	_, err := parseImport([]byte(`{"wines": [`), true)
	assert.Error(t, err)
}

func TestLoadImportFile_CleansText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wines.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: “Reserve”\n  flavor_notes: forest floor\n"), 0o600))

	items, err := loadImportFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, `"Reserve"`, items[0].Name)
	assert.Equal(t, "forest floor", items[0].FlavorNotes)
}

func TestRenderPreview(t *testing.T) {
	color.NoColor = true
	entries := []services.AutoTagPreviewEntry{
		{ID: "w1", Name: "Estate Cabernet", CurrentTags: []string{"berry", "earthy", "oak"}, SuggestedTags: []string{"berry", "earthy", "oak"}},
		{ID: "w2", Name: "Brut Reserve", CurrentTags: []string{}, SuggestedTags: []string{"citrus", "dry", "light"}, Changed: true},
	}

	var buf bytes.Buffer
	changed := renderPreview(&buf, entries, true)
	assert.Equal(t, 1, changed)
	assert.Contains(t, buf.String(), "Brut Reserve")
	assert.NotContains(t, buf.String(), "Estate Cabernet")

	buf.Reset()
	renderPreview(&buf, entries, false)
	assert.Contains(t, buf.String(), "Estate Cabernet")
}

func TestSuggestCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"suggest", "--name", "Brut Reserve", "--type", "Sparkling", "--display"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Citrus, Dry, Light\n", buf.String())
}
