package clix

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("limit", 0, "")
	fs.Int("offset", 0, "")
	fs.String("tags", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestParsePagination(t *testing.T) {
	p, err := ParsePagination(newFlags(t), 25)
	require.NoError(t, err)
	assert.Equal(t, PaginationParams{Limit: 25, Offset: 0}, p)

	p, err = ParsePagination(newFlags(t, "--limit", "5", "--offset", "10"), 25)
	require.NoError(t, err)
	assert.Equal(t, PaginationParams{Limit: 5, Offset: 10}, p)

	_, err = ParsePagination(newFlags(t, "--offset", "-1"), 25)
	assert.Error(t, err)
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags(newFlags(t, "--tags", " berry, ,Oak ,"))
	require.NoError(t, err)
	assert.Equal(t, []string{"berry", "Oak"}, tags)

	tags, err = ParseTags(newFlags(t))
	require.NoError(t, err)
	assert.Nil(t, tags)
}
