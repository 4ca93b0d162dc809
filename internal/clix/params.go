// Package clix holds flag parsing shared by the CLI commands.
package clix

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePagination reads --limit and --offset. A non-positive limit falls back
// to defaultLimit; a negative offset is an error.
func ParsePagination(flags *pflag.FlagSet, defaultLimit int) (PaginationParams, error) {
	limit, _ := flags.GetInt("limit")
	offset, _ := flags.GetInt("offset")
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		return PaginationParams{}, fmt.Errorf("--offset must not be negative, got %d", offset)
	}
	return PaginationParams{Limit: limit, Offset: offset}, nil
}

// ParseTags reads the comma separated --tags flag.
func ParseTags(flags *pflag.FlagSet) ([]string, error) {
	tagsStr, err := flags.GetString("tags")
	if err != nil {
		return nil, err
	}
	return SplitTags(tagsStr), nil
}

// SplitTags splits a comma separated list, dropping blank entries.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
