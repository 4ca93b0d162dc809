// Package fileingest finds inventory files to import.
package fileingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileMeta holds metadata about a file to be imported.
type FileMeta struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

var importExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// IsImportFile reports whether path has a JSON or YAML extension.
func IsImportFile(path string) bool {
	return importExtensions[strings.ToLower(filepath.Ext(path))]
}

/*
DiscoverImportFiles returns the inventory files at root. A file is returned
as is; a directory is walked recursively for .json, .yaml and .yml files,
sorted by path. Hidden directories are skipped.
*/
func DiscoverImportFiles(ctx context.Context, root string) ([]FileMeta, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []FileMeta{metaFromInfo(root, info)}, nil
	}

	var files []FileMeta
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsImportFile(path) {
			return nil
		}
		meta, metaErr := ExtractFileMeta(path)
		if metaErr != nil {
			// Skip files we can't stat, but continue
			return nil
		}
		files = append(files, meta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ExtractFileMeta extracts metadata from a given file path.
func ExtractFileMeta(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, err
	}
	return metaFromInfo(path, info), nil
}

func metaFromInfo(path string, info os.FileInfo) FileMeta {
	return FileMeta{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
