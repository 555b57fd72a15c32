// Package snapdir lists the snapshot directory for the gallery.
package snapdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/rs/zerolog"
)

// DirLister reads file names straight from disk on every call.
type DirLister struct {
	dir    string
	logger zerolog.Logger
}

// NewDirLister creates a lister for dir.
func NewDirLister(dir string, logger zerolog.Logger) *DirLister {
	return &DirLister{
		dir:    dir,
		logger: logger.With().Str("component", "DirLister").Str("dir", dir).Logger(),
	}
}

// Dir returns the listed directory.
func (l *DirLister) Dir() string {
	return l.dir
}

// ListFilenames returns the names of regular entries in the directory, unordered.
func (l *DirLister) ListFilenames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: snapshot directory %s", common.ErrNotFound, l.dir)
		}
		l.logger.Error().Err(err).Msg("Failed to read snapshot directory")
		return nil, common.WrapErrorf(err, "failed to read snapshot directory %s", l.dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}

	l.logger.Debug().Int("files", len(names)).Msg("Listed snapshot directory")
	return names, nil
}
