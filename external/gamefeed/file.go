package gamefeed

import (
	"context"
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
)

// FileSource streams game rows from local JSON lines files, in order.
type FileSource struct {
	paths   []string
	decoder *decoder
}

func NewFileSource(logger *logging.Logger, paths ...string) *FileSource {
	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return &FileSource{paths: cleaned, decoder: newDecoder(logger)}
}

func (s *FileSource) Stream(ctx context.Context, fn func(profile.GameRow) error) error {
	if len(s.paths) == 0 {
		return crerr.New("game feed file path is required")
	}
	for _, path := range s.paths {
		if err := s.streamFile(ctx, path, fn); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileSource) streamFile(ctx context.Context, path string, fn func(profile.GameRow) error) error {
	f, err := os.Open(path)
	if err != nil {
		return crerr.Wrapf(err, "open game feed %s", path)
	}
	defer f.Close()

	return s.decoder.decode(ctx, path, f, fn)
}

func (s *FileSource) Stats() Stats {
	return s.decoder.stats()
}
