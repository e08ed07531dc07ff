package gamefeed

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"sync/atomic"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
)

const maxLineBytes = 4 << 20

// Stats counts what a source has read since it was created.
type Stats struct {
	Lines   int64 `json:"lines"`
	Rows    int64 `json:"rows"`
	Skipped int64 `json:"skipped"`
}

type decoder struct {
	validate *validator.Validate
	logger   *logging.Logger
	lines    atomic.Int64
	rows     atomic.Int64
	skipped  atomic.Int64
}

func newDecoder(logger *logging.Logger) *decoder {
	if logger == nil {
		logger = logging.Default()
	}
	return &decoder{
		validate: validator.New(),
		logger:   logger,
	}
}

func (d *decoder) stats() Stats {
	return Stats{
		Lines:   d.lines.Load(),
		Rows:    d.rows.Load(),
		Skipped: d.skipped.Load(),
	}
}

// decode reads JSON lines from r. Lines that fail to decode or validate are
// logged and skipped; an error from fn stops the stream.
func (d *decoder) decode(ctx context.Context, origin string, r io.Reader, fn func(profile.GameRow) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		d.lines.Add(1)

		row, err := d.parse(ctx, line)
		if err != nil {
			d.skipped.Add(1)
			d.logger.WarnContext(ctx, "skip game feed line", "origin", origin, "line", lineNo, "error", err)
			continue
		}
		if err := fn(row); err != nil {
			return err
		}
		d.rows.Add(1)
	}
	if err := scanner.Err(); err != nil {
		return crerr.Wrapf(err, "read game feed %s", origin)
	}
	return nil
}

func (d *decoder) parse(ctx context.Context, line []byte) (profile.GameRow, error) {
	var rec record
	if err := sonic.Unmarshal(line, &rec); err != nil {
		return profile.GameRow{}, crerr.Wrap(err, "decode game row")
	}
	if err := d.validate.StructCtx(ctx, rec); err != nil {
		return profile.GameRow{}, crerr.Wrap(err, "validate game row")
	}
	return rec.toGameRow()
}
