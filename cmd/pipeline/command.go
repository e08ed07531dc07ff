package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
)

const (
	cmdIngest      = "ingest"
	cmdRun         = "run"
	cmdCandidates  = "candidates"
	cmdValidate    = "validate"
	cmdConsolidate = "consolidate"
	cmdStats       = "stats"
	cmdPotential   = "potential"
	cmdProfile     = "profile"
	cmdCareer      = "career"
)

var errUsage = errors.New("usage")

type command struct {
	name     string
	paths    []string
	generate bool
	status   string
	minScore float64
	limit    int
	id       int64
	key      string
	season   string
	by       string
	notes    string
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("%w: missing command", errUsage)
	}

	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0]))}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	switch cmd.name {
	case cmdIngest:
	case cmdRun, cmdConsolidate, cmdStats:
	case cmdCandidates:
		fs.BoolVar(&cmd.generate, "generate", false, "regenerate candidates instead of listing")
		fs.StringVar(&cmd.status, "status", "", "filter by review status")
		fs.Float64Var(&cmd.minScore, "min-score", 0, "minimum total score")
		fs.IntVar(&cmd.limit, "limit", 0, "maximum rows")
	case cmdValidate:
		fs.Int64Var(&cmd.id, "id", 0, "candidate id")
		fs.StringVar(&cmd.status, "status", "", "new review status")
		fs.StringVar(&cmd.by, "by", "", "reviewer")
		fs.StringVar(&cmd.notes, "notes", "", "review notes")
	case cmdPotential:
		fs.Int64Var(&cmd.id, "id", 0, "profile id")
		fs.StringVar(&cmd.season, "season", "", "season label, latest when empty")
		fs.Float64Var(&cmd.minScore, "min-score", 0, "minimum potential score")
		fs.IntVar(&cmd.limit, "limit", 0, "maximum rows")
	case cmdProfile:
		fs.Int64Var(&cmd.id, "id", 0, "profile id")
		fs.StringVar(&cmd.season, "season", "", "season label, latest when empty")
	case cmdCareer:
		fs.StringVar(&cmd.key, "key", "", "consolidated player key")
		fs.Float64Var(&cmd.minScore, "min-score", 0, "minimum unified score")
		fs.IntVar(&cmd.limit, "limit", 0, "maximum rows")
	default:
		return command{}, fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	if err := fs.Parse(args[1:]); err != nil {
		return command{}, fmt.Errorf("%w: %s: %v", errUsage, cmd.name, err)
	}
	rest := fs.Args()

	switch cmd.name {
	case cmdIngest:
		cmd.paths = rest
		return cmd, nil
	case cmdValidate:
		if cmd.id <= 0 {
			return command{}, fmt.Errorf("%w: validate requires -id", errUsage)
		}
		if _, err := identity.ParseStatus(cmd.status); err != nil {
			return command{}, fmt.Errorf("%w: validate: %v", errUsage, err)
		}
	case cmdProfile:
		if cmd.id <= 0 {
			return command{}, fmt.Errorf("%w: profile requires -id", errUsage)
		}
	case cmdCandidates:
		if cmd.status != "" {
			if _, err := identity.ParseStatus(cmd.status); err != nil {
				return command{}, fmt.Errorf("%w: candidates: %v", errUsage, err)
			}
		}
	}

	if len(rest) > 0 {
		return command{}, fmt.Errorf("%w: %s takes no positional arguments, got %q", errUsage, cmd.name, rest)
	}
	return cmd, nil
}
