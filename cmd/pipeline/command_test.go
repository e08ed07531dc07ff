package main

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want command
	}{
		{
			name: "ingest with files",
			args: []string{"ingest", "a.jsonl", "b.csv"},
			want: command{name: cmdIngest, paths: []string{"a.jsonl", "b.csv"}},
		},
		{
			name: "ingest from feed",
			args: []string{"ingest"},
			want: command{name: cmdIngest, paths: []string{}},
		},
		{
			name: "run",
			args: []string{"RUN"},
			want: command{name: cmdRun},
		},
		{
			name: "candidates filters",
			args: []string{"candidates", "-status", "pending", "-min-score", "0.8", "-limit", "20"},
			want: command{name: cmdCandidates, status: "pending", minScore: 0.8, limit: 20},
		},
		{
			name: "candidates generate",
			args: []string{"candidates", "-generate"},
			want: command{name: cmdCandidates, generate: true},
		},
		{
			name: "validate",
			args: []string{"validate", "-id", "42", "-status", "Confirmed", "-by", "analyst", "-notes", "same birth year"},
			want: command{name: cmdValidate, id: 42, status: "Confirmed", by: "analyst", notes: "same birth year"},
		},
		{
			name: "potential for profile",
			args: []string{"potential", "-id", "7", "-season", "2023-24"},
			want: command{name: cmdPotential, id: 7, season: "2023-24"},
		},
		{
			name: "career by key",
			args: []string{"career", "-key", "p-3"},
			want: command{name: cmdCareer, key: "p-3"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseCommand(tc.args)
			if err != nil {
				t.Fatalf("parseCommand error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected command: got=%+v want=%+v", got, tc.want)
			}
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "empty", args: nil},
		{name: "unknown command", args: []string{"train"}},
		{name: "validate without id", args: []string{"validate", "-status", "confirmed"}},
		{name: "validate bad status", args: []string{"validate", "-id", "1", "-status", "maybe"}},
		{name: "candidates bad status", args: []string{"candidates", "-status", "done"}},
		{name: "profile without id", args: []string{"profile"}},
		{name: "unknown flag", args: []string{"run", "-fast"}},
		{name: "stray positional", args: []string{"stats", "extra"}},
		{name: "bad number", args: []string{"career", "-limit", "ten"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := parseCommand(tc.args); !errors.Is(err, errUsage) {
				t.Fatalf("expected usage error, got %v", err)
			}
		})
	}
}
