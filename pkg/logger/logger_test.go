package logger

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// reset drops the singleton so the next Init rebuilds it.
func reset(t *testing.T) {
	t.Helper()
	once = sync.Once{}
	instance = zerolog.Logger{}
	t.Cleanup(func() {
		once = sync.Once{}
		instance = zerolog.Logger{}
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})
}

func TestInit_AttachesServiceFields(t *testing.T) {
	reset(t)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf, Service: "ecommerce-seeder", Env: "test"})
	log.Info().Str("step", "authenticate").Msg("step finished")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["service"] != "ecommerce-seeder" || entry["env"] != "test" {
		t.Fatalf("missing service fields: %v", entry)
	}
	if entry["step"] != "authenticate" || entry["message"] != "step finished" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	reset(t)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	log := Init(Options{Output: &second})

	log.Info().Msg("hello")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output on the first writer only (first=%d second=%d)", first.Len(), second.Len())
	}
}

func TestInit_LevelFiltersEntries(t *testing.T) {
	reset(t)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})
	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info entry should be filtered at warn level, got %s", buf.String())
	}
	log.Warn().Msg("kept")
	if buf.Len() == 0 {
		t.Fatal("warn entry should be written")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
