package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestPrintEpisode(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id := uuid.New()
	if _, err := store.SaveEpisode(storage.Episode{
		EpisodeID: id,
		Seed:      42,
		Score:     2316,
		MaxTile:   256,
		Moves:     210,
		Source:    storage.SourceSimulator,
	}); err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}

	ep, err := store.EpisodeByID(id)
	if err != nil || ep == nil {
		t.Fatalf("EpisodeByID() = %v, %v", ep, err)
	}

	var buf bytes.Buffer
	printEpisode(&buf, *ep)
	out := buf.String()

	for _, want := range []string{id.String(), "simulator", "Seed     42", "Score    2316", "Max tile 256", "Moves    210"} {
		if !strings.Contains(out, want) {
			t.Errorf("episode output missing %q:\n%s", want, out)
		}
	}
}
