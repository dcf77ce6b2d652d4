package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveEpisode(Episode{Seed: 1, Score: score, MaxTile: 64, Moves: 30}); err != nil {
			t.Fatalf("SaveEpisode() failed: %v", err)
		}
	}
	if _, err := store.SaveEpisode(Episode{Score: 500, Source: SourceSimulator}); err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}

	players, err := store.TopEpisodes(SourcePlayer, 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("Expected 3 player episodes, got %d", len(players))
	}

	// Should be sorted descending
	if players[0].Score != 200 || players[1].Score != 100 || players[2].Score != 50 {
		t.Errorf("Episodes not in expected order: %+v", players)
	}
	if players[0].EpisodeID == uuid.Nil {
		t.Error("SaveEpisode should assign an episode ID")
	}
	if players[0].MaxTile != 64 || players[0].Moves != 30 || players[0].Seed != 1 {
		t.Errorf("Episode fields not round-tripped: %+v", players[0])
	}

	all, err := store.TopEpisodes("", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("Expected simulator episode first among 4, got %+v", all)
	}
}

func TestStoreTopEpisodesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveEpisode(Episode{Score: (i + 1) * 100})
	}

	episodes, err := store.TopEpisodes("", 3)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("Expected 3 episodes with limit, got %d", len(episodes))
	}
	if episodes[0].Score != 500 || episodes[1].Score != 400 || episodes[2].Score != 300 {
		t.Errorf("Episodes not in expected order: %+v", episodes)
	}
}

func TestStoreEpisodeByID(t *testing.T) {
	store := openTestStore(t)

	id := uuid.New()
	if _, err := store.SaveEpisode(Episode{EpisodeID: id, Seed: 42, Score: 1234}); err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}

	ep, err := store.EpisodeByID(id)
	if err != nil {
		t.Fatalf("EpisodeByID() failed: %v", err)
	}
	if ep == nil || ep.Seed != 42 || ep.Score != 1234 {
		t.Fatalf("EpisodeByID() = %+v", ep)
	}

	missing, err := store.EpisodeByID(uuid.New())
	if err != nil {
		t.Fatalf("EpisodeByID() for missing id failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing episode, got %+v", missing)
	}

	// Episode IDs are unique
	if _, err := store.SaveEpisode(Episode{EpisodeID: id}); err == nil {
		t.Error("Expected duplicate episode ID to fail")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	store.SaveEpisode(Episode{Score: 100})
	store.SaveEpisode(Episode{Score: 300})
	store.SaveEpisode(Episode{Score: 200})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	store.SaveEpisode(Episode{Score: 100})
	store.SaveEpisode(Episode{Score: 200})
	store.SaveEpisode(Episode{Score: 300, Source: SourceSimulator})

	if err := store.Clear(SourceSimulator); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	sim, _ := store.TopEpisodes(SourceSimulator, 10)
	if len(sim) != 0 {
		t.Errorf("Expected 0 simulator episodes after clear, got %d", len(sim))
	}
	players, _ := store.TopEpisodes(SourcePlayer, 10)
	if len(players) != 2 {
		t.Errorf("Player episodes should not be affected by clearing simulator")
	}

	if err := store.Clear(""); err != nil {
		t.Fatalf("Clear(\"\") failed: %v", err)
	}
	all, _ := store.TopEpisodes("", 10)
	if len(all) != 0 {
		t.Errorf("Expected empty store, got %d episodes", len(all))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() on empty store failed: %v", err)
	}
	if empty.Episodes != 0 || empty.HighScore != 0 {
		t.Errorf("Unexpected stats for empty store: %+v", empty)
	}

	store.SaveEpisode(Episode{Score: 100, MaxTile: 64, Moves: 40})
	store.SaveEpisode(Episode{Score: 300, MaxTile: 256, Moves: 60})

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Episodes != 2 || stats.HighScore != 300 || stats.BestTile != 256 || stats.TotalMoves != 100 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
