package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/labyrinth/game/labyrinth"
)

// newPersistentManager returns a manager writing to a fresh directory, and a
// function that opens a second manager on the same store (a restart).
func newPersistentManager(t *testing.T) (*Manager, *FilePersistence, func() *Manager) {
	t.Helper()
	levels := newTestLevelManager(t)
	store, err := NewFilePersistence(t.TempDir(), levels)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	restart := func() *Manager { return NewManagerWithPersistence(store) }
	return NewManagerWithPersistence(store), store, restart
}

func TestManagerWithPersistence_WriteThrough(t *testing.T) {
	manager, store, _ := newPersistentManager(t)
	level := newTestLevelManager(t).GetDefault()

	s, err := manager.Create("walker", level)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !store.Exists(s.ID) {
		t.Fatal("Create should write the session to the store")
	}

	before := s.LastAccessedAt
	time.Sleep(5 * time.Millisecond)
	if err := manager.UpdateLastAccessed("WALKER"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}

	stored, err := store.Load("walker")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !stored.LastAccessedAt.After(before) {
		t.Error("Access update should be written to the store")
	}
}

func TestManagerWithPersistence_RestoresGame(t *testing.T) {
	manager, _, restart := newPersistentManager(t)
	level := newTestLevelManager(t).GetDefault()

	s, err := manager.Create("runner", level)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// ..S.. -> east, then wall the cell to the south of the start
	if err := s.Engine.Move("east"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if err := s.Engine.SetCell(labyrinth.NewCoordinate(2, 1), labyrinth.Wall); err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}
	if err := manager.Save("runner"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored, err := restart().Get("RUNNER")
	if err != nil {
		t.Fatalf("Get after restart failed: %v", err)
	}

	if got := restored.Engine.GetPlayerPosition(); got != labyrinth.NewCoordinate(3, 0) {
		t.Errorf("Expected player at (3,0), got %s", got)
	}
	if len(restored.Engine.GetMoveHistory()) != 1 {
		t.Errorf("Expected 1 history entry, got %d", len(restored.Engine.GetMoveHistory()))
	}
	cell, err := restored.Engine.Cell(labyrinth.NewCoordinate(2, 1))
	if err != nil || cell != labyrinth.Wall {
		t.Errorf("Expected the edited wall to survive a restart, got %v (%v)", cell, err)
	}
}

func TestManagerWithPersistence_GetCachesLoadedSession(t *testing.T) {
	manager, _, restart := newPersistentManager(t)
	level := newTestLevelManager(t).GetDefault()

	if _, err := manager.Create("cached", level); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	fresh := restart()
	if fresh.Count() != 0 {
		t.Fatalf("Expected an empty manager, got %d sessions", fresh.Count())
	}

	first, err := fresh.Get("cached")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := fresh.Get("cached")
	if err != nil {
		t.Fatalf("Second Get failed: %v", err)
	}
	if first != second {
		t.Error("A session loaded from the store should be cached in memory")
	}
	if fresh.Count() != 1 {
		t.Errorf("Expected 1 session in memory, got %d", fresh.Count())
	}
}

func TestManagerWithPersistence_Delete(t *testing.T) {
	manager, store, _ := newPersistentManager(t)
	level := newTestLevelManager(t).GetDefault()

	if _, err := manager.Create("doomed", level); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := manager.Create("evicted", level); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := manager.Delete("doomed"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Exists("doomed") {
		t.Error("Delete should remove the stored session")
	}
	if _, err := manager.Get("doomed"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}

	if err := manager.DeleteFromMemory("evicted"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}
	if !store.Exists("evicted") {
		t.Error("DeleteFromMemory should keep the stored session")
	}
	if _, err := manager.Get("evicted"); err != nil {
		t.Errorf("Evicted session should load back from the store: %v", err)
	}
}

func TestManagerWithPersistence_LoadPersistedSessions(t *testing.T) {
	manager, store, restart := newPersistentManager(t)
	level := newTestLevelManager(t).GetDefault()

	ids := []string{"alpha", "beta", "gamma"}
	for _, id := range ids {
		if _, err := manager.Create(id, level); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	// a corrupt file is skipped, not fatal
	if err := os.WriteFile(filepath.Join(store.sessionsDir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt session: %v", err)
	}

	fresh := restart()
	if err := fresh.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if fresh.Count() != len(ids) {
		t.Errorf("Expected %d sessions, got %d", len(ids), fresh.Count())
	}
	for _, id := range ids {
		if _, err := fresh.Get(id); err != nil {
			t.Errorf("Session %s missing after load: %v", id, err)
		}
	}

	if err := fresh.SaveAllSessions(); err != nil {
		t.Errorf("SaveAllSessions failed: %v", err)
	}
}
