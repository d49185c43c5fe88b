package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/labyrinth/game/config"
)

// newTestLevelManager writes a small classic level to a temp dir
func newTestLevelManager(t *testing.T) *config.Manager {
	t.Helper()
	dir := t.TempDir()
	level := "5\n3\n..S..\n.W.W.\nE...E\n"
	if err := os.WriteFile(filepath.Join(dir, "classic.txt"), []byte(level), 0644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "classic.yaml"), []byte("name: Classic\n"), 0644); err != nil {
		t.Fatalf("Failed to write metadata: %v", err)
	}

	levels, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create level manager: %v", err)
	}
	return levels
}
