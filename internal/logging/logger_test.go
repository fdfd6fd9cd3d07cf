package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")

	logger, err := NewLogger(logDir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("test_event")
	_ = logger.Sync()

	info, err := os.Stat(filepath.Join(logDir, "statusapp.log"))
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty log file")
	}
}
