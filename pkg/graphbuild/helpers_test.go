package graphbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dd0wney/cluso-graphscene/pkg/metrics"
)

func gatherText(t *testing.T, reg *metrics.Registry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.prom")
	if err := reg.WriteTextfile(path); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(data)
}
