package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.RowsReadTotal == nil {
		t.Error("RowsReadTotal not initialized")
	}
	if r.EdgesCreatedTotal == nil {
		t.Error("EdgesCreatedTotal not initialized")
	}
	if r.SamplerDrawsTotal == nil {
		t.Error("SamplerDrawsTotal not initialized")
	}
	if r.ExportBytes == nil {
		t.Error("ExportBytes not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.RecordPoint()
	a.RecordPoint()

	if got := counterValue(t, a.PointsCreatedTotal); got != 2 {
		t.Errorf("a points = %v, want 2", got)
	}
	if got := counterValue(t, b.PointsCreatedTotal); got != 0 {
		t.Errorf("b points = %v, want 0", got)
	}
}

func TestRecordEdge(t *testing.T) {
	r := NewRegistry()

	r.RecordEdge(false, false)
	r.RecordEdge(true, false)
	r.RecordEdge(false, true)
	r.RecordEdge(true, true)

	if got := counterValue(t, r.EdgesCreatedTotal); got != 4 {
		t.Errorf("edges = %v, want 4", got)
	}
	if got := counterValue(t, r.SelfLoopsTotal); got != 2 {
		t.Errorf("self loops = %v, want 2", got)
	}
	if got := counterValue(t, r.DuplicateEdgesTotal); got != 2 {
		t.Errorf("duplicates = %v, want 2", got)
	}
}

func TestRecordRendererError(t *testing.T) {
	r := NewRegistry()
	r.RecordRendererError("create_point")
	r.RecordRendererError("create_point")
	r.RecordRendererError("group")

	c, err := r.RendererErrorsTotal.GetMetricWithLabelValues("create_point")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, c); got != 2 {
		t.Errorf("create_point errors = %v, want 2", got)
	}
}

func TestRecordSampler(t *testing.T) {
	r := NewRegistry()
	r.RecordSampler(382, 100)

	if got := counterValue(t, r.SamplerDrawsTotal); got != 382 {
		t.Errorf("draws = %v, want 382", got)
	}
	if got := counterValue(t, r.SamplerAcceptedTotal); got != 100 {
		t.Errorf("accepted = %v, want 100", got)
	}
}

func TestRecordExport(t *testing.T) {
	r := NewRegistry()
	r.RecordExport("json", 2048, 15*time.Millisecond)

	g, err := r.ExportBytes.GetMetricWithLabelValues("json")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 2048 {
		t.Errorf("export bytes = %v, want 2048", metric.Gauge.GetValue())
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordRow()
	r.RecordPoint()
	r.RecordEdge(false, false)
	r.ObserveBuild(250 * time.Millisecond)
	r.RecordUpload("success", time.Second)

	path := filepath.Join(t.TempDir(), "graphscene.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"graphscene_rows_read_total 1",
		"graphscene_points_created_total 1",
		"graphscene_edges_created_total 1",
		"graphscene_build_duration_seconds_count 1",
		`graphscene_uploads_total{status="success"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	r := NewRegistry()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
