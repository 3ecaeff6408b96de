package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/absa/internal/model"
	"github.com/ppiankov/absa/internal/pipeline"
)

// MockAnalyzer implements Analyzer
type MockAnalyzer struct {
	FailOn string

	mu    sync.Mutex
	paths []string
}

func (m *MockAnalyzer) Analyze(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	time.Sleep(5 * time.Millisecond) // Simulate work
	m.mu.Lock()
	m.paths = append(m.paths, req.Path)
	m.mu.Unlock()

	if m.FailOn != "" && strings.HasSuffix(req.Path, m.FailOn) {
		return nil, errors.New("analyze error")
	}
	return &pipeline.Result{
		Report: &model.Report{Label: req.Label, Source: req.Path},
	}, nil
}

func TestBatchProcessor_Process(t *testing.T) {
	analyzer := &MockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	reqs := []pipeline.Request{
		{Path: "data/a.csv", Label: "A"},
		{Path: "data/b.csv", Label: "B"},
		{Path: "data/c.csv", Label: "C"},
	}

	results := processor.Process(context.Background(), reqs)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Request.Path, res.Error)
		}
		if res.Index != i {
			t.Errorf("result %d has index %d", i, res.Index)
		}
		if res.Result == nil || res.Result.Report.Label != reqs[i].Label {
			t.Errorf("result %d out of request order", i)
		}
	}
}

func TestBatchProcessor_Process_PartialFailure(t *testing.T) {
	analyzer := &MockAnalyzer{FailOn: "b.csv"}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	results := processor.Process(context.Background(), []pipeline.Request{
		{Path: "a.csv"}, {Path: "b.csv"}, {Path: "c.csv"},
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Error == nil {
		t.Error("expected error for b.csv")
	}
	if results[1].Result != nil {
		t.Error("expected nil result on error")
	}
	if results[0].Error != nil || results[2].Error != nil {
		t.Error("failure of one job should not affect the others")
	}
}

func TestBatchProcessor_Process_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	results := processor.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_Process_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(&MockAnalyzer{}, 1, 0, 0)
	results := processor.Process(ctx, []pipeline.Request{{Path: "a.csv"}, {Path: "b.csv"}})

	if len(results) != 2 {
		t.Fatalf("expected a result per request, got %d", len(results))
	}
	for _, r := range results {
		if r.Error == nil {
			t.Errorf("expected error for %s after cancellation", r.Request.Path)
		}
	}
}

func TestBatchProcessor_RateLimited(t *testing.T) {
	analyzer := &MockAnalyzer{}
	// 20 jobs/s with burst 1: three jobs in one directory need >= ~100ms
	processor := NewBatchProcessor(analyzer, 3, 20, 1)

	start := time.Now()
	results := processor.Process(context.Background(), []pipeline.Request{
		{Path: "d/a.csv"}, {Path: "d/b.csv"}, {Path: "d/c.csv"},
	})
	elapsed := time.Since(start)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected rate limiting to delay jobs, took %v", elapsed)
	}
}

func TestAnalyzeResult_GetError(t *testing.T) {
	r1 := &AnalyzeResult{Request: pipeline.Request{Path: "a.csv"}}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("analyze failed")
	r2 := &AnalyzeResult{Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "batch.yaml")
	content := `jobs:
  - file: a.csv
    label: App A
  - file: b.csv
`
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	analyzer := &MockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	results, err := processor.ProcessManifest(context.Background(), manifest)
	if err != nil {
		t.Fatalf("ProcessManifest failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Request.Path != filepath.Join(dir, "a.csv") {
		t.Errorf("expected path relative to manifest, got %s", results[0].Request.Path)
	}
	if results[1].Request.Label != "b" {
		t.Errorf("expected label from file name, got %q", results[1].Request.Label)
	}
}

func TestBatchProcessor_ProcessManifest_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	_, err := processor.ProcessManifest(context.Background(), "no_such_manifest.yaml")
	if err == nil {
		t.Error("expected error for non-existent manifest, got nil")
	}
}
