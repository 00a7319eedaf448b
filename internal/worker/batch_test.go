package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trackback/reviewlens/internal/model"
)

// MockScorer implements SessionScorer
type MockScorer struct {
	ShouldError bool
}

func (m *MockScorer) AnalyzeFile(path string) (*model.SessionReport, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("score error")
	}
	return &model.SessionReport{
		SessionID: uuid.New(),
		TrackID:   uuid.New(),
	}, nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	scorer := &MockScorer{}
	processor := NewBatchProcessor(scorer, 2, 0, 0)

	paths := []string{"a.json", "b.json", "c.json"}
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
		if res.Report == nil {
			t.Error("expected report for successful score")
		}
	}
}

func TestBatchProcessor_ProcessPaths_Error(t *testing.T) {
	scorer := &MockScorer{ShouldError: true}
	processor := NewBatchProcessor(scorer, 2, 0, 0)

	results := processor.ProcessPaths(context.Background(), []string{"a.json"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

// A backfill is much larger than the pool's channel buffers; ProcessPaths
// must complete with far more paths than workers*2.
func TestBatchProcessor_LargeBackfill(t *testing.T) {
	scorer := &MockScorer{}
	processor := NewBatchProcessor(scorer, 1, 0, 5)

	paths := make([]string, 50)
	for i := range paths {
		paths[i] = "session.json"
	}

	done := make(chan []*ScoreResult, 1)
	go func() {
		done <- processor.ProcessPaths(context.Background(), paths)
	}()

	select {
	case results := <-done:
		if len(results) != len(paths) {
			t.Errorf("expected %d results, got %d", len(paths), len(results))
		}
	case <-time.After(10 * time.Second):
		t.Fatal("ProcessPaths stalled on a backfill larger than the channel buffers")
	}
}

// The caller's context deadline must bound the whole batch, not just
// individual jobs.
func TestBatchProcessor_ContextCancelReturns(t *testing.T) {
	scorer := &MockScorer{}
	processor := NewBatchProcessor(scorer, 2, 0, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	paths := make([]string, 100)
	for i := range paths {
		paths[i] = "session.json"
	}

	done := make(chan []*ScoreResult, 1)
	go func() {
		done <- processor.ProcessPaths(ctx, paths)
	}()

	select {
	case results := <-done:
		if len(results) > len(paths) {
			t.Errorf("got %d results for %d paths", len(results), len(paths))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ProcessPaths did not return after context expiry")
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	processor := NewBatchProcessor(&MockScorer{}, 2, 0, 0)

	results := processor.ProcessPaths(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "sessions.txt")
	content := `# backfill list
sessions/a.json

sessions/b.json
sessions/a.json
# trailing comment
`
	if err := os.WriteFile(listPath, []byte(content), 0644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		t.Fatalf("ReadPathsFromFile: %v", err)
	}

	want := []string{"sessions/a.json", "sessions/b.json"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %v", len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	if _, err := ReadPathsFromFile("/nonexistent/list.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "sessions.txt")
	if err := os.WriteFile(listPath, []byte("a.json\nb.json\n"), 0644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	processor := NewBatchProcessor(&MockScorer{}, 4, 0, 0)
	results, err := processor.ProcessFile(context.Background(), listPath)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
