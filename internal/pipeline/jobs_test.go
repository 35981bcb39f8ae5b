package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/dgallion1/docseg/internal/index"
	"github.com/dgallion1/docseg/internal/segment"
)

func TestJobStorePutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "j1", Status: StatusQueued, UpdatedAt: time.Now()}
	store.Put(job)

	if got := store.Get("j1"); got != job {
		t.Fatalf("expected the stored job back, got %v", got)
	}
	if store.Get("missing") != nil {
		t.Fatal("expected nil for unknown job id")
	}
}

func TestJobStoreCleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)
	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-time.Minute)}
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	store.Put(stale)
	store.Put(fresh)

	store.Cleanup()

	if store.Get("stale") != nil {
		t.Error("expected stale job evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job retained")
	}
}

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}

	job.SetStatus(StatusSegmenting, "resolving boundaries")
	if job.Status != StatusSegmenting || job.Phase != "resolving boundaries" {
		t.Fatalf("unexpected state: %s / %s", job.Status, job.Phase)
	}
	if job.UpdatedAt.IsZero() {
		t.Error("SetStatus must touch UpdatedAt")
	}

	job.SetStatus(StatusCompleted, "done")
	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
}

func TestJobSetResultAndSnapshot(t *testing.T) {
	job := &Job{ID: "j1", DocID: "d1", Title: "Annual Report"}
	rep := segment.Report{Source: index.SourceHeuristic, IndexPage: 1, Resolved: 3}
	job.SetResult(12, 3, 4200, rep)
	job.AddError("store unreachable")
	job.SetStatus(StatusPartial, "indexing failed")

	snap := job.Snapshot()
	if snap.Status != StatusPartial {
		t.Errorf("expected partial status, got %s", snap.Status)
	}
	if snap.Progress.Pages != 12 || snap.Progress.Chapters != 3 || snap.Progress.TotalTokens != 4200 {
		t.Errorf("progress not carried: %+v", snap.Progress)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "store unreachable" {
		t.Errorf("errors not carried: %v", snap.Progress.Errors)
	}
	if snap.Report == nil || snap.Report.Source != index.SourceHeuristic || snap.Report.Resolved != 3 {
		t.Errorf("report not carried: %+v", snap.Report)
	}
}

func TestJobSnapshotErrorsNeverNil(t *testing.T) {
	job := &Job{ID: "j1"}
	if errs := job.Snapshot().Progress.Errors; errs == nil {
		t.Fatal("snapshot errors must serialize as [], not null")
	}
}

func TestJobPagesBypassesFileData(t *testing.T) {
	job := &Job{ID: "j1"}
	pages := corpus.Corpus{{Number: 1, Lines: []string{"hello"}}}
	job.SetPages(pages)

	if got := job.Pages(); len(got) != 1 || got[0].Number != 1 {
		t.Fatalf("pages not stored: %v", got)
	}
	if job.FileData() != nil {
		t.Error("file data must stay unset when a corpus is supplied")
	}
}

func TestContentHashHex(t *testing.T) {
	a := ContentHashHex([]byte("hello"))
	b := ContentHashHex([]byte("hello"))
	c := ContentHashHex([]byte("world"))
	if a != b {
		t.Error("hash must be deterministic")
	}
	if a == c {
		t.Error("different content must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}
