package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"docmerge/internal/journal"
	"docmerge/internal/merge"
	"docmerge/internal/request"
	"docmerge/internal/writer"
)

// Reconciler applies merge requests to documents: read fresh, detect the
// formatting profile, merge, reapply the profile and write atomically. Each
// call is a self-contained unit of work with no state carried between calls.
// Concurrent calls for different files are independent; callers are
// responsible for serializing writes to the same path.
type Reconciler struct {
	writer  *writer.Writer
	journal *journal.Journal
}

// NewReconciler builds a reconciler around w. j may be nil to disable
// journaling.
func NewReconciler(w *writer.Writer, j *journal.Journal) *Reconciler {
	return &Reconciler{writer: w, journal: j}
}

// Apply performs one merge-and-write cycle. A missing target file is treated
// as an empty document, and a request without a section name replaces the
// whole file. Whitespace-only content is a no-op on both paths, so a
// degenerate request can never erase a document. Only hard I/O failures
// surface in the result's Errors.
func (r *Reconciler) Apply(ctx context.Context, req request.MergeRequest) writer.WriteResult {
	if strings.TrimSpace(req.Content) == "" {
		return writer.WriteResult{Success: true, FilePath: req.TargetFile}
	}

	original, err := os.ReadFile(req.TargetFile)
	if err != nil && !os.IsNotExist(err) {
		return writer.WriteResult{
			FilePath: req.TargetFile,
			Errors:   []string{fmt.Sprintf("failed to read %s: %v", req.TargetFile, err)},
		}
	}

	// Captured from the pristine original, not the merged text.
	profile := writer.DetectProfile(string(original))

	var merged string
	if strings.TrimSpace(req.Section) == "" {
		merged = req.Content
	} else {
		merged = merge.Merge(writer.Normalize(string(original)), req.Section, req.Content)
	}

	res := r.writer.Write(req.TargetFile, profile.Apply(merged))
	if r.journal != nil {
		if err := r.journal.Record(ctx, res); err != nil {
			log.Printf("Warning: failed to journal write for %s: %v", req.TargetFile, err)
		}
	}
	return res
}

// ApplyAll applies each request in order and returns one result per request.
// A failed request never stops the batch.
func (r *Reconciler) ApplyAll(ctx context.Context, reqs []request.MergeRequest) []writer.WriteResult {
	results := make([]writer.WriteResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, r.Apply(ctx, req))
	}
	return results
}
