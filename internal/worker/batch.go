package worker

import (
	"context"
	"sort"

	"github.com/ppiankov/absa/internal/pipeline"
)

// Analyzer runs one analysis request
type Analyzer interface {
	Analyze(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// AnalyzeJob is one manifest entry queued on the pool
type AnalyzeJob struct {
	Index    int
	Request  pipeline.Request
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute waits for the limiter and runs the analysis
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, KeyFor(j.Request.Path)); err != nil {
			return &AnalyzeResult{Index: j.Index, Request: j.Request, Error: err}
		}
	}

	result, err := j.Analyzer.Analyze(ctx, j.Request)
	return &AnalyzeResult{
		Index:   j.Index,
		Request: j.Request,
		Result:  result,
		Error:   err,
	}
}

// AnalyzeResult is the outcome of one AnalyzeJob
type AnalyzeResult struct {
	Index   int
	Request pipeline.Request
	Result  *pipeline.Result
	Error   error
}

// GetError returns the job's error
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes several files concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. ratePerSecond <= 0 starts
// jobs as fast as workers free up.
func NewBatchProcessor(analyzer Analyzer, concurrency int, ratePerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     NewLimiter(ratePerSecond, burst),
	}
}

// Process runs every request and returns results in request order.
// A failing request does not stop the others.
func (b *BatchProcessor) Process(ctx context.Context, reqs []pipeline.Request) []*AnalyzeResult {
	if len(reqs) == 0 {
		return []*AnalyzeResult{}
	}

	jobs := make([]Job, len(reqs))
	for i, req := range reqs {
		jobs[i] = &AnalyzeJob{
			Index:    i,
			Request:  req,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		}
	}

	pool := NewPool(ctx, b.concurrency)
	results := pool.Run(jobs)

	out := make([]*AnalyzeResult, 0, len(reqs))
	done := make(map[int]bool, len(results))
	for _, r := range results {
		ar := r.(*AnalyzeResult)
		done[ar.Index] = true
		out = append(out, ar)
	}
	// Jobs never started because ctx ended
	for i, req := range reqs {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out = append(out, &AnalyzeResult{Index: i, Request: req, Error: err})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessManifest loads a manifest and processes its jobs
func (b *BatchProcessor) ProcessManifest(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	reqs, err := m.Requests()
	if err != nil {
		return nil, err
	}
	return b.Process(ctx, reqs), nil
}
