package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/claimlens/claimlens/internal/model"
)

// URLChecker fact-checks the main claim of a single web page
type URLChecker interface {
	CheckURLClaim(ctx context.Context, rawURL string) *model.VerdictResult
}

// BatchChecker runs URL claim checks concurrently over a bounded worker
// set. Results come back in input order; a cancelled context fills the
// unprocessed slots with error envelopes.
type BatchChecker struct {
	checker     URLChecker
	concurrency int
}

// NewBatchChecker creates a batch checker with the given concurrency
func NewBatchChecker(checker URLChecker, concurrency int) *BatchChecker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchChecker{checker: checker, concurrency: concurrency}
}

// CheckURLs checks every URL and returns one result per input, in order
func (b *BatchChecker) CheckURLs(ctx context.Context, urls []string) []*model.VerdictResult {
	results := make([]*model.VerdictResult, len(urls))
	if len(urls) == 0 {
		return results
	}

	workers := b.concurrency
	if workers > len(urls) {
		workers = len(urls)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = b.checker.CheckURLClaim(ctx, urls[idx])
			}
		}()
	}

	for i := range urls {
		select {
		case <-ctx.Done():
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i, r := range results {
		if r == nil {
			results[i] = model.ErrorResult(urls[i], fmt.Sprintf("batch cancelled: %v", ctx.Err()))
		}
	}

	return results
}

// CheckFile reads URLs from a file (one per line) and checks them
func (b *BatchChecker) CheckFile(ctx context.Context, path string) ([]*model.VerdictResult, error) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.CheckURLs(ctx, urls), nil
}

// ReadURLsFromFile reads one URL per line, skipping blanks, comments and
// duplicates
func ReadURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
