// Package collect harvests Spring Boot repositories from the GitHub
// search API into a local corpus directory via shallow clones.
package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"stacklens/internal/logging"
)

const searchEndpoint = "https://api.github.com/search/repositories"

// Options controls a collection run.
type Options struct {
	Token       string
	OutputDir   string
	TargetCount int
	Queries     []string
	YearWindows []string
	PerPage     int
	MaxPages    int
	Backoff     time.Duration
}

// Repo is the subset of the GitHub search result we act on.
type Repo struct {
	FullName string `json:"full_name"`
	CloneURL string `json:"clone_url"`
	Stars    int    `json:"stargazers_count"`
}

type searchResult struct {
	Items []Repo `json:"items"`
}

// Collector runs GitHub searches and shallow-clones the results.
type Collector struct {
	opts      Options
	http      *http.Client
	logger    *logging.Logger
	searchURL string

	// cloneFn is replaceable in tests.
	cloneFn func(ctx context.Context, cloneURL, dest string) error
}

// NewCollector validates options and builds a collector. A token is
// required; unauthenticated search rate limits are too low to be useful.
func NewCollector(opts Options, logger *logging.Logger) (*Collector, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("collect: GitHub token is required")
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("collect: output directory is required")
	}
	if opts.TargetCount <= 0 {
		opts.TargetCount = 120
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 100
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 6
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 60 * time.Second
	}

	c := &Collector{
		opts:      opts,
		http:      &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		searchURL: searchEndpoint,
	}
	c.cloneFn = c.gitClone
	return c, nil
}

// Run iterates queries, year windows and pages until the target count
// of cloned repositories is reached or the search space is exhausted.
// It returns the number of repositories cloned during this run.
func (c *Collector) Run(ctx context.Context) (int, error) {
	if err := os.MkdirAll(c.opts.OutputDir, 0755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	collected, err := c.existingCount()
	if err != nil {
		return 0, err
	}
	cloned := 0

	c.logger.Info("Starting collection", map[string]interface{}{
		"existing": collected,
		"target":   c.opts.TargetCount,
	})

	for _, query := range c.opts.Queries {
		for _, window := range c.opts.YearWindows {
			for page := 1; page <= c.opts.MaxPages; page++ {
				if collected >= c.opts.TargetCount {
					return cloned, nil
				}
				if err := ctx.Err(); err != nil {
					return cloned, err
				}

				repos, retry, err := c.search(ctx, query, window, page)
				if err != nil {
					c.logger.Warn("Search failed", map[string]interface{}{
						"query": query,
						"error": err.Error(),
					})
					continue
				}
				if retry {
					c.logger.Warn("Rate limited, backing off", map[string]interface{}{
						"backoffMs": c.opts.Backoff.Milliseconds(),
					})
					if err := sleepCtx(ctx, c.opts.Backoff); err != nil {
						return cloned, err
					}
					page--
					continue
				}
				if len(repos) == 0 {
					break
				}

				for _, repo := range repos {
					if collected >= c.opts.TargetCount {
						return cloned, nil
					}
					ok, err := c.clone(ctx, repo)
					if err != nil {
						if ctx.Err() != nil {
							return cloned, ctx.Err()
						}
						c.logger.Warn("Clone failed", map[string]interface{}{
							"repo":  repo.FullName,
							"error": err.Error(),
						})
						continue
					}
					if ok {
						collected++
						cloned++
						c.logger.Info("Cloned repository", map[string]interface{}{
							"repo":  repo.FullName,
							"stars": repo.Stars,
							"total": collected,
						})
					}
				}
			}
		}
	}

	return cloned, nil
}

// search runs one search page. The retry flag signals a rate limit.
func (c *Collector) search(ctx context.Context, query, window string, page int) ([]Repo, bool, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s language:Java created:%s fork:false", query, window))
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", fmt.Sprintf("%d", c.opts.PerPage))
	params.Set("page", fmt.Sprintf("%d", page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "token "+c.opts.Token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		return nil, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("search returned %d", resp.StatusCode)
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, false, fmt.Errorf("decode search result: %w", err)
	}
	return result.Items, false, nil
}

// clone shallow-clones one repository. Returns false without error when
// the destination already exists.
func (c *Collector) clone(ctx context.Context, repo Repo) (bool, error) {
	name := strings.ReplaceAll(repo.FullName, "/", "_")
	dest := filepath.Join(c.opts.OutputDir, name)
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	}

	if err := c.cloneFn(ctx, repo.CloneURL, dest); err != nil {
		// Leave no partial checkout behind.
		_ = os.RemoveAll(dest)
		return false, err
	}
	return true, nil
}

func (c *Collector) gitClone(ctx context.Context, cloneURL, dest string) error {
	cloneCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(cloneCtx, "git", "clone", "--depth", "1", "--quiet", cloneURL, dest)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git clone: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (c *Collector) existingCount() (int, error) {
	entries, err := os.ReadDir(c.opts.OutputDir)
	if err != nil {
		return 0, fmt.Errorf("read output directory: %w", err)
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			count++
		}
	}
	return count, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
