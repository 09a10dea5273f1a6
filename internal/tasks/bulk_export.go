package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/tunebox/internal/formatter"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
)

const (
	defaultWorkers = 4
	maxWorkers     = 10
	anonymousOwner = "anonymous"
	anonymousDir   = "anonymous"
	usersDir       = "users"
)

// BulkExportOpts contains configuration for bulk partition exports.
type BulkExportOpts struct {
	Format     string // Export format: csv, md, txt
	OutputDir  string // Base output directory (default: tunebox_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 4, max: 10)
}

// PartitionExportJob is one partition read from the store, ready to be written.
type PartitionExportJob struct {
	Owner     string
	Favorites *formatter.Export
	History   *formatter.Export
}

// PartitionExportResult is the outcome of exporting one partition.
type PartitionExportResult struct {
	Owner        string   `json:"owner"`
	Anonymous    bool     `json:"anonymous,omitempty"`
	Success      bool     `json:"success"`
	Files        []string `json:"files,omitempty"`
	Favorites    int      `json:"favorites"`
	History      int      `json:"history"`
	Error        error    `json:"-"`
	ErrorMessage string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalPartitions   int                     `json:"total_partitions"`
	SuccessfulExports int                     `json:"successful_exports"`
	FailedExports     int                     `json:"failed_exports"`
	OutputDirectory   string                  `json:"output_directory"`
	ManifestPath      string                  `json:"-"`
	Results           []PartitionExportResult `json:"results"`
}

// BulkExport exports the favorites and history of each owner concurrently.
//
// An empty owner names the anonymous partition. Partitions that cannot be read or written are
// reported as failures in the result; the export as a whole only fails when the output directory or
// the manifest cannot be written.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	owners []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("tunebox_export_%d", time.Now().Unix())
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatText
	}
	if err := formatter.CheckFormat(opts.Format); err != nil {
		return nil, err
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalPartitions: len(owners),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PartitionExportResult, 0, len(owners)),
	}

	jobs := make(chan PartitionExportJob, len(owners))
	results := make(chan PartitionExportResult, len(owners))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, owner := range owners {
			select {
			case <-ctx.Done():
				return
			default:
			}

			e.sendProgress(prog, readingPartitionUpdate(i+1, len(owners), displayOwner(owner)))

			job, err := e.readPartition(ctx, owner)
			if err != nil {
				results <- PartitionExportResult{Owner: displayOwner(owner), Anonymous: owner == "", Error: err}
				continue
			}
			jobs <- job
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.ErrorMessage = res.Error.Error()
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(owners), res.Owner, res.Error))
		} else {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(owners), res.Owner, len(res.Files)))
		}
		result.Results = append(result.Results, res)
	}

	sort.Slice(result.Results, func(i, j int) bool {
		a, b := result.Results[i], result.Results[j]
		if a.Anonymous != b.Anonymous {
			return a.Anonymous
		}
		return a.Owner < b.Owner
	})

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export cancelled: %w", err)
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))

	return result, nil
}

// readPartition loads one owner's collections from the store and resolves them against the catalog.
func (e *Exporter) readPartition(ctx context.Context, owner string) (PartitionExportJob, error) {
	favorites, err := repositories.ReadIDs(ctx, e.store, repositories.FavoritesKey(owner))
	if err != nil {
		return PartitionExportJob{}, fmt.Errorf("failed to read favorites: %w", err)
	}
	history, err := repositories.ReadIDs(ctx, e.store, repositories.HistoryKey(owner))
	if err != nil {
		return PartitionExportJob{}, fmt.Errorf("failed to read history: %w", err)
	}

	songs, err := e.songs.GetMany(append(append([]string{}, favorites...), history...))
	if err != nil {
		return PartitionExportJob{}, fmt.Errorf("failed to resolve songs: %w", err)
	}

	return PartitionExportJob{
		Owner:     owner,
		Favorites: formatter.NewExport("favorites", owner, favorites, songs),
		History:   formatter.NewExport("history", owner, history, songs),
	}, nil
}

// exportWorker is a worker goroutine that writes partitions from the jobs channel.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan PartitionExportJob,
	results chan<- PartitionExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportPartition(job, opts)
	}
}

// exportPartition writes favorites.{ext} and history.{ext} into the partition directory.
func (e *Exporter) exportPartition(j PartitionExportJob, opts BulkExportOpts) PartitionExportResult {
	result := PartitionExportResult{
		Owner:     displayOwner(j.Owner),
		Anonymous: j.Owner == "",
		Favorites: len(j.Favorites.Entries),
		History:   len(j.History.Entries),
		Files:     []string{},
	}

	rel, err := partitionDir(j.Owner)
	if err != nil {
		result.Error = err
		return result
	}
	dir := filepath.Join(opts.OutputDir, rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Error = fmt.Errorf("failed to create directory: %w", err)
		return result
	}

	for _, export := range []*formatter.Export{j.Favorites, j.History} {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s", export.Name, formatter.Extension(opts.Format)))
		written, err := formatter.WriteExport(export, opts.Format, path)
		if err != nil {
			result.Error = fmt.Errorf("%s export failed: %w", export.Name, err)
			return result
		}
		result.Files = append(result.Files, written)
	}

	result.Success = true
	return result
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// partitionDir maps an owner to a directory relative to the output directory: anonymous/ for the
// anonymous partition and users/{escaped username}/ for everyone else.
func partitionDir(owner string) (string, error) {
	if owner == "" {
		return anonymousDir, nil
	}

	name := url.PathEscape(owner)
	if strings.Trim(name, ".") == "" {
		name = strings.ReplaceAll(name, ".", "%2E")
	}
	rel := filepath.Join(usersDir, name)
	if !filepath.IsLocal(rel) || filepath.Dir(rel) != usersDir {
		return "", fmt.Errorf("%w: unsafe owner name %q", shared.ErrInvalidInput, owner)
	}
	return rel, nil
}

func displayOwner(owner string) string {
	if owner == "" {
		return anonymousOwner
	}
	return owner
}
