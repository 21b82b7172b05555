package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/importer"
)

// FileSource is the part of Service the catalog fetcher needs.
type FileSource interface {
	ListFiles(ctx context.Context, folderID string) ([]*File, error)
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
}

// Catalog is one parsed vendor catalog file.
type Catalog struct {
	File    *File           `json:"file"`
	Vendors []domain.Vendor `json:"vendors"`
}

// CatalogFetcher downloads vendor catalogs (CSV or XLSX) from a Drive folder.
type CatalogFetcher struct {
	source   FileSource
	folderID string
	workers  int
}

const defaultWorkers = 4

func NewCatalogFetcher(source FileSource, folderID string) *CatalogFetcher {
	return &CatalogFetcher{source: source, folderID: folderID, workers: defaultWorkers}
}

// WithWorkers sets how many files are downloaded at once.
func (c *CatalogFetcher) WithWorkers(n int) *CatalogFetcher {
	c.workers = n
	return c
}

// FolderID is the default folder used when none is passed.
func (c *CatalogFetcher) FolderID() string {
	return c.folderID
}

// ListCatalogs lists the catalog files of a folder without downloading them.
func (c *CatalogFetcher) ListCatalogs(ctx context.Context, folderID string) ([]*File, error) {
	if folderID == "" {
		folderID = c.folderID
	}
	files, err := c.source.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}
	out := make([]*File, 0, len(files))
	for _, f := range files {
		if importer.IsCatalogFile(f.Name) {
			out = append(out, f)
		}
	}
	return out, nil
}

// FetchCatalog downloads and parses a single file.
func (c *CatalogFetcher) FetchCatalog(ctx context.Context, f *File) (Catalog, error) {
	var buf bytes.Buffer
	if err := c.source.DownloadFile(ctx, f.ID, &buf); err != nil {
		return Catalog{}, fmt.Errorf("failed to download %s: %w", f.Name, err)
	}
	vendors, err := importer.Parse(f.Name, &buf)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to parse %s: %w", f.Name, err)
	}
	return Catalog{File: f, Vendors: vendors}, nil
}

// FetchFolder downloads and parses every catalog in a folder using a small
// worker pool. Files that fail are logged and skipped; the rest keep listing order.
func (c *CatalogFetcher) FetchFolder(ctx context.Context, folderID string) ([]Catalog, error) {
	files, err := c.ListCatalogs(ctx, folderID)
	if err != nil {
		return nil, err
	}

	workerCount := c.workers
	if workerCount < 1 {
		workerCount = 1
	}

	type result struct {
		catalog Catalog
		ok      bool
	}
	results := make([]result, len(files))
	jobChan := make(chan int, len(files))
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				f := files[idx]
				catalog, err := c.FetchCatalog(ctx, f)
				if err != nil {
					log.Warn().Err(err).Str("file", f.Name).Msg("skipping vendor catalog")
					continue
				}
				results[idx] = result{catalog: catalog, ok: true}
			}
		}()
	}

	// Enqueue jobs
	for i := range files {
		select {
		case <-ctx.Done():
			close(jobChan)
			wg.Wait()
			return nil, ctx.Err()
		case jobChan <- i:
		}
	}
	close(jobChan)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var catalogs []Catalog
	for _, r := range results {
		if r.ok {
			catalogs = append(catalogs, r.catalog)
		}
	}
	return catalogs, nil
}
