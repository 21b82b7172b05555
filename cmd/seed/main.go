package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/cache"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/drive"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/importer"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository/backend"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/storage"
)

type contextKey string

const appKey contextKey = "app"

// app holds what the commands share between Before and After.
type app struct {
	cfg      *config.Config
	store    repository.DocumentStore
	reports  storage.ObjectStorage
	services *service.Services
}

func fromContext(c *cli.Context) (*app, error) {
	a, ok := c.Context.Value(appKey).(*app)
	if !ok || a == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}

func initApp(c *cli.Context) error {
	cfg := config.Load()

	store, err := backend.Open(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	reports, err := storage.Open(c.Context, cfg.ObjectStorage, filepath.Join(cfg.App.DataDir, "reports"))
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to open report storage: %w", err)
	}
	plans, err := cache.NewPlanCache(cfg.Cache)
	if err != nil {
		log.Printf("warning: plan cache unavailable: %v", err)
		plans = cache.NewNoopPlanCache()
	}

	a := &app{
		cfg:      cfg,
		store:    store,
		reports:  reports,
		services: service.New(repository.NewSet(store), plans, reports, cfg.Business),
	}
	c.Context = context.WithValue(c.Context, appKey, a)
	return nil
}

func closeApp(c *cli.Context) error {
	if a, ok := c.Context.Value(appKey).(*app); ok && a != nil {
		return a.store.Close()
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	planFlags := []cli.Flag{
		&cli.StringFlag{Name: "sku", Usage: "SKU id", Required: true},
		&cli.IntFlag{Name: "qty", Usage: "Number of packs or units to produce", Value: 1},
		&cli.StringFlag{Name: "pack", Usage: "Pack type (weekly, monthly, single)"},
		&cli.StringFlag{Name: "vendor", Usage: "Vendor id to buy everything from"},
		&cli.StringFlag{Name: "mode", Usage: "Purchase mode (full or shortage)", Value: "full"},
		&cli.StringFlag{Name: "format", Usage: "Report format (csv or xlsx)", Value: service.FormatCSV},
	}

	cliApp := &cli.App{
		Name:   "seed",
		Usage:  "Load vendor catalogs and produce requirement reports",
		Before: initApp,
		After:  closeApp,
		Commands: []*cli.Command{
			{
				Name:  "vendors",
				Usage: "Vendor catalog commands",
				Subcommands: []*cli.Command{
					{
						Name:      "import",
						Usage:     "Merge CSV or XLSX catalog files into the vendor list",
						ArgsUsage: "<file>...",
						Action:    importVendorFiles,
					},
					{
						Name:   "list",
						Usage:  "Print all vendors as JSON",
						Action: listVendors,
					},
				},
			},
			{
				Name:  "drive",
				Usage: "Google Drive commands",
				Subcommands: []*cli.Command{
					{
						Name:  "import",
						Usage: "Import every catalog file of a Drive folder",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "credentials",
								Usage:   "Service account credentials file",
								EnvVars: []string{"GOOGLE_CREDENTIALS_FILE"},
							},
							&cli.StringFlag{
								Name:    "folder-id",
								Usage:   "Drive folder containing catalogs",
								EnvVars: []string{"GOOGLE_DRIVE_FOLDER_ID"},
							},
						},
						Action: importDriveFolder,
					},
				},
			},
			{
				Name:  "plan",
				Usage: "Write a requirement report for a SKU",
				Flags: append(planFlags, &cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "Output file, stdout when empty",
				}),
				Action: writePlan,
			},
			{
				Name:   "publish",
				Usage:  "Upload a requirement report to report storage",
				Flags:  planFlags,
				Action: publishPlan,
			},
			{
				Name:  "reports",
				Usage: "Published report commands",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List published reports",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "prefix", Usage: "Key prefix such as 2026/04"},
						},
						Action: listReports,
					},
					{
						Name:      "download",
						Usage:     "Download a published report",
						ArgsUsage: "<key> <dest>",
						Action:    downloadReport,
					},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func importVendorFiles(c *cli.Context) error {
	a, err := fromContext(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return fmt.Errorf("at least one catalog file is required")
	}

	var vendors []domain.Vendor
	for _, path := range c.Args().Slice() {
		parsed, err := parseCatalogFile(path)
		if err != nil {
			return err
		}
		log.Printf("Parsed %d vendors from %s\n", len(parsed), path)
		vendors = append(vendors, parsed...)
	}

	result, err := a.services.Catalog.ImportVendors(c.Context, vendors)
	if err != nil {
		return fmt.Errorf("failed to import vendors: %w", err)
	}
	return printJSON(c.App.Writer, result)
}

func parseCatalogFile(path string) ([]domain.Vendor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	vendors, err := importer.Parse(filepath.Base(path), file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return vendors, nil
}

func listVendors(c *cli.Context) error {
	a, err := fromContext(c)
	if err != nil {
		return err
	}
	vendors, err := a.services.Catalog.ListVendors(c.Context)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, vendors)
}

func importDriveFolder(c *cli.Context) error {
	a, err := fromContext(c)
	if err != nil {
		return err
	}
	credentials := c.String("credentials")
	if credentials == "" {
		return fmt.Errorf("drive credentials file is required")
	}
	driveService, err := drive.NewServiceFromFile(c.Context, credentials)
	if err != nil {
		return err
	}

	fetcher := drive.NewCatalogFetcher(driveService, c.String("folder-id"))
	catalogs, err := fetcher.FetchFolder(c.Context, c.String("folder-id"))
	if err != nil {
		return err
	}
	var vendors []domain.Vendor
	for _, cat := range catalogs {
		log.Printf("Fetched %d vendors from %s\n", len(cat.Vendors), cat.File.Name)
		vendors = append(vendors, cat.Vendors...)
	}

	result, err := a.services.Catalog.ImportVendors(c.Context, vendors)
	if err != nil {
		return fmt.Errorf("failed to import vendors: %w", err)
	}
	return printJSON(c.App.Writer, result)
}

func planInput(c *cli.Context) (service.PlanInput, costing.PurchaseMode, error) {
	in := service.PlanInput{
		SKUID:          c.String("sku"),
		TargetQuantity: c.Int("qty"),
		VendorID:       c.String("vendor"),
	}
	if raw := c.String("pack"); raw != "" {
		pt, ok := domain.ParsePackType(raw)
		if !ok {
			return in, "", fmt.Errorf("unknown pack type %q", raw)
		}
		in.PackType = pt
	}
	mode, ok := costing.ParsePurchaseMode(c.String("mode"))
	if !ok {
		return in, "", fmt.Errorf("unknown purchase mode %q", c.String("mode"))
	}
	return in, mode, nil
}

func writePlan(c *cli.Context) error {
	a, err := fromContext(c)
	if err != nil {
		return err
	}
	in, mode, err := planInput(c)
	if err != nil {
		return err
	}
	report, err := a.services.Production.Export(c.Context, in, c.String("format"), mode)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		_, err := c.App.Writer.Write(report.Data)
		return err
	}
	if err := os.WriteFile(out, report.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	log.Printf("Wrote %s\n", out)
	return nil
}

func publishPlan(c *cli.Context) error {
	a, err := fromContext(c)
	if err != nil {
		return err
	}
	in, mode, err := planInput(c)
	if err != nil {
		return err
	}
	key, err := a.services.Production.Publish(c.Context, in, c.String("format"), mode)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, key)
	return nil
}

func listReports(c *cli.Context) error {
	a, err := fromContext(c)
	if err != nil {
		return err
	}
	objects, err := a.reports.ListObjects(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}
	for _, obj := range objects {
		fmt.Fprintf(c.App.Writer, "%s\t%d\n", obj.Key, obj.Size)
	}
	return nil
}

func downloadReport(c *cli.Context) error {
	a, err := fromContext(c)
	if err != nil {
		return err
	}
	if c.NArg() != 2 {
		return fmt.Errorf("usage: reports download <key> <dest>")
	}
	return a.reports.DownloadObject(c.Context, c.Args().Get(0), c.Args().Get(1))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
