// Command catalog-ingest loads a catalog export into the products table.
// It accepts one or more JSON files holding an array of products, gzipped
// or plain, and upserts concurrently so repeated runs refresh the catalog
// in place.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vellaperfumeria/cart-api/internal/domain/product"
	"github.com/vellaperfumeria/cart-api/internal/storage/postgres"
)

const progressEvery = 500

type productJSON struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Brand         string           `json:"brand"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	RegularPrice  *decimal.Decimal `json:"regularPrice"`
	Stock         int              `json:"stock"`
	ShippingSaver bool             `json:"shippingSaver"`
	Tag           string           `json:"tag"`
	Image         string           `json:"image"`
	Rating        *decimal.Decimal `json:"rating"`
	ReviewCount   int              `json:"reviewCount"`
}

func main() {
	var (
		databaseURL string
		workers     int
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.IntVar(&workers, "workers", 4, "concurrent upsert workers")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if flag.NArg() == 0 {
		slog.Error("at least one catalog file is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, flag.Args(), workers); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, databaseURL string, files []string, workers int) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrapf(err, "check file %s", f)
		}
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := postgres.NewProductRepository(pool)

	records := make(chan product.Product, workers*4)
	var written atomic.Int64

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(records)
		for _, f := range files {
			n, err := streamCatalogFile(ctx, f, records)
			if err != nil {
				return errors.Wrapf(err, "read %s", f)
			}
			slog.Info("file decoded", slog.String("path", f), slog.Int("products", n))
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			for p := range records {
				if err := repo.Upsert(ctx, p); err != nil {
					return errors.Wrapf(err, "upsert product %d", p.ID)
				}
				if n := written.Add(1); n%progressEvery == 0 {
					slog.Info("write progress", slog.Int64("written", n))
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("products written", slog.Int64("count", written.Load()))
	return nil
}

// streamCatalogFile decodes one export file and sends each product on out.
// The file must hold a single JSON array; .gz files are decompressed on the
// fly.
func streamCatalogFile(ctx context.Context, path string, out chan<- product.Product) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return 0, errors.Wrap(err, "create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil {
		return 0, errors.Wrap(err, "read array start")
	}

	var n int
	for dec.More() {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		var rec productJSON
		if err := dec.Decode(&rec); err != nil {
			return n, errors.Wrapf(err, "decode product %d", n+1)
		}
		if rec.ID <= 0 || rec.Name == "" {
			return n, errors.Errorf("product %d: missing id or name", n+1)
		}

		select {
		case out <- toProduct(rec):
			n++
		case <-ctx.Done():
			return n, ctx.Err()
		}
	}

	if _, err := dec.Token(); err != nil {
		return n, errors.Wrap(err, "read array end")
	}
	return n, nil
}

func toProduct(rec productJSON) product.Product {
	return product.Product{
		ID:            rec.ID,
		Name:          rec.Name,
		Brand:         rec.Brand,
		Category:      rec.Category,
		Price:         rec.Price,
		RegularPrice:  rec.RegularPrice,
		Stock:         rec.Stock,
		ShippingSaver: rec.ShippingSaver,
		Tag:           rec.Tag,
		ImageURL:      rec.Image,
		Rating:        rec.Rating,
		ReviewCount:   rec.ReviewCount,
	}
}
