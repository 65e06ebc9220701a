package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"openshelf/internal/config"
	"openshelf/internal/core/domain/ports"
)

// ImportService copies editions between catalogs by ISBN: metadata is
// fetched from the source catalog and created at the destination. Items
// are handled strictly one at a time; the underlying clients do not
// support concurrent use.
type ImportService struct {
	cfg    *config.Config
	source ports.Catalog
	dest   ports.Catalog
	state  ports.StateStore
}

// ImportReport summarizes one run.
type ImportReport struct {
	Created int
	Skipped int
	Missing int
	Failed  int
}

func NewImportService(cfg *config.Config, source, dest ports.Catalog, state ports.StateStore) *ImportService {
	return &ImportService{
		cfg:    cfg,
		source: source,
		dest:   dest,
		state:  state,
	}
}

// Run imports the given ISBNs. Per-item failures are counted and logged,
// not fatal; the state file records everything that no longer needs a
// second look.
func (s *ImportService) Run(ctx context.Context, isbns []string) (ImportReport, error) {
	var report ImportReport

	log.Printf("Starting import of %d ISBNs...", len(isbns))

	for _, isbn := range isbns {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if s.state.IsProcessed(isbn) {
			report.Skipped++
			continue
		}

		// Politeness delay between items
		if s.cfg.ImportDelayMS > 0 {
			time.Sleep(time.Duration(s.cfg.ImportDelayMS) * time.Millisecond)
		}

		outcome, err := s.importOne(ctx, isbn)
		if err != nil {
			log.Printf("Error importing %s: %v", isbn, err)
			report.Failed++
			continue
		}

		switch outcome {
		case outcomeCreated:
			report.Created++
		case outcomeExists:
			report.Skipped++
		case outcomeMissing:
			report.Missing++
		}
		if outcome != outcomeMissing {
			if err := s.state.MarkProcessed(isbn); err != nil {
				log.Printf("Warning: failed to mark %s processed: %v", isbn, err)
			}
		}
	}

	if err := s.state.Save(); err != nil {
		return report, fmt.Errorf("failed to persist import state: %w", err)
	}

	log.Printf("Import complete: %d created, %d skipped, %d missing, %d failed",
		report.Created, report.Skipped, report.Missing, report.Failed)
	return report, nil
}

type importOutcome int

const (
	outcomeCreated importOutcome = iota
	outcomeExists
	outcomeMissing
)

func (s *ImportService) importOne(ctx context.Context, isbn string) (importOutcome, error) {
	olid, err := s.dest.ResolveOLIDByISBN(ctx, isbn)
	if err != nil {
		return 0, err
	}
	if olid != "" {
		return outcomeExists, nil
	}

	book, err := s.source.GetBookByISBN(ctx, isbn)
	if err != nil {
		return 0, err
	}
	if book == nil {
		return outcomeMissing, nil
	}

	created, err := s.dest.CreateBook(ctx, *book)
	if err != nil {
		return 0, err
	}
	log.Printf("Created %s as %s", isbn, created)
	return outcomeCreated, nil
}
