package process

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/legisync/internal/bill"
	"github.com/roach88/legisync/internal/config"
	"github.com/roach88/legisync/internal/sobi"
	"github.com/roach88/legisync/internal/store"
)

// Processor applies SOBI change files to bills in the store.
//
// Processing is single-threaded and single-file-at-a-time. Callers must
// fully drain one file before starting the next: the amendment-sync
// invariants are not designed to tolerate interleaved writers.
type Processor struct {
	store     *store.Store
	changelog *store.Changelog
	cfg       *config.Config
}

// New creates a Processor. A nil cfg falls back to the built-in config.
func New(st *store.Store, cl *store.Changelog, cfg *config.Config) *Processor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Processor{store: st, changelog: cl, cfg: cfg}
}

// ProcessFile applies one SOBI change file to the store.
//
// The file's effective timestamp is derived from its name; a file with an
// unparsable name is skipped entirely (logged, not an error). Read failures
// abandon the file wholesale. Per-block failures are logged and skipped -
// there is no rollback of already-applied blocks.
func (p *Processor) ProcessFile(ctx context.Context, path string) error {
	name := filepath.Base(path)

	date, err := sobi.ParseFileDate(name)
	if err != nil {
		slog.Error("skipping file with unparsable name", "file", name, "error", err)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	blocks, err := sobi.Tokenize(name, f)
	if err != nil {
		return err
	}

	p.changelog.SetContext(name, date)

	for _, block := range blocks {
		slog.Info("processing block", "block", block.String(), "location", block.Location())
		if err := p.processBlock(ctx, block, date); err != nil {
			// Per-block isolation: a malformed block must never abort
			// the rest of the file.
			if IsParseError(err) {
				slog.Error("parse error", "location", block.Location(), "error", err)
			} else {
				slog.Error("unexpected failure", "location", block.Location(), "error", err)
			}
		}
	}

	return nil
}

// processBlock resolves the block's target bill, applies the change and
// publishes the result.
func (p *Processor) processBlock(ctx context.Context, block *sobi.Block, date time.Time) error {
	b, err := p.resolveTarget(ctx, block, date)
	if err != nil {
		return err
	}
	if err := p.applyBlock(block, b, date); err != nil {
		return err
	}
	b.AddDataSource(block.SourceFile)
	return p.saveBill(ctx, b)
}

// applyBlock dispatches to the field applier for the block's line code.
// The set of codes is closed; anything else is a parse error.
func (p *Processor) applyBlock(block *sobi.Block, b *bill.Bill, date time.Time) error {
	data := block.Data()
	switch block.Type {
	case sobi.LineBillInfo:
		return applyBillInfo(data, b, date)
	case sobi.LineLawSection:
		return applyLawSection(data, b)
	case sobi.LineTitle:
		return applyTitle(data, b)
	case sobi.LineBillEvent:
		return applyBillEvents(data, b)
	case sobi.LineSameAs:
		return applySameAs(data, b)
	case sobi.LineSponsor:
		return applySponsor(data, b)
	case sobi.LineCoSponsor:
		return applyCoSponsors(data, b)
	case sobi.LineMultiSponsor:
		return applyMultiSponsors(data, b)
	case sobi.LineProgramInfo:
		return applyProgramInfo(data, b)
	case sobi.LineActClause:
		return applyActClause(data, b)
	case sobi.LineLaw:
		return applyLaw(data, b)
	case sobi.LineSummary:
		return applySummary(data, b)
	case sobi.LineSponsorMemo, sobi.LineResolutionText, sobi.LineText:
		return applyText(data, b, date)
	case sobi.LineVoteMemo:
		return applyVoteMemo(data, b, date)
	default:
		return parseErrorf("invalid line code %q", block.Type)
	}
}
