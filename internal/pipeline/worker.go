package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/scriptgauge/scriptgauge/internal/fountain"
	"github.com/scriptgauge/scriptgauge/internal/paginate"
	"github.com/scriptgauge/scriptgauge/internal/report"
	"github.com/scriptgauge/scriptgauge/internal/source"
	"github.com/scriptgauge/scriptgauge/internal/store"
)

// Worker processes a single script analysis job.
type Worker struct {
	library     *store.Store
	opts        paginate.Options
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(library *store.Store, opts paginate.Options, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		library:     library,
		opts:        opts,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Decode the upload into plain Fountain text.
	job.SetStatus(StatusDecoding, "decoding")
	dec, err := source.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "decoding")
		return
	}
	if pd, ok := dec.(*source.PDFDecoder); ok {
		pd.FallbackPdftotext = w.pdfFallback
	}

	text, err := dec.Decode(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("decode failed", "error", err)
		job.AddError(fmt.Sprintf("decode: %s", err))
		job.SetStatus(StatusFailed, "decoding")
		return
	}
	job.SetContentHash(store.HashContent([]byte(text)))

	// Phase 2: Parse.
	job.SetStatus(StatusParsing, "parsing")
	doc := fountain.ParseWithLogger(text, w.log)
	if len(doc.Elements) == 0 && len(doc.TitlePage) == 0 {
		log.Warn("no content parsed")
		job.AddError("no parseable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 3: Estimate pages and build the report.
	job.SetStatus(StatusEstimating, "estimating")
	pages := paginate.Count(doc, w.opts)
	rep := report.Build(doc, pages)
	job.SetResult(pages, len(rep.Scenes), rep.Elements, rep.Words)
	if job.Title == "" && rep.Title != "" {
		job.SetTitle(rep.Title)
	}
	log.Info("estimated script", "pages", pages, "scenes", len(rep.Scenes), "elements", rep.Elements)

	// Phase 4: Store in the library, deduplicating by content hash.
	job.SetStatus(StatusStoring, "storing")
	title := job.Title
	if title == "" {
		title = job.Filename
	}
	saved, err := w.library.Save(ctx, store.Script{
		ID:          job.ScriptID,
		Filename:    job.Filename,
		Title:       title,
		Pages:       pages,
		Elements:    rep.Elements,
		Scenes:      len(rep.Scenes),
		Words:       rep.Words,
		ContentHash: job.ContentHash,
		ReportMD:    rep.Markdown(),
	})
	if err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	if saved.ID != job.ScriptID {
		log.Info("duplicate script, reusing library record", "existing_script_id", saved.ID)
		job.SetScriptID(saved.ID)
		job.SetStatus(StatusDuplicate, "done")
		return
	}

	log.Info("analysis complete", "script_id", saved.ID, "pages", pages)
	job.SetStatus(StatusCompleted, "done")
}
