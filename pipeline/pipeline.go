// Package pipeline turns one uploaded document into a word cloud and reports
// the result through a Sink.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"doccloud/cloud"
	"doccloud/file"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgEmptyText = "The uploaded file is empty or contains no readable text."
	msgNoWords   = "The uploaded file has no words left to plot after removing common stopwords."
	msgRenderErr = "Could not render word cloud: %v"
	msgBadType   = "Unsupported file type %q. Please upload a PDF or Word (.docx) document."
)

// Stage is where a run finished, or where it currently is.
type Stage string

const (
	StageIdle             Stage = "idle"
	StageTypeDispatch     Stage = "type_dispatch"
	StageExtracting       Stage = "extracting"
	StageExtractionFailed Stage = "extraction_failed"
	StageExtractionEmpty  Stage = "extraction_empty"
	StageExtractionOK     Stage = "extraction_ok"
	StageRendering        Stage = "rendering"
	StageRendered         Stage = "rendered"
	StageReportError      Stage = "report_error"
)

type Status string

const (
	StatusRendered Status = "rendered"
	StatusWarning  Status = "warning"
	StatusError    Status = "error"
)

// Sink is the presentation surface a run reports to.
type Sink interface {
	ReportError(msg string)
	ReportWarning(msg string)
	ShowImage(img *cloud.Image)
	// WrapBusy shows label while fn runs. Implementations must call fn exactly once.
	WrapBusy(label string, fn func())
}

// Renderer draws a word cloud from free text.
type Renderer interface {
	Render(text string) (*cloud.Image, error)
}

// Outcome summarizes one Process call.
type Outcome struct {
	RequestID string
	Document  string
	Type      file.DocumentType
	Stage     Stage
	Status    Status
	Message   string
	Text      string
	Image     *cloud.Image
}

// Pipeline holds only collaborators, so one instance serves concurrent uploads.
type Pipeline struct {
	core     *file.Core
	renderer Renderer
	logger   *zap.Logger
}

func New(core *file.Core, renderer Renderer, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		core:     core,
		renderer: renderer,
		logger:   logger,
	}
}

// Process dispatches doc by its declared type, extracts its text and renders it.
// Every terminal condition is reported to sink exactly once.
func (p *Pipeline) Process(doc file.Document, sink Sink) Outcome {
	out := Outcome{
		RequestID: uuid.NewString(),
		Document:  doc.Name,
		Stage:     StageIdle,
	}
	logger := p.logger.With(
		zap.String("request_id", out.RequestID),
		zap.String("file", doc.Name),
		zap.Int("size", len(doc.Data)))

	start := time.Now()
	sink.WrapBusy(fmt.Sprintf("Processing %s...", doc.Name), func() {
		p.run(doc, sink, &out, logger)
	})

	logger.Info("upload_processed",
		zap.String("stage", string(out.Stage)),
		zap.String("status", string(out.Status)),
		zap.Duration("elapsed", time.Since(start)))
	return out
}

func (p *Pipeline) run(doc file.Document, sink Sink, out *Outcome, logger *zap.Logger) {
	out.Stage = StageTypeDispatch
	out.Type = doc.Type()

	extractor, ok := p.core.ExtractorFor(out.Type)
	if !ok {
		logger.Warn("unsupported_document_type", zap.String("declared_type", doc.DeclaredType))
		p.fail(sink, out, fmt.Sprintf(msgBadType, doc.DeclaredType))
		return
	}

	out.Stage = StageExtracting
	res := extractor.ExtractText(doc.Data)
	switch {
	case !res.Success:
		out.Stage = StageExtractionFailed
		logger.Warn("extraction_failed", zap.String("type", out.Type.String()), zap.String("error", res.Error))
		p.fail(sink, out, res.Error)
		return
	case res.IsEmpty():
		out.Stage = StageExtractionEmpty
		logger.Info("extraction_empty", zap.String("type", out.Type.String()))
		p.warn(sink, out, msgEmptyText)
		return
	}

	out.Stage = StageExtractionOK
	out.Text = res.Text
	logger.Debug("extraction_ok",
		zap.String("type", out.Type.String()),
		zap.Int("pages", res.Pages),
		zap.Int("paragraphs", res.Paragraphs),
		zap.Int("text_length", len(res.Text)))

	out.Stage = StageRendering
	img, err := p.renderer.Render(res.Text)
	switch {
	case cloud.IsWarning(err):
		msg := msgNoWords
		if errors.Is(err, cloud.ErrEmptyText) {
			out.Stage = StageExtractionEmpty
			msg = msgEmptyText
		}
		p.warn(sink, out, msg)
	case err != nil:
		logger.Error("render_failed", zap.Error(err))
		p.fail(sink, out, fmt.Sprintf(msgRenderErr, err))
	default:
		out.Stage = StageRendered
		out.Status = StatusRendered
		out.Image = img
		sink.ShowImage(img)
	}
}

func (p *Pipeline) fail(sink Sink, out *Outcome, msg string) {
	if out.Stage != StageExtractionFailed {
		out.Stage = StageReportError
	}
	out.Status = StatusError
	out.Message = msg
	sink.ReportError(msg)
}

func (p *Pipeline) warn(sink Sink, out *Outcome, msg string) {
	out.Status = StatusWarning
	out.Message = msg
	sink.ReportWarning(msg)
}
