package api

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"doccloud/cloud"
	"doccloud/file"
	"doccloud/pipeline"

	"go.uber.org/zap"
)

//go:embed static/index.html
var indexHTML []byte

const multipartMemory = 32 << 20

// WordResponse is one placed word.
type WordResponse struct {
	Word     string `json:"word"`
	Count    int    `json:"count"`
	FontSize int    `json:"font_size"`
	Vertical bool   `json:"vertical,omitempty"`
}

// WordCloudResponse is the JSON body of POST /api/wordcloud.
type WordCloudResponse struct {
	RequestID string         `json:"request_id"`
	File      string         `json:"file"`
	Status    string         `json:"status"`
	Stage     string         `json:"stage"`
	Message   string         `json:"message,omitempty"`
	Image     string         `json:"image,omitempty"` // data:image/png;base64 URL
	Words     []WordResponse `json:"words,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		s.logger.Warn("failed to write index page", zap.Error(err))
	}
}

func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUpload {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	part, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer part.Close()

	if !file.AcceptedName(header.Filename) {
		s.errorResponse(w, http.StatusUnsupportedMediaType, "only .pdf and .docx files are accepted")
		return
	}

	data, err := io.ReadAll(part)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	doc := file.Document{
		Name:         header.Filename,
		DeclaredType: declaredType(header.Header.Get("Content-Type"), header.Filename),
		Data:         data,
	}

	sink := newResponseSink(s.logger)
	out, err := s.process(r.Context(), doc, sink)
	if err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "request cancelled while waiting for a free renderer")
		return
	}

	if r.URL.Query().Get("format") == "png" && sink.image != nil {
		s.pngResponse(w, sink.image)
		return
	}

	resp := WordCloudResponse{
		RequestID: out.RequestID,
		File:      out.Document,
		Status:    string(out.Status),
		Stage:     string(out.Stage),
		Message:   sink.message(),
	}
	if sink.image != nil {
		encoded, err := encodeDataURL(sink.image)
		if err != nil {
			s.logger.Error("failed to encode word cloud", zap.String("request_id", out.RequestID), zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "failed to encode word cloud image")
			return
		}
		resp.Image = encoded
		resp.Words = wordResponses(sink.image.Words)
	}
	s.jsonResponse(w, httpStatus(out), resp)
}

// process runs the pipeline once a render slot is free.
func (s *Server) process(ctx context.Context, doc file.Document, sink pipeline.Sink) (pipeline.Outcome, error) {
	if err := s.renders.Acquire(ctx, 1); err != nil {
		return pipeline.Outcome{}, err
	}
	defer s.renders.Release(1)
	return s.processor.Process(doc, sink), nil
}

func (s *Server) pngResponse(w http.ResponseWriter, img *cloud.Image) {
	var buf bytes.Buffer
	if err := cloud.EncodePNG(&buf, img.Image); err != nil {
		s.logger.Error("failed to encode word cloud", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode word cloud image")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// declaredType is the part's Content-Type, or the type registered for the
// extension when the client sent none or a generic one.
func declaredType(contentType, name string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if contentType == "" || (err == nil && mediaType == "application/octet-stream") {
		return file.MimeTypeForName(name)
	}
	return contentType
}

// httpStatus maps a pipeline outcome to a response code. Warnings are not failures.
func httpStatus(out pipeline.Outcome) int {
	switch out.Status {
	case pipeline.StatusRendered, pipeline.StatusWarning:
		return http.StatusOK
	case pipeline.StatusError:
		if out.Type == file.TypeUnknown {
			return http.StatusUnsupportedMediaType
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func encodeDataURL(img *cloud.Image) (string, error) {
	var buf bytes.Buffer
	if err := cloud.EncodePNG(&buf, img.Image); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func wordResponses(words []cloud.PlacedWord) []WordResponse {
	out := make([]WordResponse, 0, len(words))
	for _, w := range words {
		out = append(out, WordResponse{
			Word:     w.Word,
			Count:    w.Count,
			FontSize: w.FontSize,
			Vertical: w.Vertical,
		})
	}
	return out
}

// responseSink collects what the pipeline reports for the JSON response.
type responseSink struct {
	logger   *zap.Logger
	errors   []string
	warnings []string
	image    *cloud.Image
}

func newResponseSink(logger *zap.Logger) *responseSink {
	return &responseSink{logger: logger}
}

func (s *responseSink) ReportError(msg string)     { s.errors = append(s.errors, msg) }
func (s *responseSink) ReportWarning(msg string)   { s.warnings = append(s.warnings, msg) }
func (s *responseSink) ShowImage(img *cloud.Image) { s.image = img }

// message is the first error, else the first warning.
func (s *responseSink) message() string {
	if len(s.errors) > 0 {
		return s.errors[0]
	}
	if len(s.warnings) > 0 {
		return s.warnings[0]
	}
	return ""
}

func (s *responseSink) WrapBusy(label string, fn func()) {
	start := time.Now()
	s.logger.Debug("busy", zap.String("label", label))
	defer func() {
		s.logger.Debug("idle", zap.String("label", label), zap.Duration("elapsed", time.Since(start)))
	}()
	fn()
}
