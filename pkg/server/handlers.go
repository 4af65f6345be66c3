package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/boxlayout/pkg/buildinfo"
	"github.com/matzehuels/boxlayout/pkg/cache"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/pipeline"
	"github.com/matzehuels/boxlayout/pkg/scene"
	"github.com/matzehuels/boxlayout/pkg/store"
)

// CreateResponse is the body of a successful POST /v1/layouts.
type CreateResponse struct {
	ID     string        `json:"id"`
	Cached bool          `json:"cached"`
	Result *scene.Result `json:"result"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	format, err := documentFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentSize))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document"))
		return
	}

	opts := pipeline.Options{Format: format, Logger: s.logger}
	res, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.store.Save(r.Context(), store.Record{
		Name:     res.Name,
		Format:   format,
		Document: string(data),
		DocHash:  cache.Hash(data),
		Result:   res,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/layouts/"+rec.ID)
	writeJSON(w, http.StatusCreated, CreateResponse{ID: rec.ID, Cached: hit, Result: res})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	opts, err := renderOptions(r, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), rec.Result, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// validID rejects malformed layout IDs before they reach the store.
func validID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := store.ValidateID(chi.URLParam(r, "id")); err != nil {
			writeJSON(w, statusOf(err), errorBody(err))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// documentFormat resolves the format of a posted document.
func documentFormat(r *http.Request) (string, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		f = strings.ToLower(f)
		if f == "yml" {
			f = scene.FormatYAML
		}
		return f, pipeline.ValidateDocumentFormat(f)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return scene.FormatTOML, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse content type")
	}
	switch mt {
	case "application/toml", "text/toml", "text/plain":
		return scene.FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return scene.FormatYAML, nil
	case "application/json":
		return scene.FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unsupported content type %q", mt)
}

func renderOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats: []string{format},
		Padding: q.Get("padding") == "true" || q.Get("padding") == "1",
		Labels:  q.Get("labels") == "true" || q.Get("labels") == "1",
	}
	if s := q.Get("scale"); s != "" {
		scale, err := strconv.ParseFloat(s, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", s)
		}
		opts.Scale = scale
	}
	return opts, pipeline.ValidateFormat(format)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// statusOf maps error codes to HTTP statuses.
func statusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfiguration, errors.ErrCodeInvalidDocument:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// errorBody describes err for clients. Internal errors are not exposed.
func errorBody(err error) ErrorResponse {
	if statusOf(err) == http.StatusInternalServerError {
		return ErrorResponse{Code: string(errors.ErrCodeInternal), Message: "internal server error"}
	}
	return ErrorResponse{Code: string(errors.GetCode(err)), Message: err.Error()}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
