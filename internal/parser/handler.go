package parser

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/extract"
	"resume-parser/internal/llm"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
)

// maxRequestBytes caps the whole multipart request. Slightly above the file
// ceiling to leave room for form fields and multipart framing.
const maxRequestBytes = extract.MaxFileBytes + 1<<20

// Handler exposes the extraction pipeline over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the parse handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the parse route on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/parse", h.parse)
}

func (h *Handler) parse(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, CodeUnauthenticated, "Missing identity", nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "File too large. Please upload under 5MB.", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_request", "expected multipart form data", nil)
		return
	}

	req := Request{
		UserID:       userID,
		Text:         formValue(form.Value, "resumeText"),
		CustomFields: form.Value["customFields"],
		CustomSchema: formValue(form.Value, "customJsonExample"),
	}

	if files := form.File["resume"]; len(files) > 0 {
		fh := files[0]
		if fh.Size > extract.MaxFileBytes {
			respond.Error(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "File too large. Please upload under 5MB.", nil)
			return
		}
		f, err := fh.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read uploaded file", nil)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, extract.MaxFileBytes+1))
		f.Close()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read uploaded file", nil)
			return
		}
		req.File = data
		req.MimeType = fh.Header.Get("Content-Type")
		req.FileName = fh.Filename
	}

	record, err := h.service.Extract(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set("parseOutcome", "success")
	c.Data(http.StatusOK, "application/json; charset=utf-8", record)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		c.Set("parseOutcome", CodeUnauthenticated)
		respond.Error(c, http.StatusUnauthorized, CodeUnauthenticated, "Missing identity", nil)
	case errors.Is(err, extract.ErrNoContent):
		c.Set("parseOutcome", CodeNoContent)
		respond.Error(c, http.StatusBadRequest, CodeNoContent, "No resume text or file provided.", nil)
	case errors.Is(err, extract.ErrPayloadTooLarge):
		c.Set("parseOutcome", CodePayloadTooLarge)
		respond.Error(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "File too large. Please upload under 5MB.", nil)
	case errors.Is(err, extract.ErrExtractionFailed):
		c.Set("parseOutcome", CodeExtractionFailed)
		respond.Error(c, http.StatusBadRequest, CodeExtractionFailed, "Failed to extract text from the uploaded file.", nil)
	case errors.Is(err, llm.ErrBackendUnavailable):
		c.Set("parseOutcome", CodeBackendUnavailable)
		respond.Error(c, http.StatusBadGateway, CodeBackendUnavailable, "The model backend is unavailable.", nil)
	case errors.Is(err, llm.ErrEmptyCompletion):
		c.Set("parseOutcome", CodeEmptyCompletion)
		respond.Error(c, http.StatusBadGateway, CodeEmptyCompletion, "The model returned no content.", nil)
	case errors.Is(err, ErrMalformedOutput):
		c.Set("parseOutcome", CodeMalformedOutput)
		respond.Error(c, http.StatusBadGateway, CodeMalformedOutput, "Failed to parse structured JSON.", nil)
	default:
		c.Set("parseOutcome", "internal_error")
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Resume parsing failed.", nil)
	}
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}
