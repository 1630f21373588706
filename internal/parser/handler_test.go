package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/llm"
)

func newParseRouter(t *testing.T, client llm.Client, userID string) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(client, &fakeUsage{}, nil)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	h.Register(r.Group("/api/v1"))
	return r, svc
}

func multipartBody(t *testing.T, fields map[string][]string, fileName string, fileBody []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("resume", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileBody); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func doParse(t *testing.T, r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp.Error.Code
}

func TestParseHandler_Success(t *testing.T) {
	t.Parallel()

	client := &fakeLLM{reply: successReply(`{"personal": {"name": "Jo"}}`, nil)}
	r, svc := newParseRouter(t, client, "user-1")

	body, ct := multipartBody(t, map[string][]string{"resumeText": {"Jo Doe, Engineer"}}, "", nil)
	w := doParse(t, r, body, ct)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var record map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	svc.Wait()
}

func TestParseHandler_CustomFieldsForwarded(t *testing.T) {
	t.Parallel()

	client := &fakeLLM{reply: successReply(`{}`, nil)}
	r, svc := newParseRouter(t, client, "user-1")

	body, ct := multipartBody(t, map[string][]string{
		"resumeText":   {"resume"},
		"customFields": {"visaStatus", "salary"},
	}, "", nil)
	w := doParse(t, r, body, ct)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	svc.Wait()

	if len(client.prompts) != 1 {
		t.Fatalf("backend called %d times", len(client.prompts))
	}
	if !bytes.Contains([]byte(client.prompts[0]), []byte("visaStatus, salary")) {
		t.Fatal("custom fields missing from prompt")
	}
}

func TestParseHandler_NoIdentity(t *testing.T) {
	t.Parallel()

	r, _ := newParseRouter(t, &fakeLLM{reply: successReply(`{}`, nil)}, "")
	body, ct := multipartBody(t, map[string][]string{"resumeText": {"resume"}}, "", nil)
	w := doParse(t, r, body, ct)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCode(t, w); code != CodeUnauthenticated {
		t.Fatalf("code = %q", code)
	}
}

func TestParseHandler_NoContent(t *testing.T) {
	t.Parallel()

	r, _ := newParseRouter(t, &fakeLLM{reply: successReply(`{}`, nil)}, "user-1")
	body, ct := multipartBody(t, map[string][]string{"resumeText": {"   "}}, "", nil)
	w := doParse(t, r, body, ct)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w); code != CodeNoContent {
		t.Fatalf("code = %q", code)
	}
}

func TestParseHandler_OversizedFile(t *testing.T) {
	t.Parallel()

	r, _ := newParseRouter(t, &fakeLLM{reply: successReply(`{}`, nil)}, "user-1")
	body, ct := multipartBody(t, nil, "big.pdf", make([]byte, (5<<20)+1))
	w := doParse(t, r, body, ct)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
	if code := errorCode(t, w); code != CodePayloadTooLarge {
		t.Fatalf("code = %q", code)
	}
}

func TestParseHandler_ExtractionFailed(t *testing.T) {
	t.Parallel()

	r, _ := newParseRouter(t, &fakeLLM{reply: successReply(`{}`, nil)}, "user-1")
	body, ct := multipartBody(t, nil, "resume.pdf", []byte("not a real pdf"))
	w := doParse(t, r, body, ct)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w); code != CodeExtractionFailed {
		t.Fatalf("code = %q", code)
	}
}

func TestParseHandler_BackendStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		reply    func(string) (llm.Completion, error)
		wantCode string
	}{
		{
			name: "backend unavailable",
			reply: func(string) (llm.Completion, error) {
				return llm.Completion{}, fmt.Errorf("%w: dial tcp", llm.ErrBackendUnavailable)
			},
			wantCode: CodeBackendUnavailable,
		},
		{
			name: "empty completion",
			reply: func(string) (llm.Completion, error) {
				return llm.Completion{}, fmt.Errorf("%w: no choices", llm.ErrEmptyCompletion)
			},
			wantCode: CodeEmptyCompletion,
		},
		{
			name:     "malformed output",
			reply:    successReply("not json", nil),
			wantCode: CodeMalformedOutput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, svc := newParseRouter(t, &fakeLLM{reply: tt.reply}, "user-1")
			body, ct := multipartBody(t, map[string][]string{"resumeText": {"resume"}}, "", nil)
			w := doParse(t, r, body, ct)

			if w.Code != http.StatusBadGateway {
				t.Fatalf("status = %d, want 502", w.Code)
			}
			if code := errorCode(t, w); code != tt.wantCode {
				t.Fatalf("code = %q, want %q", code, tt.wantCode)
			}
			svc.Wait()
		})
	}
}

func TestParseHandler_NonMultipartRejected(t *testing.T) {
	t.Parallel()

	r, _ := newParseRouter(t, &fakeLLM{reply: successReply(`{}`, nil)}, "user-1")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewBufferString(`{"resumeText": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
