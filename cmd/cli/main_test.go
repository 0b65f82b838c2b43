package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordedRequest struct {
	method      string
	path        string
	user        string
	idempotency string
	body        string
}

func newTestAPI(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			user:        r.Header.Get("X-User-ID"),
			idempotency: r.Header.Get("Idempotency-Key"),
			body:        string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return srv, &requests
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCommandsHitAPI(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantMethod string
		wantPath   string
		wantKey    bool
	}{
		{name: "eod run", args: []string{"eod", "run", "--user", "ADMIN"}, wantMethod: http.MethodPost, wantPath: "/api/v1/eod/run", wantKey: true},
		{name: "eod summary", args: []string{"eod", "summary", "2025-01-15"}, wantMethod: http.MethodGet, wantPath: "/api/v1/eod/2025-01-15"},
		{name: "bod run", args: []string{"bod", "run"}, wantMethod: http.MethodPost, wantPath: "/api/v1/bod/run", wantKey: true},
		{name: "movements", args: []string{"batch", "movements"}, wantMethod: http.MethodPost, wantPath: "/api/v1/batches/movements", wantKey: true},
		{name: "accruals", args: []string{"batch", "accruals"}, wantMethod: http.MethodPost, wantPath: "/api/v1/batches/accruals", wantKey: true},
		{name: "system date get", args: []string{"system-date", "get"}, wantMethod: http.MethodGet, wantPath: "/api/v1/system-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := newTestAPI(t, http.StatusOK, `{"status":"SUCCESS"}`)

			out, err := execute(t, append([]string{"--url", srv.URL}, tt.args...)...)
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			if len(*requests) != 1 {
				t.Fatalf("expected one request, got %d", len(*requests))
			}
			got := (*requests)[0]
			if got.method != tt.wantMethod || got.path != tt.wantPath {
				t.Fatalf("expected %s %s, got %s %s", tt.wantMethod, tt.wantPath, got.method, got.path)
			}
			if (got.idempotency != "") != tt.wantKey {
				t.Fatalf("unexpected idempotency key %q", got.idempotency)
			}
			if !strings.Contains(out, `"status": "SUCCESS"`) {
				t.Fatalf("expected pretty printed response, got %q", out)
			}
		})
	}
}

func TestSystemDateSetSendsBodyAndUser(t *testing.T) {
	srv, requests := newTestAPI(t, http.StatusOK, `{"system_date":"2025-01-16"}`)

	if _, err := execute(t, "--url", srv.URL, "--user", "OPS", "system-date", "set", "2025-01-16"); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	got := (*requests)[0]
	if got.method != http.MethodPut || got.user != "OPS" {
		t.Fatalf("unexpected request: %+v", got)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(got.body), &body); err != nil {
		t.Fatalf("invalid body %q: %v", got.body, err)
	}
	if body["system_date"] != "2025-01-16" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCommandValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "eod run needs user", args: []string{"eod", "run"}, want: "--user is required"},
		{name: "set needs user", args: []string{"system-date", "set", "2025-01-16"}, want: "--user is required"},
		{name: "summary needs a date", args: []string{"eod", "summary"}, want: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := newTestAPI(t, http.StatusOK, `{}`)

			_, err := execute(t, append([]string{"--url", srv.URL}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			if len(*requests) != 0 {
				t.Fatalf("expected no request to be sent, got %d", len(*requests))
			}
		})
	}
}

func TestErrorStatusFailsCommand(t *testing.T) {
	srv, _ := newTestAPI(t, http.StatusConflict, `{"error":"batch_in_progress","message":"batch already running"}`)

	out, err := execute(t, "--url", srv.URL, "bod", "run")
	if err == nil || !strings.Contains(err.Error(), "409") {
		t.Fatalf("expected status error, got %v", err)
	}
	if !strings.Contains(out, "batch_in_progress") {
		t.Fatalf("expected error body to be printed, got %q", out)
	}
}

func TestPrintJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "indents json", raw: `{"a":1}`, want: "{\n  \"a\": 1\n}\n"},
		{name: "passes through text", raw: "plain text\n", want: "plain text\n"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printJSON(&buf, []byte(tt.raw)); err != nil {
				t.Fatalf("printJSON failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}
