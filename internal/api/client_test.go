package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/five82/logsift/internal/query"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != defaultAPIBind {
		t.Fatalf("url = %q, want http://%s", u.String(), defaultAPIBind)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_EncodesRequests(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, query.Result{Lines: []string{"a"}, File: "/x/b.log"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	res, err := c.FetchLogs(ctx, Request{
		Source: "/x", Folder: true, Filter: "boom", Level: "Error",
		Start: "2024-01-01T00:00:00+08:00", End: "2024-01-02T00:00:00+08:00",
	})
	if err != nil {
		t.Fatalf("FetchLogs returned error: %v", err)
	}
	if gotPath != pathFolderLogs {
		t.Fatalf("path = %q, want %q", gotPath, pathFolderLogs)
	}
	want := url.Values{
		"folder": {"/x"},
		"filter": {"boom"},
		"level":  {"Error"},
		"start":  {"2024-01-01T00:00:00+08:00"},
		"end":    {"2024-01-02T00:00:00+08:00"},
	}
	if !reflect.DeepEqual(gotQuery, want) {
		t.Fatalf("query = %v, want %v", gotQuery, want)
	}
	if res.File != "/x/b.log" || len(res.Lines) != 1 {
		t.Fatalf("result = %+v", res)
	}

	if _, err := c.FetchLogs(ctx, Request{Source: "/x/a.log"}); err != nil {
		t.Fatalf("FetchLogs returned error: %v", err)
	}
	if gotPath != pathLogs {
		t.Fatalf("path = %q, want %q", gotPath, pathLogs)
	}
	if !reflect.DeepEqual(gotQuery, url.Values{"path": {"/x/a.log"}}) {
		t.Fatalf("query = %v, want only path", gotQuery)
	}
}

func TestClient_AgainstServer(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "app.log")
	server := httptest.NewServer(newTestServer(t).Handler())
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if err := c.Health(ctx); err != nil {
		t.Fatalf("Health returned error: %v", err)
	}

	res, err := c.FetchLogs(ctx, Request{Source: path, Filter: "failure"})
	if err != nil {
		t.Fatalf("FetchLogs returned error: %v", err)
	}
	if want := []string{sample[1]}; !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("lines = %q, want %q", res.Lines, want)
	}

	tests := []struct {
		name string
		req  Request
		kind query.Kind
		msg  string
	}{
		{name: "bad bound", req: Request{Source: path, End: "soon"}, kind: query.KindBadInput, msg: "invalid end time"},
		{name: "empty folder", req: Request{Source: t.TempDir(), Folder: true}, kind: query.KindNotFound, msg: "no log file found"},
		{name: "missing file", req: Request{Source: filepath.Join(dir, "gone.log")}, kind: query.KindIO, msg: "cannot read log file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.FetchLogs(ctx, tt.req)
			if err == nil {
				t.Fatalf("FetchLogs returned nil error")
			}
			if got := query.KindOf(err); got != tt.kind {
				t.Fatalf("KindOf = %v, want %v (err %v)", got, tt.kind, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("error = %q, want it to contain %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestClient_NonJSONErrorFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchLogs(context.Background(), Request{Source: "/x.log"})
	if err == nil {
		t.Fatalf("FetchLogs returned nil error")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("error = %q, want status 502", err.Error())
	}
	if query.KindOf(err) != query.KindIO {
		t.Fatalf("KindOf = %v, want io", query.KindOf(err))
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchLogs(context.Background(), Request{}); err == nil {
		t.Fatalf("FetchLogs on nil client returned nil error")
	}
}
