package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"phonelister/internal/config"
	"phonelister/internal/events"
	"phonelister/internal/http/handlers"
	applog "phonelister/internal/log"
	"phonelister/internal/locks"
	"phonelister/internal/repos"
)

type testApp struct {
	app    *fiber.App
	db     *sqlx.DB
	events *events.Recorder
}

// newTestApp wires the real routes over a seeded in-memory store.
func newTestApp(t *testing.T, cfg config.Config) testApp {
	t.Helper()
	if cfg.DBDSN == "" {
		cfg.DBDSN = ":memory:"
	}
	if cfg.DisplayTZ == "" {
		cfg.DisplayTZ = "Asia/Kolkata"
	}
	if cfg.LogLimit == 0 {
		cfg.LogLimit = 200
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rec := &events.Recorder{}
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	handlers.Routes(app, handlers.NewDeps(db, cfg, locks.NewLocal(), rec), cfg)
	return testApp{app: app, db: db, events: rec}
}

// call sends one request; a non-empty contentType is set as the header.
func call(t *testing.T, app *fiber.App, method, target, contentType string, body io.Reader, hdr ...string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func decodeMap(t *testing.T, b []byte) map[string]any {
	t.Helper()
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
	return m
}

func decodeList(t *testing.T, b []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
	return out
}

type logEntry struct {
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	Level  string         `json:"level"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects the JSON log lines written while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	applog.SetOutput(buf)
	defer applog.SetOutput(os.Stdout)

	fn()

	buf.mu.Lock()
	defer buf.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}
