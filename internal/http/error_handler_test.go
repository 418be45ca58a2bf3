package handlers_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestErrorBoundaryHidesInternals(t *testing.T) {
	ta := newTestApp(t)
	ta.app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})

	resp, err := ta.app.Test(httptest.NewRequest("GET", "/boom", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "حدث خطأ غير متوقع") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if !strings.Contains(s, "ERR_") {
		t.Fatal("correlation id missing from error page")
	}
	if strings.Contains(s, "db timeout") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
}

func TestErrorBoundaryLogsCorrelationID(t *testing.T) {
	ta := newTestApp(t)
	ta.app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("inner failure")
	})

	resp, err := ta.app.Test(httptest.NewRequest("GET", "/boom", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)

	var logged string
	for _, e := range ta.log.RecentLogs(0) {
		if e.Action == "server.error" {
			logged, _ = e.Fields["error_id"].(string)
		}
	}
	if logged == "" {
		t.Fatal("server.error entry missing")
	}
	// the id on the page matches the id in the log
	if !strings.Contains(string(body), logged) {
		t.Fatalf("page does not show logged id %s", logged)
	}
}

func TestPanicIsContained(t *testing.T) {
	ta := newTestApp(t)
	ta.app.Get("/panic", func(c *fiber.Ctx) error {
		panic("nil map write")
	})

	resp, err := ta.app.Test(httptest.NewRequest("GET", "/panic", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "nil map write") {
		t.Fatal("panic message leaked to user")
	}

	found := false
	for _, e := range ta.log.RecentLogs(0) {
		if e.Action == "server.panic" {
			found = true
			if stack, _ := e.Fields["stack"].(string); stack == "" {
				t.Fatal("panic logged without a stack")
			}
		}
	}
	if !found {
		t.Fatal("server.panic entry missing")
	}

	// the app keeps serving afterwards
	resp2, err := ta.app.Test(httptest.NewRequest("GET", "/", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != fiber.StatusOK {
		t.Fatalf("app unhealthy after panic: %d", resp2.StatusCode)
	}
}
