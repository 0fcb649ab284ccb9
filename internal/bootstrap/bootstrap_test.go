package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	platformconfig "trading-analyzer-go/internal/platform/config"
	platformlogging "trading-analyzer-go/internal/platform/logging"
)

func TestBuildServer(t *testing.T) {
	cfg := platformconfig.DefaultConfig()
	cfg.Log.Dir = ""
	cfg.Vision.APIKey = "sk-test"

	logger, err := platformlogging.New(platformlogging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer logger.Close()

	server, err := buildServer(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("buildServer failed: %v", err)
	}
	if server.Addr != "0.0.0.0:8000" {
		t.Errorf("unexpected listen address: %s", server.Addr)
	}

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health check failed: %d %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body["status"] != "online" {
		t.Errorf("unexpected health payload: %v", body)
	}
}

func TestBuildServer_RejectsBadProviderType(t *testing.T) {
	cfg := platformconfig.DefaultConfig()
	cfg.Log.Dir = ""
	cfg.Vision.Type = "doubao"

	logger, err := platformlogging.New(platformlogging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer logger.Close()

	if _, err := buildServer(context.Background(), cfg, logger); err == nil {
		t.Fatal("expected provider construction to fail for unsupported type")
	}
}
