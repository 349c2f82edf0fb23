package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/isolation-game/game/engine"
	"github.com/wricardo/isolation-game/game/service"
	"github.com/wricardo/isolation-game/game/session"
	"github.com/wricardo/isolation-game/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	expectedAppName := "Isolation Game Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

// runWithFlags parses args with the real flag set and hands the parsed command to fn
func runWithFlags(t *testing.T, args []string, fn func(cmd *cli.Command) error) {
	t.Helper()
	app := newApp()
	app.Commands = nil
	app.DefaultCommand = ""
	app.Action = func(ctx context.Context, cmd *cli.Command) error {
		return fn(cmd)
	}
	if err := app.Run(context.Background(), append([]string{"isolation"}, args...)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestFlagDefaults(t *testing.T) {
	runWithFlags(t, nil, func(cmd *cli.Command) error {
		if port := cmd.Int("port"); port != 8080 {
			t.Errorf("Expected default port 8080, got %d", port)
		}
		if host := cmd.String("host"); host != "localhost" {
			t.Errorf("Expected default host localhost, got %s", host)
		}
		if ttl := cmd.Duration("session-ttl"); ttl != 24*time.Hour {
			t.Errorf("Expected default TTL 24h, got %v", ttl)
		}
		if cmd.Duration("ai-move-delay") >= 0 || cmd.Duration("ai-removal-delay") >= 0 {
			t.Error("Expected AI delays to be unset by default")
		}
		return nil
	})
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("AI_MOVE_DELAY", "0s")

	runWithFlags(t, nil, func(cmd *cli.Command) error {
		if port := cmd.Int("port"); port != 9191 {
			t.Errorf("Expected port from PORT, got %d", port)
		}
		if delay := cmd.Duration("ai-move-delay"); delay != 0 {
			t.Errorf("Expected AI move delay from AI_MOVE_DELAY, got %v", delay)
		}
		return nil
	})
}

func TestAIPacing(t *testing.T) {
	defaultMove := time.Duration(engine.DefaultAIMoveDelayMs) * time.Millisecond
	defaultRemoval := time.Duration(engine.DefaultAIRemovalDelayMs) * time.Millisecond

	tests := []struct {
		name           string
		move, removal  time.Duration
		wantMove       time.Duration
		wantRemoval    time.Duration
		wantOverridden bool
	}{
		{"unset", -1, -1, 0, 0, false},
		{"both set", 0, 50 * time.Millisecond, 0, 50 * time.Millisecond, true},
		{"only move", 100 * time.Millisecond, -1, 100 * time.Millisecond, defaultRemoval, true},
		{"only removal", -1, 0, defaultMove, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, removal, ok := aiPacing(tt.move, tt.removal)
			if ok != tt.wantOverridden {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOverridden, ok)
			}
			if !ok {
				return
			}
			if move != tt.wantMove || removal != tt.wantRemoval {
				t.Errorf("Expected %v/%v, got %v/%v", tt.wantMove, tt.wantRemoval, move, removal)
			}
		})
	}
}

func TestInitializeServices(t *testing.T) {
	dir := t.TempDir()
	preset := `{"name": "Classic", "board_size": 7, "game_mode": "pvp"}`
	if err := os.WriteFile(filepath.Join(dir, "classic.json"), []byte(preset), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}

	runWithFlags(t, []string{"--config-dir", dir, "--ai-move-delay", "0s", "--ai-removal-delay", "0s"}, func(cmd *cli.Command) error {
		svc, err := initializeServices(cmd)
		if err != nil {
			t.Fatalf("Failed to initialize services: %v", err)
		}
		defer svc.game.Close()

		if svc.configs.Count() != 1 {
			t.Errorf("Expected 1 preset, got %d", svc.configs.Count())
		}

		info, err := svc.game.CreateSession(context.Background(), service.CreateOptions{})
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if info.GameState.GameMode != engine.PlayerVsPlayer {
			t.Errorf("Expected default preset to be used, got mode %s", info.GameState.GameMode)
		}
		if svc.sessions.Count() != 1 {
			t.Errorf("Expected session to be stored, got %d", svc.sessions.Count())
		}
		return nil
	})
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	runWithFlags(t, []string{"--config-dir", "/non/existent/path"}, func(cmd *cli.Command) error {
		if _, err := initializeServices(cmd); err == nil {
			t.Error("Expected error for non-existent config directory")
		}
		return nil
	})
}

func TestSessionCleanupRoutine(t *testing.T) {
	manager := session.NewManager()
	if _, err := manager.Create("stale", engine.DefaultGameConfig()); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sessionCleanupRoutine(ctx, manager, time.Nanosecond, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for manager.Count() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if manager.Count() != 0 {
		t.Errorf("Expected stale session to be cleaned up, %d left", manager.Count())
	}
}

func TestSessionCleanupRoutine_Disabled(t *testing.T) {
	done := make(chan struct{})
	go func() {
		sessionCleanupRoutine(context.Background(), session.NewManager(), 0, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected cleanup routine to return when TTL is zero")
	}
}

func TestMCPHandler(t *testing.T) {
	handler := mcpHandler(mcp.NewClient("http://localhost:0"))

	t.Run("rejects GET", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/mcp", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", w.Code)
		}
	})

	t.Run("answers ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)
		handler(w, httptest.NewRequest("POST", "/mcp", body))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %s", ct)
		}
		if !strings.Contains(w.Body.String(), `"id":1`) || strings.Contains(w.Body.String(), `"error"`) {
			t.Errorf("Unexpected ping response: %s", w.Body.String())
		}
	})
}

func TestAPIAvailable(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	if !apiAvailable(healthy.URL) {
		t.Error("Expected healthy server to be available")
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := down.URL
	down.Close()

	if apiAvailable(url) {
		t.Error("Expected closed server to be unavailable")
	}
}
