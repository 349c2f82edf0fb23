// Command isolation starts the Isolation game server.
//
// It supports two commands:
//  1. "server" (default) – runs the HTTP server exposing the REST API, the WebSocket feed and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags (or their environment variables) control host/port, the preset
// directory, session expiry, AI pacing and optional ngrok tunneling.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/isolation-game/api"
	"github.com/wricardo/isolation-game/game/config"
	"github.com/wricardo/isolation-game/game/engine"
	"github.com/wricardo/isolation-game/game/service"
	"github.com/wricardo/isolation-game/game/session"
	"github.com/wricardo/isolation-game/obslog"
	"github.com/wricardo/isolation-game/transport/mcp"
	"github.com/wricardo/isolation-game/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Isolation Game Server"
)

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp()
	app.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Bool("debug") {
			os.Setenv("LOG_LEVEL", "debug")
		}
		if err := obslog.InitFromEnv(); err != nil {
			return ctx, fmt.Errorf("init logging: %w", err)
		}
		if envErr == nil {
			obslog.L().Info("loaded environment variables from .env file")
		} else if !os.IsNotExist(envErr) {
			obslog.L().Warn("error loading .env file", zap.Error(envErr))
		}
		return ctx, nil
	}

	if err := app.Run(ctx, os.Args); err != nil {
		obslog.L().Error("exiting", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Flags are shared by every command.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "isolation",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "Directory containing game presets (default: ./configs, else the XDG config dir)",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.DurationFlag{
				Name:    "session-ttl",
				Value:   24 * time.Hour,
				Usage:   "Remove sessions not accessed for this long",
				Sources: cli.EnvVars("SESSION_TTL"),
			},
			&cli.DurationFlag{
				Name:    "ai-move-delay",
				Value:   -1,
				Usage:   "Pause before the AI moves, overriding every preset (negative keeps the preset value)",
				Sources: cli.EnvVars("AI_MOVE_DELAY"),
			},
			&cli.DurationFlag{
				Name:    "ai-removal-delay",
				Value:   -1,
				Usage:   "Pause before the AI removes a square, overriding every preset (negative keeps the preset value)",
				Sources: cli.EnvVars("AI_REMOVAL_DELAY"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		DefaultCommand: "server",
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runHTTPServer,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server, reusing a running API server or starting an internal one",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "api-url",
						Usage:   "API server to proxy to (default: http://localhost:<port>)",
						Sources: cli.EnvVars("ISOLATION_API_URL"),
					},
				},
				Action: runStdioMCP,
			},
		},
	}
}

// services holds everything the HTTP API needs
type services struct {
	game     service.GameService
	sessions *session.Manager
	configs  *config.Manager
	hub      *websocket.Hub
}

// initializeServices wires the preset and session managers, the WebSocket
// hub and the game service
func initializeServices(cmd *cli.Command) (*services, error) {
	dir, err := config.ResolveDir(cmd.String("config-dir"))
	if err != nil {
		return nil, err
	}

	configManager, err := config.NewManager(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	hub := websocket.NewHub()

	opts := []service.Option{service.WithNotifier(hub)}
	if move, removal, ok := aiPacing(cmd.Duration("ai-move-delay"), cmd.Duration("ai-removal-delay")); ok {
		opts = append(opts, service.WithAIDelays(move, removal))
	}

	obslog.L().Info("services initialized",
		zap.String("config_dir", configManager.Dir()),
		zap.Int("cached_presets", configManager.Count()))

	return &services{
		game:     service.NewGameService(sessionManager, configManager, opts...),
		sessions: sessionManager,
		configs:  configManager,
		hub:      hub,
	}, nil
}

// aiPacing resolves the AI delay flags. Negative means unset; when only one is
// set the other falls back to the built-in default. ok is false when neither is set.
func aiPacing(move, removal time.Duration) (time.Duration, time.Duration, bool) {
	if move < 0 && removal < 0 {
		return 0, 0, false
	}
	if move < 0 {
		move = time.Duration(engine.DefaultAIMoveDelayMs) * time.Millisecond
	}
	if removal < 0 {
		removal = time.Duration(engine.DefaultAIRemovalDelayMs) * time.Millisecond
	}
	return move, removal, true
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, cmd *cli.Command) error {
	svc, err := initializeServices(cmd)
	if err != nil {
		return err
	}
	defer svc.game.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		svc.hub.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		sessionCleanupRoutine(ctx, svc.sessions, cmd.Duration("session-ttl"), time.Hour)
	}()

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", api.NewServer(svc.game, svc.hub))
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		obslog.L().Info("HTTP server listening",
			zap.String("addr", addr),
			zap.String("api", fmt.Sprintf("http://%s/api", addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), mainRouter)
		}()
	}

	// Wait for shutdown signal or a listener failure
	var runErr error
	select {
	case <-ctx.Done():
		obslog.L().Info("shutting down")
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		obslog.L().Warn("HTTP server shutdown error", zap.Error(err))
	}

	wg.Wait()
	obslog.L().Info("server stopped")
	return runErr
}

// mcpHandler serves single JSON-RPC MCP messages over HTTP POST
func mcpHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is cancelled
func runNgrokTunnel(ctx context.Context, authToken, domain string, handler http.Handler) {
	logger := obslog.L()
	if authToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		logger.Info("using custom ngrok domain", zap.String("domain", domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Warn("failed to close ngrok tunnel", zap.Error(err))
		}
	}()

	url := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", url),
		zap.String("api", url+"/api"),
		zap.String("websocket", url+"/ws?session=<session_id>"),
		zap.String("mcp", url+"/mcp"))

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Warn("ngrok server error", zap.Error(err))
	}
	logger.Info("ngrok tunnel closed")
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within ttl, until ctx is cancelled
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl, interval time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				obslog.L().Info("cleaned up expired sessions", zap.Int("removed", removed))
			}
		}
	}
}

// runStdioMCP runs an MCP stdio server.
// It reuses an API server at --api-url (default http://localhost:<port>) when one
// answers; otherwise it starts an internal HTTP API on a random loopback port.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	externalURL := cmd.String("api-url")
	if externalURL == "" {
		externalURL = fmt.Sprintf("http://localhost:%d", cmd.Int("port"))
	}

	baseURL := externalURL
	if !apiAvailable(externalURL) {
		obslog.L().Info("no external API server found, starting internal HTTP server", zap.String("url", externalURL))

		internalURL, shutdown, err := startInternalServer(ctx, cmd)
		if err != nil {
			return err
		}
		defer shutdown()
		baseURL = internalURL
	}

	obslog.L().Info("MCP stdio server ready", zap.String("api", baseURL))

	if err := mcp.NewClient(baseURL).ServeStdio(); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable reports whether an API server answers its health check at baseURL
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalServer serves the API on a random loopback port and returns its
// base URL and a shutdown function
func startInternalServer(ctx context.Context, cmd *cli.Command) (string, func(), error) {
	svc, err := initializeServices(cmd)
	if err != nil {
		return "", nil, err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		svc.game.Close()
		return "", nil, fmt.Errorf("failed to get available port: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	go svc.hub.Run(ctx)
	go sessionCleanupRoutine(ctx, svc.sessions, cmd.Duration("session-ttl"), time.Hour)

	httpServer := &http.Server{Handler: api.NewServer(svc.game, svc.hub)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obslog.L().Error("internal HTTP server error", zap.Error(err))
		}
	}()

	shutdown := func() {
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
		svc.game.Close()
	}

	return "http://" + listener.Addr().String(), shutdown, nil
}
