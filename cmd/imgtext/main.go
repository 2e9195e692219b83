package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/imgtext/internal/clipboard"
	"github.com/zombor/imgtext/internal/recognition"
	"github.com/zombor/imgtext/internal/server"
	"github.com/zombor/imgtext/internal/session"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("imgtext")
	var (
		host        = fs.StringLong("host", "127.0.0.1", "HTTP listen address; the clipboard is the host's, so keep it local unless auth is set")
		port        = fs.IntLong("port", 8080, "HTTP server port")
		engineType  = fs.StringLong("engine", recognition.DefaultEngine, "Recognition engine: 'tesseract' (needs a -tags tesseract build), 'gemini' or 'ollama'")
		language    = fs.StringLong("language", recognition.DefaultLanguage, "Language model code (e.g., eng, deu, fra)")
		tessdata    = fs.StringLong("tessdata", "", "Tesseract tessdata directory (optional)")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, qwen2-vl)")
		scratchPath = fs.StringLong("scratch", filepath.Join(os.TempDir(), "imgtext"), "Directory for staged clipboard copies")
		noSystem    = fs.BoolLong("no-system-clipboard", "Do not use the native system clipboard")
		sessionTTL  = fs.DurationLong("session-ttl", 2*time.Hour, "Idle time after which a page session is discarded")
		maxUploadMB = fs.IntLong("max-upload-mb", 50, "Maximum upload size in megabytes")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		logLevel    = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("IMGTEXT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level %q\n", *logLevel)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Initialize engine based on type
	var (
		engine recognition.Engine
		err    error
	)
	switch *engineType {
	case "tesseract":
		slog.Info("Initializing Tesseract engine...", "language", *language)
		engine, err = recognition.NewTesseract(*tessdata)
		if err != nil {
			slog.Error("Failed to initialize Tesseract", "error", err)
			os.Exit(1)
		}
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini engine...", "model", *geminiModel)
		engine, err = recognition.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama engine...", "url", *ollamaURL, "model", *ollamaModel)
		engine, err = recognition.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid engine type", "type", *engineType, "valid", "tesseract, gemini or ollama")
		os.Exit(1)
	}
	defer engine.Close()

	// Initialize clipboard access
	scratch, err := clipboard.NewScratch(*scratchPath)
	if err != nil {
		slog.Error("Failed to initialize scratch directory", "error", err)
		os.Exit(1)
	}
	var (
		nativeReader clipboard.ImageProvider
		nativeWriter clipboard.TextWriter
	)
	if !*noSystem {
		system := clipboard.NewSystem()
		nativeReader = system
		nativeWriter = system
	}
	legacy := clipboard.NewLegacy(scratch)
	if !legacy.Available() {
		slog.Warn("No copy command found; copying needs the system clipboard")
	}

	manager := session.NewManager(session.Deps{
		Recognizer: recognition.NewRecognizer(engine, *language),
		Reader:     clipboard.NewReader(nativeReader),
		Copier:     clipboard.NewCopier(nativeWriter, legacy),
	}, *sessionTTL)

	// Initialize server
	basicAuth := server.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	srv := server.NewServer(manager, basicAuth, int64(*maxUploadMB)<<20)

	// Start server in goroutine
	addr := net.JoinHostPort(*host, strconv.Itoa(*port))
	go func() {
		if err := srv.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", "http://"+addr)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	} else if ip := net.ParseIP(*host); *host != "localhost" && (ip == nil || !ip.IsLoopback()) {
		slog.Warn("Listening beyond loopback without basic auth; anyone who can reach the server can use this machine's clipboard", "host", *host)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down server", "error", err)
	}
}
