package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/discfacil/discfacil/internal/assessment"
	"github.com/discfacil/discfacil/internal/catalog"
	"github.com/discfacil/discfacil/internal/handler"
	appI18n "github.com/discfacil/discfacil/internal/i18n"
	"github.com/discfacil/discfacil/internal/llm"
	"github.com/discfacil/discfacil/internal/model"
	"github.com/discfacil/discfacil/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "discfacil",
		Short: "Behavioral self-assessment server with narrative reports",
	}

	serve := serveCmd()
	root.AddCommand(serve, exportCmd(), historyCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `discfacil --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP assessment server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "discfacil.db", "SQLite database path")
	f.StringP("questions", "q", "", "Path to a question bank JSON file (default: embedded bank)")
	f.String("llm-url", "http://localhost:11434/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.Bool("llm-disabled", false, "Disable the AI analysis endpoint")
	f.StringP("lang", "l", "pt-BR", "API message language (pt-BR, en)")
	f.Bool("secure-cookies", true, "Set Secure flag on session cookies")
	f.String("admin-password", "", "Initial admin password (or set DISCFACIL_ADMIN_PASSWORD)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export assessment history as JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("db", "discfacil.db", "SQLite database path")
	f.StringP("questions", "q", "", "Path to a question bank JSON file (default: embedded bank)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored assessment results",
		RunE:  runHistory,
	}
	f := cmd.Flags()
	f.String("db", "discfacil.db", "SQLite database path")
	f.StringP("questions", "q", "", "Path to a question bank JSON file (default: embedded bank)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("DISCFACIL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("discfacil")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/discfacil")
	v.AddConfigPath("/etc/discfacil")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func loadCatalog(v *viper.Viper) (*catalog.Catalog, error) {
	if path := v.GetString("questions"); path != "" {
		cat, err := catalog.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load question bank %s: %w", path, err)
		}
		slog.Info("loaded question bank", "path", path, "blocks", cat.NumBlocks())
		return cat, nil
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load embedded question bank: %w", err)
	}
	return cat, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Seed default admin user if no users exist.
	if err := seedAdmin(db, v.GetString("admin-password")); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	cat, err := loadCatalog(v)
	if err != nil {
		return err
	}

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	var llmClient *llm.Client
	if v.GetBool("llm-disabled") {
		slog.Info("AI analysis disabled")
	} else {
		llmClient = llm.New(
			v.GetString("llm-url"),
			v.GetString("llm-key"),
			v.GetString("llm-model"),
		)
		if err := llmClient.Ping(context.Background()); err != nil {
			return fmt.Errorf("LLM health check: %w", err)
		}
		slog.Info("LLM endpoint OK", "url", v.GetString("llm-url"), "model", v.GetString("llm-model"))
	}

	cfg := model.ServerConfig{
		SecureCookies: v.GetBool("secure-cookies"),
	}

	h, err := handler.New(db, llmClient, cat, cfg)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"blocks", cat.NumBlocks(),
		"questions", cat.NumQuestions(),
		"bank_version", cat.Version(),
		"lang", lang,
	)
	return http.ListenAndServe(addr, r)
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	cat, err := loadCatalog(v)
	if err != nil {
		return err
	}

	records, err := db.ExportHistory(cat.Questions())
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}

	export := model.HistoryExport{
		ExportedAt:     time.Now(),
		CatalogVersion: cat.Version(),
		Count:          len(records),
		Records:        records,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)

	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	cat, err := loadCatalog(v)
	if err != nil {
		return err
	}

	records, err := db.ListHistory()
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	questions := cat.Questions()
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Participant", "Date", "Dominant", "Scores", "Analysis"})
	for _, rec := range records {
		scores := assessment.ScoreAnswers(rec.Answers, questions)
		dominant := ""
		if len(scores) > 0 {
			dominant = string(scores[0].Profile)
		}
		hasAnalysis := "no"
		if rec.Analysis != "" {
			hasAnalysis = "yes"
		}
		tw.AppendRow(table.Row{
			rec.ID,
			rec.ParticipantName,
			rec.CreatedAt.Format("2006-01-02 15:04"),
			dominant,
			llm.ScorePairs(scores),
			hasAnalysis,
		})
	}
	tw.Render()

	return nil
}

func seedAdmin(db *store.Store, password string) error {
	count, err := db.UserCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		return fmt.Errorf("admin password is required: set --admin-password flag or DISCFACIL_ADMIN_PASSWORD env var")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.CreateUser(model.User{
		Username:     "admin",
		DisplayName:  "Administrator",
		PasswordHash: string(hash),
		Role:         model.UserRoleAdmin,
		Active:       true,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.Info("seeded default admin user", "username", "admin")
	return nil
}
