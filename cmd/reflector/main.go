package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavelanni/reflector/internal/dispatch"
	"github.com/pavelanni/reflector/internal/ingest"
	"github.com/pavelanni/reflector/internal/mail"
	"github.com/pavelanni/reflector/internal/messages"
	"github.com/pavelanni/reflector/internal/model"
	"github.com/pavelanni/reflector/internal/report"
	"github.com/pavelanni/reflector/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reflector",
		Short: "Turn exam reflection surveys into per-student PDFs and mail them out",
	}

	generate := generateCmd()
	root.AddCommand(generate, sendCmd(), historyCmd())

	// Make "generate" the default when no subcommand is given.
	root.RunE = generate.RunE

	// Register generate flags on root so bare `reflector --course ...` still works.
	root.Flags().AddFlagSet(generate.Flags())

	return root
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one reflection summary PDF per student",
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.StringP("course", "c", "", "Course designation, e.g. \"EME 150A\" (required)")
	f.String("reflections", "", "Path to the reflection survey CSV (required)")
	f.StringP("output-dir", "o", "reflections", "Directory for the generated PDFs")
	f.String("grades", "", "Optional grades CSV; when set, mail is dispatched after generation")
	f.String("rst2latex", "rst2latex.py", "rst-to-LaTeX converter command")
	f.String("pdflatex", "pdflatex", "LaTeX-to-PDF command")
	addMailFlags(f)
	addLogFlags(f)

	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("reflections")

	return cmd
}

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Mail previously generated reflection summaries",
		RunE:  runSend,
	}
	f := cmd.Flags()
	f.StringP("course", "c", "", "Course designation (required)")
	f.String("grades", "", "Path to the grades CSV with First Name, Last Name, Email, Score (required)")
	f.StringP("dir", "d", "reflections", "Directory containing the generated PDFs")
	addMailFlags(f)
	addLogFlags(f)

	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("grades")

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Export recorded dispatch runs as JSON",
		RunE:  runHistory,
	}
	f := cmd.Flags()
	f.String("db", "reflector.db", "SQLite database path")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(f)

	return cmd
}

func addMailFlags(f *pflag.FlagSet) {
	f.String("from", "", "Sender address (required to dispatch mail)")
	f.String("cc", "", "Address copied on every message (defaults to the sender)")
	f.String("smtp-host", "localhost", "SMTP server host")
	f.Int("smtp-port", 25, "SMTP server port")
	f.String("smtp-user", "", "SMTP username (or set REFLECTOR_SMTP_USER)")
	f.String("smtp-password", "", "SMTP password (or set REFLECTOR_SMTP_PASSWORD)")
	f.StringP("lang", "l", "en", "Mail text language (en, es)")
	f.String("signature", "", "Signature appended to every message body")
	f.String("db", "", "Optional SQLite path for recording dispatch outcomes")
	f.Bool("dry-run", false, "Compose and report without sending")
}

func addLogFlags(f *pflag.FlagSet) {
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
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

	v.SetEnvPrefix("REFLECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("reflector")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/reflector")
	v.AddConfigPath("/etc/reflector")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	rows, err := ingest.ReadSurvey(v.GetString("reflections"))
	if err != nil {
		return fmt.Errorf("read reflections: %w", err)
	}
	slog.Info("read reflection survey", "path", v.GetString("reflections"), "rows", len(rows))

	gen := &report.Generator{
		Course: v.GetString("course"),
		OutDir: v.GetString("output-dir"),
		Typesetter: &report.PDFPipeline{
			RST2LaTeX: v.GetString("rst2latex"),
			PDFLaTeX:  v.GetString("pdflatex"),
		},
	}
	if err := gen.Run(cmd.Context(), rows); err != nil {
		return fmt.Errorf("generate documents: %w", err)
	}

	if gradesPath := v.GetString("grades"); gradesPath != "" {
		return runDispatch(cmd.Context(), v, gradesPath, v.GetString("output-dir"))
	}
	return nil
}

func runSend(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	return runDispatch(cmd.Context(), v, v.GetString("grades"), v.GetString("dir"))
}

func runDispatch(ctx context.Context, v *viper.Viper, gradesPath, dir string) error {
	from := v.GetString("from")
	if from == "" {
		return fmt.Errorf("a sender address is required to dispatch mail: set --from or REFLECTOR_FROM")
	}

	grades, err := ingest.ReadGrades(gradesPath)
	if err != nil {
		return fmt.Errorf("read grades: %w", err)
	}

	catalog, err := messages.New(v.GetString("lang"))
	if err != nil {
		return fmt.Errorf("load mail text: %w", err)
	}

	var transport mail.Transport
	if v.GetBool("dry-run") {
		transport = mail.DryRun{}
	} else {
		transport = &mail.SMTP{
			Host:     v.GetString("smtp-host"),
			Port:     v.GetInt("smtp-port"),
			Username: v.GetString("smtp-user"),
			Password: v.GetString("smtp-password"),
		}
	}

	// The supervisory copy falls back to the sender when unset.
	cc := v.GetString("cc")
	if cc == "" {
		cc = from
	}

	course := v.GetString("course")
	d := &dispatch.Dispatcher{
		Course:    course,
		Dir:       dir,
		From:      from,
		CC:        cc,
		Signature: v.GetString("signature"),
		Catalog:   catalog,
		Transport: transport,
	}

	mean := dispatch.Mean(grades)
	slog.Info("dispatching reflections", "recipients", len(grades), "mean_score", mean)
	records := d.Run(ctx, grades, mean)

	var sent, missing, failed int
	for _, rec := range records {
		switch rec.Outcome {
		case model.OutcomeSent:
			sent++
		case model.OutcomeAttachmentMissing:
			missing++
		case model.OutcomeTransportFailed:
			failed++
		}
	}
	slog.Info("dispatch finished", "sent", sent, "no_reflection", missing, "failed", failed)

	if dbPath := v.GetString("db"); dbPath != "" {
		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		runID, err := db.RecordRun(course, gradesPath, mean, records)
		if err != nil {
			return fmt.Errorf("record dispatch run: %w", err)
		}
		slog.Info("recorded dispatch run", "run_id", runID, "db", dbPath)
	}

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

	runs, err := db.ExportAllRuns()
	if err != nil {
		return fmt.Errorf("export runs: %w", err)
	}

	data, err := json.MarshalIndent(model.HistoryExport{Runs: runs}, "", "  ")
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
