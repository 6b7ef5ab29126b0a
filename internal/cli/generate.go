package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/quill/internal/compose"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/diffparse"
	"github.com/dshills/quill/internal/gencache"
	"github.com/dshills/quill/internal/gitctx"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/output"
	"github.com/dshills/quill/internal/pipeline"
	"github.com/dshills/quill/internal/providers"
	"github.com/dshills/quill/internal/redact"
	"github.com/dshills/quill/internal/state"
	"github.com/dshills/quill/internal/summarize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagProvider     string
	flagModel        string
	flagStyle        string
	flagFormat       string
	flagOut          string
	flagPaths        string
	flagExclude      string
	flagContextLines int
	flagMaxDiffBytes int
	flagSummaryMax   int
	flagUnstaged     bool
	flagAmend        bool
	flagLLMBullets   bool
	flagNoRedact     bool
	flagNoCache      bool
	flagLogLevel     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a commit message for the staged changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runGenerate(cfg)
		return nil
	},
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagStyle != "" {
		m["style"] = flagStyle
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagContextLines > 0 {
		m["diff.context_lines"] = fmt.Sprintf("%d", flagContextLines)
	}
	if flagMaxDiffBytes > 0 {
		m["diff.max_diff_bytes"] = fmt.Sprintf("%d", flagMaxDiffBytes)
	}
	if flagSummaryMax > 0 {
		m["summary_max_length"] = fmt.Sprintf("%d", flagSummaryMax)
	}
	if flagLLMBullets {
		m["llm_diff_bullets"] = "true"
	}
	if flagLogLevel != "" {
		m["logging.level"] = flagLogLevel
	}
	return m
}

func buildDiffOpts(cfg *config.Config) gitctx.DiffOptions {
	opts := gitctx.DiffOptions{
		ContextLines: cfg.Diff.ContextLines,
		MaxDiffBytes: cfg.Diff.MaxDiffBytes,
		Include:      cfg.Diff.Include,
		Exclude:      cfg.Diff.Exclude,
	}
	if flagPaths != "" {
		opts.Include = splitComma(flagPaths)
	}
	if flagExclude != "" {
		opts.Exclude = append(opts.Exclude, splitComma(flagExclude)...)
	}
	return opts
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func runGenerate(cfg *config.Config) {
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}
	defer log.Sync() //nolint:errcheck

	style, err := compose.ParseStyle(cfg.Style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	diff, err := collectDiff(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if strings.TrimSpace(diff.Diff) == "" {
		fmt.Fprintln(os.Stderr, "No changes to describe. Stage something first (git add).")
		exitCode = ExitNoChanges
		return
	}

	diffText := diff.Diff
	if cfg.Privacy.RedactSecrets && !flagNoRedact {
		diffText = redact.Secrets(diffText)
	} else if flagNoRedact {
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}

	gen := buildGenerator(cfg, log)

	st := state.NewWithDiff(diffText)
	st.SetMeta("provider", cfg.Provider)
	st.SetMeta("model", cfg.Model)
	st.SetMeta("style", string(style))
	st.SetMeta("diffMode", diff.Mode)
	if diff.Repo.Branch != "" {
		st.SetMeta("branch", diff.Repo.Branch)
	}

	var bulletGen providers.Generator
	if cfg.LLMDiffBullets {
		bulletGen = gen
	}

	pipe := pipeline.New(log,
		diffparse.NewStage(log, bulletGen),
		summarize.NewStage(log, gen, cfg.SummaryMaxLength),
		compose.NewStage(log, gen, style),
	)

	if err := pipe.Run(context.Background(), st); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteState(st, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if st.CommitMessage == nil {
		exitCode = ExitRuntimeError
	}
}

func collectDiff(cfg *config.Config) (gitctx.DiffResult, error) {
	opts := buildDiffOpts(cfg)
	switch {
	case flagAmend:
		return gitctx.Amend(opts)
	case flagUnstaged:
		return gitctx.Unstaged(opts)
	default:
		return gitctx.Staged(opts)
	}
}

// buildGenerator creates the configured backend, wrapped with the configured
// generation parameters and the response cache. Backend construction failure
// (missing API key, unknown provider) degrades to the deterministic pipeline
// rather than aborting.
func buildGenerator(cfg *config.Config, log *zap.Logger) providers.Generator {
	gen, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		log.Warn("generation backend unavailable, using deterministic fallbacks",
			zap.String("provider", cfg.Provider),
			zap.Error(err))
		fmt.Fprintf(os.Stderr, "Note: %v; composing without a generation backend\n", err)
		return nil
	}

	gen = providers.WithParams(gen, providers.Params{
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: cfg.Generation.Temperature,
		TopP:        cfg.Generation.TopP,
	})

	if cfg.Cache.Enabled && !flagNoCache {
		cache, err := gencache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			log.Warn("cache unavailable", zap.Error(err))
			return gen
		}
		return providers.WithCache(gen, cfg.Model, cache)
	}
	return gen
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&flagProvider, "provider", "", "Generation provider (anthropic, openai, ollama, lmstudio)")
	f.StringVar(&flagModel, "model", "", "Model name")
	f.StringVar(&flagStyle, "style", "", "Message style (conventional, angular, gitmoji)")
	f.StringVar(&flagFormat, "format", "", "Output format (text, json, message)")
	f.StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	f.StringVar(&flagPaths, "paths", "", "Include file path globs (comma-separated)")
	f.StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	f.IntVar(&flagContextLines, "context-lines", 0, "Number of context lines in diff")
	f.IntVar(&flagMaxDiffBytes, "max-diff-bytes", 0, "Maximum diff size in bytes")
	f.IntVar(&flagSummaryMax, "summary-max-length", 0, "Maximum summary length in characters")
	f.BoolVar(&flagUnstaged, "unstaged", false, "Describe unstaged changes instead of staged")
	f.BoolVar(&flagAmend, "amend", false, "Describe staged changes plus HEAD, for git commit --amend")
	f.BoolVar(&flagLLMBullets, "llm-bullets", false, "Use the generation backend to phrase change bullets")
	f.BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	f.BoolVar(&flagNoCache, "no-cache", false, "Bypass the generation response cache")
	f.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
