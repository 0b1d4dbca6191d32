package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/CTAG07/wordchain/pkg/archive"
	"github.com/CTAG07/wordchain/pkg/markov"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// stringList is a flag that may be repeated.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// cliFlags holds the parsed command line.
type cliFlags struct {
	fs          *flag.FlagSet
	configPath  string
	files       stringList
	count       int
	required    string
	wordLength  int
	parallel    bool
	seed        uint64
	output      string
	history     string
	historyList int
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{fs: flag.NewFlagSet("wordchain", flag.ContinueOnError)}
	f.fs.SetOutput(stderr)

	f.fs.StringVar(&f.configPath, "config", "./wordchain.json", "path to the JSON or YAML config file")
	f.fs.Var(&f.files, "f", "source text file (repeatable)")
	f.fs.IntVar(&f.count, "s", 1, "number of sentences to generate")
	f.fs.StringVar(&f.required, "r", "", "comma separated words every sentence must contain")
	f.fs.IntVar(&f.wordLength, "w", 1, "number of words captured per link")
	f.fs.BoolVar(&f.parallel, "p", false, "generate with one worker per processor")
	f.fs.Uint64Var(&f.seed, "seed", 0, "random seed, 0 picks one at random")
	f.fs.StringVar(&f.output, "o", "", "also write the sentences to this file")
	f.fs.StringVar(&f.history, "history", "", "SQLite database recording every run")
	f.fs.IntVar(&f.historyList, "history-list", 0, "print the last N recorded runs and exit")
	f.fs.BoolVar(&f.version, "version", false, "print the version and exit")

	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply copies the flags that were set explicitly over the config.
func (f *cliFlags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "s":
			cfg.Count = f.count
		case "w":
			cfg.WordLength = f.wordLength
		case "p":
			cfg.Parallel = f.parallel
		case "seed":
			cfg.Seed = f.seed
		case "history":
			cfg.HistoryPath = f.history
		}
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		baseLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		baseLogger.Error("wordchain failed", "error", err)
		os.Exit(1)
	}
}

// run builds the model, generates the sentences and prints them to stdout.
// Logs go to stderr so the output can be piped.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if flags.version {
		_, _ = fmt.Fprintf(stdout, "wordchain %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return nil
	}

	cfg, err := LoadConfig(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	flags.apply(cfg)

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))

	if flags.historyList > 0 {
		return listHistory(ctx, cfg.HistoryPath, flags.historyList, stdout, logger)
	}
	if len(flags.files) == 0 {
		return errors.New("no source files given, use -f")
	}

	sources, err := readSources(flags.files)
	if err != nil {
		return err
	}
	model, err := markov.BuildFromSources(sources, cfg.WordLength)
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}
	stats := model.Stats()
	logger.Info("Model built",
		slog.Int("files", len(sources)),
		slog.Int("sentences", stats.Sentences),
		slog.Int("starting_words", stats.StartingWords),
		slog.Int("vocabulary", stats.Vocabulary),
		slog.Int("word_length", stats.WordLength),
	)

	gen := markov.NewGenerator(model)
	gen.SetLogger(logger)
	if cfg.Seed != 0 {
		gen.SetSeed(cfg.Seed)
	}

	required := splitRequired(flags.required)
	start := time.Now()
	sentences, err := gen.Generate(ctx, cfg.generateOptions(required)...)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	for _, sentence := range sentences {
		_, _ = fmt.Fprintln(stdout, sentence)
	}
	logger.Info("Generation finished",
		slog.Int("sentences", len(sentences)),
		slog.Duration("elapsed", elapsed),
	)

	if flags.output != "" {
		if err = writeOutput(flags.output, sentences); err != nil {
			return err
		}
		logger.Info("Output written", slog.String("path", flags.output))
	}

	if cfg.HistoryPath != "" {
		record := &archive.Run{
			WordLength:    cfg.WordLength,
			RequiredWords: required,
			Workers:       cfg.workerCount(runtime.GOMAXPROCS(0)),
			Seed:          cfg.Seed,
			Elapsed:       elapsed,
			Sentences:     sentences,
		}
		if err = recordRun(ctx, cfg.HistoryPath, record, logger); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}

	return nil
}
