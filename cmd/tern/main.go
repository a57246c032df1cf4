package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tern/internal/checker"
	"tern/internal/config"
	"tern/internal/evaluator"
	"tern/internal/lexer"
	"tern/internal/object"
	"tern/internal/parser"
	"tern/internal/repl"
	"tern/internal/stdlib"
	"tern/internal/types"
)

var (
	// Version is stamped at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"

	help    bool
	version bool
	// logging
	logLevel string
	logFile  string
	// pipeline config
	noCheck      bool
	debugAST     bool
	manifestPath string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	// pipeline config
	flag.BoolVar(&noCheck, "no-check", false, "Skip the type checker and interpret directly")
	flag.BoolVar(&debugAST, "debug-ast", false, "Render the AST as JSON to stdout")
	flag.StringVar(&manifestPath, "manifest", "", "Path to a tern.toml manifest (default: ./tern.toml when present)")
	// log config
	flag.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {
	flag.Parse()

	if version {
		printVersion()
		return
	}
	if help {
		printHelp()
		return
	}

	manifest := loadManifest()
	// flags win over the manifest for logging
	if manifest != nil {
		if logLevel == "error" && manifest.Log.Level != "" {
			logLevel = manifest.Log.Level
		}
		if logFile == "" && manifest.Log.File != "" {
			logFile = manifest.Log.File
		}
	}

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(logLevel),
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(configureLogWriter(), loggerOptions)))

	cfg := config.Configuration{
		Version:   Version,
		BuildDate: BuildDate,
		Commit:    Commit,
		NoCheck:   noCheck,
		DebugAST:  debugAST,
	}

	fileName := flag.Arg(0)
	if manifest != nil {
		slog.Info("loaded manifest",
			slog.String("name", manifest.Name),
			slog.String("entry", manifest.Entry))
		if fileName == "" {
			fileName = manifest.Entry
		}
		if !manifest.CheckEnabled() {
			cfg.NoCheck = true
		}
	}

	if fileName == "" {
		fmt.Printf("tern v%s\n", Version)
		repl.Start(os.Stdin, os.Stdout)
		return
	}

	source, err := os.ReadFile(fileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", fileName, err)
		os.Exit(1)
	}

	os.Exit(run(string(source), cfg, manifest))
}

// loadManifest reads the -manifest path, or ./tern.toml when it exists.
// Returns nil when no manifest is present.
func loadManifest() *config.Manifest {
	path := manifestPath
	if path == "" {
		path = config.DefaultManifestName
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	m, err := config.LoadManifest(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return m
}

func run(source string, cfg config.Configuration, manifest *config.Manifest) int {
	tokens, lexErr := lexer.New(source).Tokenize()
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr)
		return 1
	}

	// Parse errors do not stop the run: recovery drops the bad statements
	// and the rest of the program is checked and executed. The exit code
	// still reports the failure.
	p := parser.New(tokens)
	program := p.ParseProgram()
	parseFailed := len(p.Errors()) != 0
	for _, e := range p.Errors() {
		fmt.Fprintln(os.Stderr, e)
	}

	ev := evaluator.New()
	var ck *checker.Checker
	if !cfg.NoCheck {
		ck = checker.New()
	}
	stdlib.Bind(ev, ck)

	if manifest != nil && manifest.DB.Driver != "" {
		ev.Register("DB_DRIVER", &object.String{Value: manifest.DB.Driver})
		ev.Register("DB_DSN", &object.String{Value: manifest.DB.DSN})
		if ck != nil {
			ck.Register("DB_DRIVER", types.String)
			ck.Register("DB_DSN", types.String)
		}
	}

	if ck != nil {
		if err := ck.Check(program); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if cfg.DebugAST {
		rendered, err := parser.RenderASTAsJSON(program)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to render AST: %v\n", err)
		} else {
			fmt.Println(rendered)
		}
	}

	if _, err := ev.Interpret(program); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if parseFailed {
		return 1
	}
	return 0
}

func configureLogWriter() *os.File {
	if logFile == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	w, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	return w
}

func printVersion() {
	fmt.Printf("tern version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: tern [options] [filename]

Options:
  -no-check          Skip the type checker and interpret directly.
  -debug-ast         Render the AST as JSON to stdout.
  -manifest <path>   Path to a tern.toml manifest. Default is './tern.toml' when present.
  -help              Display this help information and exit.
  -version           Display version information and exit.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.

Details:
This is the Tern programming language. Without a filename (and without a
manifest entry) an interactive session is started.

Examples:
  tern                          Start an interactive session
  tern main.tern                Type check and run the provided file
  tern -no-check main.tern      Run the file without type checking

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
