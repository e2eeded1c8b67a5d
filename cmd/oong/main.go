package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"oong/pkg/errors"
	"oong/pkg/interp"
	"oong/pkg/lexer"
	"oong/pkg/parser"
	"oong/pkg/source"
)

var (
	flagStrict  bool
	flagRecover bool
	flagNoColor bool
	flagLogFile string
	flagFormat  string
	flagEval    string

	logFileHandle *os.File
)

func main() {
	root := &cobra.Command{
		Use:   "oong",
		Short: "oong language front end",
		Long:  "Tokenize, parse and run oong scripts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFileHandle != nil {
				logFileHandle.Close()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&flagStrict, "strict", false, "lex reserved words in strict mode")
	root.PersistentFlags().BoolVar(&flagRecover, "recover", false, "skip unrecognized input instead of failing")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable ANSI colors in output")
	root.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also write logs to this file")
	root.PersistentFlags().StringVarP(&flagEval, "eval", "e", "", "run the given source text instead of a file")

	runCmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Parse and run a script",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScript,
	}

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a script and dump the tree",
		Args:  cobra.MaximumNArgs(1),
		RunE:  parseScript,
	}
	parseCmd.Flags().StringVar(&flagFormat, "format", "text", "output format: text or yaml")

	tokensCmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Tokenize a script and print the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpTokens,
	}

	root.AddCommand(runCmd, parseCmd, tokensCmd)
	root.RunE = runScript
	root.Args = cobra.MaximumNArgs(1)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging() error {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	stderrHandler := slog.NewTextHandler(os.Stderr, opts)
	if flagLogFile == "" {
		slog.SetDefault(slog.New(stderrHandler))
		return nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logFileHandle = f
	fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(slogmulti.Fanout(stderrHandler, fileHandler)))
	return nil
}

func loadSource(args []string) (*source.SourceFile, error) {
	if flagEval != "" {
		return source.NewEvalSource(flagEval), nil
	}
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return source.NewStdinSource(string(content)), nil
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return source.FromFile(args[0], string(content)), nil
}

func parseProgram(sf *source.SourceFile) (*parser.Program, error) {
	lx := lexer.NewLexerWithConfig(sf.Content, lexer.Config{StrictMode: flagStrict})
	cfg := parser.Config{ValidateRegex: true}
	if flagRecover {
		cfg.Recovery = parser.RecoverySkipUnknown
	}
	slog.Debug("parsing", "file", sf.DisplayPath(), "strict", flagStrict, "recover", flagRecover)
	return parser.NewParserWithConfig(lx, cfg).Parse()
}

func reportError(sf *source.SourceFile, err error) error {
	var oe errors.OongError
	if goerrors.As(err, &oe) {
		errors.DisplayErrors(os.Stderr, sf.Content, []errors.OongError{oe})
		return fmt.Errorf("%s: %s error", sf.DisplayPath(), strings.ToLower(oe.Kind()))
	}
	return err
}

func runScript(cmd *cobra.Command, args []string) error {
	sf, err := loadSource(args)
	if err != nil {
		return err
	}
	prog, err := parseProgram(sf)
	if err != nil {
		return reportError(sf, err)
	}
	it := interp.New(os.Stdout)
	it.SetColor(!flagNoColor)
	if err := it.Run(prog); err != nil {
		return reportError(sf, err)
	}
	return nil
}

func parseScript(cmd *cobra.Command, args []string) error {
	sf, err := loadSource(args)
	if err != nil {
		return err
	}
	prog, err := parseProgram(sf)
	if err != nil {
		return reportError(sf, err)
	}
	switch flagFormat {
	case "yaml":
		out, err := yaml.Marshal(prog)
		if err != nil {
			return err
		}
		os.Stdout.Write(out)
	case "text":
		if s := prog.String(); s != "" {
			fmt.Print(s)
		}
		fmt.Println("Parse OK")
	default:
		return fmt.Errorf("unknown format %q", flagFormat)
	}
	return nil
}

func dumpTokens(cmd *cobra.Command, args []string) error {
	sf, err := loadSource(args)
	if err != nil {
		return err
	}
	lx := lexer.NewLexerWithConfig(sf.Content, lexer.Config{StrictMode: flagStrict})
	for {
		tok := lx.NextToken()
		fmt.Println(tok.String())
		if tok.Kind == lexer.EOF {
			return nil
		}
	}
}
