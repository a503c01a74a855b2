// Command bionic converts EPUB books to bionic reading and previews the
// transform on plain text.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"github.com/simp-lee/bionic"
	"github.com/simp-lee/bionic/internal/preview"
)

const (
	defaultWidth = 80
	exitFailure  = 1
	exitUsage    = 2
)

func init() {
	version.SetDefaultModule("github.com/simp-lee/bionic")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type config struct {
	output      string
	workers     int
	tags        []string
	emphasis    string
	text        bool
	width       int
	quiet       bool
	showVersion bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg config
	flags := pflag.NewFlagSet("bionic", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&cfg.output, "output", "o", "", "Output path (default: Bionic_<name> next to the input)")
	flags.IntVarP(&cfg.workers, "workers", "w", 0, "Documents converted in parallel (0 uses GOMAXPROCS)")
	flags.StringSliceVar(&cfg.tags, "tags", nil, "Paragraph-level tags to rewrite (default p)")
	flags.StringVar(&cfg.emphasis, "emphasis", "", "Emphasis tag wrapped around bold prefixes (default b)")
	flags.BoolVar(&cfg.text, "text", false, "Preview plain text from files or stdin with ANSI bold")
	flags.IntVar(&cfg.width, "width", 0, "Preview wrap width (0 uses terminal width if available)")
	flags.BoolVarP(&cfg.quiet, "quiet", "q", false, "Suppress progress and summary output")
	flags.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: bionic [flags] book.epub\n")
		fmt.Fprintf(stderr, "       bionic --text [flags] [files...]\n")
		fmt.Fprintln(stderr, "\nWith --text and no files, text is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return exitUsage
	}
	if cfg.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	opts := bionic.DefaultOptions()
	if len(cfg.tags) > 0 {
		opts.ParagraphTags = cfg.tags
	}
	if cfg.emphasis != "" {
		opts.EmphasisTag = cfg.emphasis
	}

	if cfg.text {
		return runText(flags.Args(), cfg, stdin, stdout, stderr)
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return exitUsage
	}
	return runBook(ctx, flags.Arg(0), cfg, opts, stdout, stderr)
}

func runBook(ctx context.Context, input string, cfg config, opts bionic.Options, stdout, stderr io.Writer) int {
	output := resolveOutput(input, cfg.output)
	bookCfg := bionic.BookOptions{Options: opts, Workers: cfg.workers}

	var bar *progressBar
	if !cfg.quiet && isTerminal(stderr) {
		bar = newProgressBar(stderr, terminalWidth(stderr, defaultWidth))
		bookCfg.Progress = bar.Update
	}

	stats, err := bionic.ConvertFile(ctx, input, output, bookCfg)
	if bar != nil {
		bar.Finish()
	}
	for _, w := range stats.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "convert %s: %v\n", input, err)
		return exitFailure
	}
	if !cfg.quiet {
		title := stats.Title
		if title == "" {
			title = filepath.Base(input)
		}
		fmt.Fprintf(stdout, "%s: %d converted, %d copied -> %s\n", title, stats.Converted, stats.Copied, output)
	}
	return 0
}

func runText(args []string, cfg config, stdin io.Reader, stdout, stderr io.Writer) int {
	text, err := readInputs(args, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return exitFailure
	}
	if err := preview.Render(stdout, text, resolveWidth(cfg.width, stdout)); err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		return exitFailure
	}
	return 0
}

// resolveOutput returns the explicit output path, or the prefixed input
// name in the input's directory.
func resolveOutput(input, output string) string {
	if strings.TrimSpace(output) != "" {
		return output
	}
	return filepath.Join(filepath.Dir(input), bionic.OutputName(input))
}

func readInputs(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	var b strings.Builder
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		b.Write(data)
	}
	return b.String(), nil
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	return terminalWidth(w, defaultWidth)
}

func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if cols, err := strconv.Atoi(value); err == nil && cols > 0 {
			return cols
		}
	}
	return fallback
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
