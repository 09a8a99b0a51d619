// Package cli implements the mrsplit command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/mrsplit/internal/metrics"
	"github.com/mmynk/mrsplit/internal/money"
	"github.com/mmynk/mrsplit/internal/service"
	"github.com/mmynk/mrsplit/internal/storage/sqlstore"
	"github.com/mmynk/mrsplit/pkg/logging"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"
)

// styles renders through a writer-specific renderer so colors are only
// emitted for terminals.
type styles struct {
	success lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
	amount  lipgloss.Style
	header  lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	return &styles{
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"}),
		err:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}),
		info:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"}),
		amount:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D75FD7", Dark: "#D75FD7"}),
		header:  r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
	}
}

// App is bound into every command's Run method.
type App struct {
	Service  *service.Service
	Currency money.Currency
	Out      io.Writer

	styles *styles
}

func (a *App) success(format string, args ...any) {
	_, _ = fmt.Fprintf(a.Out, "%s %s\n", a.styles.success.Render(successSymbol), fmt.Sprintf(format, args...))
}

func (a *App) info(format string, args ...any) {
	_, _ = fmt.Fprintf(a.Out, "%s %s\n", a.styles.info.Render(infoSymbol), fmt.Sprintf(format, args...))
}

// money renders an amount in the configured currency.
func (a *App) money(amount int64) string {
	return a.Currency.FormatWithCode(amount)
}

func printError(w io.Writer, message string) {
	s := newStyles(w)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		s.err.Render(errorSymbol),
		s.err.Render(message),
	)
}

// Execute parses args, runs the selected command and returns the process
// exit code. Errors are printed to stderr.
func Execute(args []string, stdout, stderr io.Writer, options ...kong.Option) int {
	var cli Commands

	exitCode := -1
	options = append([]kong.Option{
		kong.Name("mrsplit"),
		kong.Description("Split shared expenses and settle up."),
		kong.Vars{
			"version":        buildVersion(),
			"activity_limit": strconv.Itoa(service.DefaultActivityLimit),
		},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.UsageOnError(),
		kong.Bind(&cli.Globals),
	}, options...)

	parser, err := kong.New(&cli, options...)
	if err != nil {
		printError(stderr, err.Error())
		return 1
	}
	ctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help or --version
		return exitCode
	}
	if err != nil {
		printError(stderr, err.Error())
		return 2
	}

	if err := run(ctx, &cli.Globals, stdout, stderr); err != nil {
		printError(stderr, err.Error())
		return 1
	}
	return 0
}

func run(ctx *kong.Context, globals *Globals, stdout, stderr io.Writer) error {
	cfg := globals.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(stderr, level)

	store, err := sqlstore.Open(context.Background(), cfg.Driver, cfg.DSN)
	if err != nil {
		return err
	}

	m := metrics.New()
	svc := service.New(store, service.WithRecorder(m), service.WithLogger(logger))
	defer svc.Close()

	app := &App{
		Service:  svc,
		Currency: cfg.Money(),
		Out:      stdout,
		styles:   newStyles(stdout),
	}
	runErr := ctx.Run(app)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}
	return runErr
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
