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
	"syscall"

	"golang.org/x/sync/errgroup"

	"sheetops/internal/config"
	"sheetops/internal/dataprocessing"
	"sheetops/internal/exporter"
	"sheetops/internal/files"
	"sheetops/internal/infrastructure"
	"sheetops/internal/services"
	"sheetops/pkg/contracts"
	"sheetops/pkg/contracts/domain"
)

// defaultWorkbooks names the input file expected for each table when no flag overrides it
var defaultWorkbooks = map[string]string{
	dataprocessing.TableEmployee:     "Employee_Master.xlsx",
	dataprocessing.TableAttendance:   "Attendance.xlsx",
	dataprocessing.TableSalary:       "Salary_Structure.xlsx",
	dataprocessing.TableTransactions: "Transactions.xlsx",
	dataprocessing.TableMaster:       "Master_Data.xlsx",
	dataprocessing.TableUserAccess:   "User_Access.xlsx",
	dataprocessing.TableAccessMatrix: "Access_Matrix.xlsx",
	dataprocessing.TableExceptions:   "Exception_List.xlsx",
}

// options holds the parsed command line
type options struct {
	op         services.Operation
	format     exporter.Format
	configFile string
	inDir      string
	outDir     string
	workbooks  map[string]string
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("Processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("processor", flag.ContinueOnError)
	fs.SetOutput(output)

	op := fs.String("op", "", "operation to run: payroll, risk or compliance")
	format := fs.String("format", string(exporter.FormatXLSX), "report format: xlsx or csv")
	opts := &options{workbooks: make(map[string]string, len(defaultWorkbooks))}
	fs.StringVar(&opts.configFile, "config", "", "path to config.yaml (defaults to the usual search locations)")
	fs.StringVar(&opts.inDir, "in", "", "directory holding the input workbooks (overrides paths.input_dir)")
	fs.StringVar(&opts.outDir, "out", "", "directory for the reports (overrides paths.reports_dir)")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	flagValues := make(map[string]*string, len(defaultWorkbooks))
	for table, file := range defaultWorkbooks {
		flagValues[table] = fs.String(table, file, fmt.Sprintf("%s workbook, relative to the input directory", table))
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.version {
		return opts, nil
	}

	parsedOp, err := services.ParseOperation(*op)
	if err != nil {
		return nil, err
	}
	opts.op = parsedOp

	if opts.format, err = exporter.ParseFormat(*format); err != nil {
		return nil, err
	}

	for table, v := range flagValues {
		opts.workbooks[table] = *v
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	if opts.inDir != "" {
		cfg.Paths.InputDir = opts.inDir
	}
	if opts.outDir != "" {
		cfg.Paths.ReportsDir = opts.outDir
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = infrastructure.WithComponent(logger, "processor")
	ctx = infrastructure.EnsureTraceID(ctx)

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Starting processing",
		slog.String("operation", string(opts.op)),
		slog.String("format", string(opts.format)),
		slog.String("input_dir", paths.InputDir),
		slog.String("output_dir", paths.ReportsDir))

	tables, err := loadTables(ctx, opts.op, paths, opts.workbooks, logger)
	if err != nil {
		return err
	}

	svc, err := services.NewProcessingService(services.PolicyFromConfig(cfg.Policy), nil, nil, logger)
	if err != nil {
		return err
	}

	result, err := svc.Run(ctx, opts.op, tables)
	if err != nil {
		return err
	}

	written, err := writeReports(ctx, exporter.NewReportWriter(paths, opts.format, logger, nil), result)
	if err != nil {
		return err
	}

	for _, f := range written {
		fmt.Fprintln(stdout, f)
	}
	if n := len(result.Issues()); n > 0 {
		logger.WarnContext(ctx, "Rows rejected during processing", slog.Int("count", n))
	}
	logger.InfoContext(ctx, "Processing complete",
		slog.String("operation", string(opts.op)),
		slog.Int("records", result.Emitted()),
		slog.Int("reports", len(written)))
	return nil
}

// loadConfig applies an explicit config file when given, else the default lookup
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return config.LoadFrom(path)
}

// loadTables reads every workbook the operation needs, concurrently
func loadTables(ctx context.Context, op services.Operation, paths *config.Paths, workbooks map[string]string, logger *slog.Logger) (map[string]domain.Table, error) {
	names := op.Tables()
	tables := make([]domain.Table, len(names))

	discovery := files.NewDiscovery(paths.InputDir)

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := discovery.Resolve(workbooks[name])
			if err != nil {
				return fmt.Errorf("%s workbook: %w", name, err)
			}
			t, err := dataprocessing.ReadWorkbook(path)
			if err != nil {
				return fmt.Errorf("%s workbook: %w", name, err)
			}
			logger.DebugContext(gctx, "Workbook loaded",
				slog.String("table", name),
				slog.String("path", path),
				slog.Int("rows", t.Len()))
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byName := make(map[string]domain.Table, len(names))
	for i, name := range names {
		byName[name] = tables[i]
	}
	return byName, nil
}

func writeReports(ctx context.Context, w *exporter.ReportWriter, result services.Result) ([]string, error) {
	switch {
	case result.Payroll != nil:
		return w.WritePayroll(ctx, *result.Payroll)
	case result.Risk != nil:
		return w.WriteRisk(ctx, *result.Risk)
	case result.Compliance != nil:
		return w.WriteCompliance(ctx, *result.Compliance)
	default:
		return nil, fmt.Errorf("no result for operation %q", result.Operation)
	}
}
