// Command regview prints and browses the memory-mapped peripherals of a
// microcontroller from a register description dataset.
//
// Usage:
//
//	regview <command> [flags] [args]
//
// Commands:
//
//	categories                       Show the category dashboard
//	instances <group>                List the instances of a peripheral group
//	registers <peripheral>           List the registers of a peripheral
//	detail <peripheral> <register>   Show the bit layout and fields of a register
//	browse                           Start the interactive browser
//	bundle -o <out> <data>           Convert a dataset to a JSON or CBOR bundle
//	trace <file.rtrace>              View or summarize a navigation trace
//
// Examples:
//
//	# Dashboard for a directory of per-peripheral JSON files
//	regview categories -data ./peripherals
//
//	# Bit diagram of one register
//	regview detail -data mcu_data.js GPIO1 GDIR
//
//	# Browse interactively and record a trace
//	regview browse -data ./peripherals -trace session.rtrace
//
//	# Summarize a trace
//	regview trace -format stats session.rtrace
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/regview/regview-go/cmd/regview/commands"
	"github.com/regview/regview-go/cmd/regview/interactive"
	"github.com/regview/regview-go/internal/viewer"
	"github.com/regview/regview-go/pkg/log"
)

const usage = `regview - MCU Peripheral Register Viewer

Usage:
  regview <command> [flags] [args]

Commands:
  categories                       Show the category dashboard
  instances <group>                List the instances of a peripheral group
  registers <peripheral>           List the registers of a peripheral
  detail <peripheral> <register>   Show the bit layout and fields of a register
  browse                           Start the interactive browser
  bundle -o <out> <data>           Convert a dataset to a JSON or CBOR bundle
  trace <file.rtrace>              View or summarize a navigation trace

Use "regview <command> -help" for more information about a command.
`

func main() {
	stdlog.SetFlags(0)
	stdlog.SetPrefix("regview: ")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "categories", "instances", "registers", "detail":
		runShow(cmd, args)
	case "browse":
		runBrowse(args)
	case "bundle":
		runBundle(args)
	case "trace":
		runTrace(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// dataFlags are shared by every command that loads a dataset.
type dataFlags struct {
	data       *string
	categories *string
	trace      *string
	logLevel   *string
	quiet      *bool
}

func addDataFlags(fs *flag.FlagSet) dataFlags {
	return dataFlags{
		data:       fs.String("data", envOr("REGVIEW_DATA", "."), "Dataset directory or bundle file (.json, .js, .yaml, .cbor)"),
		categories: fs.String("categories", "", "Category table YAML (default: built-in table)"),
		trace:      fs.String("trace", "", "Append navigation trace events to this .rtrace file"),
		logLevel:   fs.String("log-level", "warn", "Trace console log level (debug shows trace events)"),
		quiet:      fs.Bool("quiet", false, "Do not report skipped dataset files"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// open loads the dataset and sets up tracing. The returned func closes the
// trace file.
func (f dataFlags) open(frontend string) (*commands.Env, func()) {
	v, err := viewer.Open(viewer.Config{DataPath: *f.data, CategoriesPath: *f.categories})
	if err != nil {
		stdlog.Fatalf("Error: %v", err)
	}
	if !*f.quiet {
		for _, fe := range v.Failed {
			stdlog.Printf("skipped %s: %v", fe.Path, fe.Err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*f.logLevel)); err != nil {
		stdlog.Fatalf("Error: invalid -log-level %q", *f.logLevel)
	}
	console := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	closer := func() {}
	loggers := []log.Logger{log.NewSlogAdapter(console)}
	if *f.trace != "" {
		fl, err := log.NewFileLogger(*f.trace)
		if err != nil {
			stdlog.Fatalf("Error: opening trace: %v", err)
		}
		loggers = append(loggers, fl)
		closer = func() { fl.Close() }
	}

	trace := log.NewSession(log.NewMultiLogger(loggers...), frontend)
	trace.Load(v.LoadData())
	return commands.NewEnv(v, trace), closer
}

func runShow(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	want := map[string]string{
		"categories": "",
		"instances":  " <group>",
		"registers":  " <peripheral>",
		"detail":     " <peripheral> <register>",
	}[cmd]
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  regview %s [flags]%s\n\nFlags:\n", cmd, want)
		fs.PrintDefaults()
	}
	df := addDataFlags(fs)
	noDesc := fs.Bool("no-desc", false, "Omit descriptions")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	nargs := map[string]int{"categories": 0, "instances": 1, "registers": 1, "detail": 2}[cmd]
	if fs.NArg() != nargs {
		fs.Usage()
		os.Exit(1)
	}

	env, closeTrace := df.open("cli")
	defer closeTrace()
	env.Formatter.ShowDescriptions = !*noDesc

	var err error
	switch cmd {
	case "categories":
		err = commands.RunCategories(env, os.Stdout)
	case "instances":
		err = commands.RunInstances(env, fs.Arg(0), os.Stdout)
	case "registers":
		err = commands.RunRegisters(env, fs.Arg(0), os.Stdout)
	case "detail":
		err = commands.RunDetail(env, fs.Arg(0), fs.Arg(1), os.Stdout)
	}
	if err != nil {
		fmt.Fprint(os.Stderr, env.Formatter.FormatError(err))
		closeTrace()
		os.Exit(1)
	}
}

func runBrowse(args []string) {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `regview browse - Interactive register browser

Usage:
  regview browse [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	df := addDataFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	env, closeTrace := df.open("repl")
	defer closeTrace()

	shell, err := interactive.New(env)
	if err != nil {
		stdlog.Fatalf("Error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	shell.Run(ctx)
}

func runBundle(args []string) {
	fs := flag.NewFlagSet("bundle", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `regview bundle - Convert a dataset to a single bundle

Usage:
  regview bundle -o <out.json|out.cbor|-> <data>

Flags:
`)
		fs.PrintDefaults()
	}
	output := fs.String("o", "", "Output file (.json, .cbor, or - for JSON on stdout) (required)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: dataset path required")
		fs.Usage()
		os.Exit(1)
	}
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunBundle(fs.Arg(0), *output, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTrace(args []string) {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `regview trace - View a navigation trace

Usage:
  regview trace [flags] <file.rtrace>

Flags:
`)
		fs.PrintDefaults()
	}

	var opts commands.TraceOptions
	fs.StringVar(&opts.Kind, "kind", "", "Filter by kind (load, navigate, render, error)")
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Path, "path", "", "Filter by path prefix (e.g. GPIO/GPIO1)")
	fs.StringVar(&opts.Format, "format", "text", "Output format (text, jsonl, stats)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunTrace(fs.Arg(0), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
