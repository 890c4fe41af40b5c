package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/executor"
	"github.com/wippyai/gpu-layout/shapes"
)

type options struct {
	typeName string
	space    string
	kernel   string
	list     bool
	wgsl     bool
	check    bool
	hex      bool
	run      bool
}

func main() {
	var (
		opts        options
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log codec and executor activity to stderr")
	)
	flag.StringVar(&opts.typeName, "type", "", "Shape to inspect (see -list)")
	flag.StringVar(&opts.space, "space", "", "Address space: storage or uniform (default: the shape's own)")
	flag.StringVar(&opts.kernel, "kernel", "", "Print the copy-out kernel: copy or increment")
	flag.BoolVar(&opts.list, "list", false, "List catalogued shapes and exit")
	flag.BoolVar(&opts.wgsl, "wgsl", false, "Print WGSL struct declarations")
	flag.BoolVar(&opts.check, "check", false, "Compile the kernel to SPIR-V with naga")
	flag.BoolVar(&opts.hex, "hex", false, "Hex dump the packed sample value")
	flag.BoolVar(&opts.run, "run", false, "Round-trip the sample through the host executor with an increment kernel")
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		codec.SetLogger(logger.Named("codec"))
		executor.SetLogger(logger.Named("executor"))
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !opts.list && opts.typeName == "" {
		fmt.Fprintln(os.Stderr, "Usage: gpulayout -list")
		fmt.Fprintln(os.Stderr, "       gpulayout -type <name> [-space storage|uniform] [-wgsl] [-kernel copy|increment [-check]] [-hex] [-run]")
		fmt.Fprintln(os.Stderr, "       gpulayout -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(context.Background(), os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, opts options) error {
	if opts.list {
		_, err := io.WriteString(w, renderCatalog()+"\n")
		return err
	}

	entry, ok := shapes.Lookup(opts.typeName)
	if !ok {
		return fmt.Errorf("unknown shape %q (one of %s)", opts.typeName, strings.Join(shapes.Names(), ", "))
	}
	space := entry.Space
	if opts.space != "" {
		s, err := gpulayout.ParseAddressSpace(opts.space)
		if err != nil {
			return err
		}
		space = s
	}

	lay, err := codec.NewCompiler().Layout(entry.Type, space)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	sections := []string{renderLayout(lay), renderRegions(lay)}

	if opts.wgsl {
		s, err := declarationsSection(lay)
		if err != nil {
			return err
		}
		sections = append(sections, s)
	}
	if opts.kernel != "" || opts.check {
		s, err := kernelSection(lay, opts.kernel, opts.check)
		if err != nil {
			return err
		}
		sections = append(sections, s)
	}
	if opts.hex {
		s, err := hexSection(entry.Sample(), space)
		if err != nil {
			return err
		}
		sections = append(sections, s)
	}
	if opts.run {
		s, err := runSection(ctx, entry.Sample(), lay)
		if err != nil {
			return err
		}
		sections = append(sections, s)
	}

	_, err = io.WriteString(w, strings.Join(sections, "\n\n")+"\n")
	return err
}
