package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	gfn "github.com/panyam/goutils/fn"
	"github.com/raymyers/gdshader/pkg/gdast"
	"github.com/raymyers/gdshader/pkg/include"
	"github.com/raymyers/gdshader/pkg/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var version = "0.1.0"

// Output modes
var (
	dParse   bool
	dumpDeps bool
	format   string
)

// Parser and include options
var (
	includePaths []string
	projectRoot  string
	maxDepth     int
	noColor      bool
)

// ErrDiagnostics is returned when a checked file has syntax errors.
var ErrDiagnostics = errors.New("shader has errors")

// ErrUnresolvedIncludes is returned by --deps when an include cannot be
// followed.
var ErrUnresolvedIncludes = errors.New("unresolved includes")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept compiler-style single-dash flags such as -dparse
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// singleDashFlags lists long flags that may also be written with one dash
var singleDashFlags = []string{"dparse", "deps"}

// normalizeFlags converts single-dash long flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range singleDashFlags {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gdshader [files...]",
		Short: "gdshader parses Godot shading language files",
		Long: `gdshader parses Godot .gdshader and .gdshaderinc files into a
syntax tree. Without a mode flag it checks each file and reports
diagnostics. A file named "-" is read from standard input.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			if format != "sexp" && format != "yaml" {
				fmt.Fprintf(errOut, "gdshader: unknown format %q (want sexp or yaml)\n", format)
				return fmt.Errorf("unknown format %q", format)
			}
			if maxDepth < 0 {
				fmt.Fprintf(errOut, "gdshader: --max-depth must not be negative\n")
				return fmt.Errorf("invalid max depth %d", maxDepth)
			}

			r := newReporter(errOut, noColor)
			var failed error
			for _, filename := range args {
				var err error
				switch {
				case dumpDeps:
					err = doDeps(filename, out, r)
				case dParse:
					err = doParse(filename, cmd.InOrStdin(), out, r)
				default:
					err = doCheck(filename, cmd.InOrStdin(), r)
				}
				if err != nil && failed == nil {
					failed = err
				}
			}
			return failed
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVarP(&dParse, "dparse", "", false, "Dump the syntax tree after parsing")
	rootCmd.Flags().StringVar(&format, "format", "sexp", "Tree dump format: sexp or yaml")
	rootCmd.Flags().BoolVarP(&dumpDeps, "deps", "", false, "List the include dependencies of each file")

	rootCmd.Flags().StringArrayVarP(&includePaths, "include", "I", nil, "Add directory to include search path")
	rootCmd.Flags().StringVar(&projectRoot, "project-root", "", "Directory that res:// paths resolve against")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "Maximum statement and expression nesting")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored diagnostics")
	rootCmd.Flags().SetNormalizeFunc(flagAliases)

	return rootCmd
}

// flagAliases accepts underscores in long flag names and the older
// spellings of renamed flags.
func flagAliases(f *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "include-path":
		name = "include"
	case "root":
		name = "project-root"
	}
	return pflag.NormalizedName(name)
}

func parserOptions() parser.Options {
	return parser.Options{MaxDepth: maxDepth}
}

// readSource reads a shader file, or standard input for "-".
func readSource(filename string, stdin io.Reader) (string, error) {
	if filename == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(filename)
	return string(data), err
}

// parseFile reads and parses a shader file, reporting its diagnostics
func parseFile(filename string, stdin io.Reader, r *reporter) (*parser.Tree, error) {
	src, err := readSource(filename, stdin)
	if err != nil {
		r.failure("error reading %s: %v", filename, err)
		return nil, err
	}

	tree, err := parser.ParseWithOptions(src, parserOptions())
	if err != nil {
		r.failure("%s: %v", filename, err)
		return nil, err
	}
	for _, e := range tree.Errors {
		r.diagnostic(filename, src, e)
	}
	return tree, nil
}

// doCheck parses the file and fails if it has any diagnostics
func doCheck(filename string, stdin io.Reader, r *reporter) error {
	tree, err := parseFile(filename, stdin, r)
	if err != nil {
		return err
	}
	if len(tree.Errors) > 0 {
		return fmt.Errorf("%s: %w", filename, ErrDiagnostics)
	}
	return nil
}

// doParse parses the file and dumps the tree. Diagnostics are reported but
// do not fail the dump.
func doParse(filename string, stdin io.Reader, out io.Writer, r *reporter) error {
	tree, err := parseFile(filename, stdin, r)
	if err != nil {
		return err
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(gdast.FileToYAML(tree.Decls)); err != nil {
			r.failure("error writing tree: %v", err)
			return err
		}
		return enc.Close()
	}

	gdast.NewPrinter(out).PrintFile(tree.Decls)
	return nil
}

// doDeps walks the include graph of the file and lists every include with
// where it resolved to.
func doDeps(filename string, out io.Writer, r *reporter) error {
	resolver := include.NewResolver(projectRoot)
	resolver.Options = parserOptions()
	for _, dir := range includePaths {
		resolver.AddSearchPath(dir)
	}

	deps, err := resolver.Walk(filename)
	if err != nil {
		r.failure("%v", err)
		return err
	}

	lines := gfn.Map(deps, func(d include.Dependency) string {
		if d.Err != nil {
			return fmt.Sprintf("%s:%d: %s: %s", d.From, d.Line, d.Path, firstLine(d.Err.Error()))
		}
		return fmt.Sprintf("%s:%d: %s -> %s", d.From, d.Line, d.Path, d.Resolved)
	})
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	for _, d := range deps {
		if d.Err != nil {
			r.failure("%s:%d: %v", d.From, d.Line, firstLine(d.Err.Error()))
			return fmt.Errorf("%s: %w", filename, ErrUnresolvedIncludes)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// reporter writes colored diagnostics to the error writer
type reporter struct {
	w       io.Writer
	errText *color.Color
	vocText *color.Color
	caret   *color.Color
}

func newReporter(w io.Writer, disable bool) *reporter {
	r := &reporter{
		w:       w,
		errText: color.New(color.FgRed, color.Bold),
		vocText: color.New(color.FgYellow, color.Bold),
		caret:   color.New(color.FgGreen),
	}
	if disable {
		r.errText.DisableColor()
		r.vocText.DisableColor()
		r.caret.DisableColor()
	}
	return r
}

func (r *reporter) failure(format string, args ...any) {
	fmt.Fprintf(r.w, "gdshader: "+format+"\n", args...)
}

// diagnostic prints a parse error with the offending source line:
//
//	water.gdshader:3:7: error: expected expression, got ';'
//	  x = ;
//	      ^
func (r *reporter) diagnostic(filename string, src string, e parser.ParseError) {
	label := r.errText.Sprint("error")
	if e.Kind == parser.InvalidVocabulary {
		label = r.vocText.Sprint("invalid")
	}
	fmt.Fprintf(r.w, "%s:%d:%d: %s: %s\n", filename, e.Line, e.Column, label, e.Message)

	line := sourceLine(src, e.Span.Start)
	if strings.TrimSpace(line) == "" {
		return
	}
	width := e.Span.Len()
	if width < 1 {
		width = 1
	}
	col := min(e.Column-1, len(line))
	if rest := len(line) - col; width > rest {
		width = max(rest, 1)
	}
	// Keep tabs so the caret lines up under tab-indented source.
	pad := strings.Map(func(c rune) rune {
		if c == '\t' {
			return '\t'
		}
		return ' '
	}, line[:col])
	fmt.Fprintf(r.w, "  %s\n  %s%s\n", line, pad, r.caret.Sprint(strings.Repeat("^", width)))
}

// sourceLine returns the line of src containing offset, without its
// newline.
func sourceLine(src string, offset int) string {
	if offset > len(src) {
		offset = len(src)
	}
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[offset:], '\n')
	if end < 0 {
		return src[start:]
	}
	return src[start : offset+end]
}
