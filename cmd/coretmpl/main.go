// coretmpl matches lines of text against pattern templates.
//
// Templates come from a catalog file (YAML, TOML or JSONC) or from a single
// inline template given on the command line:
//
//	coretmpl --catalog patterns.yaml access.log
//	coretmpl --contexts 'GET ' --contexts ' HTTP/' --contexts '' < access.log
//	coretmpl --regex 'user=(\S+)' --kind regex --json app.log
//
// Each matching line prints one record: the template name, the byte offsets
// of the match within the line and the captured variables. The exit status
// is 0 when at least one line matched, 1 when none did and 2 on error.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/spf13/pflag"

	"github.com/coregx/coretmpl"
	"github.com/coregx/coretmpl/catalog"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// inlineName names the template built from --contexts or --regex.
const inlineName = "inline"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	catalogPath string
	contexts    []string
	regex       string
	kind        string
	json        bool
	all         bool
	print       bool
	schema      bool
	watch       bool
	verbose     bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	flagSet := pflag.NewFlagSet("coretmpl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.catalogPath, "catalog", "c", "", "catalog file (.yaml, .toml, .json or .jsonc)")
	flagSet.StringArrayVar(&opts.contexts, "contexts", nil, "one context of an inline template (repeat in order)")
	flagSet.StringVarP(&opts.regex, "regex", "e", "", "inline template as regex source")
	flagSet.StringVarP(&opts.kind, "kind", "k", "contexts", "template representation: contexts or regex")
	flagSet.BoolVar(&opts.json, "json", false, "print one JSON object per match")
	flagSet.BoolVarP(&opts.all, "all", "a", false, "report every matching template, not only the first")
	flagSet.BoolVar(&opts.print, "print", false, "print the loaded templates and exit")
	flagSet.BoolVar(&opts.schema, "schema", false, "print the catalog JSON schema and exit")
	flagSet.BoolVarP(&opts.watch, "watch", "w", false, "reload the catalog when it changes")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: coretmpl [flags] [file ...]\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitMatch
		}
		return exitError
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.schema {
		data, err := catalog.Schema()
		if err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintf(stdout, "%s\n", data)
		return exitMatch
	}

	config, err := opts.config()
	if err != nil {
		return fail(stderr, err)
	}

	set, err := opts.load(config)
	if err != nil {
		return fail(stderr, err)
	}
	for _, names := range catalog.Duplicates(set) {
		logger.Warn("templates with identical content", slog.String("names", strings.Join(names, ",")))
	}
	logger.Debug("templates loaded",
		slog.Int("count", set.Len()),
		slog.Bool("prefiltered", set.Prefiltered()),
	)

	if opts.print {
		printSet(stdout, set)
		return exitMatch
	}

	var current atomic.Pointer[coretmpl.Set]
	current.Store(set)

	if opts.watch {
		if opts.catalogPath == "" {
			return fail(stderr, errors.New("--watch requires --catalog"))
		}
		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		defer func() {
			cancel()
			<-stopped
		}()
		go func() {
			defer close(stopped)
			err := catalog.Watch(ctx, opts.catalogPath, config, logger, func(s *coretmpl.Set) {
				current.Store(s)
			})
			if err != nil {
				logger.Error("catalog watch stopped", slog.String("error", err.Error()))
			}
		}()
	}

	out := newPrinter(stdout, opts.json)
	matched := false
	inputs := flagSet.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	for _, input := range inputs {
		ok, err := scanInput(input, stdin, &current, opts.all, out)
		if err != nil {
			return fail(stderr, err)
		}
		matched = matched || ok
	}
	if err := out.flush(); err != nil {
		return fail(stderr, err)
	}

	if !matched {
		return exitNoMatch
	}
	return exitMatch
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitError
}

func (o *options) config() (coretmpl.Config, error) {
	kind, err := coretmpl.ParseKind(o.kind)
	if err != nil {
		return coretmpl.Config{}, err
	}
	config := coretmpl.DefaultConfig()
	config.Kind = kind
	return config, nil
}

// load builds the Set named by exactly one of --catalog, --contexts or --regex.
func (o *options) load(config coretmpl.Config) (*coretmpl.Set, error) {
	sources := 0
	for _, given := range []bool{o.catalogPath != "", len(o.contexts) > 0, o.regex != ""} {
		if given {
			sources++
		}
	}
	if sources != 1 {
		return nil, errors.New("exactly one of --catalog, --contexts or --regex is required")
	}

	if o.catalogPath != "" {
		return catalog.Load(o.catalogPath, config)
	}

	b := coretmpl.NewSetBuilder(config)
	var err error
	if len(o.contexts) > 0 {
		err = b.AddContexts(inlineName, o.contexts)
	} else {
		err = b.AddRegex(inlineName, o.regex)
	}
	if err != nil {
		return nil, err
	}
	return b.Build()
}

func printSet(w io.Writer, set *coretmpl.Set) {
	for _, name := range set.Names() {
		tmpl, _ := set.Get(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%q\n", name, tmpl.Kind(), tmpl.Regex(), tmpl.Contexts())
	}
}

// scanInput matches every line of input ("-" is stdin) against the current
// Set. The Set is reloaded per line so --watch takes effect mid-stream.
func scanInput(input string, stdin io.Reader, current *atomic.Pointer[coretmpl.Set], all bool, out *printer) (bool, error) {
	r := stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return false, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	matched := false
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		set := current.Load()

		var matches []coretmpl.SetMatch
		if all {
			matches = set.MatchAll(line)
		} else if m := set.Match(line); m != nil {
			matches = []coretmpl.SetMatch{*m}
		}

		for _, m := range matches {
			matched = true
			if err := out.write(input, lineno, m); err != nil {
				return matched, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return matched, fmt.Errorf("reading %s: %w", input, err)
	}
	return matched, nil
}

// record is the --json output for one match.
type record struct {
	Input  string   `json:"input"`
	Line   int      `json:"line"`
	Name   string   `json:"name"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Groups []string `json:"groups"`
}

type printer struct {
	w    *bufio.Writer
	enc  *json.Encoder
	json bool
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	bw := bufio.NewWriter(w)
	return &printer{w: bw, enc: json.NewEncoder(bw), json: asJSON}
}

func (p *printer) write(input string, line int, m coretmpl.SetMatch) error {
	if p.json {
		return p.enc.Encode(record{
			Input:  input,
			Line:   line,
			Name:   m.Name,
			Start:  m.Start(),
			End:    m.End(),
			Groups: m.Groups(),
		})
	}

	fields := append([]string{m.Name, fmt.Sprint(m.Start()), fmt.Sprint(m.End())}, m.Groups()...)
	_, err := fmt.Fprintln(p.w, strings.Join(fields, "\t"))
	return err
}

func (p *printer) flush() error {
	return p.w.Flush()
}
