package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/strictskema"
	"github.com/reoring/strictskema/i18n"
	"github.com/reoring/strictskema/schemafile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "convert":
		return convertCmd(args[1:], stdout, stderr)
	case "check":
		return checkCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "strictskema CLI\n\nUsage:\n  strictskema convert -in schema.yaml [-o out.json] [-pin | -pin-only A,B] [-indent] [-lang en|ja] [-v]\n  strictskema check -in schema.yaml [-strict] [-lang en|ja]\n\nNotes:\n  - Input is YAML or JSON: a single schema, or {definitions: {...}, root: ...}.\n  - -pin keeps definition names from the document instead of Def_1, Def_2, ...")
}

type common struct {
	in     string
	strict bool
	lang   string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.in, "in", "", "schema document (YAML or JSON)")
	fs.BoolVar(&c.strict, "strict", false, "treat unknown keys in the document as errors")
	fs.StringVar(&c.lang, "lang", "en", "message language (en|ja)")
}

func convertCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	var out, pinOnly string
	var pin, indent, verbose bool
	c.register(fs)
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	fs.BoolVar(&pin, "pin", false, "name $defs after the document's definitions")
	fs.StringVar(&pinOnly, "pin-only", "", "comma-separated definition names to pin")
	fs.BoolVar(&indent, "indent", false, "indent the output")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if c.in == "" {
		fs.Usage()
		return 2
	}
	logf := func(format string, a ...any) {
		if verbose {
			fmt.Fprintf(stderr, format+"\n", a...)
		}
	}
	i18n.SetLanguage(c.lang)

	doc, ok := load(c, stderr, logf)
	if !ok {
		return 1
	}
	opts := strictskema.Options{}
	switch {
	case pinOnly != "":
		want := map[string]bool{}
		for _, n := range splitCSV(pinOnly) {
			want[n] = true
		}
		for _, d := range doc.Definitions {
			if want[d.Name] {
				opts.Definitions = append(opts.Definitions, d)
				delete(want, d.Name)
			}
		}
		for n := range want {
			logf("pin-only: no definition named %q", n)
		}
	case pin:
		opts.Definitions = doc.Definitions
	}
	logf("convert: in=%s definitions=%d pinned=%d", c.in, len(doc.Definitions), len(opts.Definitions))

	s, err := strictskema.Convert(doc.Root, opts)
	if err != nil {
		reportf(stderr, err)
		return 1
	}
	b, err := json.Marshal(s)
	if err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return 1
	}
	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, b, "", "  "); err != nil {
			fmt.Fprintf(stderr, "indent: %v\n", err)
			return 1
		}
		b = buf.Bytes()
	}
	b = append(b, '\n')
	if out == "" {
		_, _ = stdout.Write(b)
		return 0
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		fmt.Fprintf(stderr, "creating output dir: %v\n", err)
		return 1
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		fmt.Fprintf(stderr, "writing output: %v\n", err)
		return 1
	}
	logf("wrote %s (%d bytes)", out, len(b))
	return 0
}

func checkCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if c.in == "" {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(c.lang)
	doc, ok := load(c, stderr, func(format string, a ...any) { fmt.Fprintf(stderr, format+"\n", a...) })
	if !ok {
		return 1
	}
	if _, err := strictskema.Convert(doc.Root, strictskema.Options{Definitions: doc.Definitions}); err != nil {
		reportf(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "ok: %s\n", c.in)
	return 0
}

func load(c common, stderr io.Writer, logf func(string, ...any)) (*schemafile.Document, bool) {
	doc, diag, err := schemafile.LoadFile(c.in, schemafile.Options{Strict: c.strict})
	if diag != nil && diag.HasWarnings() {
		for _, w := range diag.Warnings() {
			logf("warning: %s", w)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "load: %v\n", err)
		return nil, false
	}
	return doc, true
}

// reportf prints each issue on its own line; other errors are printed as is.
func reportf(w io.Writer, err error) {
	iss, ok := strictskema.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "convert: %v\n", err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(w, "%s %s: %s\n", it.Code, it.Path, it.Message)
		if it.Hint != "" {
			fmt.Fprintf(w, "  hint: %s\n", it.Hint)
		}
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
