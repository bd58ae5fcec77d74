package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	j "github.com/goccy/go-json"

	"github.com/reoring/aclmsg"
	"github.com/reoring/aclmsg/codec"
	"github.com/reoring/aclmsg/i18n"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	sub, args := os.Args[1], os.Args[2:]
	switch sub {
	case "validate":
		err = validateCmd(args, os.Stdin, os.Stdout, os.Stderr)
	case "fmt":
		err = fmtCmd(args, os.Stdin, os.Stdout, os.Stderr)
	case "convert":
		err = convertCmd(args, os.Stdin, os.Stdout, os.Stderr)
	case "schema":
		err = schemaCmd(args, os.Stdout)
	case "inspect":
		err = inspectCmd(args, os.Stdin, os.Stdout, os.Stderr)
	default:
		usage()
		os.Exit(2)
	}
	if errors.Is(err, errInvalid) {
		os.Exit(1)
	}
	if err != nil {
		fatalf("%s: %v", sub, err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "aclmsg CLI\n\nUsage:\n  aclmsg validate [-format F] [-dup ignore|warn|error] [-strict] [-fail-fast] [file...]\n  aclmsg fmt [-format F] [-indent S] [file]\n  aclmsg convert -to F [-format F] [file]\n  aclmsg schema [-indent S]\n  aclmsg inspect [-format F] [file]\n\nFormats: json, yaml, msgpack. Without a file, input is read from stdin;\nwithout -format, the file extension decides (json by default).")
}

// errInvalid signals that validation reported issues which were already
// printed.
var errInvalid = errors.New("invalid input")

// parseFlags holds the decoding flags shared by the subcommands.
type parseFlags struct {
	format   string
	dup      string
	strict   bool
	failFast bool
	maxDepth int
	maxBytes int64
	lang     string
	verbose  bool
}

func (p *parseFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.format, "format", "", "input format: json, yaml or msgpack")
	fs.StringVar(&p.dup, "dup", "error", "duplicate key policy: ignore, warn or error")
	fs.BoolVar(&p.strict, "strict", false, "reject unknown top-level keys")
	fs.BoolVar(&p.failFast, "fail-fast", false, "stop at the first issue")
	fs.IntVar(&p.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&p.maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	fs.StringVar(&p.lang, "lang", "en", "issue message language: en or ja")
	fs.BoolVar(&p.verbose, "v", false, "enable verbose logs")
}

func (p *parseFlags) opt(warn io.Writer) (aclmsg.ParseOpt, error) {
	var sev aclmsg.Severity
	switch p.dup {
	case "ignore":
		sev = aclmsg.Ignore
	case "warn":
		sev = aclmsg.Warn
	case "error":
		sev = aclmsg.Error
	default:
		return aclmsg.ParseOpt{}, fmt.Errorf("unknown -dup policy %q", p.dup)
	}
	opt := aclmsg.ParseOpt{
		Strictness: aclmsg.Strictness{OnDuplicateKey: sev},
		MaxDepth:   p.maxDepth,
		MaxBytes:   p.maxBytes,
		FailFast:   p.failFast,
		OnWarning: func(it aclmsg.Issue) {
			fmt.Fprintf(warn, "warning: %s at %s: %s\n", it.Code, it.Path, it.Message)
		},
	}
	if p.strict {
		opt.Unknown = aclmsg.UnknownStrict
	}
	return opt, nil
}

func (p *parseFlags) logf(w io.Writer) func(string, ...any) {
	return func(format string, a ...any) {
		if p.verbose {
			fmt.Fprintf(w, format+"\n", a...)
		}
	}
}

// input is one named document to decode.
type input struct {
	name string
	data []byte
}

func readInputs(files []string, stdin io.Reader) ([]input, error) {
	if len(files) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{name: "-", data: b}}, nil
	}
	out := make([]input, 0, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, input{name: f, data: b})
	}
	return out, nil
}

// codecFor resolves the codec from an explicit format name or, failing
// that, from the file extension.
func codecFor(format, name string) (aclmsg.Codec, error) {
	if format != "" {
		return codec.Lookup(format)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return codec.YAML{}, nil
	case ".msgpack", ".mp":
		return codec.MsgPack{}, nil
	default:
		return codec.JSON{}, nil
	}
}

func validateCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var pf parseFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	i18n.SetLanguage(pf.lang)
	opt, err := pf.opt(stderr)
	if err != nil {
		return err
	}
	logf := pf.logf(stderr)
	inputs, err := readInputs(fs.Args(), stdin)
	if err != nil {
		return err
	}
	ctx := context.Background()
	failed := false
	for _, in := range inputs {
		c, err := codecFor(pf.format, in.name)
		if err != nil {
			return err
		}
		logf("validate: %s (%s, %d bytes)", in.name, c.Name(), len(in.data))
		if _, err := c.Decode(ctx, in.data, opt); err != nil {
			failed = true
			printIssues(stdout, in.name, err)
			continue
		}
		fmt.Fprintf(stdout, "%s: ok\n", in.name)
	}
	if failed {
		return errInvalid
	}
	return nil
}

func printIssues(w io.Writer, name string, err error) {
	iss, ok := aclmsg.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", name, err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(w, "%s: %s at %s: %s\n", name, it.Code, it.Path, it.Message)
		if it.Hint != "" {
			fmt.Fprintf(w, "    hint: %s\n", it.Hint)
		}
	}
}

func fmtCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var pf parseFlags
	var indent string
	pf.register(fs)
	fs.StringVar(&indent, "indent", "  ", "JSON indentation (empty for compact output)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	i18n.SetLanguage(pf.lang)
	in, from, m, err := decodeOne(fs, &pf, stdin, stderr)
	if err != nil {
		return err
	}
	to := from
	if _, ok := from.(codec.JSON); ok {
		to = codec.JSON{Indent: indent}
	}
	pf.logf(stderr)("fmt: %s (%s)", in.name, to.Name())
	return encodeTo(stdout, to, m)
}

func convertCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var pf parseFlags
	var toName, indent string
	pf.register(fs)
	fs.StringVar(&toName, "to", "", "output format: json, yaml or msgpack")
	fs.StringVar(&indent, "indent", "", "JSON indentation for -to json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	i18n.SetLanguage(pf.lang)
	if toName == "" {
		fs.Usage()
		return fmt.Errorf("-to is required")
	}
	to, err := codec.Lookup(toName)
	if err != nil {
		return err
	}
	if _, ok := to.(codec.JSON); ok {
		to = codec.JSON{Indent: indent}
	}
	in, from, m, err := decodeOne(fs, &pf, stdin, stderr)
	if err != nil {
		return err
	}
	pf.logf(stderr)("convert: %s %s -> %s", in.name, from.Name(), to.Name())
	return encodeTo(stdout, to, m)
}

func decodeOne(fs *flag.FlagSet, pf *parseFlags, stdin io.Reader, stderr io.Writer) (input, aclmsg.Codec, aclmsg.ACLAccountsMessage, error) {
	var zero aclmsg.ACLAccountsMessage
	if fs.NArg() > 1 {
		return input{}, nil, zero, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}
	opt, err := pf.opt(stderr)
	if err != nil {
		return input{}, nil, zero, err
	}
	inputs, err := readInputs(fs.Args(), stdin)
	if err != nil {
		return input{}, nil, zero, err
	}
	in := inputs[0]
	c, err := codecFor(pf.format, in.name)
	if err != nil {
		return input{}, nil, zero, err
	}
	m, err := c.Decode(context.Background(), in.data, opt)
	if err != nil {
		printIssues(stderr, in.name, err)
		return input{}, nil, zero, errInvalid
	}
	return in, c, m, nil
}

func encodeTo(w io.Writer, c aclmsg.Codec, m aclmsg.ACLAccountsMessage) error {
	b, err := c.Encode(context.Background(), m)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func schemaCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	var indent string
	fs.StringVar(&indent, "indent", "  ", "indentation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	b, err := j.MarshalIndent(aclmsg.JSONSchema(), "", indent)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", b)
	return err
}

func inspectCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var pf parseFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	i18n.SetLanguage(pf.lang)
	_, _, m, err := decodeOne(fs, &pf, stdin, stderr)
	if err != nil {
		return err
	}
	cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Fdump(stdout, m)
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
