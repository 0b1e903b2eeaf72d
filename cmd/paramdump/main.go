// Command paramdump encodes, decodes and describes resource payloads, and
// records them in a capture store for later inspection.
//
//	paramdump [-config paramdump.toml] <command> [flags]
//
//	types                                  list payload types and ids
//	encode   -type T -value V              print the hex payload of V
//	decode   -type T (-hex H | -in FILE)   validate and describe a payload
//	describe -type T (-hex H | -in FILE)   describe with an explicit -limit
//	capture  -channel C -type T -value V   encode and record; -export FILE writes the channel
//	show     -channel C [-seq N]           print recorded payloads; -import FILE loads an export
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/paramwire"
	asynchook "github.com/unkn0wn-root/paramwire/hooks/async"
	zapadapter "github.com/unkn0wn-root/paramwire/log/zap"
	"github.com/unkn0wn-root/paramwire/sloghooks"
	"github.com/unkn0wn-root/paramwire/traits"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// env is the per-invocation state shared by commands.
type env struct {
	cfg    Config
	zl     *zap.Logger
	logger paramwire.Logger
	hooks  paramwire.Hooks
	reg    *paramwire.Registry
	out    io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("paramdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to a TOML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "paramdump: missing command (types, encode, decode, describe, capture, show)")
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "paramdump: %v\n", err)
		return 1
	}
	zl, err := newZap(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "paramdump: %v\n", err)
		return 1
	}
	defer func() { _ = zl.Sync() }()

	e := &env{
		cfg:    cfg,
		zl:     zl,
		logger: zapadapter.New(zl),
		hooks:  paramwire.NopHooks{},
		reg:    traits.NewRegistry(),
		out:    stdout,
	}
	if cfg.HookEvents {
		sl := stdslog.New(stdslog.NewTextHandler(stderr, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))
		h := asynchook.New(sloghooks.New(sl, sloghooks.Options{LogEncoded: true}), 1, 256)
		defer h.Close()
		e.hooks = h
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	var cmdErr error
	switch cmd {
	case "types":
		cmdErr = e.types()
	case "encode":
		cmdErr = e.encode(rest, stderr)
	case "decode":
		cmdErr = e.decode(rest, stderr, false)
	case "describe":
		cmdErr = e.decode(rest, stderr, true)
	case "capture":
		cmdErr = e.capture(ctx, rest, stderr)
	case "show":
		cmdErr = e.show(ctx, rest, stderr)
	default:
		fmt.Fprintf(stderr, "paramdump: unknown command %q\n", cmd)
		return 2
	}
	switch {
	case cmdErr == nil:
		return 0
	case errors.Is(cmdErr, errUsage), errors.Is(cmdErr, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(stderr, "paramdump %s: %v\n", cmd, cmdErr)
		return 1
	}
}

func newZap(cfg Config, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	var enc zapcore.Encoder
	if cfg.LogFormat == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func (e *env) types() error {
	for _, t := range e.reg.Types() {
		fmt.Fprintf(e.out, "%d\t%s\n", t.ID, t.Name)
	}
	return nil
}

func (e *env) encodeValue(typ, value string) ([]byte, paramwire.TypeID, error) {
	enc, ok := encoders[typ]
	id, known := e.reg.ID(typ)
	if !ok || !known {
		return nil, 0, fmt.Errorf("unknown type %q (expected one of %s)", typ, strings.Join(encoderNames(), ", "))
	}
	b, err := enc(e, value)
	if err != nil {
		return nil, 0, err
	}
	return b, id, nil
}

func (e *env) encode(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	typ := fs.String("type", "", "payload type name")
	value := fs.String("value", "", "value text")
	out := fs.String("out", "", "write raw bytes to this file instead of hex to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *typ == "" {
		fs.Usage()
		return errUsage
	}
	b, _, err := e.encodeValue(*typ, *value)
	if err != nil {
		return err
	}
	if *out != "" {
		return os.WriteFile(*out, b, 0o644)
	}
	fmt.Fprintln(e.out, hex.EncodeToString(b))
	return nil
}

func readPayload(hexIn, file string) ([]byte, error) {
	switch {
	case hexIn != "" && file != "":
		return nil, fmt.Errorf("-hex and -in are mutually exclusive")
	case file != "":
		return os.ReadFile(file)
	case hexIn != "":
		return hex.DecodeString(strings.Join(strings.Fields(hexIn), ""))
	default:
		return nil, errUsage
	}
}

func (e *env) decode(args []string, stderr io.Writer, withLimit bool) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	typ := fs.String("type", "", "payload type name")
	hexIn := fs.String("hex", "", "payload as hex")
	file := fs.String("in", "", "payload file")
	limit := e.cfg.DescribeLimit
	if withLimit {
		fs.IntVar(&limit, "limit", limit, "describe output limit in bytes (0 = default)")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, ok := e.reg.ID(*typ)
	if !ok {
		return fmt.Errorf("unknown type %q", *typ)
	}
	b, err := readPayload(*hexIn, *file)
	if err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		return err
	}
	if e.cfg.MaxMessageSize > 0 && len(b) > e.cfg.MaxMessageSize {
		return fmt.Errorf("%w: %d > %d", paramwire.ErrMessageTooLarge, len(b), e.cfg.MaxMessageSize)
	}
	s, err := e.reg.Describe(id, b, limit)
	if err != nil {
		e.logger.Warn("paramdump: decode failed", paramwire.Fields{"type": *typ, "size": len(b), "err": err})
		return err
	}
	fmt.Fprintln(e.out, s)
	return nil
}
