package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/workboard/internal/board"
	"github.com/calvinalkan/workboard/internal/config"
	"github.com/calvinalkan/workboard/internal/store"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errNoUser         = errors.New("no user configured")
	errInvalidAsOf    = errors.New("invalid --as-of date")
)

// app is the state shared by every command of one invocation.
type app struct {
	cfg  config.Config
	log  *zap.Logger
	in   io.Reader
	home string
	now  func() time.Time
}

func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(a.cfg.DBAbs, store.WithLogger(a.log.Named("store")))
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	return st, nil
}

func (a *app) user() (string, error) {
	if a.cfg.User == "" {
		return "", fmt.Errorf("%w (use --user, WB_USER or \"user\" in %s)", errNoUser, config.FileName)
	}

	return a.cfg.User, nil
}

// asOf returns the --as-of flag value, or the current time when unset.
func (a *app) asOf(fs *flag.FlagSet) (time.Time, error) {
	if !fs.Changed("as-of") {
		return a.now(), nil
	}

	raw, _ := fs.GetString("as-of")

	at, ok := board.ParseDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", errInvalidAsOf, raw)
	}

	return at, nil
}

func addAsOfFlag(fs *flag.FlagSet) {
	fs.String("as-of", "", "Evaluate dates as of `date` (default: now)")
}

// commands returns every command in help order.
func (a *app) commands() []*Command {
	return []*Command{
		ActionsCmd(a),
		SetStatusCmd(a),
		StaleCmd(a),
		ProgressCmd(a),
		StatsCmd(a),
		PrintConfigCmd(&a.cfg),
		ShellCmd(a),
	}
}

func findCommand(cmds []*Command, name string) *Command {
	for _, cmd := range cmds {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

type globalOptions struct {
	flags   *flag.FlagSet
	cwd     *string
	config  *string
	db      *string
	user    *string
	verbose *bool
	help    *bool
}

func newGlobalFlags() globalOptions {
	fs := flag.NewFlagSet("wb", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(&strings.Builder{})

	return globalOptions{
		flags:   fs,
		cwd:     fs.StringP("cwd", "C", "", "Run as if started in `dir`"),
		config:  fs.StringP("config", "c", "", "Use specified config `file`"),
		db:      fs.String("db", "", "Dashboard snapshot `file` (overrides config)"),
		user:    fs.String("user", "", "Act as user `id` (overrides config)"),
		verbose: fs.BoolP("verbose", "v", false, "Log diagnostics to stderr"),
		help:    fs.BoolP("help", "h", false, "Show help"),
	}
}

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globals := newGlobalFlags()

	if len(args) > 0 {
		args = args[1:]
	}

	err := globals.flags.Parse(args)
	if err == nil && globals.flags.Changed("db") && *globals.db == "" {
		err = config.ErrDBPathEmpty
	}

	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globals.flags)

		return 1
	}

	rest := globals.flags.Args()
	if *globals.help || len(rest) == 0 {
		printUsage(out, globals.flags)

		return 0
	}

	a := &app{in: in, home: env["HOME"], now: time.Now, log: zap.NewNop()}

	cmd := findCommand(a.commands(), rest[0])
	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", errUnknownCommand, rest[0]))
		fprintln(errOut)
		printUsage(errOut, globals.flags)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: *globals.cwd,
		ConfigPath:      *globals.config,
		DBOverride:      *globals.db,
		UserOverride:    *globals.user,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	a.cfg = cfg

	log, err := newLogger(errOut, cfg.LogLevel, *globals.verbose)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	defer func() { _ = log.Sync() }()

	a.log = log

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	start := time.Now()
	code := cmd.Run(ctx, NewIO(out, errOut), rest[1:])

	log.Debug("command finished",
		zap.String("command", cmd.Name()),
		zap.Int("exit_code", code),
		zap.Duration("elapsed", time.Since(start)),
	)

	return code
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet) {
	fprintln(w, `wb - personal action items and project health for the management dashboard

Usage: wb [global flags] <command> [flags] [args]

Global flags:`)

	var buf strings.Builder

	globals.SetOutput(&buf)
	globals.PrintDefaults()
	globals.SetOutput(&strings.Builder{})
	_, _ = io.WriteString(w, buf.String())

	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range (&app{}).commands() {
		fprintln(w, cmd.HelpLine())
	}

	fprintln(w)
	fprintln(w, `Run "wb <command> --help" for command flags.`)
}
