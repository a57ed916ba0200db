package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

var errUnterminatedQuote = errors.New("unterminated quote")

const historyFileName = ".wb_history"

// ShellCmd returns the shell command.
func ShellCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Run commands interactively",
		Long: `Start an interactive prompt that runs wb commands with the current
global flags. Every command re-reads the snapshot. Quote arguments that
contain spaces. Type "help" for commands and "exit" to leave.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			p, closeFn := newPrompter(a)
			defer closeFn()

			return (&shell{app: a, prompter: p, out: o.out, errOut: o.errOut}).run(ctx)
		},
	}
}

// prompter reads one line of input per call. *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// newPrompter returns a line-editing prompter for the process stdin and a
// plain line reader for anything else.
func newPrompter(a *app) (prompter, func()) {
	if f, ok := a.in.(*os.File); !ok || f != os.Stdin {
		return &scanPrompter{scanner: bufio.NewScanner(orEmpty(a.in))}, func() {}
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(func(line string) []string {
		var out []string

		for _, name := range shellCommandNames(a) {
			if strings.HasPrefix(name, line) {
				out = append(out, name)
			}
		}

		return out
	})

	history := historyPath(a.home)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}

	return state, func() {
		if history != "" {
			if f, err := os.Create(history); err == nil {
				_, _ = state.WriteHistory(f)
				_ = f.Close()
			}
		}

		_ = state.Close()
	}
}

func historyPath(home string) string {
	if home == "" {
		return ""
	}

	return filepath.Join(home, historyFileName)
}

func orEmpty(r io.Reader) io.Reader {
	if r == nil {
		return strings.NewReader("")
	}

	return r
}

type scanPrompter struct {
	scanner *bufio.Scanner
}

func (p *scanPrompter) Prompt(string) (string, error) {
	if !p.scanner.Scan() {
		err := p.scanner.Err()
		if err == nil {
			err = io.EOF
		}

		return "", err
	}

	return p.scanner.Text(), nil
}

func (p *scanPrompter) AppendHistory(string) {}

type shell struct {
	app      *app
	prompter prompter
	out      io.Writer
	errOut   io.Writer
}

func (s *shell) run(ctx context.Context) error {
	for ctx.Err() == nil {
		line, err := s.prompter.Prompt("wb> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.prompter.AppendHistory(line)

		if !s.exec(ctx, line) {
			return nil
		}
	}

	return nil
}

// exec runs one input line. It returns false when the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	args, err := splitLine(line)
	if err != nil {
		fprintln(s.errOut, "error:", err)

		return true
	}

	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "exit", "quit", "q":
		return false
	case "help", "?":
		for _, cmd := range s.app.commands() {
			if cmd.Name() != "shell" {
				fprintln(s.out, cmd.HelpLine())
			}
		}

		fprintln(s.out, "  exit                                 Leave the shell")

		return true
	case "shell":
		fprintln(s.errOut, "error: already in a shell")

		return true
	}

	cmd := findCommand(s.app.commands(), args[0])
	if cmd == nil {
		fprintln(s.errOut, "error:", fmt.Errorf("%w: %s (type 'help' for commands)", errUnknownCommand, args[0]))

		return true
	}

	code := cmd.Run(ctx, NewIO(s.out, s.errOut), args[1:])

	s.app.log.Debug("shell command", zap.String("command", cmd.Name()), zap.Int("exit_code", code))

	return true
}

func shellCommandNames(a *app) []string {
	names := []string{"exit", "help"}

	for _, cmd := range a.commands() {
		if cmd.Name() != "shell" {
			names = append(names, cmd.Name())
		}
	}

	return names
}

// splitLine splits a line into words. Single or double quotes group words
// containing spaces.
func splitLine(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		quote   rune
		inWord  bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, current.String())
				current.Reset()

				inWord = false
			}
		default:
			current.WriteRune(r)

			inWord = true
		}
	}

	if quote != 0 {
		return nil, errUnterminatedQuote
	}

	if inWord {
		words = append(words, current.String())
	}

	return words, nil
}
