package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"github.com/tommyzliu/tilewm/internal/logging"
)

// ErrNoCommand is returned for a blank command line.
var ErrNoCommand = errors.New("no command configured")

// Launcher starts applications as independent processes.
type Launcher struct {
	log      *logging.Logger
	lookPath func(string) (string, error)
	start    func(cmd *exec.Cmd) error
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithLookPath replaces the PATH search, e.g. in tests.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(l *Launcher) {
		l.lookPath = fn
	}
}

// NewLauncher creates a launcher that reports failures to log.
func NewLauncher(log *logging.Logger, opts ...Option) *Launcher {
	if log == nil {
		log = logging.Discard()
	}
	l := &Launcher{
		log:      log,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts app and returns immediately. The process is not waited on
// and errors are only logged.
func (l *Launcher) Launch(app string) {
	if err := l.Start(app); err != nil {
		l.log.Warnf("%v", err)
		return
	}
	l.log.Verbosef("launched %s", app)
}

// Start builds and starts the command for app.
func (l *Launcher) Start(app string) error {
	path, args, err := l.Resolve(app)
	if errors.Is(err, ErrNoCommand) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to launch %q: %w", args[0], err)
	}

	cmd := exec.Command(path, args[1:]...)
	// Detach from current process
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to launch %q: %w", args[0], err)
	}
	return nil
}

// Resolve splits app and finds its program on PATH. args is the split
// command line, program name first; it is returned even when the lookup fails.
func (l *Launcher) Resolve(app string) (path string, args []string, err error) {
	args = SplitCommand(app)
	if len(args) == 0 {
		return "", nil, ErrNoCommand
	}

	path, err = l.lookPath(args[0])
	if err != nil {
		return "", args, fmt.Errorf("%s not found in PATH: %w", args[0], err)
	}
	return path, args, nil
}

// startDetached runs cmd in its own session so it outlives the window
// manager, then drops the process handle without waiting.
func startDetached(cmd *exec.Cmd) error {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// SplitCommand splits a command line on whitespace, honouring single and
// double quotes. Backslash escapes the next character outside single quotes.
func SplitCommand(s string) []string {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == ' ' || r == '\t' || r == '\n':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}

	if inArg {
		args = append(args, cur.String())
	}
	return args
}
