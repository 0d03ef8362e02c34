package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/xdg/appbridge/internal/audit"
	"github.com/xdg/appbridge/internal/bridge"
	"github.com/xdg/appbridge/internal/clog"
	"github.com/xdg/appbridge/internal/config"
	"github.com/xdg/appbridge/internal/hostexec"
	"github.com/xdg/appbridge/internal/metrics"
	"github.com/xdg/appbridge/internal/script"
	"github.com/xdg/appbridge/internal/term"
	"github.com/xdg/appbridge/internal/tempfile"
)

var (
	execTimeout time.Duration
	execTargets []string
	execJSON    bool
	execVars    []string
)

// errNoScript is returned when exec has neither a file argument nor piped input.
var errNoScript = errors.New("no script given; pass a file or pipe one on stdin")

// newInvoker builds the host invoker for a configuration. Tests replace it.
var newInvoker = func(cfg *config.Config) hostexec.Invoker {
	return hostexec.NewRealInvoker(hostexec.OSAScript(cfg.Host.Command, cfg.Host.Language))
}

var execCmd = &cobra.Command{
	Use:   "exec [file]",
	Short: "Execute a script in the target application",
	Long: `Execute an automation script inside the target application.

The script is read from file, or from stdin when file is omitted or "-".
With --var, the script is a Go template: {{ lit .name }} inserts a value as a
quoted string literal and {{ esc .name }} escapes it for use inside one.
Configured targets are tried in order until one answers. The script's result
is printed on stdout.

Exit status is 0 on success, 2 when the script raised an error, and 1 when no
target could run it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().DurationVar(&execTimeout, "timeout", 0, "timeout per target (default from config)")
	execCmd.Flags().StringArrayVar(&execTargets, "target", nil, "target identity to try; repeat to set the order (default from config)")
	execCmd.Flags().StringArrayVar(&execVars, "var", nil, "template variable as NAME=VALUE; repeatable")
	execCmd.Flags().BoolVar(&execJSON, "json", false, "print the full result, including attempts, as JSON")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	if execTimeout < 0 || (execTimeout > 0 && execTimeout < time.Millisecond) {
		return fmt.Errorf("--timeout must be at least 1ms, got %s", execTimeout)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	configureLogging(cfg)

	body, err := readScript(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(execVars) > 0 {
		if body, err = renderScript(args, body, execVars); err != nil {
			return err
		}
	}

	targets := cfg.Targets
	if len(execTargets) > 0 {
		targets = execTargets
	}

	recorder := metrics.NewRecorder()
	observers := bridge.Observers{recorder}
	if auditLog, closeAudit := openAudit(cfg.Audit.File); auditLog != nil {
		defer closeAudit()
		observers = append(observers, auditLog)
	}

	executor := bridge.New(targets, newInvoker(cfg),
		bridge.WithScriptFiles(&tempfile.Manager{
			Dir:    cfg.Scratch.Dir,
			Prefix: cfg.Scratch.Prefix,
			Ext:    cfg.Scratch.Ext,
		}),
		bridge.WithClassifier(bridge.NewClassifier(hostexec.ErrorMarker)),
		bridge.WithDefaultTimeout(cfg.TimeoutDuration()),
		bridge.WithObserver(observers),
	)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := executor.Execute(ctx, bridge.Request{
		Script:        body,
		TimeoutMillis: int(execTimeout.Milliseconds()),
	})

	if cfg.Metrics.Textfile != "" {
		if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			clog.Warn("%v", err)
		}
	}

	return printResult(res)
}

func printResult(res bridge.Result) error {
	if execJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize result: %w", err)
		}
		term.Println(string(data))
	} else if res.Success {
		if res.Result != "" {
			term.Println(res.Result)
		}
	} else {
		term.Error("%s", res.Error)
	}

	if !res.Success {
		return NewExitCodeError(exitCodeFor(res))
	}
	return nil
}

// readScript returns the script named by args, or stdin when no file (or
// "-") is given. An interactive terminal on stdin is rejected rather than
// waiting for input.
func readScript(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read script: %w", err)
		}
		return string(data), nil
	}

	if f, ok := stdin.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		return "", errNoScript
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read script from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", errNoScript
	}
	return string(data), nil
}

// renderScript expands body as a script template with vars (NAME=VALUE).
func renderScript(args []string, body string, vars []string) (string, error) {
	data := make(map[string]string, len(vars))
	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return "", fmt.Errorf("invalid --var %q, want NAME=VALUE", v)
		}
		data[name] = value
	}

	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		name = filepath.Base(args[0])
	}
	return script.Render(name, body, data)
}

// configureLogging points the operational log at the configured file. A
// file that cannot be opened is reported and logging continues on stderr.
func configureLogging(cfg *config.Config) {
	level := clog.ParseLevel(cfg.Log.Level)
	if debugFlag {
		level = clog.LevelDebug
	}
	if err := clog.Configure(cfg.Log.File, level, cfg.Log.Quiet); err != nil {
		term.Warn("file logging disabled: %v", err)
	}
}

// openAudit opens the audit trail for appending. It returns a nil Logger
// when path is empty or the file cannot be opened.
func openAudit(path string) (*audit.Logger, func()) {
	if path == "" {
		return nil, nil
	}
	f, err := clog.OpenLogFile(path)
	if err != nil {
		clog.Warn("audit log disabled: %v", err)
		return nil, nil
	}
	return audit.NewLogger(f), func() { _ = f.Close() }
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
