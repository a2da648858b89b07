package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	apppkg "github.com/kk-code-lab/trans/internal/app"
	"github.com/kk-code-lab/trans/internal/config"
	"github.com/kk-code-lab/trans/internal/shellsetup"
	statepkg "github.com/kk-code-lab/trans/internal/state"
	"github.com/kk-code-lab/trans/internal/terminal"
	"github.com/spf13/cobra"
)

var version = "dev"

// setupAuto is the --setup value when the flag is given without a shell.
const setupAuto = "auto"

type options struct {
	output     string
	configPath string
	theme      string
	logFile    string
	setup      string
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "trans: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "trans [START_DIR]",
		Short: "Browse directories and hand the chosen path back to the shell",
		Long: `trans lists a directory with a preview of the entry under the cursor.
Use "trans --setup" to print the ts shell function that changes into the
directory trans exits with.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "write the chosen path to `FILE` instead of stderr")
	flags.StringVarP(&opts.configPath, "config", "c", "", "read configuration from `FILE`")
	flags.StringVarP(&opts.theme, "theme", "t", "", "colour theme (trans, dark)")
	flags.StringVar(&opts.logFile, "log-file", "", "append diagnostics to `FILE`")
	flags.StringVarP(&opts.setup, "setup", "s", "", "print shell integration for SHELL and exit")
	flags.Lookup("setup").NoOptDefVal = setupAuto

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	closeLog, err := setupLogging(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if opts.setup != "" {
		shell := opts.setup
		if shell == setupAuto {
			shell = ""
			if len(args) > 0 {
				shell = args[0]
			}
		}
		return shellsetup.PrintSetup(cmd.OutOrStdout(), shell, shellsetup.Config{})
	}

	start := "."
	if len(args) > 0 {
		start = args[0]
	}
	startPath, err := statepkg.CanonicalPath(start)
	if err != nil {
		return fmt.Errorf("cannot resolve start directory: %w", err)
	}

	cfg := config.Load(opts.configPath)
	log.Printf("config from %q", cfg.Source)
	theme, err := cfg.ResolveTheme(opts.theme)
	if err != nil {
		log.Printf("config: %v", err)
	}

	term, err := terminal.Open()
	if err != nil {
		return fmt.Errorf("cannot open terminal: %w", err)
	}
	defer func() {
		_ = term.Close()
	}()

	app, err := apppkg.NewApplication(term, apppkg.Options{
		StartPath: startPath,
		Theme:     theme,
		Editor:    cfg.EditorCommand(os.Getenv),
		Opener:    cfg.OpenerCommand(runtime.GOOS),
	})
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return err
	}
	if err := term.Close(); err != nil {
		log.Printf("terminal close: %v", err)
	}

	return WriteResult(app.ResultPath(), opts.output, cmd.ErrOrStderr())
}

// WriteResult emits path, newline-terminated, to the file dest, creating or
// truncating it. With no dest the path goes to fallback.
func WriteResult(path, dest string, fallback io.Writer) error {
	line := path + "\n"
	if dest == "" {
		if _, err := io.WriteString(fallback, line); err != nil {
			return fmt.Errorf("cannot write result: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(dest, []byte(line), 0o600); err != nil {
		return fmt.Errorf("cannot write result to %s: %w", dest, err)
	}
	log.Printf("wrote %s to %s", path, dest)
	return nil
}

// setupLogging discards log output unless a log file is given; the screen
// belongs to the UI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}
