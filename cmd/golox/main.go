// golox runs Lox scripts or starts an interactive prompt.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	lox "github.com/xirelogy/go-lox"
	"github.com/xirelogy/go-lox/config"
)

// Exit codes follow sysexits.h.
const (
	exitOK           = 0
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOError      = 74
)

var log = commonlog.GetLogger("lox.cmd")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("golox", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to a golox.toml (default: search upwards from the working directory)")
	trace := flags.Bool("trace", false, "Print the stack and each instruction as it executes")
	printCode := flags.Bool("print-code", false, "Disassemble each chunk before running it")
	stackLimit := flags.Int("stack-limit", 0, "Maximum value stack depth (0 keeps the configured value)")
	instLimit := flags.Int("instruction-limit", 0, "Maximum instructions per script (0 keeps the configured value)")
	verbosity := flags.Int("v", 0, "Log verbosity (1 info, 2 debug)")
	logFile := flags.String("log", "", "Write logs to this file instead of stderr")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: golox [options] [script]\n\n")
		fmt.Fprintf(stderr, "Runs script, or starts a prompt when no script is given.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	// Explicit flags win over the file.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			cfg.Debug.Trace = *trace
		case "print-code":
			cfg.Debug.PrintCode = *printCode
		case "stack-limit":
			cfg.VM.StackLimit = *stackLimit
		case "instruction-limit":
			cfg.VM.InstructionLimit = *instLimit
		case "v":
			cfg.Log.Verbosity = *verbosity
		case "log":
			cfg.Log.File = *logFile
		}
	})
	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())
	if cfg.Path != "" {
		log.Infof("using configuration %s", cfg.Path)
	}

	machine := lox.NewVM()
	machine.SetOutput(stdout)
	machine.SetErrorOutput(stderr)
	if err := machine.Configure(cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if flags.NArg() == 1 {
		return runFile(machine, flags.Arg(0), stderr)
	}
	runPrompt(machine, stdin, stdout)
	return exitOK
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		return *cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.Find(wd)
	if err != nil {
		return config.Config{}, err
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return *cfg, nil
}

func runFile(machine *lox.VM, path string, stderr io.Writer) int {
	res, err := machine.InterpretFile(path)
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		fmt.Fprintf(stderr, "Could not open file \"%s\".\n", path)
		log.Infof("%s", err)
		return exitIOError
	}

	switch res {
	case lox.InterpretCompileError:
		return exitCompileError
	case lox.InterpretRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

// runPrompt reads and interprets one line at a time until end of input.
// Errors are reported by the VM and never end the session.
func runPrompt(machine *lox.VM, stdin io.Reader, stdout io.Writer) {
	interactive := isTerminal(stdin)
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 1024), 1<<20)

	for {
		if interactive {
			fmt.Fprint(stdout, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if res, err := machine.Interpret(scanner.Text()); err != nil {
			log.Debugf("prompt line failed: %s", res)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Errorf("reading input: %s", err)
	}

	if interactive {
		fmt.Fprintln(stdout)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
