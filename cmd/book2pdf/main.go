package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(log.Debugf))

	env := DefaultEnv()
	os.Exit(run(os.Args[1:], env))
}

// run dispatches to the subcommand and returns the process exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "download":
		return runDownloadCmd(rest, env)
	case "merge":
		return runMergeCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "book2pdf %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// configureLogger applies the common verbosity flags to the global logger.
func configureLogger(common commonFlags, env *Environment) {
	log.SetOutput(env.Stderr)
	switch {
	case common.quiet:
		log.SetLevel(log.ErrorLevel)
	case common.verbose:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
