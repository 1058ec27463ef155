package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/qawash/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	name := "wash"
	args := os.Args[1:]
	// Without a subcommand, arguments belong to wash
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") && isCommand(args[0]) {
		name, args = args[0], args[1:]
	}

	var cmd command
	switch name {
	case "wash":
		cmd = cli.NewWashCommand()
	case "clean":
		cmd = cli.NewCleanCommand()
	case "watch":
		cmd = cli.NewWatchCommand()
	case "history":
		cmd = cli.NewHistoryCommand()
	case "version":
		fmt.Printf("qawash %s (%s)\n", Version, Commit)
		return
	case "help":
		printUsage()
		return
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isCommand(name string) bool {
	switch name {
	case "wash", "clean", "watch", "history", "version", "help":
		return true
	}
	return false
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [command] [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  wash      Wash survey exports in a directory (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  clean     Remove all generated files\n")
	fmt.Fprintf(os.Stderr, "  watch     Wash again on a cron schedule\n")
	fmt.Fprintf(os.Stderr, "  history   Show recorded wash runs\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
