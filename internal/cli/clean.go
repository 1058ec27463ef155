package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/qawash/internal/batch"
	"github.com/mrlokans/qawash/internal/config"
	"github.com/mrlokans/qawash/internal/logger"
)

// CleanCommand removes generated files from a directory.
type CleanCommand struct {
	Dir      string
	LogLevel string
}

func NewCleanCommand() *CleanCommand {
	return &CleanCommand{}
}

func (cmd *CleanCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)

	fs.StringVar(&cmd.Dir, "dir", ".", "Directory to clean")
	fs.StringVar(&cmd.LogLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s clean [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Remove every generated file (names containing [gen]).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *CleanCommand) Run() error {
	logger.Setup(cmd.LogLevel, os.Stdout, os.Stderr)

	removed, err := batch.Clean(cmd.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d generated file(s)\n", len(removed))
	return nil
}
