package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/qawash/internal/batch"
)

// WashCommand washes every source file in a directory, or a single named one.
type WashCommand struct {
	washFlags
	File  string
	Clean bool
}

func NewWashCommand() *WashCommand {
	return &WashCommand{}
}

func (cmd *WashCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("wash", flag.ExitOnError)

	cmd.register(fs)
	fs.BoolVar(&cmd.Clean, "c", false, "Remove all generated files instead of washing")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s wash [options] [file]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Wash every source file in the directory, or only the named file.\n")
		fmt.Fprintf(os.Stderr, "The file name may be given without its extension.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Wash all spreadsheets in the current directory to csv:\n")
		fmt.Fprintf(os.Stderr, "  %s wash\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Only final files as xlsx, plus one combined file:\n")
		fmt.Fprintf(os.Stderr, "  %s wash -o xlsx -f\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Wash a single file:\n")
		fmt.Fprintf(os.Stderr, "  %s wash asthma\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.remember(fs)

	switch fs.NArg() {
	case 0:
	case 1:
		cmd.File = fs.Arg(0)
	default:
		return fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}
	return nil
}

func (cmd *WashCommand) Run() error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}

	if cmd.Clean {
		_, err := batch.Clean(cfg.Input.Dir)
		return err
	}

	runner, cleanup, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := runner.Run(context.Background(), cfg.Input.Dir, cmd.File)
	if err != nil {
		return err
	}

	for _, f := range summary.Files {
		fmt.Printf("%s: %d rows read, %d excluded, %d rows in final file\n",
			f.Path, f.Result.RowsRead, f.Result.Report.Total(), f.Result.Final.Len())
	}
	if summary.Aggregate != "" {
		fmt.Printf("Combined file: %s\n", summary.Aggregate)
	}
	return nil
}
