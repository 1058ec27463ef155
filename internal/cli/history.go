package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/qawash/internal/config"
	"github.com/mrlokans/qawash/internal/database"
	"github.com/mrlokans/qawash/internal/database/runs"
	"github.com/mrlokans/qawash/internal/entities"
)

// HistoryCommand lists recorded wash runs.
type HistoryCommand struct {
	ConfigFile string
	HistoryDB  string
	Category   string
	Limit      int
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)

	fs.StringVar(&cmd.ConfigFile, "config", "", "Path to a YAML config file")
	fs.StringVar(&cmd.HistoryDB, "history-db", "", "Run history database (default from config)")
	fs.StringVar(&cmd.Category, "category", "", "Only show runs of this category")
	fs.IntVar(&cmd.Limit, "limit", 20, "Maximum number of runs to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s history [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show recorded wash runs, most recent first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *HistoryCommand) Run() error {
	path := cmd.HistoryDB
	if path == "" {
		cfg, err := config.Load(cmd.ConfigFile)
		if err != nil {
			return err
		}
		path = cfg.HistoryPath
	}
	if path == "" {
		return fmt.Errorf("no run history configured: set -history-db or history_db")
	}

	db, err := database.NewDatabase(path)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := runs.NewRepository(db.DB)
	var list []entities.WashRun
	if cmd.Category != "" {
		list, err = repo.GetRunsByCategory(cmd.Category)
		if len(list) > cmd.Limit && cmd.Limit > 0 {
			list = list[:cmd.Limit]
		}
	} else {
		list, err = repo.GetRecentRuns(cmd.Limit)
	}
	if err != nil {
		return fmt.Errorf("failed to load run history: %w", err)
	}

	printRuns(os.Stdout, list)
	return nil
}

func printRuns(out io.Writer, list []entities.WashRun) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tFILE\tCATEGORY\tSTATUS\tREAD\tKEYWORD\tEMPTY\tFINAL\tAUDIT")
	for _, r := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.File, r.Category, r.Status,
			r.RowsRead, r.ExcludedKeyword, r.ExcludedEmpty, r.RowsFinal, r.AuditFile)
		if r.ErrorMsg != "" {
			fmt.Fprintf(w, "\t  error: %s\t\t\t\t\t\t\t\n", r.ErrorMsg)
		}
	}
	w.Flush()
}
