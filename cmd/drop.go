package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-playoff-odds/internal/storage"
)

var (
	dropForce bool
	dropRun   string
)

// dropCmd deletes one stored run, or the whole runs database.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete a stored run or the whole runs database",
	Long: `Delete stored runs.

With --run, only the run whose id starts with the given prefix is removed,
along with its matrix cells and season records. Without it the SQLite runs
database and its WAL files are deleted; run 'playoffodds run' to rebuild.
Heat map images already written are left in place.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropRun, "run", "", "delete only the run with this id prefix")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropRun != "" {
		return dropOneRun(dropRun)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete every stored run in: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm, or use --run <prefix> to drop one run.\n")
		return nil
	}
	existed, err := storage.Remove(dbPath)
	if err != nil {
		return fmt.Errorf("remove database: %w", err)
	}
	if !existed {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	cOK.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropOneRun(prefix string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	run, err := db.GetRunByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query run: %w", err)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "No run found with id prefix %q\n", prefix)
		return nil
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete run %s (seasons %d-%d, created %s).\n",
			shortID(run.ID), run.FirstSeason, run.LastSeason, run.CreatedAt)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if _, err := db.DeleteRun(run.ID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	cOK.Fprintf(os.Stdout, "Deleted run %s\n", shortID(run.ID))
	return nil
}
