package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/funkybooboo/library/internal/catalog"
	"github.com/funkybooboo/library/internal/progress"
	"github.com/funkybooboo/library/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Track reading progress for catalog papers",
	Long: `Status manages a SQLite reading tracker seeded from the catalog. Every
paper and related paper gets a numeric id; statuses are 'not started' (ns),
'in progress' (ip), and 'read' (d).`,
}

var statusInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the progress database from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		papersFile, _ := cmd.Flags().GetString("papers-file")
		records, err := catalog.Load(papersFile)
		if err != nil {
			return err
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Init(records)
		if err != nil {
			return err
		}
		fmt.Printf("Initialized progress for %d papers (including related papers).\n", n)
		return nil
	},
}

var statusResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset progress on all papers to 'not started'",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Println("Reset progress for all papers.")
		return nil
	},
}

var statusSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the status for a paper by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetInt("id")
		statusArg, _ := cmd.Flags().GetString("status")
		startDate, _ := cmd.Flags().GetString("start-date")
		finishedDate, _ := cmd.Flags().GetString("finished-date")

		status, err := progress.ParseStatus(statusArg)
		if err != nil {
			return err
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Set(id, status, startDate, finishedDate); err != nil {
			return err
		}
		fmt.Printf("Updated status for paper id %d.\n", id)
		return nil
	},
}

var statusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers by reading status",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter progress.Status
		if filterArg, _ := cmd.Flags().GetString("status"); filterArg != "" {
			var err error
			filter, err = progress.ParseStatus(filterArg)
			if err != nil {
				return err
			}
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(filter)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No papers found with the specified filter.")
			return nil
		}
		printEntries(entries)
		return nil
	},
}

func openStore(cmd *cobra.Command) (*progress.Store, error) {
	dir, _ := cmd.Flags().GetString("progress-dir")
	return progress.Open(types.ProgressConfig{ProgressDir: dir})
}

func printEntries(entries []progress.Entry) {
	for _, e := range entries {
		fmt.Printf("id: %d\n", e.ID)
		fmt.Printf("title: %s\n", e.Title)
		if e.ParentTitle != "" {
			fmt.Printf("  (related to: %s)\n", e.ParentTitle)
		}
		fmt.Printf("  status: %s\n", e.Status)
		fmt.Printf("  start date: %s\n", orNone(e.StartDate))
		fmt.Printf("  finished date: %s\n", orNone(e.FinishedDate))
		fmt.Println(strings.Repeat("-", 60))
	}
	fmt.Fprintf(os.Stdout, "%d papers\n", len(entries))
}

func orNone(date string) string {
	if date == "" {
		return "none"
	}
	return date
}

func init() {
	statusCmd.PersistentFlags().String("progress-dir", ".", "directory holding progress.db")

	statusInitCmd.Flags().String("papers-file", "papers.yml", "catalog file")

	statusSetCmd.Flags().Int("id", 0, "id of the paper to update")
	statusSetCmd.Flags().String("status", "", "status to set (not started/ns, in progress/ip, read/d)")
	statusSetCmd.Flags().String("start-date", "", "optional start date (YYYY-MM-DD)")
	statusSetCmd.Flags().String("finished-date", "", "optional finished date (YYYY-MM-DD)")
	statusSetCmd.MarkFlagRequired("id")
	statusSetCmd.MarkFlagRequired("status")

	statusListCmd.Flags().String("status", "", "filter by status (not started/ns, in progress/ip, read/d)")

	statusCmd.AddCommand(statusInitCmd, statusResetCmd, statusSetCmd, statusListCmd)
	rootCmd.AddCommand(statusCmd)
}
