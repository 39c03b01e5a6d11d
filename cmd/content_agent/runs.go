package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/content-generator/internal/config"
	"github.com/jonathan/content-generator/internal/db"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent generation runs stored in PostgreSQL",
	Long:  "Lists persisted runs, or prints one run and its stored artifact when --id is given. Requires --db-url, CONTENTGEN_DATABASE_URL or DATABASE_URL.",
	RunE:  runRuns,
}

var (
	runsDatabaseURL string
	runsLimit       int
	runsID          string
	runsStep        string
)

func init() {
	runsCmd.Flags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list")
	runsCmd.Flags().StringVar(&runsID, "id", "", "Show a single run")
	runsCmd.Flags().StringVar(&runsStep, "step", db.StepCompanyProfile, "Artifact to print with --id")

	rootCmd.AddCommand(runsCmd)
}

func runsDatabase() string {
	if runsDatabaseURL != "" {
		return runsDatabaseURL
	}
	if url := config.FromEnv().DatabaseURL; url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

func runRuns(_ *cobra.Command, _ []string) error {
	databaseURL := runsDatabase()
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if runsID != "" {
		return showRun(ctx, database, runsID, runsStep)
	}

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	printRuns(os.Stdout, runs)
	return nil
}

func showRun(ctx context.Context, database *db.DB, id, step string) error {
	runID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid run id: %w", err)
	}
	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}
	printRuns(os.Stdout, []db.Run{*run})

	content, err := database.GetArtifact(ctx, runID, step)
	if err != nil {
		return err
	}
	if content == nil {
		text, err := database.GetTextArtifact(ctx, runID, step)
		if err != nil {
			return err
		}
		if text == "" {
			_, _ = fmt.Fprintf(os.Stdout, "\nNo %s artifact stored\n", step)
			return nil
		}
		_, _ = fmt.Fprintf(os.Stdout, "\n%s\n", text)
		return nil
	}

	var pretty json.RawMessage = content
	data, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		data = content
	}
	_, _ = fmt.Fprintf(os.Stdout, "\n%s\n", data)
	return nil
}

func printRuns(w io.Writer, runs []db.Run) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tCOMPANY\tOBJECTIVE\tWEBSITE\tCREATED")
	for _, r := range runs {
		company := r.Company
		if company == "" {
			company = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Status, company, r.LeadObjective, r.WebsiteURL, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}
