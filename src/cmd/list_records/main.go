package main

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/value-logger/src/models"
	"github.com/jiaming2012/value-logger/src/sheets"
	"github.com/jiaming2012/value-logger/src/utils"
)

type RunArgs struct {
	SortKey   string
	Ascending bool
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/list_records/main.go --sort timestamp",
	Short: "Fetch all records from the remote sheet and print them as a table",
	Run: func(cmd *cobra.Command, args []string) {
		sortKey, err := cmd.Flags().GetString("sort")
		if err != nil {
			log.Fatalf("error getting sort: %v", err)
		}

		ascending, err := cmd.Flags().GetBool("asc")
		if err != nil {
			log.Fatalf("error getting asc: %v", err)
		}

		if err := Run(RunArgs{SortKey: sortKey, Ascending: ascending}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) error {
	ctx := context.Background()

	if err := utils.InitEnvironmentVariables(); err != nil {
		return fmt.Errorf("error loading environment variables: %v", err)
	}

	config, err := utils.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("error loading config: %v", err)
	}

	srv, err := sheets.NewClientFromEnv(ctx)
	if err != nil {
		return fmt.Errorf("error creating sheets client: %v", err)
	}

	store := sheets.NewRecordStore(srv, config.SpreadsheetID, config.SheetName)
	rows, err := store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("error reading records: %v", err)
	}

	schema := models.DefaultSchema()
	table := models.NewWorkingTableFromRows(schema, rows)

	spec := models.ClearedSortSpec()
	if args.SortKey != "" {
		spec = models.SortSpec{PrimaryKey: args.SortKey, PrimaryAscending: args.Ascending, SecondaryAscending: true, PersistDisplayOrderOnSave: true}
	}

	display := models.SortRecords(schema, table.Rows, spec)

	writer := tablewriter.NewWriter(os.Stdout)
	writer.SetHeader(schema)
	for _, row := range display {
		writer.Append(row.Cells)
	}
	writer.Render()

	return nil
}

func main() {
	runCmd.Flags().String("sort", "", "Column to sort by")
	runCmd.Flags().Bool("asc", true, "Sort ascending")

	runCmd.Execute()
}
