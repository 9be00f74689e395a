package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/value-logger/src/export"
	"github.com/jiaming2012/value-logger/src/models"
	"github.com/jiaming2012/value-logger/src/sheets"
	"github.com/jiaming2012/value-logger/src/utils"
)

type RunArgs struct {
	OutFile string
	Format  string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/export_records/main.go --out value_log.xlsx",
	Short: "Fetch all records from the remote sheet and write them to a spreadsheet file",
	Run: func(cmd *cobra.Command, args []string) {
		outFile, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}

		format, err := cmd.Flags().GetString("format")
		if err != nil {
			log.Fatalf("error getting format: %v", err)
		}

		if err := Run(RunArgs{OutFile: outFile, Format: format}); err != nil {
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

	var data []byte
	switch strings.ToLower(args.Format) {
	case "xlsx":
		data, err = export.ToExcel(schema, table.Rows)
	case "csv":
		data, err = export.ToCSV(schema, table.Rows)
	default:
		return fmt.Errorf("unknown format %q, expected xlsx or csv", args.Format)
	}

	if err != nil {
		return fmt.Errorf("error encoding records: %v", err)
	}

	if err := os.WriteFile(args.OutFile, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %v", args.OutFile, err)
	}

	log.Infof("exported %d records to %s", table.Len(), args.OutFile)
	return nil
}

func main() {
	runCmd.Flags().String("out", export.ExcelFilename, "Output file path")
	runCmd.Flags().String("format", "xlsx", "Output format: xlsx or csv")

	runCmd.Execute()
}
