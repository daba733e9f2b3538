package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/campaign-reporting/campaign-sheets/campaign"
)

var ExportCmd = Export{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
	},

	file: time.Now().Format("campaigns - 2006-01-02T150405.xlsx"),
}

type Export struct {
	command
	file string
}

func (cmd *Export) Name() string {
	return "export"
}

func (cmd *Export) Description() string {
	return "Exports the campaign records and KPIs to an Excel workbook"
}

func (cmd *Export) Usage() string {
	return "--credentials <file> --url <url> --sheet <sheet> --file <file>"
}

func (cmd *Export) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] export [options] --url <URL> --sheet <sheet> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Writes the campaign worksheet, with CPL, CPA and conversion rate columns, to an XLSX workbook")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    campaign-sheets export --credentials "credentials.json" --file "campaigns.xlsx"`)
	fmt.Println()
}

func (cmd *Export) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("export")

	flagset.StringVar(&cmd.file, "file", cmd.file, "XLSX file name. Defaults to 'campaigns - <yyyy-mm-ddTHHmmss>.xlsx'")

	return flagset
}

func (cmd *Export) Execute(args ...any) error {
	options := args[0].(*Options)
	ctx := context.Background()

	cfg, err := cmd.load(options)
	if err != nil {
		return err
	}

	if cmd.file == "" {
		return fmt.Errorf("--file is a required option")
	}

	g, err := cmd.open(ctx, cfg)
	if err != nil {
		return err
	}

	table, err := g.ReadAll(ctx)
	if err != nil {
		return err
	}

	if err := save(cmd.file, func(w io.Writer) error { return campaign.MakeXLSX(w, table, g.Sheet()) }); err != nil {
		return fmt.Errorf("error creating XLSX file (%w)", err)
	}

	infof("Exported %v campaign records to file %s", len(table.Records), cmd.file)

	return nil
}
