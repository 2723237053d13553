package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uhppoted/pathfinder-sheets/character"
)

var ExportCmd = Export{
	command: command{},
	file:    time.Now().Format("2006-01-02T150405.tsv"),
}

type Export struct {
	command
	file string
}

func (cmd *Export) Name() string {
	return "export"
}

func (cmd *Export) Description() string {
	return "Retrieves the character sheet and stores it to a local TSV file"
}

func (cmd *Export) Usage() string {
	return "[--url <url>] --file <file>"
}

func (cmd *Export) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] export [options] --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the character sheet stats and skills to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    pathfinder-sheets --debug export --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                     --file "valeros.tsv"`)
	fmt.Println()
}

func (cmd *Export) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("export")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-dd HHmmss>.tsv'")

	return flagset
}

func (cmd *Export) Execute(args ...any) error {
	options := args[0].(*Options)
	conf := cmd.configure(options)

	if cmd.file == "" {
		return fmt.Errorf("--file is a required option")
	}

	ctx, cancel := interruptible()
	defer cancel()

	sheet, err := cmd.character(ctx, conf)
	if err != nil {
		return err
	}

	if err := writeTSV(cmd.file, sheet); err != nil {
		return err
	}

	infof("Exported character sheet to file %s", cmd.file)

	return nil
}

// writeTSV writes the sheet to a temporary file alongside file and renames it into place,
// so the rename never crosses a filesystem.
func writeTSV(file string, sheet *character.Sheet) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".pathfinder-*.tsv")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := characterToTSV(tmp, sheet); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
