// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/sirupsen/logrus"

	"github.com/moltab/moltab/cmd/moltab/cli"
	"github.com/moltab/moltab/cmd/moltab/errhand"
	"github.com/moltab/moltab/libraries/moltabcore/datasource"
	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/moltabcfg"
	"github.com/moltab/moltab/libraries/moltabcore/setalgebra"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/argparser"
	"github.com/moltab/moltab/libraries/utils/config"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

// Exit codes returned by CompareCmd.Exec
const (
	ExitSuccess      = 0
	ExitArgsError    = 1
	ExitNoDataFiles  = 2
	ExitLoadError    = 3
	ExitTooFewTables = 4
	ExitOutputError  = 5
)

var compareDocs = cli.CommandDocumentationContent{
	ShortDesc: "Load tables of records and compare them with set operations",
	LongDesc: `Loads every data file found directly inside {{.LessThan}}data_dir{{.GreaterThan}}, in path order, and prints each one as a table. Records are keyed on the key column, and when a file holds more than one record for a key only the first is kept.

When at least two tables were loaded, the first two are compared with the set operations union, difference, symmetric difference and intersection, and each result is printed. Records are matched on their key alone; when both tables have a key the record from the first table is the one shown.

Settings are taken from the command line first, then from {{.EmphasisLeft}}MOLTAB_*{{.EmphasisRight}} environment variables (e.g. MOLTAB_CSV_KEY_COLUMN), then from the file given with {{.EmphasisLeft}}--config{{.EmphasisRight}}, then from built-in defaults.

Exit codes: 0 on success, 1 for invalid arguments or settings, 2 when no data files are found in {{.LessThan}}data_dir{{.GreaterThan}}, 3 when a data file cannot be loaded, 4 when fewer than two tables were loaded so no set operations ran, and 5 when output cannot be written.`,
	Synopsis: []string{"[options] {{.LessThan}}data_dir{{.GreaterThan}}"},
}

var cliDocFormat = strings.NewReplacer(
	"{{.LessThan}}", "<",
	"{{.GreaterThan}}", ">",
	"{{.EmphasisLeft}}", "<b>",
	"{{.EmphasisRight}}", "</b>",
)

func docsForCli(docs cli.CommandDocumentationContent) cli.CommandDocumentationContent {
	synopsis := make([]string, len(docs.Synopsis))
	for i, s := range docs.Synopsis {
		synopsis[i] = cliDocFormat.Replace(s)
	}

	return cli.CommandDocumentationContent{
		ShortDesc: cliDocFormat.Replace(docs.ShortDesc),
		LongDesc:  cliDocFormat.Replace(docs.LongDesc),
		Synopsis:  synopsis,
	}
}

// value options and the config keys they set
var optionConfigKeys = map[string]string{
	ExtensionsFlag: moltabcfg.DataExtensionsKey,
	DelimFlag:      moltabcfg.CSVDelimKey,
	KeyColFlag:     moltabcfg.CSVKeyColumnKey,
	NameColFlag:    moltabcfg.CSVNameColumnKey,
	FloatColsFlag:  moltabcfg.CSVFloatColumnsKey,
	StringColsFlag: moltabcfg.CSVStringColumnsKey,
	FormatFlag:     moltabcfg.OutputFormatKey,
	LogLevelFlag:   moltabcfg.LogLevelKey,
}

// flags and the boolean config keys they set to true
var flagConfigKeys = map[string]string{
	InferKindsFlag:  moltabcfg.CSVInferKindsKey,
	SkipBadRowsFlag: moltabcfg.LoadSkipBadRowsKey,
}

type CompareCmd struct {
	// LookupEnv reads environment variables. When nil the process environment is used.
	LookupEnv config.LookupFunc
}

// Name is returns the name of the command
func (cmd CompareCmd) Name() string {
	return "compare"
}

// Description returns a description of the command
func (cmd CompareCmd) Description() string {
	return compareDocs.ShortDesc
}

func (cmd CompareCmd) ArgParser() *argparser.ArgParser {
	ap := argparser.NewArgParserWithMaxArgs(cmd.Name(), 1)
	ap.ArgListHelp = append(ap.ArgListHelp, [2]string{"data_dir", "The directory to load the data files from."})
	ap.SupportsString(ConfigFileFlag, "c", "file", "A .yaml, .yml or .toml file to read settings from.")
	ap.SupportsString(ExtensionsFlag, "", "ext,...", "Comma separated extensions of the files to load. Supported extensions are .csv, .psv, .xlsx and .json. Defaults to .csv.")
	ap.SupportsString(DelimFlag, "d", "delimiter", "The field delimiter of .csv files. Defaults to a comma.")
	ap.SupportsString(KeyColFlag, "", "column", "The column holding the record key. Defaults to Molecule.")
	ap.SupportsString(NameColFlag, "", "column", "The column holding the record name. When not set the key is used as the name.")
	ap.SupportsString(FloatColsFlag, "", "column,...", "Comma separated columns read as numbers. Defaults to Solubility,Molecular Weight.")
	ap.SupportsString(StringColsFlag, "", "column,...", "Comma separated columns read as text.")
	ap.SupportsFlag(InferKindsFlag, "", "Read every other column too, as a number when the value parses as one and as text otherwise.")
	ap.SupportsFlag(SkipBadRowsFlag, "", "Skip rows that cannot be read instead of failing to load the file.")
	ap.SupportsString(OpsFlag, "", "op,...", fmt.Sprintf("Comma separated set operations to run. Valid operations are %s. Defaults to all of them.", strings.Join(setalgebra.ShortNames(), ", ")))
	ap.SupportsValidatedString(FormatFlag, "r", "result_format", "How tables are printed. Valid values are tabular, csv and json. Defaults to tabular.", argparser.ValidatorFromStrList(FormatFlag, resultFormatNames))
	ap.SupportsString(LogLevelFlag, "", "level", "The logging level: trace, debug, info, warning, error, fatal or panic. Defaults to info.")
	ap.SupportsFlag(VerboseFlag, "v", "Print the details and causes of errors.")
	ap.SupportsFlag(NoColorFlag, "", "Do not color the output.")
	return ap
}

// Exec runs the command, returning the process exit code
func (cmd CompareCmd) Exec(ctx context.Context, commandStr string, args []string, fs filesys.Filesys) int {
	ap := cmd.ArgParser()
	help, usage := cli.HelpAndUsagePrinters(commandStr, docsForCli(compareDocs), ap)
	apr, terminate, status := cli.ParseArgs(ap, args, help, usage)
	if terminate {
		return status
	}

	cli.InitIO(apr.Contains(NoColorFlag))
	verbose := apr.Contains(VerboseFlag)

	if apr.NArg() != 1 {
		verr := errhand.BuildDError("error: %s requires the <data_dir> argument", commandStr).SetPrintUsage().Build()
		return HandleVErrAndExitCode(verr, verbose, usage, ExitArgsError)
	}

	cfg, verr := cmd.loadConfig(fs, apr)
	if verr != nil {
		return HandleVErrAndExitCode(verr, verbose, usage, ExitArgsError)
	}

	settings, verr := settingsFromConfig(cfg, apr)
	if verr != nil {
		return HandleVErrAndExitCode(verr, verbose, usage, ExitArgsError)
	}

	logger, err := configureLogging(cli.CliErr, config.GetStringOrDefault(cfg, moltabcfg.LogLevelKey, "info"))
	if err != nil {
		verr = errhand.BuildDError("error: failed to configure logging").AddCause(err).Build()
		return HandleVErrAndExitCode(verr, verbose, usage, ExitArgsError)
	}

	logger.WithField("data_dir", apr.Arg(0)).Debug("starting")
	return compareTables(ctx, fs, apr.Arg(0), settings, logger, verbose)
}

// loadConfig layers the command line over the environment, the config file and the defaults.
func (cmd CompareCmd) loadConfig(fs filesys.Filesys, apr *argparser.ArgParseResults) (*config.ConfigHierarchy, errhand.VerboseError) {
	cliProps := make(map[string]string)
	for opt, key := range optionConfigKeys {
		if val, ok := apr.GetValue(opt); ok {
			cliProps[key] = val
		}
	}

	for flag, key := range flagConfigKeys {
		if apr.Contains(flag) {
			cliProps[key] = "true"
		}
	}

	cfg := config.NewConfigHierarchy()
	cfg.AddConfig("command line", config.NewMapConfig(cliProps))
	cfg.AddConfig("environment", config.FromEnv(moltabcfg.EnvPrefix, moltabcfg.Keys, cmd.LookupEnv))

	if path, ok := apr.GetValue(ConfigFileFlag); ok {
		fileCfg, err := moltabcfg.FromFile(fs, path)
		if err != nil {
			return nil, errhand.BuildDError("error: failed to load config file %s", path).AddCause(err).Build()
		}

		cfg.AddConfig(path, fileCfg)
	}

	cfg.AddConfig("defaults", moltabcfg.Defaults())
	return cfg, nil
}

type compareSettings struct {
	opts      datasource.Options
	format    PrintResultFormat
	ops       []setalgebra.Op
	keyField  string
	nameField string
}

func settingsFromConfig(cfg config.ReadableConfig, apr *argparser.ArgParseResults) (compareSettings, errhand.VerboseError) {
	opts, err := datasource.OptionsFromConfig(cfg)
	if err != nil {
		return compareSettings{}, errhand.BuildDError("error: invalid settings").AddCause(err).Build()
	}

	format, err := ParseResultFormat(config.GetStringOrDefault(cfg, moltabcfg.OutputFormatKey, FormatTabular.String()))
	if err != nil {
		return compareSettings{}, errhand.BuildDError("error: invalid settings").AddCause(err).Build()
	}

	ops := setalgebra.Ops
	if names, ok := apr.GetValueList(OpsFlag); ok {
		ops, err = selectOps(names)
		if err != nil {
			return compareSettings{}, errhand.BuildDError("error: invalid value for --%s", OpsFlag).AddCause(err).SetPrintUsage().Build()
		}
	}

	settings := compareSettings{
		opts:      opts,
		format:    format,
		ops:       ops,
		keyField:  opts.Mapping.KeyCol,
		nameField: opts.Mapping.NameCol,
	}

	// names are keys, so they would only repeat the key column
	if settings.nameField == settings.keyField {
		settings.nameField = ""
	}

	return settings, nil
}

// selectOps resolves op names in the order given, dropping repeats
func selectOps(names []string) ([]setalgebra.Op, error) {
	var ops []setalgebra.Op
	seen := make(map[string]bool)
	for _, name := range names {
		op, ok := setalgebra.OpByName(name)
		if !ok {
			return nil, fmt.Errorf("'%s' is not a set operation. valid operations are: %s", name, strings.Join(setalgebra.ShortNames(), ", "))
		}

		if !seen[op.ShortName] {
			seen[op.ShortName] = true
			ops = append(ops, op)
		}
	}

	if len(ops) == 0 {
		return nil, fmt.Errorf("no set operations given")
	}

	return ops, nil
}

type loadedTable struct {
	path string
	tbl  *datatable.Table
}

func compareTables(ctx context.Context, fs filesys.Filesys, dir string, settings compareSettings, logger *logrus.Entry, verbose bool) int {
	cli.Println("Running moltab")

	files, err := datasource.ListDataFiles(fs, dir, settings.opts.Formats)
	if err != nil {
		verr := errhand.BuildDError("Failed to enumerate data files in %s", dir).AddCause(err).Build()
		return HandleVErrAndExitCode(verr, verbose, nil, ExitNoDataFiles)
	}

	if len(files) == 0 {
		exts := make([]string, len(settings.opts.Formats))
		for i, df := range settings.opts.Formats {
			exts[i] = string(df)
		}

		verr := errhand.BuildDError("Failed to find any data files in %s", dir).
			AddDetails("looked for files with the extensions: %s", strings.Join(exts, ", ")).
			Build()
		return HandleVErrAndExitCode(verr, verbose, nil, ExitNoDataFiles)
	}

	cli.Printf("Found %s\n", english.Plural(len(files), "data file", "data files"))

	var tables []loadedTable
	for _, f := range files {
		cli.Println()
		cli.Printf("Loading %s from %s (%s)\n", f.Format.ReadableStr(), f.Path, humanize.Bytes(uint64(f.Size)))

		tbl, stats, err := datasource.LoadTable(ctx, fs, f.Path, settings.opts)
		if err != nil {
			bdr := errhand.BuildDError("Failed to load table from %s", f.Path).AddCause(err)
			if datasource.IsEmptySource(err) {
				bdr.AddDetails("the file has no usable records")
			} else if table.IsBadRow(err) && !settings.opts.SkipBadRows {
				bdr.AddDetails("use --%s to skip rows that cannot be read", SkipBadRowsFlag)
			}

			return HandleVErrAndExitCode(bdr.Build(), verbose, nil, ExitLoadError)
		}

		logger.WithFields(logrus.Fields{
			"path":    f.Path,
			"records": tbl.Len(),
		}).Debug("table loaded")

		if verr := printTable(ctx, settings, tbl); verr != nil {
			return HandleVErrAndExitCode(verr, verbose, nil, ExitOutputError)
		}

		cli.Println(statsSummary(stats))
		tables = append(tables, loadedTable{f.Path, tbl})
	}

	if len(tables) < 2 {
		cli.PrintErrln("Fewer than 2 tables loaded, so no set operations can be run")
		return ExitTooFewTables
	}

	first, second := tables[0], tables[1]
	for _, op := range settings.ops {
		cli.Println()
		cli.Printf("Will print %s of tables from: %q and %q\n", op.Name, first.path, second.path)
		cli.Println()

		cli.Println("Table 1:")
		if verr := printTable(ctx, settings, first.tbl); verr != nil {
			return HandleVErrAndExitCode(verr, verbose, nil, ExitOutputError)
		}

		cli.Println()
		cli.Println("Table 2:")
		if verr := printTable(ctx, settings, second.tbl); verr != nil {
			return HandleVErrAndExitCode(verr, verbose, nil, ExitOutputError)
		}

		res := op.Apply(first.tbl, second.tbl)
		logger.WithFields(logrus.Fields{"op": op.ShortName, "records": res.Len()}).Debug("set operation complete")

		cli.Println()
		cli.Printf("Resulting table (%s)\n", op.Name)
		if verr := printTable(ctx, settings, res); verr != nil {
			return HandleVErrAndExitCode(verr, verbose, nil, ExitOutputError)
		}
	}

	cli.Println()
	cli.Println("Successfully finished running moltab")
	return ExitSuccess
}

func printTable(ctx context.Context, settings compareSettings, tbl *datatable.Table) errhand.VerboseError {
	err := PrintTable(ctx, cli.CliOut, settings.format, tbl, settings.keyField, settings.nameField)
	return errhand.BuildIf(err, "error: failed to print table").Build()
}

func statsSummary(stats table.ReadStats) string {
	summary := fmt.Sprintf("%s read, %s loaded", english.Plural(stats.Good+stats.Bad, "row", "rows"), english.Plural(stats.Records(), "record", "records"))

	if stats.Duplicates > 0 {
		summary += fmt.Sprintf(", %s dropped", english.Plural(stats.Duplicates, "duplicate key", "duplicate keys"))
	}

	if stats.Bad > 0 {
		summary += fmt.Sprintf(", %s skipped", english.Plural(stats.Bad, "bad row", "bad rows"))
	}

	return summary
}
