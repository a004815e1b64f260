// File: lixenwraith/cliconfig/doc.go

// Package cliconfig turns a declarative schema of typed fields into three
// things at once: an in-code configuration object, a command-line interface
// and a configuration file format (TOML, YAML or JSON).
//
// Features:
//   - Option shapes inferred from field types (lists repeat, literals become choices)
//   - Help text from explicit help or from the schema documentation
//   - Merge with fixed precedence: command line, environment (opt-in), file, default
//   - Required fields (no default) reported as usage errors
//   - Experiment series: a "__series__" file key expands into every combination
//   - Source tracking, typed accessors and struct decoding on instances
//
// Quick Start:
//
//	schema := cliconfig.NewSchema("train").
//	    WithDoc(":param epochs: number of passes over the data").
//	    Field("epochs", cliconfig.Int).
//	    Field("lr", cliconfig.Float, cliconfig.Default(0.01)).
//	    Field("tags", cliconfig.List(cliconfig.String), cliconfig.Flags("-t", "--tag")).
//	    MustBuild()
//
//	cliconfig.Main(schema, func(ctx context.Context, inst *cliconfig.Instance) error {
//	    epochs, _ := inst.Int("epochs")
//	    ...
//	})
//
// A config file given with --config may hold a series:
//
//	lr = 0.1
//	[__series__]
//	epochs = [1, 2, 3]
//
// and the handler then runs once per value, with command-line options
// overriding every combination.
//
// Precedence (highest to lowest):
//  1. Command-line options
//  2. Environment variables (WithEnvPrefix)
//  3. Configuration file (--config or WithFileDiscovery)
//  4. Field defaults
//
// Schemas are immutable after Build and safe for concurrent reads. Handlers
// for a series run sequentially and the first error aborts the rest.
package cliconfig
