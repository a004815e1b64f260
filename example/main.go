// FILE: lixenwraith/cliconfig/example/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/cliconfig"
)

// Example session:
//
//	$ go run ./example --epochs 10 --lr 1.0 -o runs --optimizer sgd -h 1 -h 2
//	Train(epochs=10, learning_rate=1, output_dir="runs", comment="", optimizer="sgd", hidden_sizes=[]int{1, 2})
//
// A series file runs every combination:
//
//	$ cat sweep.yaml
//	epochs: 5
//	__series__:
//	  learning_rate: [0.1, 0.01]
//	  optimizer: [sgd, adam]
//	$ go run ./example --config sweep.yaml -o runs
//	(four lines, one per learning rate and optimizer)
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	schema := cliconfig.NewSchema("Train").
		WithDoc(`Train a small network.

:param epochs: Number of epochs to train
:param output_dir: This help text is ignored, the field sets its own
`).
		WithLogger(logger).
		// No default: required on the command line or in the config file
		Field("epochs", cliconfig.Int).
		Field("learning_rate", cliconfig.Float, cliconfig.Flags("--lr")).
		Field("output_dir", cliconfig.Path,
			cliconfig.Flags("-o", "--outdir"),
			cliconfig.Help("Where to store the results.")).
		Field("comment", cliconfig.String, cliconfig.Default("")).
		Field("optimizer", cliconfig.Literal("sgd", "adam"), cliconfig.Default("sgd")).
		// -h takes the short flag, so help is only reachable as --help
		Field("hidden_sizes", cliconfig.List(cliconfig.Int),
			cliconfig.Flags("-h", "--hidden"),
			cliconfig.DefaultFunc(func() any { return []int{100, 10} })).
		MustBuild()

	cliconfig.Main(schema, func(ctx context.Context, cfg *cliconfig.Instance) error {
		fmt.Println(cfg.Repr())
		logger.Info().
			Str("optimizer", fmt.Sprint(cfg.Map()["optimizer"])).
			Str("source", string(cfg.Source("learning_rate"))).
			Msg("run finished")
		return nil
	}, cliconfig.WithUse("train"), cliconfig.WithLogger(logger))
}
