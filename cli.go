// FILE: lixenwraith/cliconfig/cli.go
package cliconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DefaultConfigOption is the name of the config file option.
const DefaultConfigOption = "config"

// Handler receives one fully merged instance per invocation.
type Handler func(ctx context.Context, inst *Instance) error

// HandlerFor adapts a function taking a typed struct. Each instance is decoded
// into a fresh T using "toml" tags.
func HandlerFor[T any](fn func(ctx context.Context, cfg *T) error) Handler {
	return func(ctx context.Context, inst *Instance) error {
		var cfg T
		if err := inst.Decode(&cfg); err != nil {
			return err
		}
		return fn(ctx, &cfg)
	}
}

// CLI owns the options synthesized from a schema and the merge, validate and
// dispatch logic run on every invocation.
type CLI struct {
	schema       *Schema
	handler      Handler
	configName   string
	options      []OptionSpec
	logger       zerolog.Logger
	envTransform EnvTransformFunc
	discovery    *FileDiscoveryOptions
	use          string
	short        string
	out          io.Writer
	errOut       io.Writer
}

// CLIOption configures a CLI
type CLIOption func(*CLI)

// WithConfigOption renames the config file option (default "config").
func WithConfigOption(name string) CLIOption {
	return func(c *CLI) { c.configName = name }
}

// WithLogger sets the logger. It defaults to the schema's logger.
func WithLogger(logger zerolog.Logger) CLIOption {
	return func(c *CLI) { c.logger = logger }
}

// WithEnvPrefix enables environment variables as a source between command-line
// options and the config file. Field "max_conns" with prefix "APP_" reads APP_MAX_CONNS.
func WithEnvPrefix(prefix string) CLIOption {
	return func(c *CLI) { c.envTransform = defaultEnvTransform(prefix) }
}

// WithEnvTransform enables the environment source with a custom name mapping.
func WithEnvTransform(fn EnvTransformFunc) CLIOption {
	return func(c *CLI) { c.envTransform = fn }
}

// WithFileDiscovery searches for a config file when the config option is not given.
func WithFileDiscovery(opts FileDiscoveryOptions) CLIOption {
	return func(c *CLI) { c.discovery = &opts }
}

// WithUse sets the command name shown in usage lines.
func WithUse(use string) CLIOption {
	return func(c *CLI) { c.use = use }
}

// WithShort sets the command description shown in help.
func WithShort(short string) CLIOption {
	return func(c *CLI) { c.short = short }
}

// WithOutput redirects help output and error messages.
func WithOutput(out, errOut io.Writer) CLIOption {
	return func(c *CLI) {
		c.out = out
		c.errOut = errOut
	}
}

// BuildCLI synthesizes one option per schema field plus the config file option.
func BuildCLI(schema *Schema, handler Handler, opts ...CLIOption) (*CLI, error) {
	if schema == nil || handler == nil {
		return nil, fmt.Errorf("BuildCLI requires a schema and a handler")
	}

	c := &CLI{
		schema:     schema,
		handler:    handler,
		configName: DefaultConfigOption,
		logger:     schema.logger,
		use:        strings.ToLower(schema.name),
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.short == "" {
		c.short = summary(schema.doc)
	}

	if err := c.checkFlags(); err != nil {
		return nil, err
	}

	for _, fd := range schema.fields {
		shape := fd.shape
		c.options = append(c.options, OptionSpec{
			Flags:    fd.OptionFlags(),
			Target:   fd.Name,
			Type:     shape.Base,
			Choices:  shape.Choices,
			Multiple: shape.Multiple,
			Default:  Unset,
			Help:     fd.Help,
			Metavar:  fd.Attrs.Metavar,
			Hidden:   fd.Attrs.Hidden,
		})
	}

	return c, nil
}

// checkFlags rejects option names used twice, including the config and help options.
func (c *CLI) checkFlags() error {
	fail := func(field, reason string) error {
		return &SchemaDefinitionError{Schema: c.schema.name, Field: field, Reason: reason}
	}

	if !isValidFlagName(c.configName) {
		return fail("", fmt.Sprintf("invalid config option name %q", c.configName))
	}
	if _, clash := c.schema.index[c.configName]; clash {
		return fail(c.configName, "field name collides with the config file option")
	}

	longs := map[string]string{c.configName: "", "help": ""}
	shorts := map[string]string{}
	for _, fd := range c.schema.fields {
		names, short, err := fd.splitFlags()
		if err != nil {
			return fail(fd.Name, err.Error())
		}
		if len(names) == 0 {
			names = []string{fd.Name}
		}
		for _, name := range names {
			if owner, taken := longs[name]; taken {
				return fail(fd.Name, fmt.Sprintf("option --%s is already used%s", name, ownedBy(owner)))
			}
			longs[name] = fd.Name
		}
		if short != "" {
			if owner, taken := shorts[short]; taken {
				return fail(fd.Name, fmt.Sprintf("option -%s is already used%s", short, ownedBy(owner)))
			}
			shorts[short] = fd.Name
		}
	}
	return nil
}

func ownedBy(field string) string {
	if field == "" {
		return ""
	}
	return " by field " + field
}

// Options returns the synthesized field options in field order.
func (c *CLI) Options() []OptionSpec {
	return append([]OptionSpec(nil), c.options...)
}

// invocation holds the flag values of one command execution.
type invocation struct {
	values map[string]*optionValue
	config pathValue
}

func (inv *invocation) collect() map[string]any {
	out := make(map[string]any, len(inv.values))
	for name, v := range inv.values {
		out[name] = v.value()
	}
	return out
}

// Command returns a new cobra command bound to fresh option values, for use
// standalone or as a subcommand.
func (c *CLI) Command() *cobra.Command {
	inv := &invocation{values: make(map[string]*optionValue, len(c.options))}

	cmd := &cobra.Command{
		Use:           c.use,
		Short:         c.short,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return newUsageError(fmt.Errorf("got unexpected extra argument (%s)", strings.Join(args, " ")))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Invoke(cmd.Context(), inv.collect(), inv.config.path)
		},
	}
	cmd.SetOut(c.out)
	cmd.SetErr(c.errOut)

	fs := cmd.Flags()
	fs.SortFlags = false
	for _, spec := range c.options {
		c.addFlag(fs, spec, inv)
	}
	fs.Var(&inv.config, c.configName, "Read configuration from a JSON, YAML or TOML file.")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newUsageError(fmt.Errorf("%w: %w", ErrCLIParse, err))
	})
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		c.writeHelp(cmd.OutOrStdout(), cmd)
	})

	return cmd
}

func (c *CLI) addFlag(fs *pflag.FlagSet, spec OptionSpec, inv *invocation) {
	v := &optionValue{spec: spec}
	inv.values[spec.Target] = v

	var longs []string
	short := ""
	for _, decl := range spec.Flags {
		if strings.HasPrefix(decl, "--") {
			longs = append(longs, decl[2:])
		} else {
			short = decl[1:]
		}
	}
	if len(longs) == 0 {
		// Short-only options still need a long name in pflag
		longs = []string{spec.Target}
	}

	// Booleans take a value like every other type: --debug false
	f := fs.VarPF(v, longs[0], short, spec.Help)
	f.Hidden = spec.Hidden

	for _, alias := range longs[1:] {
		fs.AddFlag(&pflag.Flag{
			Name:        alias,
			Usage:       spec.Help,
			Value:       v,
			DefValue:    v.String(),
			Hidden:      true,
		})
	}
}

// Execute parses args and runs the handler once per resulting instance.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}
	cmd := c.Command()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Run executes args, reports errors on the error writer and returns the process exit status.
func (c *CLI) Run(args []string) int {
	err := c.Execute(context.Background(), args)
	if err == nil {
		return 0
	}

	errColor := color.New(color.FgRed, color.Bold)
	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(c.errOut, "Usage: %s [OPTIONS]\nTry '%s --help' for help.\n\n", c.use, c.use)
		errColor.Fprintf(c.errOut, "Error: %s\n", usage.Err)
		return usage.Code
	}

	errColor.Fprintf(c.errOut, "Error: %s\n", err)
	return 1
}

// Invoke merges command-line values, environment, an optional config file and
// defaults, then calls the handler for every instance in order. Unset values
// and empty lists in cliValues are ignored. A missing required field becomes a
// *UsageError; every other error is returned unchanged.
func (c *CLI) Invoke(ctx context.Context, cliValues map[string]any, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	bound := make(map[string]any, len(cliValues))
	for name, v := range cliValues {
		if IsUnset(v) || isEmptyList(v) {
			continue
		}
		bound[name] = v
	}

	var env map[string]any
	if c.envTransform != nil {
		env = c.schema.loadEnv(c.envTransform)
	}

	if configPath == "" && c.discovery != nil {
		configPath = c.discovery.find()
		if configPath != "" {
			c.logger.Debug().Str("path", configPath).Msg("config file discovered")
		}
	}

	var file map[string]any
	var seriesOrder []string
	if configPath != "" {
		data, order, err := ReadConfigFileOrdered(configPath)
		if err != nil {
			return err
		}
		seriesOrder = order
		c.logger.Debug().
			Str("schema", c.schema.name).
			Str("path", configPath).
			Int("keys", len(data)).
			Msg("config file loaded")
		file = data
	}

	instances, err := c.schema.merge(bound, env, file, seriesOrder)
	if err != nil {
		var missing *RequiredFieldMissing
		if errors.As(err, &missing) {
			return newUsageError(err)
		}
		return err
	}

	for i, inst := range instances {
		c.logger.Debug().
			Str("schema", c.schema.name).
			Int("index", i).
			Int("total", len(instances)).
			Msg("invoking handler")
		if err := c.handler(ctx, inst); err != nil {
			return err
		}
	}
	return nil
}

func isEmptyList(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 0
}

// summary returns the first paragraph of doc that is not a parameter list.
func summary(doc string) string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") || googleHeader.MatchString(line) {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, " ")
}
