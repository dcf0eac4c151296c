package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/modeltypes/internal/cli/config"
	"github.com/conduit-lang/modeltypes/internal/cli/ui"
	"github.com/conduit-lang/modeltypes/internal/orm/codegen"
	"github.com/conduit-lang/modeltypes/internal/orm/infer"
	"github.com/conduit-lang/modeltypes/internal/orm/introspect"
	"github.com/conduit-lang/modeltypes/internal/orm/schema"
)

type inferOptions struct {
	configDir   string
	schemaFile  string
	modelsFile  string
	dialect     string
	format      string
	databaseURL string
	driver      string
	workers     int
	noAccessors bool
	jsonOutput  bool
	tableOutput bool
	verbose     bool
}

// NewInferCommand creates the infer command
func NewInferCommand() *cobra.Command {
	opts := &inferOptions{}

	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Infer property annotations for the listed models",
		Long: `Infer property types for every model in the models manifest.

Table metadata comes from the schema file, or from a live database when
database.url (or --database-url) is set. Models whose table is not found are
skipped.`,
		Example: `  # Docblock annotations from schema.yml and models.yml
  modeltypes infer

  # TypeScript interfaces for a PostgreSQL schema
  modeltypes infer --dialect pgsql --format typescript

  # Read columns from a live database
  modeltypes infer --driver pgx --database-url postgres://localhost/app

  # JSON for tooling
  modeltypes infer --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configDir, "config", ".", "Directory containing modeltypes.yml")
	cmd.Flags().StringVar(&opts.schemaFile, "schema", "", "Static schema file")
	cmd.Flags().StringVar(&opts.modelsFile, "models", "", "Model manifest file")
	cmd.Flags().StringVar(&opts.dialect, "dialect", "", "Storage dialect (mysql, sqlite, pgsql, ...)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Annotation format: docblock or typescript")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", "", "Read columns from this database instead of the schema file")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "Database driver: pgx or sqlite3")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Models inferred concurrently")
	cmd.Flags().BoolVar(&opts.noAccessors, "no-accessors", false, "Do not emit where<Column> methods")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&opts.tableOutput, "table", false, "Output a property table per model")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

func applyFlagOverrides(cmd *cobra.Command, opts *inferOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("schema") {
		cfg.Schema.File = opts.schemaFile
	}
	if flags.Changed("models") {
		cfg.Models.File = opts.modelsFile
	}
	if flags.Changed("dialect") {
		cfg.Database.Dialect = opts.dialect
	}
	if flags.Changed("format") {
		cfg.Annotations.Format = opts.format
	}
	if flags.Changed("database-url") {
		cfg.Database.URL = opts.databaseURL
	}
	if flags.Changed("driver") {
		cfg.Database.Driver = opts.driver
	}
	if flags.Changed("workers") {
		cfg.Inference.Workers = opts.workers
	}
	if opts.noAccessors {
		cfg.Annotations.WriteModelMagicWhere = false
	}
}

func runInfer(cmd *cobra.Command, opts *inferOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.configDir)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	renderer, err := codegen.NewRenderer(cfg.Annotations.Format, cfg.Annotations.TemporalClass)
	if err != nil {
		return err
	}

	logger := newLogger(opts.verbose)
	defer logger.Sync() //nolint:errcheck

	var (
		source      infer.ColumnTypeSource
		knownTables []string
	)
	dialect := cfg.Database.Dialect

	if cfg.Database.URL != "" {
		live, err := introspect.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer live.Close()
		source = live

		// the connection decides the dialect unless it was given explicitly
		if !cmd.Flags().Changed("dialect") {
			if dialect, err = introspect.DialectFor(cfg.Database.Driver); err != nil {
				return err
			}
		}
		logger.Debug("using live database", zap.String("driver", cfg.Database.Driver))
	} else {
		agg, err := schema.LoadFile(cfg.Schema.File)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		source = infer.NewStaticSource(agg)
		knownTables = agg.Tables()
		logger.Debug("using schema file", zap.String("file", cfg.Schema.File), zap.Int("tables", agg.Count()))
	}

	manifest, err := infer.LoadManifestFile(cfg.Models.File)
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}

	inferencer, err := infer.New(source,
		infer.WithDialect(dialect),
		infer.WithAccessors(cfg.Annotations.WriteModelMagicWhere),
		infer.WithBuilderType(cfg.Annotations.BuilderType),
		infer.WithWorkers(cfg.Inference.Workers),
		infer.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	reg, err := inferencer.RunSource(ctx, manifest)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	processed := reg.ProcessedModels()
	switch {
	case opts.jsonOutput:
		if err := writeJSON(out, renderer, reg); err != nil {
			return err
		}
	case opts.tableOutput:
		writeTables(out, renderer, reg)
	default:
		for i, model := range processed {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, codegen.RenderModel(renderer, model, reg.Properties(model)))
		}
	}

	errOut := cmd.ErrOrStderr()
	skipped := skippedModels(manifest.Entries, processed)
	color.New(color.FgGreen).Fprintf(errOut, "Inferred %d model(s)", len(processed))
	if len(skipped) > 0 {
		color.New(color.FgYellow).Fprintf(errOut, ", skipped %d without schema", len(skipped))
	}
	fmt.Fprintln(errOut)

	for _, m := range skipped {
		hint := ""
		if similar := ui.SuggestNames(m.Table, knownTables, 3); len(similar) > 0 {
			hint = fmt.Sprintf(" (did you mean: %s?)", strings.Join(similar, ", "))
		}
		color.New(color.FgYellow).Fprintf(errOut, "  %s: table %q not found%s\n", m.Identity, m.Table, hint)
	}

	return nil
}

func skippedModels(entries []infer.ModelDescriptor, processed []string) []infer.ModelDescriptor {
	done := make(map[string]bool, len(processed))
	for _, p := range processed {
		done[p] = true
	}
	var skipped []infer.ModelDescriptor
	for _, e := range entries {
		if !done[e.Identity] {
			skipped = append(skipped, e)
		}
	}
	return skipped
}

func writeTables(w io.Writer, r codegen.Renderer, reg *codegen.PropertyRegistry) {
	for i, model := range reg.ProcessedModels() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, model)
		table := ui.NewTable(w, color.NoColor, "PROPERTY", "GET", "SET", "NULLABLE", "ACCESSOR")
		for _, p := range reg.Properties(model) {
			accessor := ""
			if p.Accessor != nil {
				accessor = p.Accessor.Name
			}
			nullable := ""
			if p.Nullable {
				nullable = "yes"
			}
			table.AddRow(p.Name, r.Render(p.Get), r.Render(p.Set), nullable, accessor)
		}
		table.Render()
	}
}

type jsonAccessor struct {
	Name       string   `json:"name"`
	ReturnType string   `json:"return_type"`
	Params     []string `json:"params"`
}

type jsonProperty struct {
	Name     string        `json:"name"`
	Get      string        `json:"get"`
	Set      string        `json:"set"`
	Nullable bool          `json:"nullable"`
	Comment  string        `json:"comment,omitempty"`
	Accessor *jsonAccessor `json:"accessor,omitempty"`
}

type jsonModel struct {
	Model      string         `json:"model"`
	Nullable   []string       `json:"nullable"`
	Properties []jsonProperty `json:"properties"`
}

func writeJSON(w io.Writer, r codegen.Renderer, reg *codegen.PropertyRegistry) error {
	models := make([]jsonModel, 0)
	for _, model := range reg.ProcessedModels() {
		jm := jsonModel{Model: model, Nullable: reg.Nullable(model)}
		if jm.Nullable == nil {
			jm.Nullable = []string{}
		}
		for _, p := range reg.Properties(model) {
			jp := jsonProperty{
				Name:     p.Name,
				Get:      r.Render(p.Get),
				Set:      r.Render(p.Set),
				Nullable: p.Nullable,
				Comment:  p.Comment,
			}
			if p.Accessor != nil {
				jp.Accessor = &jsonAccessor{
					Name:       p.Accessor.Name,
					ReturnType: r.Render(p.Accessor.ReturnType),
					Params:     p.Accessor.Params,
				}
			}
			jm.Properties = append(jm.Properties, jp)
		}
		models = append(models, jm)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(models)
}
