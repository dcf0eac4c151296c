package infer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/conduit-lang/modeltypes/internal/orm/codegen"
)

// Inferencer resolves each model's table and derives its property types
type Inferencer struct {
	source      ColumnTypeSource
	dialect     string
	accessors   bool
	builderType string
	workers     int
	logger      *zap.Logger

	mapper *codegen.TypeMapper
	synth  *codegen.AccessorSynthesizer
}

// Option configures an Inferencer
type Option func(*Inferencer)

// New creates an Inferencer reading tables from source
func New(source ColumnTypeSource, opts ...Option) (*Inferencer, error) {
	in := Inferencer{
		source:  source,
		workers: 1,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&in)
	}

	if in.source == nil {
		return nil, fmt.Errorf("missing column type source")
	}
	if in.workers < 1 {
		return nil, fmt.Errorf("invalid worker count: %d", in.workers)
	}

	in.mapper = codegen.NewTypeMapper(in.dialect)
	in.synth = codegen.NewAccessorSynthesizer(in.builderType)

	return &in, nil
}

// WithDialect sets the storage dialect used for boolean representation
func WithDialect(dialect string) Option {
	return func(in *Inferencer) {
		in.dialect = dialect
	}
}

// WithAccessors enables where<Column> accessor synthesis
func WithAccessors(enabled bool) Option {
	return func(in *Inferencer) {
		in.accessors = enabled
	}
}

// WithBuilderType sets the query builder class accessors return
func WithBuilderType(class string) Option {
	return func(in *Inferencer) {
		in.builderType = class
	}
}

// WithWorkers sets how many models are inferred concurrently
func WithWorkers(n int) Option {
	return func(in *Inferencer) {
		in.workers = n
	}
}

// WithLogger sets the logger; nil keeps the no-op logger
func WithLogger(logger *zap.Logger) Option {
	return func(in *Inferencer) {
		if logger != nil {
			in.logger = logger
		}
	}
}

type modelResult struct {
	model ModelDescriptor
	props []codegen.Property
	found bool
}

// RunSource loads the models from src and runs inference on them
func (in *Inferencer) RunSource(ctx context.Context, src ModelSource) (*codegen.PropertyRegistry, error) {
	models, err := src.Models()
	if err != nil {
		return nil, fmt.Errorf("failed to load models: %w", err)
	}
	return in.Run(ctx, models)
}

// Run infers every model in order. Models whose table is unknown are skipped
// and do not appear in ProcessedModels. The registry is only returned when
// the whole run succeeds.
func (in *Inferencer) Run(ctx context.Context, models []ModelDescriptor) (*codegen.PropertyRegistry, error) {
	log := in.logger.With(zap.String("run_id", uuid.NewString()))

	var (
		results []modelResult
		err     error
	)
	if in.workers > 1 && len(models) > 1 {
		results, err = in.runParallel(ctx, log, models)
	} else {
		results, err = in.runSequential(ctx, log, models)
	}
	if err != nil {
		return nil, err
	}

	reg := codegen.NewPropertyRegistry()
	for _, res := range results {
		if !res.found {
			continue
		}
		for _, p := range res.props {
			reg.RecordColumn(res.model.Identity, p)
		}
		reg.MarkProcessed(res.model.Identity)
	}

	log.Info("inference complete",
		zap.Int("models", len(models)),
		zap.Int("processed", len(reg.ProcessedModels())),
		zap.String("dialect", in.dialect),
	)

	return reg, nil
}

func (in *Inferencer) runSequential(ctx context.Context, log *zap.Logger, models []ModelDescriptor) ([]modelResult, error) {
	results := make([]modelResult, 0, len(models))
	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := in.inferModel(ctx, log, m)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// runParallel keeps results indexed by input position so the registry is
// filled in the same order as a sequential run.
func (in *Inferencer) runParallel(ctx context.Context, log *zap.Logger, models []ModelDescriptor) ([]modelResult, error) {
	results := make([]modelResult, len(models))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)

	for i, m := range models {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := in.inferModel(gctx, log, m)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (in *Inferencer) inferModel(ctx context.Context, log *zap.Logger, m ModelDescriptor) (modelResult, error) {
	res := modelResult{model: m}

	table, found, err := in.source.LookupTable(ctx, m.Table)
	if err != nil {
		return res, fmt.Errorf("model %s: failed to look up table %s: %w", m.Identity, m.Table, err)
	}
	if !found {
		log.Debug("skipping model without schema",
			zap.String("model", m.Identity),
			zap.String("table", m.Table),
		)
		return res, nil
	}

	res.found = true
	res.props = make([]codegen.Property, 0, len(table.Columns))
	accessorOwner := make(map[string]string)

	for _, col := range table.Columns {
		get, set := in.mapper.InferTypes(col, m.IsDate(col.Name))

		prop := codegen.Property{
			Name:     col.Name,
			Get:      get,
			Set:      set,
			Nullable: col.Nullable,
			Comment:  col.Comment,
		}

		if in.accessors {
			acc := in.synth.Synthesize(col, m.Identity)
			if owner, clash := accessorOwner[acc.Name]; clash {
				log.Warn("accessor name collision",
					zap.String("model", m.Identity),
					zap.String("method", acc.Name),
					zap.String("column", col.Name),
					zap.String("previous_column", owner),
				)
			}
			accessorOwner[acc.Name] = col.Name
			prop.Accessor = &acc
		}

		res.props = append(res.props, prop)
	}

	log.Debug("inferred model",
		zap.String("model", m.Identity),
		zap.String("table", m.Table),
		zap.Int("properties", len(res.props)),
	)

	return res, nil
}
