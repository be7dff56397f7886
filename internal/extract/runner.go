package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vearutop/spatial"
	"github.com/vearutop/spatial/internal/assets"
	"github.com/vearutop/spatial/internal/logging"
)

// Runner exports items with a bounded worker pool.
type Runner struct {
	// Workers limits concurrently processed items, values below 1 mean sequential.
	Workers int
	Writer  spatial.Writer
	Logger  *slog.Logger
	// SkipInvalidGroups retries later stereo groups when the first is malformed.
	SkipInvalidGroups bool
}

func (r *Runner) logger() *slog.Logger {
	return logging.NewComponentLogger(r.Logger, "extract")
}

// Run processes items and returns their results in input order.
func (r *Runner) Run(ctx context.Context, items []Item) Report {
	report := Report{Items: make([]ItemResult, len(items))}
	logger := r.logger()

	workers := r.Workers
	if workers > len(items) {
		workers = len(items)
	}
	if workers <= 1 {
		for i, item := range items {
			report.Items[i] = r.process(ctx, logger, item)
		}
		return report
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, item := range items {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, item Item) {
			defer wg.Done()
			defer func() { <-sem }()
			report.Items[i] = r.process(ctx, logger, item)
		}(i, item)
	}
	wg.Wait()
	return report
}

// RunFiles exports each path beside its source.
func (r *Runner) RunFiles(ctx context.Context, paths []string) Report {
	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, FileItem(p))
	}
	return r.Run(ctx, items)
}

// Authorize fails with *AuthorizationError unless src is fully authorized.
func Authorize(ctx context.Context, src assets.Source) error {
	status, err := src.Authorization(ctx)
	if err != nil {
		return fmt.Errorf("library authorization: %w", err)
	}
	if status != assets.Authorized {
		return &AuthorizationError{Status: status}
	}
	return nil
}

// RunLibrary checks authorization once, then exports every spatial asset into picturesDir.
func (r *Runner) RunLibrary(ctx context.Context, src assets.Source, picturesDir string) (Report, error) {
	if err := Authorize(ctx, src); err != nil {
		r.logger().Error("library access not authorized", logging.Error(err))
		return Report{}, err
	}
	return r.ExportLibrary(ctx, src, picturesDir)
}

// ExportLibrary exports every spatial asset of an already authorized src into picturesDir.
func (r *Runner) ExportLibrary(ctx context.Context, src assets.Source, picturesDir string) (Report, error) {
	list, err := src.Spatial(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list spatial assets: %w", err)
	}
	r.logger().Info("spatial assets found", slog.Int("count", len(list)))

	items := make([]Item, 0, len(list))
	for _, a := range list {
		items = append(items, AssetItem(src, a, picturesDir))
	}
	return r.Run(ctx, items), nil
}

func (r *Runner) process(ctx context.Context, logger *slog.Logger, item Item) ItemResult {
	res := ItemResult{Name: item.Name, Stage: StagePending}
	logger = logger.With(slog.String(logging.FieldItem, item.Name))

	fail := func(err error) ItemResult {
		logger.Error("item failed", slog.String(logging.FieldStage, res.Stage.String()), logging.Error(err))
		res.Stage = StageFailed
		res.Err = err
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	c, err := item.Open(ctx)
	if err != nil {
		return fail(err)
	}
	res.Stage = StageOpened

	plan, err := spatial.Plan(c, func(o *spatial.GroupOptions) {
		o.SkipInvalid = r.SkipInvalidGroups
	})
	if err != nil {
		return fail(err)
	}
	res.Stage = StagePlanned
	res.Plan = &plan
	logger.Debug("extraction planned",
		slog.Int("images", c.ImageCount()),
		slog.Int("exports", len(plan.Entries)),
		slog.Bool("stereo", plan.Pair != nil),
	)
	if plan.Pair == nil {
		logger.Info("no stereo pair, exporting primary only")
	}

	res.Stage = StageExporting
	for _, e := range plan.Entries {
		rr := r.export(c, item, e)
		if rr.Err != nil {
			logger.Error("export failed",
				slog.String(logging.FieldRole, string(e.Role)),
				slog.Int(logging.FieldIndex, e.Index),
				logging.Error(rr.Err),
			)
		} else {
			logger.Info("exported",
				slog.String(logging.FieldRole, string(e.Role)),
				slog.String(logging.FieldPath, rr.Path),
			)
		}
		res.Roles = append(res.Roles, rr)
	}
	res.Stage = StageDone
	return res
}

func (r *Runner) export(c Reader, item Item, e spatial.PlanEntry) RoleResult {
	target := spatial.TargetIn(item.OutputDir, item.Name, e.Role)
	rr := RoleResult{Role: e.Role, Index: e.Index, Path: target.Path}

	img, err := c.DecodeAt(e.Index)
	if err != nil {
		rr.Err = err
		return rr
	}
	props, err := c.PropertiesAt(e.Index)
	if err != nil {
		rr.Err = err
		return rr
	}
	rr.Err = r.Writer.Write(img, props, target)
	return rr
}
