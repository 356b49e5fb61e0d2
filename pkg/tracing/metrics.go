package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	RenderLatencyMs = stats.Float64("bulletins/render/latency", "Time spent rendering a preview", stats.UnitMilliseconds)
	RenderedPages   = stats.Int64("bulletins/render/pages", "Pages rendered", stats.UnitDimensionless)
	CardLookups     = stats.Int64("bulletins/cards/lookups", "Card lookups made while rendering", stats.UnitDimensionless)

	KeyViewMode, _     = tag.NewKey("view_mode")
	KeyRenderResult, _ = tag.NewKey("result")
	KeyCacheResult, _  = tag.NewKey("cache")
)

var (
	RenderLatencyView = &view.View{
		Name:        "bulletins/render/latency",
		Measure:     RenderLatencyMs,
		Description: "Distribution of preview render latency",
		TagKeys:     []tag.Key{KeyViewMode, KeyRenderResult},
		Aggregation: view.Distribution(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500),
	}
	RenderedPagesView = &view.View{
		Name:        "bulletins/render/pages",
		Measure:     RenderedPages,
		Description: "Total pages rendered",
		TagKeys:     []tag.Key{KeyViewMode},
		Aggregation: view.Sum(),
	}
	CardLookupsView = &view.View{
		Name:        "bulletins/cards/lookups",
		Measure:     CardLookups,
		Description: "Card lookups by cache outcome",
		TagKeys:     []tag.Key{KeyCacheResult},
		Aggregation: view.Count(),
	}
)

// RegisterRenderViews registers the preview views with the view worker
func RegisterRenderViews() error {
	return view.Register(RenderLatencyView, RenderedPagesView, CardLookupsView)
}

// RecordRender records one render. pages is ignored when err is set.
func RecordRender(ctx context.Context, viewMode string, pages int, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyViewMode, viewMode), tag.Upsert(KeyRenderResult, result)},
		RenderLatencyMs.M(float64(elapsed)/float64(time.Millisecond)),
	)
	if err == nil {
		_ = stats.RecordWithTags(ctx,
			[]tag.Mutator{tag.Upsert(KeyViewMode, viewMode)},
			RenderedPages.M(int64(pages)),
		)
	}
}

// RecordCardLookup records whether a card came from the cache
func RecordCardLookup(ctx context.Context, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyCacheResult, outcome)}, CardLookups.M(1))
}
