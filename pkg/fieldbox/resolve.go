package fieldbox

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// Resolution methods
const (
	MethodAddress = "address"
	MethodValue   = "value"
)

// Resolution describes how one field was located
type Resolution struct {
	Field  string         // Internal field name
	Output string         // Output field name used in the box
	Value  string         // Coerced value that was searched for
	Page   int            // 1-based page number
	Method string         // MethodAddress or MethodValue
	Run    []tokens.Token // All matched words, labels included
	Tokens []tokens.Token // Words the box was projected from
	Box    Box
}

// Result is the outcome of resolving a field map against a document
type Result struct {
	Boxes        []Box        `json:"boxes"`
	BoxesCount   int          `json:"boxes_count"`
	WordsPerPage []int        `json:"words_per_page"`
	Resolutions  []Resolution `json:"-"`
}

// Resolver locates catalog fields on token pages.
// A Resolver holds no per-call state and is safe for concurrent use.
type Resolver struct {
	opts Options
	log  *slog.Logger
}

// New creates a Resolver, filling unset options with defaults
func New(opts Options) *Resolver {
	defaults := DefaultOptions()
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = defaults.Thresholds
	}
	if len(opts.Catalog.Fields) == 0 {
		opts.Catalog = defaults.Catalog
	}
	if opts.Labels == nil {
		opts.Labels = defaults.Labels
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	return &Resolver{opts: opts, log: log}
}

// Options returns the effective options of the resolver
func (r *Resolver) Options() Options {
	return r.opts
}

// job is one catalog field with a non-empty value
type job struct {
	field Field
	value string
}

// Resolve locates every catalog field present in fields and returns at most
// one box per field, in catalog order. Fields in the skip set, fields with
// empty values and fields that cannot be found anywhere are omitted. The
// only error is cancellation of ctx.
func (r *Resolver) Resolve(ctx context.Context, pages []tokens.Page, fields map[string]interface{}) (*Result, error) {
	r.logDocument(pages, fields)

	var jobs []job
	for _, f := range r.opts.Catalog.Fields {
		if r.opts.Catalog.IsSkipped(f.Name) {
			continue
		}
		value := strings.TrimSpace(CoerceValue(fields[f.Name]))
		if value == "" {
			continue
		}
		jobs = append(jobs, job{field: f, value: value})
	}

	slots := make([]*Resolution, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if res, ok := r.Locate(pages, j.field.Name, j.value); ok {
				slots[i] = &res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve cancelled: %w", err)
	}

	result := &Result{
		Boxes:        make([]Box, 0, len(jobs)),
		WordsPerPage: tokens.WordsPerPage(pages),
	}
	for _, res := range slots {
		if res == nil {
			continue
		}
		result.Boxes = append(result.Boxes, res.Box)
		result.Resolutions = append(result.Resolutions, *res)
	}
	result.BoxesCount = len(result.Boxes)

	r.log.Info("fieldbox.resolve.done",
		"boxes", result.BoxesCount,
		"words_per_page", result.WordsPerPage,
	)
	return result, nil
}

// Locate finds a single field value on the pages. Pages are scanned in
// order and the first page with a match wins, even if a later page would
// match better.
func (r *Resolver) Locate(pages []tokens.Page, field, value string) (Resolution, bool) {
	value = strings.TrimSpace(value)
	parts := Tokenize(value)
	if len(parts) == 0 {
		return Resolution{}, false
	}

	th := r.opts.Thresholds
	isAddress := r.opts.Catalog.IsAddress(field)
	r.log.Debug("fieldbox.resolve.looking", "field", field, "value", value, "address", isAddress)

	for idx, page := range pages {
		if len(page.Words) == 0 {
			continue
		}
		page = page.Resolved()

		if isAddress {
			if cluster := ClusterAddress(page.Words, value, th); len(cluster) > 0 {
				if res, ok := r.resolution(field, value, idx, page, MethodAddress, cluster, cluster); ok {
					return res, true
				}
			}
			if r.opts.DisableAddressFallback {
				continue
			}
		}

		if run, ok := MatchValue(page.Words, field, parts, r.opts.Labels, th); ok {
			if res, ok := r.resolution(field, value, idx, page, MethodValue, run.All, run.Values); ok {
				return res, true
			}
		}
	}

	r.log.Info("fieldbox.resolve.field_not_found", "field", field, "value", value)
	return Resolution{}, false
}

func (r *Resolver) resolution(field, value string, pageIdx int, page tokens.Page, method string, run, values []tokens.Token) (Resolution, bool) {
	box, ok := Project(values, page.Width, page.Height, r.opts.Thresholds)
	if !ok {
		return Resolution{}, false
	}
	box.Field = r.opts.Catalog.Output(field)
	box.Page = pageIdx + 1

	r.log.Info("fieldbox.resolve.field_found",
		"field", field,
		"page", box.Page,
		"method", method,
		"run", wordTexts(run),
		"tokens", wordTexts(values),
		"box", fmt.Sprintf("x=%.3f y=%.3f w=%.3f h=%.3f", box.X, box.Y, box.Width, box.Height),
	)

	return Resolution{
		Field:  field,
		Output: box.Field,
		Value:  value,
		Page:   box.Page,
		Method: method,
		Run:    run,
		Tokens: values,
		Box:    box,
	}, true
}

func (r *Resolver) logDocument(pages []tokens.Page, fields map[string]interface{}) {
	if !r.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	total := 0
	for i, p := range pages {
		total += len(p.Words)
		r.log.Debug("fieldbox.resolve.page",
			"page", i+1,
			"width", p.Width,
			"height", p.Height,
			"words", len(p.Words),
		)
	}
	r.log.Debug("fieldbox.resolve.document", "pages", len(pages), "words", total, "fields", names)
}

func wordTexts(words []tokens.Token) []string {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return texts
}
