// Package tools exposes the resume engine as named tools that take JSON
// arguments and return text content.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/singleflight"

	"resume-ats/internal/shared/cache"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/resume/service"
)

// ErrUnknownTool is returned by Call for names not in the registry.
var ErrUnknownTool = errors.New("unknown tool")

// Content is one block of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is what a tool call returns. Failures are reported in-band with IsError set.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
}

// Descriptor is the public description of a tool.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type handlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

type tool struct {
	desc   Descriptor
	schema *gojsonschema.Schema
	run    handlerFunc
}

// Options configures a Registry. A nil Cache uses an in-memory cache.
type Options struct {
	Engine   service.Engine
	Cache    cache.Cache
	CacheTTL time.Duration
}

// Registry holds the tool set and the shared parse cache.
type Registry struct {
	engine   service.Engine
	cache    cache.Cache
	cacheTTL time.Duration
	validate *validator.Validate
	flight   singleflight.Group
	tools    map[string]*tool
}

// New builds the registry with the built-in tools.
func New(opts Options) (*Registry, error) {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemory(opts.CacheTTL, 0)
	}
	r := &Registry{
		engine:   opts.Engine,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		validate: newValidator(),
		tools:    make(map[string]*tool),
	}
	for _, b := range r.builtins() {
		if err := r.register(b.desc, b.run); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(desc Descriptor, run handlerFunc) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(desc.InputSchema))
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", desc.Name, err)
	}
	if _, exists := r.tools[desc.Name]; exists {
		return fmt.Errorf("tool %s registered twice", desc.Name)
	}
	r.tools[desc.Name] = &tool{desc: desc, schema: schema, run: run}
	return nil
}

// List returns the tool descriptors sorted by name.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the tool names sorted.
func (r *Registry) Names() []string {
	descs := r.List()
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	return names
}

// Call runs the named tool. The error is non-nil only for unknown tools;
// tool failures come back as a Result with IsError set.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (Result, error) {
	t, ok := r.tools[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	start := time.Now()
	out, err := r.invoke(ctx, t, args)
	elapsed := time.Since(start)

	var res Result
	if err != nil {
		res = errorResult(err)
	} else {
		res, err = textResult(out)
		if err != nil {
			res = errorResult(err)
		}
	}

	metrics.ObserveToolCall(name, elapsed, res.IsError)
	fields := map[string]any{
		"tool":        name,
		"duration_ms": elapsed.Milliseconds(),
		"is_error":    res.IsError,
	}
	if err != nil {
		fields["error"] = telemetry.Truncate(err.Error(), 300)
		telemetry.Warn("tool.call", fields)
	} else {
		telemetry.Info("tool.call", fields)
	}
	return res, nil
}

func (r *Registry) invoke(ctx context.Context, t *tool, args json.RawMessage) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	args = normalizeArgs(args)
	if err := checkSchema(t.schema, args); err != nil {
		return nil, err
	}
	return t.run(ctx, args)
}

func textResult(v any) (Result, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encode result: %w", err)
	}
	return Result{Content: []Content{{Type: "text", Text: string(body)}}}, nil
}

func errorResult(err error) Result {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return Result{Content: []Content{{Type: "text", Text: string(body)}}, IsError: true}
}
