package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/block"
	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/specialistvlad/simforge/internal/syntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// GlobalParamsBlock is the reserved top-level block whose parameters every
// other block inherits.
const GlobalParamsBlock = "GlobalParams"

// Parser resolves a block tree into actions and adds them to a Warehouse.
type Parser struct {
	reg *registry.Registry
	wh  *action.Warehouse

	globals    []params.RawValue
	globalUsed map[string]bool
	unused     []Finding
	overridden []Finding
	parsed     bool
}

// New creates a parser over a populated registry.
func New(reg *registry.Registry, wh *action.Warehouse) *Parser {
	return &Parser{reg: reg, wh: wh}
}

// Parse walks root and adds one action per resolved association to the
// warehouse. All failures are returned together as BindErrors.
func (p *Parser) Parse(ctx context.Context, root *block.Block) error {
	logger := ctxlog.FromContext(ctx)
	if p.parsed {
		return fmt.Errorf("parser has already consumed an input tree")
	}
	p.parsed = true

	var errs BindErrors
	seen := make(map[string]bool)
	report := func(err error) {
		if seen[err.Error()] {
			return
		}
		seen[err.Error()] = true
		errs = append(errs, err)
	}

	p.globalUsed = make(map[string]bool)
	var ignoredGlobals []Finding
	if g := root.Child(GlobalParamsBlock); g != nil {
		for _, prm := range g.Params {
			if prm.Name == params.TypeParam {
				ignoredGlobals = append(ignoredGlobals, Finding{Block: GlobalParamsBlock, Param: prm.Name, Source: prm.Source})
				continue
			}
			p.globals = append(p.globals, params.RawValue{Name: prm.Name, Value: prm.Value, Source: prm.Source})
		}
		for _, child := range g.Children {
			report(fmt.Errorf("block %q (%s): nested blocks are not allowed inside %s", child.Path.String(), child.Source, GlobalParamsBlock))
		}
		logger.Debug("Loaded global parameters.", "count", len(p.globals))
	}

	_ = root.Walk(func(b *block.Block) error {
		if len(b.Path) > 0 && b.Path[0] == GlobalParamsBlock {
			return nil
		}
		for _, err := range p.visit(ctx, b) {
			report(err)
		}
		return nil
	})

	p.unused = append(p.unused, ignoredGlobals...)
	for _, g := range p.globals {
		if !p.globalUsed[g.Name] {
			p.unused = append(p.unused, Finding{Block: GlobalParamsBlock, Param: g.Name, Source: g.Source})
		}
	}

	logger.Debug("Input parsed.",
		"actions", len(p.wh.Actions()),
		"errors", len(errs),
		"unused", len(p.unused),
		"overridden", len(p.overridden),
	)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (p *Parser) visit(ctx context.Context, b *block.Block) []error {
	logger := ctxlog.FromContext(ctx)
	path := b.Path.String()

	var entries []syntax.Entry
	if !b.Path.IsRoot() {
		entries = p.reg.Syntax.Resolve(b.Path)
	}
	if len(entries) == 0 {
		for _, prm := range b.Params {
			p.unused = append(p.unused, Finding{Block: path, Param: prm.Name, Source: prm.Source})
		}
		if len(b.Params) == 0 && len(b.Children) == 0 && !b.Path.IsRoot() {
			p.unused = append(p.unused, Finding{Block: path, Source: b.Source})
		}
		return nil
	}

	// A block's own value replaces the inherited one before binding, so only
	// the winning value is type checked.
	raw := make([]params.RawValue, 0, len(p.globals)+len(b.Params))
	inherited := make(map[string]bool, len(p.globals))
	for _, g := range p.globals {
		if _, own := b.Param(g.Name); own {
			inherited[g.Name] = true
			continue
		}
		raw = append(raw, g)
	}
	for _, prm := range b.Params {
		raw = append(raw, params.RawValue{
			Name:       prm.Name,
			Value:      prm.Value,
			Source:     prm.Source,
			Overridden: prm.Overridden || inherited[prm.Name],
		})
	}

	var errs []error
	used := make(map[string]bool)
	overridden := make(map[string]bool)
	noteOverrides := func(set *params.Set) {
		for _, name := range set.Overridden() {
			if overridden[name] {
				continue
			}
			overridden[name] = true
			e, _ := set.Entry(name)
			p.overridden = append(p.overridden, Finding{Block: path, Param: name, Source: e.Source})
		}
	}

	for _, entry := range entries {
		aSchema, err := p.reg.Actions.Schema(entry.Action)
		if err != nil {
			errs = append(errs, fmt.Errorf("block %q: %w", path, err))
			continue
		}
		markUsed(used, aSchema)
		aSet, bindErrs := params.Bind(path, aSchema, raw)
		errs = append(errs, bindErrs...)
		failed := len(bindErrs) > 0

		spec := action.Spec{Name: entry.Action, Block: b.Path, Source: b.Source}
		if entry.IsObject {
			used[params.TypeParam] = true
			typeName, err := objectType(b, entry)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			oSchema, err := p.reg.Objects.Schema(typeName)
			if err != nil {
				errs = append(errs, fmt.Errorf("block %q: %w", path, err))
				continue
			}
			markUsed(used, oSchema)
			oSet, bindErrs := params.Bind(path, oSchema, raw)
			errs = append(errs, bindErrs...)
			failed = failed || len(bindErrs) > 0
			spec.ObjectType = typeName
			spec.ObjectParams = oSet
			noteOverrides(oSet)
		}
		noteOverrides(aSet)
		if failed {
			continue
		}

		a, err := p.reg.Actions.Build(entry.Action, spec, aSet)
		if err != nil {
			errs = append(errs, fmt.Errorf("block %q: building action %q: %w", path, entry.Action, err))
			continue
		}
		if err := p.wh.Add(a); err != nil {
			errs = append(errs, fmt.Errorf("block %q: %w", path, err))
			continue
		}
		logger.Debug("Action created.", "action", action.ID(a), "object_type", spec.ObjectType)
	}

	for _, g := range p.globals {
		if used[g.Name] {
			p.globalUsed[g.Name] = true
		}
	}
	for _, prm := range b.Params {
		if !used[prm.Name] {
			p.unused = append(p.unused, Finding{Block: path, Param: prm.Name, Source: prm.Source})
		}
	}
	return errs
}

func markUsed(used map[string]bool, s *params.Schema) {
	for _, name := range s.Names() {
		used[name] = true
	}
}

// objectType returns the "type" parameter of b, falling back to the
// association's default type.
func objectType(b *block.Block, entry syntax.Entry) (string, error) {
	path := b.Path.String()
	prm, ok := b.Param(params.TypeParam)
	if !ok {
		if entry.DefaultType == "" {
			return "", &params.MissingRequiredError{Block: path, Param: params.TypeParam}
		}
		return entry.DefaultType, nil
	}
	v, err := convert.Convert(prm.Value, cty.String)
	if err != nil || v.IsNull() || !v.IsKnown() {
		if err == nil {
			err = errors.New("value is null")
		}
		return "", &params.TypeError{Block: path, Param: params.TypeParam, Want: cty.String, Source: prm.Source, Err: err}
	}
	return v.AsString(), nil
}

// Unused returns the parameters and blocks no schema consumed, in walk
// order.
func (p *Parser) Unused() []Finding {
	return append([]Finding(nil), p.unused...)
}

// Overridden returns the parameters that were assigned more than once.
func (p *Parser) Overridden() []Finding {
	return append([]Finding(nil), p.overridden...)
}

// Check applies policy to the findings of the last Parse. It is meant to
// run once the build has finished.
func (p *Parser) Check(ctx context.Context, policy Policy) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	switch policy.Unused {
	case Warn:
		for _, f := range p.unused {
			logger.Warn("Unused input.", "block", f.Block, "param", f.Param, "source", f.Source)
		}
	case Error:
		if len(p.unused) > 0 {
			errs = append(errs, &UnusedError{Findings: p.Unused()})
		}
	}

	switch policy.Overridden {
	case Warn:
		for _, f := range p.overridden {
			logger.Warn("Parameter overridden.", "block", f.Block, "param", f.Param, "source", f.Source)
		}
	case Error:
		if len(p.overridden) > 0 {
			errs = append(errs, &OverriddenError{Findings: p.Overridden()})
		}
	}

	return errors.Join(errs...)
}
