// Package lower translates a semantic-model document into the IR.
// Lowering never aborts: everything it cannot translate becomes a
// diagnostic and the best-effort module is returned.
package lower

import (
	"strings"

	"openfxc/internal/diag"
	"openfxc/internal/ir"
	"openfxc/internal/sem"
)

// Request carries the semantic model plus the optional CLI overrides.
type Request struct {
	Model   *sem.Model
	Profile string // overrides the model's profile when non-empty
	Entry   string // overrides entry selection when non-empty
}

// Result is the lowered module plus the diagnostics produced while
// building it. The module also carries the diagnostics; the slice here
// exists so callers can merge without re-reading the module.
type Result struct {
	Module      *ir.Module
	Diagnostics []diag.Diagnostic
}

// Lower runs the full lowering pipeline over one entry point.
func Lower(req Request) Result {
	model := req.Model
	if model == nil {
		model = &sem.Model{}
	}

	profile := req.Profile
	if profile == "" {
		profile = model.Profile
	}
	if profile == "" {
		profile = "unknown"
	}

	l := &lowerer{
		idx:       sem.NewIndex(model),
		module:    ir.NewModule(profile),
		bag:       diag.NewBag(),
		symValues: make(map[int32]ir.ValueID),
	}
	l.alloc = ir.NewValueAllocator(l.module)

	entry, entrySym := l.resolveEntry(req.Entry)
	l.lowerResources()
	if entry != nil {
		l.module.Entry = &ir.EntryPoint{
			Function: entry.Name,
			Stage:    ir.NormalizeStage(entry.Stage),
		}
	}
	if entrySym != nil {
		params := l.lowerParameters(entrySym)
		l.lowerFunction(entry, entrySym, params)
	}
	l.forwardTechniques()

	l.module.AddDiagnostics(l.bag.Items())
	return Result{Module: l.module, Diagnostics: l.bag.Items()}
}

type lowerer struct {
	idx       *sem.Index
	module    *ir.Module
	alloc     *ir.ValueAllocator
	bag       *diag.Bag
	symValues map[int32]ir.ValueID

	fn       *ir.Function
	cur      *ir.Block
	labelSeq int
}

func (l *lowerer) errorf(code diag.Code, format string, args ...any) {
	l.bag.Addf(diag.SevError, diag.StageLower, code, format, args...)
}

// resolveEntry picks the entry point (override wins, case-insensitive)
// and its backing symbol. Both failures are diagnostics, not aborts.
func (l *lowerer) resolveEntry(override string) (*sem.EntryPoint, *sem.Symbol) {
	entries := l.idx.Model.EntryPoints
	var entry *sem.EntryPoint
	if override != "" {
		for i := range entries {
			if strings.EqualFold(entries[i].Name, override) {
				entry = &entries[i]
				break
			}
		}
		if entry == nil {
			l.errorf(diag.LowNoEntryPoint, "entry point %q not found in semantic model", override)
			return nil, nil
		}
	} else if len(entries) > 0 {
		entry = &entries[0]
	}
	if entry == nil {
		l.errorf(diag.LowNoEntryPoint, "semantic model declares no entry points")
		return nil, nil
	}

	sym := l.idx.Symbol(entry.SymbolID)
	if sym == nil {
		l.errorf(diag.LowNoEntrySymbol, "entry point %q has no backing symbol", entry.Name)
		return entry, nil
	}
	return entry, sym
}

// lowerResources emits an IrResource plus a value for every global
// declaration the semantic model carries.
func (l *lowerer) lowerResources() {
	for i := range l.idx.Model.Symbols {
		sym := &l.idx.Model.Symbols[i]
		kind := ir.ValueKind(sym.Kind)
		if !kind.IsResourceLike() {
			continue
		}
		l.module.Resources = append(l.module.Resources, &ir.Resource{
			Name:     sym.Name,
			Kind:     kind,
			Type:     sym.Type,
			Writable: strings.HasPrefix(sym.Type, "RW"),
		})
		l.bindSymbolValue(sym, kind)
	}
}

// lowerParameters emits a Parameter value for every parameter symbol of
// the entry function, in declaration order.
func (l *lowerer) lowerParameters(entrySym *sem.Symbol) []ir.ValueID {
	var params []ir.ValueID
	for i := range l.idx.Model.Symbols {
		sym := &l.idx.Model.Symbols[i]
		if sym.Kind != sem.SymParameter || sym.ParentSymbolID != entrySym.ID {
			continue
		}
		v := l.bindSymbolValue(sym, ir.ValueParameter)
		v.Semantic = sym.FormatSemantic()
		params = append(params, v.ID)
	}
	return params
}

// bindSymbolValue materializes the value backing a symbol, reusing the
// symbol id when it is positive and free.
func (l *lowerer) bindSymbolValue(sym *sem.Symbol, kind ir.ValueKind) *ir.Value {
	if id, ok := l.symValues[sym.ID]; ok {
		return l.module.Value(id)
	}
	id := ir.ValueID(sym.ID)
	if !l.alloc.Reserve(id) {
		id = l.alloc.Next()
	}
	typ := sym.Type
	if typ == "" {
		typ = "unknown"
	}
	v := l.module.AddValue(&ir.Value{ID: id, Type: typ, Kind: kind, Name: sym.Name})
	l.symValues[sym.ID] = id
	return v
}

// lowerFunction builds the entry function body.
func (l *lowerer) lowerFunction(entry *sem.EntryPoint, entrySym *sem.Symbol, params []ir.ValueID) {
	returnType := entrySym.Type
	if returnType == "" {
		returnType = "unknown"
	}
	l.fn = &ir.Function{Name: entry.Name, ReturnType: returnType, Params: params}
	l.module.Functions = append(l.module.Functions, l.fn)
	l.startBlock("entry")

	if body := l.functionBody(entrySym); body != nil {
		l.lowerStatementList(body)
	} else {
		l.errorf(diag.LowUnsupportedConstruct,
			"entry point %q has no declaration body", entry.Name)
	}

	l.finalize(params)
	l.pruneUnreachable()
}

// functionBody resolves the statement-carrying node of the entry's
// declaration.
func (l *lowerer) functionBody(entrySym *sem.Symbol) *sem.Node {
	decl := l.idx.Node(entrySym.DeclNodeID)
	if decl == nil {
		return nil
	}
	if decl.Kind == sem.KindFunctionDecl {
		if bodyID, ok := decl.Child(sem.RoleBody); ok {
			return l.idx.Node(bodyID)
		}
		return nil
	}
	return decl
}

// finalize guarantees the function's last open block terminates: a
// Return of the first parameter, or of an Undef of the return type.
func (l *lowerer) finalize(params []ir.ValueID) {
	if l.cur.Terminated() {
		return
	}
	ret := &ir.Instr{Op: ir.OpReturn}
	switch {
	case len(params) > 0:
		ret.Operands = []ir.ValueID{params[0]}
	case l.fn.ReturnType != "void":
		ret.Operands = []ir.ValueID{l.undefValue(l.fn.ReturnType)}
	}
	l.emit(ret)
}

// pruneUnreachable drops blocks the entry block cannot reach. Lowering
// creates merge blocks unconditionally; when every arm of a construct
// returned, the merge has no predecessor and must not survive.
func (l *lowerer) pruneUnreachable() {
	reached := map[string]bool{l.fn.Blocks[0].ID: true}
	work := []string{l.fn.Blocks[0].ID}
	for len(work) > 0 {
		b := l.fn.Block(work[0])
		work = work[1:]
		if b == nil {
			continue
		}
		if term := b.Term(); term != nil && term.Targets != nil {
			for _, next := range []string{term.Targets.Then, term.Targets.Else} {
				if next != "" && !reached[next] {
					reached[next] = true
					work = append(work, next)
				}
			}
		}
	}
	kept := l.fn.Blocks[:0]
	for _, b := range l.fn.Blocks {
		if reached[b.ID] {
			kept = append(kept, b)
		}
	}
	l.fn.Blocks = kept
}

func (l *lowerer) forwardTechniques() {
	for i := range l.idx.Model.Techniques {
		t := &l.idx.Model.Techniques[i]
		out := &ir.Technique{Name: t.Name}
		for j := range t.Passes {
			p := &t.Passes[j]
			np := &ir.Pass{Name: p.Name}
			for k := range p.Shaders {
				s := &p.Shaders[k]
				np.Shaders = append(np.Shaders, &ir.ShaderBinding{
					Stage:   ir.NormalizeStage(s.Stage),
					Profile: s.Profile,
					Entry:   s.Entry,
				})
			}
			for k := range p.States {
				s := &p.States[k]
				np.States = append(np.States, &ir.StateAssignment{Name: s.Name, Value: s.Value})
			}
			out.Passes = append(out.Passes, np)
		}
		l.module.Techniques = append(l.module.Techniques, out)
	}
}
