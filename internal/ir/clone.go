package ir

import "slices"

// Clone deep-copies a module. Passes are functional: they clone their
// input and rewrite the clone, so the caller's module is never mutated.
func (m *Module) Clone() *Module {
	out := &Module{
		FormatVersion: m.FormatVersion,
		Profile:       m.Profile,
		Diagnostics:   slices.Clone(m.Diagnostics),
	}
	if m.Entry != nil {
		e := *m.Entry
		out.Entry = &e
	}
	out.Functions = make([]*Function, len(m.Functions))
	for i, f := range m.Functions {
		out.Functions[i] = f.Clone()
	}
	out.Values = make([]*Value, len(m.Values))
	for i, v := range m.Values {
		c := *v
		out.Values[i] = &c
	}
	out.Resources = make([]*Resource, len(m.Resources))
	for i, r := range m.Resources {
		c := *r
		out.Resources[i] = &c
	}
	out.Techniques = make([]*Technique, len(m.Techniques))
	for i, t := range m.Techniques {
		out.Techniques[i] = t.Clone()
	}
	return out
}

// Clone deep-copies a function.
func (f *Function) Clone() *Function {
	out := &Function{
		Name:       f.Name,
		ReturnType: f.ReturnType,
		Params:     slices.Clone(f.Params),
	}
	out.Blocks = make([]*Block, len(f.Blocks))
	for i, b := range f.Blocks {
		nb := &Block{ID: b.ID, Instrs: make([]*Instr, len(b.Instrs))}
		for j, in := range b.Instrs {
			nb.Instrs[j] = in.Clone()
		}
		out.Blocks[i] = nb
	}
	return out
}

// Clone deep-copies an instruction.
func (in *Instr) Clone() *Instr {
	c := *in
	c.Operands = slices.Clone(in.Operands)
	c.Lanes = slices.Clone(in.Lanes)
	if in.Targets != nil {
		t := *in.Targets
		c.Targets = &t
	}
	return &c
}

// Clone deep-copies a technique.
func (t *Technique) Clone() *Technique {
	out := &Technique{Name: t.Name, Passes: make([]*Pass, len(t.Passes))}
	for i, p := range t.Passes {
		np := &Pass{Name: p.Name}
		np.Shaders = make([]*ShaderBinding, len(p.Shaders))
		for j, s := range p.Shaders {
			c := *s
			np.Shaders[j] = &c
		}
		np.States = make([]*StateAssignment, len(p.States))
		for j, s := range p.States {
			c := *s
			np.States[j] = &c
		}
		out.Passes[i] = np
	}
	return out
}
