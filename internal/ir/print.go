package ir

import (
	"fmt"
	"strings"
)

// Print renders a deterministic human-readable dump of the module,
// used by golden tests and the CLI's text emitter.
func Print(m *Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module profile=%s format=%d\n", m.Profile, m.FormatVersion)
	if m.Entry != nil {
		fmt.Fprintf(&b, "entry %s [%s]\n", m.Entry.Function, m.Entry.Stage)
	}
	for _, v := range m.Values {
		fmt.Fprintf(&b, "value v%d %s %s", v.ID, v.Kind, v.Type)
		if v.Name != "" {
			fmt.Fprintf(&b, " name=%s", v.Name)
		}
		if v.Semantic != "" {
			fmt.Fprintf(&b, " semantic=%s", v.Semantic)
		}
		b.WriteByte('\n')
	}
	for _, r := range m.Resources {
		fmt.Fprintf(&b, "resource %s %s %s", r.Name, r.Kind, r.Type)
		if r.Writable {
			b.WriteString(" writable")
		}
		b.WriteByte('\n')
	}
	for _, f := range m.Functions {
		printFunc(&b, f)
	}
	for _, t := range m.Techniques {
		printTechnique(&b, t)
	}
	return b.String()
}

func printFunc(b *strings.Builder, f *Function) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("v%d", p)
	}
	fmt.Fprintf(b, "func %s(%s) -> %s {\n", f.Name, strings.Join(params, ", "), f.ReturnType)
	for _, blk := range f.Blocks {
		fmt.Fprintf(b, "%s:\n", blk.ID)
		for _, in := range blk.Instrs {
			b.WriteString("  ")
			b.WriteString(FormatInstr(in))
			b.WriteByte('\n')
		}
	}
	b.WriteString("}\n")
}

// FormatInstr renders one instruction on one line.
func FormatInstr(in *Instr) string {
	var b strings.Builder
	if in.Result != NoValue {
		fmt.Fprintf(&b, "v%d = ", in.Result)
	}
	b.WriteString(in.OpName())
	for i, op := range in.Operands {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "v%d", op)
	}
	if tag := in.Tag(); tag != "" {
		fmt.Fprintf(&b, " [%s]", tag)
	}
	if in.Type != "" {
		fmt.Fprintf(&b, " : %s", in.Type)
	}
	return b.String()
}

func printTechnique(b *strings.Builder, t *Technique) {
	fmt.Fprintf(b, "technique %s {\n", t.Name)
	for _, p := range t.Passes {
		fmt.Fprintf(b, "  pass %s {\n", p.Name)
		for _, s := range p.Shaders {
			fmt.Fprintf(b, "    shader %s %s", s.Stage, s.Entry)
			if s.Profile != "" {
				fmt.Fprintf(b, " [%s]", s.Profile)
			}
			b.WriteByte('\n')
		}
		for _, s := range p.States {
			fmt.Fprintf(b, "    state %s = %s\n", s.Name, s.Value)
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")
}
