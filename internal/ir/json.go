package ir

import (
	"encoding/json"
	"fmt"
	"io"

	"openfxc/internal/diag"
)

// Wire shapes. The JSON document is the interchange format between
// pipelines; the structured in-memory fields (ops, lanes, branch
// targets) fold back into it losslessly.

type wireModule struct {
	FormatVersion int              `json:"formatVersion"`
	Profile       string           `json:"profile,omitempty"`
	EntryPoint    *wireEntryPoint  `json:"entryPoint,omitempty"`
	Functions     []wireFunction   `json:"functions,omitempty"`
	Values        []wireValue      `json:"values,omitempty"`
	Resources     []wireResource   `json:"resources,omitempty"`
	Techniques    []wireTechnique  `json:"techniques,omitempty"`
	Diagnostics   []wireDiagnostic `json:"diagnostics,omitempty"`
}

type wireEntryPoint struct {
	Function string `json:"function"`
	Stage    string `json:"stage,omitempty"`
}

type wireFunction struct {
	Name       string      `json:"name"`
	ReturnType string      `json:"returnType,omitempty"`
	Parameters []ValueID   `json:"parameters,omitempty"`
	Blocks     []wireBlock `json:"blocks,omitempty"`
}

type wireBlock struct {
	ID           string      `json:"id"`
	Instructions []wireInstr `json:"instructions,omitempty"`
}

type wireInstr struct {
	Op         string    `json:"op"`
	Operands   []ValueID `json:"operands,omitempty"`
	Result     ValueID   `json:"result,omitempty"`
	Type       string    `json:"type,omitempty"`
	Terminator bool      `json:"terminator,omitempty"`
	Tag        string    `json:"tag,omitempty"`
}

type wireValue struct {
	ID       ValueID `json:"id"`
	Type     string  `json:"type"`
	Kind     string  `json:"kind,omitempty"`
	Name     string  `json:"name,omitempty"`
	Semantic string  `json:"semantic,omitempty"`
}

type wireResource struct {
	Name     string `json:"name"`
	Kind     string `json:"kind,omitempty"`
	Type     string `json:"type,omitempty"`
	Writable bool   `json:"writable,omitempty"`
}

type wireTechnique struct {
	Name   string     `json:"name"`
	Passes []wirePass `json:"passes,omitempty"`
}

type wirePass struct {
	Name    string                `json:"name"`
	Shaders []wireShaderBinding   `json:"shaders,omitempty"`
	States  []wireStateAssignment `json:"states,omitempty"`
}

type wireShaderBinding struct {
	Stage   string `json:"stage,omitempty"`
	Profile string `json:"profile,omitempty"`
	Entry   string `json:"entry"`
}

type wireStateAssignment struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type wireDiagnostic struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Stage    string `json:"stage"`
	Code     string `json:"code,omitempty"`
}

// EncodeModule writes the module as an indented JSON document.
func EncodeModule(w io.Writer, m *Module) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(m)); err != nil {
		return fmt.Errorf("encoding module: %w", err)
	}
	return nil
}

// DecodeModule reads a module document. A failure here is the only
// fatal condition the pipelines know: the caller aborts instead of
// diagnosing.
func DecodeModule(r io.Reader) (*Module, error) {
	var wm wireModule
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wm); err != nil {
		return nil, fmt.Errorf("parsing module document: %w", err)
	}
	return fromWire(&wm), nil
}

func toWire(m *Module) *wireModule {
	wm := &wireModule{
		FormatVersion: m.FormatVersion,
		Profile:       m.Profile,
	}
	if m.Entry != nil {
		wm.EntryPoint = &wireEntryPoint{Function: m.Entry.Function, Stage: string(m.Entry.Stage)}
	}
	for _, f := range m.Functions {
		wf := wireFunction{Name: f.Name, ReturnType: f.ReturnType, Parameters: f.Params}
		for _, b := range f.Blocks {
			wb := wireBlock{ID: b.ID}
			for _, in := range b.Instrs {
				wb.Instructions = append(wb.Instructions, wireInstr{
					Op:         in.OpName(),
					Operands:   in.Operands,
					Result:     in.Result,
					Type:       in.Type,
					Terminator: in.Terminator(),
					Tag:        in.Tag(),
				})
			}
			wf.Blocks = append(wf.Blocks, wb)
		}
		wm.Functions = append(wm.Functions, wf)
	}
	for _, v := range m.Values {
		wm.Values = append(wm.Values, wireValue{
			ID: v.ID, Type: v.Type, Kind: string(v.Kind), Name: v.Name, Semantic: v.Semantic,
		})
	}
	for _, r := range m.Resources {
		wm.Resources = append(wm.Resources, wireResource{
			Name: r.Name, Kind: string(r.Kind), Type: r.Type, Writable: r.Writable,
		})
	}
	for _, t := range m.Techniques {
		wt := wireTechnique{Name: t.Name}
		for _, p := range t.Passes {
			wp := wirePass{Name: p.Name}
			for _, s := range p.Shaders {
				wp.Shaders = append(wp.Shaders, wireShaderBinding{
					Stage: string(s.Stage), Profile: s.Profile, Entry: s.Entry,
				})
			}
			for _, s := range p.States {
				wp.States = append(wp.States, wireStateAssignment{Name: s.Name, Value: s.Value})
			}
			wt.Passes = append(wt.Passes, wp)
		}
		wm.Techniques = append(wm.Techniques, wt)
	}
	for _, d := range m.Diagnostics {
		wm.Diagnostics = append(wm.Diagnostics, wireDiagnostic{
			Message:  d.Message,
			Severity: d.Severity.String(),
			Stage:    d.Stage.String(),
			Code:     d.Code.ID(),
		})
	}
	return wm
}

func fromWire(wm *wireModule) *Module {
	m := &Module{
		FormatVersion: wm.FormatVersion,
		Profile:       wm.Profile,
	}
	if wm.EntryPoint != nil {
		m.Entry = &EntryPoint{
			Function: wm.EntryPoint.Function,
			Stage:    ShaderStage(wm.EntryPoint.Stage),
		}
	}
	for _, wf := range wm.Functions {
		f := &Function{Name: wf.Name, ReturnType: wf.ReturnType, Params: wf.Parameters}
		for _, wb := range wf.Blocks {
			b := &Block{ID: wb.ID}
			for _, wi := range wb.Instructions {
				in := &Instr{
					Operands: wi.Operands,
					Result:   wi.Result,
					Type:     wi.Type,
				}
				if op, ok := ParseOp(wi.Op); ok {
					in.Op = op
				} else {
					in.Op = OpInvalid
					in.RawOp = wi.Op
					in.rawTerm = wi.Terminator
				}
				in.SetTag(wi.Tag)
				b.Instrs = append(b.Instrs, in)
			}
			f.Blocks = append(f.Blocks, b)
		}
		m.Functions = append(m.Functions, f)
	}
	for _, wv := range wm.Values {
		m.Values = append(m.Values, &Value{
			ID: wv.ID, Type: wv.Type, Kind: ValueKind(wv.Kind), Name: wv.Name, Semantic: wv.Semantic,
		})
	}
	for _, wr := range wm.Resources {
		m.Resources = append(m.Resources, &Resource{
			Name: wr.Name, Kind: ValueKind(wr.Kind), Type: wr.Type, Writable: wr.Writable,
		})
	}
	for _, wt := range wm.Techniques {
		t := &Technique{Name: wt.Name}
		for _, wp := range wt.Passes {
			p := &Pass{Name: wp.Name}
			for _, ws := range wp.Shaders {
				p.Shaders = append(p.Shaders, &ShaderBinding{
					Stage: ShaderStage(ws.Stage), Profile: ws.Profile, Entry: ws.Entry,
				})
			}
			for _, ws := range wp.States {
				p.States = append(p.States, &StateAssignment{Name: ws.Name, Value: ws.Value})
			}
			t.Passes = append(t.Passes, p)
		}
		m.Techniques = append(m.Techniques, t)
	}
	for _, wd := range wm.Diagnostics {
		m.Diagnostics = append(m.Diagnostics, diag.Diagnostic{
			Message:  wd.Message,
			Severity: diag.ParseSeverity(wd.Severity),
			Stage:    diag.ParseStage(wd.Stage),
			Code:     diag.ParseCode(wd.Code),
		})
	}
	return m
}
