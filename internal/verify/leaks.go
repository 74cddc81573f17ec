package verify

import (
	"strings"

	"openfxc/internal/diag"
)

// Back-end vocabulary the IR must never carry. Matching is whole-word
// and case-insensitive; camel-case boundaries count as word breaks so
// "DxilSample" is caught while "metallic" is not.
var backendTokens = map[string]bool{
	"dxbc":  true,
	"dxil":  true,
	"spirv": true,
	"d3d":   true,
	"glsl":  true,
	"metal": true,
}

func (v *validator) checkLeaks() {
	m := v.module
	v.scanField("module profile", m.Profile)
	if m.Entry != nil {
		v.scanField("entry point function", m.Entry.Function)
		v.scanField("entry point stage", string(m.Entry.Stage))
	}
	for _, val := range m.Values {
		v.scanField("value type", val.Type)
		v.scanField("value name", val.Name)
	}
	for _, r := range m.Resources {
		v.scanField("resource name", r.Name)
		v.scanField("resource kind", string(r.Kind))
		v.scanField("resource type", r.Type)
	}
	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			for _, in := range b.Instrs {
				v.scanField("op name", in.OpName())
				v.scanField("instruction tag", in.Tag())
				v.scanField("instruction type", in.Type)
			}
		}
	}
	for _, t := range m.Techniques {
		v.scanField("technique name", t.Name)
		for _, p := range t.Passes {
			v.scanField("pass name", p.Name)
			for _, s := range p.Shaders {
				v.scanField("shader profile", s.Profile)
				v.scanField("shader entry", s.Entry)
			}
			for _, s := range p.States {
				v.scanField("state name", s.Name)
				v.scanField("state value", s.Value)
			}
		}
	}
}

func (v *validator) scanField(where, text string) {
	if text == "" {
		return
	}
	for _, word := range splitWords(text) {
		if backendTokens[strings.ToLower(word)] {
			v.errorf(diag.InvBackendLeak,
				"backend token %q leaked into %s %q", word, where, text)
			return
		}
	}
}

// splitWords breaks a field into candidate words: non-alphanumeric
// characters separate words, as does a lower-to-upper case boundary and
// the end of an uppercase acronym run.
func splitWords(s string) []string {
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, s[start:end])
		}
		start = -1
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		alnum := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
		if !alnum {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := s[i-1]
		lowerToUpper := isLower(prev) && isUpper(c)
		acronymEnd := i+1 < len(s) && isUpper(prev) && isUpper(c) && isLower(s[i+1])
		if lowerToUpper || acronymEnd {
			flush(i)
			start = i
		}
	}
	flush(len(s))
	return words
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
