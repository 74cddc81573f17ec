package ir

import "testing"

func TestParseTypeScalarVectorMatrix(t *testing.T) {
	tests := []struct {
		in     string
		class  TypeClass
		scalar ScalarKind
		comps  int
	}{
		{"float", ClassScalar, ScalarFloat, 1},
		{"half", ClassScalar, ScalarHalf, 1},
		{"bool", ClassScalar, ScalarBool, 1},
		{"float3", ClassVector, ScalarFloat, 3},
		{"uint2", ClassVector, ScalarUint, 2},
		{"float4x4", ClassMatrix, ScalarFloat, 16},
		{"double3x1", ClassMatrix, ScalarDouble, 3},
	}
	for _, tt := range tests {
		ti := ParseType(tt.in)
		if ti.Class != tt.class {
			t.Errorf("ParseType(%q).Class = %v, want %v", tt.in, ti.Class, tt.class)
		}
		if ti.Scalar != tt.scalar {
			t.Errorf("ParseType(%q).Scalar = %v, want %v", tt.in, ti.Scalar, tt.scalar)
		}
		if got := ti.Components(); got != tt.comps {
			t.Errorf("ParseType(%q).Components() = %d, want %d", tt.in, got, tt.comps)
		}
	}
}

func TestParseTypeResources(t *testing.T) {
	for _, in := range []string{
		"Texture2D<float4>",
		"Texture2D",
		"TextureCube",
		"SamplerState",
		"StructuredBuffer<Light>",
		"RWTexture2D<float4>",
		"Buffer",
		"cbuffer",
		"ConstantBuffer<Frame>",
	} {
		if ti := ParseType(in); ti.Class != ClassResource {
			t.Errorf("ParseType(%q).Class = %v, want ClassResource", in, ti.Class)
		}
	}
}

func TestParseTypeFallbacks(t *testing.T) {
	if ti := ParseType("LightData"); ti.Class != ClassNamed {
		t.Errorf("named struct should classify as ClassNamed, got %v", ti.Class)
	}
	if ti := ParseType("void"); ti.Class != ClassVoid {
		t.Errorf("void should classify as ClassVoid, got %v", ti.Class)
	}
	if ti := ParseType("unknown"); ti.Class != ClassUnknown {
		t.Errorf("unknown should classify as ClassUnknown, got %v", ti.Class)
	}
}

func TestWithComponents(t *testing.T) {
	ti := ParseType("float4")
	if got := ti.WithComponents(2); got != "float2" {
		t.Errorf("WithComponents(2) = %q, want float2", got)
	}
	if got := ti.WithComponents(1); got != "float" {
		t.Errorf("WithComponents(1) = %q, want float", got)
	}
}

func TestLaneCount(t *testing.T) {
	if n := ParseType("float").LaneCount(); n != 1 {
		t.Errorf("float lane count = %d, want 1", n)
	}
	if n := ParseType("float3").LaneCount(); n != 3 {
		t.Errorf("float3 lane count = %d, want 3", n)
	}
	if n := ParseType("float4x4").LaneCount(); n != 4 {
		t.Errorf("matrix lane count = %d, want 4 (fully live)", n)
	}
}
