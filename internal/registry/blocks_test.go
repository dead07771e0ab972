package registry

import "testing"

func TestStockPalette(t *testing.T) {
	for _, name := range []string{"crate", "slab", "beam", "pillar"} {
		def, ok := Get(name)
		if !ok {
			t.Fatalf("stock block %q missing from catalogue", name)
		}
		if def.Mass <= 0 {
			t.Errorf("%q: dynamic blocks need positive mass, got %v", name, def.Mass)
		}
		for axis := 0; axis < 3; axis++ {
			if def.HalfExtents[axis] <= 0 {
				t.Errorf("%q: half extents must be strictly positive, got %v", name, def.HalfExtents)
			}
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, ok := Get("bedrock"); ok {
		t.Error("unknown block name must not resolve")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) < 4 {
		t.Fatalf("expected at least the stock palette, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names must be sorted and unique, got %v", names)
		}
	}
}

func TestRegisterReplaces(t *testing.T) {
	Register(&BlockDefinition{Name: "test-brick", Mass: 1})
	Register(&BlockDefinition{Name: "test-brick", Mass: 2})
	def, ok := Get("test-brick")
	if !ok || def.Mass != 2 {
		t.Errorf("re-registering must replace the definition, got %+v", def)
	}
}
