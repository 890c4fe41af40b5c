package shapes

import (
	"reflect"
	"testing"
)

func TestCatalogSamples(t *testing.T) {
	for _, e := range Catalog() {
		t.Run(e.Name, func(t *testing.T) {
			v := e.Sample()
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.Ptr || rv.Elem().Type() != e.Type {
				t.Fatalf("Sample() = %T, want *%v", v, e.Type)
			}
			if !e.Space.Valid() {
				t.Errorf("invalid space %v", e.Space)
			}
			if rv.Elem().IsZero() {
				t.Error("sample should not be the zero value")
			}
			if e.Sample() == v {
				t.Error("Sample should return a fresh value")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("beginner")
	if !ok || e.Type != reflect.TypeFor[Beginner]() {
		t.Fatalf("Lookup(beginner) = %+v, %v", e, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup should fail for unknown names")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(Catalog()) {
		t.Fatalf("got %d names, want %d", len(names), len(Catalog()))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestCatalogMutationIsolated(t *testing.T) {
	c := Catalog()
	c[0].Name = "changed"
	if Catalog()[0].Name == "changed" {
		t.Error("Catalog should return a copy")
	}
}
