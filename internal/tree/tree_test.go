package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/exostack/internal/tensor"
)

func body(period, radius float64) *Node {
	return Record(
		Field{Key: "period", Value: Scalar(period)},
		Field{Key: "radius", Value: Scalar(radius)},
	)
}

func TestFlattenOrder(t *testing.T) {
	n := List(
		Scalar(1),
		Record(
			Field{Key: "a", Value: Scalar(2)},
			Field{Key: "b", Value: List(Scalar(3), Scalar(4))},
		),
	)

	leaves, s := Flatten(n)

	if s.NumLeaves() != 4 {
		t.Fatalf("expected 4 leaves, got %d", s.NumLeaves())
	}

	got := make([]float64, len(leaves))
	for i, l := range leaves {
		v, err := l.Float()
		if err != nil {
			t.Fatalf("leaf %d: %v", i, err)
		}
		got[i] = v
	}
	if diff := cmp.Diff([]float64{1, 2, 3, 4}, got); diff != "" {
		t.Errorf("depth-first leaf order (-want +got):\n%s", diff)
	}
}

func TestUnflattenRoundTrip(t *testing.T) {
	n := Record(
		Field{Key: "pos", Value: List(Scalar(1), Scalar(2))},
		Field{Key: "vel", Value: Leaf(tensor.Vector(3, 4, 5))},
	)

	leaves, s := Flatten(n)
	back, err := s.Unflatten(leaves)
	if err != nil {
		t.Fatalf("Unflatten: %v", err)
	}

	if !StructureOf(back).Equal(s) {
		t.Error("round trip changed structure")
	}
	vel, ok := back.Get("vel")
	if !ok {
		t.Fatal("vel field missing after round trip")
	}
	if !vel.Array().Equal(tensor.Vector(3, 4, 5)) {
		t.Errorf("vel leaf changed: %v", vel.Array())
	}
}

func TestUnflattenLeafCount(t *testing.T) {
	_, s := Flatten(body(1, 2))

	if _, err := s.Unflatten([]*tensor.Array{tensor.Scalar(1)}); !errors.Is(err, ErrLeafCount) {
		t.Errorf("expected ErrLeafCount, got %v", err)
	}
}

func TestStructureEquality(t *testing.T) {
	a := body(1.0, 0.1)
	b := body(365.25, 0.00916)

	if !StructureOf(a).Equal(StructureOf(b)) {
		t.Error("same layout with different values should match")
	}
}

func TestStructureValueIndependence(t *testing.T) {
	// Leaf shapes are not part of structure, only the composite layout.
	a := Record(Field{Key: "r", Value: Scalar(1)})
	b := Record(Field{Key: "r", Value: Leaf(tensor.Vector(1, 2, 3))})

	if !StructureOf(a).Equal(StructureOf(b)) {
		t.Error("leaf shape should not affect structure")
	}
}

func TestStructureFieldOrderSignificant(t *testing.T) {
	a := Record(
		Field{Key: "period", Value: Scalar(1)},
		Field{Key: "radius", Value: Scalar(2)},
	)
	b := Record(
		Field{Key: "radius", Value: Scalar(2)},
		Field{Key: "period", Value: Scalar(1)},
	)

	if StructureOf(a).Equal(StructureOf(b)) {
		t.Error("field order should be part of structure")
	}
}

func TestStructureMismatch(t *testing.T) {
	a := body(1, 2)
	extra := Record(
		Field{Key: "period", Value: Scalar(1)},
		Field{Key: "radius", Value: Scalar(2)},
		Field{Key: "mass", Value: Scalar(3)},
	)

	if StructureOf(a).Equal(StructureOf(extra)) {
		t.Error("records with different fields should not match")
	}
	if StructureOf(a).Equal(StructureOf(List(Scalar(1), Scalar(2)))) {
		t.Error("record and list should not match")
	}
}

func TestStructurePunctuationInKeys(t *testing.T) {
	// A key spelled with descriptor punctuation must not make one
	// leaf look like two.
	a := Record(Field{Key: "a:*,b", Value: Scalar(1)})
	b := Record(
		Field{Key: "a", Value: Scalar(1)},
		Field{Key: "b", Value: Scalar(2)},
	)

	if StructureOf(a).Equal(StructureOf(b)) {
		t.Error("one hostile-keyed leaf should not match two plain leaves")
	}
	if StructureOf(b).Equal(StructureOf(a)) {
		t.Error("equality should fail in both directions")
	}
	if !StructureOf(a).Equal(StructureOf(Record(Field{Key: "a:*,b", Value: Scalar(9)}))) {
		t.Error("identical hostile keys should still match")
	}
}

func TestMapPreservesStructure(t *testing.T) {
	n := body(2, 3)

	doubled, err := Map(n, func(a *tensor.Array) (*tensor.Array, error) {
		return a.Scale(2), nil
	})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	if !StructureOf(doubled).Equal(StructureOf(n)) {
		t.Error("Map changed structure")
	}
	p, _ := doubled.Get("period")
	if v, _ := p.Float(); v != 4 {
		t.Errorf("expected period 4, got %f", v)
	}
}
