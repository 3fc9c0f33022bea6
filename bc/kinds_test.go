package bc

import "testing"

func TestParseKind_SynonymsAndCase(t *testing.T) {
	cases := map[string]Kind{
		"Dirichlet":    Dirichlet,
		"FIXEDVALUE":   Dirichlet,
		"neumann":      Neumann,
		"fixedGradient": Neumann,
		"Robin":        Robin,
		"symmetryPlane": Symmetry,
		"periodic":     Cyclic,
		"NoSlip":       Wall,
	}
	for s, want := range cases {
		got, ok := ParseKind(s)
		if !ok {
			t.Fatalf("ParseKind(%q): expected a match", s)
		}
		if got != want {
			t.Errorf("ParseKind(%q) = %v, want %v", s, got, want)
		}
	}
	if _, ok := ParseKind("nonsense"); ok {
		t.Error("ParseKind(\"nonsense\") should not match")
	}
}

func TestKindForPatch_WallNameDefault(t *testing.T) {
	if got := KindForPatch("topWall"); got != Wall {
		t.Errorf("KindForPatch(topWall) = %v, want Wall", got)
	}
	if got := KindForPatch("inlet"); got != Dirichlet {
		t.Errorf("KindForPatch(inlet) = %v, want Dirichlet", got)
	}
}

func TestRegistry_ResolveUnregisteredPatchErrors(t *testing.T) {
	r := NewRegistry[float64]()
	r.Add(&Condition[float64]{Patch: "inlet", Kind: Dirichlet, Value: 1})
	if _, err := r.Resolve("inlet"); err != nil {
		t.Errorf("Resolve(inlet): unexpected error %v", err)
	}
	if _, err := r.Resolve("outlet"); err == nil {
		t.Error("Resolve(outlet): expected an error for an unregistered patch")
	}
}
