package bc

import (
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/geometry"
)

// LoadScalar builds a Registry[float64-backed T] for a named scalar field
// (e.g. "p") from the case's per-patch blocks. Each mesh patch is expected
// to have a block named after it (the grammar has no nested sub-blocks, so
// a patch's conditions for every field live side by side as
// "<field>_type"/"<field>_value" keys in that one flat block), falling back
// to KindForPatch's name-based default when the patch block or the field's
// keys are absent.
func LoadScalar(ctx *config.Context, mesh *geometry.Mesh, fieldName string) *Registry[float64] {
	reg := NewRegistry[float64]()
	for _, p := range mesh.Patches {
		b := ctx.Block(p.Name)
		kind := KindForPatch(p.Name)
		if b.Has(fieldName + "_type") {
			if k, ok := ParseKind(b.String(fieldName+"_type", "")); ok {
				kind = k
			}
		}
		c := &Condition[float64]{Patch: p.Name, Kind: kind, FaceStart: p.Start, FaceEnd: p.End}
		switch kind {
		case Neumann, Robin:
			c.Gradient = b.Float(fieldName+"_value", 0)
		default:
			c.Value = b.Float(fieldName+"_value", 0)
		}
		if kind == Robin {
			c.RobinCoeff = b.Float(fieldName+"_robin_coeff", 0.5)
		}
		if kind == Cyclic {
			c.Pair = b.String(fieldName+"_pair", "")
		}
		reg.Add(c)
	}
	return reg
}

// LoadVector3 is LoadScalar's counterpart for a 3-component field (e.g.
// "U"), returning the raw [3]float64 value/gradient per patch; callers
// convert to their own Vector type (field.Vector for the core, Vec3 for
// pure geometry consumers) since bc intentionally stays independent of
// field's generic element types.
func LoadVector3(ctx *config.Context, mesh *geometry.Mesh, fieldName string) *Registry[[3]float64] {
	reg := NewRegistry[[3]float64]()
	for _, p := range mesh.Patches {
		b := ctx.Block(p.Name)
		kind := KindForPatch(p.Name)
		if b.Has(fieldName + "_type") {
			if k, ok := ParseKind(b.String(fieldName+"_type", "")); ok {
				kind = k
			}
		}
		c := &Condition[[3]float64]{Patch: p.Name, Kind: kind, FaceStart: p.Start, FaceEnd: p.End}
		def := [3]float64{0, 0, 0}
		v := b.Vec3(fieldName+"_value", def)
		switch kind {
		case Neumann, Robin:
			c.Gradient = v
		default:
			c.Value = v
		}
		if kind == Robin {
			c.RobinCoeff = b.Float(fieldName+"_robin_coeff", 0.5)
		}
		if kind == Cyclic {
			c.Pair = b.String(fieldName+"_pair", "")
		}
		reg.Add(c)
	}
	return reg
}
