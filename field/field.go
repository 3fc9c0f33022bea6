package field

import (
	"fmt"

	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/geometry"
)

// AccessMode records how a field participates in checkpoint I/O, mirroring
// the source's READ/WRITE/READWRITE/NONE access tags (§3).
type AccessMode uint8

const (
	None AccessMode = iota
	Read
	Write
	ReadWrite
)

// Field is an array of length Nc+Nb (ghost cells follow internal cells),
// carrying an access mode, a symbolic name, and boundary-condition
// descriptors keyed by patch name (§3).
type Field[T Algebraic[T]] struct {
	Name     string
	Access   AccessMode
	Mesh     *geometry.Mesh
	Internal []T

	bcs *bc.Registry[T]
}

// New allocates a field of the given name/access over mesh, zero-valued.
func New[T Algebraic[T]](name string, access AccessMode, mesh *geometry.Mesh) *Field[T] {
	n := mesh.NumCells + mesh.NumBoundaryFaces
	return &Field[T]{
		Name:     name,
		Access:   access,
		Mesh:     mesh,
		Internal: make([]T, n),
		bcs:      bc.NewRegistry[T](),
	}
}

func (f *Field[T]) SetBCs(r *bc.Registry[T]) { f.bcs = r }
func (f *Field[T]) BCs() *bc.Registry[T]     { return f.bcs }

// Ghost returns the ghost value attached to boundary face b.
func (f *Field[T]) Ghost(b int) T { return f.Internal[f.Mesh.GhostIndex(b)] }

func (f *Field[T]) SetGhost(b int, v T) { f.Internal[f.Mesh.GhostIndex(b)] = v }

// Clone returns a deep, independently-owned copy of the field (operators
// that produce "a new field" per §4.1 use this instead of aliasing).
func (f *Field[T]) Clone() *Field[T] {
	out := &Field[T]{Name: f.Name, Access: f.Access, Mesh: f.Mesh, bcs: f.bcs}
	out.Internal = append([]T(nil), f.Internal...)
	return out
}

// UpdateExplicitBCs recomputes ghost values from current internal values
// and BC state (§4.1). It must be called after any operation that mutates
// internal cells and before any expression that reads neighbors through a
// boundary face. includeTurbulenceBCs mirrors the source's second flag,
// letting turbulence-specific wall functions override a plain Dirichlet/
// Neumann evaluation; the core treats it as an opaque pass-through since
// turbulence wall functions are the turbulence collaborator's concern.
func (f *Field[T]) UpdateExplicitBCs(includeTurbulenceBCs bool) error {
	for b := 0; b < f.Mesh.NumBoundaryFaces; b++ {
		patch, err := f.Mesh.PatchOf(b)
		if err != nil {
			return err
		}
		cond, err := f.bcs.Resolve(patch.Name)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		owner := f.Mesh.BoundaryOwner[b]
		internalVal := f.Internal[owner]
		var ghost T
		switch cond.Kind {
		case bc.Dirichlet, bc.Wall:
			ghost = cond.Value
		case bc.Neumann:
			// Ghost value extrapolated from the owner cell so the
			// discrete gradient across the boundary face reproduces the
			// prescribed flux; exact distance-weighting is applied by the
			// operators that assemble matrix rows, not here.
			ghost = internalVal.Add(cond.Gradient)
		case bc.Robin:
			blended := cond.Value.Scale(cond.RobinCoeff).Add(
				internalVal.Add(cond.Gradient).Scale(1 - cond.RobinCoeff))
			ghost = blended
		case bc.Symmetry:
			ghost = internalVal
		case bc.Cyclic:
			ghost = f.cyclicGhost(cond, b, internalVal)
		default:
			ghost = internalVal
		}
		f.SetGhost(b, ghost)
	}
	return nil
}

// cyclicGhost resolves the ghost value for a face on a Cyclic/periodic
// patch by pulling the internal value of the matching owner cell on the
// paired patch, rather than mirroring the same-side value the way Symmetry
// does. Patches are paired by matching position within their respective
// face ranges, so a cyclic pair must enroll the same number of faces in
// the same order. Falls back to a zero-gradient mirror (the source never
// implements periodic coupling at all, so this covers a misconfigured or
// unpaired patch rather than a documented mode).
func (f *Field[T]) cyclicGhost(cond *bc.Condition[T], b int, internalVal T) T {
	if cond.Pair == "" {
		return internalVal
	}
	pair, err := f.bcs.Resolve(cond.Pair)
	if err != nil || pair.Kind != bc.Cyclic {
		return internalVal
	}
	offset := b - cond.FaceStart
	pairedFace := pair.FaceStart + offset
	if offset < 0 || pairedFace < pair.FaceStart || pairedFace >= pair.FaceEnd {
		return internalVal
	}
	return f.Internal[f.Mesh.BoundaryOwner[pairedFace]]
}

// FillBoundaryValues is the source's convention of overwriting a vector
// field's ghost entries with a derived quantity (used once, for |grad phi|
// in the wall-distance driver) rather than through a BC evaluation.
func (f *Field[T]) FillBoundaryValues() {
	for b := 0; b < f.Mesh.NumBoundaryFaces; b++ {
		owner := f.Mesh.BoundaryOwner[b]
		f.SetGhost(b, f.Internal[owner])
	}
}
