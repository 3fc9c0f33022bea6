// Package vtkio emits legacy-format VTK files for visualization, the
// concrete adapter behind the "VTK/field I/O" collaborator interface named
// in §1. Cell-centered fields are written as VTK_VERTEX points at each
// cell's centroid rather than reconstructing full polyhedral cell shapes,
// since the core's geometry view discards per-cell vertex connectivity
// once volumes and face areas are precomputed (§4.1: the mesh is a
// read-only geometry *view*, not a full boundary representation).
package vtkio

import (
	"bufio"
	"fmt"
	"os"

	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
)

// ScalarSeries and VectorSeries name the fields a single VTK snapshot
// should carry, keyed by the name under which they'll appear in the
// output's POINT_DATA block.
type ScalarSeries map[string]*field.Field[field.Scalar]
type VectorSeries map[string]*field.Field[field.Vector]

// WriteSnapshot emits one legacy ASCII VTK file (DATASET POLYDATA, one
// vertex per cell) for the given step, carrying every scalar and vector
// field supplied.
func WriteSnapshot(path string, mesh *geometry.Mesh, scalars ScalarSeries, vectors VectorSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vtkio: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(w, "fvpiso snapshot\n")
	fmt.Fprintf(w, "ASCII\n")
	fmt.Fprintf(w, "DATASET POLYDATA\n")

	nc := mesh.NumCells
	fmt.Fprintf(w, "POINTS %d double\n", nc)
	for c := 0; c < nc; c++ {
		p := mesh.CellCentroid[c]
		fmt.Fprintf(w, "%.17g %.17g %.17g\n", p.X, p.Y, p.Z)
	}

	fmt.Fprintf(w, "VERTICES %d %d\n", nc, 2*nc)
	for c := 0; c < nc; c++ {
		fmt.Fprintf(w, "1 %d\n", c)
	}

	fmt.Fprintf(w, "POINT_DATA %d\n", nc)
	for name, fld := range scalars {
		fmt.Fprintf(w, "SCALARS %s double 1\n", name)
		fmt.Fprintf(w, "LOOKUP_TABLE default\n")
		for c := 0; c < nc; c++ {
			fmt.Fprintf(w, "%.17g\n", float64(fld.Internal[c]))
		}
	}
	for name, fld := range vectors {
		fmt.Fprintf(w, "VECTORS %s double\n", name)
		for c := 0; c < nc; c++ {
			v := fld.Internal[c]
			fmt.Fprintf(w, "%.17g %.17g %.17g\n", v.X, v.Y, v.Z)
		}
	}

	return w.Flush()
}
