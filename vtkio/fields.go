package vtkio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
)

// WriteStep persists the per-time-step field-file round trip (U, p, and any
// extra scalars, per §6) into caseDir/<step>/ and, alongside it, a VTK
// snapshot for visualization, the pairing the CLI's write-interval gating
// drives every n steps.
func WriteStep(caseDir string, step int, mesh *geometry.Mesh, u *field.Field[field.Vector], p *field.Field[field.Scalar], extra ScalarSeries) error {
	stepDir := filepath.Join(caseDir, fmt.Sprintf("%d", step))
	if err := os.MkdirAll(stepDir, 0o755); err != nil {
		return fmt.Errorf("vtkio: %w", err)
	}

	if err := field.WriteVector(filepath.Join(stepDir, "U"), u); err != nil {
		return err
	}
	if err := field.WriteScalar(filepath.Join(stepDir, "p"), p); err != nil {
		return err
	}
	for name, f := range extra {
		if err := field.WriteScalar(filepath.Join(stepDir, name), f); err != nil {
			return err
		}
	}

	scalars := ScalarSeries{"p": p}
	for name, f := range extra {
		scalars[name] = f
	}
	vtkPath := filepath.Join(caseDir, fmt.Sprintf("step-%d.vtk", step))
	return WriteSnapshot(vtkPath, mesh, scalars, VectorSeries{"U": u})
}

// ReadStep loads U and p's internal-cell arrays from a previously written
// step directory, the counterpart used to resume or post-process a run.
func ReadStep(caseDir string, step int, mesh *geometry.Mesh) (uVals []field.Vector, pVals []float64, err error) {
	stepDir := filepath.Join(caseDir, fmt.Sprintf("%d", step))
	uVals, err = field.ReadVector(filepath.Join(stepDir, "U"), mesh.NumCells)
	if err != nil {
		return nil, nil, err
	}
	pVals, err = field.ReadScalar(filepath.Join(stepDir, "p"), mesh.NumCells)
	if err != nil {
		return nil, nil, err
	}
	return uVals, pVals, nil
}
