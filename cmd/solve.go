package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/diag"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/operator"
	"github.com/flowcore/fvpiso/piso"
	"github.com/flowcore/fvpiso/vtkio"
)

// runCase loads a case directory (case.conf + a mesh), builds zero-valued
// U/p fields with their configured BCs (no field files are read),
// resolves the solver named in general.solver, and runs it to end_step,
// writing a field/VTK snapshot every write_interval steps (§6).
func runCase(caseDir string) error {
	ctx, err := config.Load(filepath.Join(caseDir, "case.conf"))
	if err != nil {
		return err
	}

	meshPath := ctx.General.MeshPath
	if v := viper.GetString("mesh"); v != "" {
		meshPath = v
	}
	mesh, err := geometry.Read(filepath.Join(caseDir, meshPath))
	if err != nil {
		return err
	}

	start := ctx.Controls.StartStep
	if v := viper.GetInt("start"); v >= 0 {
		start = v
	}
	end := ctx.Controls.EndStep
	if v := viper.GetInt("end"); v >= 0 {
		end = v
	}

	u := field.New[field.Vector]("U", field.ReadWrite, mesh)
	p := field.New[field.Scalar]("p", field.ReadWrite, mesh)
	u.SetBCs(toVectorRegistry(bc.LoadVector3(ctx, mesh, "U")))
	p.SetBCs(toScalarRegistry(bc.LoadScalar(ctx, mesh, "p")))
	if err := u.UpdateExplicitBCs(false); err != nil {
		return err
	}
	if err := p.UpdateExplicitBCs(false); err != nil {
		return err
	}

	r := halo.Local{}

	switch ctx.General.Solver {
	case "piso", "":
		return runPISO(ctx, caseDir, mesh, u, p, start, end, r)
	case "diffusion":
		return runDiffusion(ctx, caseDir, mesh, u, p, start, end, r)
	case "transport":
		return runTransport(ctx, caseDir, mesh, u, p, start, end, r)
	case "potential":
		return runPotential(ctx, caseDir, mesh, u, p, r)
	default:
		return fmt.Errorf("cmd: unknown solver %q in general.solver", ctx.General.Solver)
	}
}

func runPISO(ctx *config.Context, caseDir string, mesh *geometry.Mesh, u *field.Field[field.Vector], p *field.Field[field.Scalar], start, end int, r halo.Exchanger) error {
	drv, err := piso.NewDriver(ctx, mesh, u, p, r)
	if err != nil {
		return err
	}

	for step := start; step <= end; step++ {
		if err := drv.Step(); err != nil {
			_ = vtkio.WriteStep(caseDir, step, mesh, u, p, nil)
			return fmt.Errorf("cmd: step %d: %w", step, err)
		}
		if ctx.Controls.WriteInterval > 0 && step%ctx.Controls.WriteInterval == 0 {
			if err := vtkio.WriteStep(caseDir, step, mesh, u, p, nil); err != nil {
				return err
			}
			log.Printf("step %d written (%s)", step, diag.MemUsage())
		}
	}
	return nil
}

// newScalarField loads a named scalar field from the case directory's BC
// blocks, the shared first step of runDiffusion and runTransport.
func newScalarField(ctx *config.Context, mesh *geometry.Mesh, name string) *field.Field[field.Scalar] {
	f := field.New[field.Scalar](name, field.ReadWrite, mesh)
	f.SetBCs(toScalarRegistry(bc.LoadScalar(ctx, mesh, name)))
	return f
}

func runDiffusion(ctx *config.Context, caseDir string, mesh *geometry.Mesh, u *field.Field[field.Vector], p *field.Field[field.Scalar], start, end int, r halo.Exchanger) error {
	t := newScalarField(ctx, mesh, "T")
	if err := t.UpdateExplicitBCs(false); err != nil {
		return err
	}
	drv := piso.NewDiffusionDriver(ctx, mesh, t, piso.ParseDiffusionParams(ctx), r)

	extra := vtkio.ScalarSeries{"T": t}
	for step := start; step <= end; step++ {
		if err := drv.Step(); err != nil {
			_ = vtkio.WriteStep(caseDir, step, mesh, u, p, extra)
			return fmt.Errorf("cmd: step %d: %w", step, err)
		}
		if ctx.Controls.WriteInterval > 0 && step%ctx.Controls.WriteInterval == 0 {
			if err := vtkio.WriteStep(caseDir, step, mesh, u, p, extra); err != nil {
				return err
			}
			log.Printf("step %d written (%s)", step, diag.MemUsage())
		}
	}
	return nil
}

func runTransport(ctx *config.Context, caseDir string, mesh *geometry.Mesh, u *field.Field[field.Vector], p *field.Field[field.Scalar], start, end int, r halo.Exchanger) error {
	t := newScalarField(ctx, mesh, "T")
	if err := t.UpdateExplicitBCs(false); err != nil {
		return err
	}
	flux := operator.Flx(u, ctx.General.Density)
	drv := piso.NewTransportDriver(ctx, mesh, t, flux, piso.ParseTransportParams(ctx), r)

	extra := vtkio.ScalarSeries{"T": t}
	for step := start; step <= end; step++ {
		if err := drv.Step(); err != nil {
			_ = vtkio.WriteStep(caseDir, step, mesh, u, p, extra)
			return fmt.Errorf("cmd: step %d: %w", step, err)
		}
		if ctx.Controls.WriteInterval > 0 && step%ctx.Controls.WriteInterval == 0 {
			if err := vtkio.WriteStep(caseDir, step, mesh, u, p, extra); err != nil {
				return err
			}
			log.Printf("step %d written (%s)", step, diag.MemUsage())
		}
	}
	return nil
}

// runPotential seeds U/p with the irrotational solve of §4.7 and writes a
// single snapshot; it has no time-stepping loop of its own.
func runPotential(ctx *config.Context, caseDir string, mesh *geometry.Mesh, u *field.Field[field.Vector], p *field.Field[field.Scalar], r halo.Exchanger) error {
	if err := piso.PotentialFlow(ctx, mesh, u, p, r); err != nil {
		return err
	}
	return vtkio.WriteStep(caseDir, ctx.Controls.StartStep, mesh, u, p, nil)
}

// toVectorRegistry and toScalarRegistry convert bc's config-side [3]float64/
// float64 registries to the field-algebra-typed registries Field.SetBCs
// expects, the one seam between the config-parsing layer (which knows
// nothing about field.Vector/field.Scalar) and the field layer (which
// knows nothing about the configuration grammar).
func toVectorRegistry(src *bc.Registry[[3]float64]) *bc.Registry[field.Vector] {
	out := bc.NewRegistry[field.Vector]()
	for _, c := range src.All() {
		out.Add(&bc.Condition[field.Vector]{
			Patch:      c.Patch,
			Kind:       c.Kind,
			Value:      field.Vector{X: c.Value[0], Y: c.Value[1], Z: c.Value[2]},
			Gradient:   field.Vector{X: c.Gradient[0], Y: c.Gradient[1], Z: c.Gradient[2]},
			RobinCoeff: c.RobinCoeff,
			Pair:       c.Pair,
			FaceStart:  c.FaceStart,
			FaceEnd:    c.FaceEnd,
		})
	}
	return out
}

func toScalarRegistry(src *bc.Registry[float64]) *bc.Registry[field.Scalar] {
	out := bc.NewRegistry[field.Scalar]()
	for _, c := range src.All() {
		out.Add(&bc.Condition[field.Scalar]{
			Patch:      c.Patch,
			Kind:       c.Kind,
			Value:      field.Scalar(c.Value),
			Gradient:   field.Scalar(c.Gradient),
			RobinCoeff: c.RobinCoeff,
			Pair:       c.Pair,
			FaceStart:  c.FaceStart,
			FaceEnd:    c.FaceEnd,
		})
	}
	return out
}
