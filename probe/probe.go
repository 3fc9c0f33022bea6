// Package probe implements the optional per-step monitor-point sidecar
// described in §6 "Probe output": a fixed list of named points, each
// sampled from its nearest cell every write interval and appended to a
// per-field log file, the lightweight alternative to a full VTK dump when
// only a handful of signals matter.
package probe

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
)

// Monitor owns one open append-file per probe point per sampled field.
type Monitor struct {
	dir    string
	probes []config.Probe
	cells  []int // nearest cell index per probe, resolved once at construction

	uFiles []*os.File
	pFiles []*os.File
}

// NewMonitor resolves each probe's nearest cell by centroid distance and
// opens (or creates) its Ui/pi log files under dir/probes/.
func NewMonitor(dir string, mesh *geometry.Mesh, probes []config.Probe) (*Monitor, error) {
	probeDir := filepath.Join(dir, "probes")
	if err := os.MkdirAll(probeDir, 0o755); err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}

	m := &Monitor{dir: probeDir, probes: probes, cells: make([]int, len(probes))}
	for i, p := range probes {
		m.cells[i] = nearestCell(mesh, p.At)

		uf, err := os.OpenFile(filepath.Join(probeDir, p.Name+".U.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("probe: %w", err)
		}
		pf, err := os.OpenFile(filepath.Join(probeDir, p.Name+".p.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("probe: %w", err)
		}
		m.uFiles = append(m.uFiles, uf)
		m.pFiles = append(m.pFiles, pf)
	}
	return m, nil
}

// Sample appends the current U and p value at every probe point, tagged
// with the caller's step index.
func (m *Monitor) Sample(step int, u *field.Field[field.Vector], p *field.Field[field.Scalar]) error {
	for i, c := range m.cells {
		uv := u.Internal[c]
		w := bufio.NewWriter(m.uFiles[i])
		fmt.Fprintf(w, "%d %.17g %.17g %.17g\n", step, uv.X, uv.Y, uv.Z)
		if err := w.Flush(); err != nil {
			return fmt.Errorf("probe: %w", err)
		}

		pv := p.Internal[c]
		wp := bufio.NewWriter(m.pFiles[i])
		fmt.Fprintf(wp, "%d %.17g\n", step, float64(pv))
		if err := wp.Flush(); err != nil {
			return fmt.Errorf("probe: %w", err)
		}
	}
	return nil
}

// Close releases every open log file.
func (m *Monitor) Close() error {
	var firstErr error
	for _, f := range append(append([]*os.File{}, m.uFiles...), m.pFiles...) {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func nearestCell(mesh *geometry.Mesh, at [3]float64) int {
	best := 0
	bestDist := -1.0
	for c := 0; c < mesh.NumCells; c++ {
		cc := mesh.CellCentroid[c]
		dx, dy, dz := cc.X-at[0], cc.Y-at[1], cc.Z-at[2]
		d := dx*dx + dy*dy + dz*dz
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
