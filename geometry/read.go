package geometry

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Read loads a per-rank mesh directory: vertices, faces (as vertex lists
// with owner/neighbor), and patches (name + face range; a patch line's
// further tokens, such as a kind, are ignored), per §6.
// Geometry (volumes, face areas, centroids) is precomputed here rather than
// stored on disk, matching the source's initGeomMeshFields step.
func Read(dir string) (*Mesh, error) {
	verts, err := readVertices(filepath.Join(dir, "vertices"))
	if err != nil {
		return nil, fmt.Errorf("geometry: mesh integrity error reading vertices: %w", err)
	}
	faces, owner, neighbor, err := readFaces(filepath.Join(dir, "faces"))
	if err != nil {
		return nil, fmt.Errorf("geometry: mesh integrity error reading faces: %w", err)
	}
	patches, err := readPatches(filepath.Join(dir, "patches"))
	if err != nil {
		return nil, fmt.Errorf("geometry: mesh integrity error reading patches: %w", err)
	}
	return buildGeometry(verts, faces, owner, neighbor, patches)
}

type rawFace struct {
	verts    []int
	owner    int
	neighbor int // -1 if boundary
}

func readVertices(path string) ([]Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n, err := scanInt(sc)
	if err != nil {
		return nil, err
	}
	if !sc.Scan() { // opening brace
		return nil, fmt.Errorf("expected '{' after vertex count")
	}
	verts := make([]Vec3, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("truncated vertex list at %d/%d", i, n)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 3 {
			return nil, fmt.Errorf("vertex %d: expected 3 components, got %d", i, len(fields))
		}
		x, _ := strconv.ParseFloat(fields[0], 64)
		y, _ := strconv.ParseFloat(fields[1], 64)
		z, _ := strconv.ParseFloat(fields[2], 64)
		verts[i] = Vec3{x, y, z}
	}
	return verts, nil
}

func readFaces(path string) ([]rawFace, []int, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n, err := scanInt(sc)
	if err != nil {
		return nil, nil, nil, err
	}
	if !sc.Scan() {
		return nil, nil, nil, fmt.Errorf("expected '{' after face count")
	}
	faces := make([]rawFace, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, nil, nil, fmt.Errorf("truncated face list at %d/%d", i, n)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			return nil, nil, nil, fmt.Errorf("face %d: malformed record %q", i, sc.Text())
		}
		nv, _ := strconv.Atoi(fields[0])
		verts := make([]int, nv)
		for j := 0; j < nv; j++ {
			verts[j], _ = strconv.Atoi(fields[1+j])
		}
		owner, _ := strconv.Atoi(fields[1+nv])
		neighbor := -1
		if len(fields) > 2+nv {
			neighbor, _ = strconv.Atoi(fields[2+nv])
		}
		faces[i] = rawFace{verts: verts, owner: owner, neighbor: neighbor}
	}
	owners := make([]int, n)
	neighbors := make([]int, n)
	for i, fc := range faces {
		owners[i], neighbors[i] = fc.owner, fc.neighbor
	}
	return faces, owners, neighbors, nil
}

func readPatches(path string) ([]Patch, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n, err := scanInt(sc)
	if err != nil {
		return nil, err
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("expected '{' after patch count")
	}
	patches := make([]Patch, 0, n)
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("truncated patch list at %d/%d", i, n)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("patch %d: malformed record %q", i, sc.Text())
		}
		name := fields[0]
		if seen[name] {
			return nil, fmt.Errorf("duplicate patch name %q", name)
		}
		seen[name] = true
		start, _ := strconv.Atoi(fields[1])
		end, _ := strconv.Atoi(fields[2])
		patches = append(patches, Patch{Name: name, Start: start, End: end})
	}
	return patches, nil
}

func scanInt(sc *bufio.Scanner) (int, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		return strconv.Atoi(line)
	}
	return 0, fmt.Errorf("unexpected EOF looking for a count")
}

// buildGeometry precomputes volumes, face areas, and centroids from the raw
// vertex/face connectivity, sorting internal faces ahead of boundary faces
// the way the mesh format stores them.
func buildGeometry(verts []Vec3, rawFaces []rawFace, owner, neighbor []int, patches []Patch) (*Mesh, error) {
	var internal, boundary []rawFace
	for _, fc := range rawFaces {
		if fc.neighbor >= 0 {
			internal = append(internal, fc)
		} else {
			boundary = append(boundary, fc)
		}
	}

	maxCell := 0
	for _, fc := range rawFaces {
		if fc.owner > maxCell {
			maxCell = fc.owner
		}
		if fc.neighbor > maxCell {
			maxCell = fc.neighbor
		}
	}
	nc := maxCell + 1

	m := &Mesh{
		NumCells:         nc,
		NumInternalFaces: len(internal),
		NumBoundaryFaces: len(boundary),
		CellVolume:       make([]float64, nc),
		CellCentroid:     make([]Vec3, nc),
		Owner:            make([]int, len(internal)),
		Neighbor:         make([]int, len(internal)),
		FaceArea:         make([]Vec3, len(internal)),
		FaceCentroid:     make([]Vec3, len(internal)),
		OwnerDist:        make([]Vec3, len(internal)),
		BoundaryOwner:    make([]int, len(boundary)),
		BoundaryFaceArea: make([]Vec3, len(boundary)),
		BoundaryCentroid: make([]Vec3, len(boundary)),
		Patches:          patches,
	}

	faceGeom := func(fc rawFace) (area, centroid Vec3) {
		// Polygon face area vector and centroid via fan triangulation about
		// the vertex average, standard unstructured-FV geometry precompute.
		var avg Vec3
		for _, vi := range fc.verts {
			avg = avg.Add(verts[vi])
		}
		avg = avg.Scale(1.0 / float64(len(fc.verts)))

		var totalArea Vec3
		var weightedCentroid Vec3
		var areaSum float64
		n := len(fc.verts)
		for i := 0; i < n; i++ {
			p0 := verts[fc.verts[i]]
			p1 := verts[fc.verts[(i+1)%n]]
			e1 := p0.Sub(avg)
			e2 := p1.Sub(avg)
			cross := Vec3{
				e1.Y*e2.Z - e1.Z*e2.Y,
				e1.Z*e2.X - e1.X*e2.Z,
				e1.X*e2.Y - e1.Y*e2.X,
			}
			triArea := math.Sqrt(cross.Dot(cross)) * 0.5
			triCentroid := avg.Add(p0).Add(p1).Scale(1.0 / 3.0)
			totalArea = totalArea.Add(cross.Scale(0.5))
			weightedCentroid = weightedCentroid.Add(triCentroid.Scale(triArea))
			areaSum += triArea
		}
		if areaSum > 0 {
			weightedCentroid = weightedCentroid.Scale(1.0 / areaSum)
		}
		return totalArea, weightedCentroid
	}

	for i, fc := range internal {
		area, centroid := faceGeom(fc)
		// Orient outward from the lower-index (owner) cell.
		if fc.owner > fc.neighbor {
			area = area.Scale(-1)
			fc.owner, fc.neighbor = fc.neighbor, fc.owner
		}
		m.Owner[i] = fc.owner
		m.Neighbor[i] = fc.neighbor
		m.FaceArea[i] = area
		m.FaceCentroid[i] = centroid
	}

	for i, fc := range boundary {
		area, centroid := faceGeom(fc)
		m.BoundaryOwner[i] = fc.owner
		m.BoundaryFaceArea[i] = area
		m.BoundaryCentroid[i] = centroid
	}

	// Cell volumes and centroids via the divergence theorem applied to each
	// cell's bounding faces: V = (1/3) * sum_faces (Sf . faceCentroid).
	cellFaceCentroidSum := make([]Vec3, nc)
	cellFaceCount := make([]int, nc)
	accumulate := func(cell int, area, centroid Vec3, sign float64) {
		m.CellVolume[cell] += sign * area.Scale(1.0 / 3.0).Dot(centroid)
		cellFaceCentroidSum[cell] = cellFaceCentroidSum[cell].Add(centroid)
		cellFaceCount[cell]++
	}
	for i := range internal {
		accumulate(m.Owner[i], m.FaceArea[i], m.FaceCentroid[i], 1)
		accumulate(m.Neighbor[i], m.FaceArea[i], m.FaceCentroid[i], -1)
	}
	for i := range boundary {
		accumulate(m.BoundaryOwner[i], m.BoundaryFaceArea[i], m.BoundaryCentroid[i], 1)
	}
	for c := 0; c < nc; c++ {
		if cellFaceCount[c] > 0 {
			m.CellCentroid[c] = cellFaceCentroidSum[c].Scale(1.0 / float64(cellFaceCount[c]))
		}
		if m.CellVolume[c] < 0 {
			return nil, fmt.Errorf("geometry: mesh integrity error: cell %d has non-positive volume %g (check face orientation)", c, m.CellVolume[c])
		}
	}

	for i := range internal {
		m.OwnerDist[i] = m.CellCentroid[m.Neighbor[i]].Sub(m.CellCentroid[m.Owner[i]])
	}

	if err := m.CheckClosure(); err != nil {
		return nil, err
	}
	return m, nil
}

