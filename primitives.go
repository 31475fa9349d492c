package siemesh

import "math"

// Pure builders. Each one assembles a fresh mesh through AddVertex/AddFace
// only, from a closed-form vertex layout, so identical parameters always
// reproduce identical vertex ordering and face counts.

// NewPlane builds a single quad in the XZ plane, centred on the origin.
func NewPlane(width, depth float64) *Mesh {
	m := NewMesh()
	w, d := width/2, depth/2
	a := m.AddVertex(NewVector3(-w, 0, -d))
	b := m.AddVertex(NewVector3(w, 0, -d))
	c := m.AddVertex(NewVector3(w, 0, d))
	e := m.AddVertex(NewVector3(-w, 0, d))
	m.AddFace([]ID{a.ID, e.ID, c.ID, b.ID})
	return m
}

// NewCube builds an axis-aligned cube centred on the origin: 8 vertices,
// 6 quads wound outward.
func NewCube(size float64) *Mesh {
	m := NewMesh()
	s := size / 2
	corners := []Vector3{
		{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
		{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
	}
	v := make([]ID, len(corners))
	for i, p := range corners {
		v[i] = m.AddVertex(p).ID
	}
	quads := [][4]int{
		{0, 3, 2, 1}, // back
		{4, 5, 6, 7}, // front
		{0, 1, 5, 4}, // bottom
		{3, 7, 6, 2}, // top
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
	}
	for _, q := range quads {
		m.AddFace([]ID{v[q[0]], v[q[1]], v[q[2]], v[q[3]]})
	}
	return m
}

// NewCylinder builds a capped cylinder around the Y axis: two rings of
// `segments` vertices plus two cap centres, with triangulated caps and quad
// sides (3*segments faces).
func NewCylinder(radius, height float64, segments int) *Mesh {
	m := NewMesh()
	h := height / 2

	bottom := make([]ID, segments)
	top := make([]ID, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		x, z := radius*math.Cos(angle), radius*math.Sin(angle)
		bottom[i] = m.AddVertex(NewVector3(x, -h, z)).ID
		top[i] = m.AddVertex(NewVector3(x, h, z)).ID
	}
	bottomCentre := m.AddVertex(NewVector3(0, -h, 0)).ID
	topCentre := m.AddVertex(NewVector3(0, h, 0)).ID

	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		m.AddFace([]ID{bottomCentre, bottom[i], bottom[next]})
		m.AddFace([]ID{topCentre, top[next], top[i]})
		m.AddFace([]ID{bottom[i], top[i], top[next], bottom[next]})
	}
	return m
}

// NewSphere builds a UV sphere with two pole vertices, `rings`-1 latitude
// rings of `segments` vertices, triangle fans at the poles and quads
// between.
func NewSphere(radius float64, segments, rings int) *Mesh {
	m := NewMesh()

	topPole := m.AddVertex(NewVector3(0, radius, 0)).ID
	grid := make([][]ID, 0, rings-1)
	for lat := 1; lat < rings; lat++ {
		phi := math.Pi * float64(lat) / float64(rings)
		y := radius * math.Cos(phi)
		r := radius * math.Sin(phi)
		row := make([]ID, segments)
		for i := 0; i < segments; i++ {
			theta := 2 * math.Pi * float64(i) / float64(segments)
			row[i] = m.AddVertex(NewVector3(r*math.Cos(theta), y, r*math.Sin(theta))).ID
		}
		grid = append(grid, row)
	}
	bottomPole := m.AddVertex(NewVector3(0, -radius, 0)).ID

	first := grid[0]
	for i := 0; i < segments; i++ {
		m.AddFace([]ID{topPole, first[(i+1)%segments], first[i]})
	}
	for lat := 0; lat < len(grid)-1; lat++ {
		upper, lower := grid[lat], grid[lat+1]
		for i := 0; i < segments; i++ {
			next := (i + 1) % segments
			m.AddFace([]ID{upper[i], upper[next], lower[next], lower[i]})
		}
	}
	last := grid[len(grid)-1]
	for i := 0; i < segments; i++ {
		m.AddFace([]ID{bottomPole, last[i], last[(i+1)%segments]})
	}
	return m
}

// NewTorus builds a torus around the Y axis: majorSegments*minorSegments
// vertices and the same number of quads.
func NewTorus(majorRadius, minorRadius float64, majorSegments, minorSegments int) *Mesh {
	m := NewMesh()

	grid := make([][]ID, majorSegments)
	for i := 0; i < majorSegments; i++ {
		u := 2 * math.Pi * float64(i) / float64(majorSegments)
		grid[i] = make([]ID, minorSegments)
		for j := 0; j < minorSegments; j++ {
			v := 2 * math.Pi * float64(j) / float64(minorSegments)
			r := majorRadius + minorRadius*math.Cos(v)
			grid[i][j] = m.AddVertex(NewVector3(
				r*math.Cos(u),
				minorRadius*math.Sin(v),
				r*math.Sin(u),
			)).ID
		}
	}
	for i := 0; i < majorSegments; i++ {
		ni := (i + 1) % majorSegments
		for j := 0; j < minorSegments; j++ {
			nj := (j + 1) % minorSegments
			m.AddFace([]ID{grid[i][j], grid[ni][j], grid[ni][nj], grid[i][nj]})
		}
	}
	return m
}

// buildFixed scales a fixed vertex table and adds the given faces; shared by
// the regular polyhedra.
func buildFixed(vertices []Vector3, faces [][]int, size float64) *Mesh {
	m := NewMesh()
	ids := make([]ID, len(vertices))
	for i, p := range vertices {
		ids[i] = m.AddVertex(p.Scale(size)).ID
	}
	for _, f := range faces {
		ring := make([]ID, len(f))
		for i, idx := range f {
			ring[i] = ids[idx]
		}
		m.AddFace(ring)
	}
	return m
}

// NewTetrahedron: 4 vertices, 4 triangles.
func NewTetrahedron(size float64) *Mesh {
	return buildFixed(
		[]Vector3{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}},
		[][]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
		size,
	)
}

// NewOctahedron: 6 vertices, 8 triangles.
func NewOctahedron(size float64) *Mesh {
	return buildFixed(
		[]Vector3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}},
		[][]int{
			{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
			{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
		},
		size,
	)
}

// NewIcosahedron: 12 vertices, 20 triangles.
func NewIcosahedron(size float64) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	return buildFixed(
		[]Vector3{
			{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
			{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
			{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
		},
		[][]int{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
		size,
	)
}

// NewDodecahedron: 20 vertices, 12 pentagons.
func NewDodecahedron(size float64) *Mesh {
	phi := (1 + math.Sqrt(5)) / 2
	inv := 1 / phi
	return buildFixed(
		[]Vector3{
			{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
			{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
			{0, inv, phi}, {0, inv, -phi}, {0, -inv, phi}, {0, -inv, -phi},
			{inv, phi, 0}, {inv, -phi, 0}, {-inv, phi, 0}, {-inv, -phi, 0},
			{phi, 0, inv}, {phi, 0, -inv}, {-phi, 0, inv}, {-phi, 0, -inv},
		},
		[][]int{
			{0, 8, 10, 2, 16}, {0, 16, 17, 1, 12}, {0, 12, 14, 4, 8},
			{8, 4, 18, 6, 10}, {10, 6, 15, 13, 2}, {2, 13, 3, 17, 16},
			{1, 17, 3, 11, 9}, {1, 9, 5, 14, 12}, {4, 14, 5, 19, 18},
			{6, 18, 19, 7, 15}, {3, 13, 15, 7, 11}, {5, 9, 11, 7, 19},
		},
		size,
	)
}
