package siemesh

import (
	"math"
	"testing"
)

const float64EqualityThreshold = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vecAlmostEqual(a, b Vector3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

// sameCycle reports whether got is a rotation of want.
func sameCycle(got, want []ID) bool {
	if len(got) != len(want) {
		return false
	}
	n := len(want)
	for offset := 0; offset < n; offset++ {
		match := true
		for i := 0; i < n; i++ {
			if got[i] != want[(i+offset)%n] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func quadMesh(t *testing.T) (*Mesh, []ID) {
	t.Helper()
	m := NewMesh()
	ids := []ID{
		m.AddVertex(NewVector3(0, 0, 0)).ID,
		m.AddVertex(NewVector3(1, 0, 0)).ID,
		m.AddVertex(NewVector3(1, 0, 1)).ID,
		m.AddVertex(NewVector3(0, 0, 1)).ID,
	}
	return m, ids
}

func TestAddFaceCreatesLoop(t *testing.T) {
	testCases := []struct {
		name  string
		verts int
	}{
		{"triangle", 3},
		{"quad", 4},
		{"hexagon", 6},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMesh()
			ids := make([]ID, tc.verts)
			for i := range ids {
				angle := 2 * math.Pi * float64(i) / float64(tc.verts)
				ids[i] = m.AddVertex(NewVector3(math.Cos(angle), 0, math.Sin(angle))).ID
			}
			face := m.AddFace(ids)
			if face == nil {
				t.Fatal("AddFace returned nil for a valid ring")
			}
			if m.HalfEdgeCount() != tc.verts {
				t.Errorf("half-edge count = %d, want %d", m.HalfEdgeCount(), tc.verts)
			}
			if m.FaceCount() != 1 {
				t.Errorf("face count = %d, want 1", m.FaceCount())
			}

			// the next-walk must return to the start in exactly tc.verts steps
			start := m.GetHalfEdge(face.HalfEdge)
			cur := start
			for step := 1; ; step++ {
				next := m.GetHalfEdge(cur.Next)
				if next == nil {
					t.Fatal("dangling next link in face loop")
				}
				if prev := m.GetHalfEdge(next.Prev); prev == nil || prev.ID != cur.ID {
					t.Errorf("prev(next(h)) != h for half-edge %d", cur.ID)
				}
				if next.Face != face.ID {
					t.Errorf("half-edge %d belongs to face %d, want %d", next.ID, next.Face, face.ID)
				}
				cur = next
				if cur.ID == start.ID {
					if step != tc.verts {
						t.Errorf("loop length = %d, want %d", step, tc.verts)
					}
					break
				}
				if step > tc.verts {
					t.Fatalf("loop did not close after %d steps", step)
				}
			}
		})
	}
}

func TestAddFaceRejectsShortInput(t *testing.T) {
	m, ids := quadMesh(t)
	if f := m.AddFace(ids[:2]); f != nil {
		t.Errorf("AddFace with 2 vertices = %v, want nil", f)
	}
	if f := m.AddFace(nil); f != nil {
		t.Errorf("AddFace with no vertices = %v, want nil", f)
	}
	if m.HalfEdgeCount() != 0 || m.FaceCount() != 0 {
		t.Error("rejected AddFace left entities behind")
	}
}

func TestGetFaceVerticesOrder(t *testing.T) {
	m, ids := quadMesh(t)
	face := m.AddFace(ids)

	got := m.FaceVertexIDs(face.ID)
	if !sameCycle(got, ids) {
		t.Errorf("face vertices = %v, want cycle of %v", got, ids)
	}
	if got := m.GetFaceVertices(999999); len(got) != 0 {
		t.Errorf("unknown face returned %d vertices, want 0", len(got))
	}
}

func TestTwinDiscovery(t *testing.T) {
	// two triangles sharing the diagonal b-c
	m := NewMesh()
	a := m.AddVertex(NewVector3(0, 0, 0)).ID
	b := m.AddVertex(NewVector3(1, 0, 0)).ID
	c := m.AddVertex(NewVector3(0, 0, 1)).ID
	d := m.AddVertex(NewVector3(1, 0, 1)).ID

	m.AddFace([]ID{a, b, c})
	m.AddFace([]ID{b, d, c})

	// 3 + 3 half-edges, but only 5 undirected edges: b->c is shared
	if m.HalfEdgeCount() != 6 {
		t.Errorf("half-edge count = %d, want 6", m.HalfEdgeCount())
	}
	if m.EdgeCount() != 5 {
		t.Errorf("edge count = %d, want 5", m.EdgeCount())
	}

	paired := 0
	for _, h := range m.HalfEdges() {
		if h.Twin == NoID {
			continue
		}
		paired++
		twin := m.GetHalfEdge(h.Twin)
		if twin == nil || twin.Twin != h.ID {
			t.Errorf("half-edge %d: twin back-reference broken", h.ID)
			continue
		}
		if h.Edge != twin.Edge {
			t.Errorf("half-edge %d and twin %d disagree on edge", h.ID, twin.ID)
		}
		if m.HalfEdgeSource(h) != twin.Target || m.HalfEdgeSource(twin) != h.Target {
			t.Errorf("half-edge %d and twin %d are not opposite", h.ID, twin.ID)
		}
	}
	if paired != 2 {
		t.Errorf("paired half-edges = %d, want 2", paired)
	}
}

func TestVertexHalfEdgeReference(t *testing.T) {
	m, ids := quadMesh(t)
	m.AddFace(ids)
	for _, vid := range ids {
		v := m.GetVertex(vid)
		if v.HalfEdge == NoID {
			t.Errorf("vertex %d has no outgoing half-edge", vid)
			continue
		}
		h := m.GetHalfEdge(v.HalfEdge)
		if h == nil || m.HalfEdgeSource(h) != vid {
			t.Errorf("vertex %d references a half-edge that does not leave it", vid)
		}
	}
}

func TestLookupsReturnNil(t *testing.T) {
	m := NewMesh()
	if m.GetVertex(42) != nil || m.GetFace(42) != nil || m.GetHalfEdge(42) != nil || m.GetEdge(42) != nil {
		t.Error("lookup of unknown id did not return nil")
	}
}

func TestUpdateVertex(t *testing.T) {
	m, ids := quadMesh(t)
	m.AddFace(ids)
	heCount := m.HalfEdgeCount()

	m.UpdateVertex(ids[0], NewVector3(5, 5, 5))
	if got := m.GetVertex(ids[0]).Position; !vecAlmostEqual(got, NewVector3(5, 5, 5)) {
		t.Errorf("position after update = %v", got)
	}
	if m.HalfEdgeCount() != heCount {
		t.Error("UpdateVertex changed topology")
	}

	// unknown id is ignored
	m.UpdateVertex(999999, NewVector3(1, 1, 1))
}

func TestRecalculateNormals(t *testing.T) {
	m, ids := quadMesh(t)
	face := m.AddFace(ids)

	// lift the quad into a slope and recompute
	m.UpdateVertex(ids[0], NewVector3(0, 1, 0))
	m.UpdateVertex(ids[1], NewVector3(1, 1, 0))
	m.RecalculateNormals()
	first := *m.GetFace(face.ID).Normal

	// idempotent
	m.RecalculateNormals()
	if got := *m.GetFace(face.ID).Normal; !vecAlmostEqual(got, first) {
		t.Errorf("second recalculation changed normal: %v != %v", got, first)
	}
	if almostEqual(first.Y, 0) {
		t.Errorf("sloped quad normal has no Y component: %v", first)
	}
}

func TestEnumerationInsertionOrder(t *testing.T) {
	m := NewMesh()
	var want []ID
	for i := 0; i < 5; i++ {
		want = append(want, m.AddVertex(NewVector3(float64(i), 0, 0)).ID)
	}
	verts := m.Vertices()
	for i, v := range verts {
		if v.ID != want[i] {
			t.Fatalf("vertex enumeration out of insertion order at %d: %d != %d", i, v.ID, want[i])
		}
	}
}

func TestRemovalDoesNotCascade(t *testing.T) {
	m, ids := quadMesh(t)
	face := m.AddFace(ids)
	heCount := m.HalfEdgeCount()

	m.RemoveFace(face.ID)
	if m.GetFace(face.ID) != nil {
		t.Error("face still present after removal")
	}
	if m.HalfEdgeCount() != heCount {
		t.Error("RemoveFace cascaded into the half-edge table")
	}
	if m.VertexCount() != 4 {
		t.Error("RemoveFace cascaded into the vertex table")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m, ids := quadMesh(t)
	m.AddFace(ids)

	clone := m.Clone()
	clone.UpdateVertex(ids[0], NewVector3(9, 9, 9))
	clone.AddVertex(NewVector3(7, 7, 7))

	if got := m.GetVertex(ids[0]).Position; !vecAlmostEqual(got, NewVector3(0, 0, 0)) {
		t.Errorf("mutating the clone changed the original: %v", got)
	}
	if m.VertexCount() != 4 {
		t.Errorf("original vertex count = %d, want 4", m.VertexCount())
	}
	if clone.VertexCount() != 5 {
		t.Errorf("clone vertex count = %d, want 5", clone.VertexCount())
	}
}

func TestGenerateIDMonotonic(t *testing.T) {
	ResetIDs()
	last := GenerateID()
	for i := 0; i < 100; i++ {
		next := GenerateID()
		if next <= last {
			t.Fatalf("id %d not greater than previous %d", next, last)
		}
		last = next
	}

	// ids stay unique across meshes and entity kinds
	m1, m2 := NewMesh(), NewMesh()
	seen := map[ID]bool{}
	for _, id := range []ID{
		m1.AddVertex(Vector3{}).ID,
		m2.AddVertex(Vector3{}).ID,
	} {
		if seen[id] {
			t.Fatalf("duplicate id %d across meshes", id)
		}
		seen[id] = true
	}

	ResetIDs()
	if got := GenerateID(); got != 1 {
		t.Errorf("first id after reset = %d, want 1", got)
	}
}
