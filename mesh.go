package siemesh

// The mesh is a half-edge structure kept in four id-keyed tables. All links
// between entities (twin, next, prev, face, edge, vertex back-reference)
// are ids into those tables, never pointers across records, so removing an
// entity is always a plain table delete.
//
// Invariants while the mesh is well formed:
//   - h.Twin, when set, points back: GetHalfEdge(h.Twin).Twin == h.ID
//   - following Next around a face loop returns to the start after exactly
//     loop-length steps, and Prev(Next(h)) == h
//   - every half-edge belongs to exactly one face
//
// Removal does not re-stitch loops or clear twin references on survivors;
// commands that remove entities either clean up explicitly or restore a
// snapshot on undo.

// Vertex is one corner of the mesh. HalfEdge, when set, is some outgoing
// half-edge (the first one observed, not a canonical choice).
type Vertex struct {
	ID       ID
	Position Vector3
	Normal   *Vector3
	UV       *Vector2
	HalfEdge ID
}

// HalfEdge is a directed traversal unit bounding exactly one face. Its
// source vertex is not stored; it is derived as the target of Prev.
type HalfEdge struct {
	ID     ID
	Target ID
	Twin   ID
	Next   ID
	Prev   ID
	Face   ID
	Edge   ID
}

// Edge is one undirected edge, referencing one of its (at most two)
// half-edges.
type Edge struct {
	ID       ID
	HalfEdge ID
}

// Face is one polygon, referencing one half-edge of its boundary loop.
type Face struct {
	ID       ID
	HalfEdge ID
	Normal   *Vector3
	Material ID
}

type Mesh struct {
	vertices  map[ID]*Vertex
	halfEdges map[ID]*HalfEdge
	edges     map[ID]*Edge
	faces     map[ID]*Face

	// insertion order per table; map iteration order is not deterministic
	// and both enumeration and twin discovery must be
	vertexOrder   []ID
	halfEdgeOrder []ID
	edgeOrder     []ID
	faceOrder     []ID
}

func NewMesh() *Mesh {
	return &Mesh{
		vertices:  make(map[ID]*Vertex),
		halfEdges: make(map[ID]*HalfEdge),
		edges:     make(map[ID]*Edge),
		faces:     make(map[ID]*Face),
	}
}

// AddVertex inserts a new vertex, copying the position. No validation.
func (m *Mesh) AddVertex(pos Vector3) *Vertex {
	return m.AddVertexWithID(pos, GenerateID())
}

// AddVertexWithID is AddVertex with a caller-chosen id, used by collaborators
// that re-create entities.
func (m *Mesh) AddVertexWithID(pos Vector3, id ID) *Vertex {
	v := &Vertex{ID: id, Position: pos}
	m.vertices[v.ID] = v
	m.vertexOrder = append(m.vertexOrder, v.ID)
	return v
}

// AddFace builds one face over the given vertex ids, in order. It creates one
// half-edge per consecutive pair (wrapping), links them into a closed
// next/prev loop, pairs twins against the existing half-edges, attaches
// edges, and stores the face normal. Returns nil for fewer than 3 vertices.
func (m *Mesh) AddFace(vertexIDs []ID) *Face {
	return m.AddFaceWithID(vertexIDs, GenerateID())
}

func (m *Mesh) AddFaceWithID(vertexIDs []ID, id ID) *Face {
	n := len(vertexIDs)
	if n < 3 {
		return nil
	}

	face := &Face{ID: id}

	// one half-edge per consecutive pair, target = the following vertex
	loop := make([]*HalfEdge, n)
	for i := 0; i < n; i++ {
		loop[i] = &HalfEdge{
			ID:     GenerateID(),
			Target: vertexIDs[(i+1)%n],
			Face:   face.ID,
		}
	}
	for i := 0; i < n; i++ {
		loop[i].Next = loop[(i+1)%n].ID
		loop[i].Prev = loop[(i+n-1)%n].ID
	}
	// reference the half-edge targeting vertexIDs[0], so the boundary walk
	// in GetFaceVertices yields the vertices in input order
	face.HalfEdge = loop[n-1].ID

	for _, h := range loop {
		m.halfEdges[h.ID] = h
		m.halfEdgeOrder = append(m.halfEdgeOrder, h.ID)
	}

	// twin discovery: for each new half-edge (source s, target t), find an
	// unpaired half-edge running t -> s. Linear scan in insertion order so
	// identical input always pairs identically; a hashed (source,target)
	// index would be the faster equivalent.
	for i, h := range loop {
		s := vertexIDs[i]
		t := h.Target
		for _, candID := range m.halfEdgeOrder {
			cand := m.halfEdges[candID]
			if cand.ID == h.ID || cand.Twin != NoID {
				continue
			}
			if cand.Target != s || m.HalfEdgeSource(cand) != t {
				continue
			}
			h.Twin = cand.ID
			cand.Twin = h.ID
			break
		}
		if h.Twin != NoID {
			// share the undirected edge with the twin
			h.Edge = m.halfEdges[h.Twin].Edge
		} else {
			e := &Edge{ID: GenerateID(), HalfEdge: h.ID}
			m.edges[e.ID] = e
			m.edgeOrder = append(m.edgeOrder, e.ID)
			h.Edge = e.ID
		}
	}

	// first observed outgoing half-edge wins
	for i, vid := range vertexIDs {
		if v := m.vertices[vid]; v != nil && v.HalfEdge == NoID {
			v.HalfEdge = loop[i].ID
		}
	}

	normal := NewellNormal(m.positionsOf(vertexIDs))
	face.Normal = &normal

	m.faces[face.ID] = face
	m.faceOrder = append(m.faceOrder, face.ID)
	return face
}

// HalfEdgeSource derives the source vertex of a half-edge by following its
// prev link. Returns NoID when the loop is broken.
func (m *Mesh) HalfEdgeSource(h *HalfEdge) ID {
	prev := m.halfEdges[h.Prev]
	if prev == nil {
		return NoID
	}
	return prev.Target
}

func (m *Mesh) positionsOf(vertexIDs []ID) []Vector3 {
	points := make([]Vector3, 0, len(vertexIDs))
	for _, vid := range vertexIDs {
		if v := m.vertices[vid]; v != nil {
			points = append(points, v.Position)
		}
	}
	return points
}

// GetVertex returns nil for unknown ids; callers must check.
func (m *Mesh) GetVertex(id ID) *Vertex { return m.vertices[id] }

func (m *Mesh) GetHalfEdge(id ID) *HalfEdge { return m.halfEdges[id] }

func (m *Mesh) GetEdge(id ID) *Edge { return m.edges[id] }

func (m *Mesh) GetFace(id ID) *Face { return m.faces[id] }

// GetFaceVertices walks the face loop and returns its vertices in boundary
// order. Unknown face ids and broken loops yield what could be walked, which
// may be empty.
func (m *Mesh) GetFaceVertices(faceID ID) []*Vertex {
	face := m.faces[faceID]
	if face == nil {
		return nil
	}
	var verts []*Vertex
	start := face.HalfEdge
	cur := start
	// a loop can never be longer than the whole table; anything past that
	// is a dangling next chain
	for steps := 0; steps <= len(m.halfEdges); steps++ {
		h := m.halfEdges[cur]
		if h == nil {
			break
		}
		v := m.vertices[h.Target]
		if v == nil {
			break
		}
		verts = append(verts, v)
		cur = h.Next
		if cur == start {
			break
		}
	}
	return verts
}

// FaceVertexIDs is GetFaceVertices reduced to the id sequence.
func (m *Mesh) FaceVertexIDs(faceID ID) []ID {
	verts := m.GetFaceVertices(faceID)
	ids := make([]ID, len(verts))
	for i, v := range verts {
		ids[i] = v.ID
	}
	return ids
}

// UpdateVertex replaces the stored position. No topological side effect;
// unknown ids are ignored.
func (m *Mesh) UpdateVertex(id ID, pos Vector3) {
	if v := m.vertices[id]; v != nil {
		v.Position = pos
	}
}

// RecalculateNormals recomputes every face normal from its current vertex
// loop. Idempotent; commands call this after anything that can change
// orientation.
func (m *Mesh) RecalculateNormals() {
	for _, fid := range m.faceOrder {
		verts := m.GetFaceVertices(fid)
		if len(verts) < 3 {
			continue
		}
		points := make([]Vector3, len(verts))
		for i, v := range verts {
			points[i] = v.Position
		}
		normal := NewellNormal(points)
		m.faces[fid].Normal = &normal
	}
}

// Vertices enumerates all vertices in insertion order.
func (m *Mesh) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(m.vertexOrder))
	for _, id := range m.vertexOrder {
		out = append(out, m.vertices[id])
	}
	return out
}

func (m *Mesh) HalfEdges() []*HalfEdge {
	out := make([]*HalfEdge, 0, len(m.halfEdgeOrder))
	for _, id := range m.halfEdgeOrder {
		out = append(out, m.halfEdges[id])
	}
	return out
}

func (m *Mesh) Edges() []*Edge {
	out := make([]*Edge, 0, len(m.edgeOrder))
	for _, id := range m.edgeOrder {
		out = append(out, m.edges[id])
	}
	return out
}

func (m *Mesh) Faces() []*Face {
	out := make([]*Face, 0, len(m.faceOrder))
	for _, id := range m.faceOrder {
		out = append(out, m.faces[id])
	}
	return out
}

func (m *Mesh) VertexCount() int   { return len(m.vertices) }
func (m *Mesh) HalfEdgeCount() int { return len(m.halfEdges) }
func (m *Mesh) EdgeCount() int     { return len(m.edges) }
func (m *Mesh) FaceCount() int     { return len(m.faces) }

// RemoveVertex deletes the vertex record only. Half-edges targeting it are
// not cleaned up; see the package comment on removal.
func (m *Mesh) RemoveVertex(id ID) {
	if _, ok := m.vertices[id]; !ok {
		return
	}
	delete(m.vertices, id)
	m.vertexOrder = removeID(m.vertexOrder, id)
}

func (m *Mesh) RemoveHalfEdge(id ID) {
	if _, ok := m.halfEdges[id]; !ok {
		return
	}
	delete(m.halfEdges, id)
	m.halfEdgeOrder = removeID(m.halfEdgeOrder, id)
}

func (m *Mesh) RemoveEdge(id ID) {
	if _, ok := m.edges[id]; !ok {
		return
	}
	delete(m.edges, id)
	m.edgeOrder = removeID(m.edgeOrder, id)
}

func (m *Mesh) RemoveFace(id ID) {
	if _, ok := m.faces[id]; !ok {
		return
	}
	delete(m.faces, id)
	m.faceOrder = removeID(m.faceOrder, id)
}

// RemoveFaceWithLoop removes a face together with its boundary half-edges,
// dropping each half-edge's edge record when the twin is gone or unset.
// Twins that survive keep their (now dangling) twin ids.
func (m *Mesh) RemoveFaceWithLoop(id ID) {
	face := m.faces[id]
	if face == nil {
		return
	}
	start := face.HalfEdge
	cur := start
	var loop []ID
	for steps := 0; steps <= len(m.halfEdges); steps++ {
		h := m.halfEdges[cur]
		if h == nil {
			break
		}
		loop = append(loop, h.ID)
		cur = h.Next
		if cur == start {
			break
		}
	}
	for _, hid := range loop {
		h := m.halfEdges[hid]
		if h == nil {
			continue
		}
		if h.Twin == NoID || m.halfEdges[h.Twin] == nil {
			m.RemoveEdge(h.Edge)
		} else if e := m.edges[h.Edge]; e != nil && e.HalfEdge == hid {
			// keep the shared edge but point it at the survivor
			e.HalfEdge = h.Twin
		}
		m.RemoveHalfEdge(hid)
	}
	m.RemoveFace(id)
}

func removeID(ids []ID, id ID) []ID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
