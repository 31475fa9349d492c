package siemesh

// MeshSnapshot is a deep value copy of all four entity tables. Snapshot
// commands capture one before mutating anything and swap it back in on undo.
type MeshSnapshot struct {
	vertices  map[ID]*Vertex
	halfEdges map[ID]*HalfEdge
	edges     map[ID]*Edge
	faces     map[ID]*Face

	vertexOrder   []ID
	halfEdgeOrder []ID
	edgeOrder     []ID
	faceOrder     []ID
}

func copyVertex(v *Vertex) *Vertex {
	c := *v
	if v.Normal != nil {
		n := *v.Normal
		c.Normal = &n
	}
	if v.UV != nil {
		uv := *v.UV
		c.UV = &uv
	}
	return &c
}

func copyFace(f *Face) *Face {
	c := *f
	if f.Normal != nil {
		n := *f.Normal
		c.Normal = &n
	}
	return &c
}

// Snapshot deep-copies the mesh state.
func (m *Mesh) Snapshot() *MeshSnapshot {
	s := &MeshSnapshot{
		vertices:      make(map[ID]*Vertex, len(m.vertices)),
		halfEdges:     make(map[ID]*HalfEdge, len(m.halfEdges)),
		edges:         make(map[ID]*Edge, len(m.edges)),
		faces:         make(map[ID]*Face, len(m.faces)),
		vertexOrder:   append([]ID(nil), m.vertexOrder...),
		halfEdgeOrder: append([]ID(nil), m.halfEdgeOrder...),
		edgeOrder:     append([]ID(nil), m.edgeOrder...),
		faceOrder:     append([]ID(nil), m.faceOrder...),
	}
	for id, v := range m.vertices {
		s.vertices[id] = copyVertex(v)
	}
	for id, h := range m.halfEdges {
		c := *h
		s.halfEdges[id] = &c
	}
	for id, e := range m.edges {
		c := *e
		s.edges[id] = &c
	}
	for id, f := range m.faces {
		s.faces[id] = copyFace(f)
	}
	return s
}

// Restore replaces the live tables with deep copies of the snapshot, so one
// snapshot can be restored more than once.
func (m *Mesh) Restore(s *MeshSnapshot) {
	m.vertices = make(map[ID]*Vertex, len(s.vertices))
	m.halfEdges = make(map[ID]*HalfEdge, len(s.halfEdges))
	m.edges = make(map[ID]*Edge, len(s.edges))
	m.faces = make(map[ID]*Face, len(s.faces))
	for id, v := range s.vertices {
		m.vertices[id] = copyVertex(v)
	}
	for id, h := range s.halfEdges {
		c := *h
		m.halfEdges[id] = &c
	}
	for id, e := range s.edges {
		c := *e
		m.edges[id] = &c
	}
	for id, f := range s.faces {
		m.faces[id] = copyFace(f)
	}
	m.vertexOrder = append([]ID(nil), s.vertexOrder...)
	m.halfEdgeOrder = append([]ID(nil), s.halfEdgeOrder...)
	m.edgeOrder = append([]ID(nil), s.edgeOrder...)
	m.faceOrder = append([]ID(nil), s.faceOrder...)
}

// Clone must duplicate every table; the copy shares nothing with the
// original.
func (m *Mesh) Clone() *Mesh {
	clone := NewMesh()
	clone.Restore(m.Snapshot())
	return clone
}
