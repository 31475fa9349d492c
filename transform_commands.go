package siemesh

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"
)

var (
	ErrUnknownVertex = errors.New("unknown vertex")
	ErrUnknownEdge   = errors.New("unknown edge")
	ErrUnknownFace   = errors.New("unknown face")
)

// The commands in this file change positions only, never topology, so each
// one records the minimal prior state (the touched positions) and applies
// the exact inverse on undo instead of snapshotting the whole mesh.

// MoveVertex translates one vertex by Delta.
type MoveVertex struct {
	VertexID ID
	Delta    Vector3

	prev Vector3
}

func NewMoveVertex(vertexID ID, delta Vector3) *MoveVertex {
	return &MoveVertex{VertexID: vertexID, Delta: delta}
}

func (c *MoveVertex) CanExecute(m *Mesh) bool {
	return m.GetVertex(c.VertexID) != nil
}

func (c *MoveVertex) Do(m *Mesh) error {
	v := m.GetVertex(c.VertexID)
	if v == nil {
		return fmt.Errorf("move vertex %d: %w", c.VertexID, ErrUnknownVertex)
	}
	c.prev = v.Position
	m.UpdateVertex(c.VertexID, v.Position.Add(c.Delta))
	m.RecalculateNormals()
	return nil
}

func (c *MoveVertex) Undo(m *Mesh) error {
	if m.GetVertex(c.VertexID) == nil {
		return fmt.Errorf("move vertex %d: %w", c.VertexID, ErrUnknownVertex)
	}
	m.UpdateVertex(c.VertexID, c.prev)
	m.RecalculateNormals()
	return nil
}

// MoveEdge translates both endpoints of an edge by Delta.
type MoveEdge struct {
	EdgeID ID
	Delta  Vector3

	prev map[ID]Vector3
}

func NewMoveEdge(edgeID ID, delta Vector3) *MoveEdge {
	return &MoveEdge{EdgeID: edgeID, Delta: delta}
}

func (c *MoveEdge) CanExecute(m *Mesh) bool {
	return m.GetEdge(c.EdgeID) != nil
}

func (c *MoveEdge) endpoints(m *Mesh) ([]*Vertex, error) {
	edge := m.GetEdge(c.EdgeID)
	if edge == nil {
		return nil, fmt.Errorf("move edge %d: %w", c.EdgeID, ErrUnknownEdge)
	}
	h := m.GetHalfEdge(edge.HalfEdge)
	if h == nil {
		return nil, fmt.Errorf("move edge %d: dangling half-edge %d", c.EdgeID, edge.HalfEdge)
	}
	a := m.GetVertex(m.HalfEdgeSource(h))
	b := m.GetVertex(h.Target)
	if a == nil || b == nil {
		return nil, fmt.Errorf("move edge %d: %w", c.EdgeID, ErrUnknownVertex)
	}
	return []*Vertex{a, b}, nil
}

func (c *MoveEdge) Do(m *Mesh) error {
	verts, err := c.endpoints(m)
	if err != nil {
		return err
	}
	c.prev = make(map[ID]Vector3, len(verts))
	for _, v := range verts {
		c.prev[v.ID] = v.Position
		m.UpdateVertex(v.ID, v.Position.Add(c.Delta))
	}
	m.RecalculateNormals()
	return nil
}

func (c *MoveEdge) Undo(m *Mesh) error {
	for id, pos := range c.prev {
		m.UpdateVertex(id, pos)
	}
	m.RecalculateNormals()
	return nil
}

// MoveFace translates every vertex of one face ring by Delta.
type MoveFace struct {
	FaceID ID
	Delta  Vector3

	prev map[ID]Vector3
}

func NewMoveFace(faceID ID, delta Vector3) *MoveFace {
	return &MoveFace{FaceID: faceID, Delta: delta}
}

func (c *MoveFace) CanExecute(m *Mesh) bool {
	return m.GetFace(c.FaceID) != nil
}

func (c *MoveFace) Do(m *Mesh) error {
	if m.GetFace(c.FaceID) == nil {
		return fmt.Errorf("move face %d: %w", c.FaceID, ErrUnknownFace)
	}
	verts := m.GetFaceVertices(c.FaceID)
	c.prev = make(map[ID]Vector3, len(verts))
	for _, v := range verts {
		if _, seen := c.prev[v.ID]; seen {
			continue
		}
		c.prev[v.ID] = v.Position
		m.UpdateVertex(v.ID, v.Position.Add(c.Delta))
	}
	m.RecalculateNormals()
	return nil
}

func (c *MoveFace) Undo(m *Mesh) error {
	for id, pos := range c.prev {
		m.UpdateVertex(id, pos)
	}
	m.RecalculateNormals()
	return nil
}

// NoiseDisplace pushes every vertex along its radial direction by perlin
// noise sampled at the scaled position. Positional only, so undo restores
// the recorded positions rather than snapshotting the tables.
type NoiseDisplace struct {
	Amplitude float64
	Frequency float64
	Seed      int64

	prev map[ID]Vector3
}

func NewNoiseDisplace(amplitude, frequency float64, seed int64) *NoiseDisplace {
	return &NoiseDisplace{Amplitude: amplitude, Frequency: frequency, Seed: seed}
}

func (c *NoiseDisplace) CanExecute(m *Mesh) bool {
	return m.VertexCount() > 0
}

func (c *NoiseDisplace) Do(m *Mesh) error {
	if m.VertexCount() == 0 {
		return fmt.Errorf("noise displace: empty mesh")
	}
	noise := perlin.NewPerlin(2, 2, 3, c.Seed)
	c.prev = make(map[ID]Vector3, m.VertexCount())
	for _, v := range m.Vertices() {
		c.prev[v.ID] = v.Position
		dir := v.Position.Normalized()
		if dir.Length() == 0 {
			dir = Vector3{Y: 1}
		}
		p := v.Position.Scale(c.Frequency)
		d := noise.Noise3D(p.X, p.Y, p.Z) * c.Amplitude
		m.UpdateVertex(v.ID, v.Position.Add(dir.Scale(d)))
	}
	m.RecalculateNormals()
	return nil
}

func (c *NoiseDisplace) Undo(m *Mesh) error {
	for id, pos := range c.prev {
		m.UpdateVertex(id, pos)
	}
	m.RecalculateNormals()
	return nil
}
