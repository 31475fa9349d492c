package siemesh

import (
	"errors"
	"fmt"
	"math"
)

// Every command here changes topology, so each takes a whole-mesh snapshot
// before its first mutation and restores it verbatim on undo. That is a
// correctness-first baseline: enumerating the exact forward edit set of an
// extrude or merge is error-prone, a snapshot swap is not. The snapshot is
// taken before anything is touched, so a command that errors out part-way
// can still be reversed.
//
// The post-execute state is captured too: re-running Do after an undo (a
// redo) restores that snapshot instead of rebuilding, so redone entities
// keep the ids they were first given and later commands that reference them
// stay valid. A command instance is therefore single-use outside the
// Unexecuted -> Executed -> Unexecuted cycle.
type snapshotUndo struct {
	before *MeshSnapshot
	after  *MeshSnapshot
}

func (s *snapshotUndo) take(m *Mesh) {
	s.before = m.Snapshot()
}

// replay restores the recorded post-execute state on redo. Commands call it
// first thing in Do and return when it reports true.
func (s *snapshotUndo) replay(m *Mesh) bool {
	if s.after == nil {
		return false
	}
	m.Restore(s.after)
	return true
}

func (s *snapshotUndo) finish(m *Mesh) {
	s.after = m.Snapshot()
}

func (s *snapshotUndo) Undo(m *Mesh) error {
	if s.before == nil {
		return errors.New("command was never executed")
	}
	m.Restore(s.before)
	return nil
}

// ExtrudeFace offsets a copy of the face's vertex ring along the stored face
// normal, stitches side quads between the two rings, and replaces the base
// face with the offset ring.
type ExtrudeFace struct {
	snapshotUndo
	FaceID   ID
	Distance float64
}

func NewExtrudeFace(faceID ID, distance float64) *ExtrudeFace {
	return &ExtrudeFace{FaceID: faceID, Distance: distance}
}

func (c *ExtrudeFace) CanExecute(m *Mesh) bool {
	return m.GetFace(c.FaceID) != nil
}

func (c *ExtrudeFace) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	face := m.GetFace(c.FaceID)
	if face == nil {
		return fmt.Errorf("extrude face %d: %w", c.FaceID, ErrUnknownFace)
	}
	ring := m.FaceVertexIDs(c.FaceID)
	if len(ring) < 3 {
		return fmt.Errorf("extrude face %d: broken boundary loop", c.FaceID)
	}
	c.take(m)

	var normal Vector3
	if face.Normal != nil {
		normal = *face.Normal
	} else {
		normal = NewellNormal(m.positionsOf(ring))
	}
	offset := normal.Scale(c.Distance)

	top := make([]ID, len(ring))
	for i, vid := range ring {
		top[i] = m.AddVertex(m.GetVertex(vid).Position.Add(offset)).ID
	}

	m.RemoveFaceWithLoop(c.FaceID)

	n := len(ring)
	for i := 0; i < n; i++ {
		m.AddFace([]ID{ring[i], ring[(i+1)%n], top[(i+1)%n], top[i]})
	}
	m.AddFace(top)

	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// SubdivideEdge inserts one new vertex at the midpoint of the edge. The
// surrounding half-edges and faces are not re-routed through it; the new
// vertex is free-floating until a later edit picks it up.
type SubdivideEdge struct {
	snapshotUndo
	EdgeID ID
}

func NewSubdivideEdge(edgeID ID) *SubdivideEdge {
	return &SubdivideEdge{EdgeID: edgeID}
}

func (c *SubdivideEdge) CanExecute(m *Mesh) bool {
	return m.GetEdge(c.EdgeID) != nil
}

func (c *SubdivideEdge) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	a, b, err := edgeEndpoints(m, c.EdgeID)
	if err != nil {
		return fmt.Errorf("subdivide: %w", err)
	}
	c.take(m)
	m.AddVertex(a.Position.Lerp(b.Position, 0.5))
	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// MergeFaces unions the vertex ids of all input faces in first-seen order,
// removes the originals, and re-adds the union as one new face. This is not
// a polygon union: it is only well formed when the inputs already share
// boundary vertices in a simple configuration.
type MergeFaces struct {
	snapshotUndo
	FaceIDs []ID
}

func NewMergeFaces(faceIDs []ID) *MergeFaces {
	return &MergeFaces{FaceIDs: faceIDs}
}

func (c *MergeFaces) CanExecute(m *Mesh) bool {
	for _, id := range c.FaceIDs {
		if m.GetFace(id) == nil {
			return false
		}
	}
	return len(c.FaceIDs) > 0
}

func (c *MergeFaces) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	for _, id := range c.FaceIDs {
		if m.GetFace(id) == nil {
			return fmt.Errorf("merge faces: face %d: %w", id, ErrUnknownFace)
		}
	}
	c.take(m)
	if len(c.FaceIDs) < 2 {
		logger.Warn().Int("faces", len(c.FaceIDs)).Msg("merge needs at least two faces, skipping")
		c.finish(m)
		return nil
	}

	var union []ID
	seen := make(map[ID]bool)
	for _, fid := range c.FaceIDs {
		for _, vid := range m.FaceVertexIDs(fid) {
			if !seen[vid] {
				seen[vid] = true
				union = append(union, vid)
			}
		}
	}
	for _, fid := range c.FaceIDs {
		m.RemoveFaceWithLoop(fid)
	}
	m.AddFace(union)
	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// SplitFace cuts one face into two along the diagonal between two of its
// boundary vertices.
type SplitFace struct {
	snapshotUndo
	FaceID  ID
	VertexA ID
	VertexB ID
}

func NewSplitFace(faceID, vertexA, vertexB ID) *SplitFace {
	return &SplitFace{FaceID: faceID, VertexA: vertexA, VertexB: vertexB}
}

func (c *SplitFace) CanExecute(m *Mesh) bool {
	return m.GetFace(c.FaceID) != nil
}

func (c *SplitFace) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	if m.GetFace(c.FaceID) == nil {
		return fmt.Errorf("split face %d: %w", c.FaceID, ErrUnknownFace)
	}
	ring := m.FaceVertexIDs(c.FaceID)
	ia, ib := -1, -1
	for i, vid := range ring {
		switch vid {
		case c.VertexA:
			ia = i
		case c.VertexB:
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return fmt.Errorf("split face %d: vertex not on boundary: %w", c.FaceID, ErrUnknownVertex)
	}
	c.take(m)

	n := len(ring)
	if (ia+1)%n == ib || (ib+1)%n == ia {
		// adjacent vertices make a zero-area sliver, not a diagonal
		logger.Warn().Int64("face", int64(c.FaceID)).Msg("split diagonal is an existing boundary edge, skipping")
		c.finish(m)
		return nil
	}

	// walk a..b and b..a, both inclusive
	var left, right []ID
	for i := ia; ; i = (i + 1) % n {
		left = append(left, ring[i])
		if i == ib {
			break
		}
	}
	for i := ib; ; i = (i + 1) % n {
		right = append(right, ring[i])
		if i == ia {
			break
		}
	}

	m.RemoveFaceWithLoop(c.FaceID)
	m.AddFace(left)
	m.AddFace(right)
	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// Mirror reflects every vertex across the plane and rebuilds every face with
// reversed winding so normals stay outward-facing.
type Mirror struct {
	snapshotUndo
	Plane MirrorPlane
}

func NewMirror(plane MirrorPlane) *Mirror {
	return &Mirror{Plane: plane}
}

func (c *Mirror) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	c.take(m)

	rings := make([][]ID, 0, m.FaceCount())
	faceIDs := make([]ID, 0, m.FaceCount())
	for _, f := range m.Faces() {
		rings = append(rings, m.FaceVertexIDs(f.ID))
		faceIDs = append(faceIDs, f.ID)
	}
	for _, fid := range faceIDs {
		m.RemoveFaceWithLoop(fid)
	}
	for _, v := range m.Vertices() {
		v.HalfEdge = NoID
		m.UpdateVertex(v.ID, c.Plane.Reflect(v.Position))
	}
	for _, ring := range rings {
		reversed := make([]ID, len(ring))
		for i, vid := range ring {
			reversed[len(ring)-1-i] = vid
		}
		m.AddFace(reversed)
	}
	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// LinearPattern emits count-1 additional translated copies of every vertex
// and face, offset by integer multiples of Direction * Spacing.
type LinearPattern struct {
	snapshotUndo
	Direction Vector3
	Count     int
	Spacing   float64
}

func NewLinearPattern(direction Vector3, count int, spacing float64) *LinearPattern {
	return &LinearPattern{Direction: direction, Count: count, Spacing: spacing}
}

func (c *LinearPattern) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	c.take(m)
	if c.Count < 2 {
		logger.Warn().Int("count", c.Count).Msg("pattern count below 2, skipping")
		c.finish(m)
		return nil
	}
	patternCopies(m, c.Count, func(pos Vector3, k int) Vector3 {
		return pos.Add(c.Direction.Scale(c.Spacing * float64(k)))
	})
	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// CircularPattern is the rotational sibling of LinearPattern: count-1 copies
// rotated around the axis in steps of Step radians.
type CircularPattern struct {
	snapshotUndo
	Origin Vector3
	Axis   Vector3
	Count  int
	Step   float64
}

func NewCircularPattern(origin, axis Vector3, count int, step float64) *CircularPattern {
	return &CircularPattern{Origin: origin, Axis: axis, Count: count, Step: step}
}

func (c *CircularPattern) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	c.take(m)
	if c.Count < 2 {
		logger.Warn().Int("count", c.Count).Msg("pattern count below 2, skipping")
		c.finish(m)
		return nil
	}
	if c.Axis.Length() == 0 {
		logger.Warn().Msg("pattern axis is the zero vector, skipping")
		c.finish(m)
		return nil
	}
	patternCopies(m, c.Count, func(pos Vector3, k int) Vector3 {
		return RotateAround(pos, c.Origin, c.Axis, c.Step*float64(k))
	})
	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// patternCopies adds count-1 transformed copies of the current vertices and
// faces. The transform sees the copy index k starting at 1.
func patternCopies(m *Mesh, count int, transform func(pos Vector3, k int) Vector3) {
	origVerts := m.Vertices()
	var rings [][]ID
	for _, f := range m.Faces() {
		rings = append(rings, m.FaceVertexIDs(f.ID))
	}

	for k := 1; k < count; k++ {
		remap := make(map[ID]ID, len(origVerts))
		for _, v := range origVerts {
			remap[v.ID] = m.AddVertex(transform(v.Position, k)).ID
		}
		for _, ring := range rings {
			mapped := make([]ID, len(ring))
			for i, vid := range ring {
				mapped[i] = remap[vid]
			}
			m.AddFace(mapped)
		}
	}
}

// filletMaxRatio: a trim larger than this fraction of the edge length would
// eat past the midpoint region, so the operation is skipped with a warning.
const filletMaxRatio = 0.4

// FilletEdge rounds one edge: the edge is trimmed at Radius from each
// endpoint, arc vertices are interpolated between the trim points bulging
// along the averaged adjacent-face normal, and triangles are fanned across
// the arc. An oversized radius logs a warning and leaves the mesh untouched.
type FilletEdge struct {
	snapshotUndo
	EdgeID   ID
	Radius   float64
	Segments int
}

func NewFilletEdge(edgeID ID, radius float64) *FilletEdge {
	return &FilletEdge{EdgeID: edgeID, Radius: radius, Segments: 4}
}

func (c *FilletEdge) CanExecute(m *Mesh) bool {
	return m.GetEdge(c.EdgeID) != nil
}

func (c *FilletEdge) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	a, b, err := edgeEndpoints(m, c.EdgeID)
	if err != nil {
		return fmt.Errorf("fillet: %w", err)
	}
	c.take(m)

	length := a.Position.DistanceTo(b.Position)
	if length == 0 || c.Radius <= 0 || c.Radius > filletMaxRatio*length {
		logger.Warn().
			Float64("radius", c.Radius).
			Float64("edgeLength", length).
			Msg("fillet radius outside 40% of edge length, skipping")
		c.finish(m)
		return nil
	}

	segments := c.Segments
	if segments < 2 {
		segments = 4
	}

	v1 := a.Position.Lerp(b.Position, c.Radius/length)
	v2 := a.Position.Lerp(b.Position, 1-c.Radius/length)
	bulge := adjacentNormal(m, c.EdgeID)
	// circular sagitta of a quarter arc with radius Radius
	sag := c.Radius * (1 - math.Cos(math.Pi/4))

	arc := make([]ID, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		p := v1.Lerp(v2, t).Add(bulge.Scale(sag * math.Sin(math.Pi*t)))
		arc[i] = m.AddVertex(p).ID
	}

	// fan across the arc from endpoint a, then close back to b
	for i := 0; i < segments; i++ {
		m.AddFace([]ID{a.ID, arc[i], arc[i+1]})
	}
	m.AddFace([]ID{a.ID, arc[segments], b.ID})

	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// ChamferEdge is the flat variant of FilletEdge: two trim vertices and one
// bridging quad. The same 40% guard applies to the chamfer distance.
type ChamferEdge struct {
	snapshotUndo
	EdgeID   ID
	Distance float64
}

func NewChamferEdge(edgeID ID, distance float64) *ChamferEdge {
	return &ChamferEdge{EdgeID: edgeID, Distance: distance}
}

func (c *ChamferEdge) CanExecute(m *Mesh) bool {
	return m.GetEdge(c.EdgeID) != nil
}

func (c *ChamferEdge) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	a, b, err := edgeEndpoints(m, c.EdgeID)
	if err != nil {
		return fmt.Errorf("chamfer: %w", err)
	}
	c.take(m)

	length := a.Position.DistanceTo(b.Position)
	if length == 0 || c.Distance <= 0 || c.Distance > filletMaxRatio*length {
		logger.Warn().
			Float64("distance", c.Distance).
			Float64("edgeLength", length).
			Msg("chamfer distance outside 40% of edge length, skipping")
		c.finish(m)
		return nil
	}

	bulge := adjacentNormal(m, c.EdgeID)
	sag := c.Distance * (1 - math.Cos(math.Pi/4))
	v1 := m.AddVertex(a.Position.Lerp(b.Position, c.Distance/length).Add(bulge.Scale(sag)))
	v2 := m.AddVertex(a.Position.Lerp(b.Position, 1-c.Distance/length).Add(bulge.Scale(sag)))
	m.AddFace([]ID{a.ID, v1.ID, v2.ID, b.ID})

	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// Loft stitches side quads between consecutive profile faces. Profiles must
// all have the same ring length; fewer than two profiles or mismatched
// rings log a warning and skip.
type Loft struct {
	snapshotUndo
	ProfileFaceIDs []ID
}

func NewLoft(profileFaceIDs []ID) *Loft {
	return &Loft{ProfileFaceIDs: profileFaceIDs}
}

func (c *Loft) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	for _, id := range c.ProfileFaceIDs {
		if m.GetFace(id) == nil {
			return fmt.Errorf("loft: face %d: %w", id, ErrUnknownFace)
		}
	}
	c.take(m)

	if len(c.ProfileFaceIDs) < 2 {
		logger.Warn().Int("profiles", len(c.ProfileFaceIDs)).Msg("loft needs at least two profiles, skipping")
		c.finish(m)
		return nil
	}
	rings := make([][]ID, len(c.ProfileFaceIDs))
	for i, fid := range c.ProfileFaceIDs {
		rings[i] = m.FaceVertexIDs(fid)
		if len(rings[i]) != len(rings[0]) {
			logger.Warn().
				Int64("face", int64(fid)).
				Int("want", len(rings[0])).
				Int("got", len(rings[i])).
				Msg("loft profiles have mismatched vertex counts, skipping")
			c.finish(m)
			return nil
		}
	}

	for p := 0; p < len(rings)-1; p++ {
		r1, r2 := rings[p], rings[p+1]
		n := len(r1)
		for i := 0; i < n; i++ {
			m.AddFace([]ID{r1[i], r1[(i+1)%n], r2[(i+1)%n], r2[i]})
		}
	}
	m.RecalculateNormals()
	c.finish(m)
	return nil
}

// Shell thickens the mesh by emitting an inward-offset, reverse-wound copy
// of every face. Inner vertices are created per face and not welded across
// faces; this is simple thickening, not a solid offset.
type Shell struct {
	snapshotUndo
	Thickness float64
}

func NewShell(thickness float64) *Shell {
	return &Shell{Thickness: thickness}
}

func (c *Shell) CanExecute(m *Mesh) bool {
	return m.FaceCount() > 0
}

func (c *Shell) Do(m *Mesh) error {
	if c.replay(m) {
		return nil
	}
	if m.FaceCount() == 0 {
		return fmt.Errorf("shell: mesh has no faces")
	}
	c.take(m)

	var rings [][]Vector3
	var normals []Vector3
	for _, f := range m.Faces() {
		verts := m.GetFaceVertices(f.ID)
		ring := make([]Vector3, len(verts))
		for i, v := range verts {
			ring[i] = v.Position
		}
		rings = append(rings, ring)
		if f.Normal != nil {
			normals = append(normals, *f.Normal)
		} else {
			normals = append(normals, NewellNormal(ring))
		}
	}

	for i, ring := range rings {
		inset := normals[i].Scale(-c.Thickness)
		inner := make([]ID, len(ring))
		for j, pos := range ring {
			// reversed winding for the inner surface
			inner[len(ring)-1-j] = m.AddVertex(pos.Add(inset)).ID
		}
		m.AddFace(inner)
	}
	m.RecalculateNormals()
	c.finish(m)
	return nil
}

func edgeEndpoints(m *Mesh, edgeID ID) (*Vertex, *Vertex, error) {
	edge := m.GetEdge(edgeID)
	if edge == nil {
		return nil, nil, fmt.Errorf("edge %d: %w", edgeID, ErrUnknownEdge)
	}
	h := m.GetHalfEdge(edge.HalfEdge)
	if h == nil {
		return nil, nil, fmt.Errorf("edge %d: dangling half-edge %d", edgeID, edge.HalfEdge)
	}
	a := m.GetVertex(m.HalfEdgeSource(h))
	b := m.GetVertex(h.Target)
	if a == nil || b == nil {
		return nil, nil, fmt.Errorf("edge %d: %w", edgeID, ErrUnknownVertex)
	}
	return a, b, nil
}

// adjacentNormal averages the normals of the two faces sharing the edge,
// falling back to +Z when neither face has one.
func adjacentNormal(m *Mesh, edgeID ID) Vector3 {
	edge := m.GetEdge(edgeID)
	if edge == nil {
		return Vector3{Z: 1}
	}
	var sum Vector3
	if h := m.GetHalfEdge(edge.HalfEdge); h != nil {
		if f := m.GetFace(h.Face); f != nil && f.Normal != nil {
			sum = sum.Add(*f.Normal)
		}
		if twin := m.GetHalfEdge(h.Twin); twin != nil {
			if f := m.GetFace(twin.Face); f != nil && f.Normal != nil {
				sum = sum.Add(*f.Normal)
			}
		}
	}
	if sum.Length() == 0 {
		return Vector3{Z: 1}
	}
	return sum.Normalized()
}
