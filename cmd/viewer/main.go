package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/smasonuk/siemesh"
)

// Wireframe viewer over the mesh kernel. The mesh is only ever touched
// through the command history, so every keypress is undoable.
//
//	E extrude first face    F fillet first edge
//	C chamfer first edge    S shell
//	N noise displace        M mirror across YZ
//	Z undo                  Y redo
//	mouse drag rotates the camera

type Game struct {
	cfg     viewerConfig
	mesh    *siemesh.Mesh
	history *siemesh.History

	yaw, pitch   float64
	isDragging   bool
	lastX, lastY int
	status       string
	noiseSeed    int64
}

func NewGame(cfg viewerConfig) (*Game, error) {
	mesh, err := buildPrimitive(cfg.Primitive, cfg.Size)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:     cfg,
		mesh:    mesh,
		history: siemesh.NewHistory(0),
		status:  cfg.Primitive,
	}, nil
}

func (g *Game) run(name string, cmd siemesh.Command) {
	if err := g.history.Execute(cmd, g.mesh); err != nil {
		g.status = fmt.Sprintf("%s: %v", name, err)
		return
	}
	g.status = name
}

func (g *Game) Update() error {
	g.yaw += g.cfg.Spin

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.isDragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.isDragging {
		x, y := ebiten.CursorPosition()
		g.yaw += float64(x-g.lastX) / 200.0
		g.pitch += float64(y-g.lastY) / 200.0
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.isDragging = false
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		if faces := g.mesh.Faces(); len(faces) > 0 {
			g.run("extrude", siemesh.NewExtrudeFace(faces[0].ID, g.cfg.Size/4))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if edges := g.mesh.Edges(); len(edges) > 0 {
			g.run("fillet", siemesh.NewFilletEdge(edges[0].ID, g.cfg.Size/8))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		if edges := g.mesh.Edges(); len(edges) > 0 {
			g.run("chamfer", siemesh.NewChamferEdge(edges[0].ID, g.cfg.Size/8))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.run("shell", siemesh.NewShell(g.cfg.Size/10))
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.noiseSeed++
		g.run("noise", siemesh.NewNoiseDisplace(g.cfg.Size/10, 1.5, g.noiseSeed))
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.run("mirror", siemesh.NewMirror(siemesh.MirrorPlane{Normal: siemesh.NewVector3(1, 0, 0)}))
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if err := g.history.Undo(g.mesh); err != nil {
			g.status = err.Error()
		} else {
			g.status = "undo"
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		if err := g.history.Redo(g.mesh); err != nil {
			g.status = err.Error()
		} else {
			g.status = "redo"
		}
	}
	return nil
}

// project rotates a point by the camera angles and applies a simple
// perspective divide. ok is false behind the near plane.
func (g *Game) project(p siemesh.Vector3) (float32, float32, bool) {
	origin := siemesh.Vector3{}
	p = siemesh.RotateAround(p, origin, siemesh.NewVector3(0, 1, 0), g.yaw)
	p = siemesh.RotateAround(p, origin, siemesh.NewVector3(1, 0, 0), g.pitch)

	z := p.Z + g.cfg.Distance
	if z <= 0.1 {
		return 0, 0, false
	}
	focal := float64(g.cfg.Height)
	x := float32(float64(g.cfg.Width)/2 + focal*p.X/z)
	y := float32(float64(g.cfg.Height)/2 - focal*p.Y/z)
	return x, y, true
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	for _, e := range g.mesh.Edges() {
		h := g.mesh.GetHalfEdge(e.HalfEdge)
		if h == nil {
			continue
		}
		a := g.mesh.GetVertex(g.mesh.HalfEdgeSource(h))
		b := g.mesh.GetVertex(h.Target)
		if a == nil || b == nil {
			continue
		}
		x1, y1, ok1 := g.project(a.Position)
		x2, y2, ok2 := g.project(b.Position)
		if !ok1 || !ok2 {
			continue
		}
		vector.StrokeLine(screen, x1, y1, x2, y2, 1, color.White, false)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %0.2f  V:%d E:%d F:%d  history:%d\n%s",
		ebiten.ActualFPS(),
		g.mesh.VertexCount(), g.mesh.EdgeCount(), g.mesh.FaceCount(),
		g.history.Len(),
		g.status,
	))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func main() {
	configPath := flag.String("config", "", "path to a viewer config.toml")
	primitive := flag.String("primitive", "", "starting primitive, overrides the config file")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *primitive != "" {
		cfg.Primitive = *primitive
	}
	if _, err := buildPrimitive(cfg.Primitive, cfg.Size); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("siemesh viewer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
