package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/common"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"golang.org/x/image/colornames"
)

var classColors = map[component.Class]color.RGBA{
	component.ClassPlayer:        colornames.Cornflowerblue,
	component.ClassZombie:        colornames.Olivedrab,
	component.ClassStudent:       colornames.Wheat,
	component.ClassBook:          colornames.Saddlebrown,
	component.ClassWheel:         colornames.Dimgray,
	component.ClassSpike:         colornames.Silver,
	component.ClassBoss:          colornames.Darkolivegreen,
	component.ClassBus:           colornames.Gold,
	component.ClassPlatform:      colornames.Slategray,
	component.ClassWall:          colornames.Darkslategray,
	component.ClassLadder:        colornames.Peru,
	component.ClassBlockade:      colornames.Firebrick,
	component.ClassCollectible:   colornames.Yellow,
	component.ClassDoor:          colornames.Sienna,
	component.ClassFallingHazard: colornames.Orangered,
	component.ClassCurveHazard:   colornames.Orchid,
	component.ClassReticle:       colornames.White,
	component.ClassHealthBar:     colornames.Red,
	component.ClassDebug:         colornames.Lime,
}

// drawWorld renders every entity as its box, or its mesh outline when it has
// one, in camera space.
func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	w := g.sim.World
	camEnt, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam := ecs.MustGet(w, camEnt, component.CameraComponent.Kind())
	view := cam.View()

	ecs.ForEach2(w, component.KindComponent.Kind(), component.MotionComponent.Kind(), func(e ecs.Entity, k *component.Kind, m *component.Motion) {
		if k.Class == component.ClassDebug && !g.debug {
			return
		}
		clr, ok := classColors[k.Class]
		if !ok {
			return
		}
		box := m.Box()
		if !box.Intersects(view) {
			return
		}
		if t, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok {
			clr = t.Color
		}
		if d, ok := ecs.Get(w, e, component.DoorComponent.Kind()); ok && d.Open {
			clr = colornames.Black
		}

		if mesh, ok := ecs.Get(w, e, component.MeshComponent.Kind()); ok {
			verts := common.TransformMesh(mesh.Vertices, m.Position, m.Size(), m.Angle)
			strokePolygon(screen, verts, cam, clr)
			return
		}
		x, y := float32(box.L-cam.Left), float32(box.B-cam.Top)
		bw, bh := float32(box.R-box.L), float32(box.T-box.B)
		if k.Class.IsStatic() || k.Class == component.ClassDebug {
			vector.StrokeRect(screen, x, y, bw, bh, 2, clr, false)
			return
		}
		vector.DrawFilledRect(screen, x, y, bw, bh, clr, false)
	})

	g.drawOverlay(screen)
}

func strokePolygon(screen *ebiten.Image, verts []cp.Vector, cam *component.Camera, clr color.Color) {
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		vector.StrokeLine(screen,
			float32(a.X-cam.Left), float32(a.Y-cam.Top),
			float32(b.X-cam.Left), float32(b.Y-cam.Top),
			2, clr, true)
	}
}

// drawOverlay darkens the screen by the larger of the death darkness and the
// fade overlay opacity.
func (g *Game) drawOverlay(screen *ebiten.Image) {
	alpha := g.sim.State.Darkness
	ecs.ForEach(g.sim.World, component.OverlayComponent.Kind(), func(_ ecs.Entity, o *component.Overlay) {
		alpha = max(alpha, o.Opacity)
	})
	if alpha <= 0 {
		return
	}
	alpha = common.Clamp(alpha, 0, 1)
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.RGBA{A: uint8(alpha * 255)}, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.sim.State
	msg := fmt.Sprintf("%s  %.1fs", st.Level.Name, st.ElapsedMs/1000)
	if p, ok := ecs.Get(g.sim.World, g.sim.Player, component.PlayerComponent.Kind()); ok {
		msg += fmt.Sprintf("  lives %d  collected %d/%d", p.Lives, p.Collected, st.Level.Required)
	}
	if best, ok := g.sim.Progress().Best(st.Level.Index); ok {
		msg += fmt.Sprintf("  best %.1fs", best/1000)
	}
	switch {
	case g.sim.Finished():
		msg += "\nall levels cleared"
	case g.paused:
		msg += "\npaused"
	}
	if g.debug {
		msg += fmt.Sprintf("\nframes %d  fps %.2f  entities %d", g.frames, ebiten.ActualFPS(), len(ecs.Entities(g.sim.World)))
	}
	ebitenutil.DebugPrint(screen, msg)
}
