package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/vknauss/ld53/ecs"
	"github.com/vknauss/ld53/game"
	"github.com/vknauss/ld53/physics"
	"github.com/vknauss/ld53/prefabs"
	"github.com/vknauss/ld53/scene"
)

const (
	fixedDT       = 1.0 / 60.0
	pixelsPerUnit = 64.0
)

// App hosts the simulation inside an ebiten game loop: step the world at a
// fixed dt, then draw every collider from its world transform. With -watch it
// rebuilds the world whenever the scene file's directory reports a change.
type App struct {
	logger    *zap.Logger
	scenePath string
	world     *game.World
	watcher   *prefabs.Watcher

	whitePixel *ebiten.Image
	frames     int

	drawOrder []drawEntry
}

type drawEntry struct {
	e         ecs.Entity
	transform scene.Transform
}

func NewApp(logger *zap.Logger, scenePath string, watch bool) (*App, error) {
	app := &App{
		logger:     logger,
		scenePath:  scenePath,
		whitePixel: ebiten.NewImage(1, 1),
	}
	app.whitePixel.Fill(color.White)

	if err := app.loadWorld(); err != nil {
		return nil, err
	}

	if watch {
		w, err := prefabs.NewWatcher(filepath.Dir(scenePath))
		if err != nil {
			return nil, fmt.Errorf("watch scene dir: %w", err)
		}
		app.watcher = w
	}

	return app, nil
}

func (a *App) Close() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}

func (a *App) loadWorld() error {
	spec, err := prefabs.LoadScene(a.scenePath)
	if err != nil {
		return err
	}

	w := game.NewWorld(a.logger.Named("sim"))
	handlers := map[string]physics.Handler{
		"bonk": &game.ContactDamage{
			World:    w,
			Damage:   5,
			Sound:    "bonk",
			Cooldown: 0.5,
		},
	}
	if _, err := prefabs.Build(w, spec, handlers); err != nil {
		return err
	}

	a.world = w
	a.logger.Info("scene loaded",
		zap.String("path", a.scenePath),
		zap.Int("colliders", a.world.Colliders.Len()))
	return nil
}

func (a *App) Update() error {
	a.frames++

	if a.watcher != nil {
		select {
		case path := <-a.watcher.Events:
			a.logger.Info("scene changed, reloading", zap.String("path", path))
			if err := a.loadWorld(); err != nil {
				a.logger.Warn("reload failed, keeping old scene", zap.Error(err))
			}
		case err := <-a.watcher.Errors:
			a.logger.Warn("scene watcher", zap.Error(err))
		default:
		}
	}

	a.world.Update(fixedDT)

	for _, name := range a.world.Sounds.Drain() {
		// stand-in for the audio subsystem: the sim only issues commands
		a.logger.Debug("play sound", zap.String("name", name))
	}

	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	// read transforms once per frame, after the step, then depth-sort
	a.drawOrder = a.drawOrder[:0]
	for _, e := range a.world.Colliders.Entities() {
		a.drawOrder = append(a.drawOrder, drawEntry{e: e, transform: a.world.Graph.WorldTransform(e)})
	}
	sort.SliceStable(a.drawOrder, func(i, j int) bool {
		return a.drawOrder[i].transform.Depth < a.drawOrder[j].transform.Depth
	})

	for _, entry := range a.drawOrder {
		c := a.world.Colliders.Get(entry.e)
		if c == nil {
			continue
		}

		var geom ebiten.GeoM
		geom.Scale(2*c.HalfExtents.X, 2*c.HalfExtents.Y)
		geom.Translate(-c.HalfExtents.X, -c.HalfExtents.Y)

		m := entry.transform.Matrix()
		var world ebiten.GeoM
		world.SetElement(0, 0, m.XX)
		world.SetElement(0, 1, m.XY)
		world.SetElement(0, 2, m.TX)
		world.SetElement(1, 0, m.YX)
		world.SetElement(1, 1, m.YY)
		world.SetElement(1, 2, m.TY)
		geom.Concat(world)

		// world units to screen pixels, y up, origin at screen center
		geom.Scale(pixelsPerUnit, -pixelsPerUnit)
		geom.Translate(baseWidth/2, baseHeight/2)

		op := &ebiten.DrawImageOptions{GeoM: geom}
		op.ColorScale.ScaleWithColor(a.entityColor(entry.e))
		screen.DrawImage(a.whitePixel, op)
	}

	maxSpeed := 0.0
	for _, d := range a.world.Dynamics.All() {
		if s := d.Velocity.Length(); s > maxSpeed {
			maxSpeed = s
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Frames: %d    FPS: %.2f    Colliders: %d    Contacts: %d    Max speed: %.2f",
		a.frames, ebiten.ActualFPS(), a.world.Colliders.Len(), len(a.world.Physics.Records()), maxSpeed))
}

func (a *App) entityColor(e ecs.Entity) color.Color {
	if h := a.world.Healths.Get(e); h != nil && h.Max > 0 {
		// fade toward red as health drops
		frac := h.Value / h.Max
		return color.RGBA{R: 0xe0, G: uint8(0x30 + 0xa0*frac), B: 0x30, A: 0xff}
	}
	if d := a.world.Dynamics.Get(e); d != nil && d.Mass > 0 {
		return color.RGBA{R: 0x50, G: 0x90, B: 0xe0, A: 0xff}
	}
	return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
