package vector3d

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game hosts a Viewer in an ebiten window. Update computes a frame, Draw
// paints the last computed frame.
type Game struct {
	viewer   *Viewer
	reloader *SceneReloader
	width    int
	height   int
}

func NewGame(v *Viewer, cfg Config) *Game {
	return &Game{
		viewer: v,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}
}

// SetReloader makes the game swap in scenes rebuilt by r.
func (g *Game) SetReloader(r *SceneReloader) {
	g.reloader = r
}

func (g *Game) Update() error {
	if g.reloader != nil {
		if next := g.reloader.Take(); next != nil {
			next.state = g.viewer.state
			g.viewer = next
		}
	}

	for _, a := range pollActions() {
		if err := g.viewer.HandleAction(a); err != nil {
			return ebiten.Termination
		}
	}

	switch g.viewer.State() {
	case StateTerminated:
		log.Println("Terminating.")
		return ebiten.Termination
	case StatePaused:
		return nil
	}
	g.viewer.Rotate()
	g.viewer.Calculate()
	return nil
}

func pollActions() []Action {
	var actions []Action
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		actions = append(actions, ActionTerminate)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		actions = append(actions, ActionTogglePause)
	}
	return actions
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.viewer.Display(NewEbitenCanvas(screen))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// RunGame opens the window and blocks until the viewer terminates.
func RunGame(g *Game, cfg Config) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.FPS)
	ebiten.SetWindowClosingHandled(true)
	log.Printf("Starting viewer %dx%d at %d fps", cfg.Window.Width, cfg.Window.Height, cfg.Window.FPS)
	return ebiten.RunGame(g)
}
