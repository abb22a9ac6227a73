package app

import (
	"errors"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"monster-globe/internal/config"
	"monster-globe/internal/debug"
	"monster-globe/internal/fonts"
	"monster-globe/internal/globe"
	"monster-globe/internal/imagery"
	"monster-globe/internal/marker"
	"monster-globe/internal/overlay"
	"monster-globe/internal/render"
	"monster-globe/internal/ui"
)

// Preferred overlay fonts, first found wins.
var fontFamilies = []string{"Cinzel", "Cinzel Decorative", "Inter"}

// marker images are fitted to the largest card's image region once and scaled when drawn.
const imageWidth, imageHeight = 392, 196

// App is the globe viewer window content. Use it with graphics.Run.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	rt     *render.Runtime
	viewer *globe.Viewer
	state  *overlay.State
	router *Router

	ui     *ui.Engine
	header *ui.Header
	panel  *ui.MissionPanel
	debug  *debug.Debug

	layout     overlay.Layout
	lastMouse  rl.Vector2
	initFailed bool
	uiLoaded   bool
}

// New builds the app for markers. lines, when non-nil, feeds recent log lines to the debug overlay.
func New(cfg *config.Config, markers *marker.Dataset, log zerolog.Logger, lines func() []string) *App {
	state := overlay.NewState(markers.Len())
	viewer := globe.NewViewer(markers, state, cfg.GlobeParams(), log)
	a := &App{
		cfg:    cfg,
		log:    log.With().Str("component", "app").Logger(),
		rt:     render.New(render.Options{ShowHitVolumes: cfg.Debug.HitVolumes, TextureSeed: cfg.Stars.Seed}, log),
		viewer: viewer,
		state:  state,
		router: NewRouter(viewer, state, cfg.Controls.WheelStep),
		ui:     ui.New(),
		header: ui.NewHeader(ui.DefaultTitle, ui.DefaultSubtitle),
		panel:  ui.NewMissionPanel(state, imagery.NewCache(cfg.Assets.Dir, imageWidth, imageHeight, log), log),
		debug:  debug.New(),
	}
	a.debug.SetEnabled(cfg.Debug.Enabled)
	a.debug.Lines = lines
	state.OnChange(func(m *marker.Marker) {
		if m == nil {
			a.log.Debug().Msg("mission panel closed")
			return
		}
		a.log.Info().Str("marker", m.ID).Int("order", m.Order).Msg("mission panel opened")
	})
	return a
}

// Update initializes the viewer once the window is ready, then routes input.
func (a *App) Update(time.Duration) {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if !a.viewer.Ready() {
		a.initialize(w, h)
	}
	if rl.IsWindowResized() {
		a.viewer.Resize(w, h)
	}
	a.layout = overlay.NewLayout(w, h)
	a.router.SetLayout(a.layout)

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.router.Press(mouse.X, mouse.Y)
	}
	if mouse != a.lastMouse {
		a.router.Move(mouse.X, mouse.Y)
		a.lastMouse = mouse
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.router.Release(mouse.X, mouse.Y)
	}
	a.router.Wheel(rl.GetMouseWheelMove())

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.router.Escape()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		a.debug.Toggle()
	}
}

func (a *App) initialize(w, h int) {
	err := a.viewer.Initialize(a.rt, w, h)
	switch {
	case err == nil:
		a.loadUI()
	case errors.Is(err, globe.ErrRuntimeUnavailable):
		// Window not up yet; try again next frame.
	case !a.initFailed:
		a.initFailed = true
		a.log.Error().Err(err).Msg("globe initialization failed, retrying")
	}
}

func (a *App) loadUI() {
	if a.uiLoaded {
		return
	}
	a.uiLoaded = true
	if path := a.cfg.Assets.Stylesheet; path != "" {
		if err := a.ui.LoadCSS(path); err != nil {
			a.log.Warn().Err(err).Msg("overlay stylesheet not loaded, using built-in")
		}
	}
	family, path, err := fonts.FindFirst(fonts.BaseDirs(a.cfg.Assets.FontsDir), fontFamilies...)
	if err != nil {
		a.log.Info().Str("dir", a.cfg.Assets.FontsDir).Msg("no overlay font found, using default")
		return
	}
	if err := a.ui.LoadFont(path); err != nil {
		a.log.Warn().Err(err).Str("font", path).Msg("overlay font not loaded")
		return
	}
	a.debug.SetFont(a.ui.Font())
	a.log.Info().Str("family", family).Str("font", path).Msg("overlay font loaded")
}

// Draw renders the backdrop, the globe, the header, the mission panel and the debug readout.
func (a *App) Draw(dt time.Duration) {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	ui.DrawBackdrop(a.ui, w, h)
	a.viewer.Frame(dt)
	a.header.Draw(a.ui, w, h)
	a.panel.Draw(a.ui, a.layout)

	var probe debug.Probe
	if cam := a.viewer.Camera(); cam != nil {
		probe.CameraDistance = cam.Distance()
	}
	if s := a.viewer.Scene(); s != nil && s.Globe != nil {
		probe.Rotation = s.Globe.Rotation
	}
	if m := a.state.Selected(); m != nil {
		probe.Selected = m.ID
	}
	a.debug.Draw(probe)
}

// Close releases overlay textures, the font and the globe.
func (a *App) Close() error {
	a.panel.Release()
	a.ui.Unload()
	return a.viewer.Close()
}
