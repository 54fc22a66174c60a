// Package runtime drives the active display and game units: it owns the two
// module slots, the texture registry, the input router and the frame
// scheduler, and acts on the reserved control buttons.
package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runtime/internal/config"
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/input"
	"github.com/vovakirdan/arcade-runtime/internal/module"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
	"github.com/vovakirdan/arcade-runtime/internal/scheduler"
	"github.com/vovakirdan/arcade-runtime/internal/texture"
	"github.com/vovakirdan/arcade-runtime/internal/watch"
)

// MenuName is the session name used while the menu is the active game.
const MenuName = "menu"

// Options configures a Controller.
type Options struct {
	Config config.Config
	Store  ScoreStore      // nil keeps scores in memory only
	Clock  scheduler.Clock // nil uses the system clock
	Logger *log.Logger
}

// Controller owns the top-level lifecycle. It is confined to the goroutine
// that calls Start and Run.
type Controller struct {
	cfg config.Config
	ctx context.Context

	displaySlot *module.Slot[core.Display]
	gameSlot    *module.Slot[registry.Game]
	displays    *Catalog
	games       *Catalog
	inMenu      bool

	textures *texture.Registry
	router   *input.Router
	sched    *scheduler.Scheduler
	host     *host
	watcher  *watch.Watcher

	store  ScoreStore
	scores *ScoreList
	player string

	pendingLaunch string
	failure       error

	log *log.Logger
}

// New validates the configuration and builds an idle controller.
func New(opts Options) (*Controller, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sched, err := scheduler.New(opts.Config.Framerate, opts.Config.CatchUpCap, opts.Clock, logger)
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}

	opener := module.NewOpener(logger)
	c := &Controller{
		cfg:         opts.Config,
		ctx:         context.Background(),
		displaySlot: module.NewDisplaySlot(opener, logger),
		gameSlot:    module.NewGameSlot(opener, logger),
		displays:    NewCatalog(opts.Config.Displays),
		games:       NewCatalog(opts.Config.Games),
		textures:    texture.New(nil, logger),
		sched:       sched,
		store:       opts.Store,
		player:      opts.Config.Start.Player,
		log:         logger.WithPrefix("runtime"),
	}
	c.host = &host{c: c}
	return c, nil
}

// Start loads the configured display and game. A failure here is fatal: any
// unit already loaded is released again and the error is returned.
func (c *Controller) Start(ctx context.Context) error {
	c.ctx = context.WithoutCancel(ctx)

	idx := 0
	if name := c.cfg.Start.Display; name != "" {
		idx = c.displays.Index(name)
	}
	if idx < 0 {
		return fmt.Errorf("runtime: unknown display %q", c.cfg.Start.Display)
	}
	unit := c.displays.At(idx)
	if err := c.displaySlot.Load(c.ctx, unit.Path); err != nil {
		return fmt.Errorf("runtime: start display %s: %w", unit.Name, err)
	}
	c.displays.Select(idx)

	abort := func(err error) error {
		return errors.Join(err, c.displaySlot.Unload(c.ctx))
	}

	d := c.displaySlot.Instance()
	if err := c.textures.ReloadAll(d); err != nil {
		return abort(fmt.Errorf("runtime: bind display: %w", err))
	}
	if err := c.textures.SetCellPixelSize(c.cfg.CellPixelSize); err != nil {
		return abort(fmt.Errorf("runtime: %w", err))
	}
	c.router = input.NewRouter(d)

	var err error
	if name := c.cfg.Start.Game; name != "" {
		gi := c.games.Index(name)
		if gi < 0 {
			err = fmt.Errorf("unknown game %q", name)
		} else {
			err = c.loadGame(c.games.At(gi).Path, c.games.At(gi).Name, gi)
		}
	} else {
		err = c.loadGame(c.cfg.Menu, MenuName, -1)
	}
	if err != nil {
		return abort(fmt.Errorf("runtime: start game: %w", err))
	}

	if c.cfg.Watch {
		c.startWatch()
	}
	c.log.Info("started", "display", unit.Name, "game", c.scores.Game())
	return nil
}

func (c *Controller) startWatch() {
	w, err := watch.New(c.watchPaths(), c.log)
	if err != nil {
		c.log.Warn("watch disabled", "err", err)
		return
	}
	c.watcher = w
}

// watchPaths lists the unit files a rebuild can be reloaded from. Builtins
// have no file, and the Go runtime keeps a plugin mapped once opened, so a
// rebuilt .so would never take effect.
func (c *Controller) watchPaths() []string {
	units := append(append([]config.Unit{}, c.cfg.Displays...), c.cfg.Games...)
	if c.cfg.Menu != "" {
		units = append(units, config.Unit{Name: MenuName, Path: c.cfg.Menu})
	}
	var paths []string
	for _, u := range units {
		switch module.Format(u.Path) {
		case module.FormatBuiltin:
		case module.FormatPlugin:
			c.log.Warn("go plugins cannot be hot-reloaded, not watching", "unit", u.Name, "path", u.Path)
		default:
			paths = append(paths, u.Path)
		}
	}
	return paths
}

// Run drives frames until Exit is requested, the display fails or ctx is
// cancelled, then unloads both units.
func (c *Controller) Run(ctx context.Context) error {
	if c.displaySlot.State() != module.Active {
		return fmt.Errorf("runtime: run: %w", core.ErrNoBackend)
	}
	err := c.sched.Run(ctx, c)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, c.failure, c.shutdown())
}

// Step runs a single frame cycle.
func (c *Controller) Step() (bool, error) {
	return c.sched.Step(c)
}

func (c *Controller) shutdown() error {
	c.endSession()

	var errs []error
	if c.gameSlot.State() != module.Unloaded {
		errs = append(errs, c.gameSlot.Unload(c.ctx))
	}
	c.textures.Close()
	if c.displaySlot.State() != module.Unloaded {
		errs = append(errs, c.displaySlot.Unload(c.ctx))
	}
	if c.watcher != nil {
		errs = append(errs, c.watcher.Close())
	}
	c.log.Info("stopped")
	return errors.Join(errs...)
}

// fail records an environment failure; the loop stops at the next frame.
func (c *Controller) fail(err error) {
	c.log.Error("runtime failure", "err", err)
	if c.failure == nil {
		c.failure = err
	}
}

func (c *Controller) display() core.Display {
	return c.displaySlot.Instance()
}

func (c *Controller) game() registry.Game {
	return c.gameSlot.Instance()
}

// Begin implements scheduler.Loop. Control events are handled here, before
// any tick of the frame runs.
func (c *Controller) Begin() bool {
	if c.failure != nil {
		return false
	}

	if c.watcher != nil {
		for _, path := range c.watcher.Pending() {
			c.reloadChanged(path)
		}
	}
	if name := c.pendingLaunch; name != "" {
		c.pendingLaunch = ""
		c.launch(name)
	}

	ev := c.router.BeginFrame()
	if ev != input.ControlNone {
		c.log.Debug("control", "event", ev)
	}
	switch ev {
	case input.Exit:
		return false
	case input.NextDisplay:
		c.switchDisplay(c.displays.Peek(1))
	case input.PreviousDisplay:
		c.switchDisplay(c.displays.Peek(-1))
	case input.NextGame:
		c.switchGame(c.games.Peek(1))
	case input.PreviousGame:
		c.switchGame(c.games.Peek(-1))
	case input.Restart:
		c.restart()
	case input.ReturnToMenu:
		c.enterMenu()
	}
	return c.failure == nil
}

// Tick implements scheduler.Loop.
func (c *Controller) Tick() {
	c.game().Update()
}

// PollEvents implements scheduler.Loop.
func (c *Controller) PollEvents() {
	c.display().PollEvents()
}

// Draw implements scheduler.Loop.
func (c *Controller) Draw() {
	c.game().Draw()
}

// Present implements scheduler.Loop.
func (c *Controller) Present() error {
	return c.display().Present()
}

// switchDisplay stages the display at idx, rematerializes every texture into
// it and only then replaces the active display. Any failure leaves the old
// display active.
func (c *Controller) switchDisplay(idx int) {
	if idx < 0 {
		return
	}
	unit := c.displays.At(idx)
	staged, err := c.displaySlot.Stage(c.ctx, unit.Path)
	if err != nil {
		c.log.Error("display swap failed", "display", unit.Name, "err", err)
		return
	}

	next := staged.Instance()
	reload, err := c.textures.Prepare(next)
	if err != nil {
		if derr := staged.Discard(c.ctx); derr != nil {
			err = errors.Join(err, derr)
		}
		c.log.Error("display swap rolled back", "display", unit.Name, "err", err)
		return
	}

	reload.Commit()
	c.router.Bind(next)
	if err := staged.Promote(c.ctx); err != nil {
		c.log.Warn("previous display teardown", "err", err)
	}
	c.displays.Select(idx)
	c.sched.Resync()
	c.log.Info("display swapped", "display", unit.Name, "textures", c.textures.Len())
}

func (c *Controller) switchGame(idx int) {
	if idx < 0 {
		return
	}
	unit := c.games.At(idx)
	if err := c.loadGame(unit.Path, unit.Name, idx); err != nil {
		c.log.Error("game swap failed", "game", unit.Name, "err", err)
	}
}

func (c *Controller) enterMenu() {
	if c.inMenu {
		return
	}
	if c.cfg.Menu == "" {
		c.log.Warn("no menu configured")
		return
	}
	if err := c.loadGame(c.cfg.Menu, MenuName, -1); err != nil {
		c.log.Error("menu load failed", "err", err)
	}
}

func (c *Controller) launch(name string) {
	idx := c.games.Index(name)
	if idx < 0 {
		c.log.Warn("launch of unknown game", "game", name)
		return
	}
	c.switchGame(idx)
}

// loadGame stages the unit at path and, when it opens, ends the running
// session, replaces the active game and initializes a fresh session on it.
// catalogIdx is -1 for the menu.
func (c *Controller) loadGame(path, name string, catalogIdx int) error {
	staged, err := c.gameSlot.Stage(c.ctx, path)
	if err != nil {
		return err
	}

	c.endSession()
	if err := staged.Promote(c.ctx); err != nil {
		c.log.Warn("previous game teardown", "err", err)
	}
	c.games.Select(catalogIdx)
	c.inMenu = catalogIdx < 0

	c.beginSession(name)
	c.sched.Resync()
	c.log.Info("game loaded", "game", name, "session", c.scores.ID())
	return nil
}

// restart ends the session and initializes the same game instance again.
func (c *Controller) restart() {
	if c.scores == nil {
		return
	}
	name := c.scores.Game()
	c.endSession()
	c.beginSession(name)
	c.sched.Resync()
	c.log.Info("game restarted", "game", name, "session", c.scores.ID())
}

func (c *Controller) beginSession(name string) {
	c.scores = newScoreList(name, c.player)
	if err := c.sched.SetFramerate(c.cfg.Framerate); err != nil {
		c.fail(err)
		return
	}
	c.game().Init(c.host)
}

// endSession flushes the score list and frees the session's textures and
// text capture.
func (c *Controller) endSession() {
	if c.scores == nil {
		return
	}
	if c.router != nil && c.router.Capturing() {
		c.router.EndTextInput()
	}
	c.textures.Reset()

	if c.store != nil && c.scores.Game() != MenuName {
		if err := c.store.SaveSession(c.scores.Session()); err != nil {
			c.log.Error("saving scores failed", "game", c.scores.Game(), "err", err)
		}
	}
	c.log.Debug("session ended", "game", c.scores.Game(), "scores", len(c.scores.scores))
	c.scores = nil
}

func (c *Controller) highScore(game string) int {
	best := 0
	if c.store != nil {
		s, err := c.store.HighScore(game)
		if err != nil {
			c.log.Warn("high score lookup failed", "game", game, "err", err)
		} else {
			best = s
		}
	}
	if c.scores != nil && c.scores.Game() == game {
		best = max(best, c.scores.Best())
	}
	return best
}

// reloadChanged swaps in the catalog entry again when the file behind the
// active display or game was rewritten.
func (c *Controller) reloadChanged(path string) {
	switch path {
	case c.displaySlot.Path():
		c.log.Info("display unit changed", "path", path)
		c.switchDisplay(c.displays.Current())
	case c.gameSlot.Path():
		c.log.Info("game unit changed", "path", path)
		if c.inMenu {
			c.inMenu = false
			c.enterMenu()
			return
		}
		c.switchGame(c.games.Current())
	}
}
