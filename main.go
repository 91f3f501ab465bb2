package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cansyan/tui/internal/config"
	"github.com/cansyan/tui/internal/logger"
	"github.com/cansyan/tui/ui"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const welcome = `package main

import "fmt"

// Welcome to the editor! Ctrl+T switches highlighting.
func main() {
	fmt.Println("héllo, 世界")
}
`

func main() {
	configPath := flag.String("config", "tui.yaml", "config file")
	driverName := flag.String("driver", "", "terminal driver: tcell or term (overrides config)")
	flag.Parse()

	if err := run(*configPath, *driverName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, driverName string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if driverName != "" {
		cfg.Driver = driverName
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logs := ui.NewLogBuffer(0)
	// The log pane stays at info: frame logs at debug would wake the
	// screen for every frame they describe.
	log, err := logger.New(cfg.Log, logs.Core(zapcore.InfoLevel))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	driver, clip, err := newDriver(cfg)
	if err != nil {
		return err
	}
	tick, err := cfg.Tick()
	if err != nil {
		return err
	}

	app := newApp(logs)
	screen := ui.NewScreen(driver, app.root,
		ui.WithLogger(log),
		ui.WithTheme(ui.ThemeByName(cfg.Theme)),
		ui.WithTickInterval(tick),
		ui.WithQuitKey(cfg.Quit()),
		ui.WithClipboard(clip),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the quit key ends Run without cancelling ctx
		defer cancel()
		return screen.Run(ctx)
	})
	g.Go(func() error {
		heartbeat(ctx, log, time.Minute)
		return nil
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newDriver returns the configured driver and the clipboard that goes with
// it: the desktop clipboard when available, OSC 52 for the raw driver
// otherwise.
func newDriver(cfg *config.Config) (ui.Driver, ui.Clipboard, error) {
	clip, clipErr := ui.NewClipboard()
	switch cfg.Driver {
	case "term":
		d := ui.NewTermDriver(cfg.Mouse)
		if clipErr != nil {
			clip = d.Clipboard()
		}
		return d, clip, nil
	default:
		d, err := ui.NewTcellDriver(cfg.Mouse)
		if err != nil {
			return nil, nil, err
		}
		return d, clip, nil
	}
}

// heartbeat logs periodically from outside the UI goroutine.
func heartbeat(ctx context.Context, log *zap.Logger, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			log.Info("still running", zap.Duration("uptime", now.Sub(start).Round(time.Second)))
		}
	}
}

type App struct {
	root    ui.View
	editor  *Editor
	preview *ui.Text
	status  *ui.Text
	help    *overlay
	logs    *ui.LogBuffer
}

func newApp(logs *ui.LogBuffer) *App {
	a := &App{logs: logs}

	header := ui.NewText("\x1b[1mtui\x1b[22m demo  \x1b[2mtab: focus  ctrl+q: quit  esc: close\x1b[22m")
	header.SetAlign(ui.AlignCenter)

	a.editor = NewEditor(welcome)
	a.preview = ui.NewText("")
	a.preview.SetWrap(true)
	a.status = ui.NewText("")

	search := ui.NewInput("")
	search.SetPlaceholder("search…")
	search.OnSubmit(func(q string) { a.find(q) })

	a.editor.OnChange(func(string) { a.update() })
	a.editor.OnCursor = a.update
	a.update()

	body := ui.HStack()
	_ = body.AddFlex(2, ui.PadH(a.editor, 1))
	body.Append(ui.NewSeparator())
	_ = body.AddFlex(1, ui.PadH(a.preview, 1))

	helpText := ui.NewText(strings.Join([]string{
		"\x1b[1mKeys\x1b[22m",
		"",
		"tab / shift+tab    move focus",
		"alt+←/→            jump by word",
		"alt+e, alt+u …     accents (é, ü)",
		"ctrl+z / ctrl+y    undo / redo",
		"ctrl+c/x/v         clipboard",
		"ctrl+d / ctrl+l    select word / line",
		"esc                close this window",
	}, "\n"))
	a.help = newOverlay(ui.Border(ui.Pad(helpText, 1)))

	helpButton := ui.NewButton("Help", func() { a.help.open = true })
	helpButton.SetHotKey(ui.MustHotKey("f1"))

	statusBar := ui.HStack(a.status)
	_ = statusBar.AddFlex(1, ui.NewSpace())
	statusBar.Append(search, helpButton, ui.PadH(newClock(), 1))

	logPane := ui.Frame(ui.NewLogView(logs), 0, 5)

	layout := ui.VStack(header, ui.NewSeparator())
	_ = layout.AddFlex(1, body)
	layout.Append(ui.NewSeparator(), logPane, statusBar)

	a.root = ui.NewContainer(layout, a.help)
	return a
}

// update refreshes the preview and the status line from the editor.
func (a *App) update() {
	text := a.editor.Text()
	a.preview.SetText(fmt.Sprintf("\x1b[1mPreview\x1b[22m (%d words)\n\n%s", len(strings.Fields(text)), text))
	c := a.editor.Cursor()
	pos := a.editor.Location(c.End)
	a.status.SetText(fmt.Sprintf(" Ln %d, Col %d  %s ", pos.Y+1, pos.X+1, a.editor.Syntax()))
}

// find selects the next match of q after the caret, wrapping around.
func (a *App) find(q string) {
	if q == "" {
		return
	}
	clusters := ui.Graphemes(a.editor.Text())
	query := ui.Graphemes(q)
	n := len(clusters)
	from := a.editor.Cursor().End
	for k := range n {
		i := (from + k) % n
		if i+len(query) <= n && strings.Join(clusters[i:i+len(query)], "") == q {
			a.editor.SetCursor(ui.Cursor{Start: i, End: i + len(query)})
			a.update()
			return
		}
	}
}

// overlay shows content as a centered modal while open.
type overlay struct {
	ui.ViewBase
	content ui.View
	open    bool
}

func newOverlay(content ui.View) *overlay { return &overlay{content: content} }

func (o *overlay) NaturalSize(ui.Size) ui.Size { return ui.Size{} }

func (o *overlay) Render(vp *ui.Viewport) {
	if !o.open {
		return
	}
	area := vp.ContentSize()
	size := ui.Measure(o.content, area).Min(area)
	rect := ui.NewRect((area.Width-size.Width)/2, (area.Height-size.Height)/2, size.Width, size.Height)
	vp.RequestModal(o.content, rect, func() { o.open = false })
}

// clock shows the time of day, driven by ticks.
type clock struct {
	ui.ViewBase
	now  func() time.Time
	last string
}

func newClock() *clock { return &clock{now: time.Now} }

func (c *clock) text() string { return c.now().Format("15:04:05") }

func (c *clock) NaturalSize(ui.Size) ui.Size { return ui.Size{Width: 8, Height: 1} }

func (c *clock) Render(vp *ui.Viewport) {
	vp.RegisterTick()
	c.last = c.text()
	vp.Write(c.last, ui.Point{}, ui.Style{Foreground: vp.Theme().DimText})
}

func (c *clock) ReceiveTick(time.Duration) bool {
	return c.text() != c.last
}
