package ui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Screen owns the cell buffer and the four managers, and runs the render
// loop for one view tree.
type Screen struct {
	driver    Driver
	root      View
	buffer    *Buffer
	theme     Theme
	logger    *zap.Logger
	clipboard Clipboard
	quitKey   HotKey
	now       func() time.Time

	focus *FocusManager
	mouse *MouseManager
	modal *ModalManager
	tick  *TickManager

	wake      chan struct{}
	started   bool
	running   atomic.Bool
	rendering bool
	pending   bool
}

type Option func(*Screen)

func WithLogger(l *zap.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithTheme(t Theme) Option {
	return func(s *Screen) { s.theme = t }
}

// WithTickInterval sets the animation tick period. Non-positive values keep
// DefaultTickInterval.
func WithTickInterval(d time.Duration) Option {
	return func(s *Screen) {
		if d > 0 {
			s.tick.interval = d
		}
	}
}

// WithQuitKey makes Run return when key is pressed. The zero HotKey
// disables it.
func WithQuitKey(key HotKey) Option {
	return func(s *Screen) { s.quitKey = key }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Screen) {
		if now != nil {
			s.now = now
			s.tick.now = now
		}
	}
}

func WithClipboard(c Clipboard) Option {
	return func(s *Screen) {
		if c != nil {
			s.clipboard = c
		}
	}
}

// NewScreen prepares a screen for root. Nothing touches the terminal until
// Start or Run.
func NewScreen(driver Driver, root View, opts ...Option) *Screen {
	s := &Screen{
		driver:    driver,
		root:      root,
		buffer:    NewBuffer(Size{}),
		theme:     plainTheme,
		logger:    zap.NewNop(),
		clipboard: &MemoryClipboard{},
		now:       time.Now,
		focus:     &FocusManager{},
		wake:      make(chan struct{}, 1),
	}
	s.mouse = &MouseManager{screen: s}
	s.modal = &ModalManager{screen: s}
	s.tick = newTickManager(DefaultTickInterval, nil)
	for _, opt := range opts {
		opt(s)
	}
	s.focus.onChange = func(prev, next View) {
		s.logger.Debug("focus", zap.Stringer("from", viewName{prev}), zap.Stringer("to", viewName{next}))
	}
	return s
}

func (s *Screen) Root() View           { return s.root }
func (s *Screen) Buffer() *Buffer      { return s.buffer }
func (s *Screen) Theme() Theme         { return s.theme }
func (s *Screen) Logger() *zap.Logger  { return s.logger }
func (s *Screen) Focus() *FocusManager { return s.focus }
func (s *Screen) Mouse() *MouseManager { return s.mouse }
func (s *Screen) Modal() *ModalManager { return s.modal }
func (s *Screen) Tick() *TickManager   { return s.tick }
func (s *Screen) Clipboard() Clipboard { return s.clipboard }

// System returns the handle v receives with its input events.
func (s *Screen) System(v View) System { return System{screen: s, view: v} }

func (s *Screen) SetTheme(t Theme) {
	s.theme = t
	s.markDirty()
}

func (s *Screen) markDirty() { s.pending = true }

// Start initializes the driver, mounts the tree and renders the first frame.
func (s *Screen) Start() error {
	if s.started {
		return ErrRunning
	}
	if err := s.driver.Init(); err != nil {
		return err
	}
	s.started = true
	mount(s.root, s)
	s.logger.Info("screen started", zap.Stringer("size", s.driver.Size()))
	s.Render()
	return nil
}

// Stop stops the ticker, detaches the tree and releases the driver.
func (s *Screen) Stop() {
	if !s.started {
		return
	}
	s.started = false
	s.tick.Stop()
	s.modal.reset()
	s.modal.sweep()
	unmount(s.root)
	s.driver.Fini()
	s.logger.Info("screen stopped")
}

// Run starts the screen and processes events until ctx is done, the quit
// key is pressed or the driver closes its event channel.
func (s *Screen) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer s.running.Store(false)

	if err := s.Start(); err != nil {
		return err
	}
	defer s.Stop()

	events := s.driver.Events()
	for {
		if s.pending {
			s.Render()
		}
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrDriverClosed
			}
			if key, isKey := ev.(KeyEvent); isKey && s.quitKey.Matches(key) {
				return nil
			}
			s.Trigger(ev)
		case <-s.tick.C():
			if s.tick.Tick(s.now()) {
				s.Render()
			}
		case <-s.wake:
			s.Render()
		}
	}
}

// RequestRender schedules a frame. It is safe to call from any goroutine.
func (s *Screen) RequestRender() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Trigger applies one event and renders.
func (s *Screen) Trigger(ev Event) {
	switch ev := ev.(type) {
	case KeyEvent:
		s.dispatchKey(ev)
	case MouseInput:
		s.mouse.Dispatch(ev)
	case ResizeEvent:
		s.logger.Debug("resize", zap.Stringer("size", ev.Size))
	case FocusEvent:
		s.logger.Debug("terminal focus", zap.Bool("focused", ev.Focused))
	}
	s.Render()
}

func (s *Screen) dispatchKey(ev KeyEvent) {
	if s.focus.HandleHotKey(ev) {
		return
	}
	if v := s.focus.Focused(); v != nil {
		if r, ok := v.(KeyReceiver); ok && r.ReceiveKey(ev, System{screen: s, view: v}) {
			return
		}
	}
	switch {
	case ev.Name == "tab" && ev.Mod == ModNone:
		s.focus.Next()
	case ev.Name == "tab" && ev.Mod == ModShift:
		s.focus.Prev()
	case ev.Name == "escape" && ev.Mod == ModNone:
		s.modal.Dismiss()
	}
}

// Render draws a frame and flushes the diff to the driver. A render
// requested while rendering runs after the current one finishes.
func (s *Screen) Render() {
	if s.rendering {
		s.pending = true
		return
	}
	s.rendering = true
	s.pending = false
	defer func() { s.rendering = false }()

	start := s.now()
	s.buffer.Resize(s.driver.Size())
	vp := NewViewport(s.buffer, s.theme)
	vp.screen = s

	top := s.renderFrame(vp)
	focusChanged := s.focus.commit()
	mouseChanged := s.mouse.commit()
	if focusChanged || mouseChanged {
		if top == s.root {
			s.renderFrame(vp)
		} else {
			s.modal.rerenderTop(vp)
		}
		s.focus.commit()
		s.mouse.commit()
	}
	s.modal.sweep()
	s.tick.EndRender()

	changes := s.buffer.Diff()
	if err := s.driver.WriteCells(changes); err != nil {
		s.logger.Error("write cells", zap.Error(err))
	}
	s.logger.Debug("frame",
		zap.Int("cells", len(changes)),
		zap.Bool("rerender", focusChanged || mouseChanged),
		zap.Duration("took", s.now().Sub(start)))
}

// renderFrame resets the per-frame registries and renders the tree and the
// modals. It returns the topmost view: the top modal, or the root.
func (s *Screen) renderFrame(vp *Viewport) View {
	s.buffer.Clear()
	s.focus.reset()
	s.mouse.reset()
	s.modal.reset()
	s.tick.reset()

	size := s.buffer.Size()
	content := Measure(s.root, size).Max(size)
	vp.content = content
	vp.RenderChild(s.root, Rect{Size: content})
	if top := s.modal.RenderModals(vp); top != nil {
		return top
	}
	return s.root
}

type viewName struct{ v View }

func (n viewName) String() string {
	if n.v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", n.v)
}
