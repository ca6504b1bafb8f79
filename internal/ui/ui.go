// Package ui runs the interactive drawing window: a shiny event loop around a
// board.Session, with a toolbar, keyboard shortcuts and asynchronous
// recognition results surfacing as annotations.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/inkcalc/internal/board"
	"github.com/example/inkcalc/internal/clipboard"
	"github.com/example/inkcalc/internal/notify"
	"github.com/example/inkcalc/internal/recognize"
	"github.com/example/inkcalc/internal/theme"
)

const solveRetries = 3

// App holds the interactive window configuration.
type App struct {
	Session     *board.Session
	Client      *recognize.Client
	Theme       *theme.Theme
	Notifier    *notify.Notifier
	ResultDelay time.Duration
	SaveDir     string

	onClose func()
}

// Option modifies an App during creation.
type Option func(*App)

// WithClient sets the recognition service client. Without one, submitting is
// disabled.
func WithClient(c *recognize.Client) Option { return func(a *App) { a.Client = c } }

// WithTheme sets the UI color palette.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.Theme = t } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.Notifier = n } }

// WithResultDelay sets how long each recognition result waits before
// surfacing on the canvas.
func WithResultDelay(d time.Duration) Option { return func(a *App) { a.ResultDelay = d } }

// WithSaveDir sets the directory ^S writes PNGs into.
func WithSaveDir(dir string) Option { return func(a *App) { a.SaveDir = dir } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App around an existing drawing session.
func New(session *board.Session, opts ...Option) *App {
	a := &App{
		Session:     session,
		Theme:       theme.Default(),
		ResultDelay: recognize.DefaultDisplayDelay,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

// resultEvent carries one scheduled recognition result into the event loop.
type resultEvent struct {
	result recognize.Result
}

// statusEvent surfaces a transient message on the status line.
type statusEvent struct {
	text string
}

// submitDrawing posts one drawing to the recognition service and schedules
// its results for display. Every call is an independent submission: a second
// submission while an earlier one is still in flight produces its own
// request and its own scheduled result batch, with no de-duplication.
func submitDrawing(client *recognize.Client, pngData []byte, bindings map[string]string, scheduler *recognize.Scheduler, status func(string)) {
	go func() {
		results, err := client.SolveWithRetry(context.Background(), pngData, bindings, solveRetries)
		if err != nil {
			status(fmt.Sprintf("recognition failed: %v", err))
			return
		}
		scheduler.Schedule(results)
		status(fmt.Sprintf("recognized %d expression(s)", len(results)))
	}()
}

func (a *App) Main(s screen.Screen) {
	fitToolbar()

	canvas := a.Session.Surface().Raster().Bounds()
	width := canvas.Dx() + toolbarWidth
	height := canvas.Dy() + statusHeight

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "InkCalc"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer func() {
		if a.onClose != nil {
			a.onClose()
		}
	}()

	scheduler := recognize.NewScheduler(a.ResultDelay, func(r recognize.Result) {
		w.Send(resultEvent{result: r})
	})

	var (
		draggingID      string
		dragLast        image.Point
		textInputActive bool
		textInput       string
		textPos         image.Point
		message         string
		messageUntil    time.Time
	)

	setMessage := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(2 * time.Second)
		log.Print(msg)
	}

	save := func() {
		data, err := a.Session.EncodePNG()
		if err != nil {
			log.Printf("save: %v", err)
			return
		}
		dir := a.SaveDir
		if dir == "" {
			dir = "."
		}
		path := filepath.Join(dir, fmt.Sprintf("inkcalc-%s.png", time.Now().Format("20060102-150405")))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Printf("save: %v", err)
			return
		}
		a.Notifier.Save(path)
		setMessage(fmt.Sprintf("saved %s", path))
	}

	copyImage := func() {
		if err := clipboard.WriteImage(a.Session.Surface().Raster()); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		a.Notifier.Copy("drawing")
		setMessage("drawing copied to clipboard")
	}

	solve := func() {
		if a.Client == nil {
			setMessage("no recognition service configured")
			return
		}
		data, err := a.Session.EncodePNG()
		if err != nil {
			log.Printf("solve: %v", err)
			return
		}
		setMessage("submitted drawing")
		submitDrawing(a.Client, data, a.Session.Bindings(), scheduler, func(msg string) {
			w.Send(statusEvent{text: msg})
		})
	}

	canvasPoint := func(e mouse.Event) (image.Point, bool) {
		p := image.Pt(int(e.X), int(e.Y)).Sub(canvasOrigin())
		return p, p.In(canvas) && int(e.Y) < height-statusHeight
	}

	hitAnnotation := func(p image.Point) string {
		wp := p.Add(canvasOrigin())
		overlay := a.Session.Overlay()
		// Expressions sit on top of text labels, so test them first.
		for _, an := range overlay.Expressions() {
			if wp.In(labelRect(an)) {
				return an.ID
			}
		}
		for _, an := range overlay.Texts() {
			if wp.In(labelRect(an)) {
				return an.ID
			}
		}
		return ""
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case statusEvent:
			setMessage(e.text)
			w.Send(paint.Event{})
		case resultEvent:
			r := e.result
			if r.Assign {
				a.Session.MergeBinding(r.Expr, r.Result)
			}
			an := a.Session.PlaceResult(r.Expr, r.Result)
			a.Notifier.Result(an.Content, a.Session.Surface().Raster())
			setMessage(an.Content)
			w.Send(paint.Event{})
		case paint.Event:
			drawFrame(s, w, frameState{
				width:           width,
				height:          height,
				session:         a.Session,
				theme:           a.Theme,
				textInputActive: textInputActive,
				textInput:       textInput,
				textPos:         textPos,
				textColor:       a.Session.Color(),
				message:         message,
				messageUntil:    messageUntil,
			})
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			cp, inCanvas := canvasPoint(e)

			if p.X < toolbarWidth && !a.Session.Gesturing() && draggingID == "" {
				region, idx := hitToolbar(p)
				hoverTool, hoverPalette, hoverWidth = -1, -1, -1
				switch region {
				case regionTool:
					hoverTool = idx
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						a.Session.SetTool(toolEntries[idx].tool)
					}
				case regionPalette:
					hoverPalette = idx
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						a.Session.SetColor(palette[idx])
					}
				case regionWidth:
					hoverWidth = idx
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						a.Session.SetWidth(widths[idx])
					}
				}
				w.Send(paint.Event{})
				continue
			}
			hoverTool, hoverPalette, hoverWidth = -1, -1, -1

			switch e.Direction {
			case mouse.DirPress:
				if e.Button != mouse.ButtonLeft || !inCanvas || textInputActive {
					continue
				}
				if id := hitAnnotation(cp); id != "" {
					draggingID = id
					dragLast = cp
					continue
				}
				a.Session.PointerDown(cp)
				w.Send(paint.Event{})
			case mouse.DirNone:
				if draggingID != "" {
					a.Session.Overlay().MoveBy(draggingID, cp.Sub(dragLast))
					dragLast = cp
					w.Send(paint.Event{})
					continue
				}
				if !a.Session.Gesturing() {
					continue
				}
				if inCanvas {
					a.Session.PointerMove(cp)
				} else {
					a.Session.PointerLeave()
				}
				w.Send(paint.Event{})
			case mouse.DirRelease:
				if e.Button != mouse.ButtonLeft {
					continue
				}
				if draggingID != "" {
					draggingID = ""
					continue
				}
				if !a.Session.Gesturing() {
					continue
				}
				if req := a.Session.PointerUp(cp); req != nil {
					textInputActive = true
					textInput = ""
					textPos = req.At
				}
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if textInputActive {
				switch e.Code {
				case key.CodeReturnEnter:
					a.Session.ProvideText(textInput)
					textInputActive = false
					w.Send(paint.Event{})
					continue
				case key.CodeEscape:
					a.Session.ProvideText("")
					textInputActive = false
					w.Send(paint.Event{})
					continue
				case key.CodeDeleteBackspace:
					if len(textInput) > 0 {
						textInput = textInput[:len(textInput)-1]
						w.Send(paint.Event{})
					}
					continue
				}
				if e.Rune > 0 {
					textInput += string(e.Rune)
					w.Send(paint.Event{})
				}
				continue
			}

			if e.Modifiers&key.ModControl != 0 {
				switch unicode.ToLower(e.Rune) {
				case 'z':
					a.Session.Undo()
					w.Send(paint.Event{})
				case 'y':
					a.Session.Redo()
					w.Send(paint.Event{})
				case 's':
					save()
					w.Send(paint.Event{})
				case 'c':
					copyImage()
					w.Send(paint.Event{})
				case 'r':
					a.Session.Reset()
					setMessage("canvas cleared")
					w.Send(paint.Event{})
				}
				continue
			}

			switch unicode.ToLower(e.Rune) {
			case 'p':
				a.Session.SetTool(board.ToolPen)
				w.Send(paint.Event{})
			case 'l':
				a.Session.SetTool(board.ToolLine)
				w.Send(paint.Event{})
			case 'x':
				a.Session.SetTool(board.ToolRect)
				w.Send(paint.Event{})
			case 'o':
				a.Session.SetTool(board.ToolCircle)
				w.Send(paint.Event{})
			case 'e':
				a.Session.SetTool(board.ToolEraser)
				w.Send(paint.Event{})
			case 't':
				a.Session.SetTool(board.ToolText)
				w.Send(paint.Event{})
			case ' ':
				solve()
				w.Send(paint.Event{})
			case 'q':
				return
			}
		}
	}
}
