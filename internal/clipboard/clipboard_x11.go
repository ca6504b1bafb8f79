//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Provider speaks the ICCCM selection protocol directly over xgb so the
// clipboard keeps working in cgo-free builds. A hidden window owns the
// CLIPBOARD selection and a background goroutine answers conversion requests
// for as long as this process holds the data.
type x11Provider struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet

	mu    sync.RWMutex
	text  []byte
	image []byte
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func newProvider() (provider, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	p := &x11Provider{conn: conn}
	if err := p.createWindow(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := p.atoms.intern(conn); err != nil {
		xproto.DestroyWindow(conn, p.window)
		conn.Close()
		return nil, err
	}
	go p.serve()
	return p, nil
}

func (p *x11Provider) createWindow() error {
	screen := xproto.Setup(p.conn).DefaultScreen(p.conn)
	window, err := xproto.NewWindowId(p.conn)
	if err != nil {
		return err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(p.conn, screen.RootDepth, window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		return err
	}
	p.window = window
	return nil
}

func (a *atomSet) intern(conn *xgb.Conn) error {
	for _, want := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"CLIPBOARD", &a.clipboard},
		{"TARGETS", &a.targets},
		{"UTF8_STRING", &a.utf8},
		{"text/plain;charset=utf-8", &a.textPlain},
		{"image/png", &a.png},
		{"INKCALC_CLIPBOARD", &a.property},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(want.name)), want.name).Reply()
		if err != nil {
			return fmt.Errorf("intern atom %s: %w", want.name, err)
		}
		*want.dst = reply.Atom
	}
	return nil
}

func (p *x11Provider) writeText(data []byte) error {
	return p.claim(append([]byte(nil), data...), nil)
}

func (p *x11Provider) writeImage(pngData []byte) error {
	return p.claim(nil, append([]byte(nil), pngData...))
}

func (p *x11Provider) readText() ([]byte, error) {
	data, err := p.fetch(p.atoms.utf8)
	if err != nil {
		// Fall back to latin-1 STRING for older clients.
		return p.fetch(xproto.AtomString)
	}
	return data, nil
}

func (p *x11Provider) readImage() ([]byte, error) {
	return p.fetch(p.atoms.png)
}

// claim stores the new clipboard payload and takes selection ownership.
func (p *x11Provider) claim(text, image []byte) error {
	p.mu.Lock()
	p.text = text
	p.image = image
	p.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(p.conn, p.window, p.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (p *x11Provider) serve() {
	for {
		ev, err := p.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			p.respond(e)
		case xproto.SelectionClearEvent:
			// Another client took the selection; our payload is dead.
			p.mu.Lock()
			p.text = nil
			p.image = nil
			p.mu.Unlock()
		}
	}
}

// conversion is the answer to one selection request target.
type conversion struct {
	payload []byte
	typ     xproto.Atom
	format  byte
}

func (p *x11Provider) convert(target xproto.Atom) (conversion, bool) {
	p.mu.RLock()
	text := p.text
	image := p.image
	p.mu.RUnlock()

	switch target {
	case p.atoms.targets:
		targets := []xproto.Atom{p.atoms.targets}
		if len(text) > 0 {
			targets = append(targets, p.atoms.utf8, xproto.AtomString, p.atoms.textPlain)
		}
		if len(image) > 0 {
			targets = append(targets, p.atoms.png)
		}
		return conversion{payload: encodeAtoms(targets), typ: xproto.AtomAtom, format: 32}, true
	case p.atoms.utf8, xproto.AtomString, p.atoms.textPlain:
		if len(text) == 0 {
			return conversion{}, false
		}
		return conversion{payload: text, typ: p.atoms.utf8, format: 8}, true
	case p.atoms.png:
		if len(image) == 0 {
			return conversion{}, false
		}
		return conversion{payload: image, typ: p.atoms.png, format: 8}, true
	}
	return conversion{}, false
}

func (p *x11Provider) respond(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	if conv, ok := p.convert(e.Target); ok {
		length := uint32(len(conv.payload)) / uint32(conv.format/8)
		xproto.ChangeProperty(p.conn, xproto.PropModeReplace, e.Requestor, property,
			conv.typ, conv.format, length, conv.payload)
	} else {
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(p.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// fetch asks the current selection owner to convert its payload to target,
// using a throwaway connection so it never deadlocks with our own serve loop.
func (p *x11Provider) fetch(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOnly, 0,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.DeletePropertyChecked(conn, window, p.atoms.property).Check(); err != nil {
		return nil, err
	}
	if err := xproto.ConvertSelectionChecked(conn, window, p.atoms.clipboard, target, p.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}

	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		if e.Property != p.atoms.property {
			continue
		}
		reply, err := xproto.GetProperty(conn, false, window, p.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

func encodeAtoms(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
