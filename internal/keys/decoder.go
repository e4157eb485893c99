package keys

import (
	"bufio"
	"io"
)

const (
	byteEsc   = 0x1b
	byteCtrlC = 0x03
)

// Decoder turns raw terminal bytes into logical key events. Only the keys the
// viewer binds are recognized; everything else is dropped.
type Decoder struct {
	r       *bufio.Reader
	err     error
	pending int // next byte to decode again, or -1
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, 64), pending: -1}
}

// Next blocks until one event is decoded or the reader fails. After the first
// error every call returns that error.
func (d *Decoder) Next() (Event, error) {
	for {
		b, err := d.readByte()
		if err != nil {
			return Event{}, err
		}
		switch b {
		case byteEsc:
			ev, ok, err := d.escape()
			if ok {
				return ev, nil
			}
			if err != nil {
				return Event{}, err
			}
		case byteCtrlC:
			return CtrlEvent('c'), nil
		case 'q', 'a', 'f', 'c', 'Q', 'A', 'F', 'C',
			'e', 'l', 'E', 'L', '?':
			return CharEvent(rune(b)), nil
		}
	}
}

// escape decodes what follows an ESC byte. Unrecognized CSI sequences are
// consumed and reported as ok=false with a nil error.
func (d *Decoder) escape() (Event, bool, error) {
	b, err := d.readByte()
	if err != nil {
		// lone ESC at end of stream
		return KeyEvent(Esc), true, nil
	}
	if b != '[' {
		d.pending = int(b)
		return KeyEvent(Esc), true, nil
	}
	b, err = d.readByte()
	if err != nil {
		return Event{}, false, err
	}
	switch b {
	case 'A':
		return KeyEvent(Up), true, nil
	case 'B':
		return KeyEvent(Down), true, nil
	case '5', '6':
		t, err := d.readByte()
		if err != nil {
			return Event{}, false, err
		}
		if t != '~' {
			return Event{}, false, nil
		}
		if b == '5' {
			return KeyEvent(PageUp), true, nil
		}
		return KeyEvent(PageDown), true, nil
	}
	return Event{}, false, nil
}

func (d *Decoder) readByte() (byte, error) {
	if d.pending >= 0 {
		b := byte(d.pending)
		d.pending = -1
		return b, nil
	}
	if d.err != nil {
		return 0, d.err
	}
	b, err := d.r.ReadByte()
	if err != nil {
		d.err = err
		return 0, err
	}
	return b, nil
}
