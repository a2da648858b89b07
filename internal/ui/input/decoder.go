package input

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// maxPending bounds how many bytes of an unterminated sequence are carried
// into the next read before they are dropped as garbage.
const maxPending = 64

// Decoder turns raw terminal bytes into key events. A read may end in the
// middle of a UTF-8 sequence or a CSI/SS3 escape; those bytes are carried
// over and prefixed to the next batch.
type Decoder struct {
	pending []byte
}

// Decode decodes one read. Events are returned in input order.
func (d *Decoder) Decode(data []byte) []*tcell.EventKey {
	buf := data
	if len(d.pending) > 0 {
		buf = append(append([]byte(nil), d.pending...), data...)
		d.pending = nil
	}

	var events []*tcell.EventKey
	for i := 0; i < len(buf); {
		ev, n, ok := decodeOne(buf[i:])
		if !ok {
			if len(buf)-i <= maxPending {
				d.pending = append(d.pending, buf[i:]...)
			}
			break
		}
		if ev != nil {
			events = append(events, ev)
		}
		i += n
	}
	return events
}

// decodeOne decodes the event at the start of b. It returns ok=false when b
// holds only the beginning of a longer sequence. A nil event with n>0
// means the bytes were consumed without producing a key.
func decodeOne(b []byte) (ev *tcell.EventKey, n int, ok bool) {
	c := b[0]
	switch {
	case c == 0x1b:
		return decodeEscape(b)
	case c == '\r' || c == '\n':
		return tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone), 1, true
	case c < 0x20 || c == 0x7f:
		return controlKey(c), 1, true
	case c < utf8.RuneSelf:
		return tcell.NewEventKey(tcell.KeyRune, rune(c), tcell.ModNone), 1, true
	}

	if !utf8.FullRune(b) {
		return nil, 0, false
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return nil, 1, true
	}
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), size, true
}

// controlKey maps a C0 control byte or DEL to its key. BS, TAB and DEL
// are typeable on their own; everything else was entered with Ctrl held.
func controlKey(c byte) *tcell.EventKey {
	switch {
	case c == 0x08 || c == 0x09 || c == 0x7f:
		return tcell.NewEventKey(tcell.KeyRune, rune(c), tcell.ModNone)
	case c == 0x00:
		return tcell.NewEventKey(tcell.KeyCtrlSpace, ' ', tcell.ModCtrl)
	case c <= 0x1a:
		return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(c-1), rune('a'+c-1), tcell.ModCtrl)
	}
	return tcell.NewEventKey(tcell.KeyCtrlBackslash+tcell.Key(c-0x1c), rune(c)+0x40, tcell.ModCtrl)
}

func decodeEscape(b []byte) (*tcell.EventKey, int, bool) {
	if len(b) == 1 {
		// a lone ESC at the end of a read is the Escape key itself
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 1, true
	}
	switch b[1] {
	case '[':
		return decodeCSI(b)
	case 'O':
		if len(b) < 3 {
			return nil, 0, false
		}
		if key, found := finalKeys[b[2]]; found {
			return tcell.NewEventKey(key, 0, tcell.ModNone), 3, true
		}
		return nil, 3, true
	}
	return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 1, true
}

var finalKeys = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
	'H': tcell.KeyHome,
	'F': tcell.KeyEnd,
}

var tildeKeys = map[string]tcell.Key{
	"1": tcell.KeyHome,
	"7": tcell.KeyHome,
	"4": tcell.KeyEnd,
	"8": tcell.KeyEnd,
	"3": tcell.KeyDelete,
	"5": tcell.KeyPgUp,
	"6": tcell.KeyPgDn,
}

// decodeCSI handles ESC [ params final. Modifier parameters such as
// "1;5A" are accepted and ignored.
func decodeCSI(b []byte) (*tcell.EventKey, int, bool) {
	i := 2
	for i < len(b) && b[i] >= 0x20 && b[i] <= 0x3f {
		i++
	}
	if i >= len(b) {
		return nil, 0, false
	}
	final := b[i]
	if final < 0x40 || final > 0x7e {
		// not a CSI after all; report Escape and let the rest decode
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 1, true
	}
	params := string(b[2:i])
	n := i + 1

	if final == '~' {
		if semi := strings.IndexByte(params, ';'); semi >= 0 {
			params = params[:semi]
		}
		if key, found := tildeKeys[params]; found {
			return tcell.NewEventKey(key, 0, tcell.ModNone), n, true
		}
		return nil, n, true
	}
	if key, found := finalKeys[final]; found {
		return tcell.NewEventKey(key, 0, tcell.ModNone), n, true
	}
	return nil, n, true
}

