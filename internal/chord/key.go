package chord

// Key is the symbolic identity of a key event. Sources translate physical
// keys into this closed set; everything else arrives as KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyTrigger
	KeyScratch
	Key1
	Key2
	Key3
	KeyQ
	KeyW
	KeyE
	KeyA
	KeyS
	KeyD
	KeyZ
	KeyX
)

var keyNames = map[Key]string{
	KeyOther:   "other",
	KeyTrigger: "trigger",
	KeyScratch: "scratch",
	Key1:       "1",
	Key2:       "2",
	Key3:       "3",
	KeyQ:       "q",
	KeyW:       "w",
	KeyE:       "e",
	KeyA:       "a",
	KeyS:       "s",
	KeyD:       "d",
	KeyZ:       "z",
	KeyX:       "x",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "unknown"
}

// AttributeKeys lists the keys that change the style during a capture, in
// table order.
var AttributeKeys = []Key{Key1, Key2, Key3, KeyQ, KeyW, KeyE, KeyA, KeyS, KeyD, KeyZ, KeyX}

// KeyByName returns the attribute key named s ("1", "q", ...).
func KeyByName(s string) (Key, bool) {
	for _, k := range AttributeKeys {
		if keyNames[k] == s {
			return k, true
		}
	}
	return KeyOther, false
}

// Event is a single key transition.
type Event struct {
	Key  Key
	Down bool
}

// Verdict tells the event source whether to let an event through.
type Verdict int

const (
	Forward Verdict = iota
	Suppress
)

func (v Verdict) String() string {
	if v == Suppress {
		return "suppress"
	}
	return "forward"
}
