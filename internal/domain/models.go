package domain

// Item identifies one page/tab. It is a value identity: two Items are the
// same page exactly when they compare equal with ==. Richer payload lives
// behind the resolver functions on the source adapter, not here.
type Item struct {
	ID    string
	Title string
}

// Zero reports whether the item is the zero value, i.e. no identity at all.
func (i Item) Zero() bool {
	return i == Item{}
}

// Direction is the travel direction of a transition.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionReverse
)

func (d Direction) String() string {
	if d == DirectionReverse {
		return "reverse"
	}
	return "forward"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == DirectionForward {
		return DirectionReverse
	}
	return DirectionForward
}

// Trigger records which host view initiated a transition.
type Trigger int

const (
	TriggerMenu Trigger = iota
	TriggerContent
)

func (t Trigger) String() string {
	if t == TriggerContent {
		return "content"
	}
	return "menu"
}

// CellDescriptor describes how the menu strip should render one tab.
// Equality is full structural equality including the reuse identifier.
type CellDescriptor struct {
	ReuseID string
	Title   string
	Width   int // desired cell width in columns, 0 means fit title
}

// ContentHandle is the materialized content page for one item.
type ContentHandle struct {
	ID   string
	Body string
}
