package session

import "sync"

// View is the set of page elements a session drives
type View interface {
	// SetBusy shows or hides the busy indicator
	SetBusy(busy bool)
	// SetDragging toggles the drop zone's active look
	SetDragging(active bool)
	// SetText replaces the output text
	SetText(text string)
	// Alert shows a notice to the user
	Alert(message string)
}

// Snapshot is the visible state of a session
type Snapshot struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Busy     bool   `json:"busy"`
	Dragging bool   `json:"dragging"`
}

// Panel is a View that records state and queues notices until a page
// collects them
type Panel struct {
	mu       sync.Mutex
	busy     bool
	dragging bool
	text     string
	notices  []string
}

// NewPanel creates an empty Panel
func NewPanel() *Panel {
	return &Panel{}
}

func (p *Panel) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = busy
}

func (p *Panel) SetDragging(active bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dragging = active
}

func (p *Panel) SetText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text = text
}

func (p *Panel) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, message)
}

// Snapshot returns the current state without an ID
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Text:     p.text,
		Busy:     p.busy,
		Dragging: p.dragging,
	}
}

// Notices returns and clears the queued notices. It never returns nil.
func (p *Panel) Notices() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	notices := p.notices
	p.notices = nil
	if notices == nil {
		notices = []string{}
	}
	return notices
}
