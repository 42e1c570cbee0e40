package checkin

import (
	"sync"
	"time"
)

// NoticeView is the visible part of a transient message.
type NoticeView struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// notice is a message that hides itself after ttl. At most one hide timer
// is pending; showing again replaces it.
type notice struct {
	ttl time.Duration

	mu      sync.Mutex
	text    string
	visible bool
	timer   *time.Timer
	gen     uint64
	onHide  func()
}

func newNotice(ttl time.Duration) *notice {
	return &notice{ttl: ttl}
}

func (n *notice) show(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopLocked()
	n.text = text
	n.visible = true

	gen := n.gen
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(gen) })
}

func (n *notice) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || !n.visible {
		n.mu.Unlock()
		return
	}
	n.visible = false
	n.timer = nil
	hook := n.onHide
	n.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// dismiss hides the notice now and reports whether it was visible.
func (n *notice) dismiss() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	was := n.visible
	n.stopLocked()
	n.visible = false
	return was
}

func (n *notice) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
}

func (n *notice) view() NoticeView {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.visible {
		return NoticeView{}
	}
	return NoticeView{Text: n.text, Visible: true}
}

func (n *notice) setOnHide(fn func()) {
	n.mu.Lock()
	n.onHide = fn
	n.mu.Unlock()
}
