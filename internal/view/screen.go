package view

import (
	"errors"
	"html/template"
	"sync"
	"time"
)

// ErrNoPendingConfirmation is returned when a restore is confirmed or declined
// for a task that has no pending confirmation on the screen.
var ErrNoPendingConfirmation = errors.New("no pending restore confirmation for task")

// NoticeKind selects the styling of a notice.
type NoticeKind int

// Notice kinds.
const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a transient message shown in the message area.
type Notice struct {
	Text string
	Kind NoticeKind
}

// Class returns the CSS class for the notice kind.
func (n Notice) Class() string {
	if n.Kind == NoticeError {
		return "alert-error"
	}
	return "alert-success"
}

// ConfirmationState tracks the two-step restore flow.
type ConfirmationState int

// Confirmation states. A screen starts in ConfirmationNone.
const (
	ConfirmationNone ConfirmationState = iota
	PendingConfirmation
	Confirmed
	Cancelled
)

func (s ConfirmationState) String() string {
	switch s {
	case PendingConfirmation:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Confirmation is the restore dialog shown while a confirmation is pending.
type Confirmation struct {
	ID int64
}

// Page is an immutable snapshot of a Screen, ready for the page template.
type Page struct {
	Notice         *Notice
	Confirmation   *Confirmation
	List           template.HTML
	ActiveTasksURL string
}

// Screen is the server-side state of one browser's page: a message area, the
// deleted tasks container and the restore confirmation dialog. The container
// holds rendered HTML, never task data. All methods are safe for concurrent use.
type Screen struct {
	mu sync.Mutex

	list    template.HTML
	listSet bool

	notice      *Notice
	noticeTTL   time.Duration
	noticeTimer *time.Timer
	noticeSeq   uint64

	confirmID    int64
	confirmState ConfirmationState
}

// NewScreen returns an empty screen whose notices clear after noticeTTL.
func NewScreen(noticeTTL time.Duration) *Screen {
	return &Screen{noticeTTL: noticeTTL}
}

// SetList replaces the content of the list container.
func (s *Screen) SetList(html template.HTML) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = html
	s.listSet = true
}

// List returns the list container content and whether it was ever set.
func (s *Screen) List() (template.HTML, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list, s.listSet
}

// ShowMessage puts text in the message area and schedules it to clear after
// the screen's TTL. A pending clear from an earlier message is cancelled.
func (s *Screen) ShowMessage(text string, kind NoticeKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	s.noticeSeq++
	seq := s.noticeSeq
	s.notice = &Notice{Text: text, Kind: kind}
	s.noticeTimer = time.AfterFunc(s.noticeTTL, func() { s.clearNotice(seq) })
}

// Notice returns the current notice, if any.
func (s *Screen) Notice() (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return Notice{}, false
	}
	return *s.notice, true
}

// clearNotice runs from the timer. A stopped timer may still fire, so the
// sequence number guards against clearing a newer message.
func (s *Screen) clearNotice(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noticeSeq != seq {
		return
	}
	s.notice = nil
	s.noticeTimer = nil
}

// RequestConfirmation opens the restore dialog for task id, replacing any
// earlier pending confirmation.
func (s *Screen) RequestConfirmation(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmID = id
	s.confirmState = PendingConfirmation
}

// ResolveConfirmation closes the dialog for task id with the user's decision.
// It returns ErrNoPendingConfirmation unless id is the pending task.
func (s *Screen) ResolveConfirmation(id int64, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirmState != PendingConfirmation || s.confirmID != id {
		return ErrNoPendingConfirmation
	}
	if confirmed {
		s.confirmState = Confirmed
	} else {
		s.confirmState = Cancelled
	}
	return nil
}

// Confirmation returns the task id and state of the latest confirmation.
func (s *Screen) Confirmation() (int64, ConfirmationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmID, s.confirmState
}

// Snapshot copies the screen into a Page.
func (s *Screen) Snapshot() Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p Page
	p.List = s.list
	if s.notice != nil {
		n := *s.notice
		p.Notice = &n
	}
	if s.confirmState == PendingConfirmation {
		p.Confirmation = &Confirmation{ID: s.confirmID}
	}
	return p
}

// Close stops the pending notice timer.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
		s.noticeTimer = nil
	}
}
