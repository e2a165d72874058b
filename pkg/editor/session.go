// Package editor implements the chat-driven edit session for a single
// document. A Session owns the working Markdown source, the conversation
// history, and the approval workflow for AI-proposed modifications. All
// state transitions go through the Session's mutex; callers never mutate
// the fields directly.
package editor

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ai-blogcms-be/pkg/diff"
)

// State is the session's position in the request/approval cycle.
type State string

const (
	// StateIdle accepts new chat submissions.
	StateIdle State = "idle"
	// StateAwaitingAI means a request is in flight; submissions are rejected.
	StateAwaitingAI State = "awaiting_ai_response"
	// StateAwaitingApproval means a proposed change is held for review;
	// submissions are rejected until it is approved or rejected.
	StateAwaitingApproval State = "awaiting_approval"
)

var (
	// ErrBusy is returned by Submit while a request or an unresolved
	// proposal is outstanding.
	ErrBusy = errors.New("editor: session is busy with a previous request")
	// ErrNoPending is returned by Approve/Reject with nothing to resolve.
	ErrNoPending = errors.New("editor: no pending change to resolve")
	// ErrNotAwaiting is returned when a resolution arrives for a session
	// that has no request in flight.
	ErrNotAwaiting = errors.New("editor: no request awaiting a response")
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the session transcript. Content is the text as
// displayed; FullContent additionally carries the selection preamble the
// message was submitted with and is what gets replayed to the AI, so prior
// turns keep their selection context. The flag fields drive presentation
// only and are mutually exclusive.
type Message struct {
	ID          uuid.UUID  `json:"id"`
	Role        Role       `json:"role"`
	Content     string     `json:"content"`
	FullContent string     `json:"full_content,omitempty"`
	ContextSpan *Selection `json:"context_span,omitempty"`
	IsError     bool       `json:"is_error,omitempty"`
	IsWarning   bool       `json:"is_warning,omitempty"`
	IsSuccess   bool       `json:"is_success,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PromptContent is the text replayed to the AI for this message.
func (m Message) PromptContent() string {
	if m.FullContent != "" {
		return m.FullContent
	}
	return m.Content
}

// PendingChange holds an AI-proposed rewrite until the user resolves it.
// OriginalContent is captured at proposal time so approval always applies
// against the exact document the diff was computed from.
type PendingChange struct {
	OriginalContent string      `json:"original_content"`
	ProposedContent string      `json:"proposed_content"`
	Explanation     string      `json:"explanation"`
	Diff            []diff.Line `json:"diff"`
	Stats           diff.Stats  `json:"stats"`
}

// Selection is the text range the next submission should be scoped to.
type Selection struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Session is the mutable edit state for one document. Safe for concurrent
// use; every exported method takes the session lock.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	postID    uuid.UUID
	title     string
	document  string
	state     State
	messages  []Message
	pending   *PendingChange
	selection *Selection
	updatedAt time.Time
}

// Snapshot is a read-only copy of the session state for serialization.
type Snapshot struct {
	ID        uuid.UUID      `json:"id"`
	PostID    uuid.UUID      `json:"post_id"`
	Title     string         `json:"title"`
	Document  string         `json:"document"`
	State     State          `json:"state"`
	Messages  []Message      `json:"messages"`
	Pending   *PendingChange `json:"pending_change,omitempty"`
	Selection *Selection     `json:"selection,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewSession opens an edit session over the given document source. title
// is the article title the document belongs to, used as model context.
func NewSession(postID uuid.UUID, title, document string) *Session {
	return &Session{
		id:        uuid.New(),
		postID:    postID,
		title:     title,
		document:  document,
		state:     StateIdle,
		updatedAt: time.Now(),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Title() string { return s.title }

// Document returns the current working source.
func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetDocument replaces the working source directly, e.g. after a manual
// edit in the form. Rejected while a proposal is unresolved because the
// held diff would no longer apply cleanly.
func (s *Session) SetDocument(document string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrBusy
	}
	s.document = document
	s.touch()
	return nil
}

// Rewrite applies fn to the working source under the session lock. Same
// gating as SetDocument: rejected while a request or proposal is
// outstanding so a held diff never goes stale.
func (s *Session) Rewrite(fn func(document string) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrBusy
	}
	doc, err := fn(s.document)
	if err != nil {
		return err
	}
	s.document = doc
	s.touch()
	return nil
}

// SetSelection records the section the next submission is scoped to,
// replacing any previous selection.
func (s *Session) SetSelection(text string, start, end int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = &Selection{Text: text, Start: start, End: end}
	s.touch()
}

// ClearSelection drops the recorded selection. When liveSelectionActive is
// true the user still has text highlighted in the editor, so the context
// is kept; dismissing the popup must not wipe a selection that is about to
// be re-captured.
func (s *Session) ClearSelection(liveSelectionActive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if liveSelectionActive {
		return
	}
	s.selection = nil
	s.touch()
}

// Submit records a user message and moves the session into the
// awaiting-response state. The returned prompt is what should be sent to
// the AI: when a selection is active it is prefixed with the selection
// context, and the selection is consumed. The transcript displays the
// user's message as typed but keeps the full prompt and the consumed span
// on the message, so later turns replay with the same context.
func (s *Session) Submit(message string) (prompt string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return "", ErrBusy
	}

	prompt = message
	var span *Selection
	if s.selection != nil && s.selection.Text != "" {
		prompt = fmt.Sprintf("Regarding this section: %q\n\n%s", s.selection.Text, message)
		span = &Selection{Text: s.selection.Text, Start: s.selection.Start, End: s.selection.End}
		s.selection = nil
	}

	s.appendLocked(Message{Role: RoleUser, Content: message, FullContent: prompt, ContextSpan: span})
	s.state = StateAwaitingAI
	return prompt, nil
}

// ResolveReply completes an in-flight request with a conversational answer.
func (s *Session) ResolveReply(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAI {
		return ErrNotAwaiting
	}
	s.appendLocked(Message{Role: RoleAssistant, Content: text})
	s.state = StateIdle
	return nil
}

// ResolveModification completes an in-flight request with proposed content.
// The diff against the current document is computed and held for approval.
// A proposal whose content matches the document (modulo surrounding
// whitespace) carries no change, so the explanation is demoted to a
// warning reply and the session returns to idle.
func (s *Session) ResolveModification(content, explanation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAI {
		return ErrNotAwaiting
	}

	if strings.TrimSpace(content) == strings.TrimSpace(s.document) {
		text := explanation
		if strings.TrimSpace(text) == "" {
			text = "The content is already in that state, so there is nothing to apply."
		}
		s.appendLocked(Message{Role: RoleAssistant, Content: text, IsWarning: true})
		s.state = StateIdle
		return nil
	}

	lines := diff.Compute(s.document, content)
	s.pending = &PendingChange{
		OriginalContent: s.document,
		ProposedContent: content,
		Explanation:     explanation,
		Diff:            lines,
		Stats:           diff.Summarize(lines),
	}
	s.appendLocked(Message{Role: RoleAssistant, Content: explanation})
	s.state = StateAwaitingApproval
	return nil
}

// Fail completes an in-flight request with an error notice and returns the
// session to idle so the user can retry.
func (s *Session) Fail(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAI {
		return ErrNotAwaiting
	}
	s.appendLocked(Message{Role: RoleAssistant, Content: reason, IsError: true})
	s.state = StateIdle
	return nil
}

// Approve applies the pending change to the document and returns the new
// source.
func (s *Session) Approve() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingApproval || s.pending == nil {
		return "", ErrNoPending
	}
	s.document = s.pending.ProposedContent
	s.appendLocked(Message{
		Role:      RoleAssistant,
		Content:   "✅ Changes applied! " + s.pending.Explanation,
		IsSuccess: true,
	})
	s.pending = nil
	s.state = StateIdle
	return s.document, nil
}

// Reject discards the pending change, leaving the document untouched.
func (s *Session) Reject() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingApproval || s.pending == nil {
		return ErrNoPending
	}
	s.appendLocked(Message{
		Role:    RoleAssistant,
		Content: "❌ Changes rejected. The original content has been preserved.",
	})
	s.pending = nil
	s.state = StateIdle
	return nil
}

// Snapshot copies the session state for transport. Message and diff slices
// are copied so the caller cannot alias internal state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.id,
		PostID:    s.postID,
		Title:     s.title,
		Document:  s.document,
		State:     s.state,
		Messages:  append([]Message(nil), s.messages...),
		UpdatedAt: s.updatedAt,
	}
	for i, m := range snap.Messages {
		if m.ContextSpan != nil {
			span := *m.ContextSpan
			snap.Messages[i].ContextSpan = &span
		}
	}
	if s.pending != nil {
		p := *s.pending
		p.Diff = append([]diff.Line(nil), s.pending.Diff...)
		snap.Pending = &p
	}
	if s.selection != nil {
		sel := *s.selection
		snap.Selection = &sel
	}
	return snap
}

func (s *Session) appendLocked(m Message) {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	s.messages = append(s.messages, m)
	s.touch()
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}
