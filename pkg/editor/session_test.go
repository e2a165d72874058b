package editor

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func newTestSession(doc string) *Session {
	return NewSession(uuid.New(), "Test Article", doc)
}

func TestSubmitWhileBusy(t *testing.T) {
	s := newTestSession("doc")

	if _, err := s.Submit("first"); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := s.Submit("second"); err != ErrBusy {
		t.Errorf("Submit during in-flight request: err = %v, want ErrBusy", err)
	}

	if err := s.ResolveModification("doc v2", "rewrote it"); err != nil {
		t.Fatalf("ResolveModification: %v", err)
	}
	if _, err := s.Submit("third"); err != ErrBusy {
		t.Errorf("Submit with unresolved proposal: err = %v, want ErrBusy", err)
	}

	if err := s.Reject(); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := s.Submit("fourth"); err != nil {
		t.Errorf("Submit after rejection: %v", err)
	}
}

func TestApproveAppliesProposal(t *testing.T) {
	s := newTestSession("old content")

	if _, err := s.Submit("improve this"); err != nil {
		t.Fatal(err)
	}
	if err := s.ResolveModification("new content", "tightened wording"); err != nil {
		t.Fatal(err)
	}
	if got := s.State(); got != StateAwaitingApproval {
		t.Fatalf("state = %q, want awaiting_approval", got)
	}

	doc, err := s.Approve()
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if doc != "new content" {
		t.Errorf("applied document = %q", doc)
	}
	if s.State() != StateIdle {
		t.Errorf("state after approve = %q", s.State())
	}

	snap := s.Snapshot()
	last := snap.Messages[len(snap.Messages)-1]
	if !last.IsSuccess || !strings.HasPrefix(last.Content, "✅ Changes applied! ") {
		t.Errorf("success message = %+v", last)
	}
	if !strings.Contains(last.Content, "tightened wording") {
		t.Errorf("success message missing explanation: %q", last.Content)
	}
	if snap.Pending != nil {
		t.Error("pending change survived approval")
	}
}

func TestRejectPreservesDocument(t *testing.T) {
	s := newTestSession("original")

	s.Submit("change it")
	s.ResolveModification("proposed", "why")
	if err := s.Reject(); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if s.Document() != "original" {
		t.Errorf("document after reject = %q", s.Document())
	}

	snap := s.Snapshot()
	last := snap.Messages[len(snap.Messages)-1]
	if last.Content != "❌ Changes rejected. The original content has been preserved." {
		t.Errorf("reject message = %q", last.Content)
	}
}

func TestResolveReply(t *testing.T) {
	s := newTestSession("doc")
	s.Submit("what do you think?")
	if err := s.ResolveReply("looks good"); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %q, want idle", s.State())
	}
	if s.Snapshot().Pending != nil {
		t.Error("conversational reply must not create a pending change")
	}
}

func TestIdenticalProposalDemotedToWarning(t *testing.T) {
	s := newTestSession("same text\n")
	s.Submit("rewrite")
	if err := s.ResolveModification("  same text ", "no-op"); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %q, want idle", s.State())
	}
	snap := s.Snapshot()
	if snap.Pending != nil {
		t.Error("identical content must not be held for approval")
	}
	last := snap.Messages[len(snap.Messages)-1]
	if !last.IsWarning {
		t.Errorf("expected warning message, got %+v", last)
	}
	if last.Content != "no-op" {
		t.Errorf("warning shows %q, want the assistant's own explanation", last.Content)
	}
}

func TestIdenticalProposalWithoutExplanation(t *testing.T) {
	s := newTestSession("same")
	s.Submit("rewrite")
	if err := s.ResolveModification("same", ""); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	last := snap.Messages[len(snap.Messages)-1]
	if !last.IsWarning || last.Content == "" {
		t.Errorf("expected fallback warning text, got %+v", last)
	}
}

func TestFailReturnsToIdle(t *testing.T) {
	s := newTestSession("doc")
	s.Submit("do it")
	if err := s.Fail("upstream timed out"); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %q, want idle", s.State())
	}
	snap := s.Snapshot()
	last := snap.Messages[len(snap.Messages)-1]
	if !last.IsError || last.Content != "upstream timed out" {
		t.Errorf("error message = %+v", last)
	}
	if _, err := s.Submit("retry"); err != nil {
		t.Errorf("Submit after failure: %v", err)
	}
}

func TestSelectionPreamble(t *testing.T) {
	s := newTestSession("intro\nbody\noutro")
	s.SetSelection("body", 6, 10)

	prompt, err := s.Submit("make this punchier")
	if err != nil {
		t.Fatal(err)
	}
	want := "Regarding this section: \"body\"\n\nmake this punchier"
	if prompt != want {
		t.Errorf("prompt = %q, want %q", prompt, want)
	}

	snap := s.Snapshot()
	if snap.Selection != nil {
		t.Error("selection should be consumed by Submit")
	}
	userMsg := snap.Messages[len(snap.Messages)-1]
	if userMsg.Content != "make this punchier" {
		t.Errorf("transcript shows %q, want the raw message", userMsg.Content)
	}
	if userMsg.FullContent != want {
		t.Errorf("FullContent = %q, want the full prompt %q", userMsg.FullContent, want)
	}
	if userMsg.PromptContent() != want {
		t.Errorf("PromptContent = %q, want %q", userMsg.PromptContent(), want)
	}
	if userMsg.ContextSpan == nil || userMsg.ContextSpan.Text != "body" || userMsg.ContextSpan.Start != 6 {
		t.Errorf("ContextSpan = %+v, want the consumed selection", userMsg.ContextSpan)
	}

	s.ResolveReply("done")
	prompt, _ = s.Submit("and again")
	if prompt != "and again" {
		t.Errorf("second prompt = %q, selection leaked across submissions", prompt)
	}
}

func TestClearSelectionRespectsLiveSelection(t *testing.T) {
	s := newTestSession("doc")
	s.SetSelection("doc", 0, 3)

	s.ClearSelection(true)
	if s.Snapshot().Selection == nil {
		t.Fatal("live selection was cleared")
	}

	s.ClearSelection(false)
	if s.Snapshot().Selection != nil {
		t.Error("selection not cleared")
	}
}

func TestResolutionWithoutRequest(t *testing.T) {
	s := newTestSession("doc")
	if err := s.ResolveReply("hi"); err != ErrNotAwaiting {
		t.Errorf("ResolveReply on idle session: err = %v", err)
	}
	if err := s.Fail("boom"); err != ErrNotAwaiting {
		t.Errorf("Fail on idle session: err = %v", err)
	}
	if _, err := s.Approve(); err != ErrNoPending {
		t.Errorf("Approve with no proposal: err = %v", err)
	}
	if err := s.Reject(); err != ErrNoPending {
		t.Errorf("Reject with no proposal: err = %v", err)
	}
}

func TestConcurrentSubmitSingleWinner(t *testing.T) {
	s := newTestSession("doc")

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Submit("race")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	winners := 0
	for err := range errs {
		if err == nil {
			winners++
		} else if err != ErrBusy {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Errorf("got %d successful submissions, want exactly 1", winners)
	}
}

func TestSubmitWithoutSelectionReplaysPlainText(t *testing.T) {
	s := newTestSession("doc")
	s.Submit("just a question")
	msg := s.Snapshot().Messages[0]
	if msg.FullContent != "just a question" {
		t.Errorf("FullContent = %q", msg.FullContent)
	}
	if msg.ContextSpan != nil {
		t.Errorf("ContextSpan = %+v, want nil without a selection", msg.ContextSpan)
	}
}

func TestRewrite(t *testing.T) {
	s := newTestSession("a\nb")

	if err := s.Rewrite(func(doc string) (string, error) {
		return doc + "\nc", nil
	}); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if s.Document() != "a\nb\nc" {
		t.Errorf("document = %q", s.Document())
	}

	s.Submit("go")
	s.ResolveModification("v2", "exp")
	if err := s.Rewrite(func(doc string) (string, error) { return doc, nil }); err != ErrBusy {
		t.Errorf("Rewrite with pending proposal: err = %v, want ErrBusy", err)
	}
}

func TestSnapshotCarriesTitle(t *testing.T) {
	s := NewSession(uuid.New(), "My Post", "doc")
	if got := s.Snapshot().Title; got != "My Post" {
		t.Errorf("snapshot title = %q", got)
	}
	if got := s.Title(); got != "My Post" {
		t.Errorf("Title() = %q", got)
	}
}

func TestSetDocumentBlockedDuringProposal(t *testing.T) {
	s := newTestSession("v1")
	s.Submit("go")
	s.ResolveModification("v2", "exp")
	if err := s.SetDocument("manual edit"); err != ErrBusy {
		t.Errorf("SetDocument with pending proposal: err = %v, want ErrBusy", err)
	}
	s.Approve()
	if err := s.SetDocument("manual edit"); err != nil {
		t.Errorf("SetDocument when idle: %v", err)
	}
}
