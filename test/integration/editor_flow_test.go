package integration

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/pkg/logger"
	"ai-blogcms-be/internal/repository/memory"
	"ai-blogcms-be/internal/service"
	"ai-blogcms-be/pkg/ai/article"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticle = `# Getting Started

This introduction explains what the article covers.

![Cover](https://example.com/cover.jpg)

## Details

The body goes here.`

func newEditorService(t *testing.T) (service.IEditorService, *gochannel.GoChannel) {
	t.Helper()
	return newEditorServiceWith(t, article.MockTransformer{})
}

func newEditorServiceWith(t *testing.T, transformer article.Transformer) (service.IEditorService, *gochannel.GoChannel) {
	t.Helper()
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "editor_test.log"))
	stream := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	return service.NewEditorService(
		memory.NewSessionRepository(),
		transformer,
		nil, // no persistence, sessions are opened on raw content
		nil,
		stream,
		log,
	), stream
}

func TestEditorChatApproveFlow(t *testing.T) {
	svc, _ := newEditorService(t)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Content: sampleArticle})
	require.NoError(t, err)
	require.Equal(t, "idle", sess.State)
	require.Equal(t, sampleArticle, sess.Content)

	// A request the mock treats as a modification.
	state, err := svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "make the intro better"})
	require.NoError(t, err)
	require.Equal(t, "awaiting_approval", state.State)
	require.NotNil(t, state.Pending)
	assert.Equal(t, sampleArticle, state.Pending.OriginalContent)
	assert.NotEqual(t, state.Pending.OriginalContent, state.Pending.ProposedContent)
	assert.NotEmpty(t, state.Pending.Diff)
	assert.Greater(t, state.Pending.Additions, 0)

	// The document itself is untouched until approval.
	assert.Equal(t, sampleArticle, state.Content)

	// A second request while the proposal is open is rejected.
	_, err = svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "add an example"})
	require.Error(t, err)

	approved, err := svc.Approve(ctx, sess.Id)
	require.NoError(t, err)
	assert.Equal(t, "idle", approved.State)
	assert.Nil(t, approved.Pending)
	assert.NotEqual(t, sampleArticle, approved.Content)

	last := approved.Messages[len(approved.Messages)-1]
	assert.True(t, last.IsSuccess)
	assert.Contains(t, last.Content, "Changes applied")
}

func TestEditorChatRejectFlow(t *testing.T) {
	svc, _ := newEditorService(t)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Content: sampleArticle})
	require.NoError(t, err)

	state, err := svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "replace the image please"})
	require.NoError(t, err)
	require.Equal(t, "awaiting_approval", state.State)

	rejected, err := svc.Reject(ctx, sess.Id)
	require.NoError(t, err)
	assert.Equal(t, "idle", rejected.State)
	assert.Equal(t, sampleArticle, rejected.Content)

	last := rejected.Messages[len(rejected.Messages)-1]
	assert.Contains(t, last.Content, "Changes rejected")
}

func TestEditorConversationalTurn(t *testing.T) {
	svc, _ := newEditorService(t)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Content: sampleArticle})
	require.NoError(t, err)

	state, err := svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "does the structure look good?"})
	require.NoError(t, err)
	assert.Equal(t, "idle", state.State)
	assert.Nil(t, state.Pending)

	last := state.Messages[len(state.Messages)-1]
	assert.Equal(t, "assistant", last.Role)
	assert.False(t, last.IsError)
}

func TestEditorSelectionScopesRequest(t *testing.T) {
	svc, _ := newEditorService(t)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Content: sampleArticle})
	require.NoError(t, err)

	_, err = svc.SetSelection(ctx, sess.Id, &dto.SelectionRequest{
		Text:  "The body goes here.",
		Start: 100,
		End:   119,
	})
	require.NoError(t, err)

	state, err := svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "add an example here"})
	require.NoError(t, err)

	// Selection is consumed by the request.
	assert.Nil(t, state.Selection)
	require.NotNil(t, state.Pending)
}

func TestEditorPreview(t *testing.T) {
	svc, _ := newEditorService(t)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Content: sampleArticle})
	require.NoError(t, err)

	preview, err := svc.Preview(ctx, sess.Id)
	require.NoError(t, err)
	assert.Contains(t, preview.HTML, "<h1>Getting Started</h1>")
	require.Len(t, preview.Images, 1)
	assert.Equal(t, "https://example.com/cover.jpg", preview.Images[0].URL)
	assert.NotEmpty(t, preview.Sections)
}

func TestEditorGenerate(t *testing.T) {
	svc, _ := newEditorService(t)
	ctx := context.Background()

	res, err := svc.Generate(ctx, uuid.Nil, &dto.GenerateArticleRequest{Prompt: "a post about testing"})
	require.NoError(t, err)
	assert.Contains(t, res.Title, "post about testing")
	assert.Contains(t, res.Content, "# ")
	assert.NotEmpty(t, res.Excerpt)
}

func TestEditorSessionNotFound(t *testing.T) {
	svc, _ := newEditorService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
}

// capturingTransformer records the last transform request so tests can
// assert what context the service sends to the model.
type capturingTransformer struct {
	lastReq article.UpdateRequest
}

func (c *capturingTransformer) Generate(ctx context.Context, prompt string) (*article.Draft, error) {
	return &article.Draft{Title: "Draft", Content: "# Draft", Excerpt: "e"}, nil
}

func (c *capturingTransformer) Update(ctx context.Context, req article.UpdateRequest) (*article.Update, error) {
	c.lastReq = req
	return &article.Update{IsModification: false, Message: "noted"}, nil
}

func TestEditorChatCarriesTitleAndSelectionHistory(t *testing.T) {
	capture := &capturingTransformer{}
	svc, _ := newEditorServiceWith(t, capture)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Title: "My Post", Content: sampleArticle})
	require.NoError(t, err)

	_, err = svc.SetSelection(ctx, sess.Id, &dto.SelectionRequest{Text: "The body goes here.", Start: 100, End: 119})
	require.NoError(t, err)

	_, err = svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "tighten this"})
	require.NoError(t, err)
	assert.Equal(t, "My Post", capture.lastReq.Title)
	assert.True(t, strings.HasPrefix(capture.lastReq.Instruction, "Regarding this section:"))

	// The next turn replays the previous user message with its selection
	// preamble intact.
	_, err = svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "thanks"})
	require.NoError(t, err)
	require.NotEmpty(t, capture.lastReq.History)
	assert.Contains(t, capture.lastReq.History[0].Content, "Regarding this section:")
	assert.Contains(t, capture.lastReq.History[0].Content, "tighten this")
}

func TestEditorImageInsertAndReplace(t *testing.T) {
	svc, _ := newEditorService(t)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Content: sampleArticle})
	require.NoError(t, err)

	state, err := svc.InsertImage(ctx, sess.Id, &dto.InsertImageRequest{
		Offset: len(sampleArticle),
		Alt:    "Diagram",
		URL:    "https://example.com/diagram.png",
	})
	require.NoError(t, err)
	assert.Contains(t, state.Content, "![Diagram](https://example.com/diagram.png)")

	// The cover is ordinal 0, the inserted diagram ordinal 1.
	state, err = svc.ReplaceImage(ctx, sess.Id, 0, &dto.ReplaceImageRequest{
		Alt: "New cover",
		URL: "https://example.com/new-cover.jpg",
	})
	require.NoError(t, err)
	assert.Contains(t, state.Content, "![New cover](https://example.com/new-cover.jpg)")
	assert.NotContains(t, state.Content, "https://example.com/cover.jpg")
	assert.Contains(t, state.Content, "https://example.com/diagram.png")

	_, err = svc.ReplaceImage(ctx, sess.Id, 9, &dto.ReplaceImageRequest{Alt: "x", URL: "https://example.com/x.png"})
	require.Error(t, err)
}

func TestEditorImageEditBlockedDuringProposal(t *testing.T) {
	svc, _ := newEditorService(t)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Content: sampleArticle})
	require.NoError(t, err)

	_, err = svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "make the intro better"})
	require.NoError(t, err)

	_, err = svc.InsertImage(ctx, sess.Id, &dto.InsertImageRequest{Offset: 0, URL: "https://example.com/i.png"})
	require.Error(t, err)
}

func TestEditorEventsStreamed(t *testing.T) {
	svc, stream := newEditorService(t)
	ctx := context.Background()

	sess, err := svc.Open(ctx, &dto.OpenSessionRequest{Content: sampleArticle})
	require.NoError(t, err)

	events, err := stream.Subscribe(ctx, service.EditorStreamTopic(sess.Id))
	require.NoError(t, err)

	_, err = svc.Chat(ctx, sess.Id, &dto.ChatRequest{Message: "make the intro better"})
	require.NoError(t, err)

	select {
	case msg := <-events:
		var pushed dto.SessionStateResponse
		require.NoError(t, json.Unmarshal(msg.Payload, &pushed))
		assert.Equal(t, sess.Id, pushed.Id)
		assert.Equal(t, "awaiting_approval", pushed.State)
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("no session event received")
	}
}
