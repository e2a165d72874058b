package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/pkg/logger"
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/repository/memory"
	"ai-blogcms-be/pkg/ai/article"
	"ai-blogcms-be/pkg/editor"
	"ai-blogcms-be/pkg/events"
	"ai-blogcms-be/pkg/llm"
	"ai-blogcms-be/pkg/markdown"
	pktNats "ai-blogcms-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// aiRequestTimeout bounds a single model round trip so a hung provider
// cannot leave the session stuck in the awaiting state.
const aiRequestTimeout = 60 * time.Second

type IEditorService interface {
	Open(ctx context.Context, req *dto.OpenSessionRequest) (*dto.SessionStateResponse, error)
	Get(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	Chat(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.SessionStateResponse, error)
	Approve(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	Reject(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	SetSelection(ctx context.Context, sessionId uuid.UUID, req *dto.SelectionRequest) (*dto.SessionStateResponse, error)
	ClearSelection(ctx context.Context, sessionId uuid.UUID, req *dto.ClearSelectionRequest) (*dto.SessionStateResponse, error)
	SetContent(ctx context.Context, sessionId uuid.UUID, req *dto.SetContentRequest) (*dto.SessionStateResponse, error)
	InsertImage(ctx context.Context, sessionId uuid.UUID, req *dto.InsertImageRequest) (*dto.SessionStateResponse, error)
	ReplaceImage(ctx context.Context, sessionId uuid.UUID, ordinal int, req *dto.ReplaceImageRequest) (*dto.SessionStateResponse, error)
	Preview(ctx context.Context, sessionId uuid.UUID) (*dto.PreviewResponse, error)
	Close(ctx context.Context, sessionId uuid.UUID) error
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateArticleRequest) (*dto.GenerateArticleResponse, error)
}

type editorService struct {
	sessions       *memory.SessionRepository
	transformer    article.Transformer
	postService    IBlogPostService
	eventPublisher *pktNats.Publisher
	stream         message.Publisher
	logger         logger.ILogger
}

func NewEditorService(
	sessions *memory.SessionRepository,
	transformer article.Transformer,
	postService IBlogPostService,
	eventPublisher *pktNats.Publisher,
	stream message.Publisher,
	log logger.ILogger,
) IEditorService {
	return &editorService{
		sessions:       sessions,
		transformer:    transformer,
		postService:    postService,
		eventPublisher: eventPublisher,
		stream:         stream,
		logger:         log,
	}
}

// EditorStreamTopic names the in-process channel carrying state pushes for
// one session. The WebSocket endpoint subscribes here to mirror every
// discrete session event to connected clients.
func EditorStreamTopic(sessionId uuid.UUID) string {
	return "EDITOR_SESSION_EVENTS." + sessionId.String()
}

func (s *editorService) Open(ctx context.Context, req *dto.OpenSessionRequest) (*dto.SessionStateResponse, error) {
	content := req.Content
	title := req.Title
	if req.PostId != uuid.Nil {
		post, err := s.postService.Get(ctx, req.PostId)
		if err != nil {
			return nil, err
		}
		// The stored draft wins over a client-supplied copy, the client may
		// hold a stale document.
		content = post.Content
		title = post.Title
	}

	sess := editor.NewSession(req.PostId, title, content)
	s.sessions.Save(sess)

	s.logger.Info("EditorService", "Session opened", map[string]interface{}{
		"session_id": sess.ID(),
		"post_id":    req.PostId,
	})
	return snapshotToDTO(sess.Snapshot()), nil
}

func (s *editorService) Get(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}
	return snapshotToDTO(sess.Snapshot()), nil
}

func (s *editorService) Chat(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}

	prompt, err := sess.Submit(req.Message)
	if err != nil {
		if errors.Is(err, editor.ErrBusy) {
			return nil, serverutils.NewApiError(fiber.StatusConflict, "A previous request is still pending")
		}
		return nil, err
	}

	snap := sess.Snapshot()
	history := chatHistory(snap.Messages)

	tctx, cancel := context.WithTimeout(ctx, aiRequestTimeout)
	defer cancel()

	upd, err := s.transformer.Update(tctx, article.UpdateRequest{
		Content:     snap.Document,
		Instruction: prompt,
		Title:       snap.Title,
		History:     history,
	})
	if err != nil {
		s.logger.Error("EditorService", "AI update failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		if failErr := sess.Fail("Sorry, I couldn't process that request. Please try again."); failErr != nil {
			return nil, failErr
		}
		return s.push(snapshotToDTO(sess.Snapshot())), nil
	}

	if upd.IsModification {
		err = sess.ResolveModification(upd.Content, upd.Message)
	} else {
		err = sess.ResolveReply(upd.Message)
	}
	if err != nil {
		return nil, err
	}
	return s.push(snapshotToDTO(sess.Snapshot())), nil
}

func (s *editorService) Approve(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}

	doc, err := sess.Approve()
	if err != nil {
		if errors.Is(err, editor.ErrNoPending) {
			return nil, serverutils.NewApiError(fiber.StatusConflict, "No pending change to approve")
		}
		return nil, err
	}

	snap := sess.Snapshot()
	if snap.PostID != uuid.Nil {
		if err := s.postService.SetContent(ctx, snap.PostID, doc); err != nil {
			s.logger.Error("EditorService", "Failed to persist approved content", map[string]interface{}{
				"session_id": sessionId,
				"post_id":    snap.PostID,
				"error":      err.Error(),
			})
			return nil, err
		}
	}
	return s.push(snapshotToDTO(snap)), nil
}

func (s *editorService) Reject(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}

	if err := sess.Reject(); err != nil {
		if errors.Is(err, editor.ErrNoPending) {
			return nil, serverutils.NewApiError(fiber.StatusConflict, "No pending change to reject")
		}
		return nil, err
	}
	return s.push(snapshotToDTO(sess.Snapshot())), nil
}

func (s *editorService) SetSelection(ctx context.Context, sessionId uuid.UUID, req *dto.SelectionRequest) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}
	sess.SetSelection(req.Text, req.Start, req.End)
	return s.push(snapshotToDTO(sess.Snapshot())), nil
}

func (s *editorService) ClearSelection(ctx context.Context, sessionId uuid.UUID, req *dto.ClearSelectionRequest) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}
	sess.ClearSelection(req.LiveSelectionActive)
	return s.push(snapshotToDTO(sess.Snapshot())), nil
}

func (s *editorService) SetContent(ctx context.Context, sessionId uuid.UUID, req *dto.SetContentRequest) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}
	if err := sess.SetDocument(req.Content); err != nil {
		if errors.Is(err, editor.ErrBusy) {
			return nil, serverutils.NewApiError(fiber.StatusConflict, "Resolve the pending change before editing the document")
		}
		return nil, err
	}
	return s.push(snapshotToDTO(sess.Snapshot())), nil
}

func (s *editorService) InsertImage(ctx context.Context, sessionId uuid.UUID, req *dto.InsertImageRequest) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}
	err = sess.Rewrite(func(doc string) (string, error) {
		return markdown.InsertImage(doc, req.Offset, req.Alt, req.URL), nil
	})
	if err != nil {
		if errors.Is(err, editor.ErrBusy) {
			return nil, serverutils.NewApiError(fiber.StatusConflict, "Resolve the pending change before editing the document")
		}
		return nil, err
	}
	return s.push(snapshotToDTO(sess.Snapshot())), nil
}

func (s *editorService) ReplaceImage(ctx context.Context, sessionId uuid.UUID, ordinal int, req *dto.ReplaceImageRequest) (*dto.SessionStateResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}
	err = sess.Rewrite(func(doc string) (string, error) {
		out, ok := markdown.ReplaceImage(doc, ordinal, req.Alt, req.URL)
		if !ok {
			return "", serverutils.NewApiError(fiber.StatusNotFound, "No image at that position")
		}
		return out, nil
	})
	if err != nil {
		if errors.Is(err, editor.ErrBusy) {
			return nil, serverutils.NewApiError(fiber.StatusConflict, "Resolve the pending change before editing the document")
		}
		return nil, err
	}
	return s.push(snapshotToDTO(sess.Snapshot())), nil
}

func (s *editorService) Preview(ctx context.Context, sessionId uuid.UUID) (*dto.PreviewResponse, error) {
	sess, err := s.lookup(sessionId)
	if err != nil {
		return nil, err
	}

	doc := sess.Document()
	rendered := markdown.Render(doc)
	sections := markdown.Segment(doc)

	res := &dto.PreviewResponse{
		HTML:       rendered.HTML,
		Images:     toElementRanges(rendered.Images),
		Paragraphs: toElementRanges(rendered.Paragraphs),
		Sections:   make([]dto.SectionDTO, 0, len(sections)),
	}
	for _, sec := range sections {
		res.Sections = append(res.Sections, dto.SectionDTO{
			Kind:      string(sec.Kind),
			Lines:     sec.SourceLines,
			StartLine: sec.StartLine,
		})
	}
	return res, nil
}

func (s *editorService) Close(ctx context.Context, sessionId uuid.UUID) error {
	if _, err := s.lookup(sessionId); err != nil {
		return err
	}
	s.sessions.Delete(sessionId.String())
	return nil
}

func (s *editorService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateArticleRequest) (*dto.GenerateArticleResponse, error) {
	tctx, cancel := context.WithTimeout(ctx, aiRequestTimeout)
	defer cancel()

	draft, err := s.transformer.Generate(tctx, req.Prompt)
	if err != nil {
		s.logger.Error("EditorService", "Article generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.NewApiError(fiber.StatusBadGateway, "Article generation failed")
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "ARTICLE_GENERATED",
			Data: map[string]interface{}{
				"user_id": userId.String(),
				"title":   draft.Title,
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, evt)
	}

	return &dto.GenerateArticleResponse{
		Title:   draft.Title,
		Content: draft.Content,
		Excerpt: draft.Excerpt,
	}, nil
}

func (s *editorService) lookup(sessionId uuid.UUID) (*editor.Session, error) {
	sess, ok := s.sessions.Get(sessionId.String())
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "Editor session not found or expired")
	}
	return sess, nil
}

// push mirrors a session state onto the event stream, best effort. A nil
// stream (tests, stripped-down wiring) is a no-op.
func (s *editorService) push(res *dto.SessionStateResponse) *dto.SessionStateResponse {
	if s.stream == nil || res == nil {
		return res
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return res
	}
	if err := s.stream.Publish(EditorStreamTopic(res.Id), message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Warn("EditorService", "Failed to push session event", map[string]interface{}{
			"session_id": res.Id,
			"error":      err.Error(),
		})
	}
	return res
}

// chatHistory converts the transcript into provider messages. The last
// entry is the request being processed right now and status markers are
// UI artifacts, both stay out of the model context. User turns replay
// their full prompt so earlier selection context survives.
func chatHistory(messages []editor.Message) []llm.Message {
	if len(messages) > 0 {
		messages = messages[:len(messages)-1]
	}
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		if m.IsError || m.IsWarning || m.IsSuccess {
			continue
		}
		history = append(history, llm.Message{Role: string(m.Role), Content: m.PromptContent()})
	}
	return history
}

func snapshotToDTO(snap editor.Snapshot) *dto.SessionStateResponse {
	res := &dto.SessionStateResponse{
		Id:        snap.ID,
		PostId:    snap.PostID,
		Title:     snap.Title,
		Content:   snap.Document,
		State:     string(snap.State),
		Messages:  make([]dto.ChatMessageResponse, 0, len(snap.Messages)),
		UpdatedAt: snap.UpdatedAt,
	}
	for _, m := range snap.Messages {
		msg := dto.ChatMessageResponse{
			Id:          m.ID,
			Role:        string(m.Role),
			Content:     m.Content,
			FullContent: m.FullContent,
			IsError:     m.IsError,
			IsWarning:   m.IsWarning,
			IsSuccess:   m.IsSuccess,
			CreatedAt:   m.CreatedAt,
		}
		if m.ContextSpan != nil {
			msg.ContextSpan = &dto.SelectionResponse{
				Text:  m.ContextSpan.Text,
				Start: m.ContextSpan.Start,
				End:   m.ContextSpan.End,
			}
		}
		res.Messages = append(res.Messages, msg)
	}
	if snap.Pending != nil {
		pending := &dto.PendingChangeResponse{
			OriginalContent: snap.Pending.OriginalContent,
			ProposedContent: snap.Pending.ProposedContent,
			Explanation:     snap.Pending.Explanation,
			Diff:            make([]dto.DiffLineResponse, 0, len(snap.Pending.Diff)),
			Additions:       snap.Pending.Stats.Additions,
			Deletions:       snap.Pending.Stats.Deletions,
		}
		for _, line := range snap.Pending.Diff {
			pending.Diff = append(pending.Diff, dto.DiffLineResponse{
				Type:    string(line.Type),
				Content: line.Content,
				OldLine: line.OldLine,
				NewLine: line.NewLine,
			})
		}
		res.Pending = pending
	}
	if snap.Selection != nil {
		res.Selection = &dto.SelectionResponse{
			Text:  snap.Selection.Text,
			Start: snap.Selection.Start,
			End:   snap.Selection.End,
		}
	}
	return res
}
