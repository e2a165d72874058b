package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-blogcms-be/internal/model"
	"ai-blogcms-be/internal/pkg/logger"
	"ai-blogcms-be/internal/repository"
	"ai-blogcms-be/pkg/events"
	pktNats "ai-blogcms-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", typeCode), map[string]interface{}{"type": typeCode})

	switch typeCode {
	case "POST_PUBLISHED":
		return s.notifyAdmins(ctx, typeCode, event)
	case "ARTICLE_GENERATED":
		return s.notifySelf(ctx, typeCode, event)
	case "USER_REGISTERED":
		return s.notifyAdmins(ctx, typeCode, event)
	case "SYSTEM_BROADCAST":
		// Push only, a broadcast is not persisted to every inbox.
		if s.delivery != nil {
			s.delivery.Broadcast(s.buildNotification(uuid.Nil, typeCode, event))
		}
		return nil
	default:
		// Unknown events are acked, a redelivery won't make them known.
		return nil
	}
}

// notifyAdmins fans an event out to every admin inbox.
func (s *NotificationService) notifyAdmins(ctx context.Context, typeCode string, event events.Event) error {
	admins, err := s.repo.GetUsersByRole(ctx, "admin")
	if err != nil {
		s.logger.Error("NotificationService", "Error resolving admins", map[string]interface{}{"error": err})
		return err // NATS will retry
	}

	for _, admin := range admins {
		notif := s.buildNotification(admin.Id, typeCode, event)
		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", admin.Id), map[string]interface{}{"error": err})
			continue
		}
		if s.delivery != nil {
			s.delivery.Send(admin.Id, notif)
		}
	}
	return nil
}

// notifySelf targets the user named in the event payload.
func (s *NotificationService) notifySelf(ctx context.Context, typeCode string, event events.Event) error {
	uidStr, ok := event.Payload()["user_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No user_id in payload for event %s", typeCode), nil)
		return nil
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return nil
	}

	notif := s.buildNotification(uid, typeCode, event)
	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		return err
	}
	if s.delivery != nil {
		s.delivery.Send(uid, notif)
	}
	return nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode string, event events.Event) model.Notification {
	payload := event.Payload()
	title, message := renderTemplate(typeCode, payload)

	meta, _ := json.Marshal(payload)
	return model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  datatypes.JSON(meta),
		IsRead:    false,
		CreatedAt: time.Now(),
	}
}

func renderTemplate(typeCode string, payload map[string]interface{}) (title, message string) {
	str := func(key string) string {
		v, _ := payload[key].(string)
		return v
	}

	switch typeCode {
	case "POST_PUBLISHED":
		return "Post published", fmt.Sprintf("%q is now live at /blog/%s", str("title"), str("slug"))
	case "ARTICLE_GENERATED":
		return "Draft ready", fmt.Sprintf("The AI draft %q is ready for review", str("title"))
	case "USER_REGISTERED":
		return "New user", fmt.Sprintf("%s just registered", str("full_name"))
	case "SYSTEM_BROADCAST":
		return str("title"), str("message")
	default:
		return typeCode, ""
	}
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUser(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
