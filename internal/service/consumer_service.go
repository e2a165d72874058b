package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-blogcms-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains cache invalidation messages queued by the post
// service and drops the matching Redis render entries.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	rdb       *redis.Client
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	rdb *redis.Client,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		rdb:       rdb,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PostCacheMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal cache message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.rdb == nil || payload.Slug == "" {
		msg.Ack()
		return
	}

	if err := cs.rdb.Del(ctx, RenderCacheKey(payload.Slug)).Err(); err != nil {
		log.Printf("[ERROR] Failed to invalidate render cache for %s: %v", payload.Slug, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[INFO] Invalidated render cache for post %s (%s)", payload.PostId, payload.Slug)
	msg.Ack()
}
