package service

import (
	"context"
	"encoding/json"
	"log"

	"music-match-be/internal/dto"
	"music-match-be/internal/repository/specification"
	"music-match-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService warms the enrichment cache for tracks about to be
// shown, so the client usually finds a preview already resolved.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	enrichmentService IEnrichmentService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	enrichmentService IEnrichmentService,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		enrichmentService: enrichmentService,
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
	var payload dto.PrefetchPreviewMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal prefetch message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	track, err := uow.TrackRepository().FindOne(ctx, specification.ByTrackID{TrackID: payload.TrackId})
	if err != nil {
		log.Printf("[ERROR] Failed to load track %s for prefetch: %v", payload.TrackId, err)
		msg.Nack()
		return
	}
	if track == nil {
		// Track removed from catalog? Nothing to warm.
		msg.Ack()
		return
	}

	// Resolve absorbs upstream failures, so this always settles the cache
	cs.enrichmentService.Resolve(ctx, track)
	msg.Ack()
}
