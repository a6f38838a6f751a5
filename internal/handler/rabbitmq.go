package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/semjacko/product-harvester/internal/platform/rabbitmq"
	"github.com/semjacko/product-harvester/pkg/v1/commander"
)

// Harvester harvests product data from price tag images in a folder.
type Harvester interface {
	Harvest(ctx context.Context, folder string, shopID int) error
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq       *rabbitmq.RabbitMQ
	harvester Harvester
	logger    *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq *rabbitmq.RabbitMQ, harvester Harvester, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:       rmq,
		harvester: harvester,
		logger:    logger,
	}
}

// Start starts consuming and handling harvest commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, func(ctx context.Context, message []byte) error {
		cmd, err := decodeMessage(message)
		if err != nil {
			return err
		}

		h.logger.Debug().
			Str("folder", cmd.Folder).
			Int("shopId", cmd.ShopID).
			Msg("harvesting started")

		err = h.harvester.Harvest(ctx, cmd.Folder, cmd.ShopID)
		if err != nil {
			return fmt.Errorf("harvesting failed: %w", err)
		}

		h.logger.Debug().
			Str("folder", cmd.Folder).
			Int("shopId", cmd.ShopID).
			Msg("harvesting finished")

		return nil
	})
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

func decodeMessage(msg []byte) (*commander.HarvestCommand, error) {
	var cmd commander.HarvestCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode harvest command: %w", err)
	}

	return &cmd, err
}
