package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// HarvestCommand orders one harvest run over a folder of price tag
// images on behalf of a shop.
type HarvestCommand struct {
	Folder string `json:"folder"`
	ShopID int    `json:"shopId"`
}

// HarvestCommander sends harvest commands.
type HarvestCommander struct {
	sender Sender
}

// NewHarvestCommander returns new HarvestCommander using provided sender for sending messages.
func NewHarvestCommander(sender Sender) HarvestCommander {
	return HarvestCommander{
		sender: sender,
	}
}

// SendHarvestCommand sends harvest command with provided folder and shop id.
func (c HarvestCommander) SendHarvestCommand(ctx context.Context, folder string, shopID int) error {
	cmd := HarvestCommand{
		Folder: folder,
		ShopID: shopID,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal harvest command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
