package handlers

import (
	"context"

	"github.com/AdviTravel/advitravel-backend/types"
)

// EmailSender abstracts the transactional-email provider. Both the Resend
// SDK service and the plain REST client satisfy it; handler tests use a
// mock. An error covers transport faults and SDK-level rejections; a
// result with Delivered false carries the provider's diagnostic payload.
type EmailSender interface {
	Send(ctx context.Context, msg *types.OutboundMessage) (*types.DeliveryResult, error)
}
