package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/events"
)

// NotificationService posts routed-ticket notifications to the Teams bot
// webhook. Delivery is fire-and-forget: failures are logged and never
// retried, and they never block assignment persistence.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	http       *http.Client
}

// notifyRequest is the webhook payload.
type notifyRequest struct {
	TicketID   string `json:"ticketId"`
	AssignedTo string `json:"assignedTo"`
	Summary    string `json:"summary"`
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		http:       &http.Client{Timeout: cfg.Timeout()},
	}
}

// RegisterHandlers subscribes to routing events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketRouted, n.handleTicketRouted)
}

func (n *NotificationService) handleTicketRouted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketRoutedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", event.Payload)
	}
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return nil
	}
	if n.cfg.DryRun {
		n.logger.Info("dry run: would send notification",
			zap.String("ticket_id", event.TicketID),
			zap.String("technician", payload.Technician))
		return nil
	}

	body, err := json.Marshal(notifyRequest{
		TicketID:   event.TicketID,
		AssignedTo: payload.Technician,
		Summary:    payload.Subject,
	})
	if err != nil {
		n.logger.Error("encode notification", zap.Error(err))
		return err
	}

	endpoint := strings.TrimSuffix(n.cfg.WebhookURL, "/") + "/notify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("build notification request", zap.Error(err))
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		n.logger.Error("send notification",
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		n.logger.Error("notification rejected",
			zap.String("ticket_id", event.TicketID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}

	n.logger.Info("notification sent",
		zap.String("ticket_id", event.TicketID),
		zap.String("technician", payload.Technician))
	return nil
}
