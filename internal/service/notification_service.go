package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/events"
)

// NotificationService handles emitting notifications for member lifecycle
// events. Delivery is stubbed: the real confirmation-link email channel is
// an external collaborator, so the seam only logs what it would send.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMemberRegistered, n.handleMemberRegistered)
	n.dispatcher.Subscribe(events.EventMemberValidated, n.handleMemberValidated)
	n.dispatcher.Subscribe(events.EventPasswordCreated, n.handlePasswordCreated)
	n.dispatcher.Subscribe(events.EventMembersImported, n.handleMembersImported)
}

func (n *NotificationService) handleMemberRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("MemberRegistered", zap.String("member_id", event.MemberID), zap.Any("payload", event.Payload))
	n.sendValidationEmailStub(event)
	return nil
}

func (n *NotificationService) handleMemberValidated(_ context.Context, event events.Event) error {
	n.logger.Info("MemberValidated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePasswordCreated(_ context.Context, event events.Event) error {
	n.logger.Info("PasswordCreated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleMembersImported(_ context.Context, event events.Event) error {
	n.logger.Info("MembersImported", zap.Any("payload", event.Payload))
	return nil
}

// sendValidationEmailStub logs the validation-link email that a production
// deployment would deliver out of band.
func (n *NotificationService) sendValidationEmailStub(event events.Event) {
	payload, ok := event.Payload.(events.MemberRegisteredPayload)
	if !ok {
		return
	}
	n.logger.Info("validation email stub",
		zap.String("to", payload.Email),
		zap.String("subject", "Valide seu e-mail - Cartão Santa Casa"),
	)
}
