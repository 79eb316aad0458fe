// Package services implements the notification dispatcher: resolving the
// target phone and message for an expiration reminder and handing it to
// the messaging gateway. Dispatch is synchronous and has no retry.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/criartebr/stream-panel/internal/gateway"
	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/lib/phone"
	"github.com/criartebr/stream-panel/internal/models"
)

// SubscriberReader resolves the reminder target.
type SubscriberReader interface {
	GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error)
}

// SettingsProvider supplies the tenant gateway configuration.
type SettingsProvider interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Gateway is the messaging transport.
type Gateway interface {
	SendText(ctx context.Context, st *models.Settings, phone, message string) gateway.Result
	QRCode(ctx context.Context, st *models.Settings) (json.RawMessage, error)
}

// NotifyService dispatches expiration reminders.
type NotifyService struct {
	subscribers SubscriberReader
	settings    SettingsProvider
	gateway     Gateway
	log         *slog.Logger
}

// NewNotifyService creates a new NotifyService.
func NewNotifyService(subscribers SubscriberReader, settings SettingsProvider, gw Gateway, log *slog.Logger) *NotifyService {
	return &NotifyService{
		subscribers: subscribers,
		settings:    settings,
		gateway:     gw,
		log:         log,
	}
}

const defaultNotes = "Deixar campo de descrição em branco ou se precisar coloque *SUPORTE TÉCNICO*"

// RenderReminder fills the expiration reminder template. The salutation
// uses the subscriber name when set and falls back to the username; the
// expiry date renders as dd/mm/yyyy.
func RenderReminder(sub *models.Subscriber) string {
	salutation := sub.Username
	if sub.Name != nil && *sub.Name != "" {
		salutation = *sub.Name
	}
	var price float64
	if sub.PlanPrice != nil {
		price = *sub.PlanPrice
	}
	var payURL string
	if sub.PayURL != nil {
		payURL = *sub.PayURL
	}
	expires := sub.ExpiresAt.Format("02/01/2006")

	return fmt.Sprintf(`Olá querido(a) cliente *%s*,

*SUA CONTA EXPIRA EM BREVE!*

Seu plano de *R$ %.2f* vence em:
*%s*

Seu usuário atual é *%s*

Evite o bloqueio automático do seu sinal

Para renovar o seu plano agora, clique no link abaixo:
%s

*Observações:* %s

Por favor, nos envie o comprovante de pagamento assim que possível.

É sempre um prazer te atender.`,
		salutation, price, expires, sub.Username, payURL, defaultNotes)
}

// SendReminder resolves phone and message for the subscriber and posts
// the text through the gateway. The gateway must be enabled and
// configured; a transport failure becomes a DispatchResult, not an error.
func (s *NotifyService) SendReminder(ctx context.Context, req models.ReminderRequest) (models.DispatchResult, error) {
	const op = "services.NotifyService.SendReminder"

	st, err := s.settings.Get(ctx)
	if err != nil {
		return models.DispatchResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if !st.GatewayEnabled || st.GatewayURL == "" || st.GatewayInstance == "" {
		return models.DispatchResult{}, apperr.New(apperr.Precondition, "messaging gateway is not configured")
	}

	sub, err := s.subscribers.GetSubscriber(ctx, req.SubscriberID)
	if err != nil {
		return models.DispatchResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if sub == nil {
		return models.DispatchResult{}, apperr.New(apperr.NotFound, "subscriber not found")
	}

	// Reminders go to the caller-supplied number when present, and to
	// the tenant support number otherwise.
	rawPhone := st.SupportPhone
	if req.Phone != nil && *req.Phone != "" {
		rawPhone = *req.Phone
	}
	target := phone.Normalize(rawPhone)
	if target == "" {
		return models.DispatchResult{}, apperr.New(apperr.Validation, "no phone number resolvable")
	}

	message := RenderReminder(sub)
	if req.Message != nil && *req.Message != "" {
		message = *req.Message
	}

	res := s.gateway.SendText(ctx, st, target, message)
	if !res.Success {
		s.log.Warn("reminder dispatch failed",
			slog.String("subscriber_id", sub.ID),
			slog.Int("status", res.Status),
			slog.String("detail", res.Detail))
	} else {
		s.log.Info("reminder dispatched", slog.String("subscriber_id", sub.ID))
	}

	detail := res.Detail
	if detail == "" && res.Status != 0 {
		detail = fmt.Sprintf("HTTP %d", res.Status)
	}
	return models.DispatchResult{Success: res.Success, Detail: detail}, nil
}

// QRCode returns the gateway pairing payload for the configured instance.
func (s *NotifyService) QRCode(ctx context.Context) (json.RawMessage, error) {
	const op = "services.NotifyService.QRCode"

	st, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if st.GatewayURL == "" || st.GatewayInstance == "" {
		return nil, apperr.New(apperr.Precondition, "messaging gateway is not configured")
	}

	payload, err := s.gateway.QRCode(ctx, st)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "gateway qrcode request failed", err)
	}
	return payload, nil
}
