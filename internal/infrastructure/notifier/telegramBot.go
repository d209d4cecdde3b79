package notifier

import (
	"context"
	"fmt"
	"html"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"flipper/internal/domain/entity"
	"flipper/pkg/logx"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run sends an alert for every decision read from the channel until ctx is
// done or the channel is closed.
func (b *TelegramBot) Run(ctx context.Context, decisions <-chan entity.Decision) error {
	logger(ctx).Info("telegram notifier started")

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("telegram notifier stopped")
			return nil
		case d, ok := <-decisions:
			if !ok {
				return nil
			}
			if err := b.SendDecision(ctx, d); err != nil {
				logger(ctx).Error("failed to send decision",
					logx.FieldListingID, d.ListingID,
					logx.Error(err),
				)
			}
		}
	}
}

func (b *TelegramBot) SendDecision(ctx context.Context, d entity.Decision) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		FormatDecision(d),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain text message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func FormatDecision(d entity.Decision) string {
	return fmt.Sprintf(
		"🛒 <b>%s</b>\n\n"+
			"📦 <b>Item:</b> %s\n"+
			"💵 <b>Price:</b> $%.2f\n"+
			"📈 <b>Profit:</b> $%.2f\n"+
			"📊 <b>Score:</b> %.1f/100\n\n"+
			"%s",
		d.Action,
		html.EscapeString(d.Title),
		d.Price,
		d.ProfitPotential,
		d.Score,
		html.EscapeString(d.Reasoning),
	)
}
