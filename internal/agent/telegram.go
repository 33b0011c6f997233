package agent

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const startGreeting = "Hi! Ask me anything, I can use my tools to help. " +
	"Try \"show me the current F1 standings\"."

const errorReply = "Sorry, something went wrong while answering that. Please try again."

// TelegramBot answers messages through the agent over long polling.
type TelegramBot struct {
	bot      *tgbotapi.BotAPI
	answerer Answerer
	logger   zerolog.Logger
}

func NewTelegramBot(token string, answerer Answerer, logger zerolog.Logger) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("username", bot.Self.UserName).Msg("telegram bot authorized")

	return &TelegramBot{bot: bot, answerer: answerer, logger: logger}, nil
}

// Run polls for updates until the context is canceled.
func (t *TelegramBot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := t.bot.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			t.handleMessage(ctx, update.Message)
		}
	}
}

func (t *TelegramBot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() && msg.Command() == "start" {
		t.reply(msg.Chat.ID, startGreeting)
		return
	}

	_, _ = t.bot.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping))

	answer, err := t.answerer.Answer(ctx, msg.Text)
	if err != nil {
		t.logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("agent answer failed")
		t.reply(msg.Chat.ID, errorReply)
		return
	}
	t.reply(msg.Chat.ID, answer)
}

func (t *TelegramBot) reply(chatID int64, text string) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		t.logger.Error().Err(err).Int64("chat_id", chatID).Msg("telegram send failed")
	}
}
