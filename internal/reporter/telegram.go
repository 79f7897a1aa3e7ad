// Package reporter pushes terminal extraction outcomes to Telegram so the
// operator hears about blocked sites and review-queue growth without
// watching logs.
package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
	"github.com/Bobska/autocraftcv-sub000/internal/extract"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// SendExtraction reports one finished run: a populated posting, a
// low-confidence posting flagged for review, or a manual-required outcome.
func (t *TelegramReporter) SendExtraction(jobURL string, result jobposting.ExtractionResult) error {
	if result.ExtractionMethod == extract.MethodManualRequired {
		text := fmt.Sprintf(
			"🚨 <b>Extraction failed</b>\n"+
				"🔗 %s\n"+
				"📋 Reason: %s",
			jobURL,
			result.FailureReason,
		)
		return t.SendMessage(text)
	}

	flag := "✅"
	if result.NeedsReview {
		flag = "⚠️ needs review"
	}
	text := fmt.Sprintf(
		"%s <b>%s</b>\n"+
			"🏢 %s\n"+
			"📍 %s\n"+
			"🔎 Method: %s (quality: %s)\n"+
			"🔗 <a href=\"%s\">View posting</a>",
		flag,
		result.Title,
		result.Company,
		result.Location,
		result.ExtractionMethod,
		result.Quality,
		jobURL,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Extraction Error</b>:\n%v", errReq)
	return t.SendMessage(text)
}
