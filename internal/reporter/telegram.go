package reporter

import (
	"fmt"
	"log"

	"github.com/rajendar38/dice2/internal/applier"
	"github.com/rajendar38/dice2/internal/config"
	"github.com/rajendar38/dice2/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramReporter pushes run progress to a Telegram chat. A nil reporter
// is a no-op, so the pipeline never has to check whether reporting is
// configured.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramReporter returns nil (no error) when no token is configured.
func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	if t == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendResult(job scraper.Job, res applier.Result) {
	if t == nil {
		return
	}

	var text string
	switch res.Status {
	case applier.StatusApplied:
		text = fmt.Sprintf(
			"✅ <b>Applied</b>\n%s\n🔗 <a href=\"%s\">%s</a>",
			job.Title, job.URL, job.URL,
		)
	case applier.StatusSkipped:
		text = fmt.Sprintf("⏭️ <b>Skipped</b> (%s)\n%s", res.Reason, job.URL)
	default:
		text = fmt.Sprintf("❌ <b>Failed</b> (%s)\n%s", res.Reason, job.URL)
	}

	if err := t.SendMessage(text); err != nil {
		log.Printf("⚠️ Failed to send result to Telegram: %v", err)
	}
}

func (t *TelegramReporter) SendSummary(applied, skipped, failed int) {
	if t == nil {
		return
	}
	text := fmt.Sprintf(
		"🏁 <b>Run finished</b>\nApplied: %d\nSkipped: %d\nFailed: %d",
		applied, skipped, failed,
	)
	if err := t.SendMessage(text); err != nil {
		log.Printf("⚠️ Failed to send summary to Telegram: %v", err)
	}
}

func (t *TelegramReporter) SendError(errReq error) {
	if t == nil {
		return
	}
	text := fmt.Sprintf("⚠️ <b>Auto-apply error</b>:\n%v", errReq)
	if err := t.SendMessage(text); err != nil {
		log.Printf("⚠️ Failed to send error to Telegram: %v", err)
	}
}
