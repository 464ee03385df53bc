package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"azurepricing/internal/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

const maxMessageLength = 4000

// messenger is the part of the Telegram API the bot sends through.
type messenger interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
}

// TgBot forwards log records to admin chats. Each admin filters by level
// with the /level command.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	sender      messenger
	botUsername string
	adminIds    []int64
	mu          sync.RWMutex
	minLogLevel slog.Level
	adminLevels map[int64]slog.Level
}

func NewTgBot(botName, apiKey, adminIdsStr string, minLevel slog.Level, log *slog.Logger) (*TgBot, error) {
	adminIds, err := ParseAdminIds(adminIdsStr)
	if err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %w", err)
	}

	tgBot := newTgBot(api, adminIds, minLevel, log)
	tgBot.api = api
	tgBot.botUsername = botName
	return tgBot, nil
}

func newTgBot(sender messenger, adminIds []int64, minLevel slog.Level, log *slog.Logger) *TgBot {
	adminLevels := make(map[int64]slog.Level, len(adminIds))
	for _, adminId := range adminIds {
		adminLevels[adminId] = minLevel
	}
	return &TgBot{
		log:         log.With(sl.Module("tgbot")),
		sender:      sender,
		adminIds:    adminIds,
		minLogLevel: minLevel,
		adminLevels: adminLevels,
	}
}

// ParseAdminIds reads a comma-separated list of Telegram chat ids.
func ParseAdminIds(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin_id value: %q, must be a comma-separated list of integers", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Start polls for commands until ctx is done.
func (t *TgBot) Start(ctx context.Context) error {
	if t.api == nil {
		return fmt.Errorf("telegram api not initialized")
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Warn("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("level", t.level))

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	t.log.Info("telegram bot started", slog.String("bot", t.botUsername))

	<-ctx.Done()
	if err = updater.Stop(); err != nil {
		return fmt.Errorf("stop polling: %w", err)
	}
	return nil
}

func (t *TgBot) SetAdminLogLevel(adminId int64, level slog.Level) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.adminLevels[adminId] = level
}

func (t *TgBot) adminLevel(adminId int64) slog.Level {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if level, ok := t.adminLevels[adminId]; ok {
		return level
	}
	return t.minLogLevel
}

func (t *TgBot) isAdmin(userId int64) bool {
	for _, adminId := range t.adminIds {
		if userId == adminId {
			return true
		}
	}
	return false
}

// level handles /level [debug|info|warn|error].
func (t *TgBot) level(b *tgbotapi.Bot, ctx *ext.Context) error {
	userId := ctx.EffectiveUser.Id
	if !t.isAdmin(userId) {
		_, err := ctx.EffectiveMessage.Reply(b, "You are not authorized to use this command.", nil)
		return err
	}
	t.plainResponse(userId, t.levelCommand(userId, ctx.EffectiveMessage.Text))
	return nil
}

func (t *TgBot) levelCommand(userId int64, text string) string {
	args := strings.Fields(text)
	if len(args) < 2 {
		return fmt.Sprintf("Your current log level: %s\nAvailable levels: debug, info, warn, error", t.adminLevel(userId))
	}
	level, ok := ParseLevel(args[1])
	if !ok {
		return fmt.Sprintf("Invalid level: %s\nAvailable levels: debug, info, warn, error", args[1])
	}
	t.SetAdminLogLevel(userId, level)
	return fmt.Sprintf("Your log level set to: %s", level)
}

// SendMessageWithLevel sends msg to every admin whose level admits it.
func (t *TgBot) SendMessageWithLevel(msg string, level slog.Level) {
	for _, adminId := range t.adminIds {
		if level >= t.adminLevel(adminId) {
			t.plainResponse(adminId, msg)
		}
	}
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	if text == "" {
		t.log.With(slog.Int64("id", chatId)).Debug("empty message")
		return
	}
	if len(text) > maxMessageLength {
		text = text[:maxMessageLength] + "..."
	}

	_, err := t.sender.SendMessage(chatId, Sanitize(text), &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err == nil {
		return
	}
	t.log.With(slog.Int64("id", chatId)).Debug("sending markdown message", sl.Err(err))

	if _, err = t.sender.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{}); err != nil {
		// logging through the handler that feeds this bot would loop
		t.log.With(slog.Int64("id", chatId)).Debug("sending plain message", sl.Err(err))
	}
}

// Sanitize escapes the MarkdownV2 reserved characters.
func Sanitize(input string) string {
	const reservedChars = "\\_*[]()~`>#+-=|{}.!"

	var sb strings.Builder
	sb.Grow(len(input))
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}
