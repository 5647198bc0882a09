package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-post-bot/internal/model"
	"social-post-bot/internal/repository"
	"social-post-bot/internal/service"
)

// Sticker shown while post drafts are being generated.
const placeholderStickerID = "CAACAgQAAxkBAANhZwaF2nb7zumxDTmYwntKuLkj_iMAAgYPAAIevUhRPJsacnU-COg2BA"

const (
	msgStartFailed    = "Facing difficulties!"
	msgClearFailed    = "Facing difficulties while clearing your events. Please try again later."
	msgSaveFailed     = "Facing difficulties, please try again later."
	msgGenerateFailed = "Facing difficulties while generating your posts. Please try again later."
	msgNoEvents       = "No events for the day."
	msgNotedGenerate  = "Noted 👍, keep texting me your thoughts. To generate the posts, just enter the command: /generate"
	msgNotedClear     = "If you want to clear your previous history, just enter the command: /clear"
)

// API is the slice of the Telegram client the bot consumes. Narrowed to
// an interface so tests can substitute a fake.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot routes incoming updates to handlers over the stores and the post
// service. It holds no state across updates.
type Bot struct {
	api       API
	userRepo  *repository.UserRepository
	eventRepo *repository.EventRepository
	postSvc   *service.PostService
	log       *zap.Logger
	now       func() time.Time
}

func New(api API, userRepo *repository.UserRepository, eventRepo *repository.EventRepository, postSvc *service.PostService, log *zap.Logger) *Bot {
	return &Bot{
		api:       api,
		userRepo:  userRepo,
		eventRepo: eventRepo,
		postSvc:   postSvc,
		log:       log,
		now:       time.Now,
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			b.log.Error("handle message", zap.Error(err))
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	switch {
	case msg.IsCommand():
		return b.handleCommand(ctx, msg)
	case msg.Sticker != nil:
		b.log.Info("sticker received",
			zap.Int64("user", msg.From.ID),
			zap.String("file_id", msg.Sticker.FileID))
		return nil
	case msg.Text != "":
		return b.handleText(ctx, msg)
	default:
		return nil
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	b.log.Info("command received",
		zap.Int64("user", msg.From.ID),
		zap.String("command", msg.Command()))

	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "clear":
		return b.handleClear(ctx, msg)
	case "generate":
		return b.handleGenerate(ctx, msg)
	default:
		return nil
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	from := msg.From
	welcome := fmt.Sprintf("Hey! %s, Welcome. I will be writing highly engaging social media posts for you 🚀 Just keep feeding me with the events through out the day. Let's shine on social media ✨", from.FirstName)

	switch _, err := b.userRepo.FindByTelegramID(ctx, from.ID); {
	case err == nil:
		// Known user, the record captured on first contact stays as is.
		return b.sendText(msg.Chat.ID, welcome)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := b.userRepo.UpsertIfAbsent(ctx, model.User{
			TelegramID: from.ID,
			FirstName:  from.FirstName,
			LastName:   from.LastName,
			IsBot:      from.IsBot,
			Username:   usernameOrDefault(from),
		}); err != nil {
			b.log.Error("register user", zap.Int64("user", from.ID), zap.Error(err))
			return b.sendText(msg.Chat.ID, msgStartFailed)
		}
		b.log.Info("user registered", zap.Int64("user", from.ID))
		return b.sendText(msg.Chat.ID, welcome)
	default:
		b.log.Error("find user", zap.Int64("user", from.ID), zap.Error(err))
		return b.sendText(msg.Chat.ID, msgStartFailed)
	}
}

func (b *Bot) handleClear(ctx context.Context, msg *tgbotapi.Message) error {
	from := msg.From

	count, err := b.eventRepo.DeleteAllByOwner(ctx, from.ID)
	if err != nil {
		b.log.Error("clear events", zap.Int64("user", from.ID), zap.Error(err))
		return b.sendText(msg.Chat.ID, msgClearFailed)
	}

	b.log.Info("events cleared", zap.Int64("user", from.ID), zap.Int64("count", count))
	return b.sendText(msg.Chat.ID, fmt.Sprintf("All your events have been cleared, %s! 🎉", from.FirstName))
}

func (b *Bot) handleGenerate(ctx context.Context, msg *tgbotapi.Message) error {
	from := msg.From
	chatID := msg.Chat.ID

	wait, err := b.api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Hey %s, kindly wait for a moment. I am curating posts for you 🚀⏳", from.FirstName)))
	if err != nil {
		return err
	}

	sticker, err := b.api.Send(tgbotapi.NewSticker(chatID, tgbotapi.FileID(placeholderStickerID)))
	if err != nil {
		b.deleteMessage(chatID, wait.MessageID)
		return err
	}

	// Placeholders must disappear on every exit path, success or not.
	defer func() {
		b.deleteMessage(chatID, wait.MessageID)
		b.deleteMessage(chatID, sticker.MessageID)
	}()

	posts, err := b.postSvc.DraftPosts(ctx, from.ID, b.now())
	switch {
	case errors.Is(err, service.ErrNoEvents):
		return b.sendText(chatID, msgNoEvents)
	case err != nil:
		b.log.Error("draft posts", zap.Int64("user", from.ID), zap.Error(err))
		return b.sendText(chatID, msgGenerateFailed)
	}

	return b.sendText(chatID, posts)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	from := msg.From

	event, err := b.eventRepo.Create(ctx, from.ID, msg.Text)
	if err != nil {
		b.log.Error("create event", zap.Int64("user", from.ID), zap.Error(err))
		return b.sendText(msg.Chat.ID, msgSaveFailed)
	}

	b.log.Info("event stored", zap.Int64("user", from.ID), zap.Uint("event", event.ID))

	if err := b.sendText(msg.Chat.ID, msgNotedGenerate); err != nil {
		return err
	}
	return b.sendText(msg.Chat.ID, msgNotedClear)
}

func (b *Bot) sendText(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Warn("delete message", zap.Int("message_id", messageID), zap.Error(err))
	}
}

func usernameOrDefault(from *tgbotapi.User) string {
	if from.UserName != "" {
		return from.UserName
	}
	return fmt.Sprintf("user_%d", from.ID)
}
