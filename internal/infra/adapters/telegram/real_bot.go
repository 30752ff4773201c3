package telegram

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-numerology-bot/internal/application"
	"telegram-numerology-bot/internal/config"
	"telegram-numerology-bot/internal/domain/ports/adapter"
	red "telegram-numerology-bot/internal/infra/redis"
)

// Telegram rejects messages longer than this; long reports are split.
const maxMessageLen = 4096

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates to BotFacade.
type RealTelegramBotAdapter struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	facade      *application.BotFacade
	rateLimiter *red.RateLimiter

	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, rateLimiter *red.RateLimiter, updateWorkers int) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if updateWorkers <= 0 {
		updateWorkers = 5
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		rateLimiter:   rateLimiter,
		updateWorkers: updateWorkers,
	}, nil
}

func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := r.handleUpdate(ctx, up); err != nil {
						log.Printf("tg worker %d error: %v", id, err)
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

type cbHandler func(ctx context.Context, chatID int64, data string) error

// Exact-match callbacks
func (r *RealTelegramBotAdapter) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		"cmd:menu": func(ctx context.Context, id int64, _ string) error {
			return r.sendMainMenu(ctx, id, "Выберите действие:")
		},
		"cmd:full": func(ctx context.Context, id int64, _ string) error {
			reply, err := r.facade.HandleFullMatrix(ctx, id)
			if err != nil {
				return r.SendMessage(ctx, id, "Не удалось построить матрицу.")
			}
			return r.sendReport(ctx, id, reply.Text)
		},
		"cmd:grid": func(ctx context.Context, id int64, _ string) error {
			reply, err := r.facade.HandleGridOnly(ctx, id)
			if err != nil {
				return r.SendMessage(ctx, id, "Не удалось построить матрицу.")
			}
			return r.sendReport(ctx, id, reply.Text)
		},
		"cmd:horoscope": func(ctx context.Context, id int64, _ string) error {
			_ = r.SendMessage(ctx, id, "🔭 Собираю гороскоп, это займёт несколько секунд...")
			reply, err := r.facade.HandleHoroscope(ctx, id)
			if err != nil {
				return r.SendMessage(ctx, id, "Не удалось получить гороскоп.")
			}
			return r.sendReport(ctx, id, reply.Text)
		},
		"cmd:about": func(ctx context.Context, id int64, _ string) error {
			reply, err := r.facade.HandleAbout(ctx, id)
			if err != nil {
				return err
			}
			return r.sendReport(ctx, id, reply.Text)
		},
		"cmd:restart": func(ctx context.Context, id int64, _ string) error {
			reply, err := r.facade.HandleStart(ctx, id, "")
			if err != nil {
				return r.SendMessage(ctx, id, "Не удалось начать заново.")
			}
			return r.SendMessage(ctx, id, reply.Text)
		},
	}
}

// Prefix-match callbacks
func (r *RealTelegramBotAdapter) cbPrefixRoutes() []struct {
	Prefix string
	Fn     cbHandler
} {
	return []struct {
		Prefix string
		Fn     cbHandler
	}{
		{
			Prefix: "gender:",
			Fn: func(ctx context.Context, id int64, data string) error {
				gender := strings.TrimPrefix(data, "gender:")
				reply, err := r.facade.HandleGenderInput(ctx, id, "", gender)
				if err != nil {
					return r.SendMessage(ctx, id, "Не удалось сохранить данные, попробуйте ещё раз.")
				}
				return r.sendReply(ctx, id, reply)
			},
		},
	}
}

// SendMessage implements the adapter port, splitting texts over the Telegram limit.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLen) {
		msg := tgbotapi.NewMessage(tgID, chunk)
		if _, err := r.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// SendButtons sends a message with inline buttons using tgbotapi.
// - If btn.URL is set, the button opens a link
// - Else if btn.Data is set, the button sends callback data
// - Else a safe fallback uses btn.Text as callback data
func (r *RealTelegramBotAdapter) SendButtons(
	ctx context.Context,
	telegramID int64,
	text string,
	rows [][]adapter.InlineButton,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kr := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			kr = append(kr, kb)
		}
		kbRows = append(kbRows, kr)
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	msg := tgbotapi.NewMessage(telegramID, text)
	msg.ReplyMarkup = markup

	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	// ----- Inline button callbacks -----
	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}

	// ----- Regular messages -----
	if update.Message == nil {
		return nil
	}
	tgUser := update.Message.From
	if tgUser == nil {
		return nil
	}
	tgID := int64(tgUser.ID)

	// Basic rate limiting per user per command
	fields := strings.Fields(update.Message.Text)
	command := "message"
	if len(fields) > 0 && strings.HasPrefix(fields[0], "/") {
		command = fields[0]
	}
	if r.rateLimiter != nil {
		allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(tgID, command), 20, time.Minute)
		if err != nil {
			log.Printf("rate limit error: %v", err)
		} else if !allowed {
			return r.SendMessage(ctx, tgID, "Слишком много запросов, попробуйте чуть позже.")
		}
	}

	switch command {
	case "/start":
		reply, err := r.facade.HandleStart(ctx, tgID, tgUser.UserName)
		if err != nil {
			return r.SendMessage(ctx, tgID, "Не удалось начать, попробуйте позже.")
		}
		return r.SendMessage(ctx, tgID, reply.Text)

	case "/matrix":
		reply, err := r.facade.HandleFullMatrix(ctx, tgID)
		if err != nil {
			return r.SendMessage(ctx, tgID, "Не удалось построить матрицу.")
		}
		return r.sendReport(ctx, tgID, reply.Text)

	case "/horoscope":
		reply, err := r.facade.HandleHoroscope(ctx, tgID)
		if err != nil {
			return r.SendMessage(ctx, tgID, "Не удалось получить гороскоп.")
		}
		return r.sendReport(ctx, tgID, reply.Text)

	case "/help":
		reply := "Команды:\n/start — ввести дату рождения\n/matrix — полная матрица\n/horoscope — гороскоп на день\n/help — эта справка"
		return r.SendMessage(ctx, tgID, reply)
	}

	// Dialogue flow: route free text by the user's current step.
	switch r.facade.Step(ctx, tgID) {
	case application.StepAwaitingDate:
		reply, err := r.facade.HandleDateInput(ctx, tgID, update.Message.Text)
		if err != nil {
			return r.SendMessage(ctx, tgID, "Что-то пошло не так, отправьте дату ещё раз.")
		}
		return r.sendReply(ctx, tgID, reply)

	case application.StepAwaitingGender:
		reply, err := r.facade.HandleGenderInput(ctx, tgID, tgUser.UserName, update.Message.Text)
		if err != nil {
			return r.SendMessage(ctx, tgID, "Что-то пошло не так, выберите пол ещё раз.")
		}
		return r.sendReply(ctx, tgID, reply)
	}

	// Idle text: nudge towards the menu.
	return r.sendMainMenu(ctx, tgID, "Выберите действие или отправьте /start, чтобы ввести другую дату:")
}

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop telegram spinner when we return
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	var chatID int64
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	} else {
		chatID = int64(query.From.ID)
	}
	if chatID == 0 {
		return nil
	}

	data := strings.TrimSpace(query.Data)

	// Rate limit for callbacks
	if r.rateLimiter != nil {
		if allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(chatID, "cb:"+data), 30, time.Minute); err == nil && !allowed {
			return r.SendMessage(ctx, chatID, "Слишком много запросов, попробуйте чуть позже.")
		}
	}

	// Exact matches
	if fn, ok := r.cbRoutes()[data]; ok {
		return fn(ctx, chatID, data)
	}
	// Prefix matches
	for _, pr := range r.cbPrefixRoutes() {
		if strings.HasPrefix(data, pr.Prefix) {
			return pr.Fn(ctx, chatID, data)
		}
	}
	return errors.New("unknown callback data")
}

// sendReply picks the keyboard for the step the dialogue moved to.
func (r *RealTelegramBotAdapter) sendReply(ctx context.Context, telegramID int64, reply application.Reply) error {
	switch reply.Step {
	case application.StepAwaitingGender:
		rows := [][]adapter.InlineButton{{
			{Text: "👨 Мужской", Data: "gender:men"},
			{Text: "👩 Женский", Data: "gender:women"},
		}}
		return r.SendButtons(ctx, telegramID, reply.Text, rows)
	case application.StepAwaitingDate:
		return r.SendMessage(ctx, telegramID, reply.Text)
	default:
		return r.sendMainMenu(ctx, telegramID, reply.Text)
	}
}

// sendMainMenu shows the main actions as inline buttons.
func (r *RealTelegramBotAdapter) sendMainMenu(ctx context.Context, telegramID int64, intro string) error {
	rows := [][]adapter.InlineButton{
		{{Text: "🔮 Полная матрица", Data: "cmd:full"}},
		{{Text: "🔢 Только матрица", Data: "cmd:grid"}},
		{{Text: "🌟 Гороскоп на сегодня", Data: "cmd:horoscope"}},
		{{Text: "📝 Другая дата", Data: "cmd:restart"}, {Text: "ℹ️ О боте", Data: "cmd:about"}},
	}
	if strings.TrimSpace(intro) == "" {
		intro = "Выберите действие:"
	}
	return r.SendButtons(ctx, telegramID, intro, rows)
}

// sendReport sends a long text and follows it with a menu footer.
func (r *RealTelegramBotAdapter) sendReport(ctx context.Context, telegramID int64, text string) error {
	if err := r.SendMessage(ctx, telegramID, text); err != nil {
		return err
	}
	rows := [][]adapter.InlineButton{{{Text: "◀️ Меню", Data: "cmd:menu"}}}
	return r.SendButtons(ctx, telegramID, "Что дальше?", rows)
}

// splitMessage cuts text into chunks of at most limit runes, preferring to
// break on newlines so the matrix grid never gets torn mid-line.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= limit {
			chunks = append(chunks, string(runes))
			break
		}
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	return chunks
}
