// Package telegram runs the intake dialogue over a Telegram bot. Each chat is
// one dialogue session; the model-selection answer triggers generation and
// the result comes back as a text outline.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/TolgaCulfa/sunum2/internal/ai"
	"github.com/TolgaCulfa/sunum2/internal/composer"
	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/deck/render"
	"github.com/TolgaCulfa/sunum2/internal/dialogue"
	"github.com/TolgaCulfa/sunum2/internal/logger"
	"github.com/TolgaCulfa/sunum2/internal/quota"
	"github.com/TolgaCulfa/sunum2/internal/viewer"
)

// Generator is the slice of the composer the bot needs.
type Generator interface {
	Generate(ctx context.Context, req composer.GenerateRequest) (*deck.Presentation, error)
}

// Config holds Telegram configuration.
type Config struct {
	Token string // Bot token from @BotFather
	Debug bool   // Enable bot API debug logging
}

// Platform pumps dialogue prompts through a Telegram bot.
type Platform struct {
	bot       *tgbotapi.BotAPI
	generator Generator
	registry  *ai.Registry
	ctx       context.Context
	cancel    context.CancelFunc

	mu       sync.Mutex
	sessions map[int64]*chatSession
}

// chatSession is one chat's intake dialogue plus the viewer onto its last
// generated presentation.
type chatSession struct {
	dialogue *dialogue.State
	viewer   *viewer.Session
}

// New creates a new Telegram intake platform.
func New(cfg Config, generator Generator, registry *ai.Registry) (*Platform, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug

	return &Platform{
		bot:       bot,
		generator: generator,
		registry:  registry,
		sessions:  make(map[int64]*chatSession),
	}, nil
}

// Name returns the platform name.
func (p *Platform) Name() string {
	return "telegram"
}

// Start begins listening for Telegram updates.
func (p *Platform) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := p.bot.GetUpdatesChan(u)
	go p.handleUpdates(updates)

	logger.Info("telegram: connected as bot @%s", p.bot.Self.UserName)
	return nil
}

// Stop shuts down the Telegram connection.
func (p *Platform) Stop() error {
	if p.cancel != nil {
		p.cancel()
	}
	p.bot.StopReceivingUpdates()
	return nil
}

func (p *Platform) handleUpdates(updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-p.ctx.Done():
			return
		case update := <-updates:
			if update.Message == nil || update.Message.From == nil || update.Message.From.IsBot {
				continue
			}
			p.handleMessage(update.Message)
		}
	}
}

func (p *Platform) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	session := p.session(chatID)
	state := session.dialogue

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "yeni":
			state.Reset()
			p.sendPrompt(chatID, state)
		case "ileri":
			p.sendSlide(chatID, session, 1)
		case "geri":
			p.sendSlide(chatID, session, -1)
		case "slayt":
			p.sendSlide(chatID, session, 0)
		default:
			p.send(chatID, "Bilinmeyen komut. Yeni bir sunum için /yeni yazın.", nil)
		}
		return
	}

	done, err := state.Submit(msg.Text)
	if err != nil {
		var verr *dialogue.ValidationError
		if errors.As(err, &verr) {
			p.send(chatID, verr.Reason, nil)
			return
		}
		p.send(chatID, err.Error(), nil)
		return
	}

	if !done {
		p.sendPrompt(chatID, state)
		return
	}

	p.send(chatID, "Sunumunuz hazırlanıyor, lütfen bekleyin...", nil)

	params := state.Params()
	pres, err := p.generator.Generate(p.ctx, composer.GenerateRequest{
		Owner:      fmt.Sprintf("tg-%d", msg.From.ID),
		Topic:      params.Topic,
		SlideCount: params.SlideCount,
		Style:      params.Style,
		Tier:       params.Tier,
		Audience:   params.Audience,
	})
	if err != nil {
		state.RewindToModel()
		p.send(chatID, failureText(err), nil)
		p.sendPrompt(chatID, state)
		return
	}

	session.viewer = viewer.Open(pres, render.ThemeCrystal)
	p.send(chatID, outline(pres), nil)
	p.send(chatID, "Slaytlar arasında /ileri ve /geri ile gezinebilirsiniz.", nil)
	state.Reset()
	p.sendPrompt(chatID, state)
}

func (p *Platform) session(chatID int64) *chatSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	session, ok := p.sessions[chatID]
	if !ok {
		session = &chatSession{dialogue: dialogue.New(p.registry)}
		p.sessions[chatID] = session
	}
	return session
}

func (p *Platform) sendSlide(chatID int64, session *chatSession, delta int) {
	if session.viewer == nil {
		p.send(chatID, "Henüz bir sunum yok. Başlamak için /yeni yazın.", nil)
		return
	}
	session.viewer.Navigate(delta)
	p.send(chatID, slideText(session.viewer), nil)
}

// slideText renders the viewer's current slide as plain text.
func slideText(v *viewer.Session) string {
	rendered := v.Render()
	total := len(v.Presentation().Slides)

	var b strings.Builder
	fmt.Fprintf(&b, "Slayt %d/%d\n", rendered.Number, total)
	for _, block := range rendered.Blocks {
		switch block.Kind {
		case render.BlockHeading:
			fmt.Fprintf(&b, "\n*%s*\n", block.Text)
		case render.BlockStatCard:
			fmt.Fprintf(&b, "  %s  %s\n", block.Value, block.Desc)
		case render.BlockColumn, render.BlockBulletList:
			for _, item := range block.Items {
				fmt.Fprintf(&b, "  • %s\n", item)
			}
		default:
			fmt.Fprintf(&b, "%s\n", block.Text)
		}
	}
	return b.String()
}

func (p *Platform) sendPrompt(chatID int64, state *dialogue.State) {
	prompt := state.Prompt()
	p.send(chatID, prompt.Text, prompt.Choices)
}

func (p *Platform) send(chatID int64, text string, choices []string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(choices) > 0 {
		var row []tgbotapi.KeyboardButton
		for _, c := range choices {
			row = append(row, tgbotapi.NewKeyboardButton(c))
		}
		keyboard := tgbotapi.NewReplyKeyboard(row)
		keyboard.OneTimeKeyboard = true
		keyboard.ResizeKeyboard = true
		msg.ReplyMarkup = keyboard
	} else {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}
	if _, err := p.bot.Send(msg); err != nil {
		logger.Warn("telegram: send to %d: %v", chatID, err)
	}
}

// outline renders a generated presentation as a plain text summary.
func outline(p *deck.Presentation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Sunumunuz hazır: %s\n\n", p.Title)
	for _, slide := range p.Slides {
		fmt.Fprintf(&b, "%d. %s [%s]\n", slide.SlideNumber, slide.Title, slide.Layout.Label())
		for _, item := range slide.Content {
			fmt.Fprintf(&b, "   • %s\n", item)
		}
	}
	b.WriteString("\nSunumu web arayüzünden düzenleyebilir ve PDF olarak indirebilirsiniz.")
	return b.String()
}

func failureText(err error) string {
	var exceeded *quota.ExceededError
	if errors.As(err, &exceeded) {
		return exceeded.Error()
	}
	var parseErr *composer.ParseError
	if errors.As(err, &parseErr) {
		return "Model çıktısı çözümlenemedi. Başka bir model seçip tekrar deneyin."
	}
	return "Sunum oluşturulamadı. Başka bir model seçip tekrar deneyin."
}
