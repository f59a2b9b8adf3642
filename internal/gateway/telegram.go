// Package gateway adapts the Telegram Bot API to the domain.Gateway surface.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"relaybot/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Connect authenticates the bot token against Telegram.
func Connect(token string, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	logger.Info("telegram bot connected", "username", bot.Self.UserName, "id", bot.Self.ID)
	return bot, nil
}

// Telegram implements domain.Gateway. The underlying client has no context
// support, so a hung platform call hangs the request; ctx is only honored
// before the call is issued.
type Telegram struct {
	bot *tgbotapi.BotAPI
}

func NewTelegram(bot *tgbotapi.BotAPI) *Telegram {
	return &Telegram{bot: bot}
}

// chatRef splits a target into the pair the client wants: a numeric chat ID
// or a channel @handle. Malformed targets are passed through; the platform
// is the source of truth for rejecting them.
func chatRef(target string) (int64, string) {
	s := strings.TrimSpace(target)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, ""
	}
	return 0, s
}

// fileRef wraps a media reference: http(s) URLs are fetched by Telegram,
// anything else is treated as an existing file ID.
func fileRef(ref string) tgbotapi.RequestFileData {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return tgbotapi.FileURL(ref)
	}
	return tgbotapi.FileID(ref)
}

func (t *Telegram) send(ctx context.Context, c tgbotapi.Chattable) (domain.SentMessage, error) {
	if err := ctx.Err(); err != nil {
		return domain.SentMessage{}, err
	}
	m, err := t.bot.Send(c)
	if err != nil {
		return domain.SentMessage{}, err
	}
	sent := domain.SentMessage{
		MessageID: m.MessageID,
		Date:      time.Unix(int64(m.Date), 0),
	}
	if m.Chat != nil {
		sent.ChatID = m.Chat.ID
	}
	return sent, nil
}

func (t *Telegram) SendText(ctx context.Context, target, text, parseMode string, silent bool) (domain.SentMessage, error) {
	id, username := chatRef(target)
	msg := tgbotapi.MessageConfig{
		BaseChat: tgbotapi.BaseChat{
			ChatID:              id,
			ChannelUsername:     username,
			DisableNotification: silent,
		},
		Text:      text,
		ParseMode: parseMode,
	}
	return t.send(ctx, msg)
}

func (t *Telegram) SendPhoto(ctx context.Context, target, photoRef, caption, parseMode string, silent bool) (domain.SentMessage, error) {
	id, username := chatRef(target)
	msg := tgbotapi.PhotoConfig{
		BaseFile: tgbotapi.BaseFile{
			BaseChat: tgbotapi.BaseChat{
				ChatID:              id,
				ChannelUsername:     username,
				DisableNotification: silent,
			},
			File: fileRef(photoRef),
		},
		Caption:   caption,
		ParseMode: parseMode,
	}
	return t.send(ctx, msg)
}

func (t *Telegram) SendVideo(ctx context.Context, target, videoRef, caption, parseMode string, silent bool) (domain.SentMessage, error) {
	id, username := chatRef(target)
	msg := tgbotapi.VideoConfig{
		BaseFile: tgbotapi.BaseFile{
			BaseChat: tgbotapi.BaseChat{
				ChatID:              id,
				ChannelUsername:     username,
				DisableNotification: silent,
			},
			File: fileRef(videoRef),
		},
		Caption:   caption,
		ParseMode: parseMode,
	}
	return t.send(ctx, msg)
}

func (t *Telegram) EditText(ctx context.Context, target string, messageID int, text, parseMode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, username := chatRef(target)
	edit := tgbotapi.EditMessageTextConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:          id,
			ChannelUsername: username,
			MessageID:       messageID,
		},
		Text:      text,
		ParseMode: parseMode,
	}
	_, err := t.bot.Request(edit)
	return err
}

func (t *Telegram) DeleteMessage(ctx context.Context, target string, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, username := chatRef(target)
	del := tgbotapi.DeleteMessageConfig{
		ChatID:          id,
		ChannelUsername: username,
		MessageID:       messageID,
	}
	_, err := t.bot.Request(del)
	return err
}

func (t *Telegram) SelfInfo(ctx context.Context) (domain.SelfInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.SelfInfo{}, err
	}
	me, err := t.bot.GetMe()
	if err != nil {
		return domain.SelfInfo{}, err
	}
	return domain.SelfInfo{
		ID:                      me.ID,
		Username:                me.UserName,
		FirstName:               me.FirstName,
		CanJoinGroups:           me.CanJoinGroups,
		CanReadAllGroupMessages: me.CanReadAllGroupMessages,
		SupportsInlineQueries:   me.SupportsInlineQueries,
	}, nil
}

func (t *Telegram) ChatInfo(ctx context.Context, target string) (domain.ChatInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChatInfo{}, err
	}
	id, username := chatRef(target)
	chat, err := t.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: id, SuperGroupUsername: username},
	})
	if err != nil {
		return domain.ChatInfo{}, err
	}
	return domain.ChatInfo{
		ID:          chat.ID,
		Title:       chat.Title,
		Username:    chat.UserName,
		Type:        chat.Type,
		Description: chat.Description,
	}, nil
}

func (t *Telegram) ChatMemberCount(ctx context.Context, target string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	id, username := chatRef(target)
	return t.bot.GetChatMembersCount(tgbotapi.ChatMemberCountConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: id, SuperGroupUsername: username},
	})
}
