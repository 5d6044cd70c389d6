package tg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/larriantoniy/tg_support_watcher/internal/domain"
	"github.com/larriantoniy/tg_support_watcher/internal/ports"
	"github.com/zelenin/go-tdlib/client"
)

// TelegramClient реализует ports.TelegramClient через TDLib
type TelegramClient struct {
	client *client.Client
	logger *slog.Logger
	selfId int64

	done      chan struct{}
	closeOnce sync.Once
}

type ClientMode int

const (
	ClientModeRuntime ClientMode = iota // боевой режим: GetMe, лог self_id и т.д.
	ClientModeAuth                      // режим авторизации: поднять TDLib, пройти логин в консоли и выйти
)

var ErrOwnerNotConfigured = errors.New("owner id or username must be set")

// NewClient поднимает TDLib по уже прочитанному конфигу сессии.
// База лежит в каталоге сессии под baseDir.
func NewClient(
	apiID int32,
	apiHash string,
	baseDir string, // "/sessions"
	sc *ports.SessionConfig,
	log *slog.Logger,
	mode ClientMode,
) (*TelegramClient, error) {
	dbDir, filesDir := sessionDirs(baseDir, sc)

	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir files dir: %w", err)
	}

	if _, err := client.SetLogVerbosityLevel(&client.SetLogVerbosityLevelRequest{
		NewVerbosityLevel: 1,
	}); err != nil {
		log.Error("TDLib SetLogVerbosityLevel", "error", err)
	}

	params := tdParams(sc, apiID, apiHash, dbDir, filesDir)

	checkNetwork(log, sc.Proxy, nil)

	var opts []client.Option
	if sc.Proxy != nil && sc.Proxy.Enabled {
		opts = append(opts, client.WithProxy(&client.AddProxyRequest{
			Server: sc.Proxy.Server,
			Port:   sc.Proxy.Port,
			Enable: true,
			Type: &client.ProxyTypeSocks5{
				Username: sc.Proxy.Username,
				Password: sc.Proxy.Password,
			},
		}))
	}

	authorizer := client.ClientAuthorizer(params)

	// в AUTH-режиме запускаем CliInteractor, чтобы были промпты в консоли
	if mode == ClientModeAuth {
		go client.CliInteractor(authorizer)
	}

	tdCli, err := client.NewClient(authorizer, opts...)
	if err != nil {
		log.Error("TDLib NewClient error", "dir", sc.Dir, "error", err)
		return nil, err
	}

	me, err := tdCli.GetMe()
	if err != nil {
		log.Error("GetMe failed", "dir", sc.Dir, "error", err)
		tdCli.Close()
		return nil, err
	}

	log.Info("TDLib client initialized and authorized",
		"self_id", me.Id,
		"dir", sc.Dir,
		"phone", sc.Phone,
		"mode", mode,
	)

	return &TelegramClient{
		client: tdCli,
		logger: log,
		selfId: me.Id,
		done:   make(chan struct{}),
	}, nil
}

func (t *TelegramClient) SelfID() int64 {
	return t.selfId
}

// Close останавливает TDLib и горутину Listen, даже если её канал уже никто не читает
func (t *TelegramClient) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.client.Close()
	})
}

// JoinChannel вступает в публичную группу по её username
func (t *TelegramClient) JoinChannel(username string) error {
	chat, err := t.client.SearchPublicChat(&client.SearchPublicChatRequest{
		Username: strings.TrimPrefix(username, "@"),
	})
	if err != nil {
		t.logger.Error("SearchPublicChat failed", "username", username, "error", err)
		return err
	}

	_, err = t.client.JoinChat(&client.JoinChatRequest{
		ChatId: chat.Id,
	})
	if err != nil {
		t.logger.Error("JoinChat failed", "chat_id", chat.Id, "error", err)
		return err
	}

	t.logger.Info("Joined group", "group", username)
	return nil
}

// JoinChannels вступает в группы из конфига сессии, пропуская те, где уже состоим
func (t *TelegramClient) JoinChannels(chs []string) {
	if len(chs) == 0 {
		return
	}
	t.logger.Info("JoinChannels called", "channels", chs)

	joined, err := t.GetJoinedChannelIdentifiers()
	if err != nil {
		t.logger.Error("Failed to fetch joined groups, aborting", "error", err)
		return
	}

	for _, ch := range chs {
		if joined[ch] {
			t.logger.Debug("Already a member, skipping", "channel", ch)
			continue
		}

		if strings.HasPrefix(ch, "@") {
			if err := t.JoinChannel(ch); err != nil {
				t.logger.Error("Failed to join by username", "channel", ch, "error", err)
			}
			continue
		}

		if _, err := t.client.JoinChatByInviteLink(&client.JoinChatByInviteLinkRequest{
			InviteLink: ch,
		}); err != nil {
			t.logger.Error("Failed to join by invite link", "link", ch, "error", err)
		} else {
			t.logger.Info("Successfully joined by invite link", "link", ch)
		}
	}
}

// GetJoinedChannelIdentifiers возвращает @username публичных групп из основного списка чатов
func (t *TelegramClient) GetJoinedChannelIdentifiers() (map[string]bool, error) {
	const limit = 100
	identifiers := make(map[string]bool, limit)

	chatsResp, err := t.client.GetChats(&client.GetChatsRequest{
		ChatList: &client.ChatListMain{},
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("GetChats failed: %w", err)
	}

	for _, chatID := range chatsResp.ChatIds {
		chat, err := t.client.GetChat(&client.GetChatRequest{ChatId: chatID})
		if err != nil {
			t.logger.Error("GetChat failed", "chat_id", chatID, "error", err)
			continue
		}

		ct, ok := chat.Type.(*client.ChatTypeSupergroup)
		if !ok {
			continue
		}
		sup, err := t.client.GetSupergroup(&client.GetSupergroupRequest{
			SupergroupId: ct.SupergroupId,
		})
		if err == nil && sup != nil && sup.Usernames != nil && len(sup.Usernames.ActiveUsernames) > 0 {
			identifiers["@"+sup.Usernames.ActiveUsernames[0]] = true
		}
	}

	return identifiers, nil
}

// Listen возвращает канал доменных сообщений из TDLib. Канал закрывается,
// когда TDLib закрывает клиента (отключение, выход из аккаунта) или после Close.
func (t *TelegramClient) Listen() (<-chan domain.Message, error) {
	out := make(chan domain.Message)

	listener := t.client.GetListener()
	go pumpUpdates(t.done, listener.Updates, out, t.logger, t.toDomainMessage)

	return out, nil
}

// pumpUpdates перекладывает апдейты TDLib в out, пока не закрыт done
func pumpUpdates(
	done <-chan struct{},
	updates <-chan client.Type,
	out chan<- domain.Message,
	log *slog.Logger,
	convert func(*client.Message) (domain.Message, bool),
) {
	defer close(out)

	for {
		var update client.Type
		select {
		case <-done:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			update = u
		}

		switch upd := update.(type) {
		case *client.UpdateNewMessage:
			msg, ok := convert(upd.Message)
			if !ok {
				continue
			}
			select {
			case out <- msg:
			case <-done:
				return
			}
		case *client.UpdateAuthorizationState:
			if _, closed := upd.AuthorizationState.(*client.AuthorizationStateClosed); closed {
				log.Warn("TDLib authorization state closed")
				return
			}
		}
	}
}

func (t *TelegramClient) toDomainMessage(m *client.Message) (domain.Message, bool) {
	if m == nil || m.IsOutgoing {
		return domain.Message{}, false
	}

	msg := domain.Message{
		ChatID:    m.ChatId,
		MessageID: m.Id,
		Text:      messageText(m.Content),
	}

	chat, err := t.client.GetChat(&client.GetChatRequest{ChatId: m.ChatId})
	if err != nil {
		t.logger.Info("Error getting chat", "chat_id", m.ChatId, "error", err)
		return msg, true
	}
	msg.ChatTitle = chat.Title
	msg.IsGroup = isGroupChat(chat.Type)
	if !msg.IsGroup {
		return msg, true
	}

	if sender, ok := m.SenderId.(*client.MessageSenderUser); ok {
		msg.Sender = t.lookupSender(sender.UserId)
	}
	return msg, true
}

func (t *TelegramClient) lookupSender(userID int64) *domain.Sender {
	usr, err := t.client.GetUser(&client.GetUserRequest{UserId: userID})
	if err != nil {
		t.logger.Info("GetUser failed", "user_id", userID, "error", err)
		return nil
	}

	s := &domain.Sender{
		ID:        usr.Id,
		FirstName: usr.FirstName,
	}
	if usr.Usernames != nil && len(usr.Usernames.ActiveUsernames) > 0 {
		s.Username = usr.Usernames.ActiveUsernames[0]
	}
	_, s.IsBot = usr.Type.(*client.UserTypeBot)
	return s
}

// isGroupChat: обычная группа или супергруппа, но не канал
func isGroupChat(ct client.ChatType) bool {
	switch v := ct.(type) {
	case *client.ChatTypeBasicGroup:
		return true
	case *client.ChatTypeSupergroup:
		return !v.IsChannel
	default:
		return false
	}
}

// messageText — текст сообщения или подпись к медиа
func messageText(content client.MessageContent) string {
	var ft *client.FormattedText
	switch c := content.(type) {
	case *client.MessageText:
		ft = c.Text
	case *client.MessagePhoto:
		ft = c.Caption
	case *client.MessageVideo:
		ft = c.Caption
	case *client.MessageDocument:
		ft = c.Caption
	case *client.MessageAnimation:
		ft = c.Caption
	}
	if ft == nil {
		return ""
	}
	return ft.Text
}

func (t *TelegramClient) ChatAdministrators(_ context.Context, chatID int64) ([]int64, error) {
	res, err := t.client.GetChatAdministrators(&client.GetChatAdministratorsRequest{
		ChatId: chatID,
	})
	if err != nil {
		return nil, wrapErr("getChatAdministrators", err)
	}

	ids := make([]int64, 0, len(res.Administrators))
	for _, a := range res.Administrators {
		ids = append(ids, a.UserId)
	}
	return ids, nil
}

func (t *TelegramClient) ForwardMessage(_ context.Context, toChatID, fromChatID, messageID int64) error {
	_, err := t.client.ForwardMessages(&client.ForwardMessagesRequest{
		ChatId:     toChatID,
		FromChatId: fromChatID,
		MessageIds: []int64{messageID},
	})
	if err != nil {
		return wrapErr("forwardMessages", err)
	}
	return nil
}

func (t *TelegramClient) SendText(_ context.Context, chatID int64, text string) error {
	_, err := t.client.SendMessage(&client.SendMessageRequest{
		ChatId: chatID,
		InputMessageContent: &client.InputMessageText{
			Text: &client.FormattedText{
				Text: text,
			},
		},
	})
	if err != nil {
		return wrapErr("sendMessage", err)
	}
	return nil
}

// ResolveOwner открывает личный чат с владельцем: по id, а если его нет — по @username
func (t *TelegramClient) ResolveOwner(_ context.Context, userID int64, username string) (int64, error) {
	if userID != 0 {
		chat, err := t.client.CreatePrivateChat(&client.CreatePrivateChatRequest{
			UserId: userID,
			Force:  false,
		})
		if err != nil {
			return 0, fmt.Errorf("create private chat with %d: %w", userID, err)
		}
		return chat.Id, nil
	}
	if username != "" {
		return t.ResolveUsername(username)
	}
	return 0, ErrOwnerNotConfigured
}

func (t *TelegramClient) ResolveUsername(username string) (int64, error) {
	res, err := t.client.SearchPublicChat(&client.SearchPublicChatRequest{
		Username: strings.TrimPrefix(username, "@"),
	})
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", username, err)
	}

	return res.Id, nil
}
