package command

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/varoOP/shinkrobot/internal/catalog"
	"github.com/varoOP/shinkrobot/internal/domain"
	"github.com/varoOP/shinkrobot/internal/format"
	"github.com/varoOP/shinkrobot/internal/i18n"
	"github.com/varoOP/shinkrobot/pkg/anilist"
)

// Request is one incoming chat message or button callback. LanguageTag is the
// client language, used when a private chat is seen for the first time.
type Request struct {
	ChatID      int64
	SenderID    int64
	SenderName  string
	LanguageTag string
	Private     bool
	Admin       bool
	Text        string
	Callback    bool
}

type Button struct {
	Text string
	Data string
}

// Reply is what the bot answers with. Edit is set when the reply replaces the
// message a callback button belongs to.
type Reply struct {
	Text     string
	PhotoURL string
	Buttons  [][]Button
	Edit     bool
}

// AccountPool resolves the AniList accounts linked to chat users.
type AccountPool interface {
	Viewer(ctx context.Context, userID int64) (*anilist.User, error)
	Forget(userID int64)
}

type Handler struct {
	log      zerolog.Logger
	catalog  catalog.Service
	accounts AccountPool
	repo     domain.ChatRepo
	i18n     *i18n.I18n
	notify   domain.NotificationService
}

func NewHandler(log zerolog.Logger, catalog catalog.Service, accounts AccountPool, repo domain.ChatRepo, i18n *i18n.I18n, notify domain.NotificationService) *Handler {
	return &Handler{
		log:      log.With().Str("module", "command").Logger(),
		catalog:  catalog,
		accounts: accounts,
		repo:     repo,
		i18n:     i18n,
		notify:   notify,
	}
}

// call carries the per-request state through a command.
type call struct {
	req    Request
	log    zerolog.Logger
	locale string
	name   string
	arg    string
	start  time.Time
}

func (c *call) reply(text string) *Reply {
	return &Reply{Text: text, Edit: c.req.Callback}
}

type commandFunc func(ctx context.Context, h *Handler, c *call) (*Reply, error)

var commands = map[string]commandFunc{
	"a":         animeCommand,
	"anime":     animeCommand,
	"m":         mangaCommand,
	"manga":     mangaCommand,
	"c":         characterCommand,
	"p":         characterCommand,
	"char":      characterCommand,
	"character": characterCommand,
	"u":         userCommand,
	"user":      userCommand,
	"lang":      langCommand,
	"language":  langCommand,
	"me":        meCommand,
	"auth":      authCommand,
	"logout":    logoutCommand,
	"ping":      pingCommand,
	"start":     startCommand,
}

// Handle routes req to its command. Messages that are not commands return a nil reply.
// Unexpected failures are reported through the notification service and answered
// with a generic error message; the error is returned as well.
func (h *Handler) Handle(ctx context.Context, req Request) (*Reply, error) {
	name, arg, ok := parse(req.Text, req.Callback)
	if !ok {
		return nil, nil
	}

	requestID := uuid.NewString()
	c := &call{
		req:   req,
		log:   h.log.With().Str("request_id", requestID).Str("command", name).Int64("chat_id", req.ChatID).Logger(),
		name:  name,
		arg:   arg,
		start: time.Now(),
	}

	fn, ok := commands[name]
	if !ok {
		if !req.Private || req.Callback {
			return nil, nil
		}
		fn = unknownCommand
	}

	locale, err := h.resolveLocale(ctx, req)
	if err != nil {
		c.locale = h.i18n.DefaultLocale()
		return h.fail(ctx, c, requestID, err)
	}
	c.locale = locale

	c.log.Debug().Str("locale", locale).Str("arg", arg).Msg("handling command")

	reply, err := fn(ctx, h, c)
	if err != nil {
		return h.fail(ctx, c, requestID, err)
	}

	return reply, nil
}

func (h *Handler) fail(ctx context.Context, c *call, requestID string, err error) (*Reply, error) {
	c.log.Error().Err(err).Msg("command failed")

	report := domain.ErrorReport{
		RequestID: requestID,
		ChatID:    c.req.ChatID,
		SenderID:  c.req.SenderID,
		Command:   "/" + c.name,
		Err:       err,
	}
	if notifyErr := h.notify.SendError(ctx, report); notifyErr != nil {
		c.log.Warn().Err(notifyErr).Msg("Failed to send error notification")
	}

	text := h.i18n.TranslateArgs(c.locale, "unknown_error", map[string]string{"error": format.EscapeHTML(err.Error())})
	return c.reply(text), errors.Wrapf(err, "command /%s", c.name)
}

// parse splits "/anime@bot cowboy bebop" into ("anime", "cowboy bebop").
// Callback data carries no leading slash.
func parse(text string, callback bool) (string, string, bool) {
	text = strings.TrimSpace(text)
	if !callback {
		if !strings.HasPrefix(text, "/") && !strings.HasPrefix(text, "!") {
			return "", "", false
		}
		text = text[1:]
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", "", false
	}

	name := strings.ToLower(fields[0])
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", "", false
	}

	return name, strings.Join(fields[1:], " "), true
}

// resolveLocale reads the chat's language, storing the chat on first sight.
func (h *Handler) resolveLocale(ctx context.Context, req Request) (string, error) {
	if req.Private {
		user, err := h.ensureUser(ctx, req)
		if err != nil {
			return "", err
		}
		return user.LanguageCode, nil
	}

	group, err := h.ensureGroup(ctx, req)
	if err != nil {
		return "", err
	}
	return group.LanguageCode, nil
}

func (h *Handler) ensureUser(ctx context.Context, req Request) (*domain.User, error) {
	user, err := h.repo.FindUser(ctx, req.SenderID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to find user")
	}

	user = &domain.User{ID: req.SenderID, LanguageCode: h.i18n.Match(req.LanguageTag)}
	if err := h.repo.StoreUser(ctx, user); err != nil {
		// A concurrent request may have stored the user since the lookup.
		if existing, findErr := h.repo.FindUser(ctx, req.SenderID); findErr == nil {
			return existing, nil
		}
		return nil, errors.Wrap(err, "failed to store user")
	}

	h.log.Debug().Int64("user_id", user.ID).Str("locale", user.LanguageCode).Msg("created a new user")
	return user, nil
}

func (h *Handler) ensureGroup(ctx context.Context, req Request) (*domain.Group, error) {
	group, err := h.repo.FindGroup(ctx, req.ChatID)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to find group")
	}

	group = &domain.Group{ID: req.ChatID, LanguageCode: h.i18n.DefaultLocale()}
	if err := h.repo.StoreGroup(ctx, group); err != nil {
		if existing, findErr := h.repo.FindGroup(ctx, req.ChatID); findErr == nil {
			return existing, nil
		}
		return nil, errors.Wrap(err, "failed to store group")
	}

	h.log.Debug().Int64("group_id", group.ID).Msg("created a new group")
	return group, nil
}

func (h *Handler) t(c *call, key string) string {
	return h.i18n.Translate(c.locale, key)
}

func (h *Handler) ta(c *call, key string, args map[string]string) string {
	return h.i18n.TranslateArgs(c.locale, key, args)
}

func pingCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	took := time.Since(c.start).Round(time.Millisecond)
	return c.reply(h.ta(c, "pong", map[string]string{"took": took.String()})), nil
}

func startCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	name := c.req.SenderName
	if name == "" {
		name = "there"
	}

	reply := c.reply(h.ta(c, "start", map[string]string{"name": format.EscapeHTML(name)}))
	reply.Buttons = [][]Button{{{Text: h.t(c, "_FLAG") + " " + h.t(c, "_NAME"), Data: "lang"}}}
	return reply, nil
}

func unknownCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	return c.reply(h.t(c, "unknown_command")), nil
}
