package command

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// langCommand shows the language keyboard, or switches the chat's language
// for "/lang pt" and the "lang set pt" callback.
func langCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	if !c.req.Private && !c.req.Admin {
		return c.reply(h.t(c, "admin_only")), nil
	}

	fields := strings.Fields(c.arg)
	if len(fields) > 0 && fields[0] == "set" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return languageKeyboard(h, c), nil
	}

	code := strings.ToLower(fields[0])
	if !h.i18n.HasLocale(code) {
		return c.reply(h.ta(c, "language_unknown", map[string]string{
			"language":  code,
			"available": strings.Join(h.i18n.Locales(), ", "),
		})), nil
	}

	if err := h.setLocale(ctx, c, code); err != nil {
		return nil, err
	}

	c.log.Debug().Str("from", c.locale).Str("to", code).Msg("language changed")
	c.locale = code

	return c.reply(h.ta(c, "language_changed", map[string]string{"language": h.t(c, "_NAME")})), nil
}

func languageKeyboard(h *Handler, c *call) *Reply {
	var row []Button
	var buttons [][]Button
	for _, locale := range h.i18n.Locales() {
		text := h.i18n.Translate(locale, "_FLAG") + " " + h.i18n.Translate(locale, "_NAME")
		if locale == c.locale {
			text += " ✔"
		}

		row = append(row, Button{Text: text, Data: "lang set " + locale})
		if len(row) == 2 {
			buttons = append(buttons, row)
			row = nil
		}
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}

	reply := c.reply(h.t(c, "language"))
	reply.Buttons = buttons
	return reply
}

func (h *Handler) setLocale(ctx context.Context, c *call, locale string) error {
	if c.req.Private {
		user, err := h.repo.FindUser(ctx, c.req.SenderID)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		user.LanguageCode = locale
		return errors.Wrap(h.repo.UpdateUser(ctx, user), "failed to update user")
	}

	group, err := h.repo.FindGroup(ctx, c.req.ChatID)
	if err != nil {
		return errors.Wrap(err, "failed to find group")
	}
	group.LanguageCode = locale
	return errors.Wrap(h.repo.UpdateGroup(ctx, group), "failed to update group")
}
