package command

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/varoOP/shinkrobot/internal/domain"
	"github.com/varoOP/shinkrobot/internal/format"
	"github.com/varoOP/shinkrobot/pkg/anilist"
)

func meCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	viewer, err := h.accounts.Viewer(ctx, c.req.SenderID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return c.reply(h.t(c, "search_failed")), nil
	case errors.Is(err, domain.ErrNotFound):
		return c.reply(h.t(c, "me_not_linked")), nil
	default:
		return nil, err
	}

	user, err := h.repo.FindUser(ctx, c.req.SenderID)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if user != nil && user.AnilistID != viewer.ID {
		user.AnilistID = viewer.ID
		if err := h.repo.UpdateUser(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to update user")
		}
	}

	reply := c.reply(format.UserInfo(viewer))
	reply.PhotoURL = userPhoto(viewer)
	return reply, nil
}

// authCommand links the sender to the AniList account owning the given access token.
func authCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	if !c.req.Private {
		return c.reply(h.t(c, "only_private")), nil
	}
	if c.arg == "" {
		return c.reply(h.t(c, "auth_usage")), nil
	}

	user, err := h.ensureUser(ctx, c.req)
	if err != nil {
		return nil, err
	}

	prevID, prevToken := user.AnilistID, user.AnilistToken
	user.AnilistToken = c.arg
	if err := h.storeAccount(ctx, user); err != nil {
		return nil, err
	}

	viewer, err := h.accounts.Viewer(ctx, user.ID)
	if err != nil {
		user.AnilistID, user.AnilistToken = prevID, prevToken
		if restoreErr := h.storeAccount(ctx, user); restoreErr != nil {
			return nil, restoreErr
		}

		var apiErr *anilist.APIError
		switch {
		case errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized):
			return c.reply(h.t(c, "auth_failed")), nil
		case errors.Is(err, domain.ErrRemoteUnavailable):
			return c.reply(h.t(c, "search_failed")), nil
		case errors.Is(err, domain.ErrNotFound):
			return c.reply(h.t(c, "auth_failed")), nil
		default:
			return nil, err
		}
	}

	user.AnilistID = viewer.ID
	if err := h.storeAccount(ctx, user); err != nil {
		return nil, err
	}

	c.log.Info().Int64("user_id", user.ID).Int("anilist_id", viewer.ID).Msg("linked AniList account")
	return c.reply(h.ta(c, "auth_done", map[string]string{"name": format.EscapeHTML(viewer.Name)})), nil
}

func logoutCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	user, err := h.repo.FindUser(ctx, c.req.SenderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return c.reply(h.t(c, "me_not_linked")), nil
		}
		return nil, errors.Wrap(err, "failed to find user")
	}

	if !user.HasToken() {
		return c.reply(h.t(c, "me_not_linked")), nil
	}

	user.AnilistID = 0
	user.AnilistToken = ""
	if err := h.storeAccount(ctx, user); err != nil {
		return nil, err
	}

	c.log.Info().Int64("user_id", user.ID).Msg("unlinked AniList account")
	return c.reply(h.t(c, "logout_done")), nil
}

// storeAccount persists the user's AniList link and drops the pooled client built from the old token.
func (h *Handler) storeAccount(ctx context.Context, user *domain.User) error {
	if err := h.repo.UpdateUser(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update user")
	}
	h.accounts.Forget(user.ID)
	return nil
}
