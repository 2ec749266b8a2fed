package authapi

import (
	"errors"
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authutil"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/ratelimit"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const msgBadCredentials = "Invalid credentials"

// HandleLogin handles POST /api/auth/login. Unknown emails and wrong
// passwords get the same answer.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "auth.login")
	defer cancel()

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, in.Email); !ok {
			h.Log.Warn("login rate limited",
				zap.String("ip", ratelimit.ClientIP(r)),
				zap.String("email", inputval.NormalizeEmail(in.Email)))
			h.Audit.LoginFailedRateLimit(ctx, r, inputval.NormalizeEmail(in.Email), msg)
			respond.Fail(w, http.StatusTooManyRequests, msg)
			return
		}
	}

	u, err := h.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Audit.LoginFailedUserNotFound(ctx, r, inputval.NormalizeEmail(in.Email))
		respond.Fail(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if !authutil.CheckPassword(in.Password, u.PasswordHash) {
		h.Audit.LoginFailedWrongPassword(ctx, r, u.ID)
		respond.Fail(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if h.Limiter != nil {
		h.Limiter.Succeeded(in.Email)
	}

	token, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Audit.LoginSuccess(ctx, r, u.ID)

	v, err := populate.User(ctx, h.DB, u.ID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OKMessage(w, "Login successful", session{Token: token, User: v})
}
