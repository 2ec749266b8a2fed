package authapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	userstore "github.com/YatharthSanghavi/wt-project/internal/app/store/users"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authutil"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRegister handles POST /api/auth/register. Self-registered accounts
// are always students; other roles are granted by an admin.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.Name = htmlsanitize.PlainText(in.Name)
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authutil.ValidatePassword(in.Password); err != nil {
		respond.Error(w, r, h.Log, apierr.Validation(err.Error()))
		return
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "auth.register")
	defer cancel()

	u, err := h.users.Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         models.RoleStudent,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			err = apierr.Conflict(err.Error())
		}
		respond.Error(w, r, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))
	h.Audit.UserRegistered(ctx, r, u.ID)
	respond.Created(w, "User registered successfully", session{Token: token, User: populate.UserView{User: u}})
}
