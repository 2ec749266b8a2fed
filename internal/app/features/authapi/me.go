package authapi

import (
	"errors"
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeMe handles GET /api/auth/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "auth.me")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(cur.ID)
	if err != nil {
		respond.Fail(w, http.StatusUnauthorized, "Not authorized, user not found")
		return
	}
	v, err := populate.User(ctx, h.DB, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Fail(w, http.StatusUnauthorized, "Not authorized, user not found")
		return
	}
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, v)
}
