// internal/app/features/authapi/handler.go
package authapi

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auditlog"
	userstore "github.com/YatharthSanghavi/wt-project/internal/app/store/users"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves account registration, password login and the current
// user's profile.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Tokens  *auth.TokenManager
	Limiter *ratelimit.LoginLimiter
	Audit   *auditlog.Logger

	users *userstore.Store
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, limiter *ratelimit.LoginLimiter, al *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Tokens:  tokens,
		Limiter: limiter,
		Audit:   al,
		users:   userstore.New(db),
	}
}
