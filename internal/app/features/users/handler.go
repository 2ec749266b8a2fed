// internal/app/features/users/handler.go
package users

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	userstore "github.com/YatharthSanghavi/wt-project/internal/app/store/users"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auditlog"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the user administration and self-service profile API.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Audit   *auditlog.Logger

	store *userstore.Store
	own   *ownership.Loader
}

func NewHandler(db *mongo.Database, m *metrics.Metrics, al *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Metrics: m,
		Audit:   al,
		store:   userstore.New(db),
		own:     ownership.New(db),
	}
}
