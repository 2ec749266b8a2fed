// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the read-only audit trail to admins.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	store *audit.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		store: audit.New(db),
	}
}
