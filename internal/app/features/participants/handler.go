// internal/app/features/participants/handler.go
package participants

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	eventstore "github.com/YatharthSanghavi/wt-project/internal/app/store/events"
	participantstore "github.com/YatharthSanghavi/wt-project/internal/app/store/participants"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves participants both under their group and by id.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Metrics *metrics.Metrics

	store  *participantstore.Store
	events *eventstore.Store
	own    *ownership.Loader
}

func NewHandler(db *mongo.Database, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Metrics: m,
		store:   participantstore.New(db),
		events:  eventstore.New(db),
		own:     ownership.New(db),
	}
}
