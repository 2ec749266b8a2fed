// internal/app/features/events/handler.go
package events

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/deleteguard"
	eventstore "github.com/YatharthSanghavi/wt-project/internal/app/store/events"
	groupstore "github.com/YatharthSanghavi/wt-project/internal/app/store/groups"
	winnerstore "github.com/YatharthSanghavi/wt-project/internal/app/store/winners"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Events and their winners.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Guard   *deleteguard.Guard

	store   *eventstore.Store
	groups  *groupstore.Store
	winners *winnerstore.Store
	own     *ownership.Loader
}

func NewHandler(db *mongo.Database, guard *deleteguard.Guard, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Metrics: m,
		Guard:   guard,
		store:   eventstore.New(db),
		groups:  groupstore.New(db),
		winners: winnerstore.New(db),
		own:     ownership.New(db),
	}
}
