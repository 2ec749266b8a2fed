// internal/app/features/groups/handler.go
package groups

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/deleteguard"
	groupstore "github.com/YatharthSanghavi/wt-project/internal/app/store/groups"
	participantstore "github.com/YatharthSanghavi/wt-project/internal/app/store/participants"
	winnerstore "github.com/YatharthSanghavi/wt-project/internal/app/store/winners"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Guard   *deleteguard.Guard

	store        *groupstore.Store
	participants *participantstore.Store
	winners      *winnerstore.Store
	own          *ownership.Loader
}

func NewHandler(db *mongo.Database, guard *deleteguard.Guard, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Metrics:      m,
		Guard:        guard,
		store:        groupstore.New(db),
		participants: participantstore.New(db),
		winners:      winnerstore.New(db),
		own:          ownership.New(db),
	}
}
