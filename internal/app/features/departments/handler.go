// internal/app/features/departments/handler.go
package departments

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/deleteguard"
	departmentstore "github.com/YatharthSanghavi/wt-project/internal/app/store/departments"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Departments.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Guard   *deleteguard.Guard

	store *departmentstore.Store
	own   *ownership.Loader
}

func NewHandler(db *mongo.Database, guard *deleteguard.Guard, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Metrics: m,
		Guard:   guard,
		store:   departmentstore.New(db),
		own:     ownership.New(db),
	}
}
