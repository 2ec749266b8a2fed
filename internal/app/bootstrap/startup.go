// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/store/audit"
	userstore "github.com/YatharthSanghavi/wt-project/internal/app/store/users"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auditlog"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authutil"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if appCfg.AdminEmail != "" {
		al := newAuditLogger(appCfg, deps.MongoDatabase, logger)
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminName, appCfg.AdminPassword, al, logger); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}
	return nil
}

func newAuditLogger(appCfg AppConfig, db *mongo.Database, logger *zap.Logger) *auditlog.Logger {
	return auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditAuth,
		Admin: appCfg.AuditAdmin,
	})
}

// ensureAdmin makes the account with email an admin. A missing account is
// created when a password is available; otherwise startup continues
// without one.
func ensureAdmin(ctx context.Context, deps DBDeps, email, name, password string, al *auditlog.Logger, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)
	log := logger.With(zap.String("email", strings.ToLower(strings.TrimSpace(email))))

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == models.RoleAdmin {
			log.Debug("admin already present")
			return nil
		}
		if err := users.Update(ctx, u.ID, bson.M{"role": models.RoleAdmin}, primitive.NilObjectID); err != nil {
			return err
		}
		log.Info("promoted existing user to admin", zap.String("previous_role", u.Role))
		al.AdminBootstrapped(ctx, u.ID, true)
		return nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		return err
	}

	if password == "" {
		log.Warn("admin account missing and no admin_password configured; skipping")
		return nil
	}
	if err := authutil.ValidatePassword(password); err != nil {
		return fmt.Errorf("admin_password: %w", err)
	}
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Administrator"
	}
	created, err := users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Info("created admin user", zap.String("user_id", created.ID.Hex()))
	al.AdminBootstrapped(ctx, created.ID, false)
	return nil
}
