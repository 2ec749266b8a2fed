// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/store/audit"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destination values for Config fields.
const (
	ModeAll = "all" // MongoDB and zap
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

// ValidMode reports whether s is one of the destination values.
func ValidMode(s string) bool {
	switch s {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Config selects where each category of event goes.
type Config struct {
	// Auth covers sign-in and registration.
	Auth string
	// Admin covers changes one user makes to another's account.
	Admin string
}

// Logger writes audit events to the audit store and to zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records event according to the category's mode. A nil Logger is a
// no-op. Storage failures are logged and never returned to the caller.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var mode string
	switch event.Category {
	case audit.CategoryAuth:
		mode = l.config.Auth
	case audit.CategoryAdmin:
		mode = l.config.Admin
	default:
		mode = ModeAll
	}
	if mode == "" {
		mode = ModeAll
	}
	if mode == ModeOff {
		return
	}

	if mode == ModeAll || mode == ModeLog {
		l.logToZap(event)
	}
	if mode == ModeAll || mode == ModeDB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func authEvent(r *http.Request, eventType string) audit.Event {
	return audit.Event{
		Category:  audit.CategoryAuth,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func adminEvent(r *http.Request, eventType string, actorID, targetID primitive.ObjectID, actorRole string) audit.Event {
	return audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		UserID:    &targetID,
		ActorID:   &actorID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"actor_role": actorRole},
	}
}

// --- Authentication Events ---

func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	e := authEvent(r, audit.EventLoginSuccess)
	e.UserID = &userID
	e.Success = true
	l.Log(ctx, e)
}

func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, email string) {
	e := authEvent(r, audit.EventLoginFailedUserNotFound)
	e.FailureReason = "user not found"
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	e := authEvent(r, audit.EventLoginFailedWrongPassword)
	e.UserID = &userID
	e.FailureReason = "wrong password"
	l.Log(ctx, e)
}

// LoginFailedRateLimit records a refused attempt. The account is not looked
// up, so only the submitted email is kept.
func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request, email, reason string) {
	e := authEvent(r, audit.EventLoginFailedRateLimit)
	e.FailureReason = reason
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

func (l *Logger) UserRegistered(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	e := authEvent(r, audit.EventUserRegistered)
	e.UserID = &userID
	e.Success = true
	l.Log(ctx, e)
}

// --- Admin Events ---

// UserUpdated records a profile edit made by someone other than the user.
func (l *Logger) UserUpdated(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID, actorRole, fieldsChanged string) {
	e := adminEvent(r, audit.EventUserUpdated, actorID, targetID, actorRole)
	e.Details["fields_changed"] = fieldsChanged
	l.Log(ctx, e)
}

func (l *Logger) UserRoleChanged(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID, actorRole, role string) {
	e := adminEvent(r, audit.EventUserRoleChanged, actorID, targetID, actorRole)
	e.Details["new_role"] = role
	l.Log(ctx, e)
}

func (l *Logger) UserDeleted(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID, actorRole string) {
	l.Log(ctx, adminEvent(r, audit.EventUserDeleted, actorID, targetID, actorRole))
}

// AdminBootstrapped records the configured admin account being created or
// promoted at startup.
func (l *Logger) AdminBootstrapped(ctx context.Context, userID primitive.ObjectID, promoted bool) {
	action := "created"
	if promoted {
		action = "promoted"
	}
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventAdminBootstrapped,
		UserID:    &userID,
		Success:   true,
		Details:   map[string]string{"action": action},
	})
}
