package auditlog

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/YatharthSanghavi/wt-project/internal/app/store/audit"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// ServeList handles GET /api/audit?category=&event_type=&user=&since=&limit=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "audit.list")
	defer cancel()

	events, err := h.store.Query(ctx, f)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, events, len(events))
}

func parseFilter(r *http.Request) (audit.QueryFilter, error) {
	q := r.URL.Query()
	f := audit.QueryFilter{
		Category:  strings.TrimSpace(q.Get("category")),
		EventType: strings.TrimSpace(q.Get("event_type")),
		Limit:     defaultLimit,
	}
	switch f.Category {
	case "", audit.CategoryAuth, audit.CategoryAdmin:
	default:
		return f, apierr.Validation("Unknown audit category")
	}

	if s := strings.TrimSpace(q.Get("user")); s != "" {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return f, apierr.Validation("Invalid user id")
		}
		f.UserID = &id
	}

	if s := strings.TrimSpace(q.Get("since")); s != "" {
		t, err := parseSince(s)
		if err != nil {
			return f, apierr.Validation("since must be RFC 3339 or YYYY-MM-DD")
		}
		f.Since = &t
	}

	if s := strings.TrimSpace(q.Get("limit")); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 1 {
			return f, apierr.Validation("limit must be a positive integer")
		}
		if n > maxLimit {
			n = maxLimit
		}
		f.Limit = n
	}
	return f, nil
}

func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}
