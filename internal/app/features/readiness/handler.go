// internal/app/features/readiness/handler.go
package readiness

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	readinessstore "github.com/dalemusser/cyberhub/internal/app/store/readiness"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/authz"
	"github.com/dalemusser/cyberhub/internal/app/system/timeouts"
	"github.com/dalemusser/cyberhub/internal/app/system/viewdata"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const historyLimit = 12

// Handler serves the coordinator's security readiness checklist.
type Handler struct {
	Store  *readinessstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *readinessstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}

type checklistRow struct {
	ChecklistItem
	Checked bool
}

type checklistSection struct {
	Name string
	Rows []checklistRow
}

type readinessViewData struct {
	viewdata.BaseVM
	Sections  []checklistSection
	HasLatest bool
	Latest    models.ReadinessAttestation
	History   []models.ReadinessAttestation
	Notice    string
}

// ServeChecklist shows the checklist prefilled from the latest attestation.
func (h *Handler) ServeChecklist(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	if orgID.IsZero() {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	vd := readinessViewData{
		BaseVM: viewdata.NewBaseVM(r, "Security Readiness", "/"),
		Notice: r.URL.Query().Get("notice"),
	}

	latest, err := h.Store.LatestForOrg(ctx, orgID)
	switch {
	case err == nil:
		vd.HasLatest = true
		vd.Latest = latest
	case errors.Is(err, readinessstore.ErrNoAttestation):
		// First visit, empty checklist.
	default:
		h.ErrLog.LogServerError(w, r, "load readiness failed", err, "We could not load your readiness checklist.", "/")
		return
	}

	for _, item := range Checklist {
		row := checklistRow{ChecklistItem: item, Checked: vd.HasLatest && latest.Checked[item.Key]}
		if n := len(vd.Sections); n == 0 || vd.Sections[n-1].Name != item.Section {
			vd.Sections = append(vd.Sections, checklistSection{Name: item.Section})
		}
		last := &vd.Sections[len(vd.Sections)-1]
		last.Rows = append(last.Rows, row)
	}

	history, err := h.Store.HistoryForOrg(ctx, orgID, historyLimit)
	if err != nil {
		h.Log.Warn("load readiness history failed", zap.Error(err), zap.String("org_id", orgID.Hex()))
	} else {
		vd.History = history
	}

	templates.Render(w, r, "readiness", vd)
}

// HandleSubmit records a new attestation from the posted checklist.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	orgID := authz.UserOrgID(r)
	if orgID.IsZero() {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse readiness form failed", err, "Invalid form data.", "/readiness")
		return
	}

	checked := make(map[string]bool, len(Checklist))
	for _, item := range Checklist {
		checked[item.Key] = r.FormValue("item_"+item.Key) == "on"
	}

	att := models.ReadinessAttestation{
		ID:               primitive.NewObjectID(),
		OrgID:            orgID,
		ChecklistVersion: ChecklistVersion,
		Checked:          checked,
		ReadinessPct:     Score(checked),
		AttestedBy:       user.Name,
		Notes:            strings.TrimSpace(r.FormValue("notes")),
		CreatedBy:        user.UID,
		CreatedAt:        time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Store.Insert(ctx, att); err != nil {
		h.ErrLog.LogServerError(w, r, "save readiness failed", err,
			"We could not save your attestation. Please try again.", "/readiness")
		return
	}

	http.Redirect(w, r, "/readiness?notice=saved", http.StatusSeeOther)
}
