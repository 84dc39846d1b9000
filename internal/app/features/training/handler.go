// internal/app/features/training/handler.go
package training

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	progressstore "github.com/dalemusser/cyberhub/internal/app/store/progress"
	userstore "github.com/dalemusser/cyberhub/internal/app/store/users"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/authz"
	"github.com/dalemusser/cyberhub/internal/app/system/timeouts"
	"github.com/dalemusser/cyberhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the training catalog, lesson pages, and quiz grading.
type Handler struct {
	Progress *progressstore.Store
	Users    *userstore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(progress *progressstore.Store, users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Progress: progress, Users: users, ErrLog: errLog, Log: logger}
}

type catalogRow struct {
	Module
	Completed bool
	Score     int
	Total     int
	OrgDone   int // members who completed this module, coordinator view only
}

type catalogViewData struct {
	viewdata.BaseVM
	Rows        []catalogRow
	ShowOrgDone bool
	OrgSize     int
}

type moduleViewData struct {
	viewdata.BaseVM
	Module Module
	Graded bool
	Score  int
	Total  int
	Passed bool
	Missed []int // question indexes answered wrong, shown after grading
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /training                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	done := map[string]struct{ score, total int }{}
	if userID, err := primitive.ObjectIDFromHex(user.ID); err == nil {
		records, err := h.Progress.ForUser(ctx, userID)
		if err != nil {
			h.Log.Warn("load training progress failed", zap.Error(err), zap.String("user_id", user.ID))
		}
		for _, rec := range records {
			done[rec.ModuleID] = struct{ score, total int }{rec.Score, rec.Total}
		}
	}

	vd := catalogViewData{BaseVM: viewdata.NewBaseVM(r, "Training", "/")}

	// Coordinators also see how far their organization has gotten.
	var orgDone map[string]int
	if orgID := authz.UserOrgID(r); authz.IsCoordinator(r) && !orgID.IsZero() {
		members, err := h.Users.ListByOrg(ctx, orgID)
		if err != nil {
			h.Log.Warn("load org members failed", zap.Error(err), zap.String("org_id", orgID.Hex()))
		} else {
			ids := make([]primitive.ObjectID, 0, len(members))
			for _, m := range members {
				ids = append(ids, m.ID)
			}
			orgDone, err = h.Progress.CompletionByModule(ctx, ids)
			if err != nil {
				h.Log.Warn("load org completion failed", zap.Error(err), zap.String("org_id", orgID.Hex()))
			} else {
				vd.ShowOrgDone = true
				vd.OrgSize = len(members)
			}
		}
	}

	for _, m := range Catalog {
		row := catalogRow{Module: m, OrgDone: orgDone[m.ID]}
		if result, ok := done[m.ID]; ok {
			row.Completed = true
			row.Score = result.score
			row.Total = result.total
		}
		vd.Rows = append(vd.Rows, row)
	}
	templates.Render(w, r, "training_catalog", vd)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /training/{moduleID}                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeModule(w http.ResponseWriter, r *http.Request) {
	m, ok := ModuleByID(chi.URLParam(r, "moduleID"))
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "unknown training module", fmt.Errorf("module %q", chi.URLParam(r, "moduleID")),
			"That lesson does not exist.", "/training")
		return
	}
	templates.Render(w, r, "training_module", moduleViewData{
		BaseVM: viewdata.NewBaseVM(r, m.Title, "/training"),
		Module: m,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /training/{moduleID} – grade the quiz                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	m, ok := ModuleByID(chi.URLParam(r, "moduleID"))
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "unknown training module", fmt.Errorf("module %q", chi.URLParam(r, "moduleID")),
			"That lesson does not exist.", "/training")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse quiz form failed", err, "Invalid form data.", "/training/"+m.ID)
		return
	}

	score := 0
	var missed []int
	for i, q := range m.Quiz {
		picked, err := strconv.Atoi(r.FormValue("q" + strconv.Itoa(i)))
		if err == nil && picked == q.Answer {
			score++
		} else {
			missed = append(missed, i)
		}
	}

	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "bad session user id", err, "Something went wrong. Please sign in again.", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Progress.Record(ctx, userID, m.ID, score, len(m.Quiz)); err != nil {
		h.ErrLog.LogServerError(w, r, "record training progress failed", err,
			"We could not save your result. Please try again.", "/training/"+m.ID)
		return
	}

	templates.Render(w, r, "training_module", moduleViewData{
		BaseVM: viewdata.NewBaseVM(r, m.Title, "/training"),
		Module: m,
		Graded: true,
		Score:  score,
		Total:  len(m.Quiz),
		Passed: score == len(m.Quiz),
		Missed: missed,
	})
}
