package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/clients/registryclient"
	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/core/services"
	"github.com/aakfoundation/sevak-registry/pkg/core/view"
	"github.com/aakfoundation/sevak-registry/pkg/export"
)

// queryFromRequest parses list parameters. Unknown sort keys and page sizes
// fall back to the derivation's defaults rather than erroring.
func queryFromRequest(r *http.Request) view.Query {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	return view.Query{
		Search:   q.Get("search"),
		Role:     model.Role(q.Get("role")),
		IDNumber: q.Get("idNumber"),
		Sort:     view.SortKey(q.Get("sort")),
		Page:     page,
		PageSize: pageSize,
	}
}

func (s *Server) handleListVolunteers(w http.ResponseWriter, r *http.Request) {
	result := services.ListVolunteers(r.Context(), s.cache, s.logger, queryFromRequest(r))

	writeJSON(w, http.StatusOK, result.Records, &Meta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.TotalCount,
		TotalPages: result.TotalPages,
		Degraded:   result.Degraded,
	})
}

func (s *Server) handleRoleCounts(w http.ResponseWriter, r *http.Request) {
	result := services.ListVolunteers(r.Context(), s.cache, s.logger, queryFromRequest(r))
	writeJSON(w, http.StatusOK, result.RoleCounts, &Meta{Total: result.RoleCounts.Total()})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	count, err := services.RefreshVolunteers(r.Context(), s.cache, s.logger)
	if err != nil {
		// Last-known-good data keeps serving; the client shows a toast.
		badGateway(w, "refresh failed, showing cached data")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"records": count}, nil)
}

func (s *Server) handleWake(w http.ResponseWriter, r *http.Request) {
	s.cache.Wake(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"state": string(s.cache.State())}, nil)
}

func (s *Server) handleRegisterVolunteer(w http.ResponseWriter, r *http.Request) {
	var reg registryclient.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := services.RegisterVolunteer(r.Context(), s.client, s.logger, reg)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	// Pull the authoritative list so the new record appears with its
	// backend-assigned display id.
	if err := s.cache.Refresh(r.Context()); err != nil {
		s.logger.Warn("Refresh after registration failed", zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, created, nil)
}

func (s *Server) handleDeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := services.DeleteVolunteer(r.Context(), s.cache, s.logger, id); err != nil {
		s.writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted": id}, nil)
}

type roleChangeRequest struct {
	VolunteerID string     `json:"volunteerId"`
	Role        model.Role `json:"role,omitempty"`
	AssignedBy  string     `json:"assignedBy,omitempty"`
}

func (s *Server) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	var req roleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.VolunteerID == "" {
		badRequest(w, "volunteerId is required")
		return
	}

	err := services.AssignRole(r.Context(), s.client, s.cache, s.logger, s.now, req.VolunteerID, req.Role, req.AssignedBy)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"volunteerId": req.VolunteerID, "role": string(req.Role)}, nil)
}

func (s *Server) handleRemoveRole(w http.ResponseWriter, r *http.Request) {
	var req roleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.VolunteerID == "" {
		badRequest(w, "volunteerId is required")
		return
	}

	if err := services.RemoveRole(r.Context(), s.client, s.cache, s.logger, req.VolunteerID); err != nil {
		s.writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"volunteerId": req.VolunteerID}, nil)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	records := s.cache.List()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="volunteers.csv"`)

	if err := export.WriteCSV(w, records); err != nil {
		s.logger.Warn("CSV export failed mid-stream", zap.Error(err))
	}
}

func (s *Server) handleExportCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var target *model.Volunteer
	for _, v := range s.cache.List() {
		if v.ID == id {
			target = &v
			break
		}
	}
	if target == nil {
		notFound(w, "volunteer not found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.CardFileName(id)+`"`)

	if err := export.WriteCardPNG(w, *target); err != nil {
		s.logger.Warn("Card export failed mid-stream", zap.String("volunteer_id", id), zap.Error(err))
	}
}

// writeAPIError maps the client error taxonomy onto dashboard responses.
// Auth failures tell the UI to clear its session and re-login.
func (s *Server) writeAPIError(w http.ResponseWriter, err error) {
	switch {
	case registryclient.IsAuthError(err):
		unauthorized(w, "admin session expired, please log in again")
	case registryclient.IsNotFound(err):
		notFound(w, "record not found on backend")
	case registryclient.IsNetworkError(err):
		badGateway(w, "backend unreachable")
	default:
		internalError(w, err.Error())
	}
}
