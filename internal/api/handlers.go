package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/internal/service"
	"github.com/limbo/missions/pkg/calendar"
	"github.com/limbo/missions/pkg/entity"
	"github.com/limbo/missions/pkg/httputil"
)

type RegisterRequest struct {
	Name string `json:"name"`
}

type TemplatesResponse struct {
	Missions []entity.MissionTemplate `json:"missions"`
}

type DueDatesResponse struct {
	SubscriptionID string   `json:"subscription_id"`
	Dates          []string `json:"dates"`
}

type CalendarResponse struct {
	From string              `json:"from"`
	To   string              `json:"to"`
	Days []service.DayStatus `json:"days"`
}

type BadgesResponse struct {
	Badges []entity.BadgeAward `json:"badges"`
}

type EvaluateResponse struct {
	NewBadges []entity.BadgeDefinition `json:"new_badges"`
}

// writeServiceError maps error categories to status codes. A subscription
// owned by someone else is reported as missing.
func writeServiceError(w http.ResponseWriter, logger *zerolog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrInvalidInput):
		logger.Warn().Err(err).Msg(op + " error: invalid input")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, errorvalues.ErrForbidden):
		logger.Warn().Err(err).Msg(op + " error: foreign resource")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, errorvalues.ErrNotFound):
		logger.Warn().Err(err).Msg(op + " error: not found")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "not found", err)
	case errors.Is(err, errorvalues.ErrConflict):
		logger.Warn().Err(err).Msg(op + " error: conflict")
		httputil.WriteErrorResponse(w, http.StatusConflict, "conflict", err)
	default:
		logger.Error().Err(err).Msg(op + " error: service error")
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during "+op, nil)
	}
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Warn().Msg("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{Name: req.Name})
	if err != nil {
		writeServiceError(w, logger, "registering", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, user)
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := s.userService.GetByID(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "getting user", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
}

func (s *Server) DeleteMe(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err = s.userService.DeleteAccount(ctx, uid); err != nil {
		writeServiceError(w, logger, "deleting account", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	templates, err := s.missionsService.ListTemplates(ctx)
	if err != nil {
		writeServiceError(w, logger, "listing missions", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, TemplatesResponse{Missions: templates})
}

func (s *Server) StartSubscription(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
		return
	}
	var req service.StartSubscriptionRequest
	defer r.Body.Close()
	if err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Msg("start subscription error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	sub, err := s.missionsService.StartSubscription(ctx, uid, &req)
	if err != nil {
		writeServiceError(w, logger, "starting subscription", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, sub)
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
		return
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	view, err := s.dashboardService.GetDashboard(ctx, uid, refresh)
	if err != nil {
		writeServiceError(w, logger, "getting dashboard", err)
		return
	}
	if err = httputil.WriteCachedJSON(w, r, view.Dashboard, view.FromCache, view.StoredAt); err != nil {
		logger.Error().Err(err).Msg("writing dashboard error")
	}
}

func (s *Server) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, id, ok := s.subscriptionTarget(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := s.missionsService.DeleteSubscription(ctx, id, uid); err != nil {
		writeServiceError(w, logger, "deleting subscription", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) CompleteToday(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, id, ok := s.subscriptionTarget(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	result, err := s.missionsService.CompleteToday(ctx, id, uid)
	if err != nil {
		writeServiceError(w, logger, "completing today", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, result)
}

func (s *Server) DueDates(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, id, ok := s.subscriptionTarget(w, r)
	if !ok {
		return
	}
	from, to, err := parseRange(r)
	if err != nil {
		writeServiceError(w, logger, "listing due dates", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	dates, err := s.missionsService.DueDates(ctx, id, uid, from, to)
	if err != nil {
		writeServiceError(w, logger, "listing due dates", err)
		return
	}
	resp := DueDatesResponse{SubscriptionID: id.String(), Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, calendar.Format(d))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) Calendar(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
		return
	}
	from, to, err := parseRange(r)
	if err != nil {
		writeServiceError(w, logger, "building calendar", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	days, err := s.dashboardService.Calendar(ctx, uid, from, to)
	if err != nil {
		writeServiceError(w, logger, "building calendar", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, CalendarResponse{
		From: calendar.Format(from),
		To:   calendar.Format(to),
		Days: days,
	})
}

func (s *Server) ListBadges(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	awards, err := s.badgesService.ListUserBadges(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "listing badges", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, BadgesResponse{Badges: awards})
}

func (s *Server) EvaluateBadges(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	awarded, err := s.badgesService.Evaluate(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "evaluating badges", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, EvaluateResponse{NewBadges: awarded})
}

// subscriptionTarget reads the caller and the {id} path value, answering the
// request itself when either is missing.
func (s *Server) subscriptionTarget(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		GetLoggerFromCtx(r.Context()).Warn().Msg("invalid subscription id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid subscription id in path value", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return uid, id, true
}

// parseRange reads the inclusive from/to query dates.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	from, err := calendar.Parse(q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from: %w", errorvalues.ErrInvalidInput, err)
	}
	to, err := calendar.Parse(q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to: %w", errorvalues.ErrInvalidInput, err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range end is before its start", errorvalues.ErrInvalidInput)
	}
	if calendar.DaysBetween(from, to) >= service.MaxCalendarDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range is longer than %d days", errorvalues.ErrInvalidInput, service.MaxCalendarDays)
	}
	return from, to, nil
}
