package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"oja-pos-licensing/internal/domain"
	"oja-pos-licensing/internal/domain/model"
	"oja-pos-licensing/internal/infra/logging"
)

// maxBody caps request bodies; every payload here is a few fields.
const maxBody = 1 << 14

type activateRequest struct {
	ShopID   string `json:"shop_id" validate:"required,max=64"`
	DeviceID string `json:"device_id" validate:"required,max=128"`
	Code     string `json:"code" validate:"required,max=32"`
}

type subscriptionResponse struct {
	ShopID        string     `json:"shop_id"`
	Plan          string     `json:"plan"`
	Premium       bool       `json:"premium"`
	Expired       bool       `json:"expired"`
	DaysRemaining int        `json:"days_remaining"`
	ProductLimit  int        `json:"product_limit"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type tokenRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type issueCodesRequest struct {
	Count int `json:"count" validate:"required,min=1,max=1000"`
	Days  int `json:"days" validate:"required,oja_days"`
}

type issueCodesResponse struct {
	BatchID   string    `json:"batch_id"`
	Days      int       `json:"days"`
	Plan      string    `json:"plan"`
	Count     int       `json:"count"`
	Codes     []string  `json:"codes"`
	CreatedAt time.Time `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	code := http.StatusOK
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			status[name] = "down"
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}
	writeJSON(w, code, map[string]any{"status": http.StatusText(code), "checks": status})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if !s.decode(w, r, &req) {
		return
	}
	sub, err := s.activation.Activate(r.Context(), req.ShopID, req.DeviceID, req.Code)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toSubscription(sub))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sub, err := s.activation.Status(r.Context(), chi.URLParam(r, "shopID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toSubscription(sub))
}

func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	sub, err := s.activation.Deactivate(r.Context(), chi.URLParam(r, "shopID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toSubscription(sub))
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !apiKeyMatches(s.apiKey, req.APIKey) {
		logging.With(r.Context(), s.log).Warn().Msg("admin token refused")
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	tok, exp, err := s.auth.Mint(adminRole)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: tok, ExpiresAt: exp})
}

func (s *Server) handleIssueCodes(w http.ResponseWriter, r *http.Request) {
	var req issueCodesRequest
	if !s.decode(w, r, &req) {
		return
	}
	b, err := s.codegen.Issue(r.Context(), req.Count, req.Days)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, issueCodesResponse{
		BatchID:   b.ID,
		Days:      b.Days,
		Plan:      string(b.Plan),
		Count:     len(b.Codes),
		Codes:     b.Codes,
		CreatedAt: b.CreatedAt,
	})
}

// decode reads a JSON body into dst and validates it, writing the error
// response itself when it returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, describe(err))
		return false
	}
	return true
}

func (s *Server) toSubscription(sub *model.ShopSubscription) subscriptionResponse {
	now := s.now()
	return subscriptionResponse{
		ShopID:        sub.ShopID,
		Plan:          string(sub.Plan),
		Premium:       sub.IsPremium(now),
		Expired:       sub.IsExpired(now),
		DaysRemaining: sub.DaysRemaining(now),
		ProductLimit:  model.ProductLimit(sub, now),
		ActivatedAt:   sub.ActivatedAt,
		ExpiresAt:     sub.ExpiresAt,
	}
}

// writeDomainError maps domain errors onto status codes. Invalid and used
// codes share one message so callers cannot tell them apart.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidActivationCode), errors.Is(err, domain.ErrCodeAlreadyUsed):
		writeError(w, http.StatusUnprocessableEntity, "invalid activation code")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many attempts, try again later")
	case errors.Is(err, domain.ErrLockBusy):
		writeError(w, http.StatusConflict, "activation in progress, retry shortly")
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		logging.With(r.Context(), s.log).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
