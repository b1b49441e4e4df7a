package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crowdfund/internal/domain"
	"crowdfund/internal/middleware"
)

type createCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MetadataURI string `json:"metadata_uri"`
	GoalAmount  uint64 `json:"goal_amount"`
	Deadline    string `json:"deadline"` // RFC3339
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	creator := middleware.ActorFromContext(r.Context())
	if creator == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "deadline must be RFC3339")
		return
	}

	campaign, err := a.Escrow.Create(r.Context(), domain.NewCampaignInput{
		Creator:     creator,
		Title:       req.Title,
		Description: req.Description,
		MetadataURI: req.MetadataURI,
		GoalAmount:  req.GoalAmount,
		Deadline:    deadline,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, campaignPayload(campaign))
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Escrow.Campaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, campaignPayload(campaign))
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Escrow.Campaigns(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, campaignPayload(&campaigns[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type donationRequest struct {
	Amount uint64 `json:"amount"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	donor := middleware.ActorFromContext(r.Context())
	if donor == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	record, err := a.Escrow.Donate(r.Context(), chi.URLParam(r, "id"), donor, req.Amount)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":          record.ID,
		"campaign_id": record.CampaignID,
		"donor":       record.Donor,
		"amount":      record.Amount,
		"created_at":  record.Timestamp,
	})
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	records, err := a.Escrow.Donations(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("donor"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		items = append(items, map[string]any{
			"id":         record.ID,
			"donor":      record.Donor,
			"amount":     record.Amount,
			"created_at": record.Timestamp,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignsWithdraw(w http.ResponseWriter, r *http.Request) {
	requester := middleware.ActorFromContext(r.Context())
	if requester == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	amount, err := a.Escrow.Withdraw(r.Context(), chi.URLParam(r, "id"), requester)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"withdrawn": amount})
}

type refundRequest struct {
	DonationID string `json:"donation_id"`
}

func (a *App) RefundsCreate(w http.ResponseWriter, r *http.Request) {
	donor := middleware.ActorFromContext(r.Context())
	if donor == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	var req refundRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
	}

	campaignID := chi.URLParam(r, "id")
	if req.DonationID != "" {
		amount, err := a.Escrow.Refund(r.Context(), campaignID, donor, req.DonationID)
		if err != nil {
			a.domainError(w, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"refunded": amount, "records": 1})
		return
	}

	amount, count, err := a.Escrow.RefundDonor(r.Context(), campaignID, donor)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"refunded": amount, "records": count})
}

func (a *App) CampaignsDelete(w http.ResponseWriter, r *http.Request) {
	requester := middleware.ActorFromContext(r.Context())
	if requester == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing actor identity")
		return
	}

	if err := a.Escrow.Delete(r.Context(), chi.URLParam(r, "id"), requester); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"deleted": true})
}

func campaignPayload(c *domain.Campaign) map[string]any {
	return map[string]any{
		"id":             c.ID,
		"creator":        c.Creator,
		"title":          c.Title,
		"description":    c.Description,
		"metadata_uri":   c.MetadataURI,
		"goal_amount":    c.GoalAmount,
		"donated_amount": c.DonatedAmount,
		"deadline":       c.Deadline,
		"created_at":     c.CreatedAt,
		"is_active":      c.IsActive,
	}
}

// domainError translates the escrow error taxonomy into HTTP responses, so
// callers can tell "goal not reached" apart from "not yet expired".
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidGoalAmount),
		errors.Is(err, domain.ErrInvalidDeadline),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrFieldTooLong),
		errors.Is(err, domain.ErrInvalidDonationAmount):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrCampaignNotFound),
		errors.Is(err, domain.ErrDonationNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrDuplicateCampaign),
		errors.Is(err, domain.ErrDuplicateDonation),
		errors.Is(err, domain.ErrCampaignNotActive),
		errors.Is(err, domain.ErrCampaignExpired),
		errors.Is(err, domain.ErrCampaignNotExpired),
		errors.Is(err, domain.ErrGoalNotReached),
		errors.Is(err, domain.ErrGoalReached),
		errors.Is(err, domain.ErrInvalidCampaign),
		errors.Is(err, domain.ErrCampaignHasDonations):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrOverflow),
		errors.Is(err, domain.ErrUnderflow),
		errors.Is(err, domain.ErrInsufficientFunds):
		a.error(w, http.StatusUnprocessableEntity, "unprocessable", err.Error())
	default:
		a.Log.Error().Err(err).Msg("escrow operation failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
