package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go-storefront/storage"
	"go-storefront/utils"
)

const maxUpdateWait = 60 * time.Second

// UpdatesController lets pages detect writes made elsewhere
type UpdatesController struct {
	Store        *storage.Shared
	PollInterval time.Duration
}

func NewUpdatesController(store *storage.Shared, pollInterval time.Duration) *UpdatesController {
	return &UpdatesController{Store: store, PollInterval: pollInterval}
}

type updatesResponse struct {
	LastUpdate int64 `json:"last_update"`
	HasNewData bool  `json:"has_new_data"`
}

// GetUpdates answers ?since=<ms>. With &wait=<duration> it holds the request
// until something changes or the wait elapses.
func (uc *UpdatesController) GetUpdates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var since int64
	if raw := q.Get("since"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Invalid since", nil)
			return
		}
		since = v
	}
	var wait time.Duration
	if raw := q.Get("wait"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			utils.JSONError(w, http.StatusBadRequest, "Invalid wait", nil)
			return
		}
		wait = min(d, maxUpdateWait)
	}

	if wait > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), wait)
		defer cancel()
		uc.Store.WaitForChange(ctx, since, uc.PollInterval)
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	last := uc.Store.LastUpdate(ctx)
	utils.JSON(w, http.StatusOK, updatesResponse{LastUpdate: last, HasNewData: last > since})
}
