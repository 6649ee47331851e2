package event

import (
	"errors"
	"net/http"
	"strconv"

	dto "gacha_roller/internal/api/dto/event"
	"gacha_roller/internal/converter"
	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
	"gacha_roller/pkg/req"
	"gacha_roller/pkg/resp"

	"github.com/go-chi/chi/v5"
)

const defaultListLimit = 50

type HandlerDeps struct {
	Serv service.StoreEventService
}

type Handler struct {
	serv service.StoreEventService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.Record](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.serv.Publish(r.Context(), converter.ToActiveEvent(payload))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToEventRecord(*created))
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	limit := uint64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	events, err := h.serv.ListActive(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	records := make([]dto.Record, 0, len(events))
	for _, ev := range events {
		records = append(records, converter.ToEventRecord(ev))
	}

	resp.WriteJSONResponse(w, http.StatusOK, records)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	ev, err := h.serv.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToEventRecord(*ev))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	if err := h.serv.Delete(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusNoContent, nil)
}
