package save

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "gacha_roller/internal/api/dto/save"
	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
	"gacha_roller/pkg/req"
	"gacha_roller/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.StoreSaveService
}

type Handler struct {
	serv service.StoreSaveService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	rec, err := h.serv.Get(r.Context(), player)
	if err != nil {
		if errors.Is(err, model.ErrSaveNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var state dto.State
	if err := json.Unmarshal(rec.State, &state); err != nil {
		http.Error(w, "stored state is corrupted", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.Envelope{
		Version: rec.Version,
		Banned:  rec.Banned,
		Kicked:  rec.Kicked,
		State:   state,
	})
}

func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	payload, err := req.Decode[dto.Envelope](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stateRaw, err := json.Marshal(payload.State)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	banned, kicked, err := h.serv.Put(r.Context(), &model.SaveRecord{
		Player:  player,
		Version: payload.Version,
		State:   stateRaw,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.PutResponse{
		Banned: banned,
		Kicked: kicked,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	if err := h.serv.Delete(r.Context(), player); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusNoContent, nil)
}
