package widgetstate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/2beens/trainingdash/internal/telemetry/metrics"
	"github.com/2beens/trainingdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type stateStore interface {
	Get(ctx context.Context, widget string) (State, error)
	Put(ctx context.Context, widget string, data json.RawMessage) (State, error)
	Delete(ctx context.Context, widget string) error
}

type Handler struct {
	store   stateStore
	metrics *metrics.Manager
}

func NewHandler(store stateStore, metrics *metrics.Manager) *Handler {
	return &Handler{
		store:   store,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/widgets/{name}/state", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-widget-state")
	r.HandleFunc("/widgets/{name}/state", handler.HandlePut).Methods("PUT", "OPTIONS").Name("put-widget-state")
	r.HandleFunc("/widgets/{name}/state", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-widget-state")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	widget := mux.Vars(r)["name"]
	state, err := handler.store.Get(r.Context(), widget)
	if err != nil {
		handler.writeError(w, "get", widget, err)
		return
	}
	pkg.WriteJSON(w, state, http.StatusOK)
}

func (handler *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	widget := mux.Vars(r)["name"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("put widget state [%s]: read body: %s", widget, err)
		http.Error(w, "error, failed to read body", http.StatusBadRequest)
		return
	}

	state, err := handler.store.Put(r.Context(), widget, body)
	if err != nil {
		handler.writeError(w, "put", widget, err)
		return
	}

	if handler.metrics != nil {
		handler.metrics.CounterWidgetStateWrites.Inc()
	}
	log.Debugf("widget state stored: [%s]", widget)
	pkg.WriteJSON(w, state, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	widget := mux.Vars(r)["name"]
	if err := handler.store.Delete(r.Context(), widget); err != nil {
		handler.writeError(w, "delete", widget, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) writeError(w http.ResponseWriter, op, widget string, err error) {
	switch {
	case errors.Is(err, ErrStateNotFound):
		http.Error(w, "error, widget state not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidWidget), errors.Is(err, ErrInvalidState):
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s widget state [%s]: %s", op, widget, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
