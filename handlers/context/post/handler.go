package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/medchat/models"
	"github.com/a-h/medchat/retrieval"
	"github.com/a-h/respond"
)

type Retriever interface {
	Context(ctx context.Context, query string) ([]retrieval.Entry, error)
}

func New(log *slog.Logger, retriever Retriever) Handler {
	return Handler{
		log:       log,
		retriever: retriever,
	}
}

type Handler struct {
	log       *slog.Logger
	retriever Retriever
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.ContextPostRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}

	entries, err := h.retriever.Context(r.Context(), req.Text)
	if err != nil {
		h.log.Error("failed to retrieve context", slog.String("text", req.Text), slog.Any("error", err))
		respond.WithError(w, "failed to retrieve context", http.StatusInternalServerError)
		return
	}

	resp := models.ContextPostResponse{
		Results: make([]models.ContextDocument, 0, len(entries)),
	}
	for _, e := range entries {
		switch e := e.(type) {
		case retrieval.Chunk:
			resp.Results = append(resp.Results, models.ContextDocument{
				Text:       e.Text,
				Source:     e.Source,
				Score:      e.Score,
				Recognized: true,
			})
		case retrieval.Unrecognized:
			resp.Results = append(resp.Results, models.ContextDocument{
				Reason:   e.Reason,
				Metadata: e.Metadata,
			})
		}
	}

	respond.WithJSON(w, resp, http.StatusOK)
}
