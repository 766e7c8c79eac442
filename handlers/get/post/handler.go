package post

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/medchat/answer"
)

// ErrorMessage is returned, with a 200 status, whenever an answer can't be
// produced.
const ErrorMessage = "Error processing your request."

const maxFormMemory = 1 << 20

type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

func New(log *slog.Logger, answerer Answerer) Handler {
	return Handler{
		log:      log,
		answerer: answerer,
	}
}

type Handler struct {
	log      *slog.Logger
	answerer Answerer
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.log.Warn("failed to parse form", slog.Any("error", err))
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}
	if !r.PostForm.Has("msg") {
		http.Error(w, "missing required form field: msg", http.StatusBadRequest)
		return
	}
	msg := r.PostForm.Get("msg")
	h.log.Info("query received", slog.String("msg", msg))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	text, err := h.answerer.Answer(r.Context(), msg)
	if err != nil {
		h.log.Error("failed to answer query",
			slog.String("msg", msg),
			slog.String("kind", answer.Kind(err)),
			slog.Any("error", err))
		_, _ = io.WriteString(w, ErrorMessage)
		return
	}
	h.log.Info("answer generated", slog.String("msg", msg), slog.String("answer", text))
	_, _ = io.WriteString(w, text)
}
