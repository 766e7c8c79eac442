package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/jsonapi"
	"github.com/a-h/medchat/models"
	"github.com/google/go-cmp/cmp"
)

func TestGetPost(t *testing.T) {
	var gotMsg, gotPath string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMsg = r.PostFormValue("msg")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hypertension is high blood pressure."))
	}))
	defer s.Close()

	answer, err := New(s.URL).GetPost(context.Background(), models.GetPostRequest{Msg: "What is hypertension?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Hypertension is high blood pressure." {
		t.Errorf("unexpected answer %q", answer)
	}
	if gotPath != "/get" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotMsg != "What is hypertension?" {
		t.Errorf("unexpected msg %q", gotMsg)
	}
}

func TestGetPostStatusError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing required form field: msg", http.StatusBadRequest)
	}))
	defer s.Close()

	_, err := New(s.URL).GetPost(context.Background(), models.GetPostRequest{Msg: "q"})
	var ise jsonapi.InvalidStatusError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}
	if ise.Status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", ise.Status)
	}
}

func TestContextPost(t *testing.T) {
	expected := models.ContextPostResponse{
		Results: []models.ContextDocument{
			{Text: "a", Source: "a.pdf", Score: 0.5, Recognized: true},
		},
	}
	var gotReq models.ContextPostRequest
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/context" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(expected)
	}))
	defer s.Close()

	actual, err := New(s.URL).ContextPost(context.Background(), models.ContextPostRequest{Text: "q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotReq.Text != "q" {
		t.Errorf("unexpected request text %q", gotReq.Text)
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Error(diff)
	}
}

func TestHealthGet(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer s.Close()

	resp, err := New(s.URL).HealthGet(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected ok, got %q", resp.Status)
	}
}

func TestInvalidBaseURL(t *testing.T) {
	if _, err := New("").GetPost(context.Background(), models.GetPostRequest{Msg: "q"}); err == nil {
		t.Error("expected an error for an empty base URL")
	}
}
