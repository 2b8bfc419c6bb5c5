package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mkravets/link-shortener/internal/config"
	"github.com/mkravets/link-shortener/internal/middleware"
	"github.com/mkravets/link-shortener/internal/models"
	"github.com/mkravets/link-shortener/internal/services"
	"github.com/mkravets/link-shortener/internal/storage"
	"github.com/mkravets/link-shortener/internal/util"
)

type (
	apiRequest struct {
		URL string `json:"url"`
	}
	renameRequest struct {
		NewShortURL string `json:"new_short_url"`
	}
	apiResponse struct {
		Result string `json:"result,omitempty"`
		Error  string `json:"error,omitempty"`
	}
)

var (
	Resolver *services.Resolver
	Links    *services.Links
)

// statusForError maps the service error kinds onto transport status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInactiveLink):
		return http.StatusGone
	case errors.Is(err, models.ErrInvalidURL), errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func PingDatabase(w http.ResponseWriter, r *http.Request) {
	handler, ok := Resolver.Store.(*storage.DatabaseStore)
	if !ok {
		http.Error(w, "Database connection failed.", http.StatusInternalServerError)
		return
	}

	if err := handler.DB.PingContext(r.Context()); err != nil {
		http.Error(w, "Database connection failed.", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func Shorten(w http.ResponseWriter, req *http.Request) {
	bodyURL, err := parseURLFromBody(req.Body)
	if err != nil {
		http.Error(w, "You must provide a valid URL.", http.StatusBadRequest)
		return
	}

	link, err := Links.Create(req.Context(), middleware.GetUserID(req.Context()), bodyURL)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	_, err = w.Write([]byte(config.Current.BaseURL + "/" + link.ShortURL))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func ShortenAPI(w http.ResponseWriter, req *http.Request) {
	var requestJSON apiRequest
	if err := json.NewDecoder(req.Body).Decode(&requestJSON); err != nil {
		util.JSONResponse(w, apiResponse{Error: "Invalid request format."}, http.StatusBadRequest)
		return
	}

	link, err := Links.Create(req.Context(), middleware.GetUserID(req.Context()), requestJSON.URL)
	if err != nil {
		util.JSONResponse(w, apiResponse{Error: err.Error()}, statusForError(err))
		return
	}

	util.JSONResponse(w, apiResponse{Result: config.Current.BaseURL + "/" + link.ShortURL}, http.StatusCreated)
}

func Expand(w http.ResponseWriter, req *http.Request) {
	shortURL := strings.TrimPrefix(req.URL.Path, "/")
	originalURL, err := Resolver.Resolve(req.Context(), shortURL)
	if err != nil {
		if errors.Is(err, models.ErrInactiveLink) {
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		http.Error(w, fmt.Sprintf("Invalid ID: %s", shortURL), http.StatusNotFound)
		return
	}

	w.Header().Set("Location", originalURL)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

func APIUserURLs(w http.ResponseWriter, req *http.Request) {
	ownerID := middleware.GetUserID(req.Context())

	var links []models.Link
	var err error
	if req.URL.Query().Get("active") == "true" {
		links, err = Links.FindAllActiveByOwner(req.Context(), ownerID)
	} else {
		links, err = Links.FindAllByOwner(req.Context(), ownerID)
	}
	if err != nil {
		util.JSONResponse(w, apiResponse{Error: err.Error()}, statusForError(err))
		return
	}

	status := http.StatusOK
	if len(links) == 0 {
		status = http.StatusNoContent
	}
	util.JSONResponse(w, links, status)
}

func RenameAPI(w http.ResponseWriter, req *http.Request) {
	var requestJSON renameRequest
	if err := json.NewDecoder(req.Body).Decode(&requestJSON); err != nil {
		util.JSONResponse(w, apiResponse{Error: "Invalid request format."}, http.StatusBadRequest)
		return
	}

	link, err := Links.Rename(req.Context(), chi.URLParam(req, "id"),
		requestJSON.NewShortURL, middleware.GetUserID(req.Context()))
	if err != nil {
		util.JSONResponse(w, apiResponse{Error: err.Error()}, statusForError(err))
		return
	}

	util.JSONResponse(w, apiResponse{Result: config.Current.BaseURL + "/" + link.ShortURL}, http.StatusOK)
}

func DeleteUserURLs(w http.ResponseWriter, req *http.Request) {
	var shortURLs []string
	if err := json.NewDecoder(req.Body).Decode(&shortURLs); err != nil {
		util.JSONResponse(w, apiResponse{Error: "Invalid request format."}, http.StatusBadRequest)
		return
	}

	err := services.BatchDelete(Links, req.Context(), middleware.GetUserID(req.Context()), shortURLs)
	if err != nil {
		util.JSONResponse(w, apiResponse{Error: err.Error()}, statusForError(err))
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func parseURLFromBody(body io.ReadCloser) (string, error) {
	defer body.Close()
	bodyData, err := io.ReadAll(body)
	if err != nil || len(bodyData) == 0 {
		return "", errors.New("empty or invalid body")
	}
	return util.ParseURL(string(bodyData))
}
