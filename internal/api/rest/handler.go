package rest

import (
	"context"
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	app "avatar-ai/internal/application"
	"avatar-ai/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// uploadField поле multipart с фотографией
const uploadField = "file"

// AvatarGenerator операция приложения за POST /avatar
type AvatarGenerator interface {
	Generate(ctx context.Context, contentType string, data []byte) (*entity.AvatarResult, error)
}

type Handler struct {
	avatars   AvatarGenerator
	log       *logrus.Logger
	maxUpload int64
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}

func NewHandler(avatars AvatarGenerator, maxUpload int64, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{avatars: avatars, log: log, maxUpload: maxUpload}
}

// Routes возвращает API с CORS и логированием запросов.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /avatar", h.CreateAvatar)
	mux.HandleFunc("GET /health", h.Health)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})

	return requestLogger(h.log, c.Handler(mux))
}

// CreateAvatar принимает фото в multipart и отвечает аватаром в base64 PNG.
func (h *Handler) CreateAvatar(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		h.uploadError(w, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !app.IsImageContentType(contentType) {
		respondWithError(w, entity.MsgInvalidContentType, http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.uploadError(w, err)
		return
	}

	result, err := h.avatars.Generate(r.Context(), contentType, data)
	if errors.Is(err, entity.ErrInvalidContentType) {
		respondWithError(w, entity.MsgInvalidContentType, http.StatusBadRequest)
		return
	}
	if err != nil {
		// Generate падает только на типе содержимого, всё остальное идёт в тело ответа.
		result = entity.AvatarFailed(err.Error())
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, healthResponse{OK: true})
}

func (h *Handler) uploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respondWithError(w, entity.ErrUploadTooLarge.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, http.ErrMissingFile):
		respondWithError(w, "field \""+uploadField+"\" is required", http.StatusBadRequest)
	default:
		respondWithError(w, "invalid multipart upload", http.StatusBadRequest)
	}
}

func respondWithError(w http.ResponseWriter, detail string, status int) {
	respondWithJSON(w, status, errorResponse{Detail: detail})
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
