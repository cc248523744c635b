package res

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse тело ответа с ошибкой. Error: короткое сообщение для пользователя.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	ErrorCode int    `json:"-"`
}

// JsonResponse сериализует data в JSON и пишет его с указанным статусом.
func JsonResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
