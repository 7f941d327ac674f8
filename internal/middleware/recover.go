package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
)

type messageResponse struct {
	Message string `json:"message"`
}

// Recover es el manejador genérico de último recurso: un panic en un handler
// termina en 500 con cuerpo JSON en vez de cortar la conexión.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			Logger(r.Context()).Error("panic recovered", map[string]any{
				"panic": fmt.Sprint(rec),
				"stack": string(debug.Stack()),
			})
			writeInternal(w)
		}()

		next.ServeHTTP(w, r)
	})
}

// InternalError registra err y responde 500 genérico; el detalle no sale al cliente.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	Logger(r.Context()).Error("unhandled error", map[string]any{"error": err})
	writeInternal(w)
}

func writeInternal(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(messageResponse{Message: http.StatusText(http.StatusInternalServerError)})
}
