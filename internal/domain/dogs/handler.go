package dogs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dogs-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Post("/", createDogHandler(svc))
		dr.Get("/", listDogsHandler(svc))

		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Patch("/{dogID}", updateDogHandler(svc))
		dr.Delete("/{dogID}", deleteDogHandler(svc))
	})
}

// createDogRequest documenta el body esperado; la validación real se hace sobre el JSON crudo
// para poder distinguir claves desconocidas y tipos incorrectos.
type createDogRequest struct {
	Name        string  `json:"name"`
	Breed       string  `json:"breed"`
	Age         float64 `json:"age"`
	Description string  `json:"description"`
}

// updateDogRequest: todos los campos son opcionales.
type updateDogRequest struct {
	Name        *string  `json:"name,omitempty"`
	Breed       *string  `json:"breed,omitempty"`
	Age         *float64 `json:"age,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// dogResponse representa un perro devuelto por la API.
type dogResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Breed       string  `json:"breed"`
	Age         float64 `json:"age"`
	Description string  `json:"description"`
}

type errorsResponse struct {
	Errors []string `json:"errors"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// createDogHandler godoc
// @Summary Crear perro
// @Description Crea un perro. Se aceptan solo las claves name, breed, age y description; las cuatro son obligatorias. Los errores se acumulan y se devuelven todos juntos.
// @Tags dogs
// @Accept json
// @Produce json
// @Param payload body createDogRequest true "Datos del perro"
// @Success 201 {object} dogResponse
// @Failure 400 {object} errorsResponse "claves inválidas o tipos incorrectos"
// @Failure 500 {object} messageResponse
// @Router /dogs [post]
func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, err := DecodeObject(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json"})
			return
		}

		in, err := ValidateCreate(obj)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorsResponse{Errors: ErrorMessages(err)})
			return
		}

		d, err := svc.Create(r.Context(), in)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

// listDogsHandler godoc
// @Summary Listar perros
// @Description Lista todos los perros ordenados por id ascendente.
// @Tags dogs
// @Produce json
// @Success 200 {array} dogResponse
// @Failure 500 {object} messageResponse
// @Router /dogs [get]
func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getDogHandler godoc
// @Summary Obtener perro
// @Description Devuelve un perro por id. Si no existe responde 204 sin cuerpo.
// @Tags dogs
// @Produce json
// @Param dogID path int true "ID del perro"
// @Success 200 {object} dogResponse
// @Success 204 "no existe"
// @Failure 400 {object} messageResponse "id should be a number"
// @Failure 500 {object} messageResponse "id numérico no entero"
// @Router /dogs/{dogID} [get]
func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(chi.URLParam(r, "dogID"))
		if errors.Is(err, ErrInvalidID) {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: ErrInvalidID.Error()})
			return
		}
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		d, err := svc.GetByID(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// updateDogHandler godoc
// @Summary Actualizar perro
// @Description Actualiza parcialmente un perro. Las claves desconocidas se reportan pero no impiden la actualización de los campos válidos; en ambos casos responde 201.
// @Tags dogs
// @Accept json
// @Produce json
// @Param dogID path int true "ID del perro"
// @Param payload body updateDogRequest true "Campos a modificar"
// @Success 201 {object} dogResponse
// @Success 201 {object} errorsResponse "se actualizó, pero había claves inválidas"
// @Failure 400 {object} messageResponse "invalid json / tipo incorrecto"
// @Failure 404 {object} messageResponse "dog not found"
// @Failure 500 {object} messageResponse
// @Router /dogs/{dogID} [patch]
func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, err := DecodeObject(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json"})
			return
		}

		// Las claves inválidas se juntan, pero el update se intenta igual.
		keyErrs := ValidateKeys(obj)

		// Sin chequeo previo del id: un id no numérico no puede existir en el store
		// y se resuelve como cualquier otro registro inexistente. Uno numérico pero
		// no entero lo rechaza el store y cae en el manejador genérico.
		raw := chi.URLParam(r, "dogID")
		id, err := ParseID(raw)
		if errors.Is(err, ErrInvalidID) {
			writeFailure(w, r, fmt.Errorf("%w: id %q", ErrNotFound, raw))
			return
		}
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		p, err := PatchFromObject(obj)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		d, err := svc.Update(r.Context(), id, p)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		if keyErrs != nil {
			writeJSON(w, http.StatusCreated, errorsResponse{Errors: ErrorMessages(keyErrs)})
			return
		}
		writeJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

// deleteDogHandler godoc
// @Summary Borrar perro
// @Description Borra un perro y devuelve su contenido previo. Si no existe responde 204 sin cuerpo.
// @Tags dogs
// @Produce json
// @Param dogID path int true "ID del perro"
// @Success 200 {object} dogResponse
// @Success 204 "no existe"
// @Failure 400 {object} messageResponse "id should be a number"
// @Failure 500 {object} messageResponse
// @Router /dogs/{dogID} [delete]
func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(chi.URLParam(r, "dogID"))
		if errors.Is(err, ErrInvalidID) {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: ErrInvalidID.Error()})
			return
		}
		// un id no entero no puede estar en el store: mismo resultado que uno inexistente
		if errors.Is(err, ErrIDNotInteger) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		d, err := svc.Delete(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// writeFailure es el mapeo genérico de errores que no tienen un status propio en la ruta.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: ErrNotFound.Error()})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
	default:
		middleware.InternalError(w, r, err)
	}
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		ID:          d.ID,
		Name:        d.Name,
		Breed:       d.Breed,
		Age:         d.Age,
		Description: d.Description,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
