package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"packmates/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// PetSummary es la vista mínima de una mascota que se adjunta a cada entrada.
type PetSummary struct {
	ID      string `json:"id"`
	PetType string `json:"petType"`
	Breed   string `json:"breed"`
}

// PetDirectory resuelve referencias de mascotas. Lo implementa el módulo pets
// (adaptado en router para evitar ciclos de imports).
type PetDirectory interface {
	PetSummary(ctx context.Context, petID string) (PetSummary, error)
}

func RegisterRoutes(r chi.Router, svc *Service, pets PetDirectory) {
	r.Route("/calendar", func(cr chi.Router) {
		cr.Post("/", createEntryHandler(svc, pets))
		cr.Get("/", listEntriesHandler(svc, pets, svc.List))

		// Rutas fijas antes de /{entryID}
		cr.Get("/stats/overview", statsHandler(svc))
		cr.Get("/matching/{requestID}", matchingHandler(svc, pets))
		cr.Get("/requests/all", listRequestsHandler(svc, pets))
		cr.Get("/availability/all", listAvailabilityHandler(svc, pets))
		cr.Get("/user/{userID}", listByUserHandler(svc, pets))
		cr.Get("/user/{userID}/ics", exportICSHandler(svc))

		cr.Get("/{entryID}", getEntryHandler(svc, pets))
		cr.Put("/{entryID}", updateEntryHandler(svc, pets))
		cr.Delete("/{entryID}", hardDeleteHandler(svc))
		cr.Patch("/{entryID}/soft-delete", softDeleteHandler(svc))
	})
}

// createEntryRequest es el cuerpo para crear una entrada del calendario.
type createEntryRequest struct {
	UserID                string    `json:"userId"`
	Type                  EntryType `json:"type" enums:"availability,request"`
	StartDate             string    `json:"startDate"` // YYYY-MM-DD o ISO-8601
	EndDate               string    `json:"endDate"`
	Status                *Status   `json:"status,omitempty" enums:"available,requested,booked,cancelled,in_review"`
	Pets                  []string  `json:"pets,omitempty"`
	Reason                *string   `json:"reason,omitempty"`
	NeighborDistanceRange *int      `json:"neighborDistanceRange,omitempty"`
}

// updateEntryRequest: punteros para PUT parcial, nil = no tocar.
type updateEntryRequest struct {
	Type                  *EntryType `json:"type,omitempty"`
	StartDate             *string    `json:"startDate,omitempty"`
	EndDate               *string    `json:"endDate,omitempty"`
	Status                *Status    `json:"status,omitempty"`
	Pets                  *[]string  `json:"pets,omitempty"`
	Reason                *string    `json:"reason,omitempty"`
	NeighborDistanceRange *int       `json:"neighborDistanceRange,omitempty"`
}

// entryResponse representa una entrada del calendario devuelta por la API.
type entryResponse struct {
	ID                    string       `json:"id"`
	UserID                string       `json:"userId"`
	Type                  EntryType    `json:"type"`
	StartDate             string       `json:"startDate"`
	EndDate               string       `json:"endDate"`
	Status                Status       `json:"status"`
	Pets                  []string     `json:"pets"`
	PetInfo               []PetSummary `json:"petInfo"`
	Reason                string       `json:"reason"`
	NeighborDistanceRange *int         `json:"neighborDistanceRange"`
	IsDeleted             bool         `json:"isDeleted"`
	CreatedAt             string       `json:"createdAt"`
	UpdatedAt             string       `json:"updatedAt"`
}

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   *int `json:"count,omitempty"`
}

type errorEnvelope struct {
	Success bool     `json:"success"`
	Message []string `json:"message"`
}

type deleteResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

type statsResponse struct {
	TotalEntries        int            `json:"totalEntries"`
	EntriesByType       map[string]int `json:"entriesByType"`
	EntriesByStatus     map[string]int `json:"entriesByStatus"`
	AvailabilityEntries int            `json:"availabilityEntries"`
	RequestEntries      int            `json:"requestEntries"`
}

// createEntryHandler godoc
// @Summary Crear entrada de calendario
// @Description Crea una disponibilidad o una solicitud. Las fechas solo-día se guardan como medianoche UTC. Una solicitud requiere `pets` y `reason`. Rechaza intervalos que se solapen con otra entrada viva del mismo usuario. Si `userId` no viene y hay claims, se usa el usuario autenticado.
// @Tags calendar
// @Accept json
// @Produce json
// @Param payload body createEntryRequest true "Datos de la entrada"
// @Success 200 {object} envelope{data=entryResponse}
// @Failure 400 {object} errorEnvelope "validación / solapamiento / fecha inválida"
// @Failure 500 {object} errorEnvelope
// @Router /calendar [post]
func createEntryHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, svc, errInvalidJSON)
			return
		}

		userID := strings.TrimSpace(req.UserID)
		if userID == "" {
			if claims, ok := middleware.GetClaims(r.Context()); ok {
				userID = claims.UserID
			}
		}

		e, err := svc.Create(r.Context(), CreateInput{
			UserID:                userID,
			Type:                  EntryType(strings.TrimSpace(string(req.Type))),
			StartDate:             req.StartDate,
			EndDate:               req.EndDate,
			Status:                req.Status,
			Pets:                  req.Pets,
			Reason:                req.Reason,
			NeighborDistanceRange: req.NeighborDistanceRange,
		})
		if err != nil {
			writeError(w, svc, err)
			return
		}

		writeJSON(w, http.StatusOK, envelope{Success: true, Data: toEntryResponse(r.Context(), pets, e)})
	}
}

// listEntriesHandler godoc
// @Summary Listar entradas de calendario
// @Description Lista entradas no borradas ordenadas por startDate. Filtros opcionales por usuario, tipo, estado, rango de fechas y distancia máxima.
// @Tags calendar
// @Produce json
// @Param userId query string false "ID del usuario"
// @Param type query string false "availability | request"
// @Param status query string false "available | requested | booked | cancelled | in_review"
// @Param startDate query string false "start_date >= (YYYY-MM-DD o ISO-8601)"
// @Param endDate query string false "end_date <= (YYYY-MM-DD o ISO-8601)"
// @Param neighborDistanceRange query int false "neighborDistanceRange <= (1-50)"
// @Param skip query int false "Offset"
// @Param limit query int false "Máximo de entradas (1-500). Por defecto 50"
// @Success 200 {object} envelope{data=[]entryResponse}
// @Failure 400 {object} errorEnvelope
// @Failure 500 {object} errorEnvelope
// @Router /calendar [get]
func listEntriesHandler(svc *Service, pets PetDirectory, list func(context.Context, Query) ([]Entry, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r)
		if err != nil {
			writeError(w, svc, err)
			return
		}

		items, total, err := list(r.Context(), q)
		if err != nil {
			writeError(w, svc, err)
			return
		}

		writeJSON(w, http.StatusOK, envelope{Success: true, Data: toEntryResponses(r.Context(), pets, items), Count: &total})
	}
}

// listRequestsHandler godoc
// @Summary Listar solicitudes
// @Tags calendar
// @Produce json
// @Param userId query string false "ID del usuario"
// @Param status query string false "available | requested | booked | cancelled | in_review"
// @Param startDate query string false "start_date >="
// @Param endDate query string false "end_date <="
// @Param neighborDistanceRange query int false "neighborDistanceRange <= (1-50)"
// @Param skip query int false "Offset"
// @Param limit query int false "Máximo de entradas (1-500)"
// @Success 200 {object} envelope{data=[]entryResponse}
// @Failure 400 {object} errorEnvelope
// @Router /calendar/requests/all [get]
func listRequestsHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return listEntriesHandler(svc, pets, svc.ListRequests)
}

// listAvailabilityHandler godoc
// @Summary Listar disponibilidades
// @Tags calendar
// @Produce json
// @Param userId query string false "ID del usuario"
// @Param status query string false "available | requested | booked | cancelled | in_review"
// @Param startDate query string false "start_date >="
// @Param endDate query string false "end_date <="
// @Param neighborDistanceRange query int false "neighborDistanceRange <= (1-50)"
// @Param skip query int false "Offset"
// @Param limit query int false "Máximo de entradas (1-500)"
// @Success 200 {object} envelope{data=[]entryResponse}
// @Failure 400 {object} errorEnvelope
// @Router /calendar/availability/all [get]
func listAvailabilityHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return listEntriesHandler(svc, pets, svc.ListAvailability)
}

// listByUserHandler godoc
// @Summary Listar entradas de un usuario
// @Tags calendar
// @Produce json
// @Param userID path string true "ID del usuario"
// @Success 200 {object} envelope{data=[]entryResponse}
// @Failure 400 {object} errorEnvelope
// @Router /calendar/user/{userID} [get]
func listByUserHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r)
		if err != nil {
			writeError(w, svc, err)
			return
		}

		items, total, err := svc.ListByUser(r.Context(), chi.URLParam(r, "userID"), q)
		if err != nil {
			writeError(w, svc, err)
			return
		}

		writeJSON(w, http.StatusOK, envelope{Success: true, Data: toEntryResponses(r.Context(), pets, items), Count: &total})
	}
}

// exportICSHandler godoc
// @Summary Exportar calendario en formato iCalendar
// @Tags calendar
// @Produce text/calendar
// @Param userID path string true "ID del usuario"
// @Success 200 {string} string "VCALENDAR"
// @Router /calendar/user/{userID}/ics [get]
func exportICSHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := svc.ExportICS(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

// getEntryHandler godoc
// @Summary Obtener entrada por ID
// @Tags calendar
// @Produce json
// @Param entryID path string true "ID de la entrada"
// @Success 200 {object} envelope{data=entryResponse}
// @Failure 404 {object} errorEnvelope "no existe o fue borrada"
// @Router /calendar/{entryID} [get]
func getEntryHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: toEntryResponse(r.Context(), pets, e)})
	}
}

// updateEntryHandler godoc
// @Summary Actualizar entrada (parcial)
// @Description Solo se validan los campos enviados. Si cambia alguna fecha se re-chequea el solapamiento con el intervalo resultante, excluyendo la propia entrada.
// @Tags calendar
// @Accept json
// @Produce json
// @Param entryID path string true "ID de la entrada"
// @Param payload body updateEntryRequest true "Campos a modificar"
// @Success 200 {object} envelope{data=entryResponse}
// @Failure 400 {object} errorEnvelope
// @Failure 404 {object} errorEnvelope
// @Router /calendar/{entryID} [put]
func updateEntryHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, svc, errInvalidJSON)
			return
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "entryID"), Patch{
			Type:                  req.Type,
			StartDate:             req.StartDate,
			EndDate:               req.EndDate,
			Status:                req.Status,
			Pets:                  req.Pets,
			Reason:                req.Reason,
			NeighborDistanceRange: req.NeighborDistanceRange,
		})
		if err != nil {
			writeError(w, svc, err)
			return
		}

		writeJSON(w, http.StatusOK, envelope{Success: true, Data: toEntryResponse(r.Context(), pets, e)})
	}
}

// hardDeleteHandler godoc
// @Summary Borrar entrada (físico)
// @Tags calendar
// @Produce json
// @Param entryID path string true "ID de la entrada"
// @Success 200 {object} envelope{data=deleteResult}
// @Router /calendar/{entryID} [delete]
func hardDeleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.HardDelete(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			writeError(w, svc, err)
			return
		}

		msg := "Deleted Successfully"
		if n == 0 {
			msg = "Record Not Found"
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: deleteResult{Message: msg, DeletedCount: n}})
	}
}

// softDeleteHandler godoc
// @Summary Borrado lógico
// @Description Marca isDeleted=true. Repetirlo sobre una entrada ya borrada es un no-op exitoso (deletedCount=0).
// @Tags calendar
// @Produce json
// @Param entryID path string true "ID de la entrada"
// @Success 200 {object} envelope{data=deleteResult}
// @Failure 404 {object} errorEnvelope
// @Router /calendar/{entryID}/soft-delete [patch]
func softDeleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		changed, err := svc.SoftDelete(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			writeError(w, svc, err)
			return
		}

		res := deleteResult{Message: "Calendar entry has been Deleted Successfully", DeletedCount: 1}
		if !changed {
			res = deleteResult{Message: "Calendar entry was already deleted", DeletedCount: 0}
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: res})
	}
}

// matchingHandler godoc
// @Summary Disponibilidades compatibles con una solicitud
// @Description Devuelve disponibilidades (status=available) cuyo intervalo toca el de la solicitud (bordes inclusivos), ordenadas por neighborDistanceRange ascendente; sin distancia al final.
// @Tags calendar
// @Produce json
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} envelope{data=[]entryResponse}
// @Failure 400 {object} errorEnvelope "la entrada no es una solicitud"
// @Failure 404 {object} errorEnvelope
// @Router /calendar/matching/{requestID} [get]
func matchingHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.FindMatches(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		n := len(items)
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: toEntryResponses(r.Context(), pets, items), Count: &n})
	}
}

// statsHandler godoc
// @Summary Estadísticas del calendario
// @Tags calendar
// @Produce json
// @Success 200 {object} envelope{data=statsResponse}
// @Router /calendar/stats/overview [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, svc, err)
			return
		}

		out := statsResponse{
			TotalEntries:        st.TotalEntries,
			EntriesByType:       map[string]int{},
			EntriesByStatus:     map[string]int{},
			AvailabilityEntries: st.AvailabilityEntries,
			RequestEntries:      st.RequestEntries,
		}
		for k, v := range st.EntriesByType {
			out.EntriesByType[string(k)] = v
		}
		for k, v := range st.EntriesByStatus {
			out.EntriesByStatus[string(k)] = v
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: out})
	}
}

var errInvalidJSON = &ValidationError{Messages: []string{"invalid json"}}

func parseQuery(r *http.Request) (Query, error) {
	v := r.URL.Query()
	ve := &ValidationError{}
	var q Query

	q.Filter.UserID = strings.TrimSpace(v.Get("userId"))

	if s := strings.TrimSpace(v.Get("type")); s != "" {
		t := EntryType(s)
		q.Filter.Type = &t
	}
	if s := strings.TrimSpace(v.Get("status")); s != "" {
		st := Status(s)
		q.Filter.Status = &st
	}
	if s := strings.TrimSpace(v.Get("startDate")); s != "" {
		t, err := NormalizeDate("startDate", s)
		if err != nil {
			ve.add("%s", err.Error())
		} else {
			q.Filter.StartFrom = &t
		}
	}
	if s := strings.TrimSpace(v.Get("endDate")); s != "" {
		t, err := NormalizeDate("endDate", s)
		if err != nil {
			ve.add("%s", err.Error())
		} else {
			q.Filter.EndUntil = &t
		}
	}
	if s := strings.TrimSpace(v.Get("neighborDistanceRange")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			ve.add("neighborDistanceRange must be an integer")
		} else {
			q.Filter.MaxDistance = &n
		}
	}
	if s := strings.TrimSpace(v.Get("skip")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			ve.add("skip must be an integer")
		} else {
			q.Skip = n
		}
	}
	if s := strings.TrimSpace(v.Get("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			ve.add("limit must be an integer")
		} else {
			q.Limit = n
		}
	}

	if !ve.empty() {
		return Query{}, ve
	}
	return q, nil
}

func toEntryResponse(ctx context.Context, pets PetDirectory, e Entry) entryResponse {
	petIDs := e.Pets
	if petIDs == nil {
		petIDs = []string{}
	}

	info := make([]PetSummary, 0, len(petIDs))
	if pets != nil {
		for _, id := range petIDs {
			ps, err := pets.PetSummary(ctx, id)
			if err != nil {
				// referencias huérfanas: se devuelven solo en "pets"
				continue
			}
			info = append(info, ps)
		}
	}

	return entryResponse{
		ID:                    e.ID,
		UserID:                e.UserID,
		Type:                  e.Type,
		StartDate:             FormatDate(e.StartDate),
		EndDate:               FormatDate(e.EndDate),
		Status:                e.Status,
		Pets:                  petIDs,
		PetInfo:               info,
		Reason:                e.Reason,
		NeighborDistanceRange: e.NeighborDistanceRange,
		IsDeleted:             e.IsDeleted,
		CreatedAt:             FormatDate(e.CreatedAt),
		UpdatedAt:             FormatDate(e.UpdatedAt),
	}
}

func toEntryResponses(ctx context.Context, pets PetDirectory, items []Entry) []entryResponse {
	out := make([]entryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEntryResponse(ctx, pets, e))
	}
	return out
}

// writeError traduce errores de dominio a status HTTP. Solo los errores de
// infraestructura terminan en 500.
func writeError(w http.ResponseWriter, svc *Service, err error) {
	var (
		ve  *ValidationError
		de  *InvalidDateError
		msg = []string{err.Error()}
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		msg = ve.Messages
	case errors.As(err, &de):
		status = http.StatusBadRequest
	case errors.Is(err, ErrOverlappingEntry), errors.Is(err, ErrWrongType):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	default:
		svc.log.Error("calendar request failed", map[string]any{"error": err.Error()})
	}

	writeJSON(w, status, errorEnvelope{Success: false, Message: msg})
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
