package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avstrong/occupancy/internal/occupancy"
	"github.com/avstrong/occupancy/internal/rooms"
)

var ErrPanic = errors.New("panic in handler")

type errorResponse struct {
	Error string `json:"error"`
}

type occupiedResponse struct {
	Room     string `json:"room"`
	Date     string `json:"date"`
	Occupied bool   `json:"occupied"`
}

type occupancyResponse struct {
	Room       string  `json:"room,omitempty"`
	Rooms      int     `json:"rooms,omitempty"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Percentage float64 `json:"percentage"`
}

type totalOccupancyRequest struct {
	Rooms     json.RawMessage `json:"rooms"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

// writeError maps domain errors to status codes. It reports false when err is nil.
func (s *Server) writeError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	if paramErr := occupancy.IsInvalidParameter(err); paramErr != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: paramErr.Error()})

		return true
	}

	if inputErr := rooms.IsInputError(err); inputErr != nil {
		s.writeJSON(w, http.StatusBadRequest, inputErr.Fields())

		return true
	}

	switch {
	case errors.Is(err, rooms.ErrRoomNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, rooms.ErrRoomExists):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		s.l.LogErrorf("Request failed: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}

	return true
}

func parseDates(from, to string) (time.Time, time.Time, error) {
	start, err := occupancy.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, occupancy.ErrDatesExpected
	}

	end, err := occupancy.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, occupancy.ErrDatesExpected
	}

	return start, end, nil
}

// parseRoomNames accepts only a JSON array of strings.
func parseRoomNames(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, occupancy.ErrRoomsExpected
	}

	names := []string{}
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, occupancy.ErrRoomsExpected
	}

	return names, nil
}

func (s *Server) listRoomsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.rManager.ListRooms(r.Context())
	if s.writeError(w, err) {
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) registerRoomHandler(w http.ResponseWriter, r *http.Request) {
	var input rooms.RegisterInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	room, err := s.rManager.RegisterRoom(r.Context(), &input)
	if s.writeError(w, err) {
		return
	}

	s.writeJSON(w, http.StatusCreated, room)
}

func (s *Server) occupiedHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	date, err := occupancy.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		s.writeError(w, occupancy.ErrDateExpected)

		return
	}

	occupied, err := s.rManager.Occupied(r.Context(), name, date)
	if s.writeError(w, err) {
		return
	}

	s.writeJSON(w, http.StatusOK, occupiedResponse{
		Room:     name,
		Date:     date.Format(time.DateOnly),
		Occupied: occupied,
	})
}

func (s *Server) occupancyHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	q := r.URL.Query()

	start, end, err := parseDates(q.Get("startDate"), q.Get("endDate"))
	if s.writeError(w, err) {
		return
	}

	percentage, err := s.rManager.Occupancy(r.Context(), name, start, end)
	if s.writeError(w, err) {
		return
	}

	s.writeJSON(w, http.StatusOK, occupancyResponse{
		Room:       name,
		StartDate:  start.Format(time.DateOnly),
		EndDate:    end.Format(time.DateOnly),
		Percentage: percentage,
	})
}

func (s *Server) totalOccupancyHandler(w http.ResponseWriter, r *http.Request) {
	var req totalOccupancyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	names, err := parseRoomNames(req.Rooms)
	if s.writeError(w, err) {
		return
	}

	start, end, err := parseDates(req.StartDate, req.EndDate)
	if s.writeError(w, err) {
		return
	}

	percentage, err := s.rManager.TotalOccupancy(r.Context(), names, start, end)
	if s.writeError(w, err) {
		return
	}

	s.writeJSON(w, http.StatusOK, occupancyResponse{
		Rooms:      len(names),
		StartDate:  start.Format(time.DateOnly),
		EndDate:    end.Format(time.DateOnly),
		Percentage: percentage,
	})
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	handle := func(pattern string, h http.HandlerFunc) {
		r.Handle(pattern, s.applyMiddlewares(h, s.loggerMiddleware(), s.recoverMiddleware()))
	}

	handle("GET /api/rooms/v1", s.listRoomsHandler)
	handle("POST /api/rooms/v1", s.registerRoomHandler)
	handle("GET /api/rooms/v1/{name}/occupied", s.occupiedHandler)
	handle("GET /api/rooms/v1/{name}/occupancy", s.occupancyHandler)
	handle("POST /api/occupancy/v1", s.totalOccupancyHandler)
	handle(fmt.Sprintf("GET %s", s.conf.LivenessEndpoint), s.livenessHandler)
}
