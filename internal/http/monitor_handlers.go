package httpapi

import (
	"net/http"
	"strconv"

	"faculty-reporting-backend-go/internal/services"

	"github.com/gorilla/websocket"
)

func (s *Server) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	if identity.Role != services.RoleFMG {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	limit := 120
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 500 {
		limit = 500
	}
	items, err := services.LatestMetrics(s.DB, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// ActivitySocket streams report events and metric samples to faculty
// management dashboards. The credential rides the query string since
// browsers cannot set headers on websocket upgrades.
func (s *Server) ActivitySocket(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		WriteError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	token, claims, err := s.Tokens.ParseToken(raw)
	if err != nil || !token.Valid || claims["typ"] != "access" {
		WriteError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	identity, ok := services.IdentityFromClaims(claims)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	if identity.Role != services.RoleFMG {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.Monitor.Add(conn)
	defer func() {
		s.Monitor.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
