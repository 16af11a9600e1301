package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"faculty-reporting-backend-go/internal/models"
	"faculty-reporting-backend-go/internal/services"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Stream   string `json:"stream"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Stream   *string `json:"stream"`
}

type TokenResponse struct {
	Token        string  `json:"token"`
	RefreshToken string  `json:"refreshToken"`
	ExpiresAt    int64   `json:"expiresAt"`
	User         UserDTO `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.Role == "" {
		WriteError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	role, ok := services.ParseRole(req.Role)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid role")
		return
	}
	stream, ok := services.ParseStream(strings.TrimSpace(req.Stream))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid stream")
		return
	}
	var exists bool
	if err := s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username); err != nil {
		WriteServiceError(w, err)
		return
	}
	if exists {
		WriteError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	hashed, err := s.Tokens.HashPassword(req.Password)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	var streamValue interface{}
	if stream != services.StreamNone {
		streamValue = string(stream)
	}
	var emailValue interface{}
	if strings.TrimSpace(req.Email) != "" {
		emailValue = strings.TrimSpace(req.Email)
	}
	row := struct {
		ID       int64   `db:"id"`
		Username string  `db:"username"`
		Role     string  `db:"role"`
		Stream   *string `db:"stream"`
	}{}
	err = s.DB.Get(&row, `
INSERT INTO users (username, password, role, stream, email)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, username, role, stream
`, username, hashed, string(role), streamValue, emailValue)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"msg": "User registered successfully",
		"user": UserDTO{
			ID:       row.ID,
			Username: row.Username,
			Role:     row.Role,
			Stream:   row.Stream,
		},
	})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	row := models.User{}
	if err := s.DB.Get(&row, `SELECT * FROM users WHERE username = $1`, req.Username); err != nil {
		WriteError(w, http.StatusBadRequest, "User not found")
		return
	}
	if !s.Tokens.VerifyPassword(req.Password, row.Password) {
		WriteError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	identity, err := identityFromRow(row.ID, row.Role, row.Stream)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeTokenResponse(w, identity, row.Username, row.Stream)
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	token, claims, err := s.Tokens.ParseToken(req.RefreshToken)
	if err != nil || !token.Valid || claims["typ"] != "refresh" {
		WriteError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		WriteError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	row := struct {
		ID       int64   `db:"id"`
		Username string  `db:"username"`
		Role     string  `db:"role"`
		Stream   *string `db:"stream"`
	}{}
	if err := s.DB.Get(&row, `SELECT id, username, role, stream FROM users WHERE id = $1`, userID); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	identity, err := identityFromRow(row.ID, row.Role, row.Stream)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeTokenResponse(w, identity, row.Username, row.Stream)
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	row := models.User{}
	if err := s.DB.Get(&row, `SELECT * FROM users WHERE id = $1`, identity.ID); err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":       row.ID,
		"username": row.Username,
		"role":     row.Role,
		"stream":   row.Stream,
		"email":    row.Email,
	})
}

func (s *Server) writeTokenResponse(w http.ResponseWriter, identity services.Identity, username string, stream *string) {
	access, exp, err := s.Tokens.CreateAccessToken(identity)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	refresh, err := s.Tokens.CreateRefreshToken(identity.ID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{
		Token:        access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
		User: UserDTO{
			ID:       identity.ID,
			Username: username,
			Role:     string(identity.Role),
			Stream:   stream,
		},
	})
}

func identityFromRow(id int64, rawRole string, rawStream *string) (services.Identity, error) {
	role, ok := services.ParseRole(rawRole)
	if !ok {
		return services.Identity{}, services.ErrBadRequest("Invalid role")
	}
	streamStr := ""
	if rawStream != nil {
		streamStr = *rawStream
	}
	stream, ok := services.ParseStream(streamStr)
	if !ok {
		return services.Identity{}, services.ErrBadRequest("Invalid stream")
	}
	return services.Identity{ID: id, Role: role, Stream: stream}, nil
}
