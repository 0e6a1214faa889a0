package users

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"userhub/internal/auth"
)

// Handler implements the user-management endpoints. Every mutation follows
// the same discipline: load the full list, mutate the copy, save it back.
// A failed save is logged and the prior state simply survives.
type Handler struct {
	store  Store
	tokens *auth.Service
	logger *zap.Logger
}

func NewHandler(store Store, tokens *auth.Service, logger *zap.Logger) *Handler {
	return &Handler{store: store, tokens: tokens, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	list := h.store.Load(r.Context())
	i, ok := FindByEmail(list, email)
	if !ok || !auth.PasswordMatches(req.Password, list[i].Password) {
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	u := list[i]

	token, err := h.tokens.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		h.logger.Error("issue token", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		},
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	list := h.store.Load(r.Context())
	total := len(list)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	data := make([]SafeUser, 0, end-start)
	for _, u := range list[start:end] {
		data = append(data, u.Safe())
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":       data,
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
	})
}

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Email == "" || req.Role == "" {
		writeMessage(w, http.StatusBadRequest, "name, email and role are required")
		return
	}
	if !req.Role.Valid() {
		writeMessage(w, http.StatusBadRequest, "role must be admin or user")
		return
	}
	if !auth.ValidateEmail(req.Email) {
		writeMessage(w, http.StatusBadRequest, "invalid email format")
		return
	}

	list := h.store.Load(r.Context())
	if _, taken := FindByEmail(list, req.Email); taken {
		writeMessage(w, http.StatusBadRequest, "a user with this email already exists")
		return
	}

	password := req.Password
	if password == "" {
		password = auth.DefaultPassword
	}
	u := User{
		ID:       NextID(list),
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: password,
	}
	list = append(list, u)
	h.save(r, list)

	writeJSON(w, http.StatusCreated, u.Safe())
}

type updateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list := h.store.Load(r.Context())
	i, ok := FindByID(list, id)
	if !ok {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	// Empty strings mean "not provided"; the field keeps its old value.
	if req.Email != "" {
		if !auth.ValidateEmail(req.Email) {
			writeMessage(w, http.StatusBadRequest, "invalid email format")
			return
		}
		// EmailTaken excludes this record, so a case-only rewrite of the
		// user's own email never collides with itself.
		if EmailTaken(list, req.Email, id) {
			writeMessage(w, http.StatusBadRequest, "email already in use")
			return
		}
	}
	if req.Role != "" && !req.Role.Valid() {
		writeMessage(w, http.StatusBadRequest, "role must be admin or user")
		return
	}
	if req.Name != "" {
		list[i].Name = req.Name
	}
	if req.Email != "" {
		list[i].Email = req.Email
	}
	if req.Role != "" {
		list[i].Role = req.Role
	}
	h.save(r, list)

	writeJSON(w, http.StatusOK, list[i].Safe())
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	list := h.store.Load(r.Context())
	i, ok := FindByID(list, id)
	if !ok {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}
	list = append(list[:i], list[i+1:]...)
	h.save(r, list)

	writeMessage(w, http.StatusOK, "user deleted successfully")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword is self-service: any authenticated user may change their
// own password after proving they know the current one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token required")
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		writeMessage(w, http.StatusBadRequest, "old and new password required")
		return
	}

	list := h.store.Load(r.Context())
	i, ok := FindByID(list, claims.UserID)
	if !ok {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}
	if !auth.PasswordMatches(req.OldPassword, list[i].Password) {
		writeMessage(w, http.StatusUnauthorized, "old password is incorrect")
		return
	}
	list[i].Password = req.NewPassword
	h.save(r, list)

	writeMessage(w, http.StatusOK, "password changed successfully")
}

func (h *Handler) save(r *http.Request, list []User) {
	if err := h.store.Save(r.Context(), list); err != nil {
		h.logger.Error("save users", zap.Error(err))
	}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
