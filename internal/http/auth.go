package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taaza-khabar/internal/service"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// bindCredentials writes the 400 response itself and reports false when the
// body is unusable. A missing body, invalid JSON, null and {} all count as no
// data.
func bindCredentials(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "No data provided")
		return req, false
	}
	if fields, _ := jsonObject(body); len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "No data provided")
		return req, false
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(c, http.StatusBadRequest, "No data provided")
		return req, false
	}
	if req.Username == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Username and password required")
		return req, false
	}
	return req, true
}

func (h *Handler) register(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			// a conflict keeps the 200 status
			respondError(c, http.StatusOK, "Username already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondSuccess(c, "Registration successful")
}

func (h *Handler) login(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusOK, "Invalid credentials")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.sessions.Start(c, user.Username); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondSuccess(c, "Login successful")
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.End(c); err != nil {
		h.opts.Logger.Warnf("end session: %v", err)
	}
	respondSuccess(c, "Logged out")
}
