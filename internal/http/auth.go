package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"gmscreen/internal/domain"
	"gmscreen/internal/service"
)

const userIDContextKey = "userID"

// campaignListRoute is where the session gate sends authenticated visitors.
const campaignListRoute = "/api/campaigns"

func (h *Handler) issueToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(h.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		Issuer:    "gmscreen",
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (h *Handler) parseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth validates the bearer token and stores the user id in the
// request context. Requests without a valid identity never reach a handler.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		userID, err := h.parseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}

type registerRequest struct {
	Username         string `json:"username" binding:"required"`
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	RegisterPassword string `json:"register_password"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.RegisterPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidRegistrationPassword):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user *domain.User) {
	token, expiresAt, err := h.issueToken(user)
	if err != nil {
		h.logger.Errorf("issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(status, authResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      userToResponse(user),
	})
}

// session reports the identity status for the current request. Loaded is
// always true once the server answers; the client only has to look at
// signed_in.
func (h *Handler) session(c *gin.Context) {
	resp := gin.H{
		"loaded":    true,
		"signed_in": false,
	}

	token := bearerToken(c)
	if token != "" {
		if userID, err := h.parseToken(token); err == nil {
			if user, err := h.users.GetByID(c.Request.Context(), userID); err == nil {
				resp["signed_in"] = true
				resp["user"] = userToResponse(user)
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// sessionGate is the root page contract: authenticated visitors are sent to
// the campaign list, everyone else gets the sign-in affordance and no
// redirect. The redirect is a single 302 per request and carries no state,
// so repeated visits while signed in cannot compound.
func (h *Handler) sessionGate(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		if _, err := h.parseToken(token); err == nil {
			c.Redirect(http.StatusFound, campaignListRoute)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"signed_in": false,
		"sign_in": gin.H{
			"register": "/api/auth/register",
			"login":    "/api/auth/login",
		},
	})
}

type navigationEntry struct {
	Name    string `json:"name"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

// navigation is the shared shell contract: fixed entries with an active flag
// derived from the supplied path.
func (h *Handler) navigation(c *gin.Context) {
	path := c.Query("path")

	entries := []navigationEntry{
		{Name: "Campaigns", Href: "/campaigns"},
		{Name: "Characters", Href: "/characters"},
		{Name: "Journal", Href: "/journal"},
	}
	for i := range entries {
		entries[i].Current = strings.HasPrefix(path, entries[i].Href)
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
