package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login apre la sessione del portale.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	var user models.Utente
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenziali non valide"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenziali non valide"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("ruolo", string(user.Ruolo))
	if err := sess.Save(); err != nil {
		h.internalError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"detail": "sessione chiusa"})
}

// CreaToken scambia le credenziali con un bearer token per /api/v1.
func (h *Handler) CreaToken(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}

	var user models.Utente
	if err := h.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenziali non valide"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenziali non valide"})
		return
	}

	token := models.ApiToken{
		Token:    uuid.NewString(),
		UtenteID: user.ID,
	}
	if err := h.DB.Create(&token).Error; err != nil {
		h.internalError(c, "crea token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token.Token})
}
