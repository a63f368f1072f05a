package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

// RequireAuth protegge le rotte del portale: senza sessione valida la
// risposta è un 401 JSON.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if sess.Get("user_id") == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "autenticazione richiesta"})
			return
		}
		c.Next()
	}
}

// RequireRuolo limita la rotta ai ruoli indicati.
func RequireRuolo(ruoli ...models.Ruolo) gin.HandlerFunc {
	ruoloSet := map[models.Ruolo]struct{}{}
	for _, r := range ruoli {
		ruoloSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		sess := sessions.Default(c)
		ruoloVal := sess.Get("ruolo")
		ruoloStr, ok := ruoloVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "autenticazione richiesta"})
			return
		}
		ruolo := models.Ruolo(ruoloStr)

		if _, ok := ruoloSet[ruolo]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permessi insufficienti"})
			return
		}
		c.Next()
	}
}
