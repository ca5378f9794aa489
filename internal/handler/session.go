package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) registerSession(r *gin.Engine) {
	r.GET(LoginPath, h.loginForm)
	r.POST(LoginPath, h.login)
	r.POST("/logout", h.logout)
}

func (h *Handler) loginForm(c *gin.Context) {
	if isAdmin(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.html(c, http.StatusOK, "login.html", gin.H{"Title": "Acceso", "Error": ""})
}

func (h *Handler) login(c *gin.Context) {
	ok := h.auth.CheckPassword(c.PostForm("password"))
	h.metrics.Login(ok)
	if !ok {
		h.log.Warn().Str("client_ip", c.ClientIP()).Msg("admin login rejected")
		h.html(c, http.StatusUnauthorized, "login.html", gin.H{
			"Title": "Acceso",
			"Error": "Contraseña incorrecta.",
		})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.authCfg.CookieName, h.auth.Issue(), int(h.auth.TTL().Seconds()), "/", "", h.authCfg.SecureCookie, true)
	h.log.Info().Str("client_ip", c.ClientIP()).Msg("admin logged in")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSession(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.authCfg.CookieName, "", -1, "/", "", h.authCfg.SecureCookie, true)
}
