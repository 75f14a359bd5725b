// controllers/auth_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/config"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AuthController autentica contra las credenciales del entorno. No hay
// tabla de usuarios: solo existen el administrador y el empleado.
type AuthController struct {
	Cfg *config.Config
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{Cfg: cfg}
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos de login incompletos", err)
		return
	}

	var role, nombre string
	switch {
	case in.Email == a.Cfg.AdminEmail && in.Password == a.Cfg.AdminPassword:
		role, nombre = "admin", "Administrador"
	case in.Email == a.Cfg.EmployeeEmail && in.Password == a.Cfg.EmployeePassword:
		role, nombre = "employee", "Empleado"
	default:
		log.Warn().Str("email", in.Email).Msg("login rechazado")
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Email o contraseña incorrectos",
		})
		return
	}

	token, err := utils.GenerateToken(in.Email, nombre, role)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo generar el token", err)
		return
	}

	log.Info().Str("email", in.Email).Str("role", role).Msg("login correcto")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"name":       nombre,
			"email":      in.Email,
			"role":       role,
			"created_at": time.Now().Format("2006-01-02 15:04:05"),
		},
		"token": token,
	})
}

// Verify corre detras del middleware de auth: si llego hasta aqui, el
// token es valido.
func (a *AuthController) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"email":  c.GetString("email"),
			"nombre": c.GetString("nombre"),
			"role":   c.GetString("role"),
		},
	})
}
