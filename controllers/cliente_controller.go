// controllers/cliente_controller.go
package controllers

import (
	"net/http"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClienteController struct {
	DB *gorm.DB
}

func NewClienteController(db *gorm.DB) *ClienteController {
	return &ClienteController{DB: db}
}

func (cl *ClienteController) List(c *gin.Context) {
	var clientes []models.Cliente
	if err := cl.DB.Order("nombre ASC").Find(&clientes).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron obtener los clientes", err)
		return
	}
	c.JSON(http.StatusOK, clientes)
}

func (cl *ClienteController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var cliente models.Cliente
	if err := cl.DB.First(&cliente, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Cliente no encontrado", err)
		return
	}
	c.JSON(http.StatusOK, cliente)
}

type clienteInput struct {
	Nombre    string `json:"nombre" binding:"required"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Notas     string `json:"notas"`
}

func (cl *ClienteController) Create(c *gin.Context) {
	var in clienteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos del cliente no validos", err)
		return
	}
	cliente := models.Cliente{
		Nombre:    in.Nombre,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Notas:     in.Notas,
	}
	if err := cl.DB.Create(&cliente).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo crear el cliente", err)
		return
	}
	utils.Created(c, "Cliente creado", cliente)
}

func (cl *ClienteController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in clienteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos del cliente no validos", err)
		return
	}
	res := cl.DB.Model(&models.Cliente{}).Where("id = ?", id).Updates(map[string]any{
		"nombre":    in.Nombre,
		"email":     in.Email,
		"telefono":  in.Telefono,
		"direccion": in.Direccion,
		"notas":     in.Notas,
	})
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo actualizar el cliente", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Cliente no encontrado", nil)
		return
	}
	utils.Success(c, "Cliente actualizado", nil)
}

func (cl *ClienteController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	res := cl.DB.Delete(&models.Cliente{}, id)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo eliminar el cliente", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Cliente no encontrado", nil)
		return
	}
	utils.Success(c, "Cliente eliminado", nil)
}
