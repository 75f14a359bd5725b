// controllers/producto_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductoController administra el catalogo de servicios (gfx y vfx).
type ProductoController struct {
	DB *gorm.DB
}

func NewProductoController(db *gorm.DB) *ProductoController {
	return &ProductoController{DB: db}
}

func (p *ProductoController) List(c *gin.Context) {
	var productos []models.Producto
	if err := p.DB.Order("id ASC").Find(&productos).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron obtener los productos", err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

func (p *ProductoController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var producto models.Producto
	if err := p.DB.First(&producto, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Producto no encontrado", err)
		return
	}
	c.JSON(http.StatusOK, producto)
}

type productoInput struct {
	Nombre      string  `json:"nombre" binding:"required"`
	Tipo        string  `json:"tipo" binding:"required"`
	Precio      float64 `json:"precio"`
	Descripcion string  `json:"descripcion"`
}

func (in *productoInput) validar() (string, bool) {
	tipo := strings.ToLower(in.Tipo)
	if tipo != models.TipoGfx && tipo != models.TipoVfx {
		return "", false
	}
	return tipo, true
}

func (p *ProductoController) Create(c *gin.Context) {
	var in productoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos del producto no validos", err)
		return
	}
	tipo, ok := in.validar()
	if !ok {
		utils.Error(c, http.StatusBadRequest, "El tipo debe ser gfx o vfx", nil)
		return
	}

	producto := models.Producto{
		Nombre:      in.Nombre,
		Tipo:        tipo,
		Precio:      in.Precio,
		Descripcion: in.Descripcion,
	}
	if err := p.DB.Create(&producto).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo crear el producto", err)
		return
	}
	utils.Created(c, "Producto creado", producto)
}

func (p *ProductoController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in productoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos del producto no validos", err)
		return
	}
	tipo, ok := in.validar()
	if !ok {
		utils.Error(c, http.StatusBadRequest, "El tipo debe ser gfx o vfx", nil)
		return
	}

	res := p.DB.Model(&models.Producto{}).Where("id = ?", id).Updates(map[string]any{
		"nombre":      in.Nombre,
		"tipo":        tipo,
		"precio":      in.Precio,
		"descripcion": in.Descripcion,
	})
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo actualizar el producto", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Producto no encontrado", nil)
		return
	}
	utils.Success(c, "Producto actualizado", nil)
}

func (p *ProductoController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	res := p.DB.Delete(&models.Producto{}, id)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo eliminar el producto", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Producto no encontrado", nil)
		return
	}
	utils.Success(c, "Producto eliminado", nil)
}
