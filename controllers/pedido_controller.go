// controllers/pedido_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PedidoController administra los pedidos y sus lineas de productos.
type PedidoController struct {
	DB *gorm.DB
}

func NewPedidoController(db *gorm.DB) *PedidoController {
	return &PedidoController{DB: db}
}

type lineaPedidoInput struct {
	ProductoID   uint    `json:"producto_id" binding:"required"`
	Cantidad     int64   `json:"cantidad"`
	PagoAsignado float64 `json:"pago_asignado"`
}

type pedidoInput struct {
	ClienteID          *uint              `json:"cliente_id"`
	Fecha              *models.FechaHora  `json:"fecha"`
	EncargadoPrincipal string             `json:"encargado_principal"`
	PagoRealizado      bool               `json:"pago_realizado"`
	Notas              string             `json:"notas"`
	Estado             string             `json:"estado"`
	Productos          []lineaPedidoInput `json:"productos"`
}

type pedidoConCliente struct {
	models.Pedido
	ClienteNombre string `json:"cliente_nombre"`
}

func (p *PedidoController) List(c *gin.Context) {
	var pedidos []models.Pedido
	if err := p.DB.Preload("Productos").Order("fecha DESC, id DESC").Find(&pedidos).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron obtener los pedidos", err)
		return
	}

	nombres, err := p.nombresClientes(pedidos)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron obtener los pedidos", err)
		return
	}

	out := make([]pedidoConCliente, 0, len(pedidos))
	for _, pd := range pedidos {
		fila := pedidoConCliente{Pedido: pd}
		if pd.ClienteID != nil {
			fila.ClienteNombre = nombres[*pd.ClienteID]
		}
		out = append(out, fila)
	}
	c.JSON(http.StatusOK, out)
}

func (p *PedidoController) nombresClientes(pedidos []models.Pedido) (map[uint]string, error) {
	ids := make([]uint, 0, len(pedidos))
	for _, pd := range pedidos {
		if pd.ClienteID != nil {
			ids = append(ids, *pd.ClienteID)
		}
	}
	nombres := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return nombres, nil
	}
	var clientes []models.Cliente
	if err := p.DB.Where("id IN ?", ids).Find(&clientes).Error; err != nil {
		return nil, err
	}
	for _, cl := range clientes {
		nombres[cl.ID] = cl.Nombre
	}
	return nombres, nil
}

func (p *PedidoController) Create(c *gin.Context) {
	var in pedidoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos del pedido no validos", err)
		return
	}

	pedido := models.Pedido{
		ClienteID:          in.ClienteID,
		EncargadoPrincipal: in.EncargadoPrincipal,
		PagoRealizado:      in.PagoRealizado,
		Notas:              in.Notas,
		Estado:             in.Estado,
		EstadoPago:         models.EstadoPendiente,
	}
	if pedido.Estado == "" {
		pedido.Estado = models.PedidoPendiente
	}
	if in.Fecha != nil {
		pedido.Fecha = *in.Fecha
	} else {
		pedido.Fecha = models.NuevaFechaHora(time.Now())
	}
	for _, linea := range in.Productos {
		cantidad := linea.Cantidad
		if cantidad <= 0 {
			cantidad = 1
		}
		pedido.Productos = append(pedido.Productos, models.PedidoProducto{
			ProductoID:   linea.ProductoID,
			Cantidad:     cantidad,
			PagoAsignado: linea.PagoAsignado,
		})
	}

	if err := p.DB.Create(&pedido).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo crear el pedido", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Pedido creado", "id": pedido.ID})
}

// Update reemplaza el pedido y, si vienen productos, sus lineas completas.
func (p *PedidoController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in pedidoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos del pedido no validos", err)
		return
	}

	err := p.DB.Transaction(func(tx *gorm.DB) error {
		var pedido models.Pedido
		if err := tx.First(&pedido, id).Error; err != nil {
			return err
		}

		upd := map[string]any{
			"cliente_id":          in.ClienteID,
			"encargado_principal": in.EncargadoPrincipal,
			"pago_realizado":      in.PagoRealizado,
			"notas":               in.Notas,
		}
		if in.Estado != "" {
			upd["estado"] = in.Estado
		}
		if in.Fecha != nil {
			upd["fecha"] = *in.Fecha
		}
		if err := tx.Model(&models.Pedido{}).Where("id = ?", id).Updates(upd).Error; err != nil {
			return err
		}

		if in.Productos == nil {
			return nil
		}
		if err := tx.Where("pedido_id = ?", id).Delete(&models.PedidoProducto{}).Error; err != nil {
			return err
		}
		for _, linea := range in.Productos {
			cantidad := linea.Cantidad
			if cantidad <= 0 {
				cantidad = 1
			}
			nueva := models.PedidoProducto{
				PedidoID:     id,
				ProductoID:   linea.ProductoID,
				Cantidad:     cantidad,
				PagoAsignado: linea.PagoAsignado,
			}
			if err := tx.Create(&nueva).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(c, http.StatusNotFound, "Pedido no encontrado", err)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "No se pudo actualizar el pedido", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Pedido actualizado"})
}

func (p *PedidoController) UpdateEstado(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Estado string `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Falta el estado", err)
		return
	}
	res := p.DB.Model(&models.Pedido{}).Where("id = ?", id).Update("estado", in.Estado)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo actualizar el estado", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Pedido no encontrado", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Estado del pedido actualizado"})
}

func (p *PedidoController) UpdatePago(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		PagoRealizado *bool `json:"pago_realizado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Falta pago_realizado", err)
		return
	}
	res := p.DB.Model(&models.Pedido{}).Where("id = ?", id).Update("pago_realizado", *in.PagoRealizado)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo actualizar el pago", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Pedido no encontrado", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Estado de pago actualizado"})
}

func (p *PedidoController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", id).Delete(&models.PedidoProducto{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Pedido{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(c, http.StatusNotFound, "Pedido no encontrado", err)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "No se pudo eliminar el pedido", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Pedido eliminado"})
}

// Pendientes devuelve los pedidos completados que todavia no tienen una
// venta asociada, listos para facturar.
func (p *PedidoController) Pendientes(c *gin.Context) {
	type fila struct {
		models.Pedido
		ClienteNombre string `json:"cliente_nombre"`
	}
	var filas []fila
	err := p.DB.Table("pedidos p").
		Select("p.*, COALESCE(c.nombre, '') AS cliente_nombre").
		Joins("LEFT JOIN clientes c ON c.id = p.cliente_id").
		Joins("LEFT JOIN ventas v ON v.pedido_id = p.id").
		Where("v.id IS NULL AND p.estado = ?", models.PedidoCompletado).
		Order("p.fecha DESC").
		Scan(&filas).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron obtener los pedidos pendientes", err)
		return
	}
	c.JSON(http.StatusOK, filas)
}
