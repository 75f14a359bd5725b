// controllers/venta_controller.go
package controllers

import (
	"net/http"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/ledger"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
)

// VentaController expone el registrador de ventas. La logica de totales,
// cuenta por cobrar automatica y cascada vive en el servicio.
type VentaController struct {
	Ventas *ledger.SalesService
}

func NewVentaController(ventas *ledger.SalesService) *VentaController {
	return &VentaController{Ventas: ventas}
}

func (v *VentaController) List(c *gin.Context) {
	filas, err := v.Ventas.List()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron obtener las ventas", err)
		return
	}
	c.JSON(http.StatusOK, filas)
}

type registrarVentaInput struct {
	PedidoID   *uint  `json:"pedido_id"`
	ProductoID *uint  `json:"producto_id"`
	ClienteID  *uint  `json:"cliente_id"`
	Cantidad   int64  `json:"cantidad"`
	EstadoPago string `json:"estado_pago"`
}

func (v *VentaController) Create(c *gin.Context) {
	var in registrarVentaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos de la venta no validos", err)
		return
	}

	res, err := v.Ventas.Record(ledger.RegistrarVentaInput{
		PedidoID:   in.PedidoID,
		ProductoID: in.ProductoID,
		ClienteID:  in.ClienteID,
		Cantidad:   in.Cantidad,
		EstadoPago: in.EstadoPago,
	})
	if err != nil {
		respondError(c, "No se pudo registrar la venta", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mensaje":                    "Venta registrada",
		"venta_id":                   res.Venta.ID,
		"cuenta_por_cobrar_generada": res.CuentaGenerada,
		"numero_factura":             res.NumeroFactura,
	})
}

func (v *VentaController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := v.Ventas.Delete(id); err != nil {
		respondError(c, "No se pudo eliminar la venta", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Venta eliminada"})
}
