// controllers/cobrar_controller.go
package controllers

import (
	"net/http"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/ledger"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
)

// CobrarController expone el ledger de cuentas por cobrar.
type CobrarController struct {
	Cuentas *ledger.ReceivableService
}

func NewCobrarController(cuentas *ledger.ReceivableService) *CobrarController {
	return &CobrarController{Cuentas: cuentas}
}

func (ct *CobrarController) List(c *gin.Context) {
	filas, err := ct.Cuentas.ListOpen()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron obtener las cuentas por cobrar", err)
		return
	}
	c.JSON(http.StatusOK, filas)
}

type crearCobrarInput struct {
	ClienteID        *uint        `json:"cliente_id"`
	PedidoID         *uint        `json:"pedido_id"`
	Monto            float64      `json:"monto" binding:"required"`
	MontoPagado      float64      `json:"monto_pagado"`
	FechaVencimiento models.Fecha `json:"fecha_vencimiento" binding:"required"`
	Notas            string       `json:"notas"`
}

// Create registra una cuenta manual. El numero de factura lo asigna el
// ledger a partir del ID de la cuenta; no se acepta del cliente.
func (ct *CobrarController) Create(c *gin.Context) {
	var in crearCobrarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos de la cuenta no validos", err)
		return
	}

	cuenta, err := ct.Cuentas.Open(ledger.OpenReceivableInput{
		ClienteID:        in.ClienteID,
		PedidoID:         in.PedidoID,
		Monto:            in.Monto,
		MontoPagado:      in.MontoPagado,
		FechaVencimiento: in.FechaVencimiento.Time,
		Notas:            in.Notas,
	})
	if err != nil {
		respondError(c, "No se pudo crear la cuenta por cobrar", err)
		return
	}
	utils.Created(c, "Cuenta por cobrar creada", cuenta)
}

type actualizarCobrarInput struct {
	ClienteID        *uint         `json:"cliente_id"`
	PedidoID         *uint         `json:"pedido_id"`
	Monto            float64       `json:"monto"`
	MontoPagado      *float64      `json:"monto_pagado"`
	FechaVencimiento *models.Fecha `json:"fecha_vencimiento"`
	Notas            string        `json:"notas"`
}

// Update tiene dos modos, como el frontend lo usa: si el body trae solo
// monto_pagado es un abono y pasa por el camino de pagos (con cascada);
// si trae el resto de campos es una edicion completa sin cascada.
func (ct *CobrarController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in actualizarCobrarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos de la cuenta no validos", err)
		return
	}

	if in.MontoPagado != nil && in.Monto == 0 && in.FechaVencimiento == nil {
		res, err := ct.Cuentas.ApplyPayment(id, *in.MontoPagado)
		if err != nil {
			respondError(c, "No se pudo registrar el pago", err)
			return
		}
		utils.Success(c, "Pago registrado", res)
		return
	}

	if in.FechaVencimiento == nil {
		utils.Error(c, http.StatusBadRequest, "Falta la fecha de vencimiento", nil)
		return
	}
	var montoPagado float64
	if in.MontoPagado != nil {
		montoPagado = *in.MontoPagado
	}
	cuenta, err := ct.Cuentas.Update(id, ledger.ActualizarCobrarInput{
		ClienteID:        in.ClienteID,
		PedidoID:         in.PedidoID,
		Monto:            in.Monto,
		MontoPagado:      montoPagado,
		FechaVencimiento: in.FechaVencimiento.Time,
		Notas:            in.Notas,
	})
	if err != nil {
		respondError(c, "No se pudo actualizar la cuenta", err)
		return
	}
	utils.Success(c, "Cuenta por cobrar actualizada", cuenta)
}

// MarcarPagado salda la cuenta completa y propaga el pago a la venta y
// el pedido vinculados.
func (ct *CobrarController) MarcarPagado(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	res, err := ct.Cuentas.MarkPaid(id)
	if err != nil {
		respondError(c, "No se pudo marcar la cuenta como pagada", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Cuenta marcada como pagada",
		"cuenta":  res.Cuenta,
		"cascada": res.Cascada,
	})
}

func (ct *CobrarController) Stats(c *gin.Context) {
	st, err := ct.Cuentas.Stats()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron calcular las estadisticas", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (ct *CobrarController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ct.Cuentas.Delete(id); err != nil {
		respondError(c, "No se pudo eliminar la cuenta", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cuenta por cobrar eliminada"})
}

func (ct *CobrarController) DeleteAll(c *gin.Context) {
	eliminadas, err := ct.Cuentas.DeleteAll()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron eliminar las cuentas", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cuentas por cobrar eliminadas", "eliminadas": eliminadas})
}
