// controllers/pagar_controller.go
package controllers

import (
	"net/http"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/ledger"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
)

// PagarController expone el ledger de cuentas por pagar.
type PagarController struct {
	Cuentas *ledger.PayableService
}

func NewPagarController(cuentas *ledger.PayableService) *PagarController {
	return &PagarController{Cuentas: cuentas}
}

func (ct *PagarController) List(c *gin.Context) {
	filas, err := ct.Cuentas.ListOpen()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron obtener las cuentas por pagar", err)
		return
	}
	c.JSON(http.StatusOK, filas)
}

type crearPagarInput struct {
	Proveedor        string       `json:"proveedor" binding:"required"`
	Monto            float64      `json:"monto" binding:"required"`
	MontoPagado      float64      `json:"monto_pagado"`
	FechaVencimiento models.Fecha `json:"fecha_vencimiento" binding:"required"`
	Descripcion      string       `json:"descripcion"`
}

func (ct *PagarController) Create(c *gin.Context) {
	var in crearPagarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos de la cuenta no validos", err)
		return
	}

	cuenta, err := ct.Cuentas.Create(ledger.CrearPagarInput{
		Proveedor:        in.Proveedor,
		Monto:            in.Monto,
		MontoPagado:      in.MontoPagado,
		FechaVencimiento: in.FechaVencimiento.Time,
		Descripcion:      in.Descripcion,
	})
	if err != nil {
		respondError(c, "No se pudo crear la cuenta por pagar", err)
		return
	}
	utils.Created(c, "Cuenta por pagar creada", cuenta)
}

type actualizarPagarInput struct {
	Proveedor        string        `json:"proveedor"`
	Monto            float64       `json:"monto"`
	MontoPagado      *float64      `json:"monto_pagado"`
	FechaVencimiento *models.Fecha `json:"fecha_vencimiento"`
	Descripcion      string        `json:"descripcion"`
}

// Update funciona en dos modos: solo monto_pagado registra un abono;
// el resto de campos hacen una edicion completa.
func (ct *PagarController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in actualizarPagarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Datos de la cuenta no validos", err)
		return
	}

	if in.MontoPagado != nil && in.Monto == 0 && in.FechaVencimiento == nil {
		cuenta, err := ct.Cuentas.ApplyPayment(id, *in.MontoPagado)
		if err != nil {
			respondError(c, "No se pudo registrar el pago", err)
			return
		}
		utils.Success(c, "Pago registrado", cuenta)
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
	cuenta, err := ct.Cuentas.Update(id, ledger.ActualizarPagarInput{
		Proveedor:        in.Proveedor,
		Monto:            in.Monto,
		MontoPagado:      montoPagado,
		FechaVencimiento: in.FechaVencimiento.Time,
		Descripcion:      in.Descripcion,
	})
	if err != nil {
		respondError(c, "No se pudo actualizar la cuenta", err)
		return
	}
	utils.Success(c, "Cuenta por pagar actualizada", cuenta)
}

func (ct *PagarController) MarcarPagado(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cuenta, err := ct.Cuentas.MarkPaid(id)
	if err != nil {
		respondError(c, "No se pudo marcar la cuenta como pagada", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cuenta marcada como pagada", "cuenta": cuenta})
}

func (ct *PagarController) Stats(c *gin.Context) {
	st, err := ct.Cuentas.Stats()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron calcular las estadisticas", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (ct *PagarController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ct.Cuentas.Delete(id); err != nil {
		respondError(c, "No se pudo eliminar la cuenta", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cuenta por pagar eliminada"})
}

func (ct *PagarController) DeleteAll(c *gin.Context) {
	eliminadas, err := ct.Cuentas.DeleteAll()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron eliminar las cuentas", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cuentas por pagar eliminadas", "eliminadas": eliminadas})
}
