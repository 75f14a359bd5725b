// models/cuenta_pagar.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// CuentaPorPagar: obligacion con un proveedor. No tiene vinculo con
// ventas ni pedidos. Mismas invariantes de saldo/estado que CuentaPorCobrar;
// fecha_pago se fija una sola vez, al quedar saldada.
//
// El borrado individual es logico (DeletedAt): el generador de codigos
// recorre tambien las filas borradas para no re-emitir un codigo BILL.
type CuentaPorPagar struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CodigoFactura string `gorm:"size:32;uniqueIndex;not null" json:"codigo_factura"` // BILL%03d, correlativo propio
	Proveedor     string `gorm:"size:200;not null" json:"proveedor"`

	Monto            float64    `gorm:"not null" json:"monto"`
	MontoPagado      float64    `gorm:"not null;default:0" json:"monto_pagado"`
	Saldo            float64    `gorm:"not null" json:"saldo"`
	FechaVencimiento Fecha      `gorm:"not null;index" json:"fecha_vencimiento"`
	FechaPago        *FechaHora `json:"fecha_pago"`
	Estado           string     `gorm:"size:12;not null;index" json:"estado"`
	Descripcion      string     `gorm:"size:500" json:"descripcion"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CuentaPorPagar) TableName() string { return "cuentas_por_pagar" }
