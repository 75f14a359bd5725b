// models/cuenta_cobrar.go
package models

import "time"

// CuentaPorCobrar: dinero que un cliente debe al negocio.
//
// Invariantes: saldo == monto - monto_pagado en toda escritura;
// estado == pagado si y solo si saldo <= 0; monto_pagado nunca decrece.
type CuentaPorCobrar struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	NumeroFactura string `gorm:"size:32;uniqueIndex;not null" json:"numero_factura"` // FAC-%04d sobre el propio ID
	ClienteID     *uint  `gorm:"index" json:"cliente_id"`
	VentaID       *uint  `gorm:"index" json:"venta_id"`
	PedidoID      *uint  `gorm:"index" json:"pedido_id"`

	Monto            float64 `gorm:"not null" json:"monto"`
	MontoPagado      float64 `gorm:"not null;default:0" json:"monto_pagado"`
	Saldo            float64 `gorm:"not null" json:"saldo"`
	FechaVencimiento Fecha   `gorm:"not null;index" json:"fecha_vencimiento"`
	Estado           string  `gorm:"size:12;not null;index" json:"estado"` // pendiente | vencido | pagado
	Notas            string  `gorm:"size:500" json:"notas"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CuentaPorCobrar) TableName() string { return "cuentas_por_cobrar" }
