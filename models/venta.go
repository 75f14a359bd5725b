// models/venta.go
package models

import "time"

// Venta registrada. Total se calcula una sola vez al registrar y no se
// recalcula; estado_pago solo lo cambia la cascada de cuentas por cobrar.
type Venta struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ClienteID  *uint     `gorm:"index" json:"cliente_id"`
	ProductoID *uint     `gorm:"index" json:"producto_id"` // nil cuando la venta cubre varios items del pedido
	PedidoID   *uint     `gorm:"index" json:"pedido_id"`
	Cantidad   int64     `gorm:"not null;default:1" json:"cantidad"`
	Total      float64   `gorm:"not null" json:"total"`
	Fecha      FechaHora `gorm:"not null;index" json:"fecha"`
	EstadoPago string    `gorm:"size:12;not null;default:pendiente;index" json:"estado_pago"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Venta) TableName() string { return "ventas" }
