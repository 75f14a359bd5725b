// models/pedido.go
package models

import "time"

// Pedido header. El ledger solo lee pedidos y, como efecto de cascada,
// escribe estado_pago.
type Pedido struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ClienteID          *uint     `gorm:"index" json:"cliente_id"`
	Fecha              FechaHora `gorm:"not null" json:"fecha"`
	EncargadoPrincipal string    `gorm:"size:180" json:"encargado_principal"`
	PagoRealizado      bool      `gorm:"not null;default:false" json:"pago_realizado"`
	Notas              string    `gorm:"size:500" json:"notas"`
	Estado             string    `gorm:"size:20;not null;default:pendiente;index" json:"estado"`
	EstadoPago         string    `gorm:"size:12;not null;default:pendiente;index" json:"estado_pago"`

	Productos []PedidoProducto `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"productos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pedido) TableName() string { return "pedidos" }

// Detalle de productos del pedido. PagoAsignado es el monto acordado por
// linea; los reportes lo usan como cifra monetaria cuando todavia no hay
// ventas registradas.
type PedidoProducto struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	PedidoID     uint    `gorm:"index;not null" json:"pedido_id"`
	ProductoID   uint    `gorm:"index;not null" json:"producto_id"`
	Cantidad     int64   `gorm:"not null;default:1" json:"cantidad"`
	PagoAsignado float64 `gorm:"column:assigned_payment;not null;default:0" json:"assigned_payment"`
}

func (PedidoProducto) TableName() string { return "pedido_productos" }
