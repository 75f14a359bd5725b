// models/producto.go
package models

import "time"

// Tipos de producto que reconoce el reporte de ingresos.
const (
	TipoGfx = "gfx"
	TipoVfx = "vfx"
)

type Producto struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Nombre      string  `gorm:"size:200;not null" json:"nombre"`
	Tipo        string  `gorm:"size:10;not null;index" json:"tipo"` // gfx | vfx
	Precio      float64 `gorm:"not null" json:"precio"`
	Descripcion string  `gorm:"size:500" json:"descripcion"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Producto) TableName() string { return "productos" }
