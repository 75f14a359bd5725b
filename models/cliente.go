// models/cliente.go
package models

import "time"

type Cliente struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nombre    string `gorm:"size:200;not null" json:"nombre"`
	Email     string `gorm:"size:180" json:"email"`
	Telefono  string `gorm:"size:40" json:"telefono"`
	Direccion string `gorm:"size:300" json:"direccion"`
	Notas     string `gorm:"size:500" json:"notas"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cliente) TableName() string { return "clientes" }
