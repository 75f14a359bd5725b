package config

import (
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"gorm.io/gorm"
)

// SeedProductos registra el catalogo inicial de servicios. Solo inserta
// los que no existen, asi los precios editados no se pisan al reiniciar.
func SeedProductos(db *gorm.DB) {
	base := []models.Producto{
		{Nombre: "Logo", Tipo: models.TipoGfx, Precio: 3500, Descripcion: "Diseno de logo"},
		{Nombre: "Banner", Tipo: models.TipoGfx, Precio: 1500, Descripcion: "Banner para redes"},
		{Nombre: "Flyer", Tipo: models.TipoGfx, Precio: 1200, Descripcion: "Flyer promocional"},
		{Nombre: "Intro animada", Tipo: models.TipoVfx, Precio: 5000, Descripcion: "Intro animada para video"},
		{Nombre: "Edicion de video", Tipo: models.TipoVfx, Precio: 4000, Descripcion: "Edicion y postproduccion"},
	}
	for _, p := range base {
		var cnt int64
		db.Model(&models.Producto{}).Where("nombre = ?", p.Nombre).Count(&cnt)
		if cnt == 0 {
			db.Create(&p)
		}
	}
}
