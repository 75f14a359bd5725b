// ledger/ledger_test.go
package ledger

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// abrirDB abre una base sqlite en memoria exclusiva del test. cache=shared
// evita que cada conexion del pool vea una base vacia distinta.
func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	nombre := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nombre)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Producto{},
		&models.Cliente{},
		&models.Pedido{},
		&models.PedidoProducto{},
		&models.Venta{},
		&models.CuentaPorCobrar{},
		&models.CuentaPorPagar{},
	))
	return db
}

// hoyTest es el "hoy" congelado de los tests.
var hoyTest = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func enDia(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func crearCliente(t *testing.T, db *gorm.DB, nombre string) *models.Cliente {
	t.Helper()
	cl := models.Cliente{Nombre: nombre}
	require.NoError(t, db.Create(&cl).Error)
	return &cl
}

func crearProducto(t *testing.T, db *gorm.DB, nombre, tipo string, precio float64) *models.Producto {
	t.Helper()
	p := models.Producto{Nombre: nombre, Tipo: tipo, Precio: precio}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func crearPedido(t *testing.T, db *gorm.DB, clienteID *uint, lineas ...models.PedidoProducto) *models.Pedido {
	t.Helper()
	p := models.Pedido{
		ClienteID:  clienteID,
		Fecha:      models.NuevaFechaHora(hoyTest),
		Estado:     models.PedidoCompletado,
		EstadoPago: models.EstadoPendiente,
		Productos:  lineas,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}
