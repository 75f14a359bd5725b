// reports/reports_test.go
package reports

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var hoyTest = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func nuevoService(t *testing.T) (*Service, *gorm.DB) {
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
	svc := NewService(db)
	svc.Now = func() time.Time { return hoyTest }
	return svc, db
}

func sembrarProducto(t *testing.T, db *gorm.DB, nombre, tipo string, precio float64) *models.Producto {
	t.Helper()
	p := models.Producto{Nombre: nombre, Tipo: tipo, Precio: precio}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func sembrarCliente(t *testing.T, db *gorm.DB, nombre string) *models.Cliente {
	t.Helper()
	c := models.Cliente{Nombre: nombre}
	require.NoError(t, db.Create(&c).Error)
	return &c
}

func sembrarVenta(t *testing.T, db *gorm.DB, clienteID, productoID *uint, total float64, fecha time.Time) *models.Venta {
	t.Helper()
	v := models.Venta{
		ClienteID:  clienteID,
		ProductoID: productoID,
		Cantidad:   1,
		Total:      total,
		Fecha:      models.NuevaFechaHora(fecha),
		EstadoPago: models.EstadoPendiente,
	}
	require.NoError(t, db.Create(&v).Error)
	return &v
}

func sembrarPedido(t *testing.T, db *gorm.DB, clienteID *uint, fecha time.Time, lineas ...models.PedidoProducto) *models.Pedido {
	t.Helper()
	p := models.Pedido{
		ClienteID:  clienteID,
		Fecha:      models.NuevaFechaHora(fecha),
		Estado:     models.PedidoCompletado,
		EstadoPago: models.EstadoPendiente,
		Productos:  lineas,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func TestResumenConVentasYCrecimiento(t *testing.T) {
	svc, db := nuevoService(t)
	cliente := sembrarCliente(t, db, "Acme")
	otro := sembrarCliente(t, db, "Globex")

	// mes actual: dos ventas de dos clientes
	sembrarVenta(t, db, &cliente.ID, nil, 200, hoyTest)
	sembrarVenta(t, db, &otro.ID, nil, 100, hoyTest.AddDate(0, 0, -3))

	// mes anterior completo: una venta de 150
	sembrarVenta(t, db, &cliente.ID, nil, 150, hoyTest.AddDate(0, -1, 0))

	res, err := svc.Resumen(PeriodoMes)
	require.NoError(t, err)

	assert.Equal(t, 300.0, res.VentasTotales)
	assert.Equal(t, int64(2), res.TotalPedidos)
	assert.Equal(t, 150.0, res.ValorPromedio)
	assert.Equal(t, int64(2), res.NuevosClientes)
	assert.Equal(t, 100.0, res.CrecimientoVentas) // 150 -> 300
	assert.Equal(t, 100.0, res.CrecimientoPedidos)
	assert.Equal(t, 0.0, res.CrecimientoPromedio) // 150 -> 150
}

func TestResumenSinVentasCaeAPedidos(t *testing.T) {
	svc, db := nuevoService(t)
	cliente := sembrarCliente(t, db, "Acme")
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)

	sembrarPedido(t, db, &cliente.ID, hoyTest,
		models.PedidoProducto{ProductoID: logo.ID, Cantidad: 1, PagoAsignado: 120},
		models.PedidoProducto{ProductoID: logo.ID, Cantidad: 1, PagoAsignado: 80},
	)
	sembrarPedido(t, db, nil, hoyTest.AddDate(0, 0, -2),
		models.PedidoProducto{ProductoID: logo.ID, Cantidad: 1, PagoAsignado: 100},
	)

	res, err := svc.Resumen(PeriodoMes)
	require.NoError(t, err)

	// sin ventas, el ingreso es la suma de pagos asignados por linea y un
	// pedido con varias lineas cuenta una sola vez
	assert.Equal(t, 300.0, res.VentasTotales)
	assert.Equal(t, int64(2), res.TotalPedidos)
}

func TestIngresosPorTipoSiempreTraeAmbasClaves(t *testing.T) {
	svc, db := nuevoService(t)
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)

	sembrarVenta(t, db, nil, &logo.ID, 250, hoyTest)

	ingresos, err := svc.IngresosPorTipo(PeriodoMes)
	require.NoError(t, err)

	require.Contains(t, ingresos, "GFX")
	require.Contains(t, ingresos, "VFX")
	assert.Equal(t, 250.0, ingresos["GFX"].Total)
	assert.Equal(t, 100.0, ingresos["GFX"].Porcentaje)
	assert.Equal(t, int64(1), ingresos["GFX"].Cantidad)
	assert.Equal(t, 0.0, ingresos["VFX"].Total)
	assert.Equal(t, int64(0), ingresos["VFX"].Cantidad)
}

func TestIngresosPorTipoReparte(t *testing.T) {
	svc, db := nuevoService(t)
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)
	intro := sembrarProducto(t, db, "Intro", models.TipoVfx, 400)

	sembrarVenta(t, db, nil, &logo.ID, 100, hoyTest)
	sembrarVenta(t, db, nil, &intro.ID, 300, hoyTest)

	ingresos, err := svc.IngresosPorTipo(PeriodoMes)
	require.NoError(t, err)
	assert.Equal(t, 25.0, ingresos["GFX"].Porcentaje)
	assert.Equal(t, 75.0, ingresos["VFX"].Porcentaje)
}

func TestTendenciaMensualCronologica(t *testing.T) {
	svc, db := nuevoService(t)
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)
	intro := sembrarProducto(t, db, "Intro", models.TipoVfx, 400)

	// febrero y marzo de 2026
	sembrarVenta(t, db, nil, &logo.ID, 100, time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC))
	sembrarVenta(t, db, nil, &intro.ID, 300, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	sembrarVenta(t, db, nil, &logo.ID, 50, time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC))

	puntos, err := svc.Tendencia(PeriodoMes)
	require.NoError(t, err)
	require.Len(t, puntos, 2)

	assert.Equal(t, "Febrero 2026", puntos[0].Periodo)
	assert.Equal(t, 100.0, puntos[0].Gfx)
	assert.Equal(t, 100.0, puntos[0].Total)

	assert.Equal(t, "Marzo 2026", puntos[1].Periodo)
	assert.Equal(t, 50.0, puntos[1].Gfx)
	assert.Equal(t, 300.0, puntos[1].Vfx)
	assert.Equal(t, 350.0, puntos[1].Total)
}

func TestTendenciaSemanalPorDia(t *testing.T) {
	svc, db := nuevoService(t)
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)

	sembrarVenta(t, db, nil, &logo.ID, 100, hoyTest.AddDate(0, 0, -2))
	sembrarVenta(t, db, nil, &logo.ID, 60, hoyTest)
	// fuera de la ventana de 7 dias
	sembrarVenta(t, db, nil, &logo.ID, 999, hoyTest.AddDate(0, 0, -10))

	puntos, err := svc.Tendencia(PeriodoSemana)
	require.NoError(t, err)
	require.Len(t, puntos, 2)
	assert.Equal(t, "2026-03-13", puntos[0].Periodo)
	assert.Equal(t, 100.0, puntos[0].Total)
	assert.Equal(t, "2026-03-15", puntos[1].Periodo)
	assert.Equal(t, 60.0, puntos[1].Total)
}

func TestProductosTopOrdenadosPorIngresos(t *testing.T) {
	svc, db := nuevoService(t)
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)
	intro := sembrarProducto(t, db, "Intro", models.TipoVfx, 400)

	sembrarVenta(t, db, nil, &logo.ID, 100, hoyTest)
	sembrarVenta(t, db, nil, &logo.ID, 100, hoyTest)
	sembrarVenta(t, db, nil, &intro.ID, 400, hoyTest)

	tops, err := svc.ProductosTop(PeriodoMes)
	require.NoError(t, err)
	require.Len(t, tops, 2)

	assert.Equal(t, "Intro", tops[0].Nombre)
	assert.Equal(t, "VFX", tops[0].Tipo)
	assert.Equal(t, 400.0, tops[0].Ingresos)

	assert.Equal(t, "Logo", tops[1].Nombre)
	assert.Equal(t, int64(2), tops[1].Pedidos)
	assert.Equal(t, 200.0, tops[1].Ingresos)
	assert.Equal(t, 100.0, tops[1].Promedio)
}

func TestClientesTopConUltimoPedido(t *testing.T) {
	svc, db := nuevoService(t)
	acme := sembrarCliente(t, db, "Acme")
	globex := sembrarCliente(t, db, "Globex")

	sembrarVenta(t, db, &acme.ID, nil, 500, hoyTest.AddDate(0, 0, -4))
	sembrarVenta(t, db, &acme.ID, nil, 300, hoyTest.AddDate(0, 0, -1))
	sembrarVenta(t, db, &globex.ID, nil, 200, hoyTest)

	tops, err := svc.ClientesTop(PeriodoMes)
	require.NoError(t, err)
	require.Len(t, tops, 2)

	assert.Equal(t, "Acme", tops[0].Nombre)
	assert.Equal(t, int64(2), tops[0].Pedidos)
	assert.Equal(t, 800.0, tops[0].Ingresos)
	assert.Equal(t, 400.0, tops[0].Promedio)
	require.NotNil(t, tops[0].UltimoPedido)
	assert.Equal(t, "2026-03-14", tops[0].UltimoPedido.Format(models.FormatoFecha))
}

func TestTopsCaenAPedidosSinVentas(t *testing.T) {
	svc, db := nuevoService(t)
	acme := sembrarCliente(t, db, "Acme")
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)

	sembrarPedido(t, db, &acme.ID, hoyTest,
		models.PedidoProducto{ProductoID: logo.ID, Cantidad: 2, PagoAsignado: 240},
	)

	productos, err := svc.ProductosTop(PeriodoMes)
	require.NoError(t, err)
	require.Len(t, productos, 1)
	assert.Equal(t, "Logo", productos[0].Nombre)
	assert.Equal(t, 240.0, productos[0].Ingresos)

	clientes, err := svc.ClientesTop(PeriodoMes)
	require.NoError(t, err)
	require.Len(t, clientes, 1)
	assert.Equal(t, "Acme", clientes[0].Nombre)
	assert.Equal(t, 240.0, clientes[0].Ingresos)
}

func TestGenerarDashboardCompleto(t *testing.T) {
	svc, db := nuevoService(t)
	acme := sembrarCliente(t, db, "Acme")
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)
	sembrarVenta(t, db, &acme.ID, &logo.ID, 100, hoyTest)

	d, err := svc.GenerarDashboard(PeriodoMes)
	require.NoError(t, err)
	assert.Equal(t, PeriodoMes, d.Periodo)
	assert.Equal(t, 100.0, d.Resumen.VentasTotales)
	assert.Contains(t, d.IngresosPorTipo, "GFX")
	assert.Contains(t, d.IngresosPorTipo, "VFX")
	assert.NotEmpty(t, d.Tendencia)
	assert.Len(t, d.ProductosTop, 1)
	assert.Len(t, d.ClientesTop, 1)
}

func TestGenerales(t *testing.T) {
	svc, db := nuevoService(t)
	acme := sembrarCliente(t, db, "Acme")
	logo := sembrarProducto(t, db, "Logo", models.TipoGfx, 100)
	sembrarVenta(t, db, &acme.ID, &logo.ID, 350, hoyTest)
	sembrarPedido(t, db, &acme.ID, hoyTest,
		models.PedidoProducto{ProductoID: logo.ID, Cantidad: 1, PagoAsignado: 100},
	)

	require.NoError(t, db.Create(&models.CuentaPorPagar{
		CodigoFactura:    "BILL001",
		Proveedor:        "Hosting",
		Monto:            200,
		Saldo:            200,
		FechaVencimiento: models.NuevaFecha(hoyTest.AddDate(0, 0, -2)),
		Estado:           models.EstadoPendiente,
	}).Error)

	st, err := svc.Generales()
	require.NoError(t, err)
	assert.Equal(t, 350.0, st.GananciasTotales)
	assert.Equal(t, int64(1), st.ServiciosDisponibles)
	assert.Equal(t, int64(1), st.TotalClientes)
	assert.Equal(t, 200.0, st.TotalPorPagar)
	assert.Equal(t, int64(1), st.PagosVencidos)
	require.Len(t, st.PedidosRecientes, 1)
	assert.Equal(t, "Acme", st.PedidosRecientes[0].ClienteNombre)
	assert.Equal(t, 100.0, st.PedidosRecientes[0].Total)
}
