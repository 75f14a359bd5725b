// ledger/receivable_test.go
package ledger

import (
	"testing"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func nuevoReceivable(t *testing.T) (*ReceivableService, *gorm.DB) {
	db := abrirDB(t)
	svc := NewReceivableService(db)
	svc.Now = enDia(hoyTest)
	return svc, db
}

func TestOpenAsignaNumeroFactura(t *testing.T) {
	svc, db := nuevoReceivable(t)

	cuenta, err := svc.Open(OpenReceivableInput{
		Monto:            1000,
		MontoPagado:      600,
		FechaVencimiento: hoyTest.AddDate(0, 0, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, "FAC-0001", cuenta.NumeroFactura)
	assert.Equal(t, 400.0, cuenta.Saldo)
	assert.Equal(t, models.EstadoPendiente, cuenta.Estado)

	segunda, err := svc.Open(OpenReceivableInput{
		Monto:            200,
		FechaVencimiento: hoyTest.AddDate(0, 0, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, "FAC-0002", segunda.NumeroFactura)

	// lo persistido coincide con lo devuelto
	var guardada models.CuentaPorCobrar
	require.NoError(t, db.First(&guardada, cuenta.ID).Error)
	assert.Equal(t, "FAC-0001", guardada.NumeroFactura)
	assert.Equal(t, 400.0, guardada.Saldo)
}

func TestOpenValidaciones(t *testing.T) {
	svc, _ := nuevoReceivable(t)
	venc := hoyTest.AddDate(0, 0, 10)

	_, err := svc.Open(OpenReceivableInput{Monto: 0, FechaVencimiento: venc})
	assert.True(t, IsValidation(err))

	_, err = svc.Open(OpenReceivableInput{Monto: 100, MontoPagado: -1, FechaVencimiento: venc})
	assert.True(t, IsValidation(err))

	_, err = svc.Open(OpenReceivableInput{Monto: 100, MontoPagado: 150, FechaVencimiento: venc})
	assert.True(t, IsValidation(err))
}

func TestOpenSaldadaNaceDePagado(t *testing.T) {
	svc, _ := nuevoReceivable(t)
	cuenta, err := svc.Open(OpenReceivableInput{
		Monto:            500,
		MontoPagado:      500,
		FechaVencimiento: hoyTest.AddDate(0, 0, -5),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPagado, cuenta.Estado)
	assert.Equal(t, 0.0, cuenta.Saldo)
}

func TestPagoParcialNoDisparaCascada(t *testing.T) {
	svc, _ := nuevoReceivable(t)
	cuenta, err := svc.Open(OpenReceivableInput{Monto: 1000, FechaVencimiento: hoyTest.AddDate(0, 0, 10)})
	require.NoError(t, err)

	res, err := svc.ApplyPayment(cuenta.ID, 600)
	require.NoError(t, err)
	assert.Equal(t, 600.0, res.Cuenta.MontoPagado)
	assert.Equal(t, 400.0, res.Cuenta.Saldo)
	assert.Equal(t, models.EstadoPendiente, res.Cuenta.Estado)
	assert.False(t, res.Cascada.VentaActualizada)
	assert.False(t, res.Cascada.PedidoActualizado)
}

func TestPagoTotalCascadaVentaYPedido(t *testing.T) {
	svc, db := nuevoReceivable(t)

	cliente := crearCliente(t, db, "Acme")
	producto := crearProducto(t, db, "Logo", models.TipoGfx, 500)
	pedido := crearPedido(t, db, &cliente.ID, models.PedidoProducto{ProductoID: producto.ID, Cantidad: 2})
	venta := models.Venta{
		ClienteID:  &cliente.ID,
		PedidoID:   &pedido.ID,
		Cantidad:   2,
		Total:      1000,
		Fecha:      models.NuevaFechaHora(hoyTest),
		EstadoPago: models.EstadoPendiente,
	}
	require.NoError(t, db.Create(&venta).Error)

	cuenta, err := svc.Open(OpenReceivableInput{
		ClienteID:        &cliente.ID,
		VentaID:          &venta.ID,
		PedidoID:         &pedido.ID,
		Monto:            1000,
		FechaVencimiento: hoyTest.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	res, err := svc.MarkPaid(cuenta.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPagado, res.Cuenta.Estado)
	assert.Equal(t, 0.0, res.Cuenta.Saldo)
	assert.True(t, res.Cascada.VentaActualizada)
	assert.True(t, res.Cascada.PedidoActualizado)

	var ventaDB models.Venta
	require.NoError(t, db.First(&ventaDB, venta.ID).Error)
	assert.Equal(t, models.EstadoPagado, ventaDB.EstadoPago)

	var pedidoDB models.Pedido
	require.NoError(t, db.First(&pedidoDB, pedido.ID).Error)
	assert.Equal(t, models.EstadoPagado, pedidoDB.EstadoPago)

	// una segunda marca no vuelve a disparar la cascada
	res, err = svc.MarkPaid(cuenta.ID)
	require.NoError(t, err)
	assert.False(t, res.Cascada.VentaActualizada)
	assert.False(t, res.Cascada.PedidoActualizado)
}

func TestCascadaLlegaAlPedidoViaVenta(t *testing.T) {
	svc, db := nuevoReceivable(t)

	pedido := crearPedido(t, db, nil)
	venta := models.Venta{
		PedidoID:   &pedido.ID,
		Cantidad:   1,
		Total:      300,
		Fecha:      models.NuevaFechaHora(hoyTest),
		EstadoPago: models.EstadoPendiente,
	}
	require.NoError(t, db.Create(&venta).Error)

	// la cuenta solo conoce la venta; el pedido se resuelve a traves de ella
	cuenta, err := svc.Open(OpenReceivableInput{
		VentaID:          &venta.ID,
		Monto:            300,
		FechaVencimiento: hoyTest.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	res, err := svc.MarkPaid(cuenta.ID)
	require.NoError(t, err)
	assert.True(t, res.Cascada.VentaActualizada)
	assert.True(t, res.Cascada.PedidoActualizado)

	var pedidoDB models.Pedido
	require.NoError(t, db.First(&pedidoDB, pedido.ID).Error)
	assert.Equal(t, models.EstadoPagado, pedidoDB.EstadoPago)
}

func TestCascadaSinVinculosNoTocaNada(t *testing.T) {
	svc, _ := nuevoReceivable(t)
	cuenta, err := svc.Open(OpenReceivableInput{Monto: 100, FechaVencimiento: hoyTest.AddDate(0, 0, 5)})
	require.NoError(t, err)

	res, err := svc.MarkPaid(cuenta.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPagado, res.Cuenta.Estado)
	assert.False(t, res.Cascada.VentaActualizada)
	assert.False(t, res.Cascada.PedidoActualizado)
}

func TestSobrepagoRechazadoSinCambios(t *testing.T) {
	svc, db := nuevoReceivable(t)
	cuenta, err := svc.Open(OpenReceivableInput{Monto: 1000, FechaVencimiento: hoyTest.AddDate(0, 0, 10)})
	require.NoError(t, err)

	_, err = svc.ApplyPayment(cuenta.ID, 1001)
	assert.True(t, IsValidation(err))

	var guardada models.CuentaPorCobrar
	require.NoError(t, db.First(&guardada, cuenta.ID).Error)
	assert.Equal(t, 0.0, guardada.MontoPagado)
	assert.Equal(t, 1000.0, guardada.Saldo)
	assert.Equal(t, models.EstadoPendiente, guardada.Estado)
}

func TestMontoPagadoNoDecrece(t *testing.T) {
	svc, _ := nuevoReceivable(t)
	cuenta, err := svc.Open(OpenReceivableInput{Monto: 1000, FechaVencimiento: hoyTest.AddDate(0, 0, 10)})
	require.NoError(t, err)

	_, err = svc.ApplyPayment(cuenta.ID, 600)
	require.NoError(t, err)

	_, err = svc.ApplyPayment(cuenta.ID, 500)
	assert.True(t, IsValidation(err))
}

func TestApplyPaymentCuentaInexistente(t *testing.T) {
	svc, _ := nuevoReceivable(t)
	_, err := svc.ApplyPayment(999, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOpenDerivaEstadoYDias(t *testing.T) {
	svc, db := nuevoReceivable(t)
	cliente := crearCliente(t, db, "Acme")

	// estado guardado pendiente pero ya vencida hace 3 dias
	vencida, err := svc.Open(OpenReceivableInput{
		ClienteID:        &cliente.ID,
		Monto:            500,
		FechaVencimiento: hoyTest.AddDate(0, 0, 3),
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.CuentaPorCobrar{}).
		Where("id = ?", vencida.ID).
		Update("fecha_vencimiento", models.NuevaFecha(hoyTest.AddDate(0, 0, -3))).Error)

	alDia, err := svc.Open(OpenReceivableInput{Monto: 200, FechaVencimiento: hoyTest.AddDate(0, 0, 15)})
	require.NoError(t, err)

	pagada, err := svc.Open(OpenReceivableInput{Monto: 100, MontoPagado: 100, FechaVencimiento: hoyTest})
	require.NoError(t, err)

	filas, err := svc.ListOpen()
	require.NoError(t, err)
	require.Len(t, filas, 2)

	// vencimiento ascendente: la vencida primero
	assert.Equal(t, vencida.ID, filas[0].ID)
	assert.Equal(t, models.EstadoVencido, filas[0].Estado)
	assert.Equal(t, 3, filas[0].DiasVencido)
	assert.Equal(t, "Acme", filas[0].ClienteNombre)

	assert.Equal(t, alDia.ID, filas[1].ID)
	assert.Equal(t, models.EstadoPendiente, filas[1].Estado)
	assert.Equal(t, 0, filas[1].DiasVencido)

	for _, fila := range filas {
		assert.NotEqual(t, pagada.ID, fila.ID)
	}
}

func TestUpdateRevierteVencidoConFechaFutura(t *testing.T) {
	svc, db := nuevoReceivable(t)
	cuenta, err := svc.Open(OpenReceivableInput{Monto: 500, FechaVencimiento: hoyTest.AddDate(0, 0, 10)})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.CuentaPorCobrar{}).
		Where("id = ?", cuenta.ID).
		Updates(map[string]any{
			"fecha_vencimiento": models.NuevaFecha(hoyTest.AddDate(0, 0, -5)),
			"estado":            models.EstadoVencido,
		}).Error)

	actualizada, err := svc.Update(cuenta.ID, ActualizarCobrarInput{
		Monto:            500,
		FechaVencimiento: hoyTest.AddDate(0, 0, 20),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPendiente, actualizada.Estado)
}

func TestStatsDerivaEnVivo(t *testing.T) {
	svc, db := nuevoReceivable(t)

	// pendiente al dia
	_, err := svc.Open(OpenReceivableInput{Monto: 300, FechaVencimiento: hoyTest.AddDate(0, 0, 10)})
	require.NoError(t, err)

	// guardada como pendiente pero vencida: debe contar como vencida
	vencida, err := svc.Open(OpenReceivableInput{Monto: 200, FechaVencimiento: hoyTest.AddDate(0, 0, 10)})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.CuentaPorCobrar{}).
		Where("id = ?", vencida.ID).
		Update("fecha_vencimiento", models.NuevaFecha(hoyTest.AddDate(0, 0, -1))).Error)

	// pagada: suma al total de facturas, no al saldo
	_, err = svc.Open(OpenReceivableInput{Monto: 100, MontoPagado: 100, FechaVencimiento: hoyTest})
	require.NoError(t, err)

	st, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 500.0, st.TotalPorCobrar)
	assert.Equal(t, int64(1), st.FacturasPendientes)
	assert.Equal(t, int64(1), st.FacturasVencidas)
	assert.Equal(t, int64(3), st.TotalFacturas)
}

func TestDeleteYDeleteAll(t *testing.T) {
	svc, _ := nuevoReceivable(t)
	cuenta, err := svc.Open(OpenReceivableInput{Monto: 100, FechaVencimiento: hoyTest})
	require.NoError(t, err)
	_, err = svc.Open(OpenReceivableInput{Monto: 200, FechaVencimiento: hoyTest})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(cuenta.ID))
	assert.ErrorIs(t, svc.Delete(cuenta.ID), ErrNotFound)

	eliminadas, err := svc.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, int64(1), eliminadas)
}
