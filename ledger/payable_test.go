// ledger/payable_test.go
package ledger

import (
	"fmt"
	"testing"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func nuevoPayable(t *testing.T) (*PayableService, *gorm.DB) {
	db := abrirDB(t)
	svc := NewPayableService(db)
	svc.Now = enDia(hoyTest)
	return svc, db
}

func crearPagar(t *testing.T, svc *PayableService, proveedor string, monto float64) *models.CuentaPorPagar {
	t.Helper()
	cuenta, err := svc.Create(CrearPagarInput{
		Proveedor:        proveedor,
		Monto:            monto,
		FechaVencimiento: hoyTest.AddDate(0, 0, 30),
	})
	require.NoError(t, err)
	return cuenta
}

func TestCrearAsignaCodigosConsecutivos(t *testing.T) {
	svc, _ := nuevoPayable(t)

	for i, quiere := range []string{"BILL001", "BILL002", "BILL003"} {
		cuenta := crearPagar(t, svc, fmt.Sprintf("Proveedor %d", i+1), 100)
		assert.Equal(t, quiere, cuenta.CodigoFactura)
	}
}

func TestCodigosCrecenAunqueSeBorre(t *testing.T) {
	svc, db := nuevoPayable(t)

	vistos := make(map[string]bool)
	ultimo := 0
	for i := 0; i < 55; i++ {
		cuenta := crearPagar(t, svc, fmt.Sprintf("Proveedor %d", i), 50)

		var n int
		_, err := fmt.Sscanf(cuenta.CodigoFactura, "BILL%03d", &n)
		require.NoError(t, err)
		assert.Greater(t, n, ultimo, "codigo %s no es estrictamente creciente", cuenta.CodigoFactura)
		assert.False(t, vistos[cuenta.CodigoFactura], "codigo %s repetido", cuenta.CodigoFactura)
		vistos[cuenta.CodigoFactura] = true
		ultimo = n

		// borrar de vez en cuando, incluida la recien creada (el codigo mas
		// alto): la numeracion no debe retroceder
		if i%5 == 4 {
			require.NoError(t, svc.Delete(cuenta.ID))
		}
	}
	assert.Len(t, vistos, 55)

	// las borradas siguen en la tabla como borrado logico
	var conBorradas, vivas int64
	require.NoError(t, db.Unscoped().Model(&models.CuentaPorPagar{}).Count(&conBorradas).Error)
	require.NoError(t, db.Model(&models.CuentaPorPagar{}).Count(&vivas).Error)
	assert.Equal(t, int64(55), conBorradas)
	assert.Equal(t, int64(44), vivas)
}

func TestCrearValidaciones(t *testing.T) {
	svc, _ := nuevoPayable(t)
	venc := hoyTest.AddDate(0, 0, 30)

	_, err := svc.Create(CrearPagarInput{Proveedor: "  ", Monto: 100, FechaVencimiento: venc})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(CrearPagarInput{Proveedor: "X", Monto: 0, FechaVencimiento: venc})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(CrearPagarInput{Proveedor: "X", Monto: 100, MontoPagado: 150, FechaVencimiento: venc})
	assert.True(t, IsValidation(err))
}

func TestMarkPaidFijaFechaPagoUnaVez(t *testing.T) {
	svc, _ := nuevoPayable(t)
	cuenta := crearPagar(t, svc, "Imprenta", 800)

	pagada, err := svc.MarkPaid(cuenta.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPagado, pagada.Estado)
	require.NotNil(t, pagada.FechaPago)
	primera := pagada.FechaPago.Time

	// un dia despues se repite la marca: la fecha de pago no se mueve
	svc.Now = enDia(hoyTest.AddDate(0, 0, 1))
	repetida, err := svc.MarkPaid(cuenta.ID)
	require.NoError(t, err)
	require.NotNil(t, repetida.FechaPago)
	assert.True(t, repetida.FechaPago.Time.Equal(primera))
}

func TestPagoParcialPagar(t *testing.T) {
	svc, _ := nuevoPayable(t)
	cuenta := crearPagar(t, svc, "Hosting", 600)

	tras, err := svc.ApplyPayment(cuenta.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, 400.0, tras.Saldo)
	assert.Equal(t, models.EstadoPendiente, tras.Estado)
	assert.Nil(t, tras.FechaPago)

	_, err = svc.ApplyPayment(cuenta.ID, 100)
	assert.True(t, IsValidation(err), "el acumulado pagado no puede disminuir")

	_, err = svc.ApplyPayment(cuenta.ID, 700)
	assert.True(t, IsValidation(err), "el sobrepago se rechaza")
}

func TestListOpenYStatsPagar(t *testing.T) {
	svc, db := nuevoPayable(t)

	// vence en 3 dias: pendiente y proxima a vencer
	proxima, err := svc.Create(CrearPagarInput{
		Proveedor:        "Papeleria",
		Monto:            150,
		FechaVencimiento: hoyTest.AddDate(0, 0, 3),
	})
	require.NoError(t, err)

	// vence en 20 dias: pendiente, fuera de la ventana de 7 dias
	_, err = svc.Create(CrearPagarInput{
		Proveedor:        "Hosting",
		Monto:            250,
		FechaVencimiento: hoyTest.AddDate(0, 0, 20),
	})
	require.NoError(t, err)

	// guardada pendiente pero ya vencida
	vencida, err := svc.Create(CrearPagarInput{
		Proveedor:        "Imprenta",
		Monto:            400,
		FechaVencimiento: hoyTest.AddDate(0, 0, 5),
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.CuentaPorPagar{}).
		Where("id = ?", vencida.ID).
		Update("fecha_vencimiento", models.NuevaFecha(hoyTest.AddDate(0, 0, -2))).Error)

	// saldada: fuera de listados y stats de saldo
	saldada := crearPagar(t, svc, "Luz", 90)
	_, err = svc.MarkPaid(saldada.ID)
	require.NoError(t, err)

	filas, err := svc.ListOpen()
	require.NoError(t, err)
	require.Len(t, filas, 3)
	assert.Equal(t, vencida.ID, filas[0].ID) // vencimiento mas temprano primero
	assert.Equal(t, models.EstadoVencido, filas[0].Estado)
	assert.Equal(t, 2, filas[0].DiasVencido)
	assert.Equal(t, proxima.ID, filas[1].ID)

	st, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 800.0, st.TotalPorPagar)
	assert.Equal(t, int64(2), st.FacturasPendientes)
	assert.Equal(t, int64(1), st.FacturasVencidas)
	assert.Equal(t, int64(1), st.ProximasVencer)
}

func TestUpdatePagar(t *testing.T) {
	svc, _ := nuevoPayable(t)
	cuenta := crearPagar(t, svc, "Hosting", 600)

	actualizada, err := svc.Update(cuenta.ID, ActualizarPagarInput{
		Proveedor:        "Hosting SA",
		Monto:            900,
		MontoPagado:      300,
		FechaVencimiento: hoyTest.AddDate(0, 0, 45),
		Descripcion:      "plan anual",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hosting SA", actualizada.Proveedor)
	assert.Equal(t, 600.0, actualizada.Saldo)
	assert.Equal(t, models.EstadoPendiente, actualizada.Estado)
	assert.Equal(t, cuenta.CodigoFactura, actualizada.CodigoFactura)

	_, err = svc.Update(999, ActualizarPagarInput{
		Proveedor:        "Nadie",
		Monto:            10,
		FechaVencimiento: hoyTest,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAllReiniciaNumeracion(t *testing.T) {
	svc, _ := nuevoPayable(t)
	crearPagar(t, svc, "A", 10)
	crearPagar(t, svc, "B", 20)

	eliminadas, err := svc.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, int64(2), eliminadas)

	// el borrado fisico vacia tambien el historial: la serie arranca de nuevo
	cuenta := crearPagar(t, svc, "C", 30)
	assert.Equal(t, "BILL001", cuenta.CodigoFactura)
}
