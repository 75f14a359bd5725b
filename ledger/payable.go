// ledger/payable.go
package ledger

import (
	"strings"
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// maxReintentosCodigo: intentos de creacion ante colision de codigo BILL
// bajo creacion concurrente, antes de devolver ErrCodigoDuplicado.
const maxReintentosCodigo = 3

// PayableService administra las cuentas por pagar a proveedores. Es el
// espejo del ledger de cuentas por cobrar, sin cascadas: no hay venta ni
// pedido de origen.
type PayableService struct {
	db *gorm.DB

	Now func() time.Time
}

func NewPayableService(db *gorm.DB) *PayableService {
	return &PayableService{db: db, Now: time.Now}
}

type CrearPagarInput struct {
	Proveedor        string
	Monto            float64
	MontoPagado      float64
	FechaVencimiento time.Time
	Descripcion      string
}

// Create registra una obligacion nueva y le asigna el siguiente codigo
// BILL%03d. La secuencia lee-calcula-inserta corre dentro de una sola
// transaccion; si dos creaciones concurrentes acunan el mismo codigo, el
// indice unico rechaza la segunda y se reintenta completa.
func (s *PayableService) Create(in CrearPagarInput) (*models.CuentaPorPagar, error) {
	if strings.TrimSpace(in.Proveedor) == "" {
		return nil, validationf("el proveedor es requerido")
	}
	if in.Monto <= 0 {
		return nil, validationf("el monto debe ser mayor que cero")
	}
	if in.MontoPagado < 0 {
		return nil, validationf("el monto pagado no puede ser negativo")
	}
	if in.MontoPagado > in.Monto {
		return nil, validationf("el monto pagado no puede exceder el monto de la factura")
	}

	var cuenta *models.CuentaPorPagar
	var err error
	for intento := 0; intento < maxReintentosCodigo; intento++ {
		cuenta, err = s.crearUnaVez(in)
		if err == nil || !esDuplicado(err) {
			break
		}
	}
	if err != nil {
		if esDuplicado(err) {
			return nil, ErrCodigoDuplicado
		}
		return nil, err
	}

	log.Info().
		Uint("cuenta_id", cuenta.ID).
		Str("codigo_factura", cuenta.CodigoFactura).
		Str("proveedor", cuenta.Proveedor).
		Msg("cuenta por pagar creada")
	return cuenta, nil
}

func (s *PayableService) crearUnaVez(in CrearPagarInput) (*models.CuentaPorPagar, error) {
	var cuenta models.CuentaPorPagar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		codigo, err := siguienteCodigoPagar(tx)
		if err != nil {
			return err
		}

		saldo := in.Monto - in.MontoPagado
		cuenta = models.CuentaPorPagar{
			CodigoFactura:    codigo,
			Proveedor:        in.Proveedor,
			Monto:            in.Monto,
			MontoPagado:      in.MontoPagado,
			Saldo:            saldo,
			FechaVencimiento: models.NuevaFecha(in.FechaVencimiento),
			Estado:           DeriveStatus(models.EstadoPendiente, saldo, in.FechaVencimiento, s.Now()),
			Descripcion:      in.Descripcion,
		}
		return tx.Create(&cuenta).Error
	})
	if err != nil {
		return nil, err
	}
	return &cuenta, nil
}

// ApplyPayment fija el acumulado pagado y recalcula saldo y estado.
// fecha_pago se escribe una sola vez, en la transicion a pagado.
func (s *PayableService) ApplyPayment(id uint, nuevoMontoPagado float64) (*models.CuentaPorPagar, error) {
	var cuenta *models.CuentaPorPagar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		cuenta, txErr = s.lockCuenta(tx, id)
		if txErr != nil {
			return txErr
		}
		return s.aplicarPagoTx(tx, cuenta, nuevoMontoPagado)
	})
	if err != nil {
		return nil, err
	}
	return cuenta, nil
}

// MarkPaid salda la cuenta por su monto completo.
func (s *PayableService) MarkPaid(id uint) (*models.CuentaPorPagar, error) {
	var cuenta *models.CuentaPorPagar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		cuenta, txErr = s.lockCuenta(tx, id)
		if txErr != nil {
			return txErr
		}
		return s.aplicarPagoTx(tx, cuenta, cuenta.Monto)
	})
	if err != nil {
		return nil, err
	}
	return cuenta, nil
}

func (s *PayableService) lockCuenta(tx *gorm.DB, id uint) (*models.CuentaPorPagar, error) {
	var cuenta models.CuentaPorPagar
	if err := lockForUpdate(tx).First(&cuenta, id).Error; err != nil {
		if esNoEncontrado(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cuenta, nil
}

func (s *PayableService) aplicarPagoTx(tx *gorm.DB, cuenta *models.CuentaPorPagar, nuevoMontoPagado float64) error {
	if nuevoMontoPagado < 0 {
		return validationf("el monto pagado no puede ser negativo")
	}
	if nuevoMontoPagado > cuenta.Monto {
		return validationf("el monto pagado (%.2f) excede el monto de la factura (%.2f)", nuevoMontoPagado, cuenta.Monto)
	}
	if nuevoMontoPagado < cuenta.MontoPagado {
		return validationf("el monto pagado no puede disminuir")
	}

	saldo := cuenta.Monto - nuevoMontoPagado
	estado := DeriveStatus(cuenta.Estado, saldo, cuenta.FechaVencimiento.Time, s.Now())

	upd := map[string]any{
		"monto_pagado": nuevoMontoPagado,
		"saldo":        saldo,
		"estado":       estado,
	}
	if estado == models.EstadoPagado && cuenta.FechaPago == nil {
		fechaPago := models.NuevaFechaHora(s.Now())
		upd["fecha_pago"] = fechaPago
		cuenta.FechaPago = &fechaPago
	}
	if err := tx.Model(&models.CuentaPorPagar{}).Where("id = ?", cuenta.ID).Updates(upd).Error; err != nil {
		return err
	}

	cuenta.MontoPagado = nuevoMontoPagado
	cuenta.Saldo = saldo
	cuenta.Estado = estado
	return nil
}

type ActualizarPagarInput struct {
	Proveedor        string
	Monto            float64
	MontoPagado      float64
	FechaVencimiento time.Time
	Descripcion      string
}

// Update reemplaza los datos editables de la obligacion; el codigo de
// factura no se toca nunca.
func (s *PayableService) Update(id uint, in ActualizarPagarInput) (*models.CuentaPorPagar, error) {
	if strings.TrimSpace(in.Proveedor) == "" {
		return nil, validationf("el proveedor es requerido")
	}
	if in.Monto <= 0 {
		return nil, validationf("el monto debe ser mayor que cero")
	}
	if in.MontoPagado < 0 || in.MontoPagado > in.Monto {
		return nil, validationf("monto pagado fuera de rango")
	}

	var cuenta *models.CuentaPorPagar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		cuenta, txErr = s.lockCuenta(tx, id)
		if txErr != nil {
			return txErr
		}

		saldo := in.Monto - in.MontoPagado
		estado := DeriveStatus(cuenta.Estado, saldo, in.FechaVencimiento, s.Now())

		upd := map[string]any{
			"proveedor":         in.Proveedor,
			"monto":             in.Monto,
			"monto_pagado":      in.MontoPagado,
			"saldo":             saldo,
			"fecha_vencimiento": models.NuevaFecha(in.FechaVencimiento),
			"estado":            estado,
			"descripcion":       in.Descripcion,
		}
		if err := tx.Model(&models.CuentaPorPagar{}).Where("id = ?", cuenta.ID).Updates(upd).Error; err != nil {
			return err
		}

		cuenta.Proveedor = in.Proveedor
		cuenta.Monto = in.Monto
		cuenta.MontoPagado = in.MontoPagado
		cuenta.Saldo = saldo
		cuenta.FechaVencimiento = models.NuevaFecha(in.FechaVencimiento)
		cuenta.Estado = estado
		cuenta.Descripcion = in.Descripcion
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cuenta, nil
}

// CuentaPagarAbierta es una obligacion no saldada con estado derivado en
// vivo y dias de atraso.
type CuentaPagarAbierta struct {
	models.CuentaPorPagar
	DiasVencido int `json:"dias_vencido"`
}

// ListOpen devuelve las obligaciones no saldadas por vencimiento ascendente.
func (s *PayableService) ListOpen() ([]CuentaPagarAbierta, error) {
	var filas []models.CuentaPorPagar
	if err := s.db.
		Where("estado <> ?", models.EstadoPagado).
		Order("fecha_vencimiento ASC, id ASC").
		Find(&filas).Error; err != nil {
		return nil, err
	}

	hoy := s.Now()
	out := make([]CuentaPagarAbierta, 0, len(filas))
	for _, fila := range filas {
		fila.Estado = DeriveStatus(fila.Estado, fila.Saldo, fila.FechaVencimiento.Time, hoy)
		out = append(out, CuentaPagarAbierta{
			CuentaPorPagar: fila,
			DiasVencido:    DiasVencido(fila.FechaVencimiento.Time, hoy),
		})
	}
	return out, nil
}

// PagarStats resume el estado del ledger de cuentas por pagar.
type PagarStats struct {
	TotalPorPagar      float64 `json:"total_por_pagar"`
	FacturasPendientes int64   `json:"facturas_pendientes"`
	FacturasVencidas   int64   `json:"facturas_vencidas"`
	ProximasVencer     int64   `json:"proximas_vencer"` // pendientes que vencen en los proximos 7 dias
}

func (s *PayableService) Stats() (*PagarStats, error) {
	var abiertas []models.CuentaPorPagar
	if err := s.db.
		Select("saldo", "estado", "fecha_vencimiento").
		Where("estado <> ?", models.EstadoPagado).
		Find(&abiertas).Error; err != nil {
		return nil, err
	}

	hoy := s.Now()
	limite := soloFecha(hoy).AddDate(0, 0, 7)
	var st PagarStats
	for _, cuenta := range abiertas {
		st.TotalPorPagar += cuenta.Saldo
		switch DeriveStatus(cuenta.Estado, cuenta.Saldo, cuenta.FechaVencimiento.Time, hoy) {
		case models.EstadoPendiente:
			st.FacturasPendientes++
			if !soloFecha(cuenta.FechaVencimiento.Time).After(limite) {
				st.ProximasVencer++
			}
		case models.EstadoVencido:
			st.FacturasVencidas++
		}
	}
	return &st, nil
}

// Delete hace borrado logico: la fila sigue contando para la numeracion.
func (s *PayableService) Delete(id uint) error {
	res := s.db.Delete(&models.CuentaPorPagar{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll vacia el ledger por completo, incluidas las filas con borrado
// logico: la numeracion BILL arranca de nuevo. Solo para resets.
func (s *PayableService) DeleteAll() (int64, error) {
	res := s.db.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CuentaPorPagar{})
	if res.Error != nil {
		return 0, res.Error
	}
	log.Warn().Int64("eliminadas", res.RowsAffected).Msg("cuentas por pagar eliminadas en bloque")
	return res.RowsAffected, nil
}
