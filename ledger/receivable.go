// ledger/receivable.go
package ledger

import (
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReceivableService administra el ciclo de vida de las cuentas por cobrar:
// apertura, aplicacion de pagos parciales, recalculo de saldo/estado y la
// cascada de pago total hacia la venta y el pedido de origen.
type ReceivableService struct {
	db *gorm.DB

	// Now es inyectable para fijar "hoy" en tests.
	Now func() time.Time
}

func NewReceivableService(db *gorm.DB) *ReceivableService {
	return &ReceivableService{db: db, Now: time.Now}
}

type OpenReceivableInput struct {
	ClienteID        *uint
	VentaID          *uint
	PedidoID         *uint
	Monto            float64
	MontoPagado      float64
	FechaVencimiento time.Time
	Notas            string
}

// Open crea una cuenta por cobrar nueva. El numero de factura se deriva del
// ID de la propia fila (FAC-%04d) dentro de la misma transaccion.
func (s *ReceivableService) Open(in OpenReceivableInput) (*models.CuentaPorCobrar, error) {
	var cuenta *models.CuentaPorCobrar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		cuenta, txErr = s.openTx(tx, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return cuenta, nil
}

// openTx es la version transaccional de Open; el registrador de ventas la
// invoca dentro de su propia transaccion.
func (s *ReceivableService) openTx(tx *gorm.DB, in OpenReceivableInput) (*models.CuentaPorCobrar, error) {
	if in.Monto <= 0 {
		return nil, validationf("el monto debe ser mayor que cero")
	}
	if in.MontoPagado < 0 {
		return nil, validationf("el monto pagado no puede ser negativo")
	}
	if in.MontoPagado > in.Monto {
		return nil, validationf("el monto pagado no puede exceder el monto de la factura")
	}

	saldo := in.Monto - in.MontoPagado
	cuenta := models.CuentaPorCobrar{
		ClienteID:        in.ClienteID,
		VentaID:          in.VentaID,
		PedidoID:         in.PedidoID,
		Monto:            in.Monto,
		MontoPagado:      in.MontoPagado,
		Saldo:            saldo,
		FechaVencimiento: models.NuevaFecha(in.FechaVencimiento),
		Estado:           DeriveStatus(models.EstadoPendiente, saldo, in.FechaVencimiento, s.Now()),
		Notas:            in.Notas,
	}
	// el numero de factura depende del ID: placeholder hasta conocerlo
	cuenta.NumeroFactura = "FAC-PENDIENTE"
	if err := tx.Create(&cuenta).Error; err != nil {
		return nil, err
	}

	cuenta.NumeroFactura = NumeroFacturaCobrar(cuenta.ID)
	if err := tx.Model(&models.CuentaPorCobrar{}).
		Where("id = ?", cuenta.ID).
		Update("numero_factura", cuenta.NumeroFactura).Error; err != nil {
		return nil, err
	}

	log.Info().
		Uint("cuenta_id", cuenta.ID).
		Str("numero_factura", cuenta.NumeroFactura).
		Float64("monto", cuenta.Monto).
		Msg("cuenta por cobrar abierta")
	return &cuenta, nil
}

// PagoResultado es el resultado de aplicar un pago a una cuenta por cobrar.
type PagoResultado struct {
	Cuenta  *models.CuentaPorCobrar `json:"cuenta"`
	Cascada CascadaResultado        `json:"cascada"`
}

// ApplyPayment fija el acumulado pagado de la cuenta en nuevoMontoPagado,
// recalcula saldo y estado y, si la cuenta queda saldada, propaga el pago a
// la venta y el pedido vinculados dentro de la misma transaccion.
//
// El sobrepago se rechaza, no se recorta: conserva la trazabilidad.
func (s *ReceivableService) ApplyPayment(id uint, nuevoMontoPagado float64) (*PagoResultado, error) {
	var res *PagoResultado
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cuenta, err := s.lockCuenta(tx, id)
		if err != nil {
			return err
		}
		res, err = s.aplicarPagoTx(tx, cuenta, nuevoMontoPagado)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// MarkPaid equivale a ApplyPayment(id, monto) en una sola transaccion.
func (s *ReceivableService) MarkPaid(id uint) (*PagoResultado, error) {
	var res *PagoResultado
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cuenta, err := s.lockCuenta(tx, id)
		if err != nil {
			return err
		}
		res, err = s.aplicarPagoTx(tx, cuenta, cuenta.Monto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ReceivableService) lockCuenta(tx *gorm.DB, id uint) (*models.CuentaPorCobrar, error) {
	var cuenta models.CuentaPorCobrar
	if err := lockForUpdate(tx).First(&cuenta, id).Error; err != nil {
		if esNoEncontrado(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cuenta, nil
}

func (s *ReceivableService) aplicarPagoTx(tx *gorm.DB, cuenta *models.CuentaPorCobrar, nuevoMontoPagado float64) (*PagoResultado, error) {
	if nuevoMontoPagado < 0 {
		return nil, validationf("el monto pagado no puede ser negativo")
	}
	if nuevoMontoPagado > cuenta.Monto {
		return nil, validationf("el monto pagado (%.2f) excede el monto de la factura (%.2f)", nuevoMontoPagado, cuenta.Monto)
	}
	if nuevoMontoPagado < cuenta.MontoPagado {
		return nil, validationf("el monto pagado no puede disminuir")
	}

	estadoPrevio := cuenta.Estado
	saldo := cuenta.Monto - nuevoMontoPagado
	estado := DeriveStatus(estadoPrevio, saldo, cuenta.FechaVencimiento.Time, s.Now())

	upd := tx.Model(&models.CuentaPorCobrar{}).
		Where("id = ?", cuenta.ID).
		Updates(map[string]any{
			"monto_pagado": nuevoMontoPagado,
			"saldo":        saldo,
			"estado":       estado,
		})
	if upd.Error != nil {
		return nil, upd.Error
	}

	cuenta.MontoPagado = nuevoMontoPagado
	cuenta.Saldo = saldo
	cuenta.Estado = estado

	res := PagoResultado{Cuenta: cuenta}

	// la cascada corre solo en la transicion a pagado: un segundo pago con
	// el mismo acumulado no vuelve a disparar nada
	if estado == models.EstadoPagado && estadoPrevio != models.EstadoPagado {
		ev := ReceivablePaid{CuentaID: cuenta.ID, VentaID: cuenta.VentaID, PedidoID: cuenta.PedidoID}
		cascada, err := aplicarCascada(tx, ev)
		if err != nil {
			return nil, err
		}
		res.Cascada = cascada
		log.Info().
			Uint("cuenta_id", cuenta.ID).
			Bool("venta_actualizada", cascada.VentaActualizada).
			Bool("pedido_actualizado", cascada.PedidoActualizado).
			Msg("cuenta por cobrar saldada")
	}

	return &res, nil
}

type ActualizarCobrarInput struct {
	ClienteID        *uint
	PedidoID         *uint
	Monto            float64
	MontoPagado      float64
	FechaVencimiento time.Time
	Notas            string
}

// Update reemplaza los datos editables de la cuenta. Es el camino por el
// que una fecha de vencimiento puede volver al futuro y revertir un estado
// vencido a pendiente. No dispara cascada.
func (s *ReceivableService) Update(id uint, in ActualizarCobrarInput) (*models.CuentaPorCobrar, error) {
	if in.Monto <= 0 {
		return nil, validationf("el monto debe ser mayor que cero")
	}
	if in.MontoPagado < 0 || in.MontoPagado > in.Monto {
		return nil, validationf("monto pagado fuera de rango")
	}

	var cuenta *models.CuentaPorCobrar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		cuenta, txErr = s.lockCuenta(tx, id)
		if txErr != nil {
			return txErr
		}

		saldo := in.Monto - in.MontoPagado
		estado := DeriveStatus(cuenta.Estado, saldo, in.FechaVencimiento, s.Now())

		upd := map[string]any{
			"cliente_id":        in.ClienteID,
			"pedido_id":         in.PedidoID,
			"monto":             in.Monto,
			"monto_pagado":      in.MontoPagado,
			"saldo":             saldo,
			"fecha_vencimiento": models.NuevaFecha(in.FechaVencimiento),
			"estado":            estado,
			"notas":             in.Notas,
		}
		if err := tx.Model(&models.CuentaPorCobrar{}).Where("id = ?", cuenta.ID).Updates(upd).Error; err != nil {
			return err
		}

		cuenta.ClienteID = in.ClienteID
		cuenta.PedidoID = in.PedidoID
		cuenta.Monto = in.Monto
		cuenta.MontoPagado = in.MontoPagado
		cuenta.Saldo = saldo
		cuenta.FechaVencimiento = models.NuevaFecha(in.FechaVencimiento)
		cuenta.Estado = estado
		cuenta.Notas = in.Notas
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cuenta, nil
}

// CuentaCobrarAbierta es una cuenta no saldada con su estado derivado en
// vivo y los dias de atraso calculados al momento de la lectura.
type CuentaCobrarAbierta struct {
	models.CuentaPorCobrar
	ClienteNombre string `json:"cliente_nombre"`
	DiasVencido   int    `json:"dias_vencido"`
}

// ListOpen devuelve las cuentas con estado distinto de pagado, ordenadas
// por vencimiento ascendente (la de mayor riesgo primero). El estado se
// deriva en cada lectura y no se persiste.
func (s *ReceivableService) ListOpen() ([]CuentaCobrarAbierta, error) {
	var filas []models.CuentaPorCobrar
	if err := s.db.
		Where("estado <> ?", models.EstadoPagado).
		Order("fecha_vencimiento ASC, id ASC").
		Find(&filas).Error; err != nil {
		return nil, err
	}

	nombres, err := s.nombresClientes(filas)
	if err != nil {
		return nil, err
	}

	hoy := s.Now()
	out := make([]CuentaCobrarAbierta, 0, len(filas))
	for _, fila := range filas {
		fila.Estado = DeriveStatus(fila.Estado, fila.Saldo, fila.FechaVencimiento.Time, hoy)
		abierta := CuentaCobrarAbierta{
			CuentaPorCobrar: fila,
			DiasVencido:     DiasVencido(fila.FechaVencimiento.Time, hoy),
		}
		if fila.ClienteID != nil {
			abierta.ClienteNombre = nombres[*fila.ClienteID]
		}
		out = append(out, abierta)
	}
	return out, nil
}

func (s *ReceivableService) nombresClientes(filas []models.CuentaPorCobrar) (map[uint]string, error) {
	ids := make([]uint, 0, len(filas))
	for _, fila := range filas {
		if fila.ClienteID != nil {
			ids = append(ids, *fila.ClienteID)
		}
	}
	nombres := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return nombres, nil
	}
	var clientes []models.Cliente
	if err := s.db.Select("id", "nombre").Where("id IN ?", ids).Find(&clientes).Error; err != nil {
		return nil, err
	}
	for _, cl := range clientes {
		nombres[cl.ID] = cl.Nombre
	}
	return nombres, nil
}

// CobrarStats resume el estado del ledger de cuentas por cobrar.
type CobrarStats struct {
	TotalPorCobrar     float64 `json:"total_por_cobrar"`
	FacturasPendientes int64   `json:"facturas_pendientes"`
	FacturasVencidas   int64   `json:"facturas_vencidas"`
	TotalFacturas      int64   `json:"total_facturas"`
}

// Stats deriva el estado en vivo, igual que los listados: una cuenta
// pendiente ya vencida cuenta como vencida aunque nadie la haya releido.
func (s *ReceivableService) Stats() (*CobrarStats, error) {
	var st CobrarStats
	if err := s.db.Model(&models.CuentaPorCobrar{}).Count(&st.TotalFacturas).Error; err != nil {
		return nil, err
	}

	var abiertas []models.CuentaPorCobrar
	if err := s.db.
		Select("saldo", "estado", "fecha_vencimiento").
		Where("estado <> ?", models.EstadoPagado).
		Find(&abiertas).Error; err != nil {
		return nil, err
	}

	hoy := s.Now()
	for _, cuenta := range abiertas {
		st.TotalPorCobrar += cuenta.Saldo
		switch DeriveStatus(cuenta.Estado, cuenta.Saldo, cuenta.FechaVencimiento.Time, hoy) {
		case models.EstadoPendiente:
			st.FacturasPendientes++
		case models.EstadoVencido:
			st.FacturasVencidas++
		}
	}
	return &st, nil
}

func (s *ReceivableService) Delete(id uint) error {
	res := s.db.Delete(&models.CuentaPorCobrar{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	log.Info().Uint("cuenta_id", id).Msg("cuenta por cobrar eliminada")
	return nil
}

// DeleteAll vacia el ledger completo. Irreversible; pensado para resets
// fuera de produccion. Devuelve cuantas cuentas elimino.
func (s *ReceivableService) DeleteAll() (int64, error) {
	res := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CuentaPorCobrar{})
	if res.Error != nil {
		return 0, res.Error
	}
	log.Warn().Int64("eliminadas", res.RowsAffected).Msg("cuentas por cobrar eliminadas en bloque")
	return res.RowsAffected, nil
}
