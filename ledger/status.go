// ledger/status.go
package ledger

import (
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"
)

// DeriveStatus calcula el estado canonico de una cuenta a partir de su
// saldo y su fecha de vencimiento. Es puro: quien lista deriva en cada
// lectura sin persistir, quien aplica pagos persiste el resultado.
//
//   - saldo <= 0            -> pagado (terminal)
//   - pendiente y vencida   -> vencido
//   - vencido y ya no vence -> pendiente (la fecha de vencimiento se edito)
//   - en otro caso          -> sin cambio
func DeriveStatus(actual string, saldo float64, vencimiento, hoy time.Time) string {
	if saldo <= 0 {
		return models.EstadoPagado
	}
	venc := soloFecha(vencimiento)
	dia := soloFecha(hoy)
	switch {
	case actual == models.EstadoPendiente && dia.After(venc):
		return models.EstadoVencido
	case actual == models.EstadoVencido && !dia.After(venc):
		return models.EstadoPendiente
	}
	return actual
}

// DiasVencido devuelve max(0, hoy - vencimiento) en dias de calendario.
func DiasVencido(vencimiento, hoy time.Time) int {
	d := int(soloFecha(hoy).Sub(soloFecha(vencimiento)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func soloFecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
