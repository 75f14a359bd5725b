// ledger/events.go
package ledger

import (
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"gorm.io/gorm"
)

// ReceivablePaid se emite cuando una cuenta por cobrar queda saldada y se
// consume de forma sincrona dentro de la misma transaccion que la saldo:
// o aterrizan las tres escrituras (cuenta, venta, pedido) o ninguna.
type ReceivablePaid struct {
	CuentaID uint
	VentaID  *uint
	PedidoID *uint
}

// CascadaResultado reporta que entidades vinculadas alcanzo la cascada.
type CascadaResultado struct {
	VentaActualizada  bool `json:"venta_actualizada"`
	PedidoActualizado bool `json:"pedido_actualizado"`
}

// aplicarCascada propaga el pago total a la venta de origen y al pedido,
// directo o alcanzable a traves de la venta.
func aplicarCascada(tx *gorm.DB, ev ReceivablePaid) (CascadaResultado, error) {
	var res CascadaResultado

	pedidoID := ev.PedidoID
	if ev.VentaID != nil {
		if err := tx.Model(&models.Venta{}).
			Where("id = ?", *ev.VentaID).
			Update("estado_pago", models.EstadoPagado).Error; err != nil {
			return res, err
		}
		res.VentaActualizada = true

		if pedidoID == nil {
			var venta models.Venta
			if err := tx.Select("id", "pedido_id").First(&venta, *ev.VentaID).Error; err == nil {
				pedidoID = venta.PedidoID
			} else if !esNoEncontrado(err) {
				return res, err
			}
		}
	}

	if pedidoID != nil {
		if err := tx.Model(&models.Pedido{}).
			Where("id = ?", *pedidoID).
			Update("estado_pago", models.EstadoPagado).Error; err != nil {
			return res, err
		}
		res.PedidoActualizado = true
	}

	return res, nil
}
