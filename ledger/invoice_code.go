// ledger/invoice_code.go
package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"gorm.io/gorm"
)

const prefijoPagar = "BILL"

// NumeroFacturaCobrar deriva el numero de factura de una cuenta por cobrar
// a partir de su propio ID. Sin contador aparte, sin riesgo de colision;
// el storage garantiza que los IDs no se reutilizan.
func NumeroFacturaCobrar(id uint) string {
	return fmt.Sprintf("FAC-%04d", id)
}

// siguienteCodigoPagar lee el codigo BILL mas alto dentro de la transaccion
// del llamador y suma uno. Recorre tambien filas borradas logicamente para
// que un codigo nunca se re-emita; la unicidad real la garantiza el indice
// unico de codigo_factura mas el reintento del caller ante duplicado.
func siguienteCodigoPagar(tx *gorm.DB) (string, error) {
	var ultima models.CuentaPorPagar
	err := tx.Unscoped().
		Where("codigo_factura LIKE ?", prefijoPagar+"%").
		Order("id DESC").
		First(&ultima).Error

	n := 1
	switch {
	case err == nil:
		if v, convErr := strconv.Atoi(strings.TrimPrefix(ultima.CodigoFactura, prefijoPagar)); convErr == nil {
			n = v + 1
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// primera cuenta: BILL001
	default:
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefijoPagar, n), nil
}
