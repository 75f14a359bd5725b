// ledger/errors.go
package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: el pedido, producto, venta o cuenta referida no existe.
	ErrNotFound = errors.New("registro no encontrado")

	// ErrCodigoDuplicado: colision de codigo de factura que persistio tras
	// agotar los reintentos de generacion.
	ErrCodigoDuplicado = errors.New("codigo de factura duplicado, reintente la operacion")
)

// ValidationError rechaza una mutacion sin aplicarla: montos negativos,
// sobrepago, campos requeridos ausentes.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reporta si err es un error de validacion.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
