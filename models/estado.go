// models/estado.go
package models

// Estados de cuentas por cobrar / pagar y de pago de ventas y pedidos.
const (
	EstadoPendiente = "pendiente"
	EstadoVencido   = "vencido"
	EstadoPagado    = "pagado"
)

// Estados de avance de un pedido. El ledger solo distingue "completado";
// el resto los administra el flujo de pedidos.
const (
	PedidoPendiente  = "pendiente"
	PedidoEnProceso  = "en_proceso"
	PedidoCompletado = "completado"
)
