// ledger/sales.go
package ledger

import (
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// plazoCobroDias: dias de credito que se dan al abrir la cuenta por cobrar
// de una venta pendiente de pago.
const plazoCobroDias = 30

// SalesService convierte pedidos completados (o capturas directas de
// producto + cantidad) en ventas inmutables, y abre la cuenta por cobrar
// cuando la venta queda pendiente de pago.
type SalesService struct {
	db      *gorm.DB
	cuentas *ReceivableService

	Now func() time.Time
}

func NewSalesService(db *gorm.DB, cuentas *ReceivableService) *SalesService {
	return &SalesService{db: db, cuentas: cuentas, Now: time.Now}
}

type RegistrarVentaInput struct {
	PedidoID   *uint
	ProductoID *uint
	ClienteID  *uint
	Cantidad   int64
	EstadoPago string // pendiente | pagado; vacio = pendiente
}

type RegistrarVentaResultado struct {
	Venta          *models.Venta `json:"venta"`
	CuentaGenerada bool          `json:"cuenta_por_cobrar_generada"`
	NumeroFactura  string        `json:"numero_factura,omitempty"`
}

// Record registra una venta. Con PedidoID el total se calcula sumando
// cantidad x precio vigente sobre todos los items del pedido; sin el, es
// precio del producto x cantidad. El total queda fijo al persistir.
func (s *SalesService) Record(in RegistrarVentaInput) (*RegistrarVentaResultado, error) {
	estadoPago := in.EstadoPago
	if estadoPago == "" {
		estadoPago = models.EstadoPendiente
	}
	if estadoPago != models.EstadoPendiente && estadoPago != models.EstadoPagado {
		return nil, validationf("estado_pago invalido: %q", estadoPago)
	}
	if in.PedidoID == nil && in.ProductoID == nil {
		return nil, validationf("se requiere pedido_id o producto_id")
	}
	cantidad := in.Cantidad
	if cantidad <= 0 {
		cantidad = 1
	}

	var res RegistrarVentaResultado
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var (
			total     float64
			clienteID *uint
			err       error
		)
		if in.PedidoID != nil {
			total, clienteID, err = s.totalDesdePedido(tx, *in.PedidoID)
		} else {
			total, err = s.totalDesdeProducto(tx, *in.ProductoID, cantidad)
			clienteID = in.ClienteID
		}
		if err != nil {
			return err
		}

		venta := models.Venta{
			ClienteID:  clienteID,
			ProductoID: in.ProductoID,
			PedidoID:   in.PedidoID,
			Cantidad:   cantidad,
			Total:      total,
			Fecha:      models.NuevaFechaHora(s.Now()),
			EstadoPago: estadoPago,
		}
		if err := tx.Create(&venta).Error; err != nil {
			return err
		}
		res.Venta = &venta

		switch estadoPago {
		case models.EstadoPendiente:
			// venta a credito: se abre la cuenta por cobrar en la misma
			// transaccion, con 30 dias de plazo
			cuenta, err := s.cuentas.openTx(tx, OpenReceivableInput{
				ClienteID:        clienteID,
				VentaID:          &venta.ID,
				PedidoID:         in.PedidoID,
				Monto:            total,
				FechaVencimiento: s.Now().AddDate(0, 0, plazoCobroDias),
			})
			if err != nil {
				return err
			}
			res.CuentaGenerada = true
			res.NumeroFactura = cuenta.NumeroFactura
		case models.EstadoPagado:
			// pago inmediato: la cascada hacia el pedido corre de una vez
			if in.PedidoID != nil {
				if err := tx.Model(&models.Pedido{}).
					Where("id = ?", *in.PedidoID).
					Update("estado_pago", models.EstadoPagado).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("venta_id", res.Venta.ID).
		Float64("total", res.Venta.Total).
		Bool("cuenta_generada", res.CuentaGenerada).
		Msg("venta registrada")
	return &res, nil
}

func (s *SalesService) totalDesdePedido(tx *gorm.DB, pedidoID uint) (float64, *uint, error) {
	var pedido models.Pedido
	if err := tx.First(&pedido, pedidoID).Error; err != nil {
		if esNoEncontrado(err) {
			return 0, nil, ErrNotFound
		}
		return 0, nil, err
	}

	// precio vigente del producto al momento de la venta
	type linea struct {
		Cantidad int64
		Precio   float64
	}
	var lineas []linea
	if err := tx.Table("pedido_productos pp").
		Select("pp.cantidad, pr.precio").
		Joins("INNER JOIN productos pr ON pr.id = pp.producto_id").
		Where("pp.pedido_id = ?", pedidoID).
		Scan(&lineas).Error; err != nil {
		return 0, nil, err
	}

	var total float64
	for _, l := range lineas {
		total += float64(l.Cantidad) * l.Precio
	}
	return total, pedido.ClienteID, nil
}

func (s *SalesService) totalDesdeProducto(tx *gorm.DB, productoID uint, cantidad int64) (float64, error) {
	var producto models.Producto
	if err := tx.Select("id", "precio").First(&producto, productoID).Error; err != nil {
		if esNoEncontrado(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return producto.Precio * float64(cantidad), nil
}

// VentaConDatos es una venta anotada con los nombres que la UI muestra.
type VentaConDatos struct {
	models.Venta
	ClienteNombre  string `json:"cliente_nombre"`
	ProductoNombre string `json:"producto_nombre"`
}

// List devuelve las ventas mas recientes primero.
func (s *SalesService) List() ([]VentaConDatos, error) {
	var filas []VentaConDatos
	err := s.db.Table("ventas v").
		Select(`
			v.*,
			COALESCE(c.nombre, '') AS cliente_nombre,
			COALESCE(p.nombre, '') AS producto_nombre
		`).
		Joins("LEFT JOIN clientes c ON c.id = v.cliente_id").
		Joins("LEFT JOIN productos p ON p.id = v.producto_id").
		Order("v.id DESC").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	return filas, nil
}

func (s *SalesService) Delete(id uint) error {
	res := s.db.Delete(&models.Venta{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
