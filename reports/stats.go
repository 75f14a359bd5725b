// reports/stats.go
package reports

import (
	"gorm.io/gorm"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"
)

type PedidoReciente struct {
	ID            uint             `json:"id"`
	ClienteNombre string           `json:"cliente_nombre"`
	Fecha         models.FechaHora `json:"fecha"`
	Estado        string           `json:"estado"`
	EstadoPago    string           `json:"estado_pago"`
	Total         float64          `json:"total"`
}

// StatsGenerales es el resumen global de la pantalla principal, sin
// filtro de periodo.
type StatsGenerales struct {
	GananciasTotales      float64          `json:"ganancias_totales"`
	EntregasPendientes    int64            `json:"entregas_pendientes"`
	ServiciosDisponibles  int64            `json:"servicios_disponibles"`
	TotalClientes         int64            `json:"total_clientes"`
	TotalPorCobrar        float64          `json:"total_por_cobrar"`
	TotalPorPagar         float64          `json:"total_por_pagar"`
	PagosVencidos         int64            `json:"pagos_vencidos"`
	PedidosRecientes      []PedidoReciente `json:"pedidos_recientes"`
}

func (s *Service) Generales() (*StatsGenerales, error) {
	var out *StatsGenerales
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var st StatsGenerales

		if err := tx.Table("ventas").
			Select("COALESCE(SUM(total), 0)").
			Scan(&st.GananciasTotales).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Pedido{}).
			Where("estado <> ?", models.PedidoCompletado).
			Count(&st.EntregasPendientes).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Producto{}).Count(&st.ServiciosDisponibles).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Cliente{}).Count(&st.TotalClientes).Error; err != nil {
			return err
		}
		if err := tx.Table("cuentas_por_cobrar").
			Select("COALESCE(SUM(saldo), 0)").
			Where("estado <> ?", models.EstadoPagado).
			Scan(&st.TotalPorCobrar).Error; err != nil {
			return err
		}
		if err := tx.Table("cuentas_por_pagar").
			Select("COALESCE(SUM(saldo), 0)").
			Where("estado <> ? AND deleted_at IS NULL", models.EstadoPagado).
			Scan(&st.TotalPorPagar).Error; err != nil {
			return err
		}
		hoy := truncarDia(s.Now())
		if err := tx.Model(&models.CuentaPorPagar{}).
			Where("estado <> ? AND fecha_vencimiento < ?", models.EstadoPagado, hoy).
			Count(&st.PagosVencidos).Error; err != nil {
			return err
		}

		type filaPedido struct {
			ID            uint
			ClienteNombre string
			Fecha         models.FechaHora
			Estado        string
			EstadoPago    string
			Total         float64
		}
		var filas []filaPedido
		if err := tx.Table("pedidos p").
			Select(`
				p.id                                   AS id,
				COALESCE(c.nombre, 'Sin cliente')      AS cliente_nombre,
				p.fecha                                AS fecha,
				p.estado                               AS estado,
				p.estado_pago                          AS estado_pago,
				COALESCE(SUM(pp.assigned_payment), 0)  AS total
			`).
			Joins("LEFT JOIN clientes c ON c.id = p.cliente_id").
			Joins("LEFT JOIN pedido_productos pp ON pp.pedido_id = p.id").
			Group("p.id, c.nombre, p.fecha, p.estado, p.estado_pago").
			Order("p.fecha DESC").
			Limit(5).
			Scan(&filas).Error; err != nil {
			return err
		}
		st.PedidosRecientes = make([]PedidoReciente, 0, len(filas))
		for _, f := range filas {
			st.PedidosRecientes = append(st.PedidosRecientes, PedidoReciente{
				ID:            f.ID,
				ClienteNombre: f.ClienteNombre,
				Fecha:         f.Fecha,
				Estado:        f.Estado,
				EstadoPago:    f.EstadoPago,
				Total:         redondear2(f.Total),
			})
		}

		out = &st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
