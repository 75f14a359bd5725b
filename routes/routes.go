package routes

import (
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/config"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/controllers"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/ledger"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/middlewares"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/reports"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps reune todo lo que las rutas necesitan. Se construye una vez en
// main y se inyecta; no hay estado global.
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Ventas   *ledger.SalesService
	Cobrar   *ledger.ReceivableService
	Pagar    *ledger.PayableService
	Reportes *reports.Service
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	auth := controllers.NewAuthController(deps.Cfg)
	productos := controllers.NewProductoController(deps.DB)
	clientes := controllers.NewClienteController(deps.DB)
	pedidos := controllers.NewPedidoController(deps.DB)
	ventas := controllers.NewVentaController(deps.Ventas)
	cobrar := controllers.NewCobrarController(deps.Cobrar)
	pagar := controllers.NewPagarController(deps.Pagar)
	reportes := controllers.NewReportsController(deps.Reportes)

	api := r.Group("/api")
	{
		api.POST("/auth/login", auth.Login)

		protegido := api.Group("/", middlewares.AuthMiddleware())
		{
			protegido.GET("/auth/verify", auth.Verify)

			producto := protegido.Group("/productos")
			{
				producto.GET("", productos.List)
				producto.GET("/:id", productos.Get)
				producto.POST("", productos.Create)
				producto.PUT("/:id", productos.Update)
				producto.DELETE("/:id", productos.Delete)
			}

			cliente := protegido.Group("/clientes")
			{
				cliente.GET("", clientes.List)
				cliente.GET("/:id", clientes.Get)
				cliente.POST("", clientes.Create)
				cliente.PUT("/:id", clientes.Update)
				cliente.DELETE("/:id", clientes.Delete)
			}

			pedido := protegido.Group("/pedidos")
			{
				pedido.GET("", pedidos.List)
				pedido.GET("/pendientes", pedidos.Pendientes)
				pedido.POST("", pedidos.Create)
				pedido.PUT("/:id", pedidos.Update)
				pedido.PUT("/:id/estado", pedidos.UpdateEstado)
				pedido.PUT("/:id/pago", pedidos.UpdatePago)
				pedido.DELETE("/:id", pedidos.Delete)
			}

			venta := protegido.Group("/ventas")
			{
				venta.GET("", ventas.List)
				venta.POST("", ventas.Create)
				venta.DELETE("/:id", ventas.Delete)
			}

			porCobrar := protegido.Group("/cuentas-por-cobrar")
			{
				porCobrar.GET("", cobrar.List)
				porCobrar.GET("/stats", cobrar.Stats)
				porCobrar.POST("", cobrar.Create)
				porCobrar.PUT("/:id", cobrar.Update)
				porCobrar.PUT("/:id/marcar-pagado", cobrar.MarcarPagado)
				porCobrar.DELETE("/all", cobrar.DeleteAll)
				porCobrar.DELETE("/:id", cobrar.Delete)
			}

			porPagar := protegido.Group("/cuentas-por-pagar")
			{
				porPagar.GET("", pagar.List)
				porPagar.GET("/stats", pagar.Stats)
				porPagar.POST("", pagar.Create)
				porPagar.PUT("/:id", pagar.Update)
				porPagar.PUT("/:id/marcar-pagado", pagar.MarcarPagado)
				porPagar.DELETE("/all", pagar.DeleteAll)
				porPagar.DELETE("/:id", pagar.Delete)
			}

			reporte := protegido.Group("/reportes")
			{
				reporte.GET("/dashboard", reportes.Dashboard)
				reporte.GET("/ingresos-tipo", reportes.IngresosTipo)
				reporte.GET("/tendencia", reportes.Tendencia)
				reporte.GET("/productos-top", reportes.ProductosTop)
				reporte.GET("/clientes-top", reportes.ClientesTop)
			}

			protegido.GET("/dashboard/stats", reportes.StatsGenerales)
		}
	}
}
