package main

import (
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/config"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/ledger"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/logger"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/middlewares"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/reports"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuracion incompleta")
	}

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base")
	}

	if err := db.AutoMigrate(
		&models.Producto{},
		&models.Cliente{},
		&models.Pedido{},
		&models.PedidoProducto{},
		&models.Venta{},
		&models.CuentaPorCobrar{},
		&models.CuentaPorPagar{},
	); err != nil {
		log.Fatal().Err(err).Msg("fallo la migracion")
	}

	config.SeedProductos(db)

	cobrar := ledger.NewReceivableService(db)
	pagar := ledger.NewPayableService(db)
	ventas := ledger.NewSalesService(db, cobrar)
	reportes := reports.NewService(db)

	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.SetupRoutes(r, routes.Deps{
		Cfg:      cfg,
		DB:       db,
		Ventas:   ventas,
		Cobrar:   cobrar,
		Pagar:    pagar,
		Reportes: reportes,
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Plus Graphics API"})
	})

	log.Info().Str("port", cfg.Port).Msg("servidor iniciado")
	_ = r.Run(":" + cfg.Port)
}
