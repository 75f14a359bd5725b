package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect abre la conexion a Postgres y la devuelve. Nadie mas abre
// conexiones: el resto del programa recibe el *gorm.DB inyectado.
func Connect(cfg *Config) (*gorm.DB, error) {
	dbURL := cfg.DatabaseURL

	if dbURL == "" {
		// fallback local de desarrollo
		host := "localhost"
		user := "postgres"
		password := "12345"
		dbname := "plusgraphics"
		port := "5432"
		dbURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, password, dbname, port,
		)
	} else {
		// los hosting gestionados suelen exigir sslmode=require
		if !strings.Contains(dbURL, "sslmode=") {
			sep := "?"
			if strings.Contains(dbURL, "?") {
				sep = "&"
			}
			dbURL = dbURL + sep + "sslmode=require"
		}
		// las tablas se crean en el schema public
		if !strings.Contains(dbURL, "search_path=") {
			sep := "?"
			if strings.Contains(dbURL, "?") {
				sep = "&"
			}
			dbURL = dbURL + sep + "search_path=public"
		}
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
		// los choques de numero de factura llegan como gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("config: no se pudo conectar a la base: %w", err)
	}

	if err := db.Exec(`SET search_path TO public`).Error; err != nil {
		log.Printf("no se pudo fijar search_path public: %v", err)
	}
	if err := db.Exec(`SET TIME ZONE 'UTC'`).Error; err != nil {
		log.Printf("no se pudo fijar timezone UTC: %v", err)
	}

	return db, nil
}
