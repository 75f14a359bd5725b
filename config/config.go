package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config reune todo lo que la aplicacion lee del entorno. Las
// credenciales de acceso viven en variables de entorno, no en la base.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string

	AdminEmail       string
	AdminPassword    string
	EmployeeEmail    string
	EmployeePassword string
}

// Load lee .env si existe y valida que las credenciales obligatorias
// esten presentes. Un faltante es error de arranque, no de request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             os.Getenv("PORT"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		EmployeeEmail:    os.Getenv("EMPLOYEE_EMAIL"),
		EmployeePassword: os.Getenv("EMPLOYEE_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: falta JWT_SECRET")
	}

	faltantes := []string{}
	for _, v := range []struct{ nombre, valor string }{
		{"ADMIN_EMAIL", cfg.AdminEmail},
		{"ADMIN_PASSWORD", cfg.AdminPassword},
		{"EMPLOYEE_EMAIL", cfg.EmployeeEmail},
		{"EMPLOYEE_PASSWORD", cfg.EmployeePassword},
	} {
		if v.valor == "" {
			faltantes = append(faltantes, v.nombre)
		}
	}
	if len(faltantes) > 0 {
		return nil, fmt.Errorf("config: faltan credenciales en el entorno: %v", faltantes)
	}
	return cfg, nil
}
