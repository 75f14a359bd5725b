// models/fecha.go
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	FormatoFecha     = "2006-01-02"
	FormatoFechaHora = "2006-01-02 15:04:05"
)

// Fecha es una fecha de calendario (sin hora). En JSON viaja como "YYYY-MM-DD".
type Fecha struct {
	time.Time
}

func NuevaFecha(t time.Time) Fecha {
	y, m, d := t.Date()
	return Fecha{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(FormatoFecha, s)
	if err != nil {
		return Fecha{}, err
	}
	return Fecha{t}, nil
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.Format(FormatoFecha) + `"`), nil
}

func (f *Fecha) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(FormatoFecha, s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

func (f Fecha) Value() (driver.Value, error) {
	return f.Time, nil
}

func (f *Fecha) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		f.Time = x
	case string:
		return f.parse(x)
	case []byte:
		return f.parse(string(x))
	case nil:
		f.Time = time.Time{}
	default:
		return fmt.Errorf("no se puede convertir %T a Fecha", v)
	}
	return nil
}

func (f *Fecha) parse(s string) error {
	// los dos ultimos layouts cubren el texto que emite sqlite
	for _, layout := range []string{
		FormatoFecha,
		FormatoFechaHora,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05-07:00",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	return fmt.Errorf("fecha invalida: %q", s)
}

func (Fecha) GormDataType() string { return "date" }

func (Fecha) GormDBDataType(_ *gorm.DB, _ *schema.Field) string {
	return "date"
}

// FechaHora es un timestamp. En JSON viaja como "YYYY-MM-DD HH:MM:SS".
type FechaHora struct {
	time.Time
}

func NuevaFechaHora(t time.Time) FechaHora {
	return FechaHora{t.Truncate(time.Second)}
}

func (f FechaHora) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.Format(FormatoFechaHora) + `"`), nil
}

func (f *FechaHora) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{FormatoFechaHora, FormatoFecha, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	return fmt.Errorf("fecha y hora invalida: %q", s)
}

func (f FechaHora) Value() (driver.Value, error) {
	return f.Time, nil
}

func (f *FechaHora) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		f.Time = x
	case string:
		return (*Fecha)(f).parse(x)
	case []byte:
		return (*Fecha)(f).parse(string(x))
	case nil:
		f.Time = time.Time{}
	default:
		return fmt.Errorf("no se puede convertir %T a FechaHora", v)
	}
	return nil
}

func (FechaHora) GormDataType() string { return "datetime" }

func (FechaHora) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "timestamptz"
	}
	return "datetime"
}
