// seed genera un script SQL con datos de demostración (perfil, usuario admin,
// proveedor por defecto y catálogo de productos) a partir de un CSV de catálogo.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual. El CSV viene de
// exportaciones de hojas de cálculo en Latin-1, por eso se decodifica ISO-8859-1.
// Formato: nombre;categoria;unidad;stock;min;max;precio
// Escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	demoProfileName = "Tienda Demo"
	demoAdminEmail  = "admin@demo.local"
	demoAdminPass   = "demo-cambiar-123"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 7
	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoAdminPass), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hashear password: %v\n", err)
		os.Exit(1)
	}

	profileID := uuid.NewString()
	adminID := uuid.NewString()
	supplierID := uuid.NewString()

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_demo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Datos de demostración\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + "\n\n")

	fmt.Fprintf(out, "INSERT INTO profiles (id, name) VALUES ('%s', '%s');\n\n",
		profileID, escapeSQL(demoProfileName))

	fmt.Fprintf(out, "INSERT INTO users (id, profile_id, email, password_hash, name, role)\n")
	fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', 'Administrador Demo', 'admin');\n\n",
		adminID, profileID, demoAdminEmail, string(hash))

	fmt.Fprintf(out, "INSERT INTO suppliers (id, profile_id, name, contact)\n")
	fmt.Fprintf(out, "VALUES ('%s', '%s', 'default_', '')\n", supplierID, profileID)
	out.WriteString("ON CONFLICT (profile_id, name) DO NOTHING;\n\n")

	out.WriteString("-- Catálogo\n")
	count := 0
	for i, rec := range records {
		// Saltar cabecera si la primera fila no trae números
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		fmt.Fprintf(out, "INSERT INTO products (id, profile_id, supplier_id, sku, name, category, current_stock, min_stock, max_stock, unit_price, unit)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', 'SKU-%04d', '%s', '%s', %s, %s, %s, %s, '%s');\n",
			uuid.NewString(), profileID, supplierID, i,
			escapeSQL(name), escapeSQL(strings.TrimSpace(rec[1])),
			strings.TrimSpace(rec[3]), strings.TrimSpace(rec[4]), strings.TrimSpace(rec[5]),
			strings.TrimSpace(rec[6]), escapeSQL(strings.TrimSpace(rec[2])),
		)
		count++
	}

	fmt.Printf("Generado %s: %d productos (login %s / %s)\n", outPath, count, demoAdminEmail, demoAdminPass)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
