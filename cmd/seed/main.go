// seed puebla la base de datos con el usuario administrador inicial y un
// catálogo de demostración (categorías y productos).
//
// Uso: go run ./cmd/seed
// Idempotente: si el admin ya existe no vuelve a insertar nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
)

const (
	adminEmail    = "admin@tienda.local"
	adminPhone    = "+10000000000"
	adminPassword = "Admin123!"
)

type demoProduct struct {
	name        string
	description string
	price       string
	stock       int64
	burnTime    string
}

var demoCatalog = map[string][]demoProduct{
	"Velas aromáticas": {
		{"Vela de lavanda", "Vela artesanal de cera de soja con aceite de lavanda", "14.90", 25, "40"},
		{"Vela de vainilla", "Vela de vainilla en vaso de cristal", "12.50", 30, "35"},
		{"Vela de sándalo", "Vela de sándalo con mecha de madera", "18.00", 15, "50"},
	},
	"Velas decorativas": {
		{"Vela esfera", "Vela esférica sin aroma, acabado mate", "9.90", 40, "20"},
		{"Vela columna", "Vela columna clásica", "11.00", 35, "60"},
	},
	"Accesorios": {
		{"Apagavelas de latón", "Apagavelas clásico con mango largo", "7.50", 50, "0"},
		{"Bandeja para velas", "Bandeja de cerámica resistente al calor", "13.00", 20, "0"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	existing, err := userRepo.FindByEmail(adminEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buscar admin: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		fmt.Println("El admin ya existe, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de password: %v\n", err)
		os.Exit(1)
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        adminEmail,
		Phone:        adminPhone,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "Tienda",
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		fmt.Fprintf(os.Stderr, "crear admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin creado: %s (password %s)\n", adminEmail, adminPassword)

	products := 0
	for categoryName, items := range demoCatalog {
		categoryID := uuid.New().String()
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name) VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name`,
			categoryID, categoryName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crear categoría %q: %v\n", categoryName, err)
			os.Exit(1)
		}
		// El upsert puede haber conservado el id previo
		if err := pool.QueryRow(ctx,
			`SELECT id FROM categories WHERE name = $1`, categoryName).Scan(&categoryID); err != nil {
			fmt.Fprintf(os.Stderr, "leer categoría %q: %v\n", categoryName, err)
			os.Exit(1)
		}

		for _, d := range items {
			price, _ := decimal.NewFromString(d.price)
			burn, _ := decimal.NewFromString(d.burnTime)
			p := &entity.Product{
				ID:          uuid.New().String(),
				CategoryID:  categoryID,
				Name:        d.name,
				Description: d.description,
				Price:       price,
				Stock:       d.stock,
				BurnTime:    burn,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := productRepo.Create(p); err != nil {
				fmt.Fprintf(os.Stderr, "crear producto %q: %v\n", d.name, err)
				os.Exit(1)
			}
			products++
		}
	}
	fmt.Printf("Catálogo de demostración: %d categorías, %d productos\n", len(demoCatalog), products)
}
