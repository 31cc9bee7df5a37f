// seed crea el esquema del motor de stock y carga un catálogo de demostración
// de prendas de ceremonia.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquiler-stock-api/internal/domain/stock"
	"github.com/jhoicas/Alquiler-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Alquiler-stock-api/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS stock_items (
	id                UUID PRIMARY KEY,
	category          TEXT NOT NULL CHECK (category IN ('jacket', 'vest', 'trouser', 'accessory')),
	sub_category      TEXT,
	reference         TEXT NOT NULL,
	size              TEXT NOT NULL,
	color             TEXT,
	rental_price      NUMERIC(12,2) NOT NULL DEFAULT 0,
	quantity_on_hand  INTEGER NOT NULL CHECK (quantity_on_hand >= 0),
	quantity_reserved INTEGER NOT NULL CHECK (quantity_reserved >= 0),
	alert_threshold   INTEGER NOT NULL CHECK (alert_threshold >= 0),
	search_text       TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_movements (
	id            UUID PRIMARY KEY,
	stock_item_id UUID NOT NULL REFERENCES stock_items(id),
	type          TEXT NOT NULL CHECK (type IN ('IN', 'OUT', 'RESERVE', 'RETURN', 'CANCEL', 'DESTROY', 'LOSS')),
	quantity      INTEGER NOT NULL CHECK (quantity > 0),
	movement_date TIMESTAMPTZ NOT NULL,
	planned_date  DATE,
	return_date   DATE,
	contract_id   TEXT,
	vendor        TEXT NOT NULL,
	comment       TEXT,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_movements_item_date ON stock_movements (stock_item_id, movement_date DESC);
CREATE INDEX IF NOT EXISTS idx_movements_reservations ON stock_movements (stock_item_id, planned_date, return_date)
	WHERE type = 'RESERVE' AND planned_date IS NOT NULL AND return_date IS NOT NULL;

CREATE TABLE IF NOT EXISTS stock_alerts (
	id                    UUID PRIMARY KEY,
	stock_item_id         UUID NOT NULL REFERENCES stock_items(id),
	reference             TEXT NOT NULL,
	size                  TEXT NOT NULL,
	quantity_at_detection INTEGER NOT NULL,
	threshold             INTEGER NOT NULL,
	message               TEXT NOT NULL,
	active                BOOLEAN NOT NULL,
	detected_at           TIMESTAMPTZ NOT NULL
);

-- A lo sumo una alerta activa por artículo, garantizado en almacenamiento.
CREATE UNIQUE INDEX IF NOT EXISTS idx_alerts_one_active ON stock_alerts (stock_item_id) WHERE active;
`

// demoItem artículo de demostración.
type demoItem struct {
	category, subCategory, reference, size, color string
	price                                         string
	onHand                                        int
}

var demoCatalog = []demoItem{
	{"jacket", "chaqué", "Chaqué Clásico", "50", "gris marengo", "120.00", 8},
	{"jacket", "chaqué", "Chaqué Clásico", "52", "gris marengo", "120.00", 10},
	{"jacket", "frac", "Frac Gala", "52", "negro", "150.00", 4},
	{"jacket", "esmoquin", "Esmoquin Milano", "54", "azul noche", "135.00", 6},
	{"vest", "clásico", "Chaleco Piqué", "50", "marfil", "35.00", 12},
	{"vest", "cruzado", "Chaleco Fantasía", "52", "plata", "40.00", 9},
	{"trouser", "", "Pantalón Raya Diplomática", "50", "gris", "45.00", 15},
	{"trouser", "", "Pantalón Esmoquin", "52", "negro", "45.00", 11},
	{"accessory", "", "Corbata Lavallière", "U", "perla", "12.00", 20},
	{"accessory", "", "Fajín Seda", "U", "burdeos", "15.00", 14},
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

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "crear esquema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("esquema creado")

	for _, d := range demoCatalog {
		_, err := pool.Exec(ctx, `
			INSERT INTO stock_items (id, category, sub_category, reference, size, color, rental_price,
				quantity_on_hand, quantity_reserved, alert_threshold, search_text, created_at, updated_at)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, $8, 0, 5, $9, now(), now())
			ON CONFLICT DO NOTHING`,
			uuid.New().String(), d.category, d.subCategory, d.reference, d.size, d.color, d.price, d.onHand,
			stock.SearchText(d.reference, d.size, d.color),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insertar %s %s: %v\n", d.reference, d.size, err)
			os.Exit(1)
		}
	}
	fmt.Printf("catálogo de demostración cargado (%d artículos)\n", len(demoCatalog))
}
