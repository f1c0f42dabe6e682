package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orbitpaws/internal/app/shop/entity"
	"orbitpaws/pkg/metrics"
)

// productRow - строка таблицы products
// Теги и варианты хранятся как JSONB
type productRow struct {
	ID          string  `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name"`
	Price       float64 `gorm:"column:price"`
	Category    string  `gorm:"column:category"`
	Type        string  `gorm:"column:type"`
	Rating      float64 `gorm:"column:rating"`
	Image       string  `gorm:"column:image"`
	Tags        []byte  `gorm:"column:tags"`
	Stock       int     `gorm:"column:stock"`
	VetApproved bool    `gorm:"column:vet_approved"`
	Popularity  float64 `gorm:"column:popularity"`
	Variants    []byte  `gorm:"column:variants"`
	Position    int     `gorm:"column:position"` // Каталожный порядок
}

func (productRow) TableName() string {
	return "products"
}

// productRepository реализует ProductRepository поверх PostgreSQL через GORM
// Каталог только читается: никаких Create/Update/Delete
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает репозиторий каталога
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// LoadAll загружает весь каталог в каталожном порядке
// Вызывается один раз при старте процесса
func (r *productRepository) LoadAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewDbTimer("shop-service", metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var rows []productRow
	result := r.db.WithContext(ctx).Order("position ASC").Find(&rows)
	if result.Error != nil {
		metrics.RecordDbError("shop-service", metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to load products: %w", result.Error)
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		product, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("failed to decode product %s: %w", row.ID, err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (row productRow) toEntity() (entity.Product, error) {
	product := entity.Product{
		ID:          row.ID,
		Name:        row.Name,
		Price:       row.Price,
		Category:    entity.PetCategory(row.Category),
		Type:        entity.ProductType(row.Type),
		Rating:      row.Rating,
		Image:       row.Image,
		Stock:       row.Stock,
		VetApproved: row.VetApproved,
		Popularity:  row.Popularity,
	}

	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &product.Tags); err != nil {
			return entity.Product{}, fmt.Errorf("invalid tags json: %w", err)
		}
	}
	if len(row.Variants) > 0 {
		if err := json.Unmarshal(row.Variants, &product.Variants); err != nil {
			return entity.Product{}, fmt.Errorf("invalid variants json: %w", err)
		}
	}

	return product, nil
}

// OpenGormDB оборачивает существующее *sql.DB соединение в GORM
// Соединение открывается в main через pgx stdlib драйвер
func OpenGormDB(conn *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, nil
}
