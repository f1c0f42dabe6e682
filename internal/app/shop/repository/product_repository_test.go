package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"orbitpaws/internal/app/shop/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProductRepositoryTestSuite тестовый suite для PostgreSQL-каталога
type ProductRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ProductRepository
	sqlDB *sql.DB
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}

func (s *ProductRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewProductRepository(s.db)
}

func (s *ProductRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func productColumns() []string {
	return []string{
		"id", "name", "price", "category", "type", "rating", "image",
		"tags", "stock", "vet_approved", "popularity", "variants", "position",
	}
}

// ===================== LoadAll Tests =====================

func (s *ProductRepositoryTestSuite) TestLoadAll_Success() {
	ctx := context.Background()

	rows := sqlmock.NewRows(productColumns()).
		AddRow(
			"op-001", "OrbitVet Salmon Bites (Sensitive Stomach)", 32.0, "cat", "food", 4.7, "/img/op-001.jpg",
			[]byte(`["grain-free","vet-approved"]`), 24, true, 92.0,
			[]byte(`[{"id":"v-001a","label":"250g","priceDelta":0,"stock":18}]`), 1,
		).
		AddRow(
			"op-004", "OrbitPlay Tug Rope (Reinforced Core)", 14.0, "dog", "toy", 4.2, "/img/op-004.jpg",
			nil, 0, false, 64.0, nil, 2,
		)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" ORDER BY position ASC`)).
		WillReturnRows(rows)

	products, err := s.repo.LoadAll(ctx)

	s.NoError(err)
	s.Require().Len(products, 2)

	s.Equal("op-001", products[0].ID)
	s.Equal(entity.PetCategoryCat, products[0].Category)
	s.Equal(entity.ProductTypeFood, products[0].Type)
	s.Equal([]string{"grain-free", "vet-approved"}, products[0].Tags)
	s.Require().Len(products[0].Variants, 1)
	s.Equal("v-001a", products[0].Variants[0].ID)

	// Строки с NULL tags/variants загружаются без декодирования
	s.Equal("op-004", products[1].ID)
	s.Nil(products[1].Tags)
	s.Nil(products[1].Variants)
	s.False(products[1].VetApproved)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestLoadAll_EmptyTable() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" ORDER BY position ASC`)).
		WillReturnRows(sqlmock.NewRows(productColumns()))

	products, err := s.repo.LoadAll(context.Background())

	s.NoError(err)
	s.Empty(products)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestLoadAll_DBError() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" ORDER BY position ASC`)).
		WillReturnError(sql.ErrConnDone)

	products, err := s.repo.LoadAll(context.Background())

	s.Error(err)
	s.Nil(products)
	s.Contains(err.Error(), "failed to load products")
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestLoadAll_MalformedVariantsJSON() {
	rows := sqlmock.NewRows(productColumns()).
		AddRow(
			"op-001", "OrbitVet Salmon Bites", 32.0, "cat", "food", 4.7, "",
			nil, 24, true, 92.0, []byte(`{broken`), 1,
		)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" ORDER BY position ASC`)).
		WillReturnRows(rows)

	products, err := s.repo.LoadAll(context.Background())

	s.Error(err)
	s.Nil(products)
	s.Contains(err.Error(), "op-001")
	s.NoError(s.mock.ExpectationsWereMet())
}
