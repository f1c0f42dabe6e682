package service

import (
	"testing"

	"orbitpaws/internal/app/shop/catalog"
	"orbitpaws/internal/app/shop/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFilters() entity.FiltersState {
	bounds := catalog.New(catalog.Seed()).Bounds()
	return entity.FiltersState{Price: [2]float64{bounds.Min, bounds.Max}}
}

func resultIDs(products []entity.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

// ==================== FilterProducts Tests ====================

func TestFilterProducts_NoFiltersReturnsAll(t *testing.T) {
	results := FilterProducts(catalog.Seed(), seedFilters(), "")

	assert.Len(t, results, 8)
}

func TestFilterProducts_CategoryBothIsWildcard(t *testing.T) {
	filters := seedFilters()
	filters.Categories = []entity.PetCategory{entity.PetCategoryCat}

	results := FilterProducts(catalog.Seed(), filters, "")

	// cat-товары плюс все both-товары
	assert.ElementsMatch(t,
		[]string{"op-001", "op-003", "op-005", "op-006", "op-007"},
		resultIDs(results),
	)
}

func TestFilterProducts_BothCategoriesSelected(t *testing.T) {
	filters := seedFilters()
	filters.Categories = []entity.PetCategory{entity.PetCategoryCat, entity.PetCategoryDog}

	results := FilterProducts(catalog.Seed(), filters, "")

	assert.Len(t, results, 8)
}

func TestFilterProducts_TypeNarrows(t *testing.T) {
	filters := seedFilters()
	filters.Types = []entity.ProductType{entity.ProductTypeToy}

	results := FilterProducts(catalog.Seed(), filters, "")

	assert.ElementsMatch(t, []string{"op-004", "op-005"}, resultIDs(results))
}

func TestFilterProducts_PriceBoundsInclusive(t *testing.T) {
	filters := seedFilters()
	filters.Price = [2]float64{14, 21}

	results := FilterProducts(catalog.Seed(), filters, "")

	// 14 и 21 попадают в диапазон
	assert.ElementsMatch(t,
		[]string{"op-002", "op-003", "op-004", "op-007", "op-008"},
		resultIDs(results),
	)
}

func TestFilterProducts_MinRating(t *testing.T) {
	filters := seedFilters()
	rating := 4.5
	filters.MinRating = &rating

	results := FilterProducts(catalog.Seed(), filters, "")

	assert.ElementsMatch(t, []string{"op-001", "op-002", "op-003", "op-006"}, resultIDs(results))
}

func TestFilterProducts_VetApprovedOnly(t *testing.T) {
	filters := seedFilters()
	filters.VetApprovedOnly = true

	results := FilterProducts(catalog.Seed(), filters, "")

	assert.NotContains(t, resultIDs(results), "op-004")
	assert.NotContains(t, resultIDs(results), "op-008")
	assert.Len(t, results, 6)
}

func TestFilterProducts_SearchMatchesNameAndTags(t *testing.T) {
	// "mobility" есть только в тегах op-006
	results := FilterProducts(catalog.Seed(), seedFilters(), "mobility")
	assert.Equal(t, []string{"op-006"}, resultIDs(results))

	// Поиск без учета регистра по имени
	results = FilterProducts(catalog.Seed(), seedFilters(), "SALMON")
	assert.Equal(t, []string{"op-001"}, resultIDs(results))
}

func TestFilterProducts_SearchBlankQueryIgnored(t *testing.T) {
	results := FilterProducts(catalog.Seed(), seedFilters(), "   ")

	assert.Len(t, results, 8)
}

func TestFilterProducts_CombinedPasses(t *testing.T) {
	// Все проходы вместе: vet-only + запрос "omega" оставляет ровно op-006
	filters := seedFilters()
	filters.VetApprovedOnly = true

	results := FilterProducts(catalog.Seed(), filters, "omega")

	require.Len(t, results, 1)
	assert.Equal(t, "op-006", results[0].ID)
}

func TestFilterProducts_DoesNotMutateInput(t *testing.T) {
	products := catalog.Seed()
	filters := seedFilters()
	filters.Types = []entity.ProductType{entity.ProductTypeFood}

	FilterProducts(products, filters, "")

	assert.Equal(t, catalog.Seed(), products)
}

// ==================== SortProducts Tests ====================

func TestSortProducts_Popular(t *testing.T) {
	results := SortProducts(catalog.Seed(), entity.SortPopular)

	assert.Equal(t, "op-006", results[0].ID) // popularity 95
	assert.Equal(t, "op-001", results[1].ID) // popularity 92
	assert.Equal(t, "op-008", results[7].ID) // popularity 60
}

func TestSortProducts_Rating(t *testing.T) {
	results := SortProducts(catalog.Seed(), entity.SortRating)

	assert.Equal(t, "op-006", results[0].ID) // 4.8
	assert.Equal(t, "op-008", results[7].ID) // 4.1
}

func TestSortProducts_PriceAsc(t *testing.T) {
	results := SortProducts(catalog.Seed(), entity.SortPriceAsc)

	assert.Equal(t, "op-005", results[0].ID) // 12
	assert.Equal(t, "op-001", results[7].ID) // 32
}

func TestSortProducts_PriceDesc(t *testing.T) {
	results := SortProducts(catalog.Seed(), entity.SortPriceDesc)

	assert.Equal(t, "op-001", results[0].ID)
	assert.Equal(t, "op-005", results[7].ID)
}

func TestSortProducts_StableOnTies(t *testing.T) {
	a := entity.Product{ID: "a", Price: 10}
	b := entity.Product{ID: "b", Price: 10}
	c := entity.Product{ID: "c", Price: 10}

	results := SortProducts([]entity.Product{a, b, c}, entity.SortPriceAsc)

	// Равные ключи сохраняют входной (каталожный) порядок
	assert.Equal(t, []string{"a", "b", "c"}, resultIDs(results))
}

func TestSortProducts_ReturnsCopy(t *testing.T) {
	products := catalog.Seed()

	SortProducts(products, entity.SortPriceDesc)

	assert.Equal(t, "op-001", products[0].ID)
}
