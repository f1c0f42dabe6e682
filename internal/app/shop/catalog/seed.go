package catalog

import "orbitpaws/internal/app/shop/entity"

// Seed возвращает встроенный каталог OrbitPaws
// Используется когда CATALOG_SOURCE=static и в тестах
func Seed() []entity.Product {
	return []entity.Product{
		{
			ID:          "op-001",
			Name:        "OrbitVet Salmon Bites (Sensitive Stomach)",
			Price:       32,
			Category:    entity.PetCategoryCat,
			Type:        entity.ProductTypeFood,
			Rating:      4.7,
			Image:       "/images/products/salmon-bites.jpg",
			Tags:        []string{"safe ingredients", "grain-free", "vet-approved"},
			Stock:       24,
			VetApproved: true,
			Popularity:  92,
			Variants: []entity.ProductVariant{
				{ID: "v-001a", Label: "250g", Stock: 18},
				{ID: "v-001b", Label: "500g", PriceDelta: 10, Stock: 6},
			},
		},
		{
			ID:          "op-002",
			Name:        "CalmPaws Dental Chew (Vet Formula)",
			Price:       18,
			Category:    entity.PetCategoryDog,
			Type:        entity.ProductTypeFood,
			Rating:      4.5,
			Image:       "/images/products/dental-chew.jpg",
			Tags:        []string{"fresh breath", "vet-approved", "30-day returns"},
			Stock:       40,
			VetApproved: true,
			Popularity:  86,
			Variants: []entity.ProductVariant{
				{ID: "v-002a", Label: "Small Dogs", Stock: 14},
				{ID: "v-002b", Label: "Medium Dogs", Stock: 16},
				{ID: "v-002c", Label: "Large Dogs", Stock: 10},
			},
		},
		{
			ID:          "op-003",
			Name:        "HypoSoft Shampoo (No Harsh Fragrance)",
			Price:       21,
			Category:    entity.PetCategoryBoth,
			Type:        entity.ProductTypeGrooming,
			Rating:      4.6,
			Image:       "/images/products/hyposoft-shampoo.jpg",
			Tags:        []string{"safe ingredients", "skin-friendly", "fast delivery"},
			Stock:       12,
			VetApproved: true,
			Popularity:  73,
		},
		{
			ID:          "op-004",
			Name:        "OrbitPlay Tug Rope (Reinforced Core)",
			Price:       14,
			Category:    entity.PetCategoryDog,
			Type:        entity.ProductTypeToy,
			Rating:      4.2,
			Image:       "/images/products/tug-rope.jpg",
			Tags:        []string{"durable", "training", "fast delivery"},
			Stock:       0,
			VetApproved: false,
			Popularity:  64,
		},
		{
			ID:          "op-005",
			Name:        "QuietWhisker Feather Wand (Low-Shed)",
			Price:       12,
			Category:    entity.PetCategoryCat,
			Type:        entity.ProductTypeToy,
			Rating:      4.4,
			Image:       "/images/products/feather-wand.jpg",
			Tags:        []string{"indoor play", "safe materials", "30-day returns"},
			Stock:       33,
			VetApproved: true,
			Popularity:  78,
		},
		{
			ID:          "op-006",
			Name:        "JointCare Omega Oil (Vet Blend)",
			Price:       27,
			Category:    entity.PetCategoryBoth,
			Type:        entity.ProductTypeFood,
			Rating:      4.8,
			Image:       "/images/products/omega-oil.jpg",
			Tags:        []string{"mobility", "vet-approved", "safe ingredients"},
			Stock:       9,
			VetApproved: true,
			Popularity:  95,
		},
		{
			ID:          "op-007",
			Name:        "PawGuard Nail Trimmer (Safety Stop)",
			Price:       16,
			Category:    entity.PetCategoryBoth,
			Type:        entity.ProductTypeGrooming,
			Rating:      4.3,
			Image:       "/images/products/nail-trimmer.jpg",
			Tags:        []string{"easy grip", "safe design", "fast delivery"},
			Stock:       20,
			VetApproved: true,
			Popularity:  70,
		},
		{
			ID:          "op-008",
			Name:        "PureBowl Slow Feeder (Anti-Gulp)",
			Price:       19,
			Category:    entity.PetCategoryDog,
			Type:        entity.ProductTypeGrooming,
			Rating:      4.1,
			Image:       "/images/products/slow-feeder.jpg",
			Tags:        []string{"digestive support", "dishwasher safe", "returns"},
			Stock:       15,
			VetApproved: false,
			Popularity:  60,
		},
	}
}
