package entity

// PetCategory представляет категорию питомца, для которого предназначен товар
type PetCategory string

const (
	PetCategoryCat  PetCategory = "cat"  // Только для кошек
	PetCategoryDog  PetCategory = "dog"  // Только для собак
	PetCategoryBoth PetCategory = "both" // Подходит и кошкам, и собакам
)

// ProductType представляет тип товара в каталоге
type ProductType string

const (
	ProductTypeFood     ProductType = "food"     // Корма и добавки
	ProductTypeToy      ProductType = "toy"      // Игрушки
	ProductTypeGrooming ProductType = "grooming" // Уход и гигиена
)

// SortKey задает порядок сортировки результатов витрины
type SortKey string

const (
	SortPopular   SortKey = "popular"    // По убыванию популярности (по умолчанию)
	SortRating    SortKey = "rating"     // По убыванию рейтинга
	SortPriceAsc  SortKey = "price-asc"  // По возрастанию цены
	SortPriceDesc SortKey = "price-desc" // По убыванию цены
)

// ViewMode представляет режим отображения результатов
// Сохраняется между визитами (persisted)
type ViewMode string

const (
	ViewGrid ViewMode = "grid" // Сетка (по умолчанию)
	ViewList ViewMode = "list" // Список
)

// ProductVariant представляет вариант товара (размер, вкус и т.п.)
type ProductVariant struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	PriceDelta float64 `json:"priceDelta,omitempty"` // Надбавка к базовой цене товара
	Stock      int     `json:"stock"`
}

// Product представляет товар витрины
// Каталог фиксируется при старте процесса, записи никогда не мутируют
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Price       float64          `json:"price"`
	Category    PetCategory      `json:"category"`
	Type        ProductType      `json:"type"`
	Rating      float64          `json:"rating"`
	Image       string           `json:"image"`
	Tags        []string         `json:"tags"`
	Stock       int              `json:"stock"`
	VetApproved bool             `json:"vetApproved"`
	Popularity  float64          `json:"popularity"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

// FiltersState представляет активные фильтры витрины
// Сериализуется в хранилище как есть (ключ orbitpaws:filters),
// поэтому имена полей повторяют формат сохраненного состояния
type FiltersState struct {
	Categories      []PetCategory `json:"categories"` // Подмножество {cat, dog}, порядок не важен
	Types           []ProductType `json:"types"`      // Подмножество {food, toy, grooming}
	Price           [2]float64    `json:"price"`      // [min, max], всегда в границах каталога
	MinRating       *float64      `json:"minRating"`  // nil = без ограничения
	VetApprovedOnly bool          `json:"vetApprovedOnly"`
}

// CartLine представляет позицию корзины
// LineID детерминирован: productId либо productId::variantId,
// на каждую пару товар+вариант существует не более одной позиции
type CartLine struct {
	LineID    string `json:"lineId"`
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Qty       int    `json:"qty"`
}

// CartState представляет содержимое корзины
// Сохраняется в хранилище под ключом orbitpaws:cart:v1
type CartState struct {
	Lines []CartLine `json:"lines"`
}

// TotalItems возвращает суммарное количество единиц по всем позициям
// Считается по сохраненным позициям без сверки с каталогом
func (s CartState) TotalItems() int {
	total := 0
	for _, line := range s.Lines {
		total += line.Qty
	}
	return total
}

// ResolvedCartLine представляет позицию корзины, сопоставленную с каталогом
// Позиции с неизвестным productId в такие представления не попадают,
// но из сохраненного состояния не удаляются
type ResolvedCartLine struct {
	CartLine
	Product    Product `json:"product"`
	UnitPrice  float64 `json:"unit_price"` // Цена единицы с учетом надбавки варианта
	LineTotal  float64 `json:"line_total"`
	OutOfStock bool    `json:"out_of_stock"`
}

// CartEvent представляет событие изменения корзины для Kafka
type CartEvent struct {
	EventType  string `json:"event_type"` // CART_LINE_ADDED, CART_LINE_REMOVED, CART_QTY_SET, CART_CLEARED
	SessionID  string `json:"session_id"`
	LineID     string `json:"line_id,omitempty"`
	ProductID  string `json:"product_id,omitempty"`
	VariantID  string `json:"variant_id,omitempty"`
	Qty        int    `json:"qty,omitempty"`
	TotalItems int    `json:"total_items"`
	Timestamp  int64  `json:"timestamp"`
}

// Chip представляет активный фильтр или поисковый запрос в виде удаляемого токена
// Key используется как адрес действия удаления (DELETE /shop/sessions/:id/chips/:key)
type Chip struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// SessionPhase представляет фазу жизненного цикла сессии витрины
type SessionPhase string

const (
	PhasePreHydration   SessionPhase = "PRE_HYDRATION"   // Состояние равно дефолтам, хранилище не опрошено
	PhaseDecidingSource SessionPhase = "DECIDING_SOURCE" // Выбор источника истины (URL или хранилище)
	PhaseSynced         SessionPhase = "SYNCED"          // Обычный режим: мутации + синхронизация URL
)
