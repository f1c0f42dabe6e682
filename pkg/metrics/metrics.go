package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время выполнения SQL запросов
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики (персистентное состояние витрины и корзины)
// =============================================================================

// RedisCacheHits - найденное сохраненное состояние по ключам
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - отсутствующее сохраненное состояние
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

// RedisErrors - ошибки Redis
// Ошибки записи глотаются бизнес-логикой, но видны в метриках
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные события корзины
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики (специфичные для OrbitPaws)
// =============================================================================

// ShopSearches - выполненные пересчеты результатов после debounce
var ShopSearches = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "shop_searches_total",
		Help: "Total number of settled search recomputations",
	},
)

// ShopSessionsActive - активные сессии витрины
var ShopSessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "shop_sessions_active",
		Help: "Current number of active browse sessions",
	},
)

// ShopSessionsSwept - сессии, вычищенные по бездействию
var ShopSessionsSwept = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "shop_sessions_swept_total",
		Help: "Total number of idle browse sessions evicted",
	},
)

// ShopURLReplaces - перезаписи канонического URL
var ShopURLReplaces = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "shop_url_replaces_total",
		Help: "Total number of canonical URL replacements",
	},
)

// ShopURLDecodeDegraded - поля URL, деградировавшие к дефолтам при декодировании
var ShopURLDecodeDegraded = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shop_url_decode_degraded_total",
		Help: "Total number of URL fields degraded to defaults during decode",
	},
	[]string{"field"},
)

// CartOperations - операции с корзиной
var CartOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Total number of cart operations",
	},
	[]string{"operation"}, // add, remove, set_qty, clear
)

// CartLinesDropped - позиции корзины, скрытые из-за отсутствия товара в каталоге
var CartLinesDropped = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "cart_lines_dropped_total",
		Help: "Total number of cart lines hidden due to missing catalog products",
	},
)
