package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"SigPull/internal/domain/repository"
	mid "SigPull/internal/middleware"
	internalrepo "SigPull/internal/repository"
	"SigPull/internal/service/scanner"
	"SigPull/internal/service/sessions"
	"SigPull/internal/usecase"
	pkgcache "SigPull/pkg/cache"
	pkgch "SigPull/pkg/clickhouse"
	"SigPull/pkg/config"
	pkgkafka "SigPull/pkg/kafka"
	"SigPull/pkg/logger"
	"SigPull/pkg/metrics"
	"SigPull/pkg/server"
)

// Backend bundles the configured history sink and whatever infrastructure
// client backs it. Only the fields matching cfg.Backend.Type are set.
type Backend struct {
	Sink     repository.HistorySink
	Querier  repository.HistoryQuerier // clickhouse only
	CH       *pkgch.Client
	Producer *pkgkafka.Producer
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return logger.New(&logger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSessionTable builds the market session calendar from config.
func ProvideSessionTable(cfg *config.Config) *sessions.Table {
	if len(cfg.Sessions) == 0 {
		return sessions.NewTable(nil)
	}
	windows := make([]sessions.Window, 0, len(cfg.Sessions))
	for _, w := range cfg.Sessions {
		days := make([]time.Weekday, 0, len(w.Days))
		for _, d := range w.Days {
			days = append(days, time.Weekday(d))
		}
		windows = append(windows, sessions.Window{Name: w.Name, Open: w.Open, Close: w.Close, Days: days})
	}
	return sessions.NewTable(windows)
}

// ProvideAnalyzer creates the evaluation use case.
func ProvideAnalyzer(tbl *sessions.Table) *usecase.Analyzer {
	return usecase.NewAnalyzer(tbl)
}

// ProvideCache selects Redis when enabled, in-process memory otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	c, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideBackend builds the history sink for the configured backend type.
func ProvideBackend(cfg *config.Config) (*Backend, error) {
	switch cfg.Backend.Type {
	case "clickhouse":
		client, err := provideClickHouseClient(cfg)
		if err != nil {
			return nil, err
		}
		table := cfg.ClickHouse.Table
		if table == "" {
			table = "analyses"
		}
		hist := internalrepo.NewClickHouseHistory(client.DB(), cfg.ClickHouse.Database+"."+table)
		return &Backend{Sink: hist, Querier: hist, CH: client}, nil

	case "kafka":
		producer, err := provideKafkaProducer(cfg)
		if err != nil {
			return nil, err
		}
		sink := internalrepo.NewKafkaHistory(producer, cfg.Kafka.Topic, cfg.Kafka.SummaryTopic)
		return &Backend{Sink: sink, Producer: producer}, nil

	case "file":
		sink := internalrepo.NewFileHistory(cfg.Backend.File)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sink.Init(ctx); err != nil {
			return nil, err
		}
		return &Backend{Sink: sink}, nil

	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend.Type)
	}
}

func provideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	table := cfg.ClickHouse.Table
	if table == "" {
		table = "analyses"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.AnalysesDDL(cfg.ClickHouse.Database, table)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

func provideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideResultProcessor routes finished cycles to the configured sink.
func ProvideResultProcessor(b *Backend, m repository.Metrics, cfg *config.Config) *usecase.ResultProcessor {
	var kafkaSink, chSink, fileSink repository.HistorySink
	switch cfg.Backend.Type {
	case "kafka":
		kafkaSink = b.Sink
	case "clickhouse":
		chSink = b.Sink
	case "file":
		fileSink = b.Sink
	}
	return usecase.NewResultProcessor(kafkaSink, chSink, fileSink, m, cfg.Backend.Type)
}

// ProvideSnapshotSource creates the scanner HTTP client.
func ProvideSnapshotSource(cfg *config.Config) repository.SnapshotSource {
	opts := []scanner.ClientOption{}
	if cfg.Scanner.Timeframe != "" {
		opts = append(opts, scanner.WithTimeframe(cfg.Scanner.Timeframe))
	}
	if cfg.Scanner.RequestTimeout > 0 {
		opts = append(opts, scanner.WithRequestTimeout(cfg.Scanner.RequestTimeout))
	}
	if cfg.Scanner.MaxRPS > 0 {
		opts = append(opts, scanner.WithMaxRPS(cfg.Scanner.MaxRPS))
	}
	return scanner.NewClient(cfg.Scanner.BaseURL, cfg.Scanner.APIKey, opts...)
}

// ProvideScanRunner creates the periodic scan loop.
func ProvideScanRunner(
	source repository.SnapshotSource,
	analyzer *usecase.Analyzer,
	proc *usecase.ResultProcessor,
	cache pkgcache.Service,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.ScanRunner {
	return usecase.NewScanRunner(source, analyzer, proc, cache, m, l,
		cfg.Scanner.Symbols, cfg.Scanner.ScanInterval)
}

// ProvideSnapshotCollector creates the WebSocket ingestion path, or nil when
// no stream URL is configured.
func ProvideSnapshotCollector(
	analyzer *usecase.Analyzer,
	cache pkgcache.Service,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.SnapshotCollector {
	if cfg.Scanner.WebSocketURL == "" {
		return nil
	}
	stream := scanner.NewStream(
		cfg.Scanner.APIKey,
		cfg.Scanner.WebSocketURL,
		cfg.Scanner.Symbols,
		cfg.Scanner.ReconnectDelay,
		cfg.Scanner.PingInterval,
	)
	proc := usecase.NewEventProcessor(analyzer, cache, m, 3*cfg.Scanner.ScanInterval)
	pipe := mid.NewSnapshotPipeline(proc, m,
		mid.WithMaxRPS(4),
		mid.WithBufferSize(2000),
	)
	return usecase.NewSnapshotCollector(stream, proc, m, pipe)
}

// ProvideKafkaConsumer creates the inbound snapshots consumer, or nil when
// no inbound topic is configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Kafka.SnapshotsTopic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaSnapshotsHandler registers the handler for the inbound topic.
func ProvideKafkaSnapshotsHandler(
	analyzer *usecase.Analyzer,
	cache pkgcache.Service,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.KafkaSnapshotsHandler {
	if cfg.Kafka.SnapshotsTopic == "" {
		return nil
	}
	proc := usecase.NewEventProcessor(analyzer, cache, m, 3*cfg.Scanner.ScanInterval)
	return usecase.NewKafkaSnapshotsHandler(cfg.Kafka.SnapshotsTopic, proc, m)
}

// ProvideAnalysisQuery creates the API read-side use case.
func ProvideAnalysisQuery(analyzer *usecase.Analyzer, cache pkgcache.Service, b *Backend) *usecase.AnalysisQuery {
	return usecase.NewAnalysisQuery(analyzer, cache, b.Querier)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	runner *usecase.ScanRunner,
	collector *usecase.SnapshotCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSnapshotsHandler,
	query *usecase.AnalysisQuery,
	proc *usecase.ResultProcessor,
	b *Backend,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	if b.Producer != nil && cfg.Kafka.LogsTopic != "" {
		l.AddCollector(&logger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogsTopic,
			Publisher:      logPublisher{p: b.Producer},
		})
	}
	return server.New(cfg, l, runner, collector, consumer, kh, query, proc, b.CH)
}

// logPublisher adapts the Kafka producer to the log collector's sink.
type logPublisher struct {
	p *pkgkafka.Producer
}

func (lp logPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return lp.p.Publish(ctx, topic, nil, payload)
}
