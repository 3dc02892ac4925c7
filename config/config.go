package config

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

func (c DBConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.Name + " sslmode=disable"
}

type Config struct {
	Port          string
	StoreType     string
	SnapshotPath  string
	TranscriptDir string
	SQLitePath    string
	DB            DBConfig
	RedisHost     string
	RedisPort     string
	KafkaBroker   string
	KafkaTopic    string
	SessionKey    string
	CookieSecure  bool
	AdminID       string
	AdminPassword string
	PublicURL     string
	LogLevel      string
	TraceStdout   bool
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// Load reads flags from args. Every flag defaults to its environment variable.
func Load(name string, args []string) (Config, error) {
	var cfg Config
	set := flag.NewFlagSet(name, flag.ContinueOnError)

	set.StringVar(&cfg.Port, "port", getEnv("PORT", "8080"), "HTTP port")
	set.StringVar(&cfg.StoreType, "store", getEnv("STORE_TYPE", StoreFile), "snapshot store: file, postgres or sqlite")
	set.StringVar(&cfg.SnapshotPath, "snapshot", getEnv("SNAPSHOT_PATH", "byte_me.json"), "snapshot file for the file store")
	set.StringVar(&cfg.TranscriptDir, "transcripts", getEnv("TRANSCRIPT_DIR", "transcripts"), "directory for order history transcripts")
	set.StringVar(&cfg.SQLitePath, "sqlite", getEnv("SQLITE_PATH", "byte_me.db"), "database file for the sqlite store")
	set.StringVar(&cfg.DB.Host, "db-host", getEnv("DB_HOST", "localhost"), "postgres host")
	set.StringVar(&cfg.DB.Port, "db-port", getEnv("DB_PORT", "5432"), "postgres port")
	set.StringVar(&cfg.DB.Name, "db-name", getEnv("DB_NAME", "canteen"), "postgres database")
	set.StringVar(&cfg.DB.User, "db-user", getEnv("DB_USER", "postgres"), "postgres user")
	set.StringVar(&cfg.DB.Password, "db-password", getEnv("DB_PASSWORD", ""), "postgres password")
	set.StringVar(&cfg.RedisHost, "redis-host", getEnv("REDIS_HOST", ""), "redis host, empty disables redis")
	set.StringVar(&cfg.RedisPort, "redis-port", getEnv("REDIS_PORT", "6379"), "redis port")
	set.StringVar(&cfg.KafkaBroker, "kafka-broker", getEnv("KAFKA_BROKER", ""), "kafka broker, empty disables events")
	set.StringVar(&cfg.KafkaTopic, "kafka-topic", getEnv("KAFKA_TOPIC", "canteen-orders"), "kafka topic for order events")
	set.StringVar(&cfg.SessionKey, "session-key", getEnv("SESSION_KEY", ""), "base64 cookie signing key")
	set.BoolVar(&cfg.CookieSecure, "cookie-secure", getEnv("COOKIE_SECURE", "false") == "true", "send cookies over https only")
	set.StringVar(&cfg.AdminID, "admin-id", getEnv("ADMIN_ID", "admin"), "administrator login")
	set.StringVar(&cfg.AdminPassword, "admin-password", getEnv("ADMIN_PASSWORD", "admin123"), "administrator password")
	set.StringVar(&cfg.PublicURL, "public-url", getEnv("PUBLIC_URL", "http://localhost:8080"), "base URL encoded in receipts")
	set.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "log level")
	set.BoolVar(&cfg.TraceStdout, "trace-stdout", getEnv("TRACE_STDOUT", "false") == "true", "print spans to stdout")

	if err := set.Parse(args); err != nil {
		return Config{}, err
	}

	switch cfg.StoreType {
	case StoreFile, StorePostgres, StoreSQLite:
	default:
		return Config{}, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("invalid port %q", cfg.Port)
	}
	return cfg, nil
}

// SessionSecret decodes SessionKey, or generates a throwaway key when it is
// missing or shorter than 32 bytes.
func (c Config) SessionSecret(log *zap.Logger) []byte {
	if c.SessionKey != "" {
		key, err := base64.StdEncoding.DecodeString(c.SessionKey)
		if err == nil && len(key) >= 32 {
			return key
		}
		log.Warn("SESSION_KEY is invalid or shorter than 32 bytes, generating a random key")
	} else {
		log.Warn("SESSION_KEY not set, generating a random key; sessions end on restart")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatal("failed to read random bytes", zap.Error(err))
	}
	return key
}

func MustInitPostgres(cfg DBConfig, log *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitSQLite(path string, log *zap.Logger) *sql.DB {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Fatal("failed to open sqlite database", zap.String("path", path), zap.Error(err))
	}
	if err = db.Ping(); err != nil {
		log.Fatal("failed to ping sqlite database", zap.String("path", path), zap.Error(err))
	}
	db.SetMaxOpenConns(1)
	return db
}

func MustInitRedis(addr string, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.String("addr", addr), zap.Error(err))
	}

	return client
}

func NewKafkaReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
