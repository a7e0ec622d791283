package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	DB         DBConfig
	Redis      RedisConfig
	Extraction ExtractionConfig
	Generation GenerationConfig
	Cache      CacheConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ExtractionConfig holds settings for the OCR provider chain.
type ExtractionConfig struct {
	Vision   VisionConfig
	OCRSpace OCRSpaceConfig
}

type VisionConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type OCRSpaceConfig struct {
	Endpoint string
	APIKey   string
	Engine   int
	Language string
	Timeout  time.Duration
}

// GenerationConfig holds settings for the text generation provider chain.
type GenerationConfig struct {
	OpenAI OpenAIConfig
	Gemini GeminiConfig
	Ollama OllamaConfig
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OllamaConfig enables a local model as the last generation fallback.
// The adapter is only registered when ServerURL is set.
type OllamaConfig struct {
	ServerURL string
	Model     string
	Timeout   time.Duration
}

type CacheConfig struct {
	ExtractionTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Extraction: ExtractionConfig{
			Vision: VisionConfig{
				Endpoint: viper.GetString("extraction.vision.endpoint"),
				APIKey:   viper.GetString("extraction.vision.api_key"),
				Timeout:  viper.GetDuration("extraction.vision.timeout") * time.Second,
			},
			OCRSpace: OCRSpaceConfig{
				Endpoint: viper.GetString("extraction.ocrspace.endpoint"),
				APIKey:   viper.GetString("extraction.ocrspace.api_key"),
				Engine:   viper.GetInt("extraction.ocrspace.engine"),
				Language: viper.GetString("extraction.ocrspace.language"),
				Timeout:  viper.GetDuration("extraction.ocrspace.timeout") * time.Second,
			},
		},
		Generation: GenerationConfig{
			OpenAI: OpenAIConfig{
				APIKey:  viper.GetString("generation.openai.api_key"),
				Model:   viper.GetString("generation.openai.model"),
				Timeout: viper.GetDuration("generation.openai.timeout") * time.Second,
			},
			Gemini: GeminiConfig{
				APIKey:  viper.GetString("generation.gemini.api_key"),
				Model:   viper.GetString("generation.gemini.model"),
				Timeout: viper.GetDuration("generation.gemini.timeout") * time.Second,
			},
			Ollama: OllamaConfig{
				ServerURL: viper.GetString("generation.ollama.server_url"),
				Model:     viper.GetString("generation.ollama.model"),
				Timeout:   viper.GetDuration("generation.ollama.timeout") * time.Second,
			},
		},
		Cache: CacheConfig{
			ExtractionTTL: viper.GetDuration("cache.extraction_ttl") * time.Second,
		},
	}

	// Override with environment variables if set
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if visionKey := os.Getenv("VISION_API_KEY"); visionKey != "" {
		config.Extraction.Vision.APIKey = visionKey
	}
	if ocrSpaceKey := os.Getenv("OCR_SPACE_API_KEY"); ocrSpaceKey != "" {
		config.Extraction.OCRSpace.APIKey = ocrSpaceKey
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.Generation.OpenAI.APIKey = openAIKey
	}
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		config.Generation.Gemini.APIKey = geminiKey
	}
	if ollamaServer := os.Getenv("OLLAMA_SERVER"); ollamaServer != "" {
		config.Generation.Ollama.ServerURL = ollamaServer
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit", 10*1024*1024)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("extraction.vision.endpoint", "https://vision.googleapis.com/v1/images:annotate")
	viper.SetDefault("extraction.vision.timeout", 30)
	viper.SetDefault("extraction.ocrspace.endpoint", "https://api.ocr.space/parse/image")
	viper.SetDefault("extraction.ocrspace.engine", 2)
	viper.SetDefault("extraction.ocrspace.language", "eng")
	viper.SetDefault("extraction.ocrspace.timeout", 30)
	viper.SetDefault("generation.openai.model", "gpt-4")
	viper.SetDefault("generation.openai.timeout", 60)
	viper.SetDefault("generation.gemini.model", "gemini-1.5-flash")
	viper.SetDefault("generation.gemini.timeout", 60)
	viper.SetDefault("generation.ollama.model", "qwen3:0.6b")
	viper.SetDefault("generation.ollama.timeout", 20)
	viper.SetDefault("cache.extraction_ttl", 3600)
}

func (c *Config) GetDSN() string {
	// Oracle DSN format: user/password@host:port/service
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
