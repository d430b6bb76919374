package config

import (
	"fmt"
	"github.com/spf13/viper"
)

// Config 存储所有配置信息
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// 数据库配置
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	// Redis配置
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// 外部健康分析服务配置
	AnalyzerBaseURL   string `mapstructure:"ANALYZER_BASE_URL"`
	AnalyzerTimeoutMS int    `mapstructure:"ANALYZER_TIMEOUT_MS"`

	// 健康数据来源: synthetic（内置模拟器）或 remote（外部分析服务）
	WellnessSource string `mapstructure:"WELLNESS_SOURCE"`

	// 采样与统计周期（秒）
	SampleIntervalSec int `mapstructure:"SAMPLE_INTERVAL_SEC"`
	StatsIntervalSec  int `mapstructure:"STATS_INTERVAL_SEC"`

	// JWT配置
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// LoadConfig 从环境变量或配置文件加载配置
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// 缺省值
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ANALYZER_BASE_URL", "http://localhost:5000")
	viper.SetDefault("ANALYZER_TIMEOUT_MS", 5000)
	viper.SetDefault("WELLNESS_SOURCE", "synthetic")
	viper.SetDefault("SAMPLE_INTERVAL_SEC", 5)
	viper.SetDefault("STATS_INTERVAL_SEC", 30)

	err = viper.ReadInConfig()
	if err != nil {
		// 允许配置文件不存在，此时会从环境变量中读取
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// GetDBConnString 返回数据库连接字符串
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString 返回Redis连接字符串
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
