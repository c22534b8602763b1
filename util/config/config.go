package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kisun-bit/disktype/util/logger"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputBoth = "both"
)

// Config 程序运行参数, 由配置文件、环境变量(DISKTYPE_*)及命令行参数合并而来.
type Config struct {
	Output          string // 输出形式: text/json/both.
	Pretty          bool   // JSON是否格式化输出.
	Latin1          bool   // 按latin1转义字符串属性.
	LogLevel        string
	CacheBlockSize  int   // 缓存块大小, 512的整数倍.
	DecompressLimit int64 // 解压流最多读取的字节数.
	BlankMaxBlocks  int   // 空白检测最多比较的512字节块数.
}

// Load 初始化 Viper 配置.
// cfgFile: 可选, 用户显式指定的配置文件路径. 未找到配置文件时使用默认值与环境变量.
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "disktype"))
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("disktype")
	}

	viper.SetEnvPrefix("DISKTYPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
		logger.Debugf("config.Load no config file found, using defaults")
	} else {
		logger.Debugf("config.Load using config file %s", viper.ConfigFileUsed())
	}
	return Current(), nil
}

// Current 以当前 Viper 状态构造 Config.
func Current() *Config {
	c := &Config{
		Output:          strings.ToLower(viper.GetString("output.format")),
		Pretty:          viper.GetBool("output.pretty"),
		Latin1:          viper.GetBool("output.latin1"),
		LogLevel:        viper.GetString("log.level"),
		CacheBlockSize:  viper.GetInt("cache.block_size"),
		DecompressLimit: viper.GetInt64("decompress.limit"),
		BlankMaxBlocks:  viper.GetInt("blank.max_blocks"),
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputBoth:
	default:
		c.Output = OutputBoth
	}
	if c.CacheBlockSize < 512 || c.CacheBlockSize%512 != 0 {
		c.CacheBlockSize = 4096
	}
	if c.DecompressLimit <= 0 {
		c.DecompressLimit = 64 << 20
	}
	if c.BlankMaxBlocks <= 0 {
		c.BlankMaxBlocks = 4096
	}
	return c
}

func setDefaults() {
	viper.SetDefault("output.format", OutputBoth)
	viper.SetDefault("output.pretty", false)
	viper.SetDefault("output.latin1", false)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("cache.block_size", 4096)
	viper.SetDefault("decompress.limit", 64<<20)
	viper.SetDefault("blank.max_blocks", 4096)
}
