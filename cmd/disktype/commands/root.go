package commands

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kisun-bit/disktype/disk/content"
	"github.com/kisun-bit/disktype/disk/probe"
	"github.com/kisun-bit/disktype/disk/selftest"
	"github.com/kisun-bit/disktype/util/config"
	"github.com/kisun-bit/disktype/util/logger"
)

const usage = "Usage: disktype [--latin1] [--test] <device/file>..."

// errUsage 参数错误, 只输出用法, 退出码为1.
var errUsage = errors.New(usage)

type options struct {
	cfgFile string
	runTest bool
}

// newRootCmd 构造根命令. 标志绑定到 viper 键, 配置文件与环境变量提供默认值.
func newRootCmd(stdout io.Writer, v *viper.Viper) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "disktype [flags] <device/file>...",
		Short:         "Detect the content format of a disk or disk image",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			logger.SetupDefaultLogger(logger.NewLogger("disktype", logger.ParseLevel(cfg.LogLevel)))

			if opts.runTest {
				if err = selftest.Run(); err != nil {
					logger.Errorf("%v", err)
					return err
				}
			}
			analyze(stdout, cfg, args)
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return errUsage
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./disktype.yaml or $HOME/.config/disktype/disktype.yaml)")
	flags.BoolVar(&opts.runTest, "test", false, "run the internal self-test before analyzing")
	flags.Bool("latin1", false, "escape string properties assuming latin1 input")
	flags.String("output", config.OutputBoth, "output format: text, json or both")
	flags.Bool("pretty", false, "indent the JSON document")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")

	bindFlags(v, flags)
	return cmd
}

// flagKeys 命令行标志与配置键的对应关系.
var flagKeys = map[string]string{
	"latin1":    "output.latin1",
	"output":    "output.format",
	"pretty":    "output.pretty",
	"log-level": "log.level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			if err := v.BindPFlag(key, f); err != nil {
				logger.Warnf("bindFlags %s: %v", f.Name, err)
			}
		}
	})
}

// analyze 逐个分析路径. 单个文件的错误只输出到该文件的结果中, 不影响退出码.
// json 模式下标准输出只包含每个路径的JSON文档, 文本结果被丢弃.
func analyze(w io.Writer, cfg *config.Config, paths []string) {
	if cfg.Output == config.OutputJSON {
		p := probe.New(io.Discard, cfg)
		for _, path := range paths {
			res := p.Run(path)
			if res.Err != nil {
				logger.Warnf("%v", res.Err)
			}
			printDocument(w, cfg, res.Document)
		}
		return
	}

	p := probe.New(w, cfg)
	fmt.Fprintln(w)
	for _, path := range paths {
		res := p.Run(path)
		if res.Err != nil {
			fmt.Fprintln(w, res.Err)
		}
		if cfg.Output != config.OutputText {
			printDocument(w, cfg, res.Document)
		}
		fmt.Fprintln(w)
	}
}

func printDocument(w io.Writer, cfg *config.Config, doc *content.Document) {
	if cfg.Pretty {
		fmt.Fprintln(w, doc.Pretty())
	} else {
		fmt.Fprintln(w, doc.JSON())
	}
}

// Execute 运行命令行, 返回进程退出码.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, viper.GetViper())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usage)
		}
		return 1
	}
	return 0
}
