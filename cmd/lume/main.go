package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tangzhangming/lume/internal/config"
	"github.com/tangzhangming/lume/internal/frontend"
	"github.com/tangzhangming/lume/internal/i18n"
	"github.com/tangzhangming/lume/internal/logging"
	"github.com/tangzhangming/lume/internal/parser"
)

const version = "0.1.0"

// errReported 诊断已经输出，只需要非零退出码
var errReported = errors.New("errors reported")

func main() {
	// 初始化国际化
	i18n.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			printError(root.ErrOrStderr(), err.Error())
		}
		stop()
		os.Exit(1)
	}
}

// app 命令共享的状态，在 PersistentPreRunE 中完成初始化
type app struct {
	cfgFile  string
	lang     string
	logLevel string
	verbose  bool
	noColor  bool

	cfg    *config.Config
	logger *slog.Logger
	styles styles
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "lume",
		Short:         i18n.T(i18n.MsgRootShort),
		Long:          i18n.T(i18n.MsgRootLong),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", i18n.T(i18n.MsgFlagConfig))
	flags.StringVar(&a.lang, "lang", "", i18n.T(i18n.MsgFlagLang))
	flags.StringVar(&a.logLevel, "log-level", "", i18n.T(i18n.MsgFlagLogLevel))
	flags.BoolVarP(&a.verbose, "verbose", "v", false, i18n.T(i18n.MsgFlagVerbose))
	flags.BoolVar(&a.noColor, "no-color", false, i18n.T(i18n.MsgFlagNoColor))

	root.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup 加载配置，依次应用环境变量和命令行参数
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, configPath, err := a.loadConfig(args)
	if err != nil {
		return &configError{err: err}
	}
	cfg.ApplyEnv()

	if a.lang != "" {
		cfg.Output.Language = a.lang
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return &configError{err: err}
	}

	if lang, ok := i18n.ParseLanguage(cfg.Output.Language); ok {
		i18n.SetLanguage(lang)
	}

	a.cfg = cfg
	a.logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	a.styles = newStyles(cfg.Output.Color)

	if a.verbose {
		if configPath != "" {
			printInfo(cmd.ErrOrStderr(), i18n.T(i18n.MsgUsingConfig, configPath))
			a.logger.Debug("config loaded", "path", configPath, "root", config.GetProjectRoot(configPath))
		} else {
			printInfo(cmd.ErrOrStderr(), i18n.T(i18n.MsgNoConfig))
		}
	}
	return nil
}

// loadConfig 优先使用 --config，否则从输入所在目录向上查找
func (a *app) loadConfig(args []string) (*config.Config, string, error) {
	if a.cfgFile != "" {
		cfg, err := config.Load(a.cfgFile)
		return cfg, a.cfgFile, err
	}

	startDir := "."
	if len(args) > 0 {
		if info, err := os.Stat(args[0]); err == nil {
			startDir = args[0]
			if !info.IsDir() {
				startDir = filepath.Dir(args[0])
			}
		}
	}
	if abs, err := filepath.Abs(startDir); err == nil {
		startDir = abs
	}
	return config.FindAndLoad(startDir)
}

// newSession 按当前配置创建分析会话
func (a *app) newSession() *frontend.Session {
	return frontend.NewSession(frontend.Options{
		Logger: a.logger,
		Parser: parser.Options{
			CheckAssignTarget: a.cfg.Parser.CheckAssignTarget,
			RetainErrors:      a.cfg.Parser.RetainErrors,
			MaxErrors:         a.cfg.Parser.MaxErrors,
		},
	})
}

// 辅助打印函数
func printError(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}

func printInfo(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}
