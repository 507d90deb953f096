// Package cli — консольный клиент сравнения цен (grocer).
package cli

import (
	"strings"
	"time"

	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/internal/client"
	"github.com/DRSN-tech/price-compare/internal/infrastructure/upstream"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "GROCER"

	flagAPIURL      = "api-url"
	flagTimeout     = "timeout"
	flagRetries     = "retries"
	flagSessionFile = "session-file"
	flagLogLevel    = "log-level"
	flagConfig      = "config"
	flagChartWidth  = "chart-width"

	defaultAPIURL     = "http://localhost:8001"
	defaultTimeout    = 10 * time.Second
	defaultRetries    = 2
	defaultChartWidth = 30
	retryBase         = 200 * time.Millisecond
	retryMax          = 2 * time.Second
)

// deps — зависимости команд, создаются один раз перед запуском команды.
type deps struct {
	v          *viper.Viper
	logger     logger.Logger
	sessions   client.SessionStore
	comparison usecase.ComparisonUC
	account    usecase.AccountUC
}

// NewRootCmd собирает дерево команд grocer.
// Настройки читаются из флагов, переменных GROCER_* и файла конфигурации (--config).
func NewRootCmd() *cobra.Command {
	d := &deps{v: viper.New()}

	root := &cobra.Command{
		Use:           "grocer",
		Short:         "Compare UK grocery prices from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return d.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String(flagAPIURL, defaultAPIURL, "base URL of the grocery API")
	flags.Duration(flagTimeout, defaultTimeout, "request timeout")
	flags.Int(flagRetries, defaultRetries, "retries for idempotent requests")
	flags.String(flagSessionFile, "", "session file (default $XDG_CONFIG_HOME/grocer/session.json)")
	flags.String(flagLogLevel, "warn", "log level: debug, info, warn, error")
	flags.String(flagConfig, "", "config file (yaml, json or toml)")
	flags.Int(flagChartWidth, defaultChartWidth, "width of price bars")

	_ = d.v.BindPFlags(flags)
	d.v.SetEnvPrefix(envPrefix)
	d.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	d.v.AutomaticEnv()

	root.AddCommand(
		newLoginCmd(d),
		newLogoutCmd(d),
		newWhoamiCmd(d),
		newRegisterCmd(d),
		newSearchCmd(d),
		newStoresCmd(d),
		newListsCmd(d),
		newShellCmd(d),
	)

	return root
}

func (d *deps) init(cmd *cobra.Command) error {
	if path := d.v.GetString(flagConfig); path != "" {
		d.v.SetConfigFile(path)
		if err := d.v.ReadInConfig(); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	d.logger = logger.NewSlogLoggerWithWriter(cmd.ErrOrStderr(), logger.ParseLevel(d.v.GetString(flagLogLevel)))

	sessionPath := d.v.GetString(flagSessionFile)
	if sessionPath == "" {
		path, err := client.DefaultSessionPath()
		if err != nil {
			return err
		}
		sessionPath = path
	}
	d.sessions = client.NewFileSessionStore(sessionPath, d.logger)

	api := upstream.NewClient(&cfg.UpstreamCfg{
		BaseURL:    strings.TrimRight(d.v.GetString(flagAPIURL), "/"),
		Timeout:    d.v.GetDuration(flagTimeout),
		MaxRetries: d.v.GetInt(flagRetries),
		RetryBase:  retryBase,
		RetryMax:   retryMax,
	}, d.logger)

	d.comparison = usecase.NewComparisonUC(api, nil, nil, d.logger, 0)
	d.account = usecase.NewAccountUC(api, api, api, d.logger)

	return nil
}
