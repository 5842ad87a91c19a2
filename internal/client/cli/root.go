package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/balancio/internal/client/config"
	"github.com/iudanet/balancio/internal/client/iocli"
)

// VersionInfo сведения о сборке, задаются через ldflags
type VersionInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

const annotationAuth = "auth"

// requiresAuth помечает команду, которой нужна сохраненная сессия
func requiresAuth(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationAuth] = "required"
	return cmd
}

// globalFlags значения глобальных флагов; пустые значения не переопределяют конфигурацию
type globalFlags struct {
	server      string
	db          string
	logLevel    string
	locale      string
	downloadDir string
	ratesURL    string
	quiet       bool
}

// NewRootCommand собирает дерево команд клиента
func NewRootCommand(c *Cli, info VersionInfo) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "balancio",
		Short:         "Balancio personal finance client",
		Long:          "Terminal client for the Balancio personal finance service.",
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags.apply(cmd, &cfg)

			if err := c.bootstrap(cmd.Context(), cfg); err != nil {
				return err
			}
			if cmd.Annotations[annotationAuth] == "required" {
				return c.requireAuth(cmd.Context())
			}
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("Balancio Client\nVersion:    %s\nBuild Date: %s\nGit Commit: %s\n",
		info.Version, info.BuildDate, info.GitCommit))
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(c.io)
	root.SetErr(stderrWriter{c.io})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.server, "server", "", "Backend API URL (default "+config.DefaultServerURL+")")
	pf.StringVar(&flags.db, "db", "", "Path to local database (default "+config.DefaultDBPath+")")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.locale, "locale", "", "Locale used to pick the display currency, e.g. en-GB")
	pf.StringVar(&flags.downloadDir, "download-dir", "", "Directory for downloaded reports and exports")
	pf.StringVar(&flags.ratesURL, "rates-url", "", "Exchange rates service URL")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Do not show the loading indicator")
	_ = pf.MarkHidden("rates-url")

	root.AddCommand(
		c.newSignupCommand(),
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newStatusCommand(),
		c.newTransactionsCommand(),
		c.newCategoriesCommand(),
		c.newBudgetCommand(),
		c.newDashboardCommand(),
		c.newReportsCommand(),
		c.newProfileCommand(),
		c.newRatesCommand(),
	)
	return root
}

func (f *globalFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("server") {
		cfg.ServerURL = f.server
	}
	if changed("db") {
		cfg.DBPath = f.db
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("locale") {
		cfg.Locale = f.locale
	}
	if changed("download-dir") {
		cfg.DownloadDir = f.downloadDir
	}
	if changed("rates-url") {
		cfg.RatesURL = f.ratesURL
	}
	if changed("quiet") {
		cfg.Quiet = f.quiet
	}
}

// Execute выполняет команду с аргументами args и возвращает код выхода
func Execute(ctx context.Context, io iocli.IO, info VersionInfo, args []string) int {
	c := New(io)
	defer c.Close()

	root := NewRootCommand(c, info)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		io.Errorf("Error: %v\n", err)
		return 1
	}
	return 0
}

// stderrWriter направляет вывод cobra (ошибки, подсказки) в поток ошибок
type stderrWriter struct {
	io iocli.IO
}

func (w stderrWriter) Write(p []byte) (int, error) {
	w.io.Errorf("%s", p)
	return len(p), nil
}
