package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pthm/tagcmp"
	"github.com/pthm/tagcmp/components"
	"github.com/pthm/tagcmp/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every sub-command once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	settings   *config.Settings
	logger     *slog.Logger
}

// rootCommand creates and returns the root command.
func rootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "tagcmp",
		Short:         "tagcmp - augment rendered HTML pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to config file (default ./tagcmp.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug output")
	rootCmd.PersistentFlags().String("contentroot", ".", "Directory holding Files/ and Pages/")
	_ = a.v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = a.v.BindPFlag("contentroot", rootCmd.PersistentFlags().Lookup("contentroot"))

	rootCmd.AddCommand(
		renderCommand(a),
		serveCommand(a),
		versionCommand(),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return a.initialize(cmd.ErrOrStderr())
	}

	return rootCmd
}

// initialize loads settings and sets up logging.
func (a *app) initialize(logOut io.Writer) error {
	settings, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.settings = settings

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	return nil
}

// registry builds a registry with the address and script components.
func (a *app) registry() *tagcmp.Registry {
	reg := tagcmp.NewRegistry(tagcmp.WithLogger(a.logger))
	components.Init(reg, components.Config{
		AddressMarkup: a.settings.Address.Markup,
		AddressOrder:  a.settings.Address.Order,
		MapURL:        a.settings.Address.MapURL,
		PrintMarkup:   a.settings.Markup.Markup,
		PrintOrder:    a.settings.Markup.Order,
		ContentRoot:   os.DirFS(a.settings.ContentRoot),
	})

	for _, c := range reg.Components() {
		a.logger.Debug("registered component", "component", fmt.Sprint(c), "order", c.Order())
	}
	return reg
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tagcmp version %s\n", version)
		},
	}
}
