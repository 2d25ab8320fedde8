package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Rana718/winegen/internal/config"
	"github.com/Rana718/winegen/internal/types"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"██╗    ██╗██╗███╗   ██╗███████╗ ██████╗ ███████╗███╗   ██╗",
		"██║    ██║██║████╗  ██║██╔════╝██╔════╝ ██╔════╝████╗  ██║",
		"██║ █╗ ██║██║██╔██╗ ██║█████╗  ██║  ███╗█████╗  ██╔██╗ ██║",
		"██║███╗██║██║██║╚██╗██║██╔══╝  ██║   ██║██╔══╝  ██║╚██╗██║",
		"╚███╔███╔╝██║██║ ╚████║███████╗╚██████╔╝███████╗██║ ╚████║",
		" ╚══╝╚══╝ ╚═╝╚═╝  ╚═══╝╚══════╝ ╚═════╝ ╚══════╝╚═╝  ╚═══╝",
		"",
		"        🍷 Reproducible, deliberately dirty data 🍷",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                   ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "winegen",
	Short: "Synthetic wine shop data with controlled defects",
	Long: `
winegen generates reproducible wine shop datasets (customers, wines, orders
and order events) and loads them into an embedded SQLite database or a
warehouse.

The data is dirty on purpose:
- a fraction of records is duplicated and shuffled in
- dates and prices use mixed textual formats

The same seed always produces the same files.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("winegen version %s\n", Version)
			return
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

// Execute runs the CLI. An interrupt cancels the command's context, which
// stops paced writes between lines.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printHint(err)
	}
	return err
}

// printHint tells the user which kind of failure happened.
func printHint(err error) {
	switch {
	case errors.Is(err, types.ErrInvalidConfig):
		color.Red("❌ Invalid configuration")
		color.Yellow("💡 Check flags, %s and WINEGEN_* variables", config.FileName)
	case errors.Is(err, types.ErrMissingInput):
		color.Red("❌ Missing input")
		color.Yellow("💡 Generate the data first, e.g. winegen generate bundle")
	case errors.Is(err, types.ErrResource):
		color.Red("❌ Could not read or write a file, database or bucket")
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./winegen.yaml)")
	rootCmd.PersistentFlags().Int64("seed", 42, "random seed (pass --as-of too for byte-identical reruns)")
	rootCmd.PersistentFlags().String("out-dir", "data", "output directory")
	rootCmd.PersistentFlags().String("as-of", "", "reference time (RFC3339 or YYYY-MM-DD, default now); fix it to repeat a run exactly")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")

	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("out_dir", rootCmd.PersistentFlags().Lookup("out-dir"))
	viper.BindPFlag("as_of", rootCmd.PersistentFlags().Lookup("as-of"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.FileName, ".yaml"))
	}

	viper.SetEnvPrefix("WINEGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.ReadInConfig()
}
