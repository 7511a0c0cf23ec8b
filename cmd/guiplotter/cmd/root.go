package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iafilius/GUIPlotter/src/loader"
	"github.com/iafilius/GUIPlotter/src/logging"
)

const (
	defaultWidth  = 1100
	defaultHeight = 520
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "guiplotter",
	Short: "GUIPlotter - plot columns of tabular data files on two Y axes",
	Long: `GUIPlotter loads whitespace-delimited text tables, Excel workbooks and
Parquet files and plots any of their columns against a shared X column, on a left
and an optional right Y axis.

Examples:
  guiplotter ui run1.dat run2.dat                    # Launch the viewer
  guiplotter plot --x time --left run1.dat:temp -o t.png
  guiplotter info run1.dat                           # Show columns and row counts`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Fyne fails to parse the locale when LANG=C
	if lang := os.Getenv("LANG"); lang == "" || lang == "C" {
		os.Setenv("LANG", "en_US.UTF-8")
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.guiplotter.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-file", "", "append log output to this file instead of stderr")
	pf.Int("width", defaultWidth, "chart width in pixels")
	pf.Int("height", defaultHeight, "chart height in pixels")
	pf.String("format", "auto", "table loader: "+strings.Join(loader.Names(), ", "))
	for _, name := range []string{"log-level", "log-file", "width", "height", "format"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

// initConfig layers flags over GUIPLOTTER_* environment variables over the config
// file. A missing default config file is fine; a missing --config file is not.
func initConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".guiplotter")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("GUIPLOTTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	lvl, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	logging.SetLogLevel(lvl.String())
	if p := viper.GetString("log-file"); p != "" {
		if err := redirectLog(p); err != nil {
			return err
		}
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logging.Debugf("using config file %s", used)
	}
	return nil
}

var logFile *os.File

// redirectLog appends log output to path. The file stays open for the life of the
// process; a second call replaces it.
func redirectLog(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logging.SetOutput(f)
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return nil
}

// tableLoader returns the loader selected by --format.
func tableLoader() (loader.TableLoader, error) {
	return loader.ByName(viper.GetString("format"))
}

// chartSize returns the configured chart size, falling back to the defaults for
// non-positive values.
func chartSize() (int, int) {
	w, h := viper.GetInt("width"), viper.GetInt("height")
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
