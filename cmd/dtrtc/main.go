package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/btouchard/dtrtc/internal/compiler/config"
)

// settings is the merged view of --config file values and persistent flags,
// rebuilt once per invocation in rootCmd's PersistentPreRunE. File values
// are defaults; an explicitly-set flag always wins.
type settings struct {
	ctx            config.Context
	varsDir        string
	stdlibFuncsDir string
	userFuncsDir   string
	cacheDB        string
}

var (
	flagConfigPath string
	flagLang       string
	flagColor      bool
	flagDebug      bool
	flagVarsDir    string
	flagFuncsDir   string
	flagUserFuncs  string
	flagCacheDB    string

	current settings
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "dtrtc",
		Short: "Compiler for the DTRT ETL data-routing DSL",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "en", "diagnostic message language (en, ru)")
	rootCmd.PersistentFlags().BoolVar(&flagColor, "color", false, "render diagnostics with color markup")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "emit debug-class trace messages")
	rootCmd.PersistentFlags().StringVar(&flagVarsDir, "vars-dir", "", "external-variable JSON directory")
	rootCmd.PersistentFlags().StringVar(&flagFuncsDir, "funcs-dir", "", "standard-library function directory root")
	rootCmd.PersistentFlags().StringVar(&flagUserFuncs, "user-funcs-dir", "", "user-supplied function directory")
	rootCmd.PersistentFlags().StringVar(&flagCacheDB, "cache-db", "", "path to the optional resolver SQLite cache")

	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFmtCommand())
}

// loadSettings layers --config file values under whichever flags were
// explicitly passed on the command line.
func loadSettings(cmd *cobra.Command) error {
	file, err := config.LoadFile(flagConfigPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	s := settings{
		ctx:            config.Default(),
		varsDir:        file.VarsDir,
		stdlibFuncsDir: file.FuncsDir,
		userFuncsDir:   file.UserFuncsDir,
		cacheDB:        file.CacheDB,
	}
	if file.Lang != "" {
		s.ctx.Lang = file.Lang
	}
	if file.Color != nil {
		s.ctx.Color = *file.Color
	}
	if file.Debug != nil {
		s.ctx.Debug = *file.Debug
	}

	flags := cmd.Flags()
	if flags.Changed("lang") || file.Lang == "" {
		s.ctx.Lang = flagLang
	}
	if flags.Changed("color") {
		s.ctx.Color = flagColor
	}
	if flags.Changed("debug") {
		s.ctx.Debug = flagDebug
	}
	if flags.Changed("vars-dir") || s.varsDir == "" {
		s.varsDir = flagVarsDir
	}
	if flags.Changed("funcs-dir") || s.stdlibFuncsDir == "" {
		s.stdlibFuncsDir = flagFuncsDir
	}
	if flags.Changed("user-funcs-dir") || s.userFuncsDir == "" {
		s.userFuncsDir = flagUserFuncs
	}
	if flags.Changed("cache-db") || s.cacheDB == "" {
		s.cacheDB = flagCacheDB
	}

	current = s
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
