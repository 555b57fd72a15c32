package main

import (
	"flag"
	"os"
)

type AppFlags struct {
	GlobalConfigFile string
	ListenAddr       string
}

func ParseFlags() AppFlags {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) AppFlags {
	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	listenAddr := fs.String("listen", "", "Address to listen on, e.g. :8000 (overrides config file if set)")
	listenAddrAlias := fs.String("l", "", "Alias for -listen")

	// flag.CommandLine exits on a parse error.
	_ = fs.Parse(args)

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *listenAddr != "" {
		flags.ListenAddr = *listenAddr
	} else if *listenAddrAlias != "" {
		flags.ListenAddr = *listenAddrAlias
	}

	return flags
}
