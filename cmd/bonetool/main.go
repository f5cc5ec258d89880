// bonetool inspects and samples skeletal animation clips.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/bonecodec/internal/config"
	"github.com/Faultbox/bonecodec/internal/logger"
)

func main() {
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "sample":
		err = cmdSample(cfg, args)
	case "dump":
		err = cmdDump(cfg, args)
	case "convert":
		err = cmdConvert(cfg, args)
	case "watch":
		err = cmdWatch(cfg, args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bonetool - skeletal animation clip sampler

Usage:
  bonetool [global options] <command> [options]

Commands:
  info <clip>                        Show clip header and per-bone key counts
  sample <clip> [-pos p | -time s]   Print the sampled pose (-time clamps to the clip)
  dump <clip> [-frames n] [-bone b]  Print poses at evenly spaced frames
  convert <clip> <out.yaml>          Write a clip as YAML
  watch <clip> [-pos p]              Re-sample whenever the clip file changes
  config [path]                      Write the current config as YAML

Clips are .gltf/.glb (one animation, see -anim/-anim-name/-skin) or .yaml.

Global options:
  -config file   -debug   -log-file file   -mode linear|step
  -no-loop   -workers n   -fps n

Examples:
  bonetool info hero.glb -anim-name Walk
  bonetool -mode step sample hero.glb -time 0.25
  bonetool dump wave.yaml -frames 5 -bone upper_arm
  bonetool sample wave.yaml -time 2 -matrix`)
}
