package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/bonecodec/internal/clip"
	"github.com/Faultbox/bonecodec/internal/config"
	"github.com/Faultbox/bonecodec/internal/logger"
	"github.com/Faultbox/bonecodec/internal/watch"
	"github.com/Faultbox/bonecodec/pkg/anim"
)

var errUsage = errors.New("invalid arguments")

func cmdInfo(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	importFlags(fs, cfg)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bonetool info <clip>")
		return errUsage
	}

	c, err := loadClip(fs.Arg(0), cfg)
	if err != nil {
		return err
	}

	s := c.Stats()
	fmt.Printf("Clip:          %s\n", c.Name)
	fmt.Printf("Length:        %.3fs\n", c.Length)
	fmt.Printf("Interpolation: %s\n", c.Interpolation)
	fmt.Printf("Bones:         %d (%d animated)\n", s.Bones, s.AnimatedBones)
	fmt.Printf("Keys:          %d translation, %d rotation, %d scale (max %d per channel)\n",
		s.Translations, s.Rotations, s.Scales, s.MaxKeys)
	fmt.Println()
	fmt.Printf("  %-16s %6s %6s %6s\n", "bone", "T", "R", "S")
	for i := range c.Tracks {
		t := &c.Tracks[i]
		fmt.Printf("  %-16s %6d %6d %6d\n", boneLabel(c, i), len(t.Translations), len(t.Rotations), len(t.Scales))
	}
	return nil
}

func cmdSample(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	importFlags(fs, cfg)
	pos := fs.Float64("pos", -1, "Relative position in [0, 1]")
	at := fs.Float64("time", -1, "Time in seconds, clamped to the clip (ignored when -pos is set)")
	bone := fs.String("bone", "", "Only print this bone")
	matrix := fs.Bool("matrix", false, "Print local bone matrices instead of TRS")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bonetool sample <clip> [-pos p | -time s] [-bone name] [-matrix]")
		return errUsage
	}

	c, err := loadClip(fs.Arg(0), cfg)
	if err != nil {
		return err
	}
	bones, err := selectBones(c, *bone)
	if err != nil {
		return err
	}
	p, err := newPlayer(c, cfg)
	if err != nil {
		return err
	}

	ctx := sampleContext(p, *pos, *at)
	pose := samplePose(c, ctx, cfg.Playback.Workers)

	fmt.Printf("%s @ pos %.4f (%s)\n", c.Name, ctx.RelativePos, ctx.Interpolation)
	printPose(os.Stdout, c, bones, pose, matrixBuffer(*matrix, len(pose)))
	return nil
}

func cmdDump(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	importFlags(fs, cfg)
	frames := fs.Int("frames", 0, "Number of frames (0 = length * fps + 1)")
	bone := fs.String("bone", "", "Only print this bone")
	matrix := fs.Bool("matrix", false, "Print local bone matrices instead of TRS")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bonetool dump <clip> [-frames n] [-bone name] [-matrix]")
		return errUsage
	}

	c, err := loadClip(fs.Arg(0), cfg)
	if err != nil {
		return err
	}
	bones, err := selectBones(c, *bone)
	if err != nil {
		return err
	}
	p, err := newPlayer(c, cfg)
	if err != nil {
		return err
	}
	// Dumping covers the clip end to end; wrapping would fold the last frame onto the first
	p.Loop = false

	pose := make([]anim.Transform, c.NumTracks())
	matrices := matrixBuffer(*matrix, len(pose))
	for i, t := range frameTimes(c.Length, *frames, cfg.Playback.FPS) {
		p.Seek(t)
		anim.IdentityPose(pose)
		anim.SamplePoseParallel(p.Context(), c.Tracks, pose, cfg.Playback.Workers)

		fmt.Printf("frame %d  t=%.4fs\n", i, p.Time)
		printPose(os.Stdout, c, bones, pose, matrices)
	}
	return nil
}

func cmdConvert(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	importFlags(fs, cfg)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: bonetool convert <clip> <out.yaml>")
		return errUsage
	}

	c, err := loadClip(fs.Arg(0), cfg)
	if err != nil {
		return err
	}
	if err := clip.Save(fs.Arg(1), c); err != nil {
		return fmt.Errorf("writing %s: %w", fs.Arg(1), err)
	}

	fmt.Printf("Wrote: %s (%d bones)\n", fs.Arg(1), c.NumTracks())
	return nil
}

func cmdWatch(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	importFlags(fs, cfg)
	pos := fs.Float64("pos", 0.5, "Relative position in [0, 1]")
	bone := fs.String("bone", "", "Only print this bone")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bonetool watch <clip> [-pos p] [-bone name]")
		return errUsage
	}
	path := fs.Arg(0)

	resample := func() {
		c, err := loadClip(path, cfg)
		if err != nil {
			logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		bones, err := selectBones(c, *bone)
		if err != nil {
			logger.Warn("bone filter", zap.Error(err))
			return
		}
		p, err := newPlayer(c, cfg)
		if err != nil {
			logger.Warn("playback config", zap.Error(err))
			return
		}
		ctx := p.Context()
		ctx.RelativePos = float32(*pos)
		pose := samplePose(c, ctx, cfg.Playback.Workers)

		fmt.Printf("[%s] %s @ pos %.4f\n", time.Now().Format("15:04:05"), c.Name, ctx.RelativePos)
		for _, i := range bones {
			printTransform(os.Stdout, boneLabel(c, i), pose[i])
		}
	}

	w, err := watch.New(watch.DefaultDebounce, path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer w.Close()

	resample()
	logger.Info("watching for changes", zap.String("path", path))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			resample()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-interrupt:
			return nil
		}
	}
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Printf("Wrote: %s\n", args[0])
		return nil
	}

	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Printf("Wrote: %s\n", path)
	return nil
}
