package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/plan-systems/klog"
	"github.com/spf13/pflag"

	"github.com/surface-dynamics/godtt/godtt"
	"github.com/surface-dynamics/godtt/libtt"
	"github.com/surface-dynamics/godtt/libtt/catalog"
)

func main() {

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flags := pflag.NewFlagSet("godtt", pflag.ExitOnError)
	flags.String("expr", "", `train track expression, e.g. "(1 2 3 4) (-1 -5 -6 -7) (5) (-2) (6) (-3) (7) (-4) : 1 2 3 4 5 6 7"`)
	flags.StringArray("twist", nil, "pants twist to apply, curve=power (repeatable)")
	flags.StringArray("move", nil, "first elementary move to apply, switch[:inv] (repeatable)")
	flags.String("db", "", "catalog db path (empty for in-memory)")
	flags.Bool("add", false, "record the input and resulting tracks in the catalog")
	flags.Parse(os.Args[1:])

	cfg, err := loadConfig(flags)
	if err != nil {
		klog.Fatalf("config: %v", err)
	}
	if err := run(cfg); err != nil {
		klog.Fatalf("%v", err)
	}
	klog.Flush()
}

func run(cfg *Config) error {
	if cfg.Expr == "" {
		return fmt.Errorf("no track expression given (--expr)")
	}
	tt, err := libtt.NewTrackFromString(cfg.Expr)
	if err != nil {
		return err
	}
	klog.Infof("input: %v", tt)

	start := tt.Clone()

	for _, spec := range cfg.Twists {
		curve, power, err := parseTwist(spec)
		if err != nil {
			return err
		}
		if err := tt.UnzipFoldPantsTwist(curve, power); err != nil {
			return err
		}
		klog.Infof("after twist %s: %v", spec, tt)
	}

	for _, spec := range cfg.Moves {
		sw, inverse, err := parseMove(spec)
		if err != nil {
			return err
		}
		if inverse {
			err = tt.UnzipFoldFirstMoveInverse(sw, nil)
		} else {
			err = tt.UnzipFoldFirstMove(sw, nil, false)
		}
		if err != nil {
			return err
		}
		klog.Infof("after move %s: %v", spec, tt)
	}

	if err := tt.WriteAsString(os.Stdout, libtt.PrintOpts{}); err != nil {
		return err
	}
	fmt.Println()

	if cfg.Add {
		cat, err := catalog.OpenCatalog(godtt.CatalogOpts{
			DbPathName: cfg.DbPath,
		})
		if err != nil {
			return err
		}
		defer cat.Close()

		for _, cur := range []*libtt.TrainTrack{start, tt} {
			if cat.TryAddTrack(cur) {
				klog.Infof("cataloged %v", cur)
			}
		}
		klog.Infof("catalog now holds %d tracks with %d switches",
			cat.NumTracks(byte(tt.NumSwitches())), tt.NumSwitches())
	}
	return nil
}

func parseTwist(spec string) (libtt.Switch, int, error) {
	curveStr, powerStr, found := strings.Cut(spec, "=")
	if !found {
		return 0, 0, fmt.Errorf("bad twist %q, expected curve=power", spec)
	}
	curve, err := strconv.ParseInt(curveStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad twist curve %q: %w", curveStr, err)
	}
	power, err := strconv.Atoi(powerStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad twist power %q: %w", powerStr, err)
	}
	return libtt.Switch(curve), power, nil
}

func parseMove(spec string) (libtt.Switch, bool, error) {
	swStr, inverse := strings.CutSuffix(spec, ":inv")
	sw, err := strconv.ParseInt(swStr, 10, 32)
	if err != nil {
		return 0, false, fmt.Errorf("bad move switch %q: %w", swStr, err)
	}
	return libtt.Switch(sw), inverse, nil
}
