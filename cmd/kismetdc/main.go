package main

import (
	"fmt"
	"os"
	"sort"

	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"kismetdc"
	"kismetdc/jmap"
	"kismetdc/render"
)

func listFunctions(log *zap.SugaredLogger, docPath string) error {
	doc, err := jmap.LoadFile(docPath)
	if err != nil {
		return err
	}

	var paths []string
	for path, obj := range doc.Objects {
		if obj.Kind == jmap.KindFunction {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	fmt.Printf("%-60s %s\n", "Function", "Script Bytes")
	for _, path := range paths {
		obj := doc.Objects[path]
		fmt.Printf("%-60s %d\n", path, len(obj.Script))
	}
	log.Debugw("listed functions", "count", len(paths))
	return nil
}

func loadFunction(doc *jmap.Document, path string) (*jmap.Object, error) {
	obj, ok := doc.Objects[path]
	if !ok {
		return nil, fmt.Errorf("no object at path %q", path)
	}
	if obj.Kind != jmap.KindFunction {
		return nil, fmt.Errorf("%q is not a function (kind %s)", path, obj.Kind)
	}
	return obj, nil
}

func pipeline(log *zap.SugaredLogger, docPath, funcPath string) (*kismetdc.ControlFlowGraph, *kismetdc.StructureResult, *kismetdc.AddressIndex, error) {
	doc, err := jmap.LoadFile(docPath)
	if err != nil {
		return nil, nil, nil, err
	}
	obj, err := loadFunction(doc, funcPath)
	if err != nil {
		return nil, nil, nil, err
	}

	idx := kismetdc.NewAddressIndex(doc)

	exprs, err := kismetdc.ParseAll(obj.Script, doc.Names, idx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse %s: %w", funcPath, err)
	}
	log.Debugw("parsed function", "path", funcPath, "expressions", len(exprs))

	cfg := kismetdc.BuildCFG(exprs)
	dom := kismetdc.ComputeDominatorTree(cfg)
	pdom := kismetdc.ComputePostDominatorTree(cfg)
	loops := kismetdc.AnalyzeLoops(cfg, dom)

	result := kismetdc.Structure(cfg, dom, pdom, loops)
	if !result.Complete {
		log.Warnw("structuring incomplete", "path", funcPath, "residual_blocks", result.Residual)
	}

	return cfg, result, idx, nil
}

func decompile(log *zap.SugaredLogger, docPath, funcPath string) error {
	_, result, idx, err := pipeline(log, docPath, funcPath)
	if err != nil {
		return err
	}
	fmt.Print(render.Text(result.Tree, idx))
	return nil
}

func showCFG(log *zap.SugaredLogger, docPath, funcPath string) error {
	cfg, _, _, err := pipeline(log, docPath, funcPath)
	if err != nil {
		return err
	}

	for _, b := range cfg.Blocks {
		fmt.Printf("block %d (preds=%v succs=%v):\n", b.ID, b.Predecessors, b.Successors)
		for _, stmt := range b.Statements {
			fmt.Printf("  %s: %T\n", stmt.Offset, stmt.Kind)
		}
		fmt.Printf("  terminator: kind=%d\n", b.Terminator.Kind)
	}
	return nil
}

func main() {
	var verbose bool

	app := cli.NewApp()
	app.Name = "kismetdc"
	app.Usage = "Decompiler for Unreal Engine Kismet bytecode"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "enable development logging",
			Destination: &verbose,
		},
	}
	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return nil
	}

	newLogger := func() *zap.SugaredLogger {
		var cfg zap.Config
		if verbose {
			cfg = zap.NewDevelopmentConfig()
		} else {
			cfg = zap.NewProductionConfig()
			cfg.DisableStacktrace = true
		}
		logger, err := cfg.Build()
		if err != nil {
			logger = zap.NewNop()
		}
		return logger.Sugar()
	}

	app.Commands = []*cli.Command{
		{
			Name:      "list",
			Aliases:   []string{"ls"},
			Usage:     "List every function in a metadata document",
			ArgsUsage: "doc.json",
			Action: func(c *cli.Context) error {
				if c.Args().Len() < 1 {
					return cli.Exit("Insufficient arguments", 1)
				}
				if err := listFunctions(newLogger(), c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "decompile",
			Aliases:   []string{"dc"},
			Usage:     "Decompile one function to pseudo-code",
			ArgsUsage: "doc.json function-path",
			Action: func(c *cli.Context) error {
				if c.Args().Len() < 2 {
					return cli.Exit("Insufficient arguments", 1)
				}
				if err := decompile(newLogger(), c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "cfg",
			Usage:     "Print one function's basic blocks and terminators",
			ArgsUsage: "doc.json function-path",
			Action: func(c *cli.Context) error {
				if c.Args().Len() < 2 {
					return cli.Exit("Insufficient arguments", 1)
				}
				if err := showCFG(newLogger(), c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
