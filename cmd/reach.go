package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"reachcore/internal/model/demo"
	"reachcore/internal/reach"
)

var (
	reachModel    string
	reachMaxDepth int64
)

var reachCommand = &cobra.Command{
	Use:   "reach",
	Short: "decide whether a scenario's target is reachable",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := reachExec(); err != nil {
			fmt.Printf("service err: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	reachCommand.Flags().StringVar(&reachModel, "model", "s1", "demo scenario to check (s1..s6)")
	reachCommand.Flags().Int64Var(&reachMaxDepth, "max-depth", 32, "bound on forward/backward unrolling depth")
}

func reachExec() error {
	build, ok := demo.All()[reachModel]
	if !ok {
		return fmt.Errorf("unknown scenario %q", reachModel)
	}
	scn := build()

	log.Infof("reach: checking scenario %q (model %q)", scn.Name, scn.Mod.Name)

	eng := reach.NewEngine(scn.Mod, reachMaxDepth)
	res, err := eng.Check(context.Background(), scn.Target, scn.Fwd, scn.Bwd, scn.Global)
	if err != nil {
		return errors.Wrapf(err, "reach: checking %q", scn.Name)
	}

	log.Infof("reach: %s decided %s at depth %d", res.Winner, res.Status, res.Depth)
	fmt.Println(res.Status)
	if res.Witness != nil {
		fmt.Println(res.Witness)
	}

	switch res.Status {
	case reach.StatusError:
		os.Exit(1)
	case reach.StatusUnknown:
		fmt.Println("UNDECIDED")
	}
	return nil
}
