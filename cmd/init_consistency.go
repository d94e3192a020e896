package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"reachcore/internal/compiler"
	"reachcore/internal/enc"
	"reachcore/internal/fsm"
	"reachcore/internal/model/demo"
)

var initConsistencyModel string

var initConsistencyCommand = &cobra.Command{
	Use:   "init-consistency",
	Short: "check whether a scenario's INIT and INVAR admit a state",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := initConsistencyExec(); err != nil {
			fmt.Printf("service err: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	initConsistencyCommand.Flags().StringVar(&initConsistencyModel, "model", "s1", "demo scenario to check (s1..s6)")
}

func initConsistencyExec() error {
	build, ok := demo.All()[initConsistencyModel]
	if !ok {
		return fmt.Errorf("unknown scenario %q", initConsistencyModel)
	}
	scn := build()

	d := enc.NewDiagrams()
	e := enc.NewEncoder(d)
	comp := compiler.NewCompiler(d, e, scn.Mod)

	verdict, err := fsm.InitConsistency(scn.Mod, d, e, comp, scn.Global)
	if err != nil {
		return errors.Wrapf(err, "init-consistency: checking %q", scn.Name)
	}

	log.Infof("init-consistency: %s is %s", scn.Name, verdict)
	fmt.Println(verdict)
	return nil
}
