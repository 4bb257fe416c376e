// Command lkh runs a single solve: one positional argument names a
// parameter file, everything else (the problem file, the output tour
// file, every tunable) comes from PROBLEM_FILE/OUTPUT_TOUR_FILE/etc.
// keywords inside it, mirroring the original program's single-argument
// invocation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/wuhualu185086661/LKH/metrics"
	"github.com/wuhualu185086661/LKH/params"
	"github.com/wuhualu185086661/LKH/solver"
	"github.com/wuhualu185086661/LKH/tsplib"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s PARAMETER_FILE\n", os.Args[0])
		os.Exit(2)
	}

	parFile, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("lkh: open parameter file: %v", err)
	}
	par, err := params.ReadParameters(parFile)
	parFile.Close()
	if err != nil {
		log.Fatalf("lkh: parse parameter file: %v", err)
	}

	probFile, err := os.Open(par.ProblemFile)
	if err != nil {
		log.Fatalf("lkh: open problem file: %v", err)
	}
	p, err := tsplib.ReadProblem(probFile)
	probFile.Close()
	if err != nil {
		log.Fatalf("lkh: parse problem file: %v", err)
	}

	reg := metrics.New()
	s := solver.New(p, par, reg)

	log.Printf("lkh: solving %q (n=%d), runs=%d seed=%d", p.Name, p.Dimension, par.Runs, par.Seed)
	res := s.Run()
	log.Printf("lkh: done, best cost=%.2f over %d run(s), optimum=%v", res.BestCost, res.Runs, res.Optimum)

	if par.OutputTourFile != "" && len(res.BestTour) > 0 {
		out, err := os.Create(par.OutputTourFile)
		if err != nil {
			log.Fatalf("lkh: create output tour file: %v", err)
		}
		closed := make([]int32, len(res.BestTour)+1)
		copy(closed, res.BestTour)
		closed[len(res.BestTour)] = res.BestTour[0]
		err = tsplib.WriteTour(out, p.Name, closed)
		out.Close()
		if err != nil {
			log.Fatalf("lkh: write output tour file: %v", err)
		}
	}

	if err := reg.Render(os.Stderr); err != nil {
		log.Printf("lkh: render statistics: %v", err)
	}
}
