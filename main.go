package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/cplsat/cplsat/bf"
	"github.com/cplsat/cplsat/cpl"
	"github.com/cplsat/cplsat/solver"
)

var log = logrus.StandardLogger()

func getFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "proc, p",
			Usage: "decision procedure: dp, dpll or cdcl",
			Value: "cdcl",
		},
		cli.BoolFlag{
			Name:  "tseytin, t",
			Usage: "lower through the Tseytin 3-CNF transformation (implied by cdcl)",
		},
		cli.BoolFlag{
			Name:  "dimacs",
			Usage: "write the compiled problem in DIMACS CNF format instead of solving",
		},
		cli.StringSliceFlag{
			Name:  "assign, a",
			Usage: "binding for a (? v) probe, as name=true or name=false",
		},
		cli.StringSliceFlag{
			Name:  "lib, l",
			Usage: "CPL library file concatenated before the input",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "seed of the CDCL decision ordering",
			Value: 1,
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log solving details",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "dump the expanded term and the clauses",
		},
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "cplsat"
	app.Usage = "a SAT solver for the CPL constraint language"
	app.ArgsUsage = "(file.cpl|file.cnf)"
	app.Flags = getFlags()
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelpAndExit(c, 2)
	}
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
	proc := c.String("proc")
	switch proc {
	case "dp", "dpll", "cdcl":
	default:
		return fmt.Errorf("unknown procedure %q", proc)
	}
	path := c.Args().First()
	if strings.HasSuffix(path, ".cnf") {
		return solveDimacs(c, path, proc)
	}
	return solveCPL(c, path, proc)
}

func solveDimacs(c *cli.Context, path, proc string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open %q", path)
	}
	defer f.Close()
	pb, err := solver.ParseCNF(f)
	if err != nil {
		return errors.Wrapf(err, "could not parse %q", path)
	}
	log.WithFields(logrus.Fields{"clauses": len(pb.Clauses), "vars": len(pb.Vars)}).Debug("problem parsed")
	switch proc {
	case "dp":
		printStatus(solver.DP(pb))
	case "dpll":
		status, model := solver.DPLL(pb)
		printStatus(status)
		if status == solver.Sat {
			printDimacsModel(pb, model)
		}
	case "cdcl":
		in, err := solver.NewCDCLInput(pb.Clauses, pb.Vars, pb.Labels)
		if err != nil {
			return errors.Wrap(err, "the cdcl procedure needs a 3-CNF input")
		}
		s := solver.NewCDCL(in, rand.New(rand.NewSource(c.Int64("seed"))))
		s.Log = log
		status := s.Solve()
		logStats(s.Stats)
		printStatus(status)
		if status == solver.Sat {
			printDimacsModel(pb, s.Model())
		}
	}
	return nil
}

func solveCPL(c *cli.Context, path, proc string) error {
	source, err := readProgram(c.StringSlice("lib"), path)
	if err != nil {
		return err
	}
	assigns, err := parseAssigns(c.StringSlice("assign"))
	if err != nil {
		return err
	}
	tseytin := c.Bool("tseytin") || proc == "cdcl"
	clauses, err := cpl.Compile(source, assigns, tseytin)
	if err != nil {
		return err
	}
	if c.Bool("debug") {
		if terms, err := cpl.ParseTerms(source); err == nil {
			if t, err := cpl.ExpandProgram(terms); err == nil {
				pp.Fprintln(os.Stderr, t.String())
			}
		}
		pp.Fprintln(os.Stderr, clauses)
	}
	log.WithField("clauses", len(clauses)).Debug("program compiled")
	if c.Bool("dimacs") {
		return bf.ConvertClauses(clauses).WriteDimacs(os.Stdout)
	}
	switch proc {
	case "dp":
		printStatus(solver.DP(bf.ConvertClauses(clauses)))
	case "dpll":
		pb := bf.ConvertClauses(clauses)
		status, model := solver.DPLL(pb)
		printStatus(status)
		if status == solver.Sat {
			printModel(pb.DecodeModel(model))
		}
	case "cdcl":
		in, err := bf.ConvertClausesToCDCLInput(clauses)
		if err != nil {
			return errors.Wrap(err, "the cdcl procedure needs a 3-CNF input, use -tseytin")
		}
		s := solver.NewCDCL(in, rand.New(rand.NewSource(c.Int64("seed"))))
		s.Log = log
		status := s.Solve()
		logStats(s.Stats)
		printStatus(status)
		if status == solver.Sat {
			printModel(in.DecodeModel(s.Model()))
		}
	}
	return nil
}

// readProgram concatenates the library files and the input program,
// in order.
func readProgram(libs []string, path string) (string, error) {
	var parts []string
	for _, p := range append(append([]string{}, libs...), path) {
		content, err := os.ReadFile(p)
		if err != nil {
			return "", errors.Wrapf(err, "could not read %q", p)
		}
		parts = append(parts, string(content))
	}
	return strings.Join(parts, "\n"), nil
}

func parseAssigns(raw []string) (map[string]bool, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	assigns := make(map[string]bool, len(raw))
	for _, s := range raw {
		k, v, found := strings.Cut(s, "=")
		if !found {
			return nil, fmt.Errorf("invalid assignment %q, name=bool expected", s)
		}
		switch v {
		case "true", "1":
			assigns[k] = true
		case "false", "0":
			assigns[k] = false
		default:
			return nil, fmt.Errorf("invalid assignment value %q for %q", v, k)
		}
	}
	return assigns, nil
}

func printStatus(status solver.Status) {
	switch status {
	case solver.Sat:
		fmt.Println("s SATISFIABLE")
	case solver.Unsat:
		fmt.Println("s UNSATISFIABLE")
	default:
		fmt.Println("s INDETERMINATE")
	}
}

// printModel writes the bindings sorted by variable label.
func printModel(model map[string]bool) {
	keys := lo.Keys(model)
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %t\n", k, model[k])
	}
}

// printDimacsModel writes a DIMACS v line over the problem variables.
func printDimacsModel(pb *solver.CNF, model solver.Model) {
	vars := lo.Keys(pb.Vars)
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	strs := make([]string, 0, len(vars)+1)
	for _, v := range vars {
		l := int(v)
		if !model[v] {
			l = -l
		}
		strs = append(strs, fmt.Sprint(l))
	}
	strs = append(strs, "0")
	fmt.Println("v " + strings.Join(strs, " "))
}

func logStats(st solver.Stats) {
	log.WithFields(logrus.Fields{
		"decisions":    st.NbDecisions,
		"propagations": st.NbPropagations,
		"conflicts":    st.NbConflicts,
		"backjumps":    st.NbBackjumps,
	}).Debug("search finished")
}
