// Command pclrt is a developer tool for the PCL runtime. It prints the
// primitive ABI for the compiler front end, calls primitives by name on the
// terminal, and runs conformance suites.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/pclrt/abi"
	"github.com/zephyrtronium/pclrt/config"
	"github.com/zephyrtronium/pclrt/conformance"
)

func main() {
	root := &cobra.Command{
		Use:           "pclrt",
		Short:         "PCL runtime support tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(abiCmd(), headerCmd(), callCmd(), conformCmd())
	if err := root.Execute(); err != nil {
		fail(err)
	}
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func abiCmd() *cobra.Command {
	var embedded bool
	cmd := &cobra.Command{
		Use:   "abi",
		Short: "Print the primitive ABI manifest as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := abi.Embedded()
			if !embedded {
				m = abi.Default().Manifest()
			}
			b, err := m.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().BoolVar(&embedded, "embedded", false, "print the embedded manifest, with documentation, instead of the one derived from the registry")
	return cmd
}

func headerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header",
		Short: "Print a C header declaring the exported primitives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), abi.CHeader(abi.Embedded()))
			return err
		},
	}
}

func callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <primitive> [args...]",
		Short: "Call one primitive on standard input and output",
		Long: `Call one primitive on standard input and output and report its result on
standard error. Arguments are parsed according to the primitive's parameter
kinds; a buffer argument is the size of the buffer to allocate.

The runtime is configured from PCLRT_CONFIG, PCLRT_CHARSET, PCLRT_TRACE,
PCLRT_TRACE_TIME, and PCLRT_AUTOFLUSH.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := abi.Default()
			p, ok := reg.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", abi.ErrUnknown, args[0])
			}
			if len(args)-1 != len(p.Params) {
				return fmt.Errorf("%w: %s takes %d arguments", abi.ErrArgs, p.Name, len(p.Params))
			}
			vals := make([]abi.Value, len(p.Params))
			for i, k := range p.Params {
				v, err := abi.ParseValue(k, args[i+1])
				if err != nil {
					return err
				}
				vals[i] = v
			}
			c, err := config.Load()
			if err != nil {
				return err
			}
			rt, done, err := c.Std()
			if err != nil {
				return err
			}
			r, err := reg.Call(rt, p.Name, vals...)
			if cerr := done(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			if p.Result != abi.Void {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s = %q\n", p.Name, r.String())
			}
			if rerr := rt.Err(); rerr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", p.Name, rerr)
			}
			return nil
		},
	}
}

func conformCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "conform <suite.yaml>...",
		Short: "Run conformance suites against the runtime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := abi.Default()
			w := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				s, err := conformance.LoadFile(path)
				if err != nil {
					return err
				}
				for _, r := range s.Run(reg) {
					if r.Err != nil {
						failed++
						fmt.Fprintf(w, "FAIL %s: %s: %v\n", path, r.Name, r.Err)
					} else if verbose {
						fmt.Fprintf(w, "ok   %s: %s\n", path, r.Name)
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d cases failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report passing cases too")
	return cmd
}
