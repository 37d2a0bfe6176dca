package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/callsite/cabi/abi"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] signature...",
	Short: "Classify C signatures into their wrapper form",
	Long: `Classify parses each signature string, runs eightbyte classification
and prints the wrapper signature together with the marshalling plan,
for example:

  cabi classify "float64(float64, float64)" "{int64, int32}(int8)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	target, err := resolveTarget()
	if err != nil {
		return err
	}
	classifier, err := abi.NewClassifier(target)
	if err != nil {
		return err
	}

	// Classification is pure, so the signatures fan out and the
	// results print in input order.
	reports := make([]*sigReport, len(args))
	errs := make([]error, len(args))
	var g errgroup.Group
	for i, src := range args {
		g.Go(func() error {
			reports[i], errs[i] = buildReport(classifier, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for i, src := range args {
		if errs[i] != nil {
			failed++
		}
		if format == "json" {
			if err := renderClassifyJSON(out, src, reports[i], errs[i]); err != nil {
				return err
			}
			continue
		}
		renderClassifyPretty(out, src, reports[i], errs[i])
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d signatures failed", failed, len(args))
	}
	return nil
}

var (
	headerColor  = color.New(color.FgWhite, color.Bold)
	wrapperColor = color.New(color.FgGreen)
	classColor   = color.New(color.FgCyan)
	memoryColor  = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
)

func renderClassifyPretty(out io.Writer, src string, r *sigReport, err error) {
	fmt.Fprintln(out, headerColor.Sprint(src))
	if err != nil {
		fmt.Fprintf(out, "  %s\n\n", errColor.Sprint(err.Error()))
		return
	}

	fmt.Fprintf(out, "  wrapper:     %s\n", wrapperColor.Sprint(r.wrapper.String()))
	fmt.Fprintf(out, "  fingerprint: %s\n", dimColor.Sprint(r.fp))
	for i, arg := range r.sig.Args {
		fmt.Fprintf(out, "  arg %d: %-24s %s  %s\n",
			i, arg.String(), colorClasses(r.args[i]), argRouteLabel(r.plan.Args[i]))
	}
	if r.ret == nil {
		fmt.Fprintf(out, "  ret:   %-24s %s\n", "void", dimColor.Sprint("none"))
	} else {
		fmt.Fprintf(out, "  ret:   %-24s %s  %s\n",
			r.sig.Ret.String(), colorClasses(*r.ret), retRouteLabel(r))
	}
	fmt.Fprintln(out)
}

func colorClasses(tc abi.TypeClass) string {
	if tc.Memory {
		return memoryColor.Sprint(classesLabel(tc))
	}
	return classColor.Sprint(classesLabel(tc))
}

type classifyPayload struct {
	Signature   string       `json:"signature"`
	Error       string       `json:"error,omitempty"`
	Wrapper     string       `json:"wrapper,omitempty"`
	Fingerprint string       `json:"fingerprint,omitempty"`
	Args        []argPayload `json:"args,omitempty"`
	Ret         *retPayload  `json:"ret,omitempty"`
}

type argPayload struct {
	Type      string   `json:"type"`
	Classes   []string `json:"classes"`
	Slots     []int    `json:"slots"`
	ByPointer bool     `json:"by_pointer"`
}

type retPayload struct {
	Type        string   `json:"type"`
	Classes     []string `json:"classes,omitempty"`
	Slots       int      `json:"slots"`
	Indirect    bool     `json:"indirect"`
	PointerSlot int      `json:"pointer_slot"`
}

func renderClassifyJSON(out io.Writer, src string, r *sigReport, rerr error) error {
	payload := classifyPayload{Signature: src}
	if rerr != nil {
		payload.Error = rerr.Error()
	} else {
		payload.Wrapper = r.wrapper.String()
		payload.Fingerprint = r.fp
		for i := range r.sig.Args {
			payload.Args = append(payload.Args, argPayload{
				Type:      r.sig.Args[i].String(),
				Classes:   classNames(r.args[i]),
				Slots:     r.plan.Args[i].Slots,
				ByPointer: r.plan.Args[i].ByPointer,
			})
		}
		ret := &retPayload{
			Type:        r.sig.Ret.String(),
			Slots:       r.plan.Ret.Slots,
			Indirect:    r.plan.Ret.Indirect,
			PointerSlot: r.plan.Ret.PointerSlot,
		}
		if r.ret != nil {
			ret.Classes = classNames(*r.ret)
		}
		payload.Ret = ret
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func classNames(tc abi.TypeClass) []string {
	names := make([]string, len(tc.Classes))
	for i, c := range tc.Classes {
		names[i] = c.String()
	}
	return names
}
