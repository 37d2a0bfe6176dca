package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/sigstr"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [flags] type...",
	Short: "Show size, alignment and field offsets of C types",
	Long: `Layout parses each type string and prints its C layout on the
selected target, for example:

  cabi layout "{bool, int64, bool}" "int8[8]"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	target, err := resolveTarget()
	if err != nil {
		return err
	}
	calc := ctypes.NewCalculator(target)

	out := cmd.OutOrStdout()
	failed := 0
	for _, src := range args {
		typ, info, lerr := layoutOne(calc, src)
		if lerr != nil {
			failed++
		}
		if format == "json" {
			if err := renderLayoutJSON(out, src, typ, info, lerr); err != nil {
				return err
			}
			continue
		}
		renderLayoutPretty(out, src, typ, info, lerr)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d types failed", failed, len(args))
	}
	return nil
}

func layoutOne(calc *ctypes.Calculator, src string) (*ctypes.Type, ctypes.Layout, error) {
	typ, err := sigstr.ParseType(src)
	if err != nil {
		return nil, ctypes.Layout{}, err
	}
	info, err := calc.Calculate(typ)
	if err != nil {
		return nil, ctypes.Layout{}, err
	}
	return typ, info, nil
}

func renderLayoutPretty(out io.Writer, src string, typ *ctypes.Type, info ctypes.Layout, err error) {
	fmt.Fprintln(out, headerColor.Sprint(src))
	if err != nil {
		fmt.Fprintf(out, "  %s\n\n", errColor.Sprint(err.Error()))
		return
	}

	fmt.Fprintf(out, "  size %d  align %d\n", info.Size, info.Align)
	if typ.Kind == ctypes.KindStruct {
		for i, f := range typ.Fields {
			label := f.Name
			if label == "" {
				label = fmt.Sprintf("field %d", i)
			}
			fmt.Fprintf(out, "  %-10s %-16s offset %d\n", label, f.Type.String(), info.FieldOffsets[i])
		}
	}
	fmt.Fprintln(out)
}

type layoutPayload struct {
	Type   string        `json:"type"`
	Error  string        `json:"error,omitempty"`
	Size   int           `json:"size"`
	Align  int           `json:"align"`
	Fields []layoutField `json:"fields,omitempty"`
}

type layoutField struct {
	Index  int    `json:"index"`
	Type   string `json:"type"`
	Offset int    `json:"offset"`
}

func renderLayoutJSON(out io.Writer, src string, typ *ctypes.Type, info ctypes.Layout, lerr error) error {
	payload := layoutPayload{Type: src}
	if lerr != nil {
		payload.Error = lerr.Error()
	} else {
		payload.Size = info.Size
		payload.Align = info.Align
		if typ.Kind == ctypes.KindStruct {
			for i, f := range typ.Fields {
				payload.Fields = append(payload.Fields, layoutField{
					Index:  i,
					Type:   f.Type.String(),
					Offset: info.FieldOffsets[i],
				})
			}
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
