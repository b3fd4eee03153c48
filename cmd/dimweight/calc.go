package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hapkiduki/dimweight/internal/application/dto"
	"github.com/hapkiduki/dimweight/internal/application/usecase"
	"github.com/hapkiduki/dimweight/internal/domain/valueobject"
	"github.com/hapkiduki/dimweight/internal/infrastructure/persistance/memory"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate billed weights for a package",
	Long: "Computes the dimensional and billed weight of one package for every carrier and prints the carrier table.\n" +
		"Dimensions are in inches; the actual weight is in the unit given by --unit.",
	Example: "  dimweight calc --length 20 --width 10 --height 10 --weight 15 --unit pounds\n" +
		"  dimweight calc -l 8 -w 6 -H 4 --weight 32 --unit oz --carrier usps --json",
	RunE: runCalc,
}

// calcOptions are the calc flags. Numbers stay raw text so they go through
// the same validation as form input.
type calcOptions struct {
	length  string
	width   string
	height  string
	weight  string
	unit    string
	carrier string
	asJSON  bool
}

var calcOpts calcOptions

func init() {
	calcCmd.Flags().StringVarP(&calcOpts.length, "length", "l", "", "Length in inches (longest side)")
	calcCmd.Flags().StringVarP(&calcOpts.width, "width", "w", "", "Width in inches")
	calcCmd.Flags().StringVarP(&calcOpts.height, "height", "H", "", "Height in inches")
	calcCmd.Flags().StringVar(&calcOpts.weight, "weight", "", "Actual weight")
	calcCmd.Flags().StringVarP(&calcOpts.unit, "unit", "u", "", "Unit of the actual weight: pounds (lbs) or ounces (oz)")
	calcCmd.Flags().StringVarP(&calcOpts.carrier, "carrier", "c", "", "Only show one carrier (ups, fedex, usps, firstmile)")
	calcCmd.Flags().BoolVar(&calcOpts.asJSON, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, _ []string) error {
	return calculate(cmd.Context(), calcOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// calculate runs one calculation and prints the carrier table to out.
// Validation failures print the user-facing message to errOut.
func calculate(ctx context.Context, opts calcOptions, out, errOut io.Writer) error {
	req := dto.CalculateRequest{
		Length:       dto.FieldText(opts.length),
		Width:        dto.FieldText(opts.width),
		Height:       dto.FieldText(opts.height),
		ActualWeight: dto.FieldText(opts.weight),
		Unit:         opts.unit,
	}

	calculator := usecase.NewCalculator(memory.NewCarrierRepository(), nil, nil)
	result, err := calculator.Calculate(ctx, req.ToInput(opts.carrier))
	if err != nil {
		if verr, ok := usecase.AsValidationError(err); ok {
			fmt.Fprintln(errOut, verr.Message())
			return verr
		}
		return err
	}

	resp := dto.NewCalculateResponse(result)
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return writeTable(out, resp)
}

func writeTable(out io.Writer, resp dto.CalculateResponse) error {
	fmt.Fprintln(out, resp.Message)
	fmt.Fprintf(out, "Package: %s (%s cubic in)\n\n", resp.Dimensions, valueobject.FormatNumber(resp.CubicSize))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CARRIER\tACTUAL WEIGHT\tDIM WEIGHT\tBILLED WEIGHT")
	for _, row := range resp.Carriers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Name, row.ActualWeight, row.DimensionalWeight, row.BilledWeight)
	}
	return tw.Flush()
}
