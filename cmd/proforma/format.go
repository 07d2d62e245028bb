package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/proforma-service/internal/usecase/dto"
)

func printReference(w io.Writer, ref *dto.ReferenceResponse) error {
	fmt.Fprintf(w, "Reference: %s / %s parking\n\n", ref.Form, ref.Parking)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "far\tbldg sqft\tspaces\tpark sqft\tstories\theight\tcost/sqft\tbreak-even\tmonths\t")
	for _, e := range ref.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			num(e.Far, 2), num(e.BuildingSqft, 0), num(e.Spaces, 1), num(e.ParkSqft, 0),
			num(e.Stories, 0), num(e.Height, 0), num(e.BuildCostSqft, 2),
			num(e.AveCostSqft, 2), num(e.ConstructionMonths, 0))
	}
	return tw.Flush()
}

func printBreakEven(w io.Writer, resp *dto.BreakEvenResponse) error {
	fmt.Fprintf(w, "Break-even cost: %s / %s parking\n\n", resp.Form, resp.Parking)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "far\tbreak-even\t")
	for i, far := range resp.Fars {
		fmt.Fprintf(tw, "%.2f\t%s\t\n", far, num(resp.Costs[i], 2))
	}
	return tw.Flush()
}

// num renders null values as "-"
func num(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}
