package symbol_test

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/symbol"
)

func ExampleGate_Connector() {
	nand := symbol.NewGate(symbol.NAND, gg.Pt(0, 0), 3)
	for i := range 3 {
		p, _ := nand.Connector(symbol.Inputs, i)
		fmt.Printf("in%d %.0f,%.0f\n", i, p.X, p.Y)
	}
	out, _ := nand.Connector(symbol.Outputs, 0)
	fmt.Printf("out %.0f,%.0f\n", out.X, out.Y)
	// Output:
	// in0 0,13
	// in1 0,40
	// in2 0,67
	// out 110,40
}
