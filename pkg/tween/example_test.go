package tween_test

import (
	"fmt"

	"github.com/matzehuels/drawkit/pkg/tween"
)

func Example() {
	alpha := tween.New(0).Wait(2).ToD(1, 0.5)
	for _, t := range []float64{1, 2.25, 10} {
		fmt.Printf("%.2f\n", alpha.Get(t))
	}
	// Output:
	// 0.00
	// 0.50
	// 1.00
}
