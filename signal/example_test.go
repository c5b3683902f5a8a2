package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spice/signal"
)

func ExampleGenerator_Sine() {
	g, err := signal.NewGenerator(1000)
	if err != nil {
		panic(err)
	}
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	for i, v := range x {
		if math.Abs(v) < 1e-12 {
			x[i] = 0
		}
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleShape() {
	out, err := signal.Shape([]float64{-1, 0, 1}, 2, -0.2, 1.2)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.1f %.1f %.1f\n", out[0], out[1], out[2])

	// Output:
	// -1.2 -0.2 1.2
}
