package redact

import "math"

// Kernel is a square matrix of convolution weights summing to 1.
type Kernel struct {
	size    int
	weights []float64
}

// BuildKernel returns a size×size kernel with a radial falloff centered on
// the middle cell. A size below 1 is treated as 1.
//
// Each cell (i, j) maps to x = (2i-size+1)/size, y = (2j-size+1)/size. Its
// weight is f(d) = 1 - (3d - d³)/2 with d = √(x²+y²), and the matrix is then
// normalized so the weights sum to 1 and brightness is preserved.
func BuildKernel(size int) Kernel {
	if size < 1 {
		size = 1
	}

	weights := make([]float64, size*size)
	sum := 0.0
	for j := 0; j < size; j++ {
		y := float64(2*j-size+1) / float64(size)
		for i := 0; i < size; i++ {
			x := float64(2*i-size+1) / float64(size)
			d := math.Sqrt(x*x + y*y)
			w := 1 - (3*d-d*d*d)/2
			weights[j*size+i] = w
			sum += w
		}
	}

	for i := range weights {
		weights[i] /= sum
	}

	return Kernel{size: size, weights: weights}
}

// Size returns the kernel width and height.
func (k Kernel) Size() int { return k.size }

// At returns the weight at column i, row j.
func (k Kernel) At(i, j int) float64 {
	return k.weights[j*k.size+i]
}

// Sum returns the total of all weights.
func (k Kernel) Sum() float64 {
	sum := 0.0
	for _, w := range k.weights {
		sum += w
	}
	return sum
}

// offset is the distance from the kernel's anchor cell to cell i.
func (k Kernel) offset(i int) int {
	return i - (k.size-1)/2
}
