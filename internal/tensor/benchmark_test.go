package tensor

import (
	"fmt"
	"math/rand"
	"testing"
)

func BenchmarkTensorCreation(b *testing.B) {
	shape := Shape{100, 100}
	rng := rand.New(rand.NewSource(1))

	b.Run("Zeros", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Zeros(shape, Float32)
		}
	})

	b.Run("Ones", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Ones(shape, Float32)
		}
	})

	b.Run("Rand", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Rand(shape, Float32, 0, 1, rng)
		}
	})

	pixels := make([]uint8, 224*224*3)
	b.Run("View", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = View(pixels, Shape{224, 224, 3})
		}
	})
}

func BenchmarkShapeOperations(b *testing.B) {
	shape1 := Shape{100, 1}
	shape2 := Shape{100, 100}

	b.Run("NumElements", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = shape2.NumElements()
		}
	})

	b.Run("BroadcastShapes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _, _ = BroadcastShapes(shape1, shape2)
		}
	})
}

func BenchmarkTensorElementWise(b *testing.B) {
	sizes := []int{10, 100, 1000}

	for _, size := range sizes {
		x := Ones(Shape{size, size}, Float32)
		y := Ones(Shape{size, size}, Float32)
		row := Ones(Shape{size}, Float32)

		b.Run(fmt.Sprintf("Add_%dx%d", size, size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = x.Add(y)
			}
		})

		b.Run(fmt.Sprintf("AddBroadcast_%dx%d", size, size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = x.Add(row)
			}
		})

		b.Run(fmt.Sprintf("Exp_%dx%d", size, size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = x.Exp()
			}
		})

		b.Run(fmt.Sprintf("DivScalar_%dx%d", size, size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = x.DivScalar(255)
			}
		})
	}
}

func BenchmarkPermute(b *testing.B) {
	x := Zeros(Shape{8, 224, 224, 3}, Float32)

	b.Run("NHWC_to_NCHW", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = x.Permute(0, 3, 1, 2)
		}
	})

	b.Run("Reshape", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = x.Reshape(8, -1)
		}
	})
}

func BenchmarkReductions(b *testing.B) {
	x := Ones(Shape{1000, 1000}, Float32)

	b.Run("Sum", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = x.Sum()
		}
	})

	b.Run("MaxAxis", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = x.MaxAxis(1, false)
		}
	})

	b.Run("Any", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Any(x)
		}
	})
}
