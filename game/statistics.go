package game

import "github.com/chewxy/math32"

// Mean returns the arithmetic mean of nums, or 0 for an empty slice.
func Mean(nums []float32) float32 {
	if len(nums) == 0 {
		return 0
	}
	var sum float32
	for _, v := range nums {
		sum += v
	}
	return sum / float32(len(nums))
}

// Variance returns the population variance of nums.
func Variance(nums []float32) (variance float32) {
	if len(nums) == 0 {
		return 0
	}
	mean := Mean(nums)
	for _, v := range nums {
		variance += (v - mean) * (v - mean)
	}
	return variance / float32(len(nums))
}

func StandardDeviation(nums []float32) float32 {
	return math32.Sqrt(Variance(nums))
}
