package math

import "math"

// Rand is the random source for the generators, satisfied by *rand.Rand.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Profiles creates n access profiles over dim resources.
// Every resource is hot in a profile with probability p.
func Profiles(rnd Rand, n, dim int, p float64) [][]float64 {
	profiles := make([][]float64, n)
	for i := range profiles {
		profiles[i] = make([]float64, dim)
		for j := range profiles[i] {
			if rnd.Float64() < p {
				profiles[i][j] = 1
			}
		}
	}
	return profiles
}

// Sample draws an access vector around the profile, clipped to [0,1].
func Sample(rnd Rand, profile []float64, noise float64) []float64 {
	v := make([]float64, len(profile))
	for i, f := range profile {
		v[i] = math.Min(1, math.Max(0, f+noise*(2*rnd.Float64()-1)))
	}
	return v
}

// Clients draws n clients from the profiles.
// Client i gets one vector for training and an independent one for testing, from the same profile.
func Clients(rnd Rand, profiles [][]float64, n int, noise float64) (train, test [][]float64) {
	train = make([][]float64, n)
	test = make([][]float64, n)
	for i := 0; i < n; i++ {
		profile := profiles[rnd.Intn(len(profiles))]
		train[i] = Sample(rnd, profile, noise)
		test[i] = Sample(rnd, profile, noise)
	}
	return train, test
}
