// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package refbitcache

const (
	// Version of the refbitcache library.
	Version = "v0.1.0-dev"

	// DefaultIndexSizeFactor sizes the initial key index relative to
	// capacity: H >= nextPrime(DefaultIndexSizeFactor * C).
	DefaultIndexSizeFactor = 2

	// indexGrowthFactor is the multiplier applied to H on rehash:
	// the new table is sized nextPrime(indexGrowthFactor * H).
	indexGrowthFactor = 2

	// maxLoadFactorNumerator / maxLoadFactorDenominator express the
	// I2 bound used/H < 0.7 as an integer comparison so the hot insert
	// path never touches floating point.
	maxLoadFactorNumerator   = 7
	maxLoadFactorDenominator = 10
)
