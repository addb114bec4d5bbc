// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package math

import (
	"fmt"
	"math/big"
)

// Interval represents a set of values which a fixed-width (i.e. n-bit)
// expression may hold.  Since values live in the ring of integers modulo 2^n,
// an interval may wrap around.  Specifically, an interval [l,h] where l <= h
// represents the contiguous set {l,...,h}, whilst an interval where l > h
// represents the set {0,...,h} U {l,...,2^n-1}.  The interval [0,2^n-1] is
// referred to as "full", and represents every value of the given width.
//
// Intervals are values and are never modified after construction.  Two
// intervals can only be combined when they have the same width.
type Interval struct {
	low   big.Int
	high  big.Int
	width uint
}

// NewInterval constructs an interval of a given width covering a given range
// of values.  This will panic if either endpoint lies outside [0,2^n-1].  A
// wrapped interval whose gap is empty (i.e. low == high+1) represents every
// value, and is normalised to the full interval.
func NewInterval(low big.Int, high big.Int, width uint) Interval {
	var (
		max = MaxUnsigned(width)
		gap big.Int
	)
	// sanity check
	checkWidth(width)
	//
	if low.Sign() < 0 || high.Sign() < 0 || low.Cmp(&max) > 0 || high.Cmp(&max) > 0 {
		panic(fmt.Sprintf("invalid interval [%s, %s] for width %d", low.String(), high.String(), width))
	}
	// Normalise wrapped intervals without a gap
	if gap.Add(&high, one); gap.Cmp(&low) == 0 {
		return FullInterval(width)
	}
	//
	return Interval{*new(big.Int).Set(&low), *new(big.Int).Set(&high), width}
}

// NewInterval64 constructs an interval of a given width from machine integers.
func NewInterval64(low uint64, high uint64, width uint) Interval {
	var l, h big.Int
	//
	l.SetUint64(low)
	h.SetUint64(high)
	//
	return NewInterval(l, h, width)
}

// FullInterval constructs the interval containing every value of a given
// width.
func FullInterval(width uint) Interval {
	checkWidth(width)
	//
	return Interval{*big.NewInt(0), MaxUnsigned(width), width}
}

// PointInterval constructs the interval containing exactly one value.
func PointInterval(val big.Int, width uint) Interval {
	return NewInterval(val, val, width)
}

// Width returns the number of bits of the values in this interval.
func (p *Interval) Width() uint {
	return p.width
}

// Low returns the lower endpoint of this interval.  Observe that, for a wrapped
// interval, this is not the smallest value contained in the interval.
func (p *Interval) Low() big.Int {
	return *new(big.Int).Set(&p.low)
}

// High returns the upper endpoint of this interval.  Observe that, for a
// wrapped interval, this is not the largest value contained in the interval.
func (p *Interval) High() big.Int {
	return *new(big.Int).Set(&p.high)
}

// IsFull checks whether this interval contains every value of its width.
func (p *Interval) IsFull() bool {
	max := MaxUnsigned(p.width)
	return p.low.Sign() == 0 && p.high.Cmp(&max) == 0
}

// IsWrapped checks whether this interval wraps around through zero.
func (p *Interval) IsWrapped() bool {
	return p.low.Cmp(&p.high) > 0
}

// IsPoint checks whether this interval contains exactly one value.
func (p *Interval) IsPoint() bool {
	return p.low.Cmp(&p.high) == 0
}

// Equals checks whether two intervals are structurally identical.
func (p *Interval) Equals(other Interval) bool {
	return p.width == other.width && p.low.Cmp(&other.low) == 0 && p.high.Cmp(&other.high) == 0
}

// Contains checks whether a given value is contained within this interval.
func (p *Interval) Contains(val big.Int) bool {
	if p.IsWrapped() {
		return val.Cmp(&p.high) <= 0 || val.Cmp(&p.low) >= 0
	}
	//
	return val.Cmp(&p.low) >= 0 && val.Cmp(&p.high) <= 0
}

// Implies checks whether every value in this interval is also contained in
// another interval (i.e. whether this is a subset of the other).
func (p *Interval) Implies(other Interval) bool {
	p.checkCompatible(other)
	//
	if other.IsFull() {
		return true
	} else if p.IsFull() {
		return false
	}
	//
	switch {
	case p.IsWrapped():
		// l >= b.l > b.h >= h
		return other.IsWrapped() && p.high.Cmp(&other.high) <= 0 && p.low.Cmp(&other.low) >= 0
	case other.IsWrapped():
		// Must fit entirely within one of the two segments of other.
		return p.high.Cmp(&other.high) <= 0 || p.low.Cmp(&other.low) >= 0
	default:
		return p.low.Cmp(&other.low) >= 0 && p.high.Cmp(&other.high) <= 0
	}
}

// Intersect computes an interval approximating the intersection of this
// interval and another.  The result always contains every value in both
// intervals, but may contain more.  For example, the true intersection of two
// wrapped intervals need not be a single interval.  Likewise, a contiguous
// interval reaching into the upper segment of a wrapped interval yields the
// whole of that segment below its high endpoint.  This returns false when the
// intersection is definitely empty.
func (p *Interval) Intersect(other Interval) (Interval, bool) {
	p.checkCompatible(other)
	//
	if p.IsFull() || p.Equals(other) {
		return other, true
	} else if other.IsFull() {
		return *p, true
	}
	//
	switch {
	case p.IsWrapped() && other.IsWrapped():
		return p.intersectWrapped(other), true
	case p.IsWrapped():
		return other.intersectMixed(*p)
	case other.IsWrapped():
		return p.intersectMixed(other)
	}
	// Both contiguous
	low := maxInt(&p.low, &other.low)
	high := minInt(&p.high, &other.high)
	//
	if low.Cmp(high) > 0 {
		return Interval{}, false
	}
	//
	return NewInterval(*low, *high, p.width), true
}

// Intersect two wrapped intervals.  Where either interval reaches into the
// other's upper segment this approximates by one of the two operands;
// otherwise the result is exact.
func (p *Interval) intersectWrapped(other Interval) Interval {
	if p.high.Cmp(&other.low) >= 0 {
		return other
	} else if other.high.Cmp(&p.low) >= 0 {
		return *p
	}
	//
	return NewInterval(*maxInt(&p.low, &other.low), *minInt(&p.high, &other.high), p.width)
}

// Intersect a contiguous interval (p) with a wrapped interval (other).
func (p *Interval) intersectMixed(other Interval) (Interval, bool) {
	lowAbove := p.low.Cmp(&other.high) > 0
	highAbove := p.high.Cmp(&other.low) >= 0
	// ... b.h ... l ... h ... b.l ...
	if !highAbove && lowAbove {
		return Interval{}, false
	}
	// ... l ... b.h ... b.l ... h ...
	if highAbove && !lowAbove {
		return other, true
	} else if highAbove {
		// ... b.h ... l ... b.l ... h ...
		return NewInterval(other.low, p.high, p.width), true
	}
	// ... l ... b.h ... h ... b.l ...
	return NewInterval(p.low, *minInt(&p.high, &other.high), p.width), true
}

// Negate computes the complement of this interval within [0,2^n-1].  This
// returns false if the complement is empty (i.e. this interval is full).
func (p *Interval) Negate() (Interval, bool) {
	var (
		max  = MaxUnsigned(p.width)
		low  big.Int
		high big.Int
	)
	//
	switch {
	case p.IsFull():
		return Interval{}, false
	case p.low.Sign() == 0:
		low.Add(&p.high, one)
		high = max
	case p.high.Cmp(&max) == 0:
		high.Sub(&p.low, one)
	default:
		// For a wrapped interval this is the (contiguous) gap.
		low.Add(&p.high, one)
		high.Sub(&p.low, one)
	}
	//
	return NewInterval(low, high, p.width), true
}

func (p *Interval) String() string {
	return fmt.Sprintf("[%s, %s]", p.low.String(), p.high.String())
}

func (p *Interval) checkCompatible(other Interval) {
	if p.width != other.width {
		panic(fmt.Sprintf("incompatible interval widths (%d vs %d)", p.width, other.width))
	}
}

func maxInt(l *big.Int, r *big.Int) *big.Int {
	if l.Cmp(r) >= 0 {
		return l
	}
	//
	return r
}

func minInt(l *big.Int, r *big.Int) *big.Int {
	if l.Cmp(r) <= 0 {
		return l
	}
	//
	return r
}
