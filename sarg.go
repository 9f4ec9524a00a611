// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"fmt"
	"strings"
)

// SargOp enumerates the relational and boolean operators a SargNode can
// carry.
type SargOp int

const (
	SargEQ SargOp = iota
	SargNE
	SargGT
	SargGE
	SargLT
	SargLE
	SargLike
	SargILike
	SargAnd
	SargOr
	SargNot
)

// SargNode is one node of a search-argument tree: either a leaf
// comparing a bound column against a constant, or an AND/OR/NOT
// combination of child nodes.
type SargNode struct {
	Op   SargOp
	Col  string
	Val  interface{}
	Kids []*SargNode
}

// SargEvaluator decides whether a fetched row satisfies a search-argument
// tree. Table.FetchRow applies DefaultSargEvaluator to Table.SargTree; a
// nil tree is equivalent to "always true". Index-driven evaluation (walking
// an index directly instead of testing every scanned row) is out of
// scope for this module.
type SargEvaluator interface {
	Eval(node *SargNode, cols []*Column, row []interface{}) (bool, error)
}

// DefaultSargEvaluator is a reference, row-at-a-time evaluator suitable
// for filtering rows already produced by Table.FetchRow.
type DefaultSargEvaluator struct{}

func (DefaultSargEvaluator) Eval(node *SargNode, cols []*Column, row []interface{}) (bool, error) {
	if node == nil {
		return true, nil
	}
	switch node.Op {
	case SargAnd:
		for _, k := range node.Kids {
			ok, err := (DefaultSargEvaluator{}).Eval(k, cols, row)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case SargOr:
		for _, k := range node.Kids {
			ok, err := (DefaultSargEvaluator{}).Eval(k, cols, row)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case SargNot:
		if len(node.Kids) != 1 {
			return false, fmt.Errorf("NOT node requires exactly one child")
		}
		ok, err := (DefaultSargEvaluator{}).Eval(node.Kids[0], cols, row)
		return !ok, err
	}

	idx := findField(cols, node.Col)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrColumnNotBound, node.Col)
	}
	return testSarg(node.Op, row[idx], node.Val)
}

// findField returns the 0-based index of the named column, or -1.
func findField(cols []*Column, name string) int {
	for i, c := range cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// testSarg compares a bound row value against a constant per op,
// dispatching on the dynamic type of actual.
func testSarg(op SargOp, actual, want interface{}) (bool, error) {
	switch op {
	case SargLike:
		return likeCompare(fmt.Sprint(actual), fmt.Sprint(want), false), nil
	case SargILike:
		return likeCompare(fmt.Sprint(actual), fmt.Sprint(want), true), nil
	}

	switch a := actual.(type) {
	case int16:
		return testOrdered(op, float64(a), toFloat(want))
	case int32:
		return testOrdered(op, float64(a), toFloat(want))
	case uint32:
		return testOrdered(op, float64(a), toFloat(want))
	case float32:
		return testOrdered(op, float64(a), toFloat(want))
	case float64:
		return testOrdered(op, a, toFloat(want))
	case string:
		return testOrderedString(op, a, fmt.Sprint(want))
	case bool:
		b, _ := want.(bool)
		return (op == SargEQ && a == b) || (op == SargNE && a != b), nil
	default:
		return false, nil
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func testOrdered(op SargOp, a, b float64) (bool, error) {
	switch op {
	case SargEQ:
		return a == b, nil
	case SargNE:
		return a != b, nil
	case SargGT:
		return a > b, nil
	case SargGE:
		return a >= b, nil
	case SargLT:
		return a < b, nil
	case SargLE:
		return a <= b, nil
	default:
		return false, fmt.Errorf("unsupported ordered op %d", op)
	}
}

func testOrderedString(op SargOp, a, b string) (bool, error) {
	switch op {
	case SargEQ:
		return a == b, nil
	case SargNE:
		return a != b, nil
	case SargGT:
		return a > b, nil
	case SargGE:
		return a >= b, nil
	case SargLT:
		return a < b, nil
	case SargLE:
		return a <= b, nil
	default:
		return false, fmt.Errorf("unsupported ordered op %d", op)
	}
}

// likeCompare implements SQL-style LIKE/ILIKE with % and _ wildcards.
func likeCompare(s, pattern string, ignoreCase bool) bool {
	if ignoreCase {
		s = strings.ToLower(s)
		pattern = strings.ToLower(pattern)
	}
	return likeMatch(s, pattern)
}

func likeMatch(s, pattern string) bool {
	if pattern == "" {
		return s == ""
	}
	switch pattern[0] {
	case '%':
		if likeMatch(s, pattern[1:]) {
			return true
		}
		for i := 0; i < len(s); i++ {
			if likeMatch(s[i+1:], pattern[1:]) {
				return true
			}
		}
		return false
	case '_':
		if len(s) == 0 {
			return false
		}
		return likeMatch(s[1:], pattern[1:])
	default:
		if len(s) == 0 || s[0] != pattern[0] {
			return false
		}
		return likeMatch(s[1:], pattern[1:])
	}
}
