// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import "testing"

func TestLikeMatch(t *testing.T) {
	cases := []struct {
		s, pattern string
		want       bool
	}{
		{"hello", "hello", true},
		{"hello", "he%", true},
		{"hello", "%llo", true},
		{"hello", "h_llo", true},
		{"hello", "h_lo", false},
		{"hello", "%xyz%", false},
		{"", "%", true},
	}
	for _, c := range cases {
		if got := likeMatch(c.s, c.pattern); got != c.want {
			t.Errorf("likeMatch(%q, %q) = %v, want %v", c.s, c.pattern, got, c.want)
		}
	}
}

func TestDefaultSargEvaluatorAndNot(t *testing.T) {
	cols := []*Column{{Name: "Age", ColNum: 0}}
	row := []interface{}{int32(30)}

	node := &SargNode{Op: SargAnd, Kids: []*SargNode{
		{Op: SargGE, Col: "Age", Val: 18},
		{Op: SargLT, Col: "Age", Val: 65},
	}}

	ok, err := (DefaultSargEvaluator{}).Eval(node, cols, row)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected row to satisfy 18 <= Age < 65")
	}

	node2 := &SargNode{Op: SargNot, Kids: []*SargNode{
		{Op: SargEQ, Col: "Age", Val: 30},
	}}
	ok, err = (DefaultSargEvaluator{}).Eval(node2, cols, row)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected NOT(Age = 30) to be false")
	}
}
