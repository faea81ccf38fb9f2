// /home/krylon/go/src/github.com/blicero/feedstore/ident/ident_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 15:52:19 krylon>

package ident

import "testing"

func TestIdentityKnownValue(t *testing.T) {
	// sha256("abc")
	const expect = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	if k := Identity("abc"); k != expect {
		t.Errorf("Unexpected digest for \"abc\": %s (expected %s)",
			k,
			expect)
	} else if k = Identity("a", "b", "c"); k != expect {
		t.Errorf("Digest of parts differs from digest of concatenation: %s",
			k)
	}
} // func TestIdentityKnownValue(t *testing.T)

func TestKeys(t *testing.T) {
	type testCase struct {
		k1, k2 string
		equal  bool
	}

	var testCases = []testCase{
		{SiteKey("Blog"), SiteKey("Blog"), true},
		{SiteKey("Blog"), SiteKey("blog"), false},
		{SiteKey("Blog"), SiteKey("Blog "), false},
		{EntryKey("Post1", "http://x/1"), EntryKey("Post1", "http://x/1"), true},
		{EntryKey("Post1", "http://x/1"), Identity("Post1http://x/1"), true},
		{EntryKey("Post1", "http://x/1"), EntryKey("Post1", "http://x/2"), false},
		{SiteKey("Post1"), EntryKey("Post1", ""), true},
	}

	for idx, c := range testCases {
		if (c.k1 == c.k2) != c.equal {
			t.Errorf("Test case #%d: %s == %s should be %t",
				idx,
				c.k1,
				c.k2,
				c.equal)
		} else if !Valid(c.k1) || !Valid(c.k2) {
			t.Errorf("Test case #%d: key is not valid: %s / %s",
				idx,
				c.k1,
				c.k2)
		}
	}
} // func TestKeys(t *testing.T)

func TestValid(t *testing.T) {
	type testCase struct {
		s      string
		expect bool
	}

	var key = SiteKey("x")
	var testCases = []testCase{
		{key, true},
		{"", false},
		{"abc", false},
		{key[:63], false},
		{key + "0", false},
		{"ZZ" + key[2:], false},
	}

	for _, c := range testCases {
		if Valid(c.s) != c.expect {
			t.Errorf("Valid(%q) should be %t", c.s, c.expect)
		}
	}
} // func TestValid(t *testing.T)
