package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSubkey(t *testing.T) {
	cases := []struct {
		name string
		base string
		kind string
	}{
		{"mykey:State", "mykey", "State"},
		{"mykey", "mykey", ""},
		{"a:b:c", "a", "b:c"}, // only the first separator splits
		{"", "", ""},
		{":State", "", "State"},
	}
	for _, tc := range cases {
		base, kind := SplitSubkey(tc.name)
		assert.Equal(t, tc.base, base, "base of %q", tc.name)
		assert.Equal(t, tc.kind, kind, "kind of %q", tc.name)
	}
}

func TestFlatForm(t *testing.T) {
	assert.Equal(t, "mykey,State", FlatForm("mykey:State"))
	assert.Equal(t, "mykey", FlatForm("mykey"))
	assert.Equal(t, "", FlatForm(""))
}

func TestJoinSplitRecord(t *testing.T) {
	segs := []string{"Setup", "/Network/Global/IPv4", "ServiceOrder", "0"}
	rec := JoinRecord(segs)
	assert.Equal(t, "Setup,/Network/Global/IPv4,ServiceOrder,0", rec)
	assert.Equal(t, segs, SplitRecord(rec))
}

func TestNormalizeQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"mykey:State,a,1", "mykey,State,a,1"},
		{"mykey:State", "mykey,State"},
		{"mykey,State,a", "mykey,State,a"},
		// a tag separator past the first segment is payload, not a tag
		{"a,b:c", "a,b:c"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeQuery(tc.in), "input %q", tc.in)
	}
}
