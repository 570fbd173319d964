package access

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	folderWithFiveChildren        = "ecafbd2a-5688-11eb-ae93-0242ac130002"
	anotherFolderWithFiveChildren = "acafbd2a-5688-11eb-ae93-0242ac130002"
	yetAnotherFolder              = "acafbd2a-5688-11eb-ae93-0242ac130012"
)

// The orders below come from xxHash64 + SplitMix64. The web player shuffled
// the same five children with its own generator and got [2,4,1,3,5] for one
// actor, [1,2,3,4,5] and [3,2,1,4,5] for two others, and [1,4,3,2,5] for the
// first actor under another root. Switching to that generator means
// replacing these cases with those orders.
func TestSeededOrder_KnownPermutations(t *testing.T) {
	children := []int{1, 2, 3, 4, 5}
	cases := []struct {
		name  string
		root  string
		actor string
		want  []int
	}{
		{"anna on first folder", folderWithFiveChildren, anna, []int{4, 1, 3, 2, 5}},
		{"bob on first folder", folderWithFiveChildren, bob, []int{2, 3, 1, 4, 5}},
		{"cedric on first folder", folderWithFiveChildren, cedric, []int{2, 3, 4, 1, 5}},
		{"anonymous on first folder", folderWithFiveChildren, "", []int{3, 1, 4, 2, 5}},
		{"anna on another folder", anotherFolderWithFiveChildren, anna, []int{3, 1, 2, 4, 5}},
		{"bob on another folder", anotherFolderWithFiveChildren, bob, []int{2, 4, 3, 1, 5}},
		{"cedric on yet another folder", yetAnotherFolder, cedric, []int{2, 4, 3, 1, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SeededOrder(children, CombineIDs(tc.root, tc.actor))
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSeededOrder_LastStaysLast(t *testing.T) {
	seq := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got := SeededOrder(seq, CombineIDs(folderWithFiveChildren, anna))
	require.Equal(t, []int{1, 2, 9, 3, 7, 8, 6, 4, 5, 10}, got)
	require.Equal(t, seq[len(seq)-1], got[len(got)-1])
	require.ElementsMatch(t, seq, got)
}

func TestSeededOrder_IsRepeatable(t *testing.T) {
	seq := []string{"a", "b", "c", "d", "e", "f"}
	material := CombineIDs(anotherFolderWithFiveChildren, bob)

	first := SeededOrder(seq, material)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, SeededOrder(seq, material))
	}
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, seq, "input must not be modified")
}

func TestSeededOrder_ShortSequences(t *testing.T) {
	require.Empty(t, SeededOrder([]int{}, "x"))
	require.Equal(t, []int{7}, SeededOrder([]int{7}, "x"))
	require.Equal(t, []int{7, 8}, SeededOrder([]int{7, 8}, "x"))
	require.Nil(t, SeededOrder[int](nil, "x"))
}

type zeroSource struct{}

func (zeroSource) Uint64() uint64 { return 0 }

func TestSeededOrderWith_InjectedSource(t *testing.T) {
	got := SeededOrderWith([]string{"a", "b", "c", "d", "e"}, zeroSource{})
	require.Equal(t, []string{"b", "c", "d", "a", "e"}, got)
}

func TestSplitMix64_DependsOnlyOnSeed(t *testing.T) {
	a := NewSplitMix64(42)
	b := NewSplitMix64(42)
	c := NewSplitMix64(43)
	for i := 0; i < 10; i++ {
		va := a.Uint64()
		require.Equal(t, va, b.Uint64())
		require.NotEqual(t, va, c.Uint64())
	}
}
