package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs makes section ids predictable for the duration of a test
func sequentialIDs(t *testing.T, ids ...string) {
	t.Helper()
	orig := newSectionID
	i := 0
	newSectionID = func() string {
		if i < len(ids) {
			i++
			return ids[i-1]
		}
		i++
		return fmt.Sprintf("id-%d", i)
	}
	t.Cleanup(func() { newSectionID = orig })
}

func sampleSections() Sections {
	return Sections{
		{ID: "a", Type: SectionKindText, Content: "<p>A</p>"},
		{ID: "b", Type: SectionKindImage, URL: "https://x/b.png"},
		{ID: "c", Type: SectionKindCTA, Content: "Go", URL: "https://c"},
		{ID: "d", Type: SectionKindText},
	}
}

func ids(s Sections) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].ID
	}
	return out
}

func TestSectionKind_Validate(t *testing.T) {
	for _, k := range []SectionKind{SectionKindText, SectionKindImage, SectionKindCTA} {
		assert.NoError(t, k.Validate())
	}
	assert.ErrorIs(t, SectionKind("video").Validate(), ErrInvalidSectionKind)
	assert.ErrorIs(t, SectionKind("").Validate(), ErrInvalidSectionKind)
}

func TestNewSection(t *testing.T) {
	sequentialIDs(t, "s1", "s2", "s3")

	text, err := NewSection(SectionKindText)
	require.NoError(t, err)
	assert.Equal(t, Section{ID: "s1", Type: SectionKindText}, text)

	image, err := NewSection(SectionKindImage)
	require.NoError(t, err)
	assert.Equal(t, Section{ID: "s2", Type: SectionKindImage}, image)

	cta, err := NewSection(SectionKindCTA)
	require.NoError(t, err)
	assert.Equal(t, Section{ID: "s3", Type: SectionKindCTA, Content: DefaultCTALabel}, cta)

	_, err = NewSection("video")
	assert.ErrorIs(t, err, ErrInvalidSectionKind)
}

func TestSections_Add(t *testing.T) {
	t.Run("appends with a fresh id", func(t *testing.T) {
		before := sampleSections()
		after, created, err := before.Add(SectionKindCTA)
		require.NoError(t, err)

		assert.Len(t, after, len(before)+1)
		assert.Equal(t, created, after[len(after)-1])
		assert.NotContains(t, ids(before), created.ID)
		assert.Equal(t, ids(before), ids(after[:len(before)]))
		assert.Equal(t, "Click Me", created.Content)
		assert.Empty(t, created.URL)
	})

	t.Run("regenerates colliding ids", func(t *testing.T) {
		sequentialIDs(t, "a", "b", "fresh")
		after, created, err := sampleSections().Add(SectionKindText)
		require.NoError(t, err)
		assert.Equal(t, "fresh", created.ID)
		assert.NoError(t, after.Validate())
	})

	t.Run("does not touch the receiver", func(t *testing.T) {
		before := make(Sections, 1, 8)
		before[0] = Section{ID: "x", Type: SectionKindText}
		after, _, err := before.Add(SectionKindText)
		require.NoError(t, err)
		after[0].Content = "changed"
		assert.Empty(t, before[0].Content)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		before := sampleSections()
		after, _, err := before.Add("video")
		assert.ErrorIs(t, err, ErrInvalidSectionKind)
		assert.Equal(t, before, after)
	})

	t.Run("starting from empty", func(t *testing.T) {
		after, created, err := Sections{}.Add(SectionKindText)
		require.NoError(t, err)
		assert.Equal(t, Sections{created}, after)
	})
}

func TestSections_Update(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		field SectionField
		value string
		want  func(Sections) Sections
	}{
		{
			name: "content", id: "a", field: SectionFieldContent, value: "<p>new</p>",
			want: func(s Sections) Sections { s[0].Content = "<p>new</p>"; return s },
		},
		{
			name: "url", id: "b", field: SectionFieldURL, value: "https://x/new.png",
			want: func(s Sections) Sections { s[1].URL = "https://x/new.png"; return s },
		},
		{
			name: "cta label may be cleared", id: "c", field: SectionFieldContent, value: "",
			want: func(s Sections) Sections { s[2].Content = ""; return s },
		},
		{
			name: "unknown id is a no-op", id: "zzz", field: SectionFieldContent, value: "x",
			want: func(s Sections) Sections { return s },
		},
		{
			name: "unknown field is a no-op", id: "a", field: "type", value: "cta",
			want: func(s Sections) Sections { return s },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := sampleSections()
			after := before.Update(tt.id, tt.field, tt.value)

			assert.Equal(t, tt.want(sampleSections()), after)
			assert.Equal(t, sampleSections(), before)
			// identity and kind never change
			for i := range after {
				assert.Equal(t, before[i].ID, after[i].ID)
				assert.Equal(t, before[i].Type, after[i].Type)
			}
		})
	}
}

func TestSections_Remove(t *testing.T) {
	before := sampleSections()

	once := before.Remove("b")
	assert.Equal(t, []string{"a", "c", "d"}, ids(once))
	assert.Equal(t, ids(sampleSections()), ids(before))

	twice := once.Remove("b")
	assert.Equal(t, once, twice)

	assert.Equal(t, before, before.Remove("missing"))
	assert.Empty(t, Sections{{ID: "only", Type: SectionKindText}}.Remove("only"))
}

func TestSections_Reorder(t *testing.T) {
	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 0, []string{"a", "b", "c", "d"}},
		{0, 2, []string{"b", "c", "a", "d"}},
		{3, 0, []string{"d", "a", "b", "c"}},
		{1, 3, []string{"a", "c", "d", "b"}},
		{2, 1, []string{"a", "c", "b", "d"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d to %d", tt.from, tt.to), func(t *testing.T) {
			before := sampleSections()
			after, err := before.Reorder(tt.from, tt.to)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ids(after))
			assert.ElementsMatch(t, before, after)
			assert.Equal(t, ids(sampleSections()), ids(before))
		})
	}
}

func TestSections_Reorder_IdentityForEveryIndex(t *testing.T) {
	s := sampleSections()
	for i := range s {
		after, err := s.Reorder(i, i)
		require.NoError(t, err)
		assert.Equal(t, s, after)
	}
}

func TestSections_Reorder_OutOfRange(t *testing.T) {
	s := sampleSections()
	for _, tc := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		after, err := s.Reorder(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, s, after)
	}

	_, err := Sections{}.Reorder(0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSections_GetAndIndexOf(t *testing.T) {
	s := sampleSections()
	assert.Equal(t, 2, s.IndexOf("c"))
	assert.Equal(t, -1, s.IndexOf("nope"))

	got, ok := s.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "https://x/b.png", got.URL)

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestSections_Validate(t *testing.T) {
	assert.NoError(t, sampleSections().Validate())
	assert.NoError(t, Sections{}.Validate())

	var verr ValidationError
	err := Sections{{ID: "", Type: SectionKindText}}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "empty id")

	err = Sections{{ID: "a", Type: SectionKindText}, {ID: "a", Type: SectionKindCTA}}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "duplicate section id a")

	err = Sections{{ID: "a", Type: "video"}}.Validate()
	require.ErrorAs(t, err, &verr)
}
