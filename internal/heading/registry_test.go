package heading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testFormats = []Format{
	{ID: "paragraph", ViewTag: "p", Label: "Paragraph"},
	{ID: "heading1", ViewTag: "h2", Label: "Heading 1"},
	{ID: "heading2", ViewTag: "h3", Label: "Heading 2"},
}

func TestNewRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		formats []Format
		wantErr error
	}{
		{"duplicate", []Format{{ID: "a"}, {ID: "b"}, {ID: "a"}}, ErrDuplicateFormat},
		{"empty id", []Format{{ID: "a"}, {ViewTag: "p"}}, ErrEmptyFormatID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.formats)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r, err := NewRegistry(testFormats)
	require.NoError(t, err)

	tests := []struct {
		id   string
		want string
	}{
		{"heading1", "heading1"},
		{"heading2", "heading2"},
		{"paragraph", "paragraph"},
		{"", "paragraph"},
		{"heading9", "paragraph"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.id).ID)
		})
	}
}

func TestRegistry_UnknownIDEqualsOmitted(t *testing.T) {
	r, err := NewRegistry(testFormats)
	require.NoError(t, err)

	assert.Equal(t, r.Resolve(""), r.Resolve("no-such-format"))
}

func TestRegistry_ResolveLogsUnknown(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r, err := NewRegistry(testFormats, WithLogger(zap.New(core)))
	require.NoError(t, err)

	r.Resolve("")
	r.Resolve("heading1")
	assert.Equal(t, 0, logs.Len())

	r.Resolve("heading7")
	entries := logs.FilterMessage("unknown block format, using default").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "heading7", entries[0].ContextMap()["format"])
	assert.Equal(t, "paragraph", entries[0].ContextMap()["default"])
}

func TestRegistry_Lookup(t *testing.T) {
	r, err := NewRegistry(testFormats)
	require.NoError(t, err)

	f, ok := r.Lookup("heading2")
	require.True(t, ok)
	assert.Equal(t, "h3", f.ViewTag)

	_, ok = r.Lookup("widget")
	assert.False(t, ok)
}

func TestRegistry_DefaultIsResolvedOnEachCall(t *testing.T) {
	id := "paragraph"
	r, err := NewRegistry(testFormats, WithDefaultID(func() string { return id }))
	require.NoError(t, err)

	assert.Equal(t, "paragraph", r.Default().ID)

	id = "heading2"
	assert.Equal(t, "heading2", r.Default().ID)
	assert.Equal(t, "heading2", r.Resolve("").ID)

	id = "missing"
	assert.Equal(t, "paragraph", r.Default().ID, "unregistered default falls back to the first format")
	assert.Equal(t, "missing", r.DefaultID())
}

func TestRegistry_EmptyDefault(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	assert.Equal(t, Format{ID: "paragraph", ViewTag: "p", Label: "Paragraph"}, r.Default())
	assert.Equal(t, "paragraph", r.Resolve("heading1").ID)
	assert.Zero(t, r.Len())
}

func TestRegistry_FormatsIsCopy(t *testing.T) {
	formats := append([]Format(nil), testFormats...)
	r, err := NewRegistry(formats)
	require.NoError(t, err)

	formats[1].ID = "changed"
	got := r.Formats()
	got[2].ID = "changed"

	assert.Equal(t, testFormats, r.Formats())
}
