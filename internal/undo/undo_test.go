package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/devutil"
	"github.com/dshills/blockfmt/internal/engine"
	"github.com/dshills/blockfmt/internal/engine/tree"
)

func TestUndoRedo(t *testing.T) {
	doc := engine.New()
	require.NoError(t, devutil.SetData(doc, "<paragraph>a[]</paragraph>"))

	reg := command.NewRegistry()
	require.NoError(t, Register(reg, doc))

	assert.False(t, reg.Get(UndoCommandName).Enabled())
	assert.ErrorIs(t, reg.Execute(UndoCommandName, command.Options{}), command.ErrCommandDisabled)

	err := doc.EnqueueChanges(func(w *engine.Writer) error {
		_, err := w.Rename(w.Root().Child(0).(*tree.Element), "heading1")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, true, reg.Get(UndoCommandName).State())
	assert.Equal(t, false, reg.Get(RedoCommandName).State())

	require.NoError(t, reg.Execute(UndoCommandName, command.Options{}))
	assert.Equal(t, "<paragraph>a[]</paragraph>", devutil.GetData(doc))
	assert.True(t, reg.Get(RedoCommandName).Enabled())

	require.NoError(t, reg.Execute(RedoCommandName, command.Options{}))
	assert.Equal(t, "<heading1>a[]</heading1>", devutil.GetData(doc))
	assert.False(t, reg.Get(RedoCommandName).Enabled())
}

func TestDirectExecuteWithEmptyHistory(t *testing.T) {
	doc := engine.New()

	assert.ErrorIs(t, NewUndo(doc).Execute(command.Options{}), engine.ErrNothingToUndo)
	assert.ErrorIs(t, NewRedo(doc).Execute(command.Options{}), engine.ErrNothingToRedo)
}
