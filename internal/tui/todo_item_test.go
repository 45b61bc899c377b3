package tui

import (
	"testing"

	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milk() todoItem {
	return newTodoItem(model.Todo{ID: 1, Todo: "buy milk", IsCompleted: false})
}

func TestTodoItem_ToggleEmitsUpdate(t *testing.T) {
	row, cmd := milk().Update(keySpace)
	require.NotNil(t, cmd)
	assert.Equal(t, updateTodoMsg{
		id:   1,
		body: model.UpdateTodo{IsCompleted: true, Todo: "buy milk"},
	}, cmd())
	assert.True(t, row.completed.Value())

	// a second toggle reports the flag going back
	_, cmd = row.Update(keySpace)
	require.NotNil(t, cmd)
	assert.Equal(t, updateTodoMsg{
		id:   1,
		body: model.UpdateTodo{IsCompleted: false, Todo: "buy milk"},
	}, cmd())
}

func TestTodoItem_ToggleCarriesUnsavedBuffer(t *testing.T) {
	row, _ := milk().Update(runes("e"))
	row, _ = row.Update(keyClear)
	row, _ = row.Update(runes("draft"))

	row, cmd := row.Update(keyCtrlT)
	require.NotNil(t, cmd)
	assert.Equal(t, updateTodoMsg{
		id:   1,
		body: model.UpdateTodo{IsCompleted: true, Todo: "draft"},
	}, cmd())
	assert.True(t, row.editing())
}

func TestTodoItem_SubmitEmitsAndShowsFetchedText(t *testing.T) {
	row, _ := milk().Update(runes("e"))
	require.True(t, row.editing())
	assert.Equal(t, "buy milk", row.ti.Value())

	row, _ = row.Update(keyClear)
	row, _ = row.Update(runes("buy oat milk"))
	assert.Equal(t, "buy oat milk", row.edit.Value())

	row, cmd := row.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, updateTodoMsg{
		id:   1,
		body: model.UpdateTodo{IsCompleted: false, Todo: "buy oat milk"},
	}, cmd())

	assert.False(t, row.editing())
	out := row.render(false)
	assert.Contains(t, out, "buy milk")
	assert.NotContains(t, out, "oat")
}

func TestTodoItem_CancelRestoresText(t *testing.T) {
	row, _ := milk().Update(runes("e"))
	row, _ = row.Update(keyClear)
	row, _ = row.Update(runes("something else"))

	row, cmd := row.Update(keyEsc)
	assert.Nil(t, cmd)
	assert.False(t, row.editing())
	assert.Equal(t, "buy milk", row.edit.Value())

	// re-entering edit mode starts from the fetched text
	row, _ = row.Update(runes("e"))
	assert.Equal(t, "buy milk", row.ti.Value())
}

func TestTodoItem_EmptySubmitIsIgnored(t *testing.T) {
	row, _ := milk().Update(runes("e"))
	row, _ = row.Update(keyClear)
	require.Equal(t, "", row.edit.Value())

	row, cmd := row.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.True(t, row.editing())
}

func TestTodoItem_LineBreakDoesNotSubmit(t *testing.T) {
	row, _ := milk().Update(runes("e"))
	row, cmd := row.Update(keyAltEnter)
	assert.Nil(t, cmd)
	assert.True(t, row.editing())
	assert.Equal(t, "buy milk", row.edit.Value())
}

func TestTodoItem_DeleteEmitsID(t *testing.T) {
	_, cmd := milk().Update(runes("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, deleteTodoMsg{id: 1}, cmd())
}

func TestTodoItem_DeleteKeyTypesWhileEditing(t *testing.T) {
	row, _ := milk().Update(runes("e"))
	row, _ = row.Update(runes("d"))
	assert.True(t, row.editing())
	assert.Equal(t, "buy milkd", row.edit.Value())
}

func TestTodoItem_SetRecordResyncsOnChange(t *testing.T) {
	row := milk()
	row = row.setRecord(model.Todo{ID: 1, Todo: "buy bread", IsCompleted: true})
	assert.Equal(t, "buy bread", row.edit.Value())
	assert.True(t, row.completed.Value())

	// an identical record keeps a local edit in progress
	row, _ = row.Update(runes("e"))
	row, _ = row.Update(runes("!"))
	row = row.setRecord(model.Todo{ID: 1, Todo: "buy bread", IsCompleted: true})
	assert.Equal(t, "buy bread!", row.edit.Value())
	assert.True(t, row.editing())
}

func TestTodoItem_RenderShowsActionsWhenSelected(t *testing.T) {
	row := milk()
	assert.Contains(t, row.render(true), "modify")
	assert.Contains(t, row.render(true), "delete")
	assert.NotContains(t, row.render(false), "modify")

	row, _ = row.Update(runes("e"))
	assert.Contains(t, row.render(true), "submit")
	assert.Contains(t, row.render(true), "cancel")
}
