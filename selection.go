package corkboard

// Selected returns the selected item, or nil.
func (b *Board) Selected() *Item {
	return b.selected
}

// ResizeEnabled reports whether the resize affordance is on. It only ever
// applies to the selected item.
func (b *Board) ResizeEnabled() bool {
	return b.resizeEnabled && b.selected != nil
}

// ToggleResize enables or disables the resize affordance for the selected
// item.
func (b *Board) ToggleResize(enabled bool) {
	if b.resizeEnabled == enabled {
		return
	}
	b.resizeEnabled = enabled
	b.Invalidate()
}

// ClearSelection removes the selection marker from every item and disables
// resizing.
func (b *Board) ClearSelection() {
	for _, it := range b.items {
		it.selected = false
	}
	b.selected = nil
	b.ToggleResize(false)
	b.Invalidate()
}

// Select handles a tap (isDragStart false) or the start of a drag on item.
//
// A tap clears the previous selection; on an unselected item it then selects
// it and enables resizing, on the selected item it leaves it deselected with
// resizing off. A drag start keeps an existing selection of item intact and
// otherwise moves the selection to item. Either way item is promoted to the
// front of the paint order.
func (b *Board) Select(it *Item, isDragStart bool) {
	if it == nil {
		return
	}
	wasSelected := it.selected
	if !isDragStart {
		b.ClearSelection()
	}
	if !wasSelected {
		if isDragStart {
			b.ClearSelection()
		}
		it.selected = true
		b.selected = it
		b.ToggleResize(true)
	} else {
		b.ToggleResize(isDragStart)
	}
	b.promote(it)
	b.Invalidate()
}

// promote moves it to the end of the registry and renumbers the paint index
// of every item from its old position through the end.
func (b *Board) promote(it *Item) {
	if len(b.items) <= 1 {
		return
	}
	from := it.index
	if from < 0 || from >= len(b.items) || b.items[from] != it {
		return
	}
	copy(b.items[from:], b.items[from+1:])
	b.items[len(b.items)-1] = it
	for i := from; i < len(b.items); i++ {
		b.items[i].index = i
	}
}
