package nav

// Renderer is the presentation side of navigation. The controller calls
// Unmount for the entry being left, then Mount for the new current entry,
// so at most one screen is visible at any instant. prev is nil on the
// initial mount.
//
// Mount must not mutate navigation state; rendering the visible screen is a
// pure function of the entry, the screen's own state, and the window size.
type Renderer interface {
	Mount(next Entry, spec Screen, prev *Entry)
	Unmount(prev Entry)
}

// HistorySync mirrors stack mutations to an external location record (the
// browser-history analogue). location is the entry's formatted deep link,
// or "" when the route has no template. Silent navigations caused by
// external location changes are never mirrored back.
type HistorySync interface {
	Pushed(e Entry, location string)
	Replaced(e Entry, location string)
	Popped(e Entry, location string)
	Reset(e Entry, location string)
}
