package xwm

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Glyphs of the X cursor font.
const (
	cursorFleur   = 52
	cursorLeftPtr = 68
)

// createCursor makes a white on black cursor from the cursor font.
func createCursor(conn *xgb.Conn, glyph uint16) (xproto.Cursor, error) {
	fontID, err := xproto.NewFontId(conn)
	if err != nil {
		return 0, err
	}

	cursorID, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}

	if err := xproto.OpenFontChecked(conn, fontID, uint16(len("cursor")), "cursor").Check(); err != nil {
		return 0, err
	}
	defer xproto.CloseFont(conn, fontID)

	if err := xproto.CreateGlyphCursorChecked(conn, cursorID, fontID, fontID,
		glyph, glyph+1,
		0xffff, 0xffff, 0xffff,
		0, 0, 0).Check(); err != nil {
		return 0, err
	}

	return cursorID, nil
}

// cursors holds the root cursor and the one shown while a client button
// binding is held.
type cursors struct {
	Normal xproto.Cursor
	Move   xproto.Cursor
}

func createCursors(conn *xgb.Conn) (cursors, error) {
	var c cursors
	for _, entry := range []struct {
		cursor *xproto.Cursor
		glyph  uint16
	}{
		{&c.Normal, cursorLeftPtr},
		{&c.Move, cursorFleur},
	} {
		cursor, err := createCursor(conn, entry.glyph)
		if err != nil {
			return cursors{}, err
		}
		*entry.cursor = cursor
	}
	return c, nil
}

func (c cursors) free(conn *xgb.Conn) {
	for _, cursor := range []xproto.Cursor{c.Normal, c.Move} {
		if cursor != 0 {
			xproto.FreeCursor(conn, cursor)
		}
	}
}
