package utils

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// GlobalPointer queries the X11 pointer position on the root window. It
// works when the window itself receives no input, as with a desktop
// wallpaper behind other windows.
type GlobalPointer struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewGlobalPointer() (*GlobalPointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	return &GlobalPointer{conn: conn, root: setup.DefaultScreen(conn).Root}, nil
}

// Position returns the pointer position in root window coordinates.
func (g *GlobalPointer) Position() (int, int, error) {
	reply, err := xproto.QueryPointer(g.conn, g.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (g *GlobalPointer) Close() {
	if g.conn != nil {
		g.conn.Close()
		g.conn = nil
	}
}
