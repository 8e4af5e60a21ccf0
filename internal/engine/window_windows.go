//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_BORDER_COLOR            = 34
	DWMWA_CAPTION_COLOR           = 35
)

// applyTitleBar darkens the title bar and tints caption and border with the clear colour.
func applyTitleBar(window *glfw.Window, color [3]float32) {
	win32 := window.GetWin32Window()
	if win32 == nil {
		return
	}
	hwnd := unsafe.Pointer(win32)

	var useDarkMode int32 = 1
	setWindowAttribute(hwnd, DWMWA_USE_IMMERSIVE_DARK_MODE, unsafe.Pointer(&useDarkMode), unsafe.Sizeof(useDarkMode))

	colorBGR := uint32(uint8(color[2]*255))<<16 | uint32(uint8(color[1]*255))<<8 | uint32(uint8(color[0]*255))
	setWindowAttribute(hwnd, DWMWA_BORDER_COLOR, unsafe.Pointer(&colorBGR), unsafe.Sizeof(colorBGR))
	setWindowAttribute(hwnd, DWMWA_CAPTION_COLOR, unsafe.Pointer(&colorBGR), unsafe.Sizeof(colorBGR))
}

func setWindowAttribute(hwnd unsafe.Pointer, attr uintptr, value unsafe.Pointer, size uintptr) {
	procDwmSetWindowAttribute.Call(uintptr(hwnd), attr, uintptr(value), size)
}
